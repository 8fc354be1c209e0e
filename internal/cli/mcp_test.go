package cli

import (
	"sync"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
)

func TestDriveHolder_SwapIsVisible(t *testing.T) {
	first := drive.New(nil, "first@contoso.com")
	second := drive.New(nil, "second@contoso.com")
	holder := &driveHolder{d: first}

	assert.Same(t, first, holder.get())

	// Readers racing a swap always see one of the two drives.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			d := holder.get()
			assert.True(t, d == first || d == second)
		}()
	}
	holder.set(second)
	wg.Wait()

	assert.Same(t, second, holder.get())
}

func TestEncodeContent(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{name: "utf8 text verbatim", data: []byte("hello\nworld"), expected: "hello\nworld"},
		{name: "empty", data: []byte{}, expected: ""},
		{name: "binary base64", data: []byte{0x89, 0x50, 0x4e, 0x47, 0xff}, expected: "iVBOR/8="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, encodeContent(tt.data))
		})
	}
}

func TestItemsResult_EmptyListingEncodesAsArray(t *testing.T) {
	result, structured, err := itemsResult(nil)

	require.NoError(t, err)
	assert.Nil(t, structured)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Equal(t, "[]", text.Text)
}

func TestJSONResult_EncodesItems(t *testing.T) {
	items := []drive.DriveItem{{ID: "item-1", Name: "report.pdf", Size: 2048}}

	result, structured, err := itemsResult(items)

	require.NoError(t, err)
	assert.Nil(t, structured)
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.Contains(t, text.Text, `"report.pdf"`)
	assert.Contains(t, text.Text, `"item-1"`)
}

func TestRegisterTools(t *testing.T) {
	server := mcp.NewServer(&mcp.Implementation{Name: "onedrive-cli", Version: "test"}, nil)
	holder := &driveHolder{d: drive.New(nil, "user@contoso.com")}

	// Registration must not panic and the server stays usable.
	registerTools(server, holder)
	assert.NotNil(t, server)
}
