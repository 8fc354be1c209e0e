package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/HamadUllahgit/graph-api-onedrive-integration/internal/drive"
)

func TestRenderItems(t *testing.T) {
	items := []drive.DriveItem{
		{
			ID: "item-1", Name: "report.pdf", Size: 2048,
			ModifiedDateTime: "2024-03-02T12:30:00Z",
			File:             &drive.FileInfo{MIMEType: "application/pdf"},
		},
		{
			ID: "item-2", Name: "Documents",
			Folder: &drive.FolderInfo{ChildCount: 3},
		},
	}

	out := renderItems(items)

	assert.Contains(t, out, "SIZE")
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "2.0 KiB")
	assert.Contains(t, out, "2024-03-02 12:30")
	// Folders get a trailing slash and no size
	assert.Contains(t, out, "Documents/")
}

func TestRenderItem_File(t *testing.T) {
	item := &drive.DriveItem{
		ID: "item-1", Name: "report.pdf", Size: 2048,
		CreatedDateTime:  "2024-01-15T10:30:00Z",
		ModifiedDateTime: "2024-03-02T12:30:00Z",
		WebURL:           "https://contoso-my.sharepoint.com/personal/user/report.pdf",
		File:             &drive.FileInfo{MIMEType: "application/pdf"},
	}

	out := renderItem(item)

	assert.Contains(t, out, "item-1")
	assert.Contains(t, out, "report.pdf")
	assert.Contains(t, out, "application/pdf")
	assert.Contains(t, out, "2.0 KiB (2048 bytes)")
	assert.Contains(t, out, "2024-01-15 10:30")
	assert.Contains(t, out, "https://contoso-my.sharepoint.com")
}

func TestRenderItem_Folder(t *testing.T) {
	item := &drive.DriveItem{
		ID: "item-2", Name: "Documents",
		Folder: &drive.FolderInfo{ChildCount: 3},
	}

	out := renderItem(item)

	assert.Contains(t, out, "Documents")
	assert.Contains(t, out, "Children")
	assert.Contains(t, out, "3")
	assert.NotContains(t, out, "bytes")
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
	}{
		{name: "utc timestamp", raw: "2024-03-02T12:30:45Z", expected: "2024-03-02 12:30"},
		{name: "offset normalised to utc", raw: "2024-03-02T13:30:00+01:00", expected: "2024-03-02 12:30"},
		{name: "empty", raw: "", expected: "-"},
		{name: "garbage", raw: "yesterday", expected: "-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatTime(tt.raw))
		})
	}
}
