package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

// capture redirects the package logger into a buffer for the test.
func capture(t *testing.T) *bytes.Buffer {
	t.Helper()

	buf := new(bytes.Buffer)
	old := std.Writer()
	std.SetOutput(buf)
	t.Cleanup(func() {
		std.SetOutput(old)
		SetVerbose(false)
	})

	return buf
}

func TestDebugf_SilentByDefault(t *testing.T) {
	buf := capture(t)

	SetVerbose(false)
	Debugf("should not appear: %d", 42)

	assert.Empty(t, buf.String())
}

func TestDebugf_VerboseEnabled(t *testing.T) {
	buf := capture(t)

	SetVerbose(true)
	Debugf("token renewed after %d attempts", 2)

	assert.Contains(t, buf.String(), "debug: token renewed after 2 attempts")
}

func TestErrorf_AlwaysLogs(t *testing.T) {
	buf := capture(t)

	SetVerbose(false)
	Errorf("reload failed: %v", "boom")

	assert.Contains(t, buf.String(), "error: reload failed: boom")
}
