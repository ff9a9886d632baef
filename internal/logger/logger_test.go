package logger

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setup(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetVerbose(false)
	})
	return &buf
}

func TestDebug_SuppressedByDefault(t *testing.T) {
	buf := setup(t)
	SetVerbose(false)

	Debug("hidden %d", 1)
	Info("hidden too")
	Section("hidden section")

	assert.Empty(t, buf.String())
}

func TestDebug_PrintedWhenVerbose(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Debug("value is %d", 42)

	assert.Contains(t, buf.String(), "[DEBUG] value is 42")
}

func TestWarn_AlwaysPrinted(t *testing.T) {
	buf := setup(t)
	SetVerbose(false)

	Warn("failed to read %s", "book.epub")

	assert.Contains(t, buf.String(), "[WARN] failed to read book.epub")
}

func TestSection_PrintedWhenVerbose(t *testing.T) {
	buf := setup(t)
	SetVerbose(true)

	Section("Context Lookup")

	assert.Contains(t, buf.String(), "=== Context Lookup ===")
}

func TestIsVerbose(t *testing.T) {
	setup(t)

	SetVerbose(true)
	assert.True(t, IsVerbose())
	SetVerbose(false)
	assert.False(t, IsVerbose())
}
