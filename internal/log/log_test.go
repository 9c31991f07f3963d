package log

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func capture(t *testing.T, fn func()) string {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(LevelInfo)
	})
	fn()
	return buf.String()
}

func TestLevels(t *testing.T) {
	out := capture(t, func() {
		SetLevel(LevelInfo)
		Debug("hidden")
		Info("shown")
	})
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "[INFO] shown")

	out = capture(t, func() {
		SetLevel(LevelDebug)
		Debug("now visible")
	})
	assert.Contains(t, out, "[DEBUG] now visible")

	out = capture(t, func() {
		SetLevel(LevelError)
		Info("suppressed")
		Error("boom", errors.New("disk full"))
	})
	assert.NotContains(t, out, "suppressed")
	assert.Contains(t, out, "[ERROR] boom err=disk full")
}

func TestKeyValuePairs(t *testing.T) {
	out := capture(t, func() {
		Info("loaded", "count", 42, "source", "events")
	})
	assert.Contains(t, out, "loaded count=42 source=events")

	out = capture(t, func() {
		Info("odd", "key") // trailing value-less key is dropped
	})
	assert.Contains(t, out, "[INFO] odd\n")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelError, ParseLevel(" ERROR "))
	assert.Equal(t, LevelInfo, ParseLevel("info"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}
