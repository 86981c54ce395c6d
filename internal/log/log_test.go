package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevels(t *testing.T) {
	var buf bytes.Buffer
	DebugLogger.SetOutput(&buf)
	InfoLogger.SetOutput(&buf)
	ErrorLogger.SetOutput(&buf)
	defer SuppressOutput(false)
	defer SetDebug(false)

	t.Run("Debug output is dropped unless enabled", func(t *testing.T) {
		buf.Reset()
		SetDebug(false)
		Debugf("hidden %d", 1)
		assert.Empty(t, buf.String())

		SetDebug(true)
		Debugf("shown %d", 2)
		assert.Contains(t, buf.String(), "DEBUG: ")
		assert.Contains(t, buf.String(), "shown 2")
	})
	t.Run("Info and error carry their prefixes", func(t *testing.T) {
		buf.Reset()
		Infof("listening on %s", ":4000")
		Errorf("dial %s failed", "upstream")
		assert.Contains(t, buf.String(), "INFO: ")
		assert.Contains(t, buf.String(), "listening on :4000")
		assert.Contains(t, buf.String(), "ERROR: ")
		assert.Contains(t, buf.String(), "dial upstream failed")
	})
	t.Run("SuppressOutput discards everything", func(t *testing.T) {
		SuppressOutput(true)
		buf.Reset()
		Infof("nothing")
		Errorf("nothing")
		assert.Empty(t, buf.String())
	})
}
