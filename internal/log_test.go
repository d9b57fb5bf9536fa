package internal

import (
	"bytes"
	"log"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func captureLog(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	flags := log.Flags()
	log.SetOutput(&buf)
	log.SetFlags(0)
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetFlags(flags)
	})
	return &buf
}

func TestParseLogLevel(t *testing.T) {
	level, ok := ParseLogLevel("debug")
	assert.True(t, ok)
	assert.Equal(t, LogLevelDebug, level)

	_, ok = ParseLogLevel("verbose")
	assert.False(t, ok)

	assert.Equal(t, "WARN", LogLevelWarn.String())
}

func TestNamedLoggerSharesRootLevel(t *testing.T) {
	buf := captureLog(t)

	root := NewLogger(LogLevelWarn)
	child := root.Named("DataReader")

	child.Info("hidden %d", 1)
	assert.Empty(t, buf.String())

	root.SetLevel(LogLevelInfo)
	child.Info("shown %d", 2)
	assert.Equal(t, "[INFO] [DataReader] shown 2\n", buf.String())

	child.SetLevel(LogLevelError)
	assert.Equal(t, LogLevelError, root.GetLevel())
}
