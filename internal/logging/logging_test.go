package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]log.Level{
		"debug":   log.DebugLevel,
		"DEBUG":   log.DebugLevel,
		"info":    log.InfoLevel,
		"warn":    log.WarnLevel,
		"warning": log.WarnLevel,
		"error":   log.ErrorLevel,
		"":        log.InfoLevel,
		"bogus":   log.InfoLevel,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestParseFormatter(t *testing.T) {
	assert.Equal(t, log.JSONFormatter, ParseFormatter("json"))
	assert.Equal(t, log.LogfmtFormatter, ParseFormatter("logfmt"))
	assert.Equal(t, log.TextFormatter, ParseFormatter("text"))
	assert.Equal(t, log.TextFormatter, ParseFormatter(""))
}

func TestNew(t *testing.T) {
	t.Run("json output with prefix", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, Options{Level: "info", Format: "json"})
		logger.Info("saved todos", "count", 3)
		out := buf.String()
		assert.Contains(t, out, `"msg":"saved todos"`)
		assert.Contains(t, out, `"prefix":"tada"`)
		assert.Contains(t, out, `"count":3`)
	})

	t.Run("level filters debug", func(t *testing.T) {
		var buf bytes.Buffer
		logger := New(&buf, Options{Level: "info"})
		logger.Debug("hidden")
		assert.Empty(t, buf.String())
	})
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "tada.log")
	f, err := OpenFile(path)
	require.NoError(t, err)

	logger := New(f, Options{Format: "logfmt"})
	logger.Error("load todos", "err", "boom")
	require.NoError(t, f.Close())

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "load todos")
	assert.Contains(t, string(b), "err=boom")
}
