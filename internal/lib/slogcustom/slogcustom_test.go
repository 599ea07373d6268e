package slogcustom

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestHandler(t *testing.T) {
	color.NoColor = true

	var buf bytes.Buffer
	log := slog.New(NewHandler(&buf, slog.LevelInfo))

	log.Debug("hidden")
	assert.Empty(t, buf.String())

	log.With(slog.String("component", "api_client")).
		WithGroup("req").
		Info("api request", slog.String("method", "GET"), slog.Int("status", 200))

	out := buf.String()
	assert.Contains(t, out, "INFO: api request")
	assert.Contains(t, out, "component=api_client")
	assert.Contains(t, out, "req.method=GET")
	assert.Contains(t, out, "req.status=200")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel(" error "))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
