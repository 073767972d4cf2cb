package config

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerWritesBothOutputs(t *testing.T) {
	var stderr, sink bytes.Buffer
	logger := NewLogger(&stderr, &sink, slog.LevelInfo)

	logger.Info("server started", "port", "8080")

	assert.Contains(t, stderr.String(), "server started")
	assert.Contains(t, stderr.String(), "port=8080")

	var record map[string]any
	require.NoError(t, json.Unmarshal(sink.Bytes(), &record))
	assert.Equal(t, "server started", record["msg"])
	assert.Equal(t, "8080", record["port"])
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	var stderr, sink bytes.Buffer
	logger := NewLogger(&stderr, &sink, slog.LevelWarn)

	logger.Debug("noisy detail")
	logger.Info("routine event")

	assert.Empty(t, stderr.String())
	assert.Empty(t, sink.String())
}
