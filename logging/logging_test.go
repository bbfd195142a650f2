package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input  string
		expect slog.Level
	}{
		{input: "debug", expect: slog.LevelDebug},
		{input: "WARN", expect: slog.LevelWarn},
		{input: "error", expect: slog.LevelError},
		{input: "info", expect: slog.LevelInfo},
		{input: "", expect: slog.LevelInfo},
		{input: "verbose", expect: slog.LevelInfo},
	}
	for _, testCase := range testCases {
		assert.Equal(t, testCase.expect, ParseLevel(testCase.input), testCase.input)
	}
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger := WithComponent(New("debug", "json", &buf), "finder")
	logger.Debug("searched", "needle", 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "searched", record["msg"])
	assert.Equal(t, "finder", record["component"])
	assert.Equal(t, float64(3), record["needle"])
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := New("warn", "text", &buf)
	logger.Info("hidden")
	logger.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.Contains(buf.String(), "msg=shown"))
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))
}
