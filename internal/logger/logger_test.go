package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitLevels(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf

	Init(cfg, false)
	log := ForComponent("test")
	log.Debug("hidden")
	log.Info("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
	assert.Contains(t, out, "component=test")
}

func TestInitVerboseEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf

	Init(cfg, true)
	ForComponent("test").Debug("now visible")

	assert.Contains(t, buf.String(), "now visible")
}

func TestComponentLoggerFollowsLaterInit(t *testing.T) {
	log := ForComponent("early")

	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Output = &buf
	Init(cfg, false)

	log.Info("routed")
	assert.Contains(t, buf.String(), "routed")
	assert.Contains(t, buf.String(), "component=early")
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: slog.LevelInfo, Format: "json", Output: &buf}, false)

	ForComponent("test").Info("message", "key", "value")

	line := strings.TrimSpace(buf.String())
	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(line), &entry))
	assert.Equal(t, "message", entry["msg"])
	assert.Equal(t, "test", entry["component"])
	assert.Equal(t, "value", entry["key"])
}
