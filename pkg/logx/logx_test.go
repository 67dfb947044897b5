package logx

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func captureJSON(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	SetOutput(&buf, true)
	SetLevel(LevelInfo)
	t.Cleanup(func() {
		SetOutput(os.Stderr, false)
		SetLevel(LevelInfo)
	})
	return &buf
}

func TestInfof_WritesMessage(t *testing.T) {
	buf := captureJSON(t)

	Infof("loaded %d stages", 7)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "loaded 7 stages", entry["message"])
}

func TestSetLevel_FiltersBelowThreshold(t *testing.T) {
	buf := captureJSON(t)
	SetLevel(LevelWarn)

	Info("hidden")
	Debugf("hidden %s", "too")
	Warn("shown")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "shown")
}

func TestWithFields_AttachesFields(t *testing.T) {
	buf := captureJSON(t)

	WithFields(Fields{"request_id": "req-1", "path": "/health"}).Errorf("request error: %s", "boom")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "/health", entry["path"])
	assert.True(t, strings.HasPrefix(entry["message"].(string), "request error"))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("debug"))
	assert.Equal(t, LevelWarn, ParseLevel("warn"))
	assert.Equal(t, LevelError, ParseLevel("error"))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}
