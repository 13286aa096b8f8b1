package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mirakextractor/internal/config"
)

func newJSONLogger(t *testing.T, level string) *bytes.Buffer {
	t.Helper()
	prev := LoggerInstance
	t.Cleanup(func() { LoggerInstance = prev })

	lm, err := InitLogger(&config.LogConfig{Level: level, Format: "json", Output: "stderr"})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	lm.SetOutput(buf)
	return buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var out []map[string]interface{}
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		m := map[string]interface{}{}
		require.NoError(t, json.Unmarshal(line, &m))
		out = append(out, m)
	}
	return out
}

func TestInitLogger_Errors(t *testing.T) {
	prev := LoggerInstance
	defer func() { LoggerInstance = prev }()

	_, err := InitLogger(nil)
	assert.Error(t, err)

	_, err = InitLogger(&config.LogConfig{Level: "info", Format: "xml", Output: "stdout"})
	assert.Error(t, err)

	_, err = InitLogger(&config.LogConfig{Level: "info", Format: "text", Output: "syslog"})
	assert.Error(t, err)

	_, err = InitLogger(&config.LogConfig{Level: "info", Format: "text", Output: "file"})
	assert.Error(t, err)
}

func TestHelpers_NoopWithoutInit(t *testing.T) {
	prev := LoggerInstance
	LoggerInstance = nil
	defer func() { LoggerInstance = prev }()

	assert.NotPanics(t, func() {
		Debugf("x %d", 1)
		Infof("x")
		Warnf("x")
		Errorf("x")
		WithField("k", "v").Info("dropped")
		LogStageEvent("identity", "source_failed", "m", WarnLevel, nil)
		LogSystemEvent("config", "loaded", "m", InfoLevel, nil)
		LogExportOperation("/tmp/x", 1, time.Millisecond, nil)
	})
}

func TestLogStageEvent_Fields(t *testing.T) {
	buf := newJSONLogger(t, "debug")
	LoggerInstance.SetRunID("run-1")

	LogStageEvent("identity", "source_failed", "/etc/os-release: missing", WarnLevel,
		map[string]interface{}{"source": "os-release"})

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "warning", lines[0]["level"])
	assert.Equal(t, "extract", lines[0]["type"])
	assert.Equal(t, "identity", lines[0]["stage"])
	assert.Equal(t, "source_failed", lines[0]["event"])
	assert.Equal(t, "run-1", lines[0]["run_id"])
	assert.Equal(t, "os-release", lines[0]["source"])
	assert.Equal(t, "identity: source_failed", lines[0]["message"])
}

func TestSetLevel(t *testing.T) {
	buf := newJSONLogger(t, "info")

	Debugf("hidden")
	require.NoError(t, LoggerInstance.SetLevel("debug"))
	Debugf("shown")
	assert.Error(t, LoggerInstance.SetLevel("loud"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "shown", lines[0]["message"])
}

func TestLogExportOperation(t *testing.T) {
	buf := newJSONLogger(t, "info")

	LogExportOperation("./mirak.json", 42, 3*time.Millisecond, nil)
	LogExportOperation("./mirak.json", 0, 0, errors.New("disk full"))

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, float64(42), lines[0]["bytes"])
	assert.Equal(t, "error", lines[1]["level"])
	assert.Equal(t, "disk full", lines[1]["error"])
}

func TestRunIDAttachedToPlainLogs(t *testing.T) {
	buf := newJSONLogger(t, "info")

	Infof("before")
	LoggerInstance.SetRunID("run-2")
	WithField("source", "issue").Warnf("after")

	lines := decodeLines(t, buf)
	require.Len(t, lines, 2)
	assert.NotContains(t, lines[0], "run_id")
	assert.Equal(t, "run-2", lines[1]["run_id"])
	assert.Equal(t, "issue", lines[1]["source"])
}

func TestLogSystemEvent_Fields(t *testing.T) {
	buf := newJSONLogger(t, "info")
	LoggerInstance.SetRunID("run-3")

	LogSystemEvent("routinator", "validate", "/etc/routinator/routinator.conf", InfoLevel,
		map[string]interface{}{"problems": 2})
	LogSystemEvent("config", "loaded", "hidden", DebugLevel, nil)

	lines := decodeLines(t, buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "info", lines[0]["level"])
	assert.Equal(t, "system", lines[0]["type"])
	assert.Equal(t, "routinator", lines[0]["component"])
	assert.Equal(t, "validate", lines[0]["event"])
	assert.Equal(t, "/etc/routinator/routinator.conf", lines[0]["detail"])
	assert.Equal(t, float64(2), lines[0]["problems"])
	assert.Equal(t, "run-3", lines[0]["run_id"])
	assert.Equal(t, "System event: routinator - validate", lines[0]["message"])
}
