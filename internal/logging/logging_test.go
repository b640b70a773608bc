package logging

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readEntries(t *testing.T, path string) []map[string]interface{} {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		if line == "" {
			continue
		}
		entry := map[string]interface{}{}
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		entries = append(entries, entry)
	}
	return entries
}

func TestTraceWritesOnlyWhenEnabled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "trace.log")
	Configure(path)
	t.Cleanup(func() {
		SetTraceEnabled(false)
		Configure("")
	})

	SetTraceEnabled(false)
	Trace("skipped", map[string]interface{}{"n": 1})
	SetTraceEnabled(true)
	Trace("overlay.transition", map[string]interface{}{"id": "info-top-left"})
	Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "overlay.transition", entries[0]["event"])
	payload, ok := entries[0]["payload"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "info-top-left", payload["id"])
	assert.NotEmpty(t, entries[0]["time"])
}

func TestErrorIgnoresNil(t *testing.T) {
	path := filepath.Join(t.TempDir(), "errors.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Error(nil)
	Error(errors.New("boom"))
	Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "boom", entries[0]["error"])
}

func TestLoggerSharesSink(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logr.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	Logger().Info("unresolved trigger", "overlay", "popup")
	Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "unresolved trigger", entries[0]["event"])
	assert.Equal(t, "popup", entries[0]["overlay"])
}

func TestLoggerOpensFileOnFirstEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lazy.log")
	Configure(path)
	t.Cleanup(func() { Configure("") })

	log := Logger().WithName("ui").WithValues("component", "story")
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err), "log file created before any entry")

	log.Info("opened")
	Sync()

	entries := readEntries(t, path)
	require.Len(t, entries, 1)
	assert.Equal(t, "opened", entries[0]["event"])
	assert.Equal(t, "story", entries[0]["component"])
	assert.Equal(t, "ui", entries[0]["logger"])
}

func TestDefaultPathIsInTempDir(t *testing.T) {
	Configure("")
	mu.Lock()
	got := logPath
	mu.Unlock()
	assert.Equal(t, filepath.Join(os.TempDir(), "overlaykit.log"), got)
}
