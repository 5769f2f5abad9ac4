package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/aanand-mishra/students-cli/internal/config"
)

func TestNewProdWritesJSONAtInfo(t *testing.T) {
	var buf bytes.Buffer
	log := New("prod", &buf)

	log.Debug("hidden")
	log.Info("student added", "id", 3)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "student added", entry["msg"])
	assert.EqualValues(t, 3, entry["id"])
}

func TestNewDevWritesTextAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log := New("dev", &buf)

	log.Debug("connecting")

	assert.Contains(t, buf.String(), "level=DEBUG")
	assert.Contains(t, buf.String(), "msg=connecting")
}

func TestWriterDefaultsToStderr(t *testing.T) {
	assert.Equal(t, os.Stderr, Writer(config.Log{}))
}

func TestWriterRotatesIntoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "students.log")

	w := Writer(config.Log{Path: path, MaxSizeMB: 1, MaxBackups: 2})
	lj, ok := w.(*lumberjack.Logger)
	require.True(t, ok)
	t.Cleanup(func() { _ = lj.Close() })

	New("dev", w).Info("hello")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=hello")
}
