package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "warn", Writer: &buf})
	require.NoError(t, err)
	defer l.Close()

	l.Info("quiet")
	l.Warn("loud", "moves", 11)
	out := buf.String()
	assert.NotContains(t, out, "quiet")
	assert.Contains(t, out, "loud")
	assert.Contains(t, out, "moves=11")
	assert.Contains(t, out, "run_id="+l.RunID)
}

func TestDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	l, err := New(Options{Level: "debug", Writer: &buf})
	require.NoError(t, err)
	defer l.Close()

	l.Debug("now visible")
	assert.Contains(t, buf.String(), "now visible")
}

func TestJSONCopy(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "run.jsonl")
	l, err := New(Options{Level: "error", JSONPath: path, Writer: &buf})
	require.NoError(t, err)

	l.Debug("search start", "elements", 5)
	require.NoError(t, l.Close())
	require.NoError(t, l.Close(), "second close is a no-op")
	assert.Empty(t, buf.String(), "terminal stays at error level")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "search start", rec["msg"])
	assert.Equal(t, l.RunID, rec["run_id"])
	assert.Equal(t, float64(5), rec["elements"])
}

func TestRunIDsDiffer(t *testing.T) {
	a, err := New(Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	b, err := New(Options{Writer: &bytes.Buffer{}})
	require.NoError(t, err)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestBadOptions(t *testing.T) {
	_, err := New(Options{Level: "chatty"})
	assert.Error(t, err)
	_, err = New(Options{JSONPath: filepath.Join(t.TempDir(), "missing", "x.json")})
	assert.Error(t, err)
}

func TestDiscard(t *testing.T) {
	Discard().Error("dropped")
}
