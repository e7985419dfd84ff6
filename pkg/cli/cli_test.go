package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/oisee/aoc-core/pkg/config"
	"github.com/oisee/aoc-core/pkg/inst"
	"github.com/oisee/aoc-core/pkg/result"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) (*Common, *pflag.FlagSet) {
	t.Helper()
	var c Common
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	c.Register(fs)
	require.NoError(t, fs.Parse(args))
	return &c, fs
}

func TestResolveDefaults(t *testing.T) {
	c, fs := newFlags(t)
	cfg, err := c.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestResolveFlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aoc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("input: from-file.txt\noutput: report.json\nlog:\n  level: debug\n"), 0o644))

	c, fs := newFlags(t, "--config", path, "--input", "from-flag.txt")
	cfg, err := c.Resolve(fs)
	require.NoError(t, err)
	assert.Equal(t, "from-flag.txt", cfg.Input)
	assert.Equal(t, "report.json", cfg.Output, "file value kept")
	assert.Equal(t, "debug", cfg.Log.Level, "unset flag default does not override file")

	c, fs = newFlags(t, "--log-level", "shout")
	_, err = c.Resolve(fs)
	assert.Error(t, err)
}

func TestParseRegisters(t *testing.T) {
	regs, err := ParseRegisters([]string{"c=1", " a = -7 "})
	require.NoError(t, err)
	assert.Equal(t, map[inst.Reg]int32{inst.RegC: 1, inst.RegA: -7}, regs)

	for _, bad := range []string{"c", "e=1", "c=x", "c=99999999999"} {
		_, err := ParseRegisters([]string{bad})
		assert.Error(t, err, bad)
	}
}

func TestReadInput(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "input.txt")
	require.NoError(t, os.WriteFile(path, []byte("cpy 1 a\n"), 0o644))

	data, err := readInput(path, strings.NewReader("ignored"), false)
	require.NoError(t, err)
	assert.Equal(t, "cpy 1 a\n", string(data))

	data, err = readInput("-", strings.NewReader("from stdin"), true)
	require.NoError(t, err)
	assert.Equal(t, "from stdin", string(data))

	_, err = readInput(filepath.Join(dir, "missing.txt"), strings.NewReader("x"), false)
	assert.Error(t, err, "only the default path falls back to stdin")
}

func TestReadInputDefaultFallback(t *testing.T) {
	// Run from a directory without input/input.txt.
	t.Chdir(t.TempDir())

	data, err := readInput(config.DefaultInput, strings.NewReader("piped"), false)
	require.NoError(t, err)
	assert.Equal(t, "piped", string(data))

	_, err = readInput(config.DefaultInput, strings.NewReader("piped"), true)
	assert.Error(t, err, "a terminal is never read implicitly")
}

func TestSessionOutputs(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Output = filepath.Join(dir, "report.json")
	cfg.MetricsOut = filepath.Join(dir, "metrics.prom")
	cfg.Cache = filepath.Join(dir, "cache.gob")

	var stderr bytes.Buffer
	s, err := Open("rtg", cfg, &stderr)
	require.NoError(t, err)

	digest := result.Digest("rtg", []byte("input"))
	_, ok := s.Cached(digest)
	assert.False(t, ok)

	rep := s.NewReport()
	rep.Answer = 11
	rep.Digest = digest
	require.NoError(t, s.Finish(rep))
	require.NoError(t, s.Close())

	f, err := os.Open(cfg.Output)
	require.NoError(t, err)
	defer f.Close()
	got, err := result.ReadJSON(f)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.Answer)
	assert.Equal(t, s.Log.RunID, got.RunID)

	prom, err := os.ReadFile(cfg.MetricsOut)
	require.NoError(t, err)
	assert.Contains(t, string(prom), `aoc_run_seconds_count{puzzle="rtg"} 1`)

	// A second session answers from the cache.
	s2, err := Open("rtg", cfg, &stderr)
	require.NoError(t, err)
	defer s2.Close()
	hit, ok := s2.Cached(digest)
	require.True(t, ok)
	assert.True(t, hit.Cached)
	assert.Equal(t, int64(11), hit.Answer)
	assert.Contains(t, stderr.String(), "answer from cache")
}
