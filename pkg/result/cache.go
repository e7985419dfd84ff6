package result

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

const cacheVersion = 1

// Cache maps input digests to finished reports, so an unchanged input is
// answered without solving it again.
type Cache struct {
	mu      sync.Mutex
	entries map[string]Report
}

// checkpoint is the on-disk form of a Cache.
type checkpoint struct {
	Version int
	Reports []Report
}

// NewCache creates an empty cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[string]Report)}
}

// Digest identifies one puzzle input together with the options that change
// its answer.
func Digest(puzzle string, input []byte, params ...string) string {
	h := sha256.New()
	h.Write([]byte(puzzle))
	h.Write([]byte{0})
	h.Write(input)
	for _, p := range params {
		h.Write([]byte{0})
		h.Write([]byte(p))
	}
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the report stored under digest.
func (c *Cache) Get(digest string) (Report, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[digest]
	return r, ok
}

// Put stores r under its digest.
func (c *Cache) Put(r Report) error {
	if r.Digest == "" {
		return errors.New("cache: report has no digest")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[r.Digest] = r
	return nil
}

// Len returns the number of cached reports.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Reports returns a copy of all reports, sorted by puzzle then digest.
func (c *Cache) Reports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Report, 0, len(c.entries))
	for _, r := range c.entries {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Puzzle != out[j].Puzzle {
			return out[i].Puzzle < out[j].Puzzle
		}
		return out[i].Digest < out[j].Digest
	})
	return out
}

// SaveCache writes the cache to path, replacing it atomically.
func SaveCache(path string, c *Cache) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	ckpt := checkpoint{Version: cacheVersion, Reports: c.Reports()}
	if err := gob.NewEncoder(tmp).Encode(&ckpt); err != nil {
		tmp.Close()
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// LoadCache reads a cache written by SaveCache. A missing file yields an
// empty cache.
func LoadCache(path string) (*Cache, error) {
	c := NewCache()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ckpt checkpoint
	if err := gob.NewDecoder(f).Decode(&ckpt); err != nil {
		return nil, fmt.Errorf("decode cache %s: %w", path, err)
	}
	if ckpt.Version != cacheVersion {
		return nil, fmt.Errorf("cache %s: version %d, want %d", path, ckpt.Version, cacheVersion)
	}
	for _, r := range ckpt.Reports {
		c.entries[r.Digest] = r
	}
	return c, nil
}
