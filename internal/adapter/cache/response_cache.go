package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// ResponseCache is a content-addressed store of model responses: one JSON
// file per key under a configured directory, named by the hex digest of the
// prompt. Entries are written once on the first successful call and never
// invalidated; staleness is accepted. Corrupt or unreadable entries count
// as misses, never as errors.
type ResponseCache struct {
	dir string
}

// NewResponseCache opens a cache rooted at dir, creating it if absent.
func NewResponseCache(dir string) (*ResponseCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache dir: %w", err)
	}
	return &ResponseCache{dir: dir}, nil
}

// Key returns the cache key for a prompt. Identical prompt text always
// hashes identically, across runs and processes.
func Key(prompt string) string {
	sum := sha256.Sum256([]byte(prompt))
	return hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, or false on a miss. Entries
// that are not well-formed JSON are treated as misses.
func (c *ResponseCache) Get(key string) ([]byte, bool) {
	data, err := os.ReadFile(c.path(key))
	if err != nil {
		return nil, false
	}
	if !json.Valid(data) {
		return nil, false
	}
	return data, true
}

// Put stores a response under key. The write goes through a temp file and
// a rename, so concurrent writers of the same key are safe: the value is a
// pure function of the key, and last-writer-wins leaves the same bytes.
func (c *ResponseCache) Put(key string, data []byte) error {
	tmp, err := os.CreateTemp(c.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create cache temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write cache entry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), c.path(key)); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to commit cache entry: %w", err)
	}
	return nil
}

func (c *ResponseCache) path(key string) string {
	return filepath.Join(c.dir, key+".json")
}
