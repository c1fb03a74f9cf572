package store

import (
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// Current schema version - increment when cachePayload format changes
const cacheSchemaVersion uint16 = 1

// DefaultMinDigits is the smallest result length the cache keeps.
const DefaultMinDigits = 64

// Cache keeps canonical results of expensive operations on disk, one file
// per key. Thread-safe for concurrent access.
type Cache struct {
	mu        sync.RWMutex
	dir       string
	minDigits int
}

type cachePayload struct {
	Schema uint16
	Key    string
	Value  string
	Stored time.Time
}

// OpenCache returns a cache rooted at dir. Results shorter than minDigits
// are not stored; a negative minDigits selects DefaultMinDigits.
func OpenCache(dir string, minDigits int) (*Cache, error) {
	if minDigits < 0 {
		minDigits = DefaultMinDigits
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Cache{dir: dir, minDigits: minDigits}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) pathFor(key string) string {
	name := strconv.FormatUint(xxhash.Sum64String(key), 16)
	return filepath.Join(c.dir, "results", name+".mp")
}

// Lookup returns the value stored under key. Entries written by another
// schema version, or whose key collides with a different one, are misses.
func (c *Cache) Lookup(key string) (string, bool, error) {
	if c == nil {
		return "", false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	var p cachePayload
	ok, err := readFile(c.pathFor(key), &p)
	if err != nil || !ok {
		return "", false, err
	}
	if p.Schema != cacheSchemaVersion || p.Key != key {
		return "", false, nil
	}
	return p.Value, true, nil
}

// Store writes value under key unless it is shorter than the minimum.
func (c *Cache) Store(key, value string) error {
	if c == nil || len(value) < c.minDigits {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	return writeAtomic(c.pathFor(key), &cachePayload{
		Schema: cacheSchemaVersion,
		Key:    key,
		Value:  value,
		Stored: time.Now().UTC(),
	})
}

// DropAll removes every cached result.
func (c *Cache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	results := filepath.Join(c.dir, "results")
	old := results + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(results, old); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}
