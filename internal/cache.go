package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	tt "github.com/gnolang/cfix/internal/types"
)

const (
	cacheFileName = "repair_cache.gob"

	// DefaultCacheMaxAge bounds how long an entry is trusted.
	DefaultCacheMaxAge = 24 * time.Hour
)

type CacheEntry struct {
	Hash         string
	Result       tt.RepairResult
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache memoises repair results per file and mode. An entry is only reused
// while the file content hashes to the same value and the dependency files
// (usually the configuration) are unchanged.
type Cache struct {
	CacheDir         string
	entries          map[string]CacheEntry
	mutex            sync.RWMutex
	maxAge           time.Duration
	dependencyFiles  []string
	dependencyHashes map[string]string
}

func NewCache(cacheDir string) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir:         cacheDir,
		entries:          make(map[string]CacheEntry),
		maxAge:           DefaultCacheMaxAge,
		dependencyHashes: make(map[string]string),
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) load() error {
	file, err := os.Open(filepath.Join(c.CacheDir, cacheFileName))
	if os.IsNotExist(err) {
		return nil // first run
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewDecoder(file).Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(filepath.Join(c.CacheDir, cacheFileName))
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	if err := gob.NewEncoder(file).Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

func cacheKey(filename string, mode tt.Mode) string {
	return mode.String() + ":" + filename
}

func (c *Cache) Set(filename, source string, mode tt.Mode, result tt.RepairResult) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[cacheKey(filename, mode)] = CacheEntry{
		Hash:         contentHash(source),
		Result:       result,
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

func (c *Cache) Get(filename, source string, mode tt.Mode) (tt.RepairResult, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := cacheKey(filename, mode)
	entry, exists := c.entries[key]
	if !exists {
		return tt.RepairResult{}, false
	}

	if c.isEntryInvalid(source, entry) {
		delete(c.entries, key)
		return tt.RepairResult{}, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry

	return entry.Result, true
}

func (c *Cache) isEntryInvalid(source string, entry CacheEntry) bool {
	if time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}
	if contentHash(source) != entry.Hash {
		return true
	}
	return c.haveDependenciesChanged()
}

// SetDependencies records files whose change invalidates every entry.
func (c *Cache) SetDependencies(files ...string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.dependencyFiles = append(c.dependencyFiles[:0], files...)
	return c.updateDependencyHashes()
}

func (c *Cache) haveDependenciesChanged() bool {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return true
		}

		if hash != c.dependencyHashes[file] {
			return true
		}
	}

	return false
}

func (c *Cache) updateDependencyHashes() error {
	for _, file := range c.dependencyFiles {
		hash, err := getFileHash(file)
		if err != nil {
			return fmt.Errorf("failed to get hash for %s: %w", file, err)
		}
		c.dependencyHashes[file] = hash
	}
	return nil
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // manual operation, nothing to recover
}

func contentHash(source string) string {
	return fmt.Sprintf("%x", md5.Sum([]byte(source)))
}

func getFileHash(filename string) (string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return "", err
	}

	return fmt.Sprintf("%x", hash.Sum(nil)), nil
}
