// Package cache stores rendered visualization payloads so that re-submitting
// an unchanged event skips the remote render. Keys mirror the rendering
// service's own cache keys: an md5 of the request parameters truncated to 12
// hex characters.
package cache

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// GetCacheDir returns the OS-specific cache directory
func GetCacheDir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".panchanga-desktop", "cache")
}

// RequestKey builds the cache key for one visualization request. The
// heliocentric view passes an empty location since it does not depend on the
// observer.
func RequestKey(panel, date, clock, location string) string {
	sum := md5.Sum([]byte(fmt.Sprintf("%s-%s-%s-%s", panel, date, clock, location)))
	return hex.EncodeToString(sum[:])[:12]
}

// ImageCache is a two-level cache for visualization payloads: an in-memory
// LRU in front of a disk layer that survives restarts.
type ImageCache struct {
	baseDir string
	mem     *lru.Cache[string, []byte]
	mu      sync.Mutex // guards disk writes
}

// NewImageCache creates an image cache rooted at baseDir holding at most
// maxEntries payloads in memory
func NewImageCache(baseDir string, maxEntries int) (*ImageCache, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	mem, err := lru.New[string, []byte](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create memory cache: %w", err)
	}

	return &ImageCache{
		baseDir: baseDir,
		mem:     mem,
	}, nil
}

// Get retrieves a payload, promoting disk hits into memory
func (c *ImageCache) Get(key string) ([]byte, bool) {
	if data, ok := c.mem.Get(key); ok {
		return data, true
	}

	data, err := os.ReadFile(c.filePath(key))
	if err != nil {
		return nil, false
	}

	c.mem.Add(key, data)
	return data, true
}

// Set stores a payload in both layers. Disk failures are logged and
// tolerated; the memory layer still serves the session.
func (c *ImageCache) Set(key string, data []byte) {
	c.mem.Add(key, data)

	c.mu.Lock()
	defer c.mu.Unlock()

	path := c.filePath(key)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		log.Printf("[ImageCache] failed to create cache subdirectory: %v", err)
		return
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Printf("[ImageCache] failed to write cache entry: %v", err)
	}
}

// Len returns the number of in-memory entries
func (c *ImageCache) Len() int {
	return c.mem.Len()
}

// filePath shards entries by key prefix to keep directories small
func (c *ImageCache) filePath(key string) string {
	return filepath.Join(c.baseDir, key[:2], key+".json")
}
