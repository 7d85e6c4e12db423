package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestKey(t *testing.T) {
	key := RequestKey("skyshot", "2024-04-09", "06:30", "Bengaluru")
	require.Len(t, key, 12)

	// Same parameters always produce the same key
	require.Equal(t, key, RequestKey("skyshot", "2024-04-09", "06:30", "Bengaluru"))

	// Every parameter participates in the key
	require.NotEqual(t, key, RequestKey("solar_system", "2024-04-09", "06:30", "Bengaluru"))
	require.NotEqual(t, key, RequestKey("skyshot", "2024-04-10", "06:30", "Bengaluru"))
	require.NotEqual(t, key, RequestKey("skyshot", "2024-04-09", "07:30", "Bengaluru"))
	require.NotEqual(t, key, RequestKey("skyshot", "2024-04-09", "06:30", ""))
}

func TestImageCacheRoundtrip(t *testing.T) {
	c, err := NewImageCache(t.TempDir(), 10)
	require.NoError(t, err)

	key := RequestKey("skyshot", "2024-04-09", "06:30", "Bengaluru")

	_, ok := c.Get(key)
	require.False(t, ok)

	c.Set(key, []byte(`{"image_data":"abc"}`))

	data, ok := c.Get(key)
	require.True(t, ok)
	require.Equal(t, []byte(`{"image_data":"abc"}`), data)
	require.Equal(t, 1, c.Len())
}

func TestImageCacheDiskPersistence(t *testing.T) {
	dir := t.TempDir()
	key := RequestKey("solar_system", "2024-04-09", "06:30", "")

	first, err := NewImageCache(dir, 10)
	require.NoError(t, err)
	first.Set(key, []byte("payload"))

	// A fresh instance mimics an app restart; only the disk layer survives
	second, err := NewImageCache(dir, 10)
	require.NoError(t, err)
	require.Equal(t, 0, second.Len())

	data, ok := second.Get(key)
	require.True(t, ok)
	require.Equal(t, []byte("payload"), data)

	// Disk hits get promoted into memory
	require.Equal(t, 1, second.Len())
}

func TestImageCacheShardsByKeyPrefix(t *testing.T) {
	dir := t.TempDir()
	c, err := NewImageCache(dir, 10)
	require.NoError(t, err)

	key := RequestKey("skyshot", "2024-04-09", "06:30", "Bengaluru")
	c.Set(key, []byte("payload"))

	_, err = os.Stat(filepath.Join(dir, key[:2], key+".json"))
	require.NoError(t, err)
}

func TestImageCacheMemoryEviction(t *testing.T) {
	c, err := NewImageCache(t.TempDir(), 2)
	require.NoError(t, err)

	c.Set("aaaa00000000", []byte("a"))
	c.Set("bbbb00000000", []byte("b"))
	c.Set("cccc00000000", []byte("c"))

	require.Equal(t, 2, c.Len())

	// The evicted entry is still served from disk
	data, ok := c.Get("aaaa00000000")
	require.True(t, ok)
	require.Equal(t, []byte("a"), data)
}
