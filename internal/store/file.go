package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileChannel persists payloads as files under a base directory. Data
// survives application restarts.
type FileChannel struct {
	baseDir string
}

// NewFileChannel creates a file-backed channel rooted at baseDir
func NewFileChannel(baseDir string) *FileChannel {
	return &FileChannel{baseDir: baseDir}
}

func (c *FileChannel) Name() string {
	return "file"
}

func (c *FileChannel) Write(key string, data []byte) error {
	if err := os.MkdirAll(c.baseDir, 0755); err != nil {
		return fmt.Errorf("failed to create storage directory: %w", err)
	}

	path := c.path(key)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write payload file: %w", err)
	}
	return nil
}

func (c *FileChannel) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(c.path(key))
	if os.IsNotExist(err) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read payload file: %w", err)
	}
	return data, nil
}

func (c *FileChannel) path(key string) string {
	return filepath.Join(c.baseDir, key+".json")
}
