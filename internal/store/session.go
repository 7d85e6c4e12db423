package store

import (
	"sync"
)

// SessionChannel holds payloads in memory for the lifetime of the process,
// the desktop analogue of session-scoped browser storage. It backs the file
// channel up when the data directory is unavailable, and goes away with the
// process.
type SessionChannel struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewSessionChannel creates an empty in-memory channel
func NewSessionChannel() *SessionChannel {
	return &SessionChannel{data: make(map[string][]byte)}
}

func (c *SessionChannel) Name() string {
	return "session"
}

func (c *SessionChannel) Write(key string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Copy so later caller mutations don't alias stored state
	buf := make([]byte, len(data))
	copy(buf, data)
	c.data[key] = buf
	return nil
}

func (c *SessionChannel) Read(key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.data[key]
	if !ok {
		return nil, ErrNotFound
	}

	buf := make([]byte, len(data))
	copy(buf, data)
	return buf, nil
}
