// Package store persists the last computed result across independent storage
// channels. Writes go to every channel so that losing one (cleared data dir,
// privacy mode, disk error) still leaves the payload recoverable from
// another; reads return the first channel that has data.
package store

import (
	"errors"
	"fmt"
	"log"
)

// Key under which the last successful result is persisted in every channel
const Key = "panchanga_data"

// ErrNotFound is returned by a channel (and by Load) when no data exists
// for the key.
var ErrNotFound = errors.New("no data stored for key")

// Channel is one independent storage backend. Channels fail independently;
// the store isolates each failure.
type Channel interface {
	Name() string
	Write(key string, data []byte) error
	Read(key string) ([]byte, error)
}

// Store fans writes out to an ordered list of channels
type Store struct {
	channels []Channel
}

// New creates a store over the given channels. Read preference follows
// argument order.
func New(channels ...Channel) *Store {
	return &Store{channels: channels}
}

// Persist writes the payload to every channel. A failing channel is logged
// and skipped; it never aborts the remaining writes. The returned error is
// non-nil only when every channel failed, at which point the payload is
// genuinely lost.
func (s *Store) Persist(key string, data []byte) error {
	failures := 0
	var lastErr error

	for _, ch := range s.channels {
		if err := ch.Write(key, data); err != nil {
			failures++
			lastErr = err
			log.Printf("[Store] write to %s channel failed: %v", ch.Name(), err)
		}
	}

	if failures == len(s.channels) && lastErr != nil {
		return fmt.Errorf("all %d storage channels failed: %w", failures, lastErr)
	}
	return nil
}

// Load returns the payload from the first channel holding data for the key
func (s *Store) Load(key string) ([]byte, error) {
	for _, ch := range s.channels {
		data, err := ch.Read(key)
		if err == nil && len(data) > 0 {
			return data, nil
		}
		if err != nil && !errors.Is(err, ErrNotFound) {
			log.Printf("[Store] read from %s channel failed: %v", ch.Name(), err)
		}
	}
	return nil, ErrNotFound
}
