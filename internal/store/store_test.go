package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// failingChannel rejects every operation, standing in for an unavailable
// storage backend
type failingChannel struct{}

func (failingChannel) Name() string                  { return "failing" }
func (failingChannel) Write(string, []byte) error    { return errors.New("channel unavailable") }
func (failingChannel) Read(string) ([]byte, error)   { return nil, errors.New("channel unavailable") }

func TestPersistAndLoad(t *testing.T) {
	s := New(NewFileChannel(t.TempDir()), NewSessionChannel())

	payload := []byte(`{"tithi":"Pratipada"}`)
	require.NoError(t, s.Persist(Key, payload))

	got, err := s.Load(Key)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestPersistSurvivesOneFailingChannel(t *testing.T) {
	session := NewSessionChannel()
	s := New(failingChannel{}, session)

	payload := []byte(`{"vara":"Somavara"}`)
	require.NoError(t, s.Persist(Key, payload))

	// The healthy channel holds the latest payload despite the failure
	got, err := s.Load(Key)
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestPersistAllChannelsFailing(t *testing.T) {
	s := New(failingChannel{}, failingChannel{})
	require.Error(t, s.Persist(Key, []byte("x")))
}

func TestLoadPrefersFirstChannel(t *testing.T) {
	first := NewSessionChannel()
	second := NewSessionChannel()
	require.NoError(t, first.Write(Key, []byte("first")))
	require.NoError(t, second.Write(Key, []byte("second")))

	got, err := New(first, second).Load(Key)
	require.NoError(t, err)
	require.Equal(t, []byte("first"), got)
}

func TestLoadFallsBack(t *testing.T) {
	second := NewSessionChannel()
	require.NoError(t, second.Write(Key, []byte("fallback")))

	got, err := New(failingChannel{}, second).Load(Key)
	require.NoError(t, err)
	require.Equal(t, []byte("fallback"), got)
}

func TestLoadNothingStored(t *testing.T) {
	_, err := New(NewSessionChannel()).Load(Key)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPersistOverwrites(t *testing.T) {
	s := New(NewFileChannel(t.TempDir()), NewSessionChannel())

	require.NoError(t, s.Persist(Key, []byte("old")))
	require.NoError(t, s.Persist(Key, []byte("new")))

	got, err := s.Load(Key)
	require.NoError(t, err)
	require.Equal(t, []byte("new"), got)
}

func TestFileChannelPersistsAcrossInstances(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "results")

	require.NoError(t, NewFileChannel(dir).Write(Key, []byte("durable")))

	got, err := NewFileChannel(dir).Read(Key)
	require.NoError(t, err)
	require.Equal(t, []byte("durable"), got)
}

func TestSessionChannelCopiesData(t *testing.T) {
	ch := NewSessionChannel()

	payload := []byte("original")
	require.NoError(t, ch.Write(Key, payload))
	payload[0] = 'X'

	got, err := ch.Read(Key)
	require.NoError(t, err)
	require.Equal(t, []byte("original"), got)
}
