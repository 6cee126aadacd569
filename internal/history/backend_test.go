package history

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"verbum/internal/logger"
)

func sampleState() *State {
	return &State{
		Words:       map[string]int{"happy": 3, "glad": 1, "well-known": 2},
		LastCleanup: 1700000000,
		Updated:     1700000042,
	}
}

func TestBackendsRoundTrip(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	bolt, err := OpenBoltBackend(filepath.Join(dir, "bolt", "search_history.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = bolt.Close() })

	backends := []struct {
		name    string
		backend Backend
	}{
		{"memory", NewMemoryBackend(nil)},
		{"file", NewFileBackend(filepath.Join(dir, "file", "search_history.json"))},
		{"bolt", bolt},
		{"redis", newRedisBackend(newFakeKV(), DefaultRedisKey)},
	}

	for _, tt := range backends {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.backend.Load(ctx)
			require.NoError(t, err)
			assert.Nil(t, got, "nothing saved yet")

			require.NoError(t, tt.backend.Save(ctx, sampleState()))
			got, err = tt.backend.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, sampleState(), got)

			next := sampleState()
			next.Words = map[string]int{"sad": 9}
			require.NoError(t, tt.backend.Save(ctx, next))
			got, err = tt.backend.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, next, got, "save replaces the previous state")

			assert.ErrorIs(t, tt.backend.Save(ctx, nil), ErrNilState)
		})
	}
}

func TestFileBackendFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_history.json")
	backend := NewFileBackend(path)

	require.NoError(t, backend.Save(context.Background(), &State{
		Words:       map[string]int{"happy": 2},
		LastCleanup: 1700000000.5,
		Updated:     1700000001,
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"words":{"happy":2},"last_cleanup":1700000000.5,"updated":1700000001}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file is renamed away")
}

func TestFileBackendCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search_history.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := NewFileBackend(path).Load(context.Background())
	assert.Error(t, err)

	s := New(context.Background(), NewFileBackend(path), Options{Logger: logger.Discard()})
	_, unique := s.Totals()
	assert.Zero(t, unique, "corrupt file starts an empty store")
}

func TestFileBackendCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	backend := NewFileBackend(filepath.Join(t.TempDir(), "search_history.json"))
	assert.ErrorIs(t, backend.Save(ctx, sampleState()), context.Canceled)
}

func TestRedisBackendErrors(t *testing.T) {
	kv := newFakeKV()
	kv.err = errors.New("connection refused")
	backend := newRedisBackend(kv, DefaultRedisKey)

	_, err := backend.Load(context.Background())
	assert.ErrorContains(t, err, "redis get")
	assert.ErrorContains(t, backend.Save(context.Background(), sampleState()), "redis set")
}

func TestOpenRedisBackendUnreachable(t *testing.T) {
	_, err := OpenRedisBackend("redis://127.0.0.1:1/0")
	assert.Error(t, err)
}

func TestUnixSeconds(t *testing.T) {
	ts := time.Unix(1700000000, 250_000_000)
	assert.Equal(t, 1700000000.25, unixSeconds(ts))
	assert.True(t, ts.Equal(fromUnixSeconds(unixSeconds(ts))))
}

type fakeKV struct {
	data map[string][]byte
	exp  map[string]time.Duration
	err  error
}

func newFakeKV() *fakeKV {
	return &fakeKV{data: make(map[string][]byte), exp: make(map[string]time.Duration)}
}

func (f *fakeKV) Get(key string) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data[key], nil
}

func (f *fakeKV) Set(key string, val []byte, exp time.Duration) error {
	if f.err != nil {
		return f.err
	}
	f.data[key] = val
	f.exp[key] = exp
	return nil
}

func (f *fakeKV) Close() error { return nil }

func TestRedisBackendLive(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("Skipping integration test: TEST_REDIS_URL not set")
	}

	backend, err := OpenRedisBackend(url)
	require.NoError(t, err)
	backend.key = "verbum:test:" + t.Name()
	t.Cleanup(func() { _ = backend.Close() })

	ctx := context.Background()
	require.NoError(t, backend.Save(ctx, sampleState()))
	got, err := backend.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, sampleState(), got)
}
