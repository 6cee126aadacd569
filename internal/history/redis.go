package history

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/storage/redis/v3"
)

// DefaultRedisKey is the key the redis backend stores state under.
const DefaultRedisKey = "verbum:search_history"

// kvStorage is the subset of fiber's storage interface the backend needs.
type kvStorage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
	Close() error
}

// RedisBackend stores state as a JSON value in redis, without expiry.
type RedisBackend struct {
	store kvStorage
	key   string
}

// OpenRedisBackend connects to the redis server at url.
func OpenRedisBackend(url string) (backend *RedisBackend, err error) {
	// The storage driver panics when the initial ping fails.
	defer func() {
		if r := recover(); r != nil {
			backend, err = nil, fmt.Errorf("redis connect: %v", r)
		}
	}()
	store := redis.New(redis.Config{URL: url})
	return newRedisBackend(store, DefaultRedisKey), nil
}

func newRedisBackend(store kvStorage, key string) *RedisBackend {
	return &RedisBackend{store: store, key: key}
}

// Close closes the connection.
func (b *RedisBackend) Close() error {
	return b.store.Close()
}

// Load reads the saved state, or (nil, nil) if the key is absent.
func (b *RedisBackend) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := b.store.Get(b.key)
	if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}
	return decodeState(data)
}

// Save replaces the saved state.
func (b *RedisBackend) Save(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	if err := b.store.Set(b.key, data, 0); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}
