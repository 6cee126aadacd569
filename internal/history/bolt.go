package history

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
)

var (
	bucketHistory = []byte("history")
	keyState      = []byte("state")
)

// BoltBackend stores state as a single JSON value in a bbolt database.
// Each Save is one transaction, so a crash mid-write keeps the previous
// state intact.
type BoltBackend struct {
	db *bolt.DB
}

// OpenBoltBackend opens (or creates) the database at path.
func OpenBoltBackend(path string) (*BoltBackend, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("bbolt open: %w", err)
	}
	return &BoltBackend{db: db}, nil
}

// Close closes the database.
func (b *BoltBackend) Close() error {
	return b.db.Close()
}

// Load reads the saved state, or (nil, nil) if nothing was saved.
func (b *BoltBackend) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var data []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket(bucketHistory)
		if bucket == nil {
			return nil
		}
		if v := bucket.Get(keyState); v != nil {
			// bbolt values are only valid inside the transaction.
			data = append([]byte(nil), v...)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("bbolt view: %w", err)
	}
	if data == nil {
		return nil, nil
	}
	return decodeState(data)
}

// Save replaces the saved state.
func (b *BoltBackend) Save(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	return b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists(bucketHistory)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		return bucket.Put(keyState, data)
	})
}
