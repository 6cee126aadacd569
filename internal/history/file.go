package history

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileBackend stores state as a JSON document on disk. Writes go to a temp
// file in the same directory which is then renamed over the target, so a
// crash never leaves a half-written file behind.
type FileBackend struct {
	path string
}

// NewFileBackend returns a backend for the JSON file at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{path: path}
}

// Path returns the target file.
func (b *FileBackend) Path() string {
	return b.path
}

// Load reads the file. A missing file yields (nil, nil).
func (b *FileBackend) Load(ctx context.Context) (*State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(b.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", b.path, err)
	}
	state, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.path, err)
	}
	return state, nil
}

// Save atomically replaces the file with state.
func (b *FileBackend) Save(ctx context.Context, state *State) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := encodeState(state)
	if err != nil {
		return err
	}
	return writeFileAtomic(b.path, data)
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp_history_*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
