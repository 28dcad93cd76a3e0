package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// File stores each key in its own <key>.json file in a directory.
type File struct {
	dir string
}

// NewFile returns a File store in dir. The directory is created on first write.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, errors.New("missing directory for file store")
	}
	return &File{dir: dir}, nil
}

// Dir returns the directory of the store.
func (f *File) Dir() string { return f.dir }

// Path returns the file holding key.
func (f *File) Path(key string) string { return filepath.Join(f.dir, key+".json") }

func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	data, err := os.ReadFile(f.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", key, err)
	}
	return data, nil
}

// Set replaces the file atomically, a reader sees either the old or the new value.
func (f *File) Set(_ context.Context, key string, value []byte) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("cannot create store directory: %w", err)
	}
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(value); err != nil {
		tmp.Close()
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), f.Path(key)); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}

func (f *File) Close() error { return nil }

var _ KV = (*File)(nil)
