package storage

import (
	"context"
	"errors"
	"net/url"
	"os"
	"path/filepath"
)

// File stores one JSON document per key in a directory. Writes go to a temporary file
// that is renamed over the old one.
type File struct {
	dir string
}

// NewFile creates a file store rooted at dir, creating the directory if needed.
func NewFile(dir string) (*File, error) {
	if dir == "" {
		return nil, &Error{Backend: "file", Op: "open", Cause: errors.New("empty directory")}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &Error{Backend: "file", Op: "open", Cause: err}
	}
	return &File{dir: dir}, nil
}

func (f *File) path(key string) string {
	return filepath.Join(f.dir, url.PathEscape(key)+".json")
}

// Get implements KV.
func (f *File) Get(_ context.Context, key string) ([]byte, error) {
	b, err := os.ReadFile(f.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, &Error{Backend: "file", Op: "get", Key: key, Cause: err}
	}
	return b, nil
}

// Put implements KV.
func (f *File) Put(_ context.Context, key string, value []byte) error {
	tmp, err := os.CreateTemp(f.dir, ".tmp-*")
	if err != nil {
		return &Error{Backend: "file", Op: "put", Key: key, Cause: err}
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return &Error{Backend: "file", Op: "put", Key: key, Cause: err}
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return &Error{Backend: "file", Op: "put", Key: key, Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return &Error{Backend: "file", Op: "put", Key: key, Cause: err}
	}
	if err := os.Rename(tmpName, f.path(key)); err != nil {
		return &Error{Backend: "file", Op: "put", Key: key, Cause: err}
	}
	return nil
}

// Delete implements KV.
func (f *File) Delete(_ context.Context, key string) error {
	err := os.Remove(f.path(key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return &Error{Backend: "file", Op: "delete", Key: key, Cause: err}
	}
	return nil
}

// Close implements KV.
func (f *File) Close() error {
	return nil
}
