package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrUnknownBackend is returned by Open for an unsupported backend name.
var ErrUnknownBackend = errors.New("unknown storage backend")

// Backend is a local key-value store. Values are written whole; a Put is
// either fully visible or not at all.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

// Open returns the backend named by kind rooted at dir.
func Open(kind, dir string) (Backend, error) {
	switch kind {
	case "", BackendFile:
		return NewFileBackend(dir), nil
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, "whl.db"))
	default:
		return nil, fmt.Errorf("%w: %q (want %q or %q)", ErrUnknownBackend, kind, BackendFile, BackendSQLite)
	}
}
