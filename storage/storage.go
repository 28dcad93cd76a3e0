// Package storage persists a ledger in a durable key-value store.
//
// A store is selected by a URI:
//
//	file:<dir>        one <key>.json file per key in dir
//	sqlite:<path>     a sqlite database
//	postgres:<dsn>    a postgres database, postgres:// URLs are accepted as is
//	mem:              a process-local store, for tests
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// ErrNotFound is returned by Get when the key has never been set.
var ErrNotFound = errors.New("key not found")

// Key is the key the ledger is stored under.
const Key = "flucas_transactions"

// KV is a durable key-value store.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open opens the store described by uri.
func Open(ctx context.Context, uri string) (KV, error) {
	if strings.HasPrefix(uri, "postgres://") || strings.HasPrefix(uri, "postgresql://") {
		return OpenPostgres(ctx, uri)
	}
	scheme, rest, ok := strings.Cut(uri, ":")
	if !ok {
		return nil, fmt.Errorf("invalid store %q want <scheme>:<location>", uri)
	}
	switch scheme {
	case "file":
		return NewFile(rest)
	case "sqlite":
		return OpenSQLite(ctx, rest)
	case "postgres":
		return OpenPostgres(ctx, rest)
	case "mem":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store scheme %q, want one of file, sqlite, postgres, mem", scheme)
	}
}

// Memory is an in-memory KV.
type Memory struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory { return &Memory{values: make(map[string][]byte)} }

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Close() error { return nil }

var _ KV = (*Memory)(nil)
