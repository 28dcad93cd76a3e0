package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/etnz/cashflow"
)

// Local keeps a ledger under a single key of a KV.
type Local struct {
	KV  KV
	Key string
}

// NewLocal returns a Local using the default key.
func NewLocal(kv KV) *Local { return &Local{KV: kv, Key: Key} }

// Load returns the stored entries. A missing or unreadable value is an empty
// ledger, the problem is only logged.
func (s *Local) Load(ctx context.Context) []cashflow.Entry {
	data, err := s.KV.Get(ctx, s.Key)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		log.Printf("cannot load the ledger, starting empty: %v", err)
		return nil
	}
	entries, err := cashflow.ImportJSON(bytes.NewReader(data))
	if err != nil {
		log.Printf("cannot parse the stored ledger, starting empty: %v", err)
		return nil
	}
	return entries
}

// Save overwrites the stored entries.
func (s *Local) Save(ctx context.Context, entries []cashflow.Entry) error {
	var buf bytes.Buffer
	if err := cashflow.EncodeEntries(&buf, entries); err != nil {
		return err
	}
	if err := s.KV.Set(ctx, s.Key, buf.Bytes()); err != nil {
		return fmt.Errorf("cannot save the ledger: %w", err)
	}
	return nil
}

// AutoSave returns a ledger subscriber saving the ledger after every
// mutation. Failures are logged, the in-memory ledger stays authoritative.
func (s *Local) AutoSave(ctx context.Context) func(cashflow.Event) {
	return func(ev cashflow.Event) {
		if err := s.Save(ctx, ev.Ledger.Snapshot()); err != nil {
			log.Printf("auto-save after %v failed: %v", ev.Op, err)
		}
	}
}

// Ledger loads the ledger and subscribes it to AutoSave.
func (s *Local) Ledger(ctx context.Context) *cashflow.Ledger {
	l := cashflow.NewLedger(s.Load(ctx)...)
	l.Subscribe(s.AutoSave(ctx))
	return l
}

// Close closes the underlying KV.
func (s *Local) Close() error { return s.KV.Close() }

// OpenLocal opens the store at uri and returns it as a Local.
func OpenLocal(ctx context.Context, uri string) (*Local, error) {
	kv, err := Open(ctx, uri)
	if err != nil {
		return nil, err
	}
	return NewLocal(kv), nil
}
