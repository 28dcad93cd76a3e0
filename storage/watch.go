package storage

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/etnz/cashflow"
	"github.com/fsnotify/fsnotify"
)

// ErrNotWatchable is returned by Watch for stores that are not files.
var ErrNotWatchable = errors.New("only file stores can be watched")

// settle is the quiet period after the last change before a reload.
const settle = 200 * time.Millisecond

// Watch calls fn with the stored entries every time another process changes
// them, until ctx is done. Bursts of changes are reported once.
func (s *Local) Watch(ctx context.Context, fn func([]cashflow.Entry)) error {
	f, ok := s.KV.(*File)
	if !ok {
		return ErrNotWatchable
	}
	if err := os.MkdirAll(f.Dir(), 0o755); err != nil {
		return fmt.Errorf("cannot create store directory: %w", err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()
	// the directory is watched, the file itself is replaced on every save.
	if err := w.Add(f.Dir()); err != nil {
		return err
	}
	target := f.Path(s.Key)
	log.Printf("watching %s", target)

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Name != target || !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			timer.Reset(settle)
		case <-timer.C:
			fn(s.Load(ctx))
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch error: %v", err)
		}
	}
}
