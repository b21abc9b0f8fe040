// Package watch reports writes to the tracker database made by other
// processes, so long-running views can reload.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces the burst of events a single SQLite commit
// produces (main file, -wal, -shm).
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches the directory holding a database file.
type Watcher struct {
	watcher  *fsnotify.Watcher
	base     string
	debounce time.Duration
	logger   *log.Logger
}

// New watches the directory of dbPath. Only events for dbPath and its
// -wal/-journal siblings are reported.
func New(dbPath string, logger *log.Logger) (*Watcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(dbPath)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(dbPath), err)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		watcher:  w,
		base:     filepath.Base(dbPath),
		debounce: DefaultDebounce,
		logger:   logger,
	}, nil
}

// Close stops watching.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}

// Relevant reports whether an event on name concerns the watched database.
func (w *Watcher) Relevant(name string) bool {
	b := filepath.Base(name)
	if b == w.base {
		return true
	}
	return strings.HasPrefix(b, w.base+"-") && !strings.HasSuffix(b, "-shm")
}

// Run calls onChange once per burst of writes until ctx is canceled or
// the watcher is closed.
func (w *Watcher) Run(ctx context.Context, onChange func()) {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 || !w.Relevant(event.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C
		case <-timerCh:
			timerCh = nil
			onChange()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Printf("watch error: %v", err)
		}
	}
}
