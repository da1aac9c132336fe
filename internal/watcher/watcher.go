package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports changes to a single file's modification time. The
// parent directory is watched because games usually replace the save
// rather than write it in place.
type Watcher struct {
	path     string
	settle   time.Duration
	onChange func(mtime time.Time)
	logger   *slog.Logger

	mu         sync.Mutex
	last       time.Time
	ignoreNext bool
}

// New creates a watcher that calls onChange once path's mtime has
// changed and then stayed put for settle.
func New(path string, settle time.Duration, onChange func(mtime time.Time), logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{path: path, settle: settle, onChange: onChange, logger: logger}
}

// SetBaseline makes mtime the reference for the next comparison.
func (w *Watcher) SetBaseline(mtime time.Time) {
	w.mu.Lock()
	w.last = mtime
	w.mu.Unlock()
}

// Suppress skips the next directory event. Callers rewriting the file
// themselves should also call SetBaseline with the new mtime.
func (w *Watcher) Suppress() {
	w.mu.Lock()
	w.ignoreNext = true
	w.mu.Unlock()
}

// Unsuppress drops a pending Suppress, e.g. when the rewrite it was
// meant for failed.
func (w *Watcher) Unsuppress() {
	w.mu.Lock()
	w.ignoreNext = false
	w.mu.Unlock()
}

// Suppressed reports whether the next event will be skipped.
func (w *Watcher) Suppressed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.ignoreNext
}

// Run blocks, watching until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	w.logger.Info("watching", "path", w.path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	var pending time.Time

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			w.logger.Debug("fs event", "name", ev.Name, "op", ev.Op.String())
			if w.consumeSuppress() {
				continue
			}
			mtime, changed := w.check()
			if !changed {
				continue
			}
			pending = mtime
			timer.Reset(w.settle)
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		case <-timer.C:
			mtime, err := w.stat()
			if err != nil {
				w.logger.Debug("save disappeared before settling", "error", err)
				continue
			}
			if !mtime.Equal(pending) {
				pending = mtime
				timer.Reset(w.settle)
				continue
			}
			w.fire(mtime)
		}
	}
}

func (w *Watcher) stat() (time.Time, error) {
	info, err := os.Stat(w.path)
	if err != nil {
		return time.Time{}, err
	}
	return info.ModTime(), nil
}

// check reports whether the save's mtime differs from the baseline.
func (w *Watcher) check() (time.Time, bool) {
	mtime, err := w.stat()
	if err != nil {
		return time.Time{}, false
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return mtime, !mtime.Equal(w.last)
}

func (w *Watcher) fire(mtime time.Time) {
	w.mu.Lock()
	if mtime.Equal(w.last) {
		w.mu.Unlock()
		return
	}
	w.last = mtime
	w.mu.Unlock()

	w.onChange(mtime)
}

func (w *Watcher) consumeSuppress() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.ignoreNext {
		return false
	}
	w.ignoreNext = false
	w.logger.Debug("event ignored")
	return true
}
