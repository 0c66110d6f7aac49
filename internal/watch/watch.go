// Package watch reports saves of a single file, debounced so a burst of
// filesystem events from one editor save collapses into one notification.
package watch

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/thiagokokada/linelog-go/internal/debounce"
)

// DefaultDebounceDelay is a reasonable delay for editor saves.
const DefaultDebounceDelay = 350 * time.Millisecond

// Watcher reports saves of one file on its channel. It watches the file's
// directory rather than the file itself: many editors replace files via
// rename, which would silently detach a direct watch.
type Watcher struct {
	watcher  *fsnotify.Watcher
	debounce *debounce.Debouncer

	// C receives one value per debounced save. It is never closed; callers
	// stop via Close and their own done signal.
	C chan struct{}
}

// New starts watching path. delay <= 0 uses DefaultDebounceDelay.
func New(path string, delay time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("fsnotify: %w", err)
	}
	dir := filepath.Dir(abs)
	if err := watcher.Add(dir); err != nil {
		err = errors.Join(err, watcher.Close())
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}
	slog.Debug("watching", slog.String("dir", dir), slog.String("file", filepath.Base(abs)))

	w := &Watcher{watcher: watcher, C: make(chan struct{}, 1)}
	w.debounce = debounce.New(delay, w.notify)
	go w.loop(filepath.Base(abs))
	return w, nil
}

// Close stops the watcher. Pending debounced notifications are dropped.
func (w *Watcher) Close() error {
	w.debounce.Stop()
	return w.watcher.Close()
}

func (w *Watcher) notify() {
	select {
	case w.C <- struct{}{}:
	default:
		// A notification is already pending; the reader will see fresh
		// content when it gets there.
	}
}

func (w *Watcher) loop(name string) {
	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			slog.Debug("fsnotify event",
				slog.String("op", ev.Op.String()),
				slog.String("path", ev.Name),
			)
			w.debounce.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("fsnotify error", slog.Any("error", err))
		}
	}
}
