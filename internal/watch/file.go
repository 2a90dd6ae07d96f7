// Package watch turns changes of the sidebar file into reload triggers.
package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cylondata/docnav/internal/logger"
)

const relevantOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename | fsnotify.Remove

// FileWatcher watches one file and sends on trigger after the file has been
// quiet for the debounce delay.
//
// The parent directory is watched rather than the file itself so that
// editors and config management tools that replace the file are seen.
type FileWatcher struct {
	path     string
	debounce time.Duration
	trigger  chan<- struct{}
	logger   logger.Logger
	watcher  *fsnotify.Watcher
	fired    atomic.Int64
	running  atomic.Bool
}

// NewFileWatcher creates a watcher for path. Start must be called to begin watching.
func NewFileWatcher(path string, debounce time.Duration, trigger chan<- struct{}, log logger.Logger) (*FileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	return &FileWatcher{
		path:     abs,
		debounce: debounce,
		trigger:  trigger,
		logger:   log,
		watcher:  fsw,
	}, nil
}

// Start begins watching. Events are processed until ctx is done or Stop is called.
func (w *FileWatcher) Start(ctx context.Context) error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	w.running.Store(true)
	go w.loop(ctx)

	w.logger.Info("sidebar file watcher started",
		logger.String("file", w.path),
		logger.Duration("debounce", w.debounce))
	return nil
}

// Stop closes the underlying watcher.
func (w *FileWatcher) Stop() error {
	w.running.Store(false)
	return w.watcher.Close()
}

// Running reports whether the watcher is active.
func (w *FileWatcher) Running() bool {
	return w.running.Load()
}

// Fired returns how many reloads the watcher has requested.
func (w *FileWatcher) Fired() int64 {
	return w.fired.Load()
}

func (w *FileWatcher) loop(ctx context.Context) {
	defer w.running.Store(false)

	var (
		timer  *time.Timer
		timerC <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path || ev.Op&relevantOps == 0 {
				continue
			}
			w.logger.Debug("sidebar file changed",
				logger.String("file", ev.Name),
				logger.String("op", ev.Op.String()))

			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}
			timerC = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("file watcher error", logger.Error(err))

		case <-timerC:
			timerC = nil
			w.fire()

		case <-ctx.Done():
			return
		}
	}
}

func (w *FileWatcher) fire() {
	select {
	case w.trigger <- struct{}{}:
		w.fired.Add(1)
		w.logger.Info("sidebar file change detected, reload requested",
			logger.String("file", w.path))
	default:
		w.logger.Debug("reload already pending, change coalesced")
	}
}
