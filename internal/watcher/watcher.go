// Package watcher triggers a callback when new scan files land in a folder.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// DefaultDebounce is the quiet period used when none is configured
const DefaultDebounce = 2 * time.Second

// DirWatcher watches one directory for created or written files
type DirWatcher struct {
	dir      string
	match    func(path string) bool
	onChange func(path string)
	debounce time.Duration
	log      logrus.FieldLogger
	ready    chan struct{}
}

// New creates a watcher for dir. match filters file names; onChange receives
// the last matching path once events have been quiet for the debounce period.
func New(dir string, match func(path string) bool, onChange func(path string)) *DirWatcher {
	if match == nil {
		match = func(string) bool { return true }
	}
	return &DirWatcher{
		dir:      dir,
		match:    match,
		onChange: onChange,
		debounce: DefaultDebounce,
		log:      logrus.StandardLogger(),
		ready:    make(chan struct{}),
	}
}

// WithDebounce sets the debounce duration
func (w *DirWatcher) WithDebounce(d time.Duration) *DirWatcher {
	if d > 0 {
		w.debounce = d
	}
	return w
}

// WithLogger sets the logger
func (w *DirWatcher) WithLogger(log logrus.FieldLogger) *DirWatcher {
	if log != nil {
		w.log = log
	}
	return w
}

// Ready is closed once the directory is being watched
func (w *DirWatcher) Ready() <-chan struct{} {
	return w.ready
}

// Watch blocks until the context is cancelled or the watcher fails.
// onChange runs on the Watch goroutine, so calls never overlap.
func (w *DirWatcher) Watch(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := fsw.Add(w.dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.dir, err)
	}
	close(w.ready)

	w.log.WithField("dir", w.dir).Info("Watching for new scans")

	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	var pending string

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if !w.match(filepath.Base(event.Name)) {
				continue
			}

			w.log.WithField("file", event.Name).Debug("Scan file event")
			pending = event.Name
			timer.Reset(w.debounce)

		case <-timer.C:
			if pending == "" {
				continue
			}
			w.log.WithField("file", pending).Info("Scan folder changed")
			w.onChange(pending)
			pending = ""

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.log.WithError(err).Warn("Watcher error")

		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
