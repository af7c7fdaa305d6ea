package app

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bft-labs/qrfountain/internal/ports"
)

// DefaultDebounceDelay is how long the watcher waits after the last change
// before regenerating.
const DefaultDebounceDelay = 200 * time.Millisecond

// Watcher calls a handler whenever one of the watched files is written.
// Bursts of events are debounced into one call, and calls never overlap.
type Watcher struct {
	files    map[string]bool
	dirs     map[string]bool
	fw       *fsnotify.Watcher
	debounce time.Duration
	onChange func(ctx context.Context) error
	logger   ports.Logger
}

// NewWatcher creates a Watcher for the given files. Empty paths are skipped.
func NewWatcher(files []string, debounce time.Duration, onChange func(ctx context.Context) error, logger ports.Logger) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounceDelay
	}
	w := &Watcher{
		debounce: debounce,
		onChange: onChange,
		logger:   logger,
	}
	w.files, w.dirs = resolveFiles(files)
	return w
}

// SetFiles replaces the set of watched files. It must be called before Run
// or from the change handler, which runs on the watcher goroutine.
func (w *Watcher) SetFiles(files []string) error {
	newFiles, newDirs := resolveFiles(files)
	if w.fw != nil {
		for dir := range newDirs {
			if w.dirs[dir] {
				continue
			}
			if err := w.fw.Add(dir); err != nil {
				return fmt.Errorf("watch %s: %w", dir, err)
			}
		}
		for dir := range w.dirs {
			if !newDirs[dir] {
				_ = w.fw.Remove(dir)
			}
		}
	}
	w.files, w.dirs = newFiles, newDirs
	return nil
}

// Run watches until ctx is canceled. Handler errors are logged and do not
// stop the watcher. Directories are watched instead of files so editors that
// replace files on save are still noticed.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	for dir := range w.dirs {
		if err := fw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
	}
	w.fw = fw
	defer func() { w.fw = nil }()
	w.logger.Info("watching for changes", ports.Int("files", len(w.files)))

	d := newDebouncer(w.debounce)
	defer d.stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(event) {
				continue
			}
			w.logger.Debug("file changed", ports.String("path", event.Name), ports.String("op", event.Op.String()))
			d.reset()

		case <-d.C():
			if err := w.onChange(ctx); err != nil {
				w.logger.Error("regeneration failed", ports.Err(err))
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watcher error", ports.Err(err))
		}
	}
}

func (w *Watcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
		return false
	}
	abs, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return w.files[abs]
}

func resolveFiles(files []string) (map[string]bool, map[string]bool) {
	set := make(map[string]bool)
	dirs := make(map[string]bool)
	for _, f := range files {
		if f == "" {
			continue
		}
		abs, err := filepath.Abs(f)
		if err != nil {
			abs = filepath.Clean(f)
		}
		set[abs] = true
		dirs[filepath.Dir(abs)] = true
	}
	return set, dirs
}

// debouncer fires once, delay after the most recent reset.
type debouncer struct {
	timer *time.Timer
	delay time.Duration
}

func newDebouncer(delay time.Duration) *debouncer {
	t := time.NewTimer(delay)
	if !t.Stop() {
		<-t.C
	}
	return &debouncer{timer: t, delay: delay}
}

// reset restarts the delay. A tick that fired but was not yet received is
// discarded so it cannot end the new delay early.
func (d *debouncer) reset() {
	if !d.timer.Stop() {
		select {
		case <-d.timer.C:
		default:
		}
	}
	d.timer.Reset(d.delay)
}

func (d *debouncer) C() <-chan time.Time {
	return d.timer.C
}

func (d *debouncer) stop() {
	d.timer.Stop()
}
