// Package watch reruns an action when the beads directory changes.
package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the directory must stay quiet before the action
// runs.
const DefaultDebounce = 500 * time.Millisecond

// ignored suffixes are bd's runtime files, which change without the issues
// changing.
var ignored = []string{".lock", ".sock", ".pid", ".log", "-shm"}

// Relevant reports whether a change to name can affect the issue graph.
func Relevant(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, suffix := range ignored {
		if strings.HasSuffix(base, suffix) {
			return false
		}
	}
	return true
}

// Watcher calls OnChange after bursts of writes in Dir.
type Watcher struct {
	Dir      string
	Debounce time.Duration
	OnChange func(ctx context.Context)
	Logger   *slog.Logger
}

// New creates a Watcher with the default debounce.
func New(dir string, onChange func(ctx context.Context)) *Watcher {
	return &Watcher{
		Dir:      dir,
		Debounce: DefaultDebounce,
		OnChange: onChange,
		Logger:   slog.Default(),
	}
}

// Run watches until ctx is cancelled. OnChange runs on the watcher goroutine,
// so changes arriving while it runs are coalesced into the next call.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(w.Dir); err != nil {
		return fmt.Errorf("watch %s: %w", w.Dir, err)
	}
	w.Logger.Info("watching for changes", "dir", w.Dir, "debounce", w.Debounce)

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil

		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod || !Relevant(event.Name) {
				continue
			}
			w.Logger.Debug("change detected", "file", event.Name, "op", event.Op.String())
			timer.Reset(debounce)

		case <-timer.C:
			if w.OnChange != nil {
				w.OnChange(ctx)
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.Logger.Error("watch error", "err", err)
		}
	}
}
