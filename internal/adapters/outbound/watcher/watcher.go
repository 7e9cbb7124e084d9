package watcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the quiet period after the last event before a rerun.
const DefaultDebounce = 300 * time.Millisecond

var skipDirs = map[string]bool{
	".git":         true,
	".dartlint":    true,
	".dart_tool":   true,
	"build":        true,
	"node_modules": true,
}

// Watcher reruns a callback when source files under a directory change.
type Watcher struct {
	Extension string
	Debounce  time.Duration
}

func New(extension string) *Watcher {
	return &Watcher{Extension: extension, Debounce: DefaultDebounce}
}

// Watch blocks until ctx is cancelled. Bursts of events are coalesced so
// onChange runs once per quiet period, always on the calling goroutine.
func (w *Watcher) Watch(ctx context.Context, root string, onChange func()) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch init failed: %w", err)
	}
	defer fw.Close()

	if err := addRecursive(fw, root); err != nil {
		return fmt.Errorf("watching %s: %w", root, err)
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	var fire <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addRecursive(fw, ev.Name); err != nil {
						slog.Warn("watch: adding directory", "path", ev.Name, "error", err)
					}
					continue
				}
			}
			if !w.relevant(ev) {
				continue
			}
			slog.Debug("watch: change", "path", ev.Name, "op", ev.Op.String())
			fire = time.After(debounce)
		case <-fire:
			fire = nil
			onChange()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			slog.Error("watch error", "error", err)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(ev.Name), "/") {
		if skipDirs[part] {
			return false
		}
	}
	return w.Extension == "" || filepath.Ext(ev.Name) == w.Extension
}

func addRecursive(fw *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			return nil
		}
		if !info.IsDir() {
			return nil
		}
		if path != root && skipDirs[info.Name()] {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}
