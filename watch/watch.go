// Package watch recompiles sources when they change on disk.
package watch

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Handler is called once per settled change of a watched file.
type Handler func(ctx context.Context, path string)

// Watcher debounces filesystem events per file. Editors often write files
// in multiple steps, and atomic saves show up as remove or rename events.
type Watcher struct {
	debounce time.Duration
	onChange Handler
	watcher  *fsnotify.Watcher
	files    map[string]struct{}

	mu     sync.Mutex
	timers map[string]*time.Timer
}

// New watches files and calls onChange after debounce has passed without
// further events for the same file.
func New(files []string, debounce time.Duration, onChange Handler) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}

	w := &Watcher{
		debounce: debounce,
		onChange: onChange,
		watcher:  watcher,
		files:    make(map[string]struct{}, len(files)),
		timers:   make(map[string]*time.Timer),
	}

	for _, file := range files {
		path := filepath.Clean(file)
		if err := watcher.Add(path); err != nil {
			_ = watcher.Close()
			return nil, fmt.Errorf("failed to watch %s: %w", path, err)
		}
		w.files[path] = struct{}{}
	}

	return w, nil
}

// Run processes events until ctx is done, then closes the watcher.
func (w *Watcher) Run(ctx context.Context) {
	defer w.close()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			path := filepath.Clean(event.Name)
			if _, ok := w.files[path]; !ok {
				continue
			}
			w.schedule(ctx, path)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			log.Printf("File watcher error: %v", err)
		}
	}
}

func (w *Watcher) schedule(ctx context.Context, path string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if timer, ok := w.timers[path]; ok {
		timer.Stop()
	}
	w.timers[path] = time.AfterFunc(w.debounce, func() {
		if ctx.Err() != nil {
			return
		}
		// Re-add to catch files re-created by atomic saves.
		if err := w.watcher.Add(path); err != nil {
			log.Printf("Warning: failed to watch %s: %v", path, err)
		}
		w.onChange(ctx, path)
	})
}

func (w *Watcher) close() {
	w.mu.Lock()
	for _, timer := range w.timers {
		timer.Stop()
	}
	w.mu.Unlock()
	_ = w.watcher.Close()
}
