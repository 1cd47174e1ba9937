package discovery

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// ChangeEventType mirrors the file-system event kinds the orchestrator's
// incremental mode reacts to.
type ChangeEventType int

const (
	ChangeCreate ChangeEventType = iota
	ChangeWrite
	ChangeRemove
	ChangeRename
)

// Watcher debounces raw fsnotify events into batched change sets, so a
// save that touches several files in quick succession triggers one
// re-analysis pass instead of one per event.
type Watcher struct {
	walker   *Walker
	fs       *fsnotify.Watcher
	debounce time.Duration

	mu     sync.Mutex
	events map[string]ChangeEventType
	timer  *time.Timer

	OnBatch func(map[string]ChangeEventType)
}

func NewWatcher(walker *Walker, debounce time.Duration) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	return &Watcher{
		walker:   walker,
		fs:       fw,
		debounce: debounce,
		events:   make(map[string]ChangeEventType),
	}, nil
}

// Start adds a recursive watch under root and begins processing events
// until ctx is cancelled.
func (w *Watcher) Start(ctx context.Context, root string) error {
	if err := w.addWatches(root); err != nil {
		return err
	}
	go w.loop(ctx)
	return nil
}

func (w *Watcher) addWatches(root string) error {
	visited := make(map[string]bool)
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil || !info.IsDir() {
			return nil
		}
		real, err := filepath.EvalSymlinks(path)
		if err != nil {
			return nil
		}
		if visited[real] {
			return filepath.SkipDir
		}
		visited[real] = true

		rel, err := filepath.Rel(root, path)
		if err == nil && rel != "." && w.walker.excluded(rel, true) {
			return filepath.SkipDir
		}
		return w.fs.Add(path)
	})
}

func (w *Watcher) loop(ctx context.Context) {
	defer w.fs.Close()
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.fs.Events:
			if !ok {
				return
			}
			w.record(ev)
		case _, ok := <-w.fs.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) record(ev fsnotify.Event) {
	var kind ChangeEventType
	switch {
	case ev.Op&fsnotify.Create != 0:
		kind = ChangeCreate
	case ev.Op&fsnotify.Remove != 0:
		kind = ChangeRemove
	case ev.Op&fsnotify.Rename != 0:
		kind = ChangeRename
	case ev.Op&fsnotify.Write != 0:
		kind = ChangeWrite
	default:
		return
	}

	w.mu.Lock()
	w.events[ev.Name] = kind
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.flush)
	w.mu.Unlock()
}

func (w *Watcher) flush() {
	w.mu.Lock()
	batch := w.events
	w.events = make(map[string]ChangeEventType)
	w.mu.Unlock()

	if len(batch) == 0 || w.OnBatch == nil {
		return
	}
	w.OnBatch(batch)
}

func (w *Watcher) Close() error {
	return w.fs.Close()
}
