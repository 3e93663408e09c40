// pkg/prototype/watch.go
package prototype

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/resource"
)

// DebounceInterval drops repeated events for one file inside this window.
const DebounceInterval = 100 * time.Millisecond

// Watcher reports descriptor changes under a data directory. Events
// carries the changed file paths; the host drains it during update and
// reloads the registry.
type Watcher struct {
	watcher *fsnotify.Watcher
	Events  chan string
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
	logger  *logging.Logger
}

// NewWatcher watches root and every directory below it. The event loop runs
// as a goroutine tracked by rm and stops when rm shuts down or Close is
// called.
func NewWatcher(root string, rm *resource.Manager, logger *logging.Logger) (*Watcher, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return w.Add(p)
		}
		return nil
	})
	if err != nil {
		_ = w.Close()
		return nil, err
	}

	watcher := &Watcher{
		watcher: w,
		Events:  make(chan string, 16),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
		logger:  logger.Component("watcher"),
	}
	if err := rm.Go("prototype-watcher", watcher.run); err != nil {
		_ = w.Close()
		return nil, err
	}
	return watcher, nil
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.Events)
	defer close(w.Errors)
	defer w.Close()

	last := make(map[string]time.Time)
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) == 0 {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.watchIfDir(event.Name)
			}
			if !isDescriptor(event.Name) {
				continue
			}
			now := time.Now()
			if t, ok := last[event.Name]; ok && now.Sub(t) < DebounceInterval {
				continue
			}
			last[event.Name] = now
			w.logger.Debug(ctx, "descriptor changed", "file", event.Name, "op", event.Op.String())
			select {
			case w.Events <- event.Name:
			default:
				// reload already pending
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			select {
			case w.Errors <- err:
			default:
			}
		case <-w.closeCh:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) watchIfDir(name string) {
	if fi, err := os.Stat(name); err == nil && fi.IsDir() {
		_ = filepath.WalkDir(name, func(p string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() {
				_ = w.watcher.Add(p)
			}
			return nil
		})
	}
}

// Drain returns the distinct pending event paths, in arrival order,
// without blocking.
func (w *Watcher) Drain() []string {
	var names []string
	for {
		select {
		case name, ok := <-w.Events:
			if !ok {
				return names
			}
			if !slices.Contains(names, name) {
				names = append(names, name)
			}
		default:
			return names
		}
	}
}

func isDescriptor(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml" || ext == ".png"
}
