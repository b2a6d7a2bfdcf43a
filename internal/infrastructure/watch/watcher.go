package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// FixtureWatcher watches the studio document for out-of-band edits and
// fires a debounced reload callback. Atomic writers replace the file,
// so create and rename count as changes alongside plain writes.
type FixtureWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onChange func()
}

// NewFixtureWatcher creates a watcher for the given document path.
func NewFixtureWatcher(documentPath string, debounce time.Duration, onChange func()) (*FixtureWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	// Watch the directory: rename-into-place would detach a file watch.
	if err := w.Add(filepath.Dir(documentPath)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(documentPath), err)
	}
	return &FixtureWatcher{
		watcher:  w,
		path:     filepath.Clean(documentPath),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run starts the event loop. It blocks until the context is cancelled.
func (w *FixtureWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	// Continuous rewrites (an editor autosaving, a sync tool) still get
	// a reload within a few windows.
	debouncer := NewDebouncer(w.debounce, 4*w.debounce, func() {
		if w.onChange != nil {
			w.onChange()
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) && !event.Op.Has(fsnotify.Rename) {
				continue
			}
			debouncer.Trigger()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher error: %w", err)
		}
	}
}
