// Package watch regenerates slicey alias files when the Go sources they are
// derived from change.
package watch

import (
	"context"
	"fmt"
	"log"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 125 * time.Millisecond

// Dirs watches each directory in dirs and invokes regen with the directory
// containing a Go source file that was created or written. Events for the
// generated file named by skip are ignored so regeneration does not trigger
// itself. Blocks until ctx is done or the watcher shuts down.
func Dirs(ctx context.Context, dirs []string, skip string, regen func(dir string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
	}

	debounceEvents(ctx, debounceInterval, watcher, skip, regen)
	return nil
}

// debounceEvents collapses the bursts of events editors and build tools
// produce for a single save into one regen call per file.
func debounceEvents(ctx context.Context, interval time.Duration, watcher *fsnotify.Watcher, skip string, regen func(dir string)) {
	var mu sync.Mutex
	timers := make(map[string]*time.Timer)

	has := func(ev fsnotify.Event, op fsnotify.Op) bool {
		return ev.Op&op == op
	}

	for {
		select {
		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			log.Printf("file watch error: %v", err)
		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if !has(ev, fsnotify.Create) && !has(ev, fsnotify.Write) {
				continue
			}
			name := filepath.Base(ev.Name)
			if !strings.HasSuffix(name, ".go") || name == skip {
				continue
			}
			mu.Lock()
			t, ok := timers[ev.Name]
			mu.Unlock()
			if !ok {
				ev := ev
				t = time.AfterFunc(math.MaxInt64, func() {
					regen(filepath.Dir(ev.Name))
					mu.Lock()
					defer mu.Unlock()
					delete(timers, ev.Name)
				})
				t.Stop()

				mu.Lock()
				timers[ev.Name] = t
				mu.Unlock()
			}
			t.Reset(interval)
		case <-ctx.Done():
			return
		}
	}
}
