package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// EventType describes the nature of a persistence change notification.
type EventType int

const (
	// EventHabitChanged indicates a single habit file was written or removed.
	EventHabitChanged EventType = iota

	// EventHabitsInvalidated means the change cannot be pinned to one habit
	// (order index rewritten, new directories, watcher errors); reload all.
	EventHabitsInvalidated
)

// Event is emitted by Persistence.Watch when underlying storage changes.
type Event struct {
	Type    EventType
	HabitID string
}

const watchDelay = 100 * time.Millisecond

// Watch streams change events until ctx is cancelled. Bursts are coalesced;
// events are dropped rather than blocking when the consumer falls behind.
// The channel is closed when ctx is done or the watcher fails.
func (p *persistence) Watch(ctx context.Context) (<-chan Event, error) {
	if err := os.MkdirAll(p.basePath, 0o755); err != nil {
		return nil, fmt.Errorf("store: ensure base path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("store: create watcher: %w", err)
	}

	dirs, err := collectDirs(p.basePath)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("store: enumerate directories: %w", err)
	}
	w := &dirWatcher{
		p:       p,
		fw:      fw,
		watched: make(map[string]struct{}, len(dirs)),
		out:     make(chan Event, 64),
		warn:    p.warn,
	}
	for _, dir := range dirs {
		if err := w.add(dir); err != nil {
			_ = fw.Close()
			return nil, err
		}
	}

	go w.run(ctx)
	return w.out, nil
}

type dirWatcher struct {
	p       *persistence
	fw      *fsnotify.Watcher
	watched map[string]struct{}
	out     chan Event
	warn    io.Writer
}

func (w *dirWatcher) add(dir string) error {
	dir = filepath.Clean(dir)
	if _, ok := w.watched[dir]; ok {
		return nil
	}
	if err := w.fw.Add(dir); err != nil {
		return fmt.Errorf("store: watch %s: %w", dir, err)
	}
	w.watched[dir] = struct{}{}
	return nil
}

func (w *dirWatcher) run(ctx context.Context) {
	defer close(w.out)
	defer func() {
		if err := w.fw.Close(); err != nil {
			fmt.Fprintf(w.warn, "store: watcher close: %v\n", err)
		}
	}()

	throttle := newEventThrottle(watchDelay, w.send)
	defer throttle.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			throttle.Enqueue(Event{Type: EventHabitsInvalidated})
		case evt, ok := <-w.fw.Events:
			if !ok {
				return
			}
			throttle.Enqueue(w.classify(evt))
		}
	}
}

func (w *dirWatcher) classify(evt fsnotify.Event) Event {
	if evt.Op&fsnotify.Create == fsnotify.Create {
		if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
			if err := w.add(evt.Name); err != nil {
				fmt.Fprintln(w.warn, err)
			}
			return Event{Type: EventHabitsInvalidated}
		}
	}
	if id := w.p.habitForPath(evt.Name); id != "" {
		return Event{Type: EventHabitChanged, HabitID: id}
	}
	return Event{Type: EventHabitsInvalidated}
}

func (w *dirWatcher) send(ev Event) {
	select {
	case w.out <- ev:
	default:
	}
}

// collectDirs walks base and returns all directories that should be watched.
func collectDirs(base string) ([]string, error) {
	dirs := []string{base}
	err := filepath.WalkDir(base, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() && path != base {
			dirs = append(dirs, path)
		}
		return nil
	})
	return dirs, err
}

// habitForPath derives the habit id from a diskv path, or "" for anything
// that is not a habit file.
func (p *persistence) habitForPath(path string) string {
	rel, err := filepath.Rel(p.basePath, path)
	if err != nil {
		return ""
	}
	parts := strings.Split(rel, string(os.PathSeparator))
	if len(parts) != 2 || parts[0] != habitsBucket {
		return ""
	}
	id, ok := fromFileName(parts[1])
	if !ok {
		return ""
	}
	return id
}

// eventThrottle coalesces notifications so consumers reload once per burst.
// An invalidation swallows the per-habit events of the same burst.
type eventThrottle struct {
	mu          sync.Mutex
	timer       *time.Timer
	delay       time.Duration
	send        func(Event)
	invalidated bool
	habits      map[string]struct{}

	// sendMu is held while a flush sends; stopped is set under it
	sendMu  sync.Mutex
	stopped bool
}

func newEventThrottle(delay time.Duration, send func(Event)) *eventThrottle {
	return &eventThrottle{
		delay:  delay,
		send:   send,
		habits: make(map[string]struct{}),
	}
}

func (t *eventThrottle) Enqueue(ev Event) {
	t.mu.Lock()
	defer t.mu.Unlock()
	switch ev.Type {
	case EventHabitsInvalidated:
		t.invalidated = true
	default:
		t.habits[ev.HabitID] = struct{}{}
	}
	if t.timer == nil {
		t.timer = time.AfterFunc(t.delay, t.flush)
	}
}

func (t *eventThrottle) flush() {
	t.mu.Lock()
	invalidated, habits := t.invalidated, t.habits
	t.invalidated = false
	t.habits = make(map[string]struct{})
	t.timer = nil
	t.mu.Unlock()

	t.sendMu.Lock()
	defer t.sendMu.Unlock()
	if t.stopped {
		return
	}
	if invalidated {
		t.send(Event{Type: EventHabitsInvalidated})
		return
	}
	for id := range habits {
		t.send(Event{Type: EventHabitChanged, HabitID: id})
	}
}

// Stop cancels a pending flush and waits for one that is already sending.
// Nothing is sent after Stop returns.
func (t *eventThrottle) Stop() {
	t.mu.Lock()
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.mu.Unlock()

	t.sendMu.Lock()
	t.stopped = true
	t.sendMu.Unlock()
}
