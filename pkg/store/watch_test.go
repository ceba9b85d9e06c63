package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"tableflip.dev/consistency/pkg/habit"
)

func TestPersistenceWatchEmitsHabitChanges(t *testing.T) {
	p, err := Load(PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Give the watcher goroutine time to subscribe before writing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Save(habit.New("1", "Run", habit.Decimal, "miles")); err != nil {
		t.Fatalf("save habit: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			switch evt.Type {
			case EventHabitsInvalidated:
				return
			case EventHabitChanged:
				if evt.HabitID != "1" {
					t.Fatalf("expected habit '1', got %q", evt.HabitID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for habit change event")
		}
	}
}

func TestWatchClosesOnCancel(t *testing.T) {
	p, err := Load(PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	cancel()

	deadline := time.After(2 * time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("channel not closed after cancel")
		}
	}
}

func TestHabitForPath(t *testing.T) {
	p := &persistence{basePath: "/data"}
	for _, tc := range []struct {
		path string
		want string
	}{
		{"/data/habits/" + toKey("12")[len(habitsBucket)+1:], "12"},
		{"/data/.order.json", ""},
		{"/data/habits/zz", ""},
		{"/elsewhere/habits/31", ""},
	} {
		if got := p.habitForPath(tc.path); got != tc.want {
			t.Fatalf("habitForPath(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}

func TestThrottleInvalidationWins(t *testing.T) {
	var got []Event
	done := make(chan struct{})
	th := newEventThrottle(10*time.Millisecond, func(ev Event) {
		got = append(got, ev)
		close(done)
	})
	defer th.Stop()

	th.Enqueue(Event{Type: EventHabitChanged, HabitID: "1"})
	th.Enqueue(Event{Type: EventHabitsInvalidated})
	th.Enqueue(Event{Type: EventHabitChanged, HabitID: "2"})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("throttle never flushed")
	}
	if len(got) != 1 || got[0].Type != EventHabitsInvalidated {
		t.Fatalf("expected a single invalidation, got %+v", got)
	}
}

func TestThrottleStopWaitsForFlush(t *testing.T) {
	var (
		mu      sync.Mutex
		sent    int
		once    sync.Once
		entered = make(chan struct{})
		release = make(chan struct{})
	)
	th := newEventThrottle(time.Millisecond, func(Event) {
		once.Do(func() { close(entered) })
		<-release
		mu.Lock()
		sent++
		mu.Unlock()
	})

	th.Enqueue(Event{Type: EventHabitChanged, HabitID: "1"})
	select {
	case <-entered:
	case <-time.After(2 * time.Second):
		t.Fatal("flush never started")
	}

	stopped := make(chan struct{})
	go func() {
		th.Stop()
		close(stopped)
	}()
	select {
	case <-stopped:
		t.Fatal("Stop returned while a flush was still sending")
	case <-time.After(50 * time.Millisecond):
	}
	close(release)
	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop never returned")
	}

	th.Enqueue(Event{Type: EventHabitsInvalidated})
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if sent != 1 {
		t.Fatalf("sent = %d, want only the flush that started before Stop", sent)
	}
}
