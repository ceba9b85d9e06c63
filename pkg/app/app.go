package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"tableflip.dev/consistency/pkg/grid"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/metrics"
	"tableflip.dev/consistency/pkg/store"
	"tableflip.dev/consistency/pkg/timeline"
	"tableflip.dev/consistency/pkg/tracker"
)

// Service provides high-level operations for habits and the timeline.
// It wraps the in-memory tracker, persistence and the session's date window
// so UIs, the CLI and the MCP server share one set of rules.
//
// A nil Persistence gives a memory-only session.
type Service struct {
	Persistence store.Persistence
	Logger      *zap.Logger

	// Today overrides the current date; nil means habit.Today.
	Today func() habit.DateKey
	// WindowOptions tune the timeline created by Window.
	WindowOptions []timeline.Option

	once    sync.Once
	tracker *tracker.Store

	// writeMu serializes a mutation with its save so a rollback only
	// discards its own change.
	writeMu sync.Mutex

	winMu  sync.Mutex
	window *timeline.Window
}

var (
	ErrHabitNotFound = errors.New("app: habit not found")
	ErrTypeMismatch  = errors.New("app: operation does not apply to this habit type")
	ErrNameRequired  = errors.New("app: habit name required")
	ErrNoPersistence = errors.New("app: no persistence configured")
)

// Tracker returns the in-memory store backing the service.
func (s *Service) Tracker() *tracker.Store {
	s.once.Do(func() {
		if s.tracker == nil {
			s.tracker = tracker.New()
		}
	})
	return s.tracker
}

func (s *Service) log() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

func (s *Service) today() habit.DateKey {
	if s.Today != nil {
		return s.Today()
	}
	return habit.Today()
}

// Open loads habits from persistence, replacing whatever the session held.
func (s *Service) Open(ctx context.Context) error {
	if s.Persistence == nil {
		return nil
	}
	habits, err := s.Persistence.Load(ctx)
	if err != nil {
		return fmt.Errorf("app: load habits: %w", err)
	}
	s.writeMu.Lock()
	s.Tracker().Replace(habits)
	s.writeMu.Unlock()
	s.log().Debug("habits loaded", zap.Int("count", len(habits)))
	return nil
}

// Reload is Open under the name the watch loop uses.
func (s *Service) Reload(ctx context.Context) error {
	return s.Open(ctx)
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Habits returns the current ordered habit list.
func (s *Service) Habits() []habit.Habit {
	return s.Tracker().Habits()
}

// Habit returns the habit with id.
func (s *Service) Habit(id string) (habit.Habit, error) {
	h, ok := s.Tracker().Habit(id)
	if !ok {
		return habit.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	return h, nil
}

// AddHabit creates a habit with the next free id and stores it.
func (s *Service) AddHabit(ctx context.Context, name string, t habit.Type, unit string) (habit.Habit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return habit.Habit{}, ErrNameRequired
	}
	if !t.Valid() {
		return habit.Habit{}, fmt.Errorf("%w %q", habit.ErrUnknownType, t)
	}
	if !t.Numeric() {
		unit = ""
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tr := s.Tracker()
	prev := tr.Habits()
	h := habit.New(s.nextID(), name, t, strings.TrimSpace(unit))
	tr.AddHabit(h)
	metrics.RecordMutation(string(tracker.OpAdd), tracker.Applied.String())

	if err := s.persistAdded(h); err != nil {
		s.rollback(prev, h)
		return habit.Habit{}, err
	}
	s.log().Info("habit added", zap.String("id", h.ID), zap.String("type", string(t)))
	return h, nil
}

// Import appends fully formed habits, keeping their ids and entries.
func (s *Service) Import(ctx context.Context, habits ...habit.Habit) error {
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tr := s.Tracker()
	prev := tr.Habits()
	for _, h := range habits {
		tr.AddHabit(h)
		metrics.RecordMutation(string(tracker.OpAdd), tracker.Applied.String())
	}
	if err := s.persistAdded(habits...); err != nil {
		s.rollback(prev, habits...)
		return err
	}
	return nil
}

// persistAdded writes new habits and the order index.
func (s *Service) persistAdded(habits ...habit.Habit) error {
	for _, h := range habits {
		if err := s.save(h); err != nil {
			return err
		}
	}
	return s.saveOrder()
}

// rollback restores the list from before a failed add and removes any
// files already written for the added habits. Files of habits that existed
// before are left alone.
func (s *Service) rollback(prev []habit.Habit, added ...habit.Habit) {
	s.Tracker().Replace(prev)
	if s.Persistence == nil {
		return
	}
	existed := make(map[string]bool, len(prev))
	for _, h := range prev {
		existed[h.ID] = true
	}
	for _, h := range added {
		if existed[h.ID] {
			continue
		}
		if err := s.Persistence.Delete(h.ID); err != nil {
			s.log().Warn("rollback delete", zap.String("id", h.ID), zap.Error(err))
		}
	}
}

// nextID starts from the tracker's count based id and skips ids still taken
// after removals.
func (s *Service) nextID() string {
	tr := s.Tracker()
	id := tr.NextID()
	n, err := strconv.Atoi(id)
	if err != nil {
		return id
	}
	for {
		if _, taken := tr.Habit(id); !taken {
			return id
		}
		n++
		id = strconv.Itoa(n)
	}
}

// Toggle flips a boolean habit on key.
func (s *Service) Toggle(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error) {
	return s.mutate(tracker.OpToggle, id, key, func(tr *tracker.Store) tracker.Outcome {
		return tr.ToggleBoolean(id, key)
	})
}

// Set records raw on key for a numeric habit. Negative values are rejected.
func (s *Service) Set(ctx context.Context, id string, key habit.DateKey, raw decimal.Decimal) (habit.Habit, error) {
	if raw.IsNegative() {
		return habit.Habit{}, habit.ErrNegativeValue
	}
	return s.mutate(tracker.OpSet, id, key, func(tr *tracker.Store) tracker.Outcome {
		return tr.SetNumeric(id, key, raw)
	})
}

// SetText parses user input and records it on key.
func (s *Service) SetText(ctx context.Context, id string, key habit.DateKey, text string) (habit.Habit, error) {
	h, err := s.Habit(id)
	if err != nil {
		return habit.Habit{}, err
	}
	if !h.Type.Numeric() {
		return habit.Habit{}, fmt.Errorf("%w: %s is %s", ErrTypeMismatch, id, h.Type.DisplayName())
	}
	v, err := habit.ParseValue(h.Type, text)
	if err != nil {
		return habit.Habit{}, err
	}
	return s.Set(ctx, id, key, v.Value)
}

// Increment is the quick-tap completion: toggle for boolean habits, one unit
// up for numeric ones.
func (s *Service) Increment(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error) {
	return s.mutate(tracker.OpIncrement, id, key, func(tr *tracker.Store) tracker.Outcome {
		return tr.IncrementEntry(id, key)
	})
}

// Decrement steps a numeric habit one unit down, stopping at zero.
func (s *Service) Decrement(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error) {
	return s.mutate(tracker.OpDecrement, id, key, func(tr *tracker.Store) tracker.Outcome {
		return tr.DecrementEntry(id, key)
	})
}

// Clear unsets key.
func (s *Service) Clear(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error) {
	return s.mutate(tracker.OpClear, id, key, func(tr *tracker.Store) tracker.Outcome {
		return tr.ClearEntry(id, key)
	})
}

// Rename changes a habit's display name.
func (s *Service) Rename(ctx context.Context, id, name string) (habit.Habit, error) {
	if strings.TrimSpace(name) == "" {
		return habit.Habit{}, ErrNameRequired
	}
	return s.mutate(tracker.OpRename, id, "", func(tr *tracker.Store) tracker.Outcome {
		return tr.RenameHabit(id, name)
	})
}

// Remove deletes a habit and its entries.
func (s *Service) Remove(ctx context.Context, id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tr := s.Tracker()
	prev := tr.Habits()
	outcome := tr.RemoveHabit(id)
	metrics.RecordMutation(string(tracker.OpRemove), outcome.String())
	if outcome != tracker.Applied {
		return fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	if s.Persistence != nil {
		if err := s.Persistence.Delete(id); err != nil {
			tr.Replace(prev)
			return err
		}
	}
	if err := s.saveOrder(); err != nil {
		return err
	}
	s.log().Info("habit removed", zap.String("id", id))
	return nil
}

func (s *Service) mutate(op tracker.Op, id string, key habit.DateKey, fn func(*tracker.Store) tracker.Outcome) (habit.Habit, error) {
	if key != "" && !key.Valid() {
		return habit.Habit{}, fmt.Errorf("%w %q", habit.ErrInvalidDateKey, key)
	}
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	tr := s.Tracker()
	prev := tr.Habits()
	outcome := fn(tr)
	metrics.RecordMutation(string(op), outcome.String())
	s.log().Debug("mutation",
		zap.String("op", string(op)),
		zap.String("id", id),
		zap.String("date", string(key)),
		zap.Stringer("outcome", outcome),
	)

	switch outcome {
	case tracker.Applied:
	case tracker.NotFound:
		return habit.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	case tracker.TypeMismatch:
		return habit.Habit{}, fmt.Errorf("%w: %s %s", ErrTypeMismatch, op, id)
	default:
		return habit.Habit{}, fmt.Errorf("app: %s %s %s", op, id, outcome)
	}

	h, ok := tr.Habit(id)
	if !ok {
		// Removed concurrently after the mutation was applied.
		return habit.Habit{}, fmt.Errorf("%w: %s", ErrHabitNotFound, id)
	}
	if err := s.save(h); err != nil {
		tr.Replace(prev)
		return habit.Habit{}, err
	}
	return h, nil
}

func (s *Service) save(h habit.Habit) error {
	if s.Persistence == nil {
		return nil
	}
	if err := s.Persistence.Save(h); err != nil {
		s.log().Error("save habit", zap.String("id", h.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *Service) saveOrder() error {
	if s.Persistence == nil {
		return nil
	}
	habits := s.Tracker().Habits()
	ids := make([]string, 0, len(habits))
	for _, h := range habits {
		ids = append(ids, h.ID)
	}
	return s.Persistence.SaveOrder(ids)
}

// Window returns the session's timeline, creating it around today on first use.
func (s *Service) Window() *timeline.Window {
	s.winMu.Lock()
	defer s.winMu.Unlock()
	return s.windowLocked()
}

func (s *Service) windowLocked() *timeline.Window {
	if s.window == nil {
		s.window = timeline.New(s.today(), s.WindowOptions...)
		metrics.WindowDays.Set(float64(s.window.Len()))
	}
	return s.window
}

// Dates returns the current date sequence, most future first.
func (s *Service) Dates() []habit.DateKey {
	s.winMu.Lock()
	defer s.winMu.Unlock()
	return s.windowLocked().Dates()
}

// Scroll reports the index of the first visible date. The returned Growth
// says how many dates were prepended (Future) and appended (Past); a renderer
// holding an offset into Dates shifts it by Growth.Future.
func (s *Service) Scroll(visibleIndex int) timeline.Growth {
	s.winMu.Lock()
	defer s.winMu.Unlock()
	w := s.windowLocked()
	g := w.OnScrollPositionChanged(visibleIndex, w.Len())
	if g.Grew() {
		metrics.RecordGrowth(g.Future > 0, g.Past > 0, w.Len())
		s.log().Debug("window grew",
			zap.Int("future", g.Future),
			zap.Int("past", g.Past),
			zap.String("start", string(w.Start())),
			zap.String("end", string(w.End())),
		)
	}
	return g
}

// Grid projects the habits onto count dates of the window starting at from.
// A negative count means every remaining date.
func (s *Service) Grid(from, count int) grid.Grid {
	s.winMu.Lock()
	w := s.windowLocked()
	dates := grid.Slice(w.Dates(), from, count)
	today := w.Today()
	s.winMu.Unlock()
	return grid.Build(s.Habits(), dates, today)
}

// GridAround projects the habits onto the days leading up to and including
// end, most recent first.
func (s *Service) GridAround(end habit.DateKey, days int) grid.Grid {
	if days < 1 {
		days = 1
	}
	dates := make([]habit.DateKey, 0, days)
	for i := 0; i < days; i++ {
		dates = append(dates, end.AddDays(-i))
	}
	return grid.Build(s.Habits(), dates, s.today())
}
