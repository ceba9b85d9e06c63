// Package tracker holds the ordered habit list for a session and applies
// entry mutations to it.
//
// Every mutation builds a new Habit (and a new list) and publishes it in one
// step, so a reader calling Habits sees either the state before or the state
// after a mutation, never a half-updated entry map. Writers are serialized;
// readers never block.
package tracker

import (
	"slices"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/shopspring/decimal"

	"tableflip.dev/consistency/pkg/habit"
)

// Outcome reports what a mutation did. Ignoring it gives the lenient
// behavior: unknown habits and type mismatches are silent no-ops.
type Outcome int

const (
	// Applied means the list was replaced with the mutated habit.
	Applied Outcome = iota
	// NotFound means no habit has the requested id.
	NotFound
	// TypeMismatch means the operation does not apply to the habit's type.
	TypeMismatch
	// Rejected means the arguments were invalid (for example an empty name).
	Rejected
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case NotFound:
		return "not_found"
	case TypeMismatch:
		return "type_mismatch"
	case Rejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// Op names the mutation carried by a Change.
type Op string

const (
	OpAdd       Op = "add"
	OpToggle    Op = "toggle"
	OpSet       Op = "set"
	OpIncrement Op = "increment"
	OpDecrement Op = "decrement"
	OpClear     Op = "clear"
	OpRemove    Op = "remove"
	OpRename    Op = "rename"
	OpReplace   Op = "replace"
)

// Change is delivered to subscribers after a mutation is published.
type Change struct {
	Op      Op
	HabitID string
	Key     habit.DateKey
	Outcome Outcome
}

// Store is the single source of truth for the habit list. The zero value is
// an empty, ready to use store.
type Store struct {
	mu     sync.Mutex
	habits atomic.Pointer[[]habit.Habit]

	subMu sync.Mutex
	subs  []func(Change)
}

// New returns a store holding habits in the given order.
func New(habits ...habit.Habit) *Store {
	s := &Store{}
	if len(habits) > 0 {
		list := append([]habit.Habit(nil), habits...)
		s.habits.Store(&list)
	}
	return s
}

// Habits returns the current ordered list. The slice is a fresh copy; the
// Habit values themselves are immutable.
func (s *Store) Habits() []habit.Habit {
	cur := s.load()
	return append([]habit.Habit(nil), cur...)
}

// Len returns the number of habits.
func (s *Store) Len() int {
	return len(s.load())
}

// Habit returns the first habit with id.
func (s *Store) Habit(id string) (habit.Habit, bool) {
	cur := s.load()
	if i := indexOf(cur, id); i >= 0 {
		return cur[i], true
	}
	return habit.Habit{}, false
}

// Entry returns the value recorded for id on key.
func (s *Store) Entry(id string, key habit.DateKey) (habit.Value, bool) {
	h, ok := s.Habit(id)
	if !ok {
		return nil, false
	}
	return h.Entry(key)
}

// NextID returns the id a newly created habit should get: one more than the
// current habit count.
func (s *Store) NextID() string {
	return strconv.Itoa(s.Len() + 1)
}

// Subscribe registers fn to be called after every mutation, including
// no-ops. fn runs on the mutating goroutine after the new state is visible.
func (s *Store) Subscribe(fn func(Change)) {
	if fn == nil {
		return
	}
	s.subMu.Lock()
	s.subs = append(s.subs, fn)
	s.subMu.Unlock()
}

// AddHabit appends h to the list. Ids are not checked for uniqueness; when
// two habits share an id, lookups and mutations address the first.
func (s *Store) AddHabit(h habit.Habit) {
	s.mu.Lock()
	cur := s.load()
	next := make([]habit.Habit, len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, h)
	s.habits.Store(&next)
	s.mu.Unlock()

	s.notify(Change{Op: OpAdd, HabitID: h.ID, Outcome: Applied})
}

// Replace swaps the whole list, for example after loading from disk.
func (s *Store) Replace(habits []habit.Habit) {
	next := append([]habit.Habit(nil), habits...)
	s.mu.Lock()
	s.habits.Store(&next)
	s.mu.Unlock()

	s.notify(Change{Op: OpReplace, Outcome: Applied})
}

// ToggleBoolean negates the BooleanValue on key; an unset date counts as not
// completed. Non-boolean habits are left alone.
func (s *Store) ToggleBoolean(id string, key habit.DateKey) Outcome {
	return s.update(OpToggle, id, key, func(h habit.Habit) (habit.Habit, Outcome) {
		if h.Type != habit.Boolean {
			return h, TypeMismatch
		}
		return toggled(h, key), Applied
	})
}

// SetNumeric normalizes raw against the habit's type and records it on key.
// raw must be non-negative. Boolean habits are left alone.
func (s *Store) SetNumeric(id string, key habit.DateKey, raw decimal.Decimal) Outcome {
	return s.update(OpSet, id, key, func(h habit.Habit) (habit.Habit, Outcome) {
		if !h.Type.Numeric() {
			return h, TypeMismatch
		}
		return h.WithEntry(key, habit.Normalize(h.Type, raw)), Applied
	})
}

// SetNumericFloat is SetNumeric for float input.
func (s *Store) SetNumericFloat(id string, key habit.DateKey, raw float64) Outcome {
	return s.update(OpSet, id, key, func(h habit.Habit) (habit.Habit, Outcome) {
		if !h.Type.Numeric() {
			return h, TypeMismatch
		}
		return h.WithEntry(key, habit.NormalizeFloat(h.Type, raw)), Applied
	})
}

// IncrementEntry is the quick-tap completion: boolean habits toggle, numeric
// habits step up by one unit from the current value (zero when unset).
func (s *Store) IncrementEntry(id string, key habit.DateKey) Outcome {
	return s.update(OpIncrement, id, key, func(h habit.Habit) (habit.Habit, Outcome) {
		if h.Type == habit.Boolean {
			return toggled(h, key), Applied
		}
		return h.WithEntry(key, habit.Step(h.Type, h.Numeric(key), true)), Applied
	})
}

// DecrementEntry steps a numeric entry down by one unit, clamping at zero.
func (s *Store) DecrementEntry(id string, key habit.DateKey) Outcome {
	return s.update(OpDecrement, id, key, func(h habit.Habit) (habit.Habit, Outcome) {
		if !h.Type.Numeric() {
			return h, TypeMismatch
		}
		return h.WithEntry(key, habit.Step(h.Type, h.Numeric(key), false)), Applied
	})
}

// ClearEntry returns key to the unset state.
func (s *Store) ClearEntry(id string, key habit.DateKey) Outcome {
	return s.update(OpClear, id, key, func(h habit.Habit) (habit.Habit, Outcome) {
		return h.WithoutEntry(key), Applied
	})
}

// RenameHabit changes the display name. Blank names are rejected.
func (s *Store) RenameHabit(id, name string) Outcome {
	name = strings.TrimSpace(name)
	return s.update(OpRename, id, "", func(h habit.Habit) (habit.Habit, Outcome) {
		if name == "" {
			return h, Rejected
		}
		return h.WithName(name), Applied
	})
}

// RemoveHabit drops the first habit with id from the list.
func (s *Store) RemoveHabit(id string) Outcome {
	s.mu.Lock()
	cur := s.load()
	i := indexOf(cur, id)
	if i < 0 {
		s.mu.Unlock()
		s.notify(Change{Op: OpRemove, HabitID: id, Outcome: NotFound})
		return NotFound
	}
	next := make([]habit.Habit, 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	s.habits.Store(&next)
	s.mu.Unlock()

	s.notify(Change{Op: OpRemove, HabitID: id, Outcome: Applied})
	return Applied
}

func (s *Store) update(op Op, id string, key habit.DateKey, fn func(habit.Habit) (habit.Habit, Outcome)) Outcome {
	s.mu.Lock()
	cur := s.load()
	i := indexOf(cur, id)
	if i < 0 {
		s.mu.Unlock()
		s.notify(Change{Op: op, HabitID: id, Key: key, Outcome: NotFound})
		return NotFound
	}
	updated, outcome := fn(cur[i])
	if outcome == Applied {
		next := make([]habit.Habit, len(cur))
		copy(next, cur)
		next[i] = updated
		s.habits.Store(&next)
	}
	s.mu.Unlock()

	s.notify(Change{Op: op, HabitID: id, Key: key, Outcome: outcome})
	return outcome
}

func (s *Store) load() []habit.Habit {
	if p := s.habits.Load(); p != nil {
		return *p
	}
	return nil
}

func (s *Store) notify(c Change) {
	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(c)
	}
}

func toggled(h habit.Habit, key habit.DateKey) habit.Habit {
	current := h.Completed(key)
	return h.WithEntry(key, habit.BooleanValue{Completed: !current.Completed})
}

func indexOf(habits []habit.Habit, id string) int {
	for i := range habits {
		if habits[i].ID == id {
			return i
		}
	}
	return -1
}
