package habit

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultColor is the blue used when a habit is created without a color.
const DefaultColor uint32 = 0xFF2196F3

// Habit is a tracked recurring activity. It is an immutable value: the With*
// methods return a new Habit and never modify the receiver or its entries.
type Habit struct {
	ID    string
	Name  string
	Color uint32 // ARGB, opaque to everything but renderers
	Type  Type
	Unit  string

	entries map[DateKey]Value
}

// New returns a habit with the given identity and no entries.
func New(id, name string, t Type, unit string) Habit {
	return Habit{
		ID:    id,
		Name:  name,
		Color: DefaultColor,
		Type:  t,
		Unit:  unit,
	}
}

// WithEntries returns a copy of h seeded with entries. The map is copied.
func (h Habit) WithEntries(entries map[DateKey]Value) Habit {
	next := make(map[DateKey]Value, len(entries))
	for k, v := range entries {
		next[k] = v
	}
	h.entries = next
	return h
}

// WithEntry returns a copy of h where key maps to v. Every other entry is
// carried over unchanged.
func (h Habit) WithEntry(key DateKey, v Value) Habit {
	next := make(map[DateKey]Value, len(h.entries)+1)
	for k, existing := range h.entries {
		next[k] = existing
	}
	next[key] = v
	h.entries = next
	return h
}

// WithoutEntry returns a copy of h with key unset.
func (h Habit) WithoutEntry(key DateKey) Habit {
	if _, ok := h.entries[key]; !ok {
		return h
	}
	next := make(map[DateKey]Value, len(h.entries))
	for k, existing := range h.entries {
		if k != key {
			next[k] = existing
		}
	}
	h.entries = next
	return h
}

// WithName returns a copy of h with a new display name.
func (h Habit) WithName(name string) Habit {
	h.Name = name
	return h
}

// WithColor returns a copy of h with a new color.
func (h Habit) WithColor(color uint32) Habit {
	h.Color = color
	return h
}

// Entry returns the value recorded on key. ok is false when the date is unset.
func (h Habit) Entry(key DateKey) (Value, bool) {
	v, ok := h.entries[key]
	return v, ok
}

// Completed reads key as a BooleanValue, defaulting to not completed.
func (h Habit) Completed(key DateKey) BooleanValue {
	if b, ok := h.entries[key].(BooleanValue); ok {
		return b
	}
	return BooleanValue{}
}

// Numeric reads key as a NumericValue, defaulting to zero for h's type.
func (h Habit) Numeric(key DateKey) NumericValue {
	if n, ok := h.entries[key].(NumericValue); ok {
		return n
	}
	return Zero(h.Type)
}

// Entries returns a copy of the entry map.
func (h Habit) Entries() map[DateKey]Value {
	out := make(map[DateKey]Value, len(h.entries))
	for k, v := range h.entries {
		out[k] = v
	}
	return out
}

// Keys returns the dates with an entry, oldest first.
func (h Habit) Keys() []DateKey {
	keys := make([]DateKey, 0, len(h.entries))
	for k := range h.entries {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of recorded entries.
func (h Habit) Len() int {
	return len(h.entries)
}

// Validate checks the invariants a well formed habit satisfies: a name, a
// known type and entries whose variant matches the type.
func (h Habit) Validate() error {
	var errs []error
	if strings.TrimSpace(h.ID) == "" {
		errs = append(errs, errors.New("habit: id required"))
	}
	if strings.TrimSpace(h.Name) == "" {
		errs = append(errs, errors.New("habit: name required"))
	}
	if !h.Type.Valid() {
		errs = append(errs, fmt.Errorf("%w %q", ErrUnknownType, h.Type))
	}
	for _, k := range h.Keys() {
		if !k.Valid() {
			errs = append(errs, fmt.Errorf("%w %q", ErrInvalidDateKey, k))
			continue
		}
		if v := h.entries[k]; v == nil || !v.ValidFor(h.Type) {
			errs = append(errs, fmt.Errorf("habit: entry %s does not match type %s", k, h.Type))
		}
	}
	return errors.Join(errs...)
}
