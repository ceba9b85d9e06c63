// Package timeline maintains the contiguous range of dates a scrolling grid
// shows, growing it in chunks as the viewer nears either edge.
package timeline

import (
	"tableflip.dev/consistency/pkg/habit"
)

const (
	// DefaultSpan is how many days the initial window reaches on each side of today.
	DefaultSpan = 365
	// DefaultChunk is how many days an edge grows by.
	DefaultChunk = 30
	// DefaultStartThreshold is the distance from the future edge that triggers growth.
	DefaultStartThreshold = 10
	// DefaultEndThreshold is the distance from the past edge that triggers growth.
	DefaultEndThreshold = 20
)

// Option customises a Window.
type Option func(*options)

type options struct {
	span           int
	chunk          int
	startThreshold int
	endThreshold   int
}

// WithSpan sets the number of days before and after today in the initial window.
func WithSpan(days int) Option {
	return func(o *options) {
		if days >= 0 {
			o.span = days
		}
	}
}

// WithChunk sets how many days each growth step adds.
func WithChunk(days int) Option {
	return func(o *options) {
		if days > 0 {
			o.chunk = days
		}
	}
}

// WithThresholds sets the proximity, in positions, to the future (start) and
// past (end) edges at which the window grows.
func WithThresholds(start, end int) Option {
	return func(o *options) {
		if start >= 0 {
			o.startThreshold = start
		}
		if end >= 0 {
			o.endThreshold = end
		}
	}
}

// Growth reports how many days a scroll signal added to each edge. Future
// days are prepended, so a renderer holding an index into the old sequence
// must shift it by Future to stay on the same date.
type Growth struct {
	Future int
	Past   int
}

// Grew reports whether either edge moved.
func (g Growth) Grew() bool {
	return g.Future > 0 || g.Past > 0
}

// Window is the materialized date range, ordered from Start (most future)
// down to End (most past) with no gaps. It only ever grows.
//
// A Window belongs to one UI session and is not safe for concurrent use.
// The slice returned by Dates is never modified afterwards; growth builds a
// new one.
type Window struct {
	opts  options
	today habit.DateKey
	start habit.DateKey
	end   habit.DateKey
	dates []habit.DateKey
}

// New builds the initial window centred on today.
func New(today habit.DateKey, opts ...Option) *Window {
	o := options{
		span:           DefaultSpan,
		chunk:          DefaultChunk,
		startThreshold: DefaultStartThreshold,
		endThreshold:   DefaultEndThreshold,
	}
	for _, opt := range opts {
		opt(&o)
	}
	w := &Window{
		opts:  o,
		today: today,
		start: today.AddDays(o.span),
		end:   today.AddDays(-o.span),
	}
	w.dates = generate(w.start, w.end)
	return w
}

// OnScrollPositionChanged reacts to the index of the first visible date.
// Near the start the window gains a chunk of future days; near the end
// (totalCount-visibleIndex below the end threshold) it gains a chunk of past
// days. Both may happen for one signal.
func (w *Window) OnScrollPositionChanged(visibleIndex, totalCount int) Growth {
	var g Growth
	if visibleIndex < w.opts.startThreshold {
		w.start = w.start.AddDays(w.opts.chunk)
		g.Future = w.opts.chunk
	}
	if totalCount-visibleIndex < w.opts.endThreshold {
		w.end = w.end.AddDays(-w.opts.chunk)
		g.Past = w.opts.chunk
	}
	if g.Grew() {
		w.dates = extend(w.dates, w.start, w.end, g)
	}
	return g
}

// Dates returns the sequence from Start down to End. Callers must not modify it.
func (w *Window) Dates() []habit.DateKey {
	return w.dates
}

// Len returns the number of dates in the window.
func (w *Window) Len() int {
	return len(w.dates)
}

// Start returns the most future date.
func (w *Window) Start() habit.DateKey {
	return w.start
}

// End returns the most past date.
func (w *Window) End() habit.DateKey {
	return w.end
}

// Today returns the date the window was centred on.
func (w *Window) Today() habit.DateKey {
	return w.today
}

// At returns the date at index i.
func (w *Window) At(i int) (habit.DateKey, bool) {
	if i < 0 || i >= len(w.dates) {
		return "", false
	}
	return w.dates[i], true
}

// IndexOf returns the position of key, or -1 when it lies outside the window.
func (w *Window) IndexOf(key habit.DateKey) int {
	if !key.Valid() || key > w.start || key < w.end {
		return -1
	}
	return key.DaysUntil(w.start)
}

// InitialFocusIndex returns the position of today, used once to place the
// initial scroll offset. It falls back to 0.
func (w *Window) InitialFocusIndex() int {
	if i := w.IndexOf(w.today); i >= 0 {
		return i
	}
	return 0
}

func generate(start, end habit.DateKey) []habit.DateKey {
	n := end.DaysUntil(start) + 1
	if n <= 0 {
		return nil
	}
	dates := make([]habit.DateKey, 0, n)
	for d := start; d >= end; d = d.AddDays(-1) {
		dates = append(dates, d)
	}
	return dates
}

func extend(old []habit.DateKey, start, end habit.DateKey, g Growth) []habit.DateKey {
	next := make([]habit.DateKey, 0, len(old)+g.Future+g.Past)
	if g.Future > 0 {
		next = append(next, generate(start, start.AddDays(-(g.Future-1)))...)
	}
	next = append(next, old...)
	if g.Past > 0 {
		next = append(next, generate(end.AddDays(g.Past-1), end)...)
	}
	return next
}
