// Package grid projects the habit list and a run of dates into the cells a
// renderer draws, so UI layers never inspect entry maps themselves.
package grid

import (
	"strings"

	"tableflip.dev/consistency/pkg/habit"
)

// State classifies a cell.
type State int

const (
	// Unset means no entry exists for the date.
	Unset State = iota
	// Done is a completed boolean entry.
	Done
	// NotDone is an explicit not-completed boolean entry.
	NotDone
	// Measured is a numeric entry.
	Measured
)

func (s State) String() string {
	switch s {
	case Done:
		return "done"
	case NotDone:
		return "not_done"
	case Measured:
		return "measured"
	default:
		return "unset"
	}
}

// Column describes one date header.
type Column struct {
	Key     habit.DateKey
	Weekday string // three letter, upper case
	Day     int
	Today   bool
}

// Cell is one habit on one date.
type Cell struct {
	Key   habit.DateKey
	State State
	Text  string
	Value habit.Value
}

// Row is one habit across every column.
type Row struct {
	ID    string
	Name  string
	Color uint32
	Type  habit.Type
	Unit  string
	Cells []Cell
}

// Grid is the renderable projection.
type Grid struct {
	Columns []Column
	Rows    []Row
}

// Build projects habits onto dates. today marks the highlighted column.
func Build(habits []habit.Habit, dates []habit.DateKey, today habit.DateKey) Grid {
	g := Grid{
		Columns: make([]Column, 0, len(dates)),
		Rows:    make([]Row, 0, len(habits)),
	}
	for _, d := range dates {
		g.Columns = append(g.Columns, Column{
			Key:     d,
			Weekday: strings.ToUpper(d.Weekday().String()[:3]),
			Day:     d.Day(),
			Today:   d == today,
		})
	}
	for _, h := range habits {
		row := Row{
			ID:    h.ID,
			Name:  h.Name,
			Color: h.Color,
			Type:  h.Type,
			Unit:  h.Unit,
			Cells: make([]Cell, 0, len(dates)),
		}
		for _, d := range dates {
			row.Cells = append(row.Cells, cellFor(h, d))
		}
		g.Rows = append(g.Rows, row)
	}
	return g
}

// Slice returns at most count dates of dates starting at from, clamped to
// the available range.
func Slice(dates []habit.DateKey, from, count int) []habit.DateKey {
	if from < 0 {
		from = 0
	}
	if from > len(dates) {
		from = len(dates)
	}
	to := from + count
	if count < 0 || to > len(dates) {
		to = len(dates)
	}
	return dates[from:to]
}

// TodayIndex returns the column index marked as today, or -1.
func (g Grid) TodayIndex() int {
	for i, c := range g.Columns {
		if c.Today {
			return i
		}
	}
	return -1
}

// Row returns the row for the habit id.
func (g Grid) Row(id string) (Row, bool) {
	for _, r := range g.Rows {
		if r.ID == id {
			return r, true
		}
	}
	return Row{}, false
}

func cellFor(h habit.Habit, d habit.DateKey) Cell {
	v, ok := h.Entry(d)
	if !ok {
		return Cell{Key: d, State: Unset, Text: "×"}
	}
	return habit.Match(v,
		func(b habit.BooleanValue) Cell {
			if b.Completed {
				return Cell{Key: d, State: Done, Text: "✓", Value: b}
			}
			return Cell{Key: d, State: NotDone, Text: "×", Value: b}
		},
		func(n habit.NumericValue) Cell {
			return Cell{Key: d, State: Measured, Text: n.Display(), Value: n}
		},
	)
}
