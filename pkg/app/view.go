package app

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/consistency/pkg/grid"
	"tableflip.dev/consistency/pkg/habit"
)

// EntryView is a transport-friendly projection of one recorded entry.
type EntryView struct {
	Date      string `json:"date"`
	Kind      string `json:"kind"`
	Completed *bool  `json:"completed,omitempty"`
	Value     string `json:"value,omitempty"`
	Display   string `json:"display"`
}

// HabitView is a transport-friendly projection of a habit.
type HabitView struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Color    string      `json:"color"`
	Type     string      `json:"type"`
	TypeName string      `json:"typeName"`
	Unit     string      `json:"unit,omitempty"`
	Entries  []EntryView `json:"entries"`
}

// NewHabitView projects h with its entries newest first.
func NewHabitView(h habit.Habit) HabitView {
	keys := h.Keys()
	v := HabitView{
		ID:       h.ID,
		Name:     h.Name,
		Color:    fmt.Sprintf("#%08X", h.Color),
		Type:     string(h.Type),
		TypeName: h.Type.DisplayName(),
		Unit:     h.Unit,
		Entries:  make([]EntryView, 0, len(keys)),
	}
	for i := len(keys) - 1; i >= 0; i-- {
		val, _ := h.Entry(keys[i])
		v.Entries = append(v.Entries, newEntryView(keys[i], val))
	}
	return v
}

func newEntryView(key habit.DateKey, val habit.Value) EntryView {
	return habit.Match(val,
		func(b habit.BooleanValue) EntryView {
			completed := b.Completed
			return EntryView{Date: string(key), Kind: string(habit.KindBoolean), Completed: &completed, Display: b.String()}
		},
		func(n habit.NumericValue) EntryView {
			return EntryView{Date: string(key), Kind: string(habit.KindNumeric), Value: n.Display(), Display: n.Display()}
		},
	)
}

// NewHabitViews projects a list of habits.
func NewHabitViews(habits []habit.Habit) []HabitView {
	out := make([]HabitView, 0, len(habits))
	for _, h := range habits {
		out = append(out, NewHabitView(h))
	}
	return out
}

// GridView is the JSON form of grid.Grid.
type GridView struct {
	Columns []ColumnView `json:"columns"`
	Rows    []RowView    `json:"rows"`
}

// ColumnView is one date header.
type ColumnView struct {
	Date    string `json:"date"`
	Weekday string `json:"weekday"`
	Day     int    `json:"day"`
	Today   bool   `json:"today,omitempty"`
}

// RowView is one habit across the columns.
type RowView struct {
	ID    string     `json:"id"`
	Name  string     `json:"name"`
	Type  string     `json:"type"`
	Unit  string     `json:"unit,omitempty"`
	Cells []CellView `json:"cells"`
}

// CellView is one habit on one date.
type CellView struct {
	Date  string `json:"date"`
	State string `json:"state"`
	Text  string `json:"text"`
}

// NewGridView projects g.
func NewGridView(g grid.Grid) GridView {
	v := GridView{
		Columns: make([]ColumnView, 0, len(g.Columns)),
		Rows:    make([]RowView, 0, len(g.Rows)),
	}
	for _, c := range g.Columns {
		v.Columns = append(v.Columns, ColumnView{Date: string(c.Key), Weekday: c.Weekday, Day: c.Day, Today: c.Today})
	}
	for _, r := range g.Rows {
		row := RowView{ID: r.ID, Name: r.Name, Type: string(r.Type), Unit: r.Unit, Cells: make([]CellView, 0, len(r.Cells))}
		for _, c := range r.Cells {
			row.Cells = append(row.Cells, CellView{Date: string(c.Key), State: c.State.String(), Text: c.Text})
		}
		v.Rows = append(v.Rows, row)
	}
	return v
}

const layoutLoose = "2006-1-2"

// ResolveDate turns user input into a date key relative to today. Accepted:
// "", "today", "yesterday", "tomorrow", "-N" (N days ago), YYYY-MM-DD and
// YYYY-M-D.
func ResolveDate(s string, today habit.DateKey) (habit.DateKey, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDays(-1), nil
	case "tomorrow":
		return today.AddDays(1), nil
	}
	if strings.HasPrefix(s, "-") {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 0 {
			return today.AddDays(-n), nil
		}
	}
	if k, err := habit.ParseDateKey(s); err == nil {
		return k, nil
	}
	t, err := time.Parse(layoutLoose, s)
	if err != nil {
		return "", fmt.Errorf("%w %q", habit.ErrInvalidDateKey, s)
	}
	return habit.KeyOf(t), nil
}

// ResolveDate resolves s against the service's today.
func (s *Service) ResolveDate(text string) (habit.DateKey, error) {
	return ResolveDate(text, s.today())
}
