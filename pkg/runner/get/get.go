// Package get prints habits and their recent history.
package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/printers"
)

// Get renders the habit grid, the habit list, or one habit's entries.
type Get struct {
	Service *app.Service

	// On is the most recent date shown; empty means today.
	On      habit.DateKey
	Days    int
	HabitID string
	List    bool
	ShowID  bool
	JSON    bool

	Out io.Writer
}

func (n *Get) out() io.Writer {
	if n.Out == nil {
		return color.Output
	}
	return n.Out
}

// Do loads the habits and prints the requested view.
func (n *Get) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not get, no service")
	}
	if err := n.Service.Open(ctx); err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: n.out(), ShowID: n.ShowID}

	switch {
	case n.HabitID != "":
		h, err := n.Service.Habit(n.HabitID)
		if err != nil {
			return err
		}
		if n.JSON {
			return n.encode(app.NewHabitView(h))
		}
		pp.Entries(h)
		return nil

	case n.List:
		habits := n.Service.Habits()
		if n.JSON {
			return n.encode(app.NewHabitViews(habits))
		}
		pp.Habits(habits)
		return nil
	}

	on := n.On
	if on == "" {
		on = habit.Today()
	}
	days := n.Days
	if days <= 0 {
		days = 7
	}
	g := n.Service.GridAround(on, days)
	if n.JSON {
		return n.encode(app.NewGridView(g))
	}
	_, _ = fmt.Fprintln(n.out(), "")
	pp.Grid(g)
	return nil
}

func (n *Get) encode(v any) error {
	enc := json.NewEncoder(n.out())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
