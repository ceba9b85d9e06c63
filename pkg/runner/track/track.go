// Package track records habit entries from the command line.
package track

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

// Op selects what Track does to the entry.
type Op string

const (
	Toggle    Op = "toggle"
	Set       Op = "set"
	Increment Op = "inc"
	Decrement Op = "dec"
	Clear     Op = "clear"
)

// Track applies one entry mutation and prints the habit's recent days.
type Track struct {
	Service *app.Service

	Op      Op
	HabitID string
	On      habit.DateKey
	// Value is the text given to Set.
	Value string
	JSON  bool

	Out io.Writer
}

// Do applies the mutation.
func (n *Track) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not track, no service")
	}
	if err := n.Service.Open(ctx); err != nil {
		return err
	}
	on := n.On
	if on == "" {
		on = habit.Today()
	}

	var (
		h   habit.Habit
		err error
	)
	switch n.Op {
	case Toggle:
		h, err = n.Service.Toggle(ctx, n.HabitID, on)
	case Set:
		h, err = n.Service.SetText(ctx, n.HabitID, on, n.Value)
	case Increment:
		h, err = n.Service.Increment(ctx, n.HabitID, on)
	case Decrement:
		h, err = n.Service.Decrement(ctx, n.HabitID, on)
	case Clear:
		h, err = n.Service.Clear(ctx, n.HabitID, on)
	default:
		return fmt.Errorf("unknown track op %q", n.Op)
	}
	if err != nil {
		return err
	}

	out := n.Out
	if out == nil {
		out = color.Output
	}
	if n.JSON {
		return json.NewEncoder(out).Encode(app.NewHabitView(h))
	}

	g := n.Service.GridAround(on, 7)
	row, _ := g.Row(h.ID)
	g.Rows = g.Rows[:0]
	g.Rows = append(g.Rows, row)
	pp := printers.PrettyPrint{Out: out}
	pp.Grid(g)
	return nil
}
