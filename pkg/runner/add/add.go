// Package add creates habits from the command line.
package add

import (
	"context"
	"encoding/json"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
	"tableflip.dev/consistency/pkg/printers"
)

type Add struct {
	Service *app.Service

	Name string
	Type habit.Type
	Unit string
	JSON bool

	Out io.Writer
}

func (n *Add) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not add, no service")
	}
	if err := n.Service.Open(ctx); err != nil {
		return err
	}
	h, err := n.Service.AddHabit(ctx, n.Name, n.Type, n.Unit)
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
	pp := printers.PrettyPrint{Out: out, ShowID: true}
	pp.Habits(n.Service.Habits())
	return nil
}

// Demo stores the sample habits, for trying the grid out.
type Demo struct {
	Service *app.Service
	Habits  []habit.Habit
	Out     io.Writer
}

func (n *Demo) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not seed, no service")
	}
	if err := n.Service.Open(ctx); err != nil {
		return err
	}
	if len(n.Service.Habits()) > 0 {
		return errors.New("store already has habits; demo data only goes into an empty store")
	}
	if err := n.Service.Import(ctx, n.Habits...); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	pp := printers.PrettyPrint{Out: out, ShowID: true}
	pp.Habits(n.Service.Habits())
	return nil
}
