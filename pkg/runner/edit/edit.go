// Package edit renames and removes habits.
package edit

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/consistency/pkg/app"
)

// Rename changes a habit's display name.
type Rename struct {
	Service *app.Service
	HabitID string
	Name    string
	Out     io.Writer
}

func (n *Rename) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not rename, no service")
	}
	if err := n.Service.Open(ctx); err != nil {
		return err
	}
	h, err := n.Service.Rename(ctx, n.HabitID, n.Name)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(writer(n.Out), "%s renamed to %q\n", h.ID, h.Name)
	return nil
}

// Remove deletes a habit and every entry it holds.
type Remove struct {
	Service *app.Service
	HabitID string
	Out     io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.Service == nil {
		return errors.New("can not remove, no service")
	}
	if err := n.Service.Open(ctx); err != nil {
		return err
	}
	h, err := n.Service.Habit(n.HabitID)
	if err != nil {
		return err
	}
	if err := n.Service.Remove(ctx, n.HabitID); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(writer(n.Out), "removed %s (%s, %d entries)\n", h.ID, h.Name, h.Len())
	return nil
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
