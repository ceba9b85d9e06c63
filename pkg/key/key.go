// Package key prints the legend for the habit grid.
package key

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/consistency/pkg/grid"
	"tableflip.dev/consistency/pkg/habit"
)

var (
	bold      = color.New(color.Bold).SprintFunc()
	underline = color.New(color.Underline).SprintFunc()
)

type Key struct {
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	k.Cells()
	k.Types()
	return nil
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}

// Cells prints what each grid cell symbol means.
func (k *Key) Cells() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Cell"), bold("State"), bold("Meaning"))
	tbl.AddRow("✓", grid.Done, "done")
	tbl.AddRow("×", grid.NotDone, "explicitly not done")
	tbl.AddRow("×", grid.Unset, "nothing recorded (dimmed in the grid)")
	tbl.AddRow("1.2", grid.Measured, "recorded value, shown in the habit's unit")

	_, _ = fmt.Fprintln(k.out(), bold(underline("\nCells")))
	_, _ = fmt.Fprintln(k.out(), tbl)
}

// Types prints the habit types and the names --type accepts for them.
func (k *Key) Types() {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Type"), bold("Records"), bold("Accepts"))
	for _, t := range habit.AllTypes() {
		tbl.AddRow(t, t.DisplayName(), strings.Join(t.Aliases(), ", "))
	}

	_, _ = fmt.Fprintln(k.out(), bold(underline("\nTypes")))
	_, _ = fmt.Fprintln(k.out(), tbl)
}
