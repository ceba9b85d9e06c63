// Package teaui launches the interactive habit grid.
package teaui

import (
	"context"
	"errors"
	"os"

	"github.com/mattn/go-isatty"

	"tableflip.dev/consistency/pkg/app"
	tuiapp "tableflip.dev/consistency/pkg/tui/app"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("the grid needs an interactive terminal")

// UI opens the service and runs the Bubble Tea grid until the user quits.
type UI struct {
	Service *app.Service

	// IsTerminal overrides the terminal check, nil means inspect the
	// process's stdin and stdout.
	IsTerminal func() bool
}

// Do runs the UI.
func (u *UI) Do(ctx context.Context) error {
	if u.Service == nil {
		return errors.New("can not start the grid, no service")
	}
	check := u.IsTerminal
	if check == nil {
		check = stdioIsTerminal
	}
	if !check() {
		return ErrNotTerminal
	}
	if err := u.Service.Open(ctx); err != nil {
		return err
	}
	return tuiapp.Run(ctx, u.Service)
}

func stdioIsTerminal() bool {
	return isTerminal(os.Stdin.Fd()) && isTerminal(os.Stdout.Fd())
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
