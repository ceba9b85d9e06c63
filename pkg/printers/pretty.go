// Package printers renders habits and the date grid for the terminal.
package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/consistency/pkg/grid"
	"tableflip.dev/consistency/pkg/habit"
)

// NameWidth is how many columns a habit name may take in the grid.
const NameWidth = 18

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out    io.Writer
	ShowID bool
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Swatch returns a colored block for an ARGB habit color.
func Swatch(argb uint32) string {
	return HabitColor(argb).Sprint("■")
}

// HabitColor turns an ARGB habit color into a terminal color.
func HabitColor(argb uint32) *color.Color {
	r := int(argb >> 16 & 0xff)
	g := int(argb >> 8 & 0xff)
	b := int(argb & 0xff)
	return color.RGB(r, g, b)
}

// Habits prints the habit list as a table.
func (pp *PrettyPrint) Habits(habits []habit.Habit) {
	if len(habits) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no habits yet\n\n")
		return
	}
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 40
	tbl.AddRow(bold.Sprint("ID"), "", bold.Sprint("Habit"), bold.Sprint("Type"), bold.Sprint("Unit"), bold.Sprint("Entries"))
	for _, h := range habits {
		tbl.AddRow(h.ID, Swatch(h.Color), h.Name, h.Type.DisplayName(), h.Unit, h.Len())
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Entries prints every recorded entry of h, newest first.
func (pp *PrettyPrint) Entries(h habit.Habit) {
	pp.Title(fmt.Sprintf("%s %s", Swatch(h.Color), h.Name))
	keys := h.Keys()
	if len(keys) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n\n")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	for i := len(keys) - 1; i >= 0; i-- {
		k := keys[i]
		v, _ := h.Entry(k)
		tbl.AddRow(string(k), strings.ToUpper(k.Weekday().String()[:3]), withUnit(v.String(), h))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Grid prints habits as rows and dates as columns, the way the app shows
// them: today is highlighted, a check marks completion and numeric cells
// show their value.
func (pp *PrettyPrint) Grid(g grid.Grid) {
	w := pp.out()
	faint := color.New(color.Faint)
	today := color.New(color.Bold, color.Underline)

	widths := make([]int, len(g.Columns))
	for i := range g.Columns {
		widths[i] = 3
		for _, r := range g.Rows {
			if n := ansi.PrintableRuneWidth(r.Cells[i].Text); n > widths[i] {
				widths[i] = n
			}
		}
	}

	lead := NameWidth + 2
	if pp.ShowID {
		lead += 4
	}

	header := func(text func(grid.Column) string) {
		_, _ = fmt.Fprint(w, strings.Repeat(" ", lead))
		for i, c := range g.Columns {
			s := pad(text(c), widths[i])
			if c.Today {
				s = today.Sprint(s)
			} else {
				s = faint.Sprint(s)
			}
			_, _ = fmt.Fprint(w, s, " ")
		}
		_, _ = fmt.Fprintln(w)
	}
	header(func(c grid.Column) string { return c.Weekday })
	header(func(c grid.Column) string { return fmt.Sprintf("%d", c.Day) })

	for _, r := range g.Rows {
		hc := HabitColor(r.Color)
		if pp.ShowID {
			_, _ = faint.Fprint(w, pad(r.ID, 3), " ")
		}
		name := truncate.StringWithTail(r.Name, uint(NameWidth), "…")
		_, _ = fmt.Fprint(w, hc.Sprint("■"), " ", padRight(name, NameWidth))
		for i, c := range r.Cells {
			s := pad(c.Text, widths[i])
			switch c.State {
			case grid.Done, grid.Measured:
				s = hc.Sprint(s)
			default:
				s = faint.Sprint(s)
			}
			_, _ = fmt.Fprint(w, s, " ")
		}
		if r.Unit != "" {
			_, _ = faint.Fprint(w, r.Unit)
		}
		_, _ = fmt.Fprintln(w)
	}
	pp.NewLine()
}

// pad centers s in width printable columns.
func pad(s string, width int) string {
	n := ansi.PrintableRuneWidth(s)
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s + strings.Repeat(" ", width-n-left)
}

func padRight(s string, width int) string {
	if n := ansi.PrintableRuneWidth(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func withUnit(s string, h habit.Habit) string {
	if h.Unit == "" || !h.Type.Numeric() {
		return s
	}
	return s + " " + h.Unit
}
