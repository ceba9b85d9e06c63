package teaui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/consistency/pkg/grid"
	"tableflip.dev/consistency/pkg/tui/theme"
)

// View renders the header, the visible slice of the grid, any open dialog
// and the status footer.
func (m *Model) View() string {
	g := m.svc.Grid(m.offset, m.visibleColumns())
	focusCol := m.col - m.offset

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderHeader(g))

	if len(g.Rows) == 0 {
		b.WriteString("\n")
		b.WriteString(m.theme.Footer.Help.Render("No habits yet. Press a to add one."))
	}
	end := m.top + m.visibleRows()
	for i, r := range g.Rows {
		if i < m.top || i >= end {
			continue
		}
		b.WriteString("\n")
		b.WriteString(m.renderRow(r, i == m.row, focusCol))
	}

	if dialog, _ := m.renderDialog(); dialog != "" {
		b.WriteString("\n")
		b.WriteString(dialog)
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatus())
	b.WriteString("\n")
	b.WriteString(m.theme.Footer.Help.Render("? help · a add · q quit"))
	return b.String()
}

func (m *Model) renderTitle() string {
	title := m.theme.Header.Title.Render("consistency")
	key := m.focusedDate()
	if key == "" {
		return title
	}
	return title + "  " + m.theme.Header.Date.Render(key.Time().Format("January 2006"))
}

func (m *Model) renderHeader(g grid.Grid) string {
	pad := strings.Repeat(" ", nameWidth+1)
	var weekdays, days strings.Builder
	weekdays.WriteString(pad)
	days.WriteString(pad)
	for _, c := range g.Columns {
		cell := lipgloss.NewStyle().Width(cellWidth).Align(lipgloss.Center)
		wd, day := m.theme.Header.Weekday, m.theme.Header.Date
		if c.Today {
			wd, day = m.theme.Header.Today, m.theme.Header.Today
		}
		weekdays.WriteString(cell.Render(wd.Render(c.Weekday)))
		days.WriteString(cell.Render(day.Render(strconv.Itoa(c.Day))))
	}
	return weekdays.String() + "\n" + days.String()
}

func (m *Model) renderRow(r grid.Row, focused bool, focusCol int) string {
	var b strings.Builder
	b.WriteString(m.renderName(r, focused))
	b.WriteString(" ")
	for j, c := range r.Cells {
		b.WriteString(m.renderCell(r, c, focused && j == focusCol))
	}
	return b.String()
}

func (m *Model) renderName(r grid.Row, focused bool) string {
	style := m.theme.Grid.Name
	if focused {
		style = m.theme.Grid.Focused
	}
	swatch := theme.HabitStyle(r.Color).Render("●")
	name := truncate.StringWithTail(r.Name, uint(nameWidth-2), "…")
	return swatch + " " + style.Width(nameWidth-2).Render(name)
}

func (m *Model) renderCell(r grid.Row, c grid.Cell, cursor bool) string {
	var st lipgloss.Style
	switch c.State {
	case grid.Done:
		st = theme.HabitStyle(r.Color).Bold(true)
	case grid.Measured:
		st = theme.HabitStyle(r.Color)
	default:
		st = theme.FadedStyle(r.Color)
	}
	if cursor {
		st = st.Inherit(m.theme.Grid.Cursor)
	}
	text := truncate.String(c.Text, uint(cellWidth-1))
	return st.Width(cellWidth).Align(lipgloss.Center).Render(text)
}

func (m *Model) renderStatus() string {
	if m.status != "" {
		if m.statusErr {
			return m.theme.Footer.Error.Render(m.status)
		}
		return m.theme.Footer.Status.Render(m.status)
	}
	h, ok := m.focusedHabit()
	if !ok {
		return ""
	}
	return m.theme.Footer.Status.Render(cellStatus(h, m.focusedDate()))
}
