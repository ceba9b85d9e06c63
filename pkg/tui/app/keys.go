package teaui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/consistency/pkg/app"
	"tableflip.dev/consistency/pkg/habit"
)

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "q", "ctrl+c":
		m.stopWatch()
		return tea.Quit
	case "j", "down":
		m.moveRow(1)
	case "k", "up":
		m.moveRow(-1)
	case "h", "left":
		m.moveCol(-1)
	case "l", "right":
		m.moveCol(1)
	case "H", "pgup":
		m.moveCol(-m.visibleColumns())
	case "L", "pgdown":
		m.moveCol(m.visibleColumns())
	case "t":
		m.jumpToday()
	case "space", " ":
		m.apply("increment", m.svc.Increment)
	case "enter", "e":
		h, ok := m.focusedHabit()
		if !ok {
			break
		}
		if h.Type.Numeric() {
			m.openValueDialog(h)
		} else {
			m.apply("toggle", m.svc.Toggle)
		}
	case "-":
		m.apply("decrement", m.svc.Decrement)
	case "x", "backspace", "delete":
		m.apply("clear", m.svc.Clear)
	case "a":
		return m.openAddDialog()
	case "r":
		if h, ok := m.focusedHabit(); ok {
			return m.openRenameDialog(h)
		}
	case "D":
		if h, ok := m.focusedHabit(); ok {
			m.openConfirmDialog(h)
		}
	case "?":
		m.openHelp()
	}
	return nil
}

// apply runs an entry mutation against the focused cell.
func (m *Model) apply(name string, op func(ctx context.Context, id string, key habit.DateKey) (habit.Habit, error)) {
	h, ok := m.focusedHabit()
	if !ok {
		return
	}
	key := m.focusedDate()
	updated, err := op(m.ctx, h.ID, key)
	if err != nil {
		if errors.Is(err, app.ErrTypeMismatch) {
			m.setError(fmt.Sprintf("%s does not apply to %s", name, h.Type.DisplayName()))
			return
		}
		m.setError(err.Error())
		return
	}
	m.refresh()
	m.setStatus(cellStatus(updated, key))
}

func cellStatus(h habit.Habit, key habit.DateKey) string {
	v, ok := h.Entry(key)
	if !ok {
		return fmt.Sprintf("%s %s: unset", h.Name, key)
	}
	text := habit.Match(v,
		func(b habit.BooleanValue) string {
			if b.Completed {
				return "done"
			}
			return "not done"
		},
		func(n habit.NumericValue) string {
			if h.Unit != "" {
				return n.Display() + " " + h.Unit
			}
			return n.Display()
		},
	)
	return fmt.Sprintf("%s %s: %s", h.Name, key, text)
}

func (m *Model) moveRow(delta int) {
	if len(m.habits) == 0 {
		return
	}
	m.status = ""
	m.row += delta
	if m.row < 0 {
		m.row = 0
	}
	if m.row >= len(m.habits) {
		m.row = len(m.habits) - 1
	}
	m.follow()
}

func (m *Model) moveCol(delta int) {
	m.status = ""
	m.col += delta
	m.follow()
}

func (m *Model) jumpToday() {
	m.status = ""
	if i := m.svc.Window().IndexOf(m.svc.Window().Today()); i >= 0 {
		m.col = i
		m.offset = i
	}
	m.follow()
}

// follow keeps the focused cell on screen and reports both visible edges to
// the timeline. Growth at the future edge prepends dates, so every index held
// into dates shifts by the same amount.
func (m *Model) follow() {
	m.dates = m.svc.Dates()
	m.clampCol()

	visible := m.visibleColumns()
	if m.col < m.offset {
		m.offset = m.col
	}
	if m.col >= m.offset+visible {
		m.offset = m.col - visible + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}

	m.scroll(m.offset)
	m.scroll(m.offset + visible - 1)
	m.dates = m.svc.Dates()
	m.clampCol()

	rows := m.visibleRows()
	if m.row < m.top {
		m.top = m.row
	}
	if m.row >= m.top+rows {
		m.top = m.row - rows + 1
	}
	if m.top < 0 {
		m.top = 0
	}
}

func (m *Model) scroll(visibleIndex int) {
	if g := m.svc.Scroll(visibleIndex); g.Future > 0 {
		m.offset += g.Future
		m.col += g.Future
	}
}

func (m *Model) clampCol() {
	if m.col < 0 {
		m.col = 0
	}
	if n := len(m.dates); m.col >= n {
		m.col = n - 1
	}
}

func (m *Model) visibleColumns() int {
	if m.width <= 0 {
		return 7
	}
	n := (m.width - nameWidth - 1) / cellWidth
	if n < 1 {
		return 1
	}
	return n
}

func (m *Model) visibleRows() int {
	if m.height <= 0 {
		return len(m.habits) + 1
	}
	n := m.height - chromeHeight
	if m.mode != modeNormal {
		_, h := m.renderDialog()
		n -= h
	}
	if n < 1 {
		return 1
	}
	return n
}
