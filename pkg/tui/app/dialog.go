package teaui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/consistency/pkg/habit"
)

var helpLines = []string{
	"h/l ←/→   move between days (newest on the left)",
	"j/k ↑/↓   move between habits",
	"H/L       page through days",
	"t         jump to today",
	"space     quick complete: toggle or add one step",
	"enter/e   toggle, or enter a value for numeric habits",
	"-         step a numeric entry down",
	"x         clear the entry",
	"a         add a habit",
	"r         rename the habit",
	"D         delete the habit",
	"q         quit",
}

func (m *Model) openValueDialog(h habit.Habit) {
	m.mode = modeValue
	m.target = h.ID
	m.targetKey = m.focusedDate()
	m.input.Reset()
	m.input.Placeholder = "0"
	if v, ok := h.Entry(m.targetKey); ok {
		if n, ok := v.(habit.NumericValue); ok {
			m.input.SetValue(n.Display())
		}
	}
	m.input.Focus()
	m.dialog.SetError("")
}

func (m *Model) handleValueKey(msg tea.KeyPressMsg) tea.Cmd {
	h, ok := m.habitByID(m.target)
	if !ok {
		m.closeDialog()
		return nil
	}
	switch msg.String() {
	case "esc":
		m.closeDialog()
		return nil
	case "enter":
		updated, err := m.svc.SetText(m.ctx, h.ID, m.targetKey, m.input.Value())
		if err != nil {
			m.dialog.SetError(err.Error())
			return nil
		}
		m.closeDialog()
		m.refresh()
		m.setStatus(cellStatus(updated, m.targetKey))
		return nil
	case "+", "up":
		m.input.SetValue(habit.Adjust(h.Type, m.input.Value(), true).Display())
		m.input.CursorEnd()
		return nil
	case "-", "down":
		m.input.SetValue(habit.Adjust(h.Type, m.input.Value(), false).Display())
		m.input.CursorEnd()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.dialog.SetError("")
	return cmd
}

func (m *Model) openAddDialog() tea.Cmd {
	m.mode = modeAddName
	m.addName = ""
	m.typeIdx = 0
	m.input.Reset()
	m.input.Placeholder = "Habit name"
	m.dialog.SetError("")
	return m.input.Focus()
}

func (m *Model) openRenameDialog(h habit.Habit) tea.Cmd {
	m.mode = modeRename
	m.target = h.ID
	m.input.Reset()
	m.input.Placeholder = "Habit name"
	m.input.SetValue(h.Name)
	m.dialog.SetError("")
	return m.input.Focus()
}

// handleInputKey drives the text steps of the add and rename dialogs.
func (m *Model) handleInputKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.closeDialog()
		return nil
	case "enter":
		m.submitInput()
		return nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.dialog.SetError("")
	return cmd
}

func (m *Model) submitInput() {
	text := strings.TrimSpace(m.input.Value())
	switch m.mode {
	case modeAddName:
		if text == "" {
			m.dialog.SetError("name is required")
			return
		}
		m.addName = text
		m.mode = modeAddType
		m.input.Blur()
	case modeAddUnit:
		m.createHabit(habit.AllTypes()[m.typeIdx], text)
	case modeRename:
		h, err := m.svc.Rename(m.ctx, m.target, text)
		if err != nil {
			m.dialog.SetError(err.Error())
			return
		}
		m.closeDialog()
		m.refresh()
		m.setStatus("Renamed to " + h.Name)
	}
}

func (m *Model) handleTypeKey(msg tea.KeyPressMsg) {
	types := habit.AllTypes()
	switch msg.String() {
	case "esc":
		m.closeDialog()
	case "j", "down", "tab":
		m.typeIdx = (m.typeIdx + 1) % len(types)
	case "k", "up", "shift+tab":
		m.typeIdx = (m.typeIdx + len(types) - 1) % len(types)
	case "enter":
		t := types[m.typeIdx]
		if !t.Numeric() {
			m.createHabit(t, "")
			return
		}
		m.mode = modeAddUnit
		m.input.Reset()
		m.input.Placeholder = "Unit (optional)"
		m.input.Focus()
	}
}

func (m *Model) createHabit(t habit.Type, unit string) {
	h, err := m.svc.AddHabit(m.ctx, m.addName, t, unit)
	if err != nil {
		m.dialog.SetError(err.Error())
		return
	}
	m.closeDialog()
	m.refresh()
	for i := range m.habits {
		if m.habits[i].ID == h.ID {
			m.row = i
		}
	}
	m.follow()
	m.setStatus("Added " + h.Name)
}

func (m *Model) openConfirmDialog(h habit.Habit) {
	m.mode = modeConfirm
	m.target = h.ID
	m.dialog.SetError("")
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) {
	if msg.String() != "y" {
		m.closeDialog()
		m.setStatus("Delete cancelled")
		return
	}
	h, _ := m.habitByID(m.target)
	if err := m.svc.Remove(m.ctx, m.target); err != nil {
		m.closeDialog()
		m.setError(err.Error())
		return
	}
	m.closeDialog()
	m.refresh()
	m.follow()
	m.setStatus("Deleted " + h.Name)
}

func (m *Model) openHelp() {
	m.mode = modeHelp
}

func (m *Model) closeDialog() {
	m.mode = modeNormal
	m.target = ""
	m.targetKey = ""
	m.input.Blur()
	m.input.Reset()
	m.dialog.Reset()
}

func (m *Model) habitByID(id string) (habit.Habit, bool) {
	for _, h := range m.habits {
		if h.ID == id {
			return h, true
		}
	}
	return habit.Habit{}, false
}

// renderDialog fills the panel for the current mode.
func (m *Model) renderDialog() (string, int) {
	d := m.dialog
	switch m.mode {
	case modeValue:
		h, _ := m.habitByID(m.target)
		label := "Value"
		if h.Unit != "" {
			label = fmt.Sprintf("Value (%s)", h.Unit)
		}
		d.SetContent(fmt.Sprintf("%s · %s", h.Name, m.targetKey), label, m.input.View())
		d.SetHint("enter save · +/- step · esc cancel")
	case modeAddName:
		d.SetContent("New habit", "Name", m.input.View())
		d.SetHint("enter next · esc cancel")
	case modeAddType:
		var lines []string
		for i, t := range habit.AllTypes() {
			if i == m.typeIdx {
				lines = append(lines, m.theme.Modal.Chosen.Render("› "+t.DisplayName()))
				continue
			}
			lines = append(lines, m.theme.Modal.Choice.Render("  "+t.DisplayName()))
		}
		d.SetContent("New habit · "+m.addName, lines...)
		d.SetHint("j/k choose · enter next · esc cancel")
	case modeAddUnit:
		d.SetContent("New habit · "+m.addName, "Unit", m.input.View())
		d.SetHint("enter create · esc cancel")
	case modeRename:
		h, _ := m.habitByID(m.target)
		d.SetContent("Rename · "+h.Name, "Name", m.input.View())
		d.SetHint("enter save · esc cancel")
	case modeConfirm:
		h, _ := m.habitByID(m.target)
		d.SetContent("Delete habit", fmt.Sprintf("Delete %q and all of its entries?", h.Name))
		d.SetHint("y delete · any other key cancels")
	case modeHelp:
		d.SetContent("Keys", helpLines...)
		d.SetHint("any key closes")
	default:
		return "", 0
	}
	return d.View()
}
