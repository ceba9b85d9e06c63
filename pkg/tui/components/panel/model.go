// Package panel renders the framed dialogs drawn under the habit grid.
package panel

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/consistency/pkg/tui/theme"
)

// Model renders a generic dialog with a title, body lines and a hint line.
type Model struct {
	title string
	lines []string
	hint  string
	err   string

	frameStyle lipgloss.Style
	titleStyle lipgloss.Style
	hintStyle  lipgloss.Style
	errStyle   lipgloss.Style
}

// New returns a panel model styled by th.
func New(th theme.ModalTheme) Model {
	return Model{
		frameStyle: th.Frame,
		titleStyle: th.Title,
		hintStyle:  th.Hint,
		errStyle:   th.Error,
	}
}

// SetContent updates the panel title and body lines.
func (m *Model) SetContent(title string, lines ...string) {
	m.title = title
	m.lines = lines
}

// SetHint sets the key hint shown at the bottom of the panel.
func (m *Model) SetHint(hint string) {
	m.hint = hint
}

// SetError shows a validation message; empty clears it.
func (m *Model) SetError(msg string) {
	m.err = msg
}

// Reset clears panel content.
func (m *Model) Reset() {
	m.title = ""
	m.lines = nil
	m.hint = ""
	m.err = ""
}

// View returns the rendered panel string and its total height in lines.
func (m Model) View() (string, int) {
	var content []string
	if m.title != "" {
		content = append(content, m.titleStyle.Render(m.title))
	}
	content = append(content, m.lines...)
	if m.err != "" {
		content = append(content, m.errStyle.Render(m.err))
	}
	if m.hint != "" {
		content = append(content, m.hintStyle.Render(m.hint))
	}
	view := m.frameStyle.Render(strings.Join(content, "\n"))
	height := strings.Count(view, "\n") + 1
	return view, height
}
