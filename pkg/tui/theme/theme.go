// Package theme holds the Lip Gloss styles shared by the habit grid UI.
package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Header HeaderTheme
	Grid   GridTheme
	Footer FooterTheme
	Modal  ModalTheme
}

// HeaderTheme styles the title line and date headers.
type HeaderTheme struct {
	Title   lipgloss.Style
	Date    lipgloss.Style
	Today   lipgloss.Style
	Weekday lipgloss.Style
}

// GridTheme styles habit rows and cells.
type GridTheme struct {
	Name    lipgloss.Style
	Focused lipgloss.Style
	Unit    lipgloss.Style
	Cursor  lipgloss.Style
}

// FooterTheme groups styles used by the bottom status/help bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
}

// ModalTheme styles centered dialogs.
type ModalTheme struct {
	Frame  lipgloss.Style
	Title  lipgloss.Style
	Hint   lipgloss.Style
	Error  lipgloss.Style
	Choice lipgloss.Style
	Chosen lipgloss.Style
}

// Background is blended into habit colors for empty cells.
const Background = "#1E1E1E"

// Default returns the built-in theme used across the UI.
func Default() Theme {
	return Theme{
		Header: HeaderTheme{
			Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
			Date:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Today:   lipgloss.NewStyle().Bold(true).Underline(true).Foreground(lipgloss.Color("255")),
			Weekday: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Grid: GridTheme{
			Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Focused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
			Unit:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
			Cursor:  lipgloss.NewStyle().Reverse(true),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("241")).
				Padding(0, 1),
			Title:  lipgloss.NewStyle().Bold(true),
			Hint:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Choice: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
			Chosen: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")),
		},
	}
}

// HabitHex renders an ARGB habit color as #RRGGBB, dropping alpha.
func HabitHex(argb uint32) string {
	return fmt.Sprintf("#%06X", argb&0xFFFFFF)
}

// HabitStyle colors text with a habit's color.
func HabitStyle(argb uint32) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(HabitHex(argb)))
}

// FadedStyle colors text with a habit's color blended toward the background,
// used for unset and not-done cells.
func FadedStyle(argb uint32) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(Fade(argb, 0.7)))
}

// Fade blends a habit color toward Background by t in Lab space and returns
// the result as #rrggbb.
func Fade(argb uint32, t float64) string {
	c, err := colorful.Hex(HabitHex(argb))
	if err != nil {
		return Background
	}
	bg, _ := colorful.Hex(Background)
	return c.BlendLab(bg, t).Clamped().Hex()
}
