package components

import "github.com/charmbracelet/lipgloss"

// Palette carries the theme colors a component needs. Components receive it
// from the caller instead of importing the ui package.
type Palette struct {
	Primary  lipgloss.TerminalColor
	Success  lipgloss.TerminalColor
	Warning  lipgloss.TerminalColor
	Error    lipgloss.TerminalColor
	Info     lipgloss.TerminalColor
	Muted    lipgloss.TerminalColor
	Border   lipgloss.TerminalColor
	Progress lipgloss.TerminalColor
}

func (p Palette) status(status string) lipgloss.TerminalColor {
	switch status {
	case "success":
		return p.Success
	case "warning":
		return p.Warning
	case "error":
		return p.Error
	case "info":
		return p.Info
	default:
		return p.Muted
	}
}

func colorOrNone(c lipgloss.TerminalColor) lipgloss.TerminalColor {
	if c == nil {
		return lipgloss.NoColor{}
	}
	return c
}
