package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var spinnerFrames = []rune("⠋⠙⠹⠸⠼⠴⠦⠧⠇⠏")

// Spinner represents a spinning progress indicator
type Spinner struct {
	Frame int
	Label string
}

// NewSpinner creates a new spinner
func NewSpinner(label string) *Spinner {
	return &Spinner{Label: label}
}

// Tick advances the spinner animation
func (s *Spinner) Tick() {
	s.Frame = (s.Frame + 1) % len(spinnerFrames)
}

// Render renders the spinner
func (s *Spinner) Render(p Palette) string {
	style := lipgloss.NewStyle().Foreground(colorOrNone(p.Progress)).Bold(true)
	char := style.Render(string(spinnerFrames[s.Frame%len(spinnerFrames)]))

	if s.Label != "" {
		return fmt.Sprintf("%s %s", char, s.Label)
	}
	return char
}

// Bar is one row of a bar chart
type Bar struct {
	Label string
	Count int
}

// BarChart renders labelled horizontal bars scaled to the largest count
type BarChart struct {
	Title  string
	Bars   []Bar
	Width  int
	Footer string
}

// NewBarChart creates a bar chart with the given bar width
func NewBarChart(title string, width int) *BarChart {
	if width < 1 {
		width = 1
	}
	return &BarChart{Title: title, Width: width}
}

// Add appends a bar
func (c *BarChart) Add(label string, count int) *BarChart {
	c.Bars = append(c.Bars, Bar{Label: label, Count: count})
	return c
}

// Render renders the chart; an empty chart shows a placeholder line
func (c *BarChart) Render(p Palette) string {
	titleStyle := lipgloss.NewStyle().Foreground(colorOrNone(p.Primary)).Bold(true)
	fillStyle := lipgloss.NewStyle().Foreground(colorOrNone(p.Progress))
	mutedStyle := lipgloss.NewStyle().Foreground(colorOrNone(p.Muted))

	var b strings.Builder
	if c.Title != "" {
		b.WriteString(titleStyle.Render(c.Title))
		b.WriteString("\n")
	}

	if len(c.Bars) == 0 {
		b.WriteString(mutedStyle.Render("  no data"))
		return b.String()
	}

	labelWidth, maxCount := 0, 0
	for _, bar := range c.Bars {
		labelWidth = max(labelWidth, lipgloss.Width(bar.Label))
		maxCount = max(maxCount, bar.Count)
	}

	for i, bar := range c.Bars {
		filled := 0
		if maxCount > 0 {
			filled = bar.Count * c.Width / maxCount
		}
		if bar.Count > 0 && filled == 0 {
			filled = 1
		}

		label := bar.Label + strings.Repeat(" ", labelWidth-lipgloss.Width(bar.Label))
		fmt.Fprintf(&b, "  %s │%s%s %d",
			label,
			fillStyle.Render(strings.Repeat("█", filled)),
			mutedStyle.Render(strings.Repeat("░", c.Width-filled)),
			bar.Count)
		if i < len(c.Bars)-1 {
			b.WriteString("\n")
		}
	}

	if c.Footer != "" {
		b.WriteString("\n")
		b.WriteString(mutedStyle.Render("  " + c.Footer))
	}

	return b.String()
}
