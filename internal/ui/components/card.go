package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// ReviewCard renders one analyzed review
type ReviewCard struct {
	Index    int
	Review   review.Review
	Width    int
	MaxLines int
	Icons    map[bool]string
}

// NewReviewCard creates a card for the review at a 1-based index
func NewReviewCard(index int, r review.Review, width int) *ReviewCard {
	return &ReviewCard{
		Index:    index,
		Review:   r,
		Width:    width,
		MaxLines: 3,
	}
}

// Render renders the card with a verdict-colored border
func (c *ReviewCard) Render(p Palette) string {
	verdictColor := colorOrNone(p.Success)
	if !c.Review.Label {
		verdictColor = colorOrNone(p.Error)
	}

	badge := c.Review.Verdict()
	if icon := c.Icons[c.Review.Label]; icon != "" {
		badge = icon + " " + badge
	}

	header := []string{
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("#%d", c.Index)),
		lipgloss.NewStyle().Foreground(verdictColor).Bold(true).Render(badge),
		lipgloss.NewStyle().Foreground(colorOrNone(p.Info)).Render(fmt.Sprintf("%.1f%%", c.Review.Confidence)),
	}
	if c.Review.Rating != "" {
		header = append(header, lipgloss.NewStyle().Foreground(colorOrNone(p.Warning)).Render("★ "+c.Review.Rating))
	}

	inner := max(c.Width-4, 10)
	text := lipgloss.NewStyle().Width(inner).Render(strings.TrimSpace(c.Review.Text))
	if lines := strings.Split(text, "\n"); c.MaxLines > 0 && len(lines) > c.MaxLines {
		lines = lines[:c.MaxLines]
		lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " ") + "…"
		text = strings.Join(lines, "\n")
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		strings.Join(header, "  "),
		lipgloss.NewStyle().Foreground(colorOrNone(p.Muted)).Render(text),
	)

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(verdictColor).
		Padding(0, 1).
		Width(inner + 2).
		Render(content)
}
