package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// StatsCard represents a statistics card component
type StatsCard struct {
	Title       string
	Value       string
	Description string
	Status      string // "success", "warning", "error", "info"
	Icon        string
	Width       int
}

// NewStatsCard creates a new stats card
func NewStatsCard(title, value, description string) *StatsCard {
	return &StatsCard{
		Title:       title,
		Value:       value,
		Description: description,
		Status:      "info",
		Width:       16,
	}
}

// SetStatus sets the status color of the card
func (s *StatsCard) SetStatus(status string) *StatsCard {
	s.Status = status
	return s
}

// SetIcon sets the icon for the card
func (s *StatsCard) SetIcon(icon string) *StatsCard {
	s.Icon = icon
	return s
}

// Render renders the stats card
func (s *StatsCard) Render(p Palette) string {
	titleStyle := lipgloss.NewStyle().Foreground(colorOrNone(p.Info)).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(colorOrNone(p.status(s.Status))).Bold(true)
	mutedStyle := lipgloss.NewStyle().Foreground(colorOrNone(p.Muted))
	boxStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorOrNone(p.Border)).Padding(0, 1)

	title := titleStyle.Render(s.Title)
	if s.Icon != "" {
		title = s.Icon + " " + title
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		title,
		valueStyle.Render(s.Value),
		mutedStyle.Render(s.Description),
	)

	return boxStyle.Width(s.Width).Align(lipgloss.Center).Render(content)
}

// StatsDashboard represents a row-wrapped collection of stats cards
type StatsDashboard struct {
	cards     []*StatsCard
	columns   int
	cardWidth int
}

// NewStatsDashboard creates a new stats dashboard
func NewStatsDashboard(columns int) *StatsDashboard {
	if columns < 1 {
		columns = 1
	}
	return &StatsDashboard{
		columns:   columns,
		cardWidth: 16,
	}
}

// AddCard adds a stats card to the dashboard
func (d *StatsDashboard) AddCard(card *StatsCard) {
	card.Width = d.cardWidth
	d.cards = append(d.cards, card)
}

// Len returns the number of cards
func (d *StatsDashboard) Len() int {
	return len(d.cards)
}

// Render renders the stats dashboard
func (d *StatsDashboard) Render(p Palette) string {
	if len(d.cards) == 0 {
		return ""
	}

	var rows []string
	for i := 0; i < len(d.cards); i += d.columns {
		end := min(i+d.columns, len(d.cards))

		var rowCards []string
		for j := i; j < end; j++ {
			rowCards = append(rowCards, d.cards[j].Render(p))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, rowCards...))
	}

	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// CreateResultStats builds the summary cards for a result list
func CreateResultStats(reviews []review.Review, ratings aggregate.RatingSummary) *StatsDashboard {
	dashboard := NewStatsDashboard(4)

	fake := review.CountFake(reviews)
	genuine := len(reviews) - fake

	dashboard.AddCard(NewStatsCard("Reviews", formatNumber(len(reviews)), "analyzed").SetStatus("info"))
	dashboard.AddCard(NewStatsCard("Real", formatNumber(genuine), share(genuine, len(reviews))).SetStatus("success"))

	fakeStatus := "success"
	if fake > 0 {
		fakeStatus = "error"
	}
	dashboard.AddCard(NewStatsCard("Fake", formatNumber(fake), share(fake, len(reviews))).SetStatus(fakeStatus))

	mean := "n/a"
	if m, ok := ratings.Mean(); ok {
		mean = strconv.FormatFloat(m, 'f', 1, 64)
	}
	dashboard.AddCard(NewStatsCard("Mean Rating", mean, fmt.Sprintf("%d rated", ratings.Rated())).SetStatus("warning"))

	return dashboard
}

func share(n, total int) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.0f%%", float64(n)/float64(total)*100)
}

// formatNumber formats large numbers with commas
func formatNumber(n int) string {
	str := strconv.Itoa(n)
	if len(str) <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (len(str)-i)%3 == 0 {
			result.WriteString(",")
		}
		result.WriteRune(digit)
	}

	return result.String()
}
