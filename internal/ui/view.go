package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/yildizm/ReviewRadar/internal/emoji"
	"github.com/yildizm/ReviewRadar/internal/review"
	"github.com/yildizm/ReviewRadar/internal/ui/components"
	"github.com/yildizm/ReviewRadar/internal/viewmodel"
)

// View renders the screen
func (m *Model) View() string {
	if m.quitting {
		return m.styles.Muted.Render(emoji.GetEmoji("door")+" Bye!") + "\n"
	}

	sections := []string{
		m.renderHeader(),
		m.renderTabs(),
	}

	if m.state.Mode == viewmodel.ModeManual {
		sections = append(sections, m.renderManualPanel())
	} else {
		sections = append(sections, m.renderAutomaticPanel())
	}

	if v := m.state.ValidationErr; v != nil {
		sections = append(sections, m.styles.Error.Render(emoji.GetEmoji("error")+" "+v.Message))
	}

	sections = append(sections, m.renderResults())

	if toast := m.renderNotice(); toast != "" {
		sections = append(sections, toast)
	}
	sections = append(sections, m.renderHelp())

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m *Model) palette() components.Palette {
	t := m.styles.Theme
	return components.Palette{
		Primary:  t.Primary,
		Success:  t.Success,
		Warning:  t.Warning,
		Error:    t.Error,
		Info:     t.Info,
		Muted:    t.Muted,
		Border:   t.Border,
		Progress: t.Progress,
	}
}

func (m *Model) contentWidth() int {
	if m.width <= 0 {
		return 80
	}
	return min(m.width, 120)
}

func (m *Model) renderHeader() string {
	return m.styles.Title.Render(emoji.GetEmoji("radar") + " ReviewRadar")
}

func (m *Model) renderTabs() string {
	tabs := []struct {
		mode  viewmodel.Mode
		label string
	}{
		{viewmodel.ModeAutomatic, "1 " + emoji.GetEmoji("link") + " Automatic"},
		{viewmodel.ModeManual, "2 " + emoji.GetEmoji("pencil") + " Manual"},
	}

	rendered := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		style := m.styles.TabInactive
		if tab.mode == m.state.Mode {
			style = m.styles.TabActive
		}
		rendered = append(rendered, style.Render(tab.label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

func (m *Model) renderAutomaticPanel() string {
	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Subheader.Render("Product URL"),
		m.inputBox(m.urlInput.View(), m.focus == focusURL),
		m.renderThreshold(m.state.AutoThreshold, review.ThresholdUnset),
		m.renderSubmit("Analyze reviews", m.state.AutoInFlight),
	)
}

func (m *Model) renderManualPanel() string {
	submit := m.renderSubmit("Analyze review", m.state.ManualInFlight)
	if m.state.CanClear() {
		submit = lipgloss.JoinHorizontal(lipgloss.Center, submit, "  ",
			m.styles.Muted.Render(emoji.GetEmoji("clear")+" clear all (ctrl+x)"))
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Subheader.Render("Review"),
		m.inputBox(m.reviewInput.View(), m.focus == focusText),
		m.styles.Subheader.Render("Rating"),
		m.inputBox(m.ratingInput.View(), m.focus == focusRating),
		m.renderThreshold(m.state.ManualThreshold, m.state.EffectiveManualThreshold()),
		submit,
	)
}

func (m *Model) inputBox(content string, focused bool) string {
	if focused {
		return m.styles.Focused.Render(content)
	}
	return m.styles.Blurred.Render(content)
}

// renderThreshold shows the tier selector; fallback is marked when no tier
// was picked
func (m *Model) renderThreshold(selected, fallback review.Threshold) string {
	parts := make([]string, 0, len(review.Thresholds))
	for _, t := range review.Thresholds {
		switch {
		case t == selected:
			parts = append(parts, m.styles.Accent.Render("(•) "+t.String()))
		case !selected.IsSet() && t == fallback:
			parts = append(parts, m.styles.Muted.Render("(·) "+t.String()+" default"))
		default:
			parts = append(parts, m.styles.Muted.Render("( ) "+t.String()))
		}
	}
	return emoji.GetEmoji("threshold") + " Threshold  " + strings.Join(parts, "  ")
}

func (m *Model) renderSubmit(label string, inFlight bool) string {
	if inFlight {
		spinner := components.NewSpinner("Analyzing...")
		spinner.Frame = m.spinnerFrame
		return m.styles.ButtonDisabled.Render(spinner.Render(m.palette()))
	}
	return m.styles.Button.Render(label + " ⏎")
}

func (m *Model) renderResults() string {
	results := m.state.Results()
	if len(results) == 0 {
		return m.styles.Muted.Render("No results yet.")
	}

	p := m.palette()
	width := m.contentWidth()
	ratings := m.state.RatingSummary()

	sections := []string{
		m.styles.Header.Render(fmt.Sprintf("%s Results (%d)", emoji.GetEmoji("chart"), len(results))),
		components.CreateResultStats(results, ratings).Render(p),
	}

	shown := min(len(results), maxCards)
	for i := 0; i < shown; i++ {
		card := components.NewReviewCard(i+1, results[i], width)
		card.Icons = map[bool]string{true: emoji.Verdict(true), false: emoji.Verdict(false)}
		sections = append(sections, card.Render(p))
	}
	if rest := len(results) - shown; rest > 0 {
		sections = append(sections, m.styles.Muted.Render(fmt.Sprintf("… and %d more", rest)))
	}

	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderRatingChart(p), "    ", m.renderHistogram(p)))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderRatingChart(p components.Palette) string {
	ratings := m.state.RatingSummary()

	chart := components.NewBarChart(emoji.GetEmoji("star")+" Rating distribution", 20)
	for _, b := range ratings.Buckets {
		chart.Add(b.Label, b.Count)
	}

	mean := "n/a"
	if v, ok := ratings.Mean(); ok {
		mean = fmt.Sprintf("%.1f", v)
	}
	chart.Footer = fmt.Sprintf("mean %s · %d rated of %d", mean, ratings.Rated(), ratings.Total)
	if ratings.Unparsed > 0 {
		chart.Footer += fmt.Sprintf(" · %d unparsed", ratings.Unparsed)
	}
	return chart.Render(p)
}

func (m *Model) renderHistogram(p components.Palette) string {
	chart := components.NewBarChart(emoji.GetEmoji("chart")+" Confidence", 20)

	hist, err := m.state.Histogram(m.opts.Buckets, m.opts.Policy)
	if err != nil {
		chart.Footer = err.Error()
		return chart.Render(p)
	}

	for _, bin := range hist.Bins {
		chart.Add(bin.Label, bin.Count)
	}
	if hist.Dropped > 0 {
		chart.Footer = fmt.Sprintf("%d outside range", hist.Dropped)
	}
	return chart.Render(p)
}

func (m *Model) renderNotice() string {
	n, ok := m.state.Notice()
	if !ok {
		return ""
	}

	var style lipgloss.Style
	var icon string
	switch n.Level {
	case viewmodel.NoticeSuccess:
		style, icon = m.styles.Success, emoji.GetEmoji("success")
	case viewmodel.NoticeWarning:
		style, icon = m.styles.Warning, emoji.GetEmoji("warning")
	default:
		style, icon = m.styles.Error, emoji.GetEmoji("error")
	}

	line := style.Render(fmt.Sprintf("%s %s", icon, n.Title))
	if n.Message != "" {
		line += " " + n.Message
	}
	if queued := len(m.state.Notices) - 1; queued > 0 {
		line += m.styles.Muted.Render(fmt.Sprintf(" (+%d)", queued))
	}
	return m.styles.Box.Render(line)
}

func (m *Model) renderHelp() string {
	keys := "tab focus • esc unfocus • enter/ctrl+s analyze • ctrl+t threshold • ctrl+n switch mode • ctrl+c quit"
	if m.focus == focusNone {
		keys = "1/2 mode • i edit • t threshold • enter analyze • d dismiss • q quit"
		if m.state.Mode == viewmodel.ModeManual {
			keys = "1/2 mode • i edit • t threshold • enter analyze • c clear all • d dismiss • q quit"
		}
	}
	return m.styles.Muted.Render(emoji.GetEmoji("help") + " " + keys)
}
