package formatter

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yildizm/ReviewRadar/internal/aggregate"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int) string {
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// formatMean renders the mean rating, or "n/a" when undefined
func formatMean(summary aggregate.RatingSummary) string {
	mean, ok := summary.Mean()
	if !ok {
		return "n/a"
	}
	return fmt.Sprintf("%.1f", mean)
}

// singleLine flattens whitespace and truncates to max runes
func singleLine(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	if max > 3 && utf8.RuneCountInString(s) > max {
		runes := []rune(s)
		s = string(runes[:max-3]) + "..."
	}
	return s
}

// bar draws count proportionally to total in width cells
func bar(count, total, width int) string {
	if total <= 0 || width <= 0 {
		return ""
	}
	filled := count * width / total
	if count > 0 && filled == 0 {
		filled = 1
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// percent returns count as a share of total
func percent(count, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(count) / float64(total) * 100
}
