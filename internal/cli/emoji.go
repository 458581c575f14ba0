package cli

import (
	"fmt"
	"strings"

	"github.com/yildizm/ReviewRadar/internal/emoji"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// CreateConfidenceBar creates a 10-cell bar for a 0..1 confidence with
// an ASCII fallback
func CreateConfidenceBar(confidence float64) string {
	barLength := int(confidence * 10)
	barLength = max(0, min(barLength, 10))

	if isEmojiDisabled() {
		return "[" + strings.Repeat("#", barLength) + strings.Repeat("-", 10-barLength) + "]"
	}
	return strings.Repeat("█", barLength) + strings.Repeat("░", 10-barLength)
}

// resultLine renders one streamed review result
func resultLine(line int, r review.Review) string {
	rating := r.Rating
	if rating == "" {
		rating = "-"
	}
	return fmt.Sprintf("%s line %d  %-4s %s %5.1f%%  %s %s  %s",
		emoji.Verdict(r.Label), line, r.Verdict(),
		CreateConfidenceBar(r.Confidence/100), r.Confidence,
		GetEmoji("star"), rating, excerpt(r.Text, 60))
}
