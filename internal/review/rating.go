package review

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	MinRating = 1
	MaxRating = 5
)

// MsgInvalidRating is shown for any rating outside 1-5
const MsgInvalidRating = "Please enter a valid rating (1-5)"

// NormalizeRating parses raw user input into the canonical "N/5" form.
// Non-numeric input, zero, negatives and values above 5 are all rejected
// with the same validation error.
func NormalizeRating(raw string) (string, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < MinRating || n > MaxRating {
		return "", NewValidationError(FieldRating, MsgInvalidRating)
	}
	return FormatRating(n), nil
}

// FormatRating renders a star count as "N/5"
func FormatRating(stars int) string {
	return fmt.Sprintf("%d/%d", stars, MaxRating)
}

// RatingNumerator extracts the leading integer of a rating string.
// The service echoes scraped ratings in loose forms ("4/5", "7/10",
// "5.0 out of 5 stars"); only the digits before the first non-digit count.
func RatingNumerator(rating string) (int, bool) {
	s := strings.TrimSpace(rating)
	if i := strings.IndexByte(s, '/'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}

	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}

	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}
