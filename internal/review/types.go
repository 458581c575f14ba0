package review

import (
	"fmt"
	"strings"
)

// Review is a single analyzed review as returned by the analysis service
type Review struct {
	Text       string  `json:"review_text" yaml:"review_text"`
	Confidence float64 `json:"confidence" yaml:"confidence"` // 0-100
	Label      bool    `json:"label" yaml:"label"`           // true = genuine
	Rating     string  `json:"rating" yaml:"rating"`         // canonical "N/5" for manual input
}

// Verdict returns the human readable classification
func (r Review) Verdict() string {
	if r.Label {
		return "Real"
	}
	return "Fake"
}

// CountFake returns how many reviews were classified fake
func CountFake(reviews []Review) int {
	n := 0
	for _, r := range reviews {
		if !r.Label {
			n++
		}
	}
	return n
}

// Threshold is the decision boundary tier sent to the analysis service
type Threshold int

const (
	ThresholdUnset Threshold = iota
	ThresholdLenient
	ThresholdAverage
	ThresholdStrict
)

// DefaultManualThreshold is used for manual submissions with no tier selected
const DefaultManualThreshold = ThresholdAverage

// Thresholds lists the selectable tiers in ascending strictness
var Thresholds = []Threshold{ThresholdLenient, ThresholdAverage, ThresholdStrict}

// Value returns the numeric boundary passed to the service
func (t Threshold) Value() float64 {
	switch t {
	case ThresholdLenient:
		return 0.60
	case ThresholdAverage:
		return 0.70
	case ThresholdStrict:
		return 0.90
	default:
		return 0
	}
}

// IsSet reports whether a tier was selected
func (t Threshold) IsSet() bool {
	return t >= ThresholdLenient && t <= ThresholdStrict
}

// String returns the tier name
func (t Threshold) String() string {
	switch t {
	case ThresholdLenient:
		return "lenient"
	case ThresholdAverage:
		return "average"
	case ThresholdStrict:
		return "strict"
	default:
		return "unset"
	}
}

// Next cycles to the following tier, wrapping after strict
func (t Threshold) Next() Threshold {
	switch t {
	case ThresholdLenient:
		return ThresholdAverage
	case ThresholdAverage:
		return ThresholdStrict
	default:
		return ThresholdLenient
	}
}

// ParseThreshold parses a tier name. The empty string yields ThresholdUnset.
func ParseThreshold(s string) (Threshold, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return ThresholdUnset, nil
	case "lenient":
		return ThresholdLenient, nil
	case "average":
		return ThresholdAverage, nil
	case "strict":
		return ThresholdStrict, nil
	default:
		return ThresholdUnset, fmt.Errorf("invalid threshold: %s (must be one of: lenient, average, strict)", s)
	}
}
