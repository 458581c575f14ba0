package aggregate

import (
	"fmt"
	"math"
	"strings"

	"github.com/yildizm/ReviewRadar/internal/review"
)

// Confidence domain covered by the histogram
const (
	ConfidenceMin = 0.0
	ConfidenceMax = 100.0
)

// DefaultBuckets is the number of histogram bins used when none is configured
const DefaultBuckets = 5

// OverflowPolicy decides what happens to a confidence of exactly 100,
// which floor(confidence/width) maps one past the last bucket
type OverflowPolicy string

const (
	OverflowClamp OverflowPolicy = "clamp"
	OverflowDrop  OverflowPolicy = "drop"
)

// ParseOverflowPolicy parses a policy name
func ParseOverflowPolicy(s string) (OverflowPolicy, error) {
	switch OverflowPolicy(strings.ToLower(strings.TrimSpace(s))) {
	case OverflowClamp, "":
		return OverflowClamp, nil
	case OverflowDrop:
		return OverflowDrop, nil
	default:
		return "", fmt.Errorf("invalid overflow policy: %s (must be one of: clamp, drop)", s)
	}
}

// Bin is one equal-width confidence range
type Bin struct {
	Label string  `json:"range"`
	Lower float64 `json:"lower"`
	Upper float64 `json:"upper"`
	Count int     `json:"count"`
}

// Histogram is the confidence distribution of a result list
type Histogram struct {
	Bins    []Bin `json:"bins"`
	Width   int   `json:"width"`
	Dropped int   `json:"dropped,omitempty"`
}

// Total returns the number of reviews placed in a bin
func (h Histogram) Total() int {
	n := 0
	for _, b := range h.Bins {
		n += b.Count
	}
	return n
}

// MaxCount returns the largest bin count
func (h Histogram) MaxCount() int {
	largest := 0
	for _, b := range h.Bins {
		if b.Count > largest {
			largest = b.Count
		}
	}
	return largest
}

// HistogramGenerator partitions [0,100] into equal-width bins
type HistogramGenerator struct {
	buckets int
	width   int
	policy  OverflowPolicy
}

// ValidateBuckets checks that a bucket count splits [0,100] into integer widths
func ValidateBuckets(buckets int) error {
	if buckets < 1 || buckets > int(ConfidenceMax) {
		return fmt.Errorf("histogram buckets must be between 1 and %d, got %d", int(ConfidenceMax), buckets)
	}
	if int(ConfidenceMax)%buckets != 0 {
		return fmt.Errorf("histogram buckets must divide %d evenly, got %d", int(ConfidenceMax), buckets)
	}
	return nil
}

// NewHistogramGenerator creates a generator for the given bucket count
func NewHistogramGenerator(buckets int, policy OverflowPolicy) (*HistogramGenerator, error) {
	if err := ValidateBuckets(buckets); err != nil {
		return nil, err
	}
	if policy == "" {
		policy = OverflowClamp
	}
	if policy != OverflowClamp && policy != OverflowDrop {
		return nil, fmt.Errorf("invalid overflow policy: %s", policy)
	}

	return &HistogramGenerator{
		buckets: buckets,
		width:   int(ConfidenceMax) / buckets,
		policy:  policy,
	}, nil
}

// Generate builds the histogram. Every bin is present, empty ones with a
// zero count, in ascending order.
func (g *HistogramGenerator) Generate(reviews []review.Review) Histogram {
	h := Histogram{
		Bins:  g.createBins(),
		Width: g.width,
	}

	for _, r := range reviews {
		idx, ok := g.binIndex(r.Confidence)
		if !ok {
			h.Dropped++
			continue
		}
		h.Bins[idx].Count++
	}

	return h
}

// createBins creates the empty bins labelled like "1-20", "21-40", ...
func (g *HistogramGenerator) createBins() []Bin {
	bins := make([]Bin, g.buckets)
	for i := range bins {
		lower := i * g.width
		upper := (i + 1) * g.width
		bins[i] = Bin{
			Label: fmt.Sprintf("%d-%d", lower+1, upper),
			Lower: float64(lower),
			Upper: float64(upper),
		}
	}
	return bins
}

// binIndex maps a confidence to floor(confidence/width). Values on a bin
// boundary belong to the higher-indexed bin whose lower edge they are.
func (g *HistogramGenerator) binIndex(confidence float64) (int, bool) {
	if math.IsNaN(confidence) || confidence < ConfidenceMin || confidence > ConfidenceMax {
		return 0, false
	}

	idx := int(math.Floor(confidence / float64(g.width)))
	if idx >= g.buckets {
		if g.policy == OverflowDrop {
			return 0, false
		}
		idx = g.buckets - 1
	}
	return idx, true
}

// ConfidenceHistogram is a convenience wrapper around HistogramGenerator
func ConfidenceHistogram(reviews []review.Review, buckets int, policy OverflowPolicy) (Histogram, error) {
	g, err := NewHistogramGenerator(buckets, policy)
	if err != nil {
		return Histogram{}, err
	}
	return g.Generate(reviews), nil
}
