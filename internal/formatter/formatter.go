package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(report *Report) ([]byte, error)
}

// Report is one analysis result with its derived views
type Report struct {
	Source      string                  `json:"source"`
	Site        string                  `json:"site,omitempty"`
	Mode        string                  `json:"mode"`
	Threshold   string                  `json:"threshold"`
	GeneratedAt time.Time               `json:"generated_at"`
	Reviews     []review.Review         `json:"reviews"`
	Ratings     aggregate.RatingSummary `json:"ratings"`
	Histogram   aggregate.Histogram     `json:"histogram"`
}

// NewReport aggregates reviews into a report
func NewReport(source, mode string, threshold review.Threshold, reviews []review.Review, buckets int, policy aggregate.OverflowPolicy) (*Report, error) {
	hist, err := aggregate.ConfidenceHistogram(reviews, buckets, policy)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []review.Review{}
	}

	return &Report{
		Source:      source,
		Site:        review.SiteOf(source),
		Mode:        mode,
		Threshold:   threshold.String(),
		GeneratedAt: time.Now(),
		Reviews:     reviews,
		Ratings:     aggregate.RatingDistribution(reviews),
		Histogram:   hist,
	}, nil
}

// FakeCount returns how many reviews were classified fake
func (r *Report) FakeCount() int {
	return review.CountFake(r.Reviews)
}

// Formats lists the supported output formats
var Formats = []string{"text", "json", "markdown", "csv", "html"}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch strings.ToLower(format) {
	case "json":
		return NewJSON(), nil
	case "markdown", "md":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	case "html":
		return NewHTML(), nil
	case "text", "terminal", "":
		return NewTerminal(color), nil
	default:
		return nil, fmt.Errorf("unknown format: %s (must be one of: %s)", format, strings.Join(Formats, ", "))
	}
}
