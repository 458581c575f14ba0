package formatter

import (
	"encoding/json"
	"time"

	"github.com/yildizm/ReviewRadar/internal/aggregate"
	"github.com/yildizm/ReviewRadar/internal/review"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// JSONOutput is the document written by the JSON formatter
type JSONOutput struct {
	Summary   *SummaryOutput       `json:"summary"`
	Reviews   []review.Review      `json:"reviews"`
	Ratings   *RatingsOutput       `json:"ratings"`
	Histogram *aggregate.Histogram `json:"histogram"`
}

// SummaryOutput represents the summary section
type SummaryOutput struct {
	Source      string    `json:"source"`
	Site        string    `json:"site,omitempty"`
	Mode        string    `json:"mode"`
	Threshold   string    `json:"threshold"`
	GeneratedAt time.Time `json:"generated_at"`
	Total       int       `json:"total"`
	Real        int       `json:"real"`
	Fake        int       `json:"fake"`
}

// RatingsOutput is the rating distribution with its mean; Mean is null
// when no review carries a parseable rating
type RatingsOutput struct {
	Buckets  []aggregate.RatingBucket `json:"buckets"`
	Total    int                      `json:"total"`
	Unparsed int                      `json:"unparsed"`
	Mean     *float64                 `json:"mean"`
}

func (f *jsonFormatter) Format(report *Report) ([]byte, error) {
	fake := report.FakeCount()

	ratings := &RatingsOutput{
		Buckets:  report.Ratings.Buckets,
		Total:    report.Ratings.Total,
		Unparsed: report.Ratings.Unparsed,
	}
	if mean, ok := report.Ratings.Mean(); ok {
		ratings.Mean = &mean
	}

	output := &JSONOutput{
		Summary: &SummaryOutput{
			Source:      report.Source,
			Site:        report.Site,
			Mode:        report.Mode,
			Threshold:   report.Threshold,
			GeneratedAt: report.GeneratedAt,
			Total:       len(report.Reviews),
			Real:        len(report.Reviews) - fake,
			Fake:        fake,
		},
		Reviews:   report.Reviews,
		Ratings:   ratings,
		Histogram: &report.Histogram,
	}

	return json.MarshalIndent(output, "", "  ")
}
