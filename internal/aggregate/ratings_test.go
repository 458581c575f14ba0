package aggregate

import (
	"testing"

	"github.com/yildizm/ReviewRadar/internal/review"
)

func sampleReviews() []review.Review {
	return []review.Review{
		{Text: "exceeded expectations", Confidence: 92, Label: true, Rating: "5/5"},
		{Text: "terrible quality", Confidence: 78, Label: false, Rating: "1/5"},
		{Text: "average product", Confidence: 75, Label: true, Rating: "1/5"},
		{Text: "great value", Confidence: 88, Label: true, Rating: "4/5"},
	}
}

func TestRatingDistribution(t *testing.T) {
	summary := RatingDistribution(sampleReviews())

	if summary.Total != 4 {
		t.Errorf("expected total 4, got %d", summary.Total)
	}

	want := []RatingBucket{
		{Stars: 1, Label: "1/5", Count: 2},
		{Stars: 4, Label: "4/5", Count: 1},
		{Stars: 5, Label: "5/5", Count: 1},
	}
	if len(summary.Buckets) != len(want) {
		t.Fatalf("expected %d buckets, got %d: %+v", len(want), len(summary.Buckets), summary.Buckets)
	}
	for i, b := range want {
		if summary.Buckets[i] != b {
			t.Errorf("bucket %d: got %+v, want %+v", i, summary.Buckets[i], b)
		}
	}

	mean, ok := summary.Mean()
	if !ok {
		t.Fatal("expected mean to be defined")
	}
	// (1*2 + 4 + 5) / 4 = 2.75 -> 2.8
	if mean != 2.8 {
		t.Errorf("expected mean 2.8, got %v", mean)
	}
}

func TestRatingDistributionEmpty(t *testing.T) {
	summary := RatingDistribution(nil)

	if len(summary.Buckets) != 0 {
		t.Errorf("expected no buckets, got %d", len(summary.Buckets))
	}
	if _, ok := summary.Mean(); ok {
		t.Error("expected mean to be undefined for empty list")
	}
}

func TestRatingDistributionCountsSumToLength(t *testing.T) {
	lists := [][]review.Review{
		sampleReviews(),
		{{Rating: "3/5"}},
		{{Rating: "2/5"}, {Rating: "2/5"}, {Rating: "2/5"}},
		{{Rating: "1/5"}, {Rating: "2/5"}, {Rating: "3/5"}, {Rating: "4/5"}, {Rating: "5/5"}},
	}

	for i, list := range lists {
		summary := RatingDistribution(list)
		if got := summary.Rated(); got != len(list) {
			t.Errorf("list %d: bucket counts sum to %d, want %d", i, got, len(list))
		}
	}
}

func TestRatingDistributionLooseFormats(t *testing.T) {
	reviews := []review.Review{
		{Rating: "5.0 out of 5 stars"},
		{Rating: "5/5"},
		{Rating: "n/a"},
	}

	summary := RatingDistribution(reviews)
	if len(summary.Buckets) != 1 || summary.Buckets[0].Count != 2 {
		t.Fatalf("expected a single 5-star bucket with 2 reviews, got %+v", summary.Buckets)
	}
	if summary.Unparsed != 1 {
		t.Errorf("expected 1 unparsed rating, got %d", summary.Unparsed)
	}
	// unparsed ratings stay in the denominator: 10 / 3 = 3.33 -> 3.3
	if mean, _ := summary.Mean(); mean != 3.3 {
		t.Errorf("expected mean 3.3, got %v", mean)
	}
}

func TestRatingMeanAllUnparsed(t *testing.T) {
	summary := RatingDistribution([]review.Review{{Rating: "n/a"}, {Rating: ""}})
	if summary.Total != 2 || summary.Unparsed != 2 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if _, ok := summary.Mean(); ok {
		t.Error("expected mean to be undefined when nothing is rated")
	}
}

func TestRatingShare(t *testing.T) {
	summary := RatingDistribution(sampleReviews())
	if got := summary.Share(summary.Buckets[0]); got != 0.5 {
		t.Errorf("expected share 0.5 for 1/5, got %v", got)
	}
	if got := (RatingSummary{}).Share(RatingBucket{Count: 3}); got != 0 {
		t.Errorf("expected share 0 on empty summary, got %v", got)
	}
}
