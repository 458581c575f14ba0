package aggregate

import (
	"math"
	"testing"

	"github.com/yildizm/ReviewRadar/internal/review"
)

func withConfidence(values ...float64) []review.Review {
	reviews := make([]review.Review, len(values))
	for i, v := range values {
		reviews[i] = review.Review{Text: "r", Confidence: v, Rating: "3/5"}
	}
	return reviews
}

func TestHistogramLabels(t *testing.T) {
	tests := []struct {
		buckets int
		labels  []string
	}{
		{5, []string{"1-20", "21-40", "41-60", "61-80", "81-100"}},
		{10, []string{"1-10", "11-20", "21-30", "31-40", "41-50", "51-60", "61-70", "71-80", "81-90", "91-100"}},
	}

	for _, tt := range tests {
		h, err := ConfidenceHistogram(nil, tt.buckets, OverflowClamp)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(h.Bins) != len(tt.labels) {
			t.Fatalf("expected %d bins, got %d", len(tt.labels), len(h.Bins))
		}
		for i, label := range tt.labels {
			if h.Bins[i].Label != label {
				t.Errorf("bin %d: got label %q, want %q", i, h.Bins[i].Label, label)
			}
			if h.Bins[i].Count != 0 {
				t.Errorf("bin %d: expected zero count on empty input", i)
			}
		}
	}
}

func TestHistogramAssignment(t *testing.T) {
	h, err := ConfidenceHistogram(withConfidence(92, 78, 75, 88), 5, OverflowClamp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []int{0, 0, 0, 2, 2}
	for i, count := range want {
		if h.Bins[i].Count != count {
			t.Errorf("bin %s: got %d, want %d", h.Bins[i].Label, h.Bins[i].Count, count)
		}
	}
}

func TestHistogramBoundaryUsesFloor(t *testing.T) {
	h, err := ConfidenceHistogram(withConfidence(0, 19.9, 20, 40), 5, OverflowClamp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if h.Bins[0].Count != 2 {
		t.Errorf("expected 0 and 19.9 in first bin, got %d", h.Bins[0].Count)
	}
	if h.Bins[1].Count != 1 {
		t.Errorf("expected 20 in second bin, got %d", h.Bins[1].Count)
	}
	if h.Bins[2].Count != 1 {
		t.Errorf("expected 40 in third bin, got %d", h.Bins[2].Count)
	}
}

func TestHistogramOverflowPolicy(t *testing.T) {
	reviews := withConfidence(100, 100, 50)

	clamped, err := ConfidenceHistogram(reviews, 5, OverflowClamp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if clamped.Bins[4].Count != 2 || clamped.Dropped != 0 {
		t.Errorf("clamp: expected 2 in last bin and nothing dropped, got %d / %d", clamped.Bins[4].Count, clamped.Dropped)
	}

	dropped, err := ConfidenceHistogram(reviews, 5, OverflowDrop)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dropped.Bins[4].Count != 0 || dropped.Dropped != 2 {
		t.Errorf("drop: expected empty last bin and 2 dropped, got %d / %d", dropped.Bins[4].Count, dropped.Dropped)
	}
}

func TestHistogramOutOfDomainIsDropped(t *testing.T) {
	h, err := ConfidenceHistogram(withConfidence(-1, 101, math.NaN(), 10), 10, OverflowClamp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if h.Dropped != 3 {
		t.Errorf("expected 3 dropped, got %d", h.Dropped)
	}
	if h.Total() != 1 {
		t.Errorf("expected 1 placed, got %d", h.Total())
	}
}

func TestHistogramCountsSumToLength(t *testing.T) {
	values := []float64{0, 5, 10, 15, 20, 33.3, 50, 66.6, 80, 99.9, 100}

	for _, buckets := range []int{1, 2, 4, 5, 10, 20, 25, 50, 100} {
		h, err := ConfidenceHistogram(withConfidence(values...), buckets, OverflowClamp)
		if err != nil {
			t.Fatalf("buckets=%d: unexpected error: %v", buckets, err)
		}
		if h.Total() != len(values) {
			t.Errorf("buckets=%d: counts sum to %d, want %d", buckets, h.Total(), len(values))
		}
	}
}

func TestHistogramInvalidBuckets(t *testing.T) {
	for _, buckets := range []int{0, -5, 3, 7, 101} {
		if _, err := NewHistogramGenerator(buckets, OverflowClamp); err == nil {
			t.Errorf("expected error for %d buckets", buckets)
		}
	}
	if _, err := NewHistogramGenerator(5, OverflowPolicy("wrap")); err == nil {
		t.Error("expected error for unknown overflow policy")
	}
}

func TestParseOverflowPolicy(t *testing.T) {
	if p, err := ParseOverflowPolicy(""); err != nil || p != OverflowClamp {
		t.Errorf("expected clamp default, got %v (%v)", p, err)
	}
	if p, err := ParseOverflowPolicy("DROP"); err != nil || p != OverflowDrop {
		t.Errorf("expected drop, got %v (%v)", p, err)
	}
	if _, err := ParseOverflowPolicy("wrap"); err == nil {
		t.Error("expected error for wrap")
	}
}

func TestHistogramMaxCount(t *testing.T) {
	h, _ := ConfidenceHistogram(withConfidence(10, 12, 90), 5, OverflowClamp)
	if h.MaxCount() != 2 {
		t.Errorf("expected max count 2, got %d", h.MaxCount())
	}
}
