package review

import (
	"errors"
	"testing"
)

func TestNormalizeRatingValid(t *testing.T) {
	for n := MinRating; n <= MaxRating; n++ {
		raw := string(rune('0' + n))
		got, err := NormalizeRating(raw)
		if err != nil {
			t.Fatalf("NormalizeRating(%q) returned error: %v", raw, err)
		}
		want := raw + "/5"
		if got != want {
			t.Errorf("NormalizeRating(%q) = %q, want %q", raw, got, want)
		}
	}
}

func TestNormalizeRatingInvalid(t *testing.T) {
	inputs := []string{"", "0", "-1", "6", "7", "abc", "4.5", "3/5", " ", "99999999999999999999"}

	for _, raw := range inputs {
		t.Run(raw, func(t *testing.T) {
			got, err := NormalizeRating(raw)
			if err == nil {
				t.Fatalf("expected error for %q, got %q", raw, got)
			}

			var vErr *ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if vErr.Field != FieldRating {
				t.Errorf("expected field %q, got %q", FieldRating, vErr.Field)
			}
			if vErr.Message != "Please enter a valid rating (1-5)" {
				t.Errorf("unexpected message %q", vErr.Message)
			}
		})
	}
}

func TestNormalizeRatingTrimsWhitespace(t *testing.T) {
	got, err := NormalizeRating("  4 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "4/5" {
		t.Errorf("expected 4/5, got %s", got)
	}
}

func TestRatingNumerator(t *testing.T) {
	tests := []struct {
		rating string
		want   int
		ok     bool
	}{
		{"4/5", 4, true},
		{"1/5", 1, true},
		{"7/10", 7, true},
		{"5.0 out of 5 stars", 5, true},
		{" 3 / 5", 3, true},
		{"", 0, false},
		{"five/5", 0, false},
		{"/5", 0, false},
	}

	for _, tt := range tests {
		got, ok := RatingNumerator(tt.rating)
		if ok != tt.ok || got != tt.want {
			t.Errorf("RatingNumerator(%q) = (%d, %v), want (%d, %v)", tt.rating, got, ok, tt.want, tt.ok)
		}
	}
}
