package aggregate

import (
	"math"
	"sort"

	"github.com/yildizm/ReviewRadar/internal/review"
)

// RatingBucket counts reviews sharing one star value
type RatingBucket struct {
	Stars int    `json:"stars"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// RatingSummary is the rating distribution of a result list
type RatingSummary struct {
	Buckets  []RatingBucket `json:"buckets"`
	Total    int            `json:"total"`
	Unparsed int            `json:"unparsed,omitempty"`
}

// RatingDistribution groups reviews by the numerator of their rating.
// Only ratings present in the list get a bucket; buckets are ordered by
// ascending star value. Ratings without a numeric numerator are counted in
// Unparsed instead of a bucket.
func RatingDistribution(reviews []review.Review) RatingSummary {
	counts := make(map[int]int)
	summary := RatingSummary{Total: len(reviews)}

	for _, r := range reviews {
		stars, ok := review.RatingNumerator(r.Rating)
		if !ok {
			summary.Unparsed++
			continue
		}
		counts[stars]++
	}

	summary.Buckets = make([]RatingBucket, 0, len(counts))
	for stars, count := range counts {
		summary.Buckets = append(summary.Buckets, RatingBucket{
			Stars: stars,
			Label: review.FormatRating(stars),
			Count: count,
		})
	}
	sort.Slice(summary.Buckets, func(i, j int) bool {
		return summary.Buckets[i].Stars < summary.Buckets[j].Stars
	})

	return summary
}

// Rated returns the number of reviews that landed in a bucket
func (s RatingSummary) Rated() int {
	n := 0
	for _, b := range s.Buckets {
		n += b.Count
	}
	return n
}

// Mean returns the star sum over the total review count, rounded to one
// decimal place. Unparsed ratings count toward the total but add no stars.
// ok is false when no review carries a parsable rating.
func (s RatingSummary) Mean() (mean float64, ok bool) {
	if s.Total == 0 || s.Rated() == 0 {
		return 0, false
	}

	sum := 0
	for _, b := range s.Buckets {
		sum += b.Stars * b.Count
	}
	return math.Round(float64(sum)/float64(s.Total)*10) / 10, true
}

// Share returns a bucket's fraction of all rated reviews
func (s RatingSummary) Share(b RatingBucket) float64 {
	rated := s.Rated()
	if rated == 0 {
		return 0
	}
	return float64(b.Count) / float64(rated)
}
