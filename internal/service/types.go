package service

import (
	"encoding/json"
	"strings"

	"github.com/yildizm/ReviewRadar/internal/review"
)

// Service paths
const (
	PathAnalyzeReviews      = "/api/analyze-reviews"
	PathAnalyzeSingleReview = "/api/analyze-single-review"
)

// AnalyzeReviewsRequest asks the service to scrape and classify a product page
type AnalyzeReviewsRequest struct {
	URL       string  `json:"url"`
	Threshold float64 `json:"threshold"`
}

// AnalyzeSingleReviewRequest asks the service to classify one review
type AnalyzeSingleReviewRequest struct {
	Review    string  `json:"review"`
	Threshold float64 `json:"threshold"`
	Rating    string  `json:"rating"`
}

// AnalyzeResponse is the success body of both endpoints
type AnalyzeResponse struct {
	AnalyzedReviews []review.Review `json:"analyzed_reviews"`
}

// ErrorResponse is the failure body. Detail is a plain string for handled
// errors and a list of validation issues for rejected request bodies.
type ErrorResponse struct {
	Detail json.RawMessage `json:"detail"`
}

// validationIssue is one entry of a list-shaped detail
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// Message returns the most specific message in the body, or ""
func (e *ErrorResponse) Message() string {
	if len(e.Detail) == 0 {
		return ""
	}

	var text string
	if err := json.Unmarshal(e.Detail, &text); err == nil {
		return strings.TrimSpace(text)
	}

	var issues []validationIssue
	if err := json.Unmarshal(e.Detail, &issues); err == nil {
		msgs := make([]string, 0, len(issues))
		for _, issue := range issues {
			if issue.Msg != "" {
				msgs = append(msgs, issue.Msg)
			}
		}
		return strings.Join(msgs, "; ")
	}

	return ""
}
