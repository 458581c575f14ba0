package review

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/publicsuffix"
)

// Validated input fields
const (
	FieldURL       = "url"
	FieldThreshold = "threshold"
	FieldRating    = "rating"
	FieldText      = "review"
)

// User-facing validation messages
const (
	MsgMissingURL       = "Please enter a URL"
	MsgMissingThreshold = "Please select a threshold"
	MsgEmptyReview      = "Please enter a review"
)

// ValidationError is a client-side input error. It blocks submission and
// never reaches the network.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error for field '%s': %s", e.Field, e.Message)
}

// NewValidationError creates a validation error
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// ValidateURL checks that a product URL was entered
func ValidateURL(raw string) (string, error) {
	u := strings.TrimSpace(raw)
	if u == "" {
		return "", NewValidationError(FieldURL, MsgMissingURL)
	}
	return u, nil
}

// ValidateThreshold checks that a tier was selected
func ValidateThreshold(t Threshold) error {
	if !t.IsSet() {
		return NewValidationError(FieldThreshold, MsgMissingThreshold)
	}
	return nil
}

// ValidateReviewText checks that the review body is not blank
func ValidateReviewText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", NewValidationError(FieldText, MsgEmptyReview)
	}
	return text, nil
}

// SiteOf returns the registrable domain (eTLD+1) of a product URL, falling
// back to the bare host and finally to the input itself.
func SiteOf(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}

	u, err := url.Parse(s)
	if err != nil || u.Hostname() == "" {
		return strings.TrimSpace(raw)
	}

	host := strings.ToLower(u.Hostname())
	site, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return site
}
