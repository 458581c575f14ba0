package service

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType categorizes service failures
type ErrorType string

const (
	// ErrTypeNetwork indicates the request never got a response
	ErrTypeNetwork ErrorType = "network"

	// ErrTypeStatus indicates a non-2xx response
	ErrTypeStatus ErrorType = "status"

	// ErrTypeDecode indicates a malformed success body
	ErrTypeDecode ErrorType = "decode"

	// ErrTypeConfiguration indicates an unusable client configuration
	ErrTypeConfiguration ErrorType = "configuration"

	// ErrTypeInternal indicates a client-side failure building the request
	ErrTypeInternal ErrorType = "internal"
)

// Generic user-facing messages
const (
	MsgNetworkFailure = "Could not reach the analysis service"
	MsgDecodeFailure  = "The analysis service returned an unexpected response"
)

// Error is a failed call to the analysis service
type Error struct {
	// Type categorizes the error
	Type ErrorType `json:"type"`

	// Message describes the failure
	Message string `json:"message"`

	// Detail is the service-provided detail message, if any
	Detail string `json:"detail,omitempty"`

	// StatusCode for non-2xx responses
	StatusCode int `json:"status_code,omitempty"`

	// Cause is the underlying error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	parts := []string{fmt.Sprintf("type=%s", e.Type)}

	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}

	parts = append(parts, e.Message)

	if e.Detail != "" {
		parts = append(parts, fmt.Sprintf("detail=%s", e.Detail))
	}
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}

	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same type
func (e *Error) Is(target error) bool {
	if se, ok := target.(*Error); ok {
		return e.Type == se.Type
	}
	return false
}

// UserMessage returns the most specific message suitable for display:
// the service detail when present, else a status-based message, else a
// generic one for the error type.
func (e *Error) UserMessage() string {
	switch {
	case e.Detail != "":
		return e.Detail
	case e.Type == ErrTypeStatus:
		return fmt.Sprintf("Request failed with status %d", e.StatusCode)
	case e.Type == ErrTypeNetwork:
		return MsgNetworkFailure
	case e.Type == ErrTypeDecode:
		return MsgDecodeFailure
	default:
		return e.Message
	}
}

// NewError creates a service error
func NewError(errType ErrorType, message string) *Error {
	return &Error{Type: errType, Message: message}
}

// NewErrorWithCause creates a service error with an underlying cause
func NewErrorWithCause(errType ErrorType, message string, cause error) *Error {
	return &Error{Type: errType, Message: message, Cause: cause}
}

// NewStatusError creates an error for a non-2xx response
func NewStatusError(statusCode int, detail string) *Error {
	return &Error{
		Type:       ErrTypeStatus,
		Message:    fmt.Sprintf("request failed with status %d", statusCode),
		Detail:     detail,
		StatusCode: statusCode,
	}
}

// UserMessage extracts a display message from any error
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.UserMessage()
	}
	return err.Error()
}

// IsStatusError checks if an error is a non-2xx response
func IsStatusError(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Type == ErrTypeStatus
}

// IsNetworkError checks if an error is a transport failure
func IsNetworkError(err error) bool {
	var se *Error
	return errors.As(err, &se) && se.Type == ErrTypeNetwork
}
