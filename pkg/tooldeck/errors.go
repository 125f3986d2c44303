package tooldeck

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies a failure surfaced by the client.
type ErrorKind string

const (
	// ErrorKindConfiguration marks client construction failures (missing API
	// key or base URL). Nothing was sent.
	ErrorKindConfiguration ErrorKind = "configuration"

	// ErrorKindMalformedRequest marks a request that could not be built, such
	// as a path template with a missing parameter. Nothing was sent.
	ErrorKindMalformedRequest ErrorKind = "malformed_request"

	// ErrorKindNetwork marks connection-level failures.
	ErrorKindNetwork ErrorKind = "network"

	// ErrorKindTimeout marks deadline and timeout failures.
	ErrorKindTimeout ErrorKind = "timeout"

	// ErrorKindDecode marks a response body that could not be parsed, or a
	// payload that could not be unmarshaled into its declared type.
	ErrorKindDecode ErrorKind = "decode"

	// ErrorKindEmptyPayload marks an envelope that violated the protocol by
	// carrying neither data nor error, or no data on a success status.
	ErrorKindEmptyPayload ErrorKind = "empty_payload"

	// ErrorKindNotFound marks a platform not_found error.
	ErrorKindNotFound ErrorKind = "not_found"

	// ErrorKindUnauthorized marks authentication failures.
	ErrorKindUnauthorized ErrorKind = "unauthorized"

	// ErrorKindForbidden marks authorization failures.
	ErrorKindForbidden ErrorKind = "forbidden"

	// ErrorKindRateLimited marks platform rate limiting.
	ErrorKindRateLimited ErrorKind = "rate_limited"

	// ErrorKindServer marks 5xx platform failures.
	ErrorKindServer ErrorKind = "server"

	// ErrorKindAPI marks any other error reported by the platform.
	ErrorKindAPI ErrorKind = "api"
)

// Platform error codes carried in error envelopes.
const (
	ErrorCodeNotFound     = "not_found"
	ErrorCodeUnauthorized = "unauthorized"
	ErrorCodeForbidden    = "forbidden"
	ErrorCodeRateLimited  = "rate_limited"
	ErrorCodeInvalidInput = "invalid_input"
)

// APIError is the error object the platform returns inside a response
// envelope.
type APIError struct {
	Code    string                 `json:"code"              yaml:"code"`
	Message string                 `json:"message,omitempty" yaml:"message,omitempty"`
	Details map[string]interface{} `json:"details,omitempty" yaml:"details,omitempty"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Message == "" {
		return e.Code
	}

	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Error is the failure type surfaced by every client operation. Kind makes
// the failure class programmatically distinguishable; Status, Code, and Body
// carry whatever diagnostics were available when it was built.
type Error struct {
	// Kind classifies the failure.
	Kind ErrorKind
	// Status is the HTTP status code, when a response was received.
	Status int
	// Code is the platform error code, when the envelope carried one.
	Code string
	// Message is a human-readable description.
	Message string
	// Body preserves the raw response body for decode and protocol failures.
	Body []byte
	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}

	switch {
	case e.Code != "" && e.Status != 0:
		return fmt.Sprintf("tooldeck: %s [%s] (status %d): %s", e.Kind, e.Code, e.Status, msg)
	case e.Status != 0:
		return fmt.Sprintf("tooldeck: %s (status %d): %s", e.Kind, e.Status, msg)
	default:
		return fmt.Sprintf("tooldeck: %s: %s", e.Kind, msg)
	}
}

// Unwrap returns the underlying cause so errors.Is and errors.As keep
// working against causes like context.DeadlineExceeded.
func (e *Error) Unwrap() error {
	return e.Err
}

// Static errors for err113 compliance.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrAPIKeyRequired  = errors.New("API key is required")
	ErrBaseURLRequired = errors.New("base URL is required")
	ErrNoMoreItems     = errors.New("no more items")

	ErrCircuitBreakerOpen = errors.New("circuit breaker is open")
)

// kindOf extracts the ErrorKind from err, or "" when err carries none.
func kindOf(err error) ErrorKind {
	var derr *Error
	if errors.As(err, &derr) {
		return derr.Kind
	}

	return ""
}

// IsConfiguration checks if the error is a client configuration error.
func IsConfiguration(err error) bool {
	return kindOf(err) == ErrorKindConfiguration
}

// IsMalformedRequest checks if the error is a malformed request error. These
// fail before anything is sent over the wire.
func IsMalformedRequest(err error) bool {
	return kindOf(err) == ErrorKindMalformedRequest
}

// IsNetwork checks if the error is a connection-level failure.
func IsNetwork(err error) bool {
	return kindOf(err) == ErrorKindNetwork
}

// IsTimeout checks if the error is a timeout.
func IsTimeout(err error) bool {
	return kindOf(err) == ErrorKindTimeout
}

// IsDecode checks if the error is a response decode failure.
func IsDecode(err error) bool {
	return kindOf(err) == ErrorKindDecode
}

// IsEmptyPayload checks if the error marks an envelope protocol violation.
func IsEmptyPayload(err error) bool {
	return kindOf(err) == ErrorKindEmptyPayload
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return kindOf(err) == ErrorKindNotFound
}

// IsUnauthorized checks if the error is an authentication error.
func IsUnauthorized(err error) bool {
	return kindOf(err) == ErrorKindUnauthorized
}

// IsForbidden checks if the error is an authorization error.
func IsForbidden(err error) bool {
	return kindOf(err) == ErrorKindForbidden
}

// IsRateLimited checks if the error is a rate limit error.
func IsRateLimited(err error) bool {
	return kindOf(err) == ErrorKindRateLimited
}

// IsServer checks if the error is a 5xx platform failure.
func IsServer(err error) bool {
	return kindOf(err) == ErrorKindServer
}

// errorFromEnvelope maps an envelope error and its HTTP status to an *Error.
// The platform code takes precedence over the status so domain errors stay
// distinguishable even behind unusual status codes.
func errorFromEnvelope(apiErr *APIError, status int, body []byte) *Error {
	kind := ErrorKindAPI

	switch {
	case apiErr.Code == ErrorCodeNotFound || status == http.StatusNotFound:
		kind = ErrorKindNotFound
	case apiErr.Code == ErrorCodeUnauthorized || status == http.StatusUnauthorized:
		kind = ErrorKindUnauthorized
	case apiErr.Code == ErrorCodeForbidden || status == http.StatusForbidden:
		kind = ErrorKindForbidden
	case apiErr.Code == ErrorCodeRateLimited || status == http.StatusTooManyRequests:
		kind = ErrorKindRateLimited
	case status >= http.StatusInternalServerError:
		kind = ErrorKindServer
	}

	return &Error{
		Kind:    kind,
		Status:  status,
		Code:    apiErr.Code,
		Message: apiErr.Message,
		Body:    body,
		Err:     apiErr,
	}
}
