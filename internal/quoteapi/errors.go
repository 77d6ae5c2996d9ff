package quoteapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"strings"
	"syscall"
)

// ErrorType represents the category of error that occurred
type ErrorType int

const (
	// ErrTypeNetwork indicates a transport failure (host unreachable, reset, etc.)
	ErrTypeNetwork ErrorType = iota
	// ErrTypeTimeout indicates the request did not complete in time
	ErrTypeTimeout
	// ErrTypeConnectionRefused indicates nothing is listening at the API address
	ErrTypeConnectionRefused
	// ErrTypeHTTP indicates a non-2xx response
	ErrTypeHTTP
	// ErrTypeNotFound indicates a 404 response
	ErrTypeNotFound
	// ErrTypeParse indicates a response body that could not be decoded
	ErrTypeParse
)

// String returns a human-readable name for the error type
func (et ErrorType) String() string {
	switch et {
	case ErrTypeNetwork:
		return "Network Error"
	case ErrTypeTimeout:
		return "Timeout"
	case ErrTypeConnectionRefused:
		return "Connection Refused"
	case ErrTypeHTTP:
		return "HTTP Error"
	case ErrTypeNotFound:
		return "Not Found"
	case ErrTypeParse:
		return "Parse Error"
	default:
		return fmt.Sprintf("ErrorType(%d)", et)
	}
}

// APIError represents an error that occurred while talking to the quote API
type APIError struct {
	Type       ErrorType // Category of error
	Message    string    // Human-readable error message
	StatusCode int       // HTTP status code (if applicable)
	Body       string    // Response body text (if applicable)
	Err        error     // Underlying error (if any)
}

// Error implements the error interface
func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying error for error chain inspection
func (e *APIError) Unwrap() error {
	return e.Err
}

// ClassifyNetworkError maps a transport error onto an APIError
func ClassifyNetworkError(message string, err error) *APIError {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.DeadlineExceeded) || os.IsTimeout(err) {
		return &APIError{Type: ErrTypeTimeout, Message: message, Err: err}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) && errors.Is(opErr.Err, syscall.ECONNREFUSED) {
		return &APIError{Type: ErrTypeConnectionRefused, Message: message, Err: err}
	}

	return &APIError{Type: ErrTypeNetwork, Message: message, Err: err}
}

// NewNetworkError creates a transport-level error with automatic classification
func NewNetworkError(message string, err error) *APIError {
	return ClassifyNetworkError(message, err)
}

// NewHTTPError creates an error for a non-2xx response. A 404 becomes
// ErrTypeNotFound.
func NewHTTPError(statusCode int, body string) *APIError {
	t := ErrTypeHTTP
	if statusCode == 404 {
		t = ErrTypeNotFound
	}
	return &APIError{
		Type:       t,
		Message:    fmt.Sprintf("unexpected status code: %d", statusCode),
		StatusCode: statusCode,
		Body:       body,
	}
}

// NewParseError creates a parsing error
func NewParseError(message string, err error) *APIError {
	return &APIError{Type: ErrTypeParse, Message: message, Err: err}
}

func asAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// IsNetworkError checks if an error is a transport error (including timeout and connection refused)
func IsNetworkError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNetwork ||
			apiErr.Type == ErrTypeTimeout ||
			apiErr.Type == ErrTypeConnectionRefused
	}
	return false
}

// IsHTTPError checks if an error is a non-2xx response, including 404
func IsHTTPError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeHTTP || apiErr.Type == ErrTypeNotFound
	}
	return false
}

// IsNotFoundError checks if an error is a 404 response
func IsNotFoundError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeNotFound
	}
	return false
}

// IsParseError checks if an error is a parse error
func IsParseError(err error) bool {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.Type == ErrTypeParse
	}
	return false
}

// StatusCode returns the HTTP status carried by err, or 0
func StatusCode(err error) int {
	if apiErr, ok := asAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

// UserMessage flattens err into the one message shown to the user. Server
// responses are shown verbatim when they have a body; everything else gets
// the fallback for the operation.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := asAPIError(err); ok && IsHTTPError(apiErr) {
		if body := strings.TrimSpace(apiErr.Body); body != "" {
			return body
		}
	}
	return fallback
}

// ShortMessage returns a concise message for CLI output
func ShortMessage(err error) string {
	apiErr, ok := asAPIError(err)
	if !ok {
		return err.Error()
	}

	switch apiErr.Type {
	case ErrTypeTimeout:
		return "Quote API not responding (timeout)"
	case ErrTypeConnectionRefused:
		return "Quote API refused connection - is the backend running?"
	case ErrTypeNetwork:
		return "Network error - check the API address"
	case ErrTypeNotFound:
		return "Quote not found"
	case ErrTypeHTTP:
		switch apiErr.StatusCode {
		case 401, 403:
			return fmt.Sprintf("Quote API rejected the request (HTTP %d) - check the API key", apiErr.StatusCode)
		}
		return fmt.Sprintf("Quote API error (HTTP %d)", apiErr.StatusCode)
	case ErrTypeParse:
		return "Failed to parse quote API response"
	default:
		return apiErr.Message
	}
}
