package types

import "fmt"

// ErrorCode classifies a client error.
type ErrorCode string

// Client error codes
const (
	// ErrInvalidRequest means the request could not be built or encoded.
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST"
	// ErrNetwork means the transport failed before an HTTP status was received
	// (connection refused, DNS failure, timeout).
	ErrNetwork ErrorCode = "NETWORK"
	// ErrHTTP means the backend answered with a 4xx/5xx status.
	ErrHTTP ErrorCode = "HTTP_ERROR"
	// ErrAPI means the backend answered 2xx but reported an application-level error.
	ErrAPI ErrorCode = "API_ERROR"
	// ErrDecode means a 2xx response body was not valid JSON.
	ErrDecode ErrorCode = "DECODE_ERROR"
)

// Error is the single error kind produced by the client: a human-readable
// message plus an optional HTTP status code and the raw response payload for
// diagnostics. Network failures carry no status code.
type Error struct {
	Code       ErrorCode `json:"code"`
	Message    string    `json:"message"`
	StatusCode int       `json:"status_code,omitempty"`
	Response   any       `json:"response,omitempty"`
	Retryable  bool      `json:"retryable"`
	Cause      error     `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// NewError creates a new Error with the given code and message.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WithCause adds a cause to the error.
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithStatus sets the HTTP status code.
func (e *Error) WithStatus(status int) *Error {
	e.StatusCode = status
	return e
}

// WithResponse attaches the decoded response payload.
func (e *Error) WithResponse(payload any) *Error {
	e.Response = payload
	return e
}

// WithRetryable marks the error as retryable.
func (e *Error) WithRetryable(retryable bool) *Error {
	e.Retryable = retryable
	return e
}

// IsRetryable checks if an error is retryable.
func IsRetryable(err error) bool {
	if e, ok := err.(*Error); ok {
		return e.Retryable
	}
	return false
}

// GetErrorCode extracts the error code from an error.
func GetErrorCode(err error) ErrorCode {
	if e, ok := err.(*Error); ok {
		return e.Code
	}
	return ""
}
