package fetch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	apperrors "github.com/kbukum/gofetch/errors"
)

// Kind classifies a failed request.
type Kind int

const (
	// KindSerialization means a structured body could not be encoded as
	// JSON. Nothing was sent.
	KindSerialization Kind = iota + 1
	// KindTransport means the request never produced a complete response
	// (refused, DNS failure, reset, body read error, cancelled context).
	KindTransport
	// KindTimeout means no complete response arrived within the timeout.
	KindTimeout
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindSerialization:
		return "serialization"
	case KindTransport:
		return "transport"
	case KindTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Error codes carried by *Error.
const (
	CodeTimeout       = "fetch_request_time_out"
	CodeTransport     = "fetch_transport_failed"
	CodeSerialization = "fetch_body_serialization_failed"
)

// Error is returned for every failed request.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	// URL is the target as dispatched.
	URL string
	// Timeout is the effective timeout of the request.
	Timeout time.Duration
	// Request is the in-flight request, for inspection only. It is nil for
	// serialization failures and may already be cancelled.
	Request *http.Request
	// Err is the underlying cause; nil for timeouts.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports timeouts as context.DeadlineExceeded.
func (e *Error) Is(target error) bool {
	return e.Kind == KindTimeout && target == context.DeadlineExceeded
}

// AppError maps the error onto the application error envelope.
func (e *Error) AppError() *apperrors.AppError {
	switch e.Kind {
	case KindTimeout:
		return apperrors.Timeout(e.Message).
			WithDetail("code", e.Code).
			WithDetail("timeout_ms", e.Timeout.Milliseconds()).
			WithDetail("url", e.URL)
	case KindSerialization:
		return apperrors.InvalidInput("body", e.Err.Error()).
			WithDetail("code", e.Code).
			WithCause(e.Err)
	default:
		return apperrors.ConnectionFailed(e.URL, e.Err).
			WithDetail("code", e.Code)
	}
}

func newSerializationError(err error) *Error {
	return &Error{
		Kind:    KindSerialization,
		Code:    CodeSerialization,
		Message: "failed to serialize request body",
		Err:     err,
	}
}

func newTransportError(url string, req *http.Request, timeout time.Duration, err error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    CodeTransport,
		Message: "request failed",
		URL:     url,
		Timeout: timeout,
		Request: req,
		Err:     err,
	}
}

func newTimeoutError(url string, req *http.Request, timeout time.Duration) *Error {
	return &Error{
		Kind:    KindTimeout,
		Code:    CodeTimeout,
		Message: fmt.Sprintf("Request has timed out after %dms", timeout.Milliseconds()),
		URL:     url,
		Timeout: timeout,
		Request: req,
	}
}

// IsTimeout checks if an error is a request timeout.
func IsTimeout(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTimeout
}

// IsTransport checks if an error is a transport failure.
func IsTransport(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindTransport
}

// IsSerialization checks if an error is a body serialization failure.
func IsSerialization(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindSerialization
}

// ToAppError converts any error to an application error, using the fetch
// mapping for *Error values.
func ToAppError(err error) *apperrors.AppError {
	var e *Error
	if errors.As(err, &e) {
		return e.AppError()
	}
	return apperrors.Wrap(err)
}
