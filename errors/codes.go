package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Request errors (retryable)
const (
	// ErrCodeTimeout indicates the request did not complete in time.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
	// ErrCodeConnectionFailed indicates the remote endpoint could not be reached.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
)

// Input errors
const (
	// ErrCodeInvalidInput indicates the caller supplied something unusable.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInvalidConfig indicates a configuration value failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Internal errors
const (
	// ErrCodeInternal indicates an unexpected failure.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeTimeout:          true,
	ErrCodeConnectionFailed: true,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
