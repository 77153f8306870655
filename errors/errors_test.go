package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Retryable(t *testing.T) {
	err := New(ErrCodeTimeout, "timed out")
	if !err.Retryable {
		t.Error("TIMEOUT should be retryable")
	}
	if err.Message != "timed out" {
		t.Errorf("expected message 'timed out', got %q", err.Message)
	}
}

func TestAppError_New_NotRetryable(t *testing.T) {
	err := New(ErrCodeInvalidInput, "bad")
	if err.Retryable {
		t.Error("INVALID_INPUT should not be retryable")
	}
}

func TestAppError_ConnectionFailed(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := ConnectionFailed("http://127.0.0.1:1", cause)
	if err.Code != ErrCodeConnectionFailed {
		t.Errorf("expected CONNECTION_FAILED, got %s", err.Code)
	}
	if err.Details["target"] != "http://127.0.0.1:1" {
		t.Errorf("expected target detail, got %v", err.Details["target"])
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected cause to be reachable through Unwrap")
	}
	if !err.Retryable {
		t.Error("ConnectionFailed should be retryable")
	}
}

func TestAppError_InvalidInput(t *testing.T) {
	err := InvalidInput("body", "cannot encode")
	if err.Code != ErrCodeInvalidInput {
		t.Errorf("expected INVALID_INPUT, got %s", err.Code)
	}
	if err.Details["field"] != "body" {
		t.Errorf("expected field=body, got %v", err.Details["field"])
	}

	noField := InvalidInput("", "cannot encode")
	if _, ok := noField.Details["field"]; ok {
		t.Error("expected no field detail when field is empty")
	}
}

func TestAppError_Error_Format(t *testing.T) {
	err := Timeout("Request has timed out after 100ms")
	s := err.Error()
	if !strings.Contains(s, "TIMEOUT") {
		t.Errorf("expected error string to contain code, got %q", s)
	}
	if !strings.Contains(s, "100ms") {
		t.Errorf("expected error string to contain message, got %q", s)
	}

	withCause := Internal(fmt.Errorf("root cause"))
	if !strings.Contains(withCause.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", withCause.Error())
	}
}

func TestAppError_WithDetail(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
	err.WithDetail("key", "other")
	if err.Details["key"] != "other" {
		t.Errorf("expected key=other after overwrite, got %v", err.Details["key"])
	}
}

func TestAppError_WithCause(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := InvalidConfig("timeout must be positive").WithCause(cause)
	if err.Unwrap() != cause {
		t.Error("Unwrap should return the cause")
	}
}

func TestErrorCode_IsRetryableCode_Table(t *testing.T) {
	tests := []struct {
		code ErrorCode
		want bool
	}{
		{ErrCodeTimeout, true},
		{ErrCodeConnectionFailed, true},
		{ErrCodeInvalidInput, false},
		{ErrCodeInvalidConfig, false},
		{ErrCodeInternal, false},
	}
	for _, tc := range tests {
		if got := IsRetryableCode(tc.code); got != tc.want {
			t.Errorf("IsRetryableCode(%s) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestAppError_ToResponse(t *testing.T) {
	err := ConnectionFailed("https://example.com", nil)
	resp := err.ToResponse()
	if resp.Error.Code != ErrCodeConnectionFailed {
		t.Errorf("expected code CONNECTION_FAILED in response, got %s", resp.Error.Code)
	}
	if !resp.Error.Retryable {
		t.Error("expected retryable=true in response")
	}
	if resp.Error.Details["target"] != "https://example.com" {
		t.Error("expected target in response details")
	}
}

func TestAsAppError(t *testing.T) {
	appErr := Internal(nil)
	wrapped := fmt.Errorf("wrap: %w", appErr)

	got, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed for wrapped AppError")
	}
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if !IsAppError(wrapped) {
		t.Error("expected IsAppError to be true for wrapped AppError")
	}

	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to return false for plain error")
	}
}

func TestWrap(t *testing.T) {
	if Wrap(nil) != nil {
		t.Error("Wrap(nil) should return nil")
	}

	orig := Timeout("slow")
	if Wrap(fmt.Errorf("outer: %w", orig)) != orig {
		t.Error("Wrap should return the AppError from the chain")
	}

	plain := fmt.Errorf("something broke")
	got := Wrap(plain)
	if got.Code != ErrCodeInternal {
		t.Errorf("expected INTERNAL_ERROR, got %s", got.Code)
	}
	if got.Cause != plain {
		t.Error("expected cause to be the original error")
	}
}
