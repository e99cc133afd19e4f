// internal/common/errors/errors.go
// Package errors provides the standardized error taxonomy for the lookup bot.
package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Backend call outcomes
	ErrCodeBackendNotFound    ErrorCode = "BACKEND_NOT_FOUND"
	ErrCodeBackendUnavailable ErrorCode = "BACKEND_UNAVAILABLE"
	ErrCodeBackendTimeout     ErrorCode = "BACKEND_TIMEOUT"

	// Directory ingest
	ErrCodeRowDecodeFailed      ErrorCode = "ROW_DECODE_FAILED"
	ErrCodeDirectoryLoadFailed  ErrorCode = "DIRECTORY_LOAD_FAILED"
	ErrCodeDirectoryEmptySource ErrorCode = "DIRECTORY_EMPTY_SOURCE"

	// Interaction decoding
	ErrCodeNoSelection   ErrorCode = "NO_SELECTION"
	ErrCodeUnknownClient ErrorCode = "UNKNOWN_CLIENT"

	// Document delivery
	ErrCodeDocumentNotFound ErrorCode = "DOCUMENT_NOT_FOUND"
	ErrCodeDocumentFailed   ErrorCode = "DOCUMENT_FETCH_FAILED"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// CodeOf extracts the ErrorCode from an error chain, or "" when none is present.
func CodeOf(err error) ErrorCode {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr.Code
	}
	return ""
}

// ==========================
// Error Constructors
// ==========================

// NewBackendNotFoundError marks a 404 from a capability backend. Non-fatal:
// rendered as "no data" rather than a failure.
func NewBackendNotFoundError(capability, id string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendNotFound,
		Message:   fmt.Sprintf("No %s data found", capability),
		Details:   fmt.Sprintf("capability: %s, id: %s", capability, id),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendUnavailableError marks a non-200/404 status or connection failure.
func NewBackendUnavailableError(capability string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendUnavailable,
		Message:   fmt.Sprintf("Backend '%s' unavailable", capability),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewBackendTimeoutError marks a capability call that exceeded its deadline.
func NewBackendTimeoutError(capability string) *StandardError {
	return &StandardError{
		Code:      ErrCodeBackendTimeout,
		Message:   fmt.Sprintf("Backend '%s' timed out", capability),
		Details:   "call exceeded timeout threshold",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewRowDecodeFailedError marks a malformed directory row. The row is skipped;
// the batch continues.
func NewRowDecodeFailedError(line int, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeRowDecodeFailed,
		Message:   "Directory row could not be decoded",
		Details:   fmt.Sprintf("line: %d, error: %s", line, err.Error()),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDirectoryLoadFailedError marks a whole-batch load failure. The prior
// directory snapshot stays in place.
func NewDirectoryLoadFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDirectoryLoadFailed,
		Message:   "Directory load failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewNoSelectionError marks a form submission carrying no recognized field.
func NewNoSelectionError() *StandardError {
	return &StandardError{
		Code:      ErrCodeNoSelection,
		Message:   "No selection detected",
		Details:   "form values contained no recognized namespace prefix",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewUnknownClientError marks a decoded id absent from the current directory.
func NewUnknownClientError(clientID string) *StandardError {
	return &StandardError{
		Code:      ErrCodeUnknownClient,
		Message:   "Client not found",
		Details:   fmt.Sprintf("clientId: %s", clientID),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentNotFoundError marks a 404 from the document backend.
func NewDocumentNotFoundError(tradeNumber string) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentNotFound,
		Message:   "Contract document not found",
		Details:   fmt.Sprintf("tradeNumber: %s", tradeNumber),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDocumentFailedError marks any other document fetch failure.
func NewDocumentFailedError(tradeNumber string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDocumentFailed,
		Message:   fmt.Sprintf("Could not fetch document for trade %s", tradeNumber),
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
