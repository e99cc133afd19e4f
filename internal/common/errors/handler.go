// internal/common/errors/handler.go
package errors

import "time"

// Handler normalizes failures at the boundary of an interaction handler.
// Every failure is converted to a StandardError so the dispatch layer can
// always render a user-visible reply; nothing terminates an interaction
// silently.
type Handler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewHandler(logger Logger) *Handler {
	return &Handler{logger: logger}
}

// Normalize ensures we always have a StandardError.
func (h *Handler) Normalize(err error) *StandardError {
	stdErr := normalize(err)
	h.logger.Error("interaction error", map[string]interface{}{
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
	})
	return stdErr
}

func normalize(err error) *StandardError {
	if stdErr, ok := err.(*StandardError); ok {
		return stdErr
	}
	return &StandardError{
		Code:      "INTERNAL_ERROR",
		Message:   "Unexpected error",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}
