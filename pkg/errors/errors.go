package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a typed domain error with HTTP awareness.
type Error struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Status  int               `json:"status"`
	Fields  map[string]string `json:"fields,omitempty"`
	Err     error             `json:"-"`
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the wrapped error.
func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// New creates a new Error instance.
func New(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

// Wrap attaches context to an existing error.
func Wrap(err error, code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message, Err: err}
}

// Predefined errors for common scenarios.
var (
	ErrValidation         = New("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrSchemaMismatch     = New("SCHEMA_MISMATCH", http.StatusUnprocessableEntity, "document dimensions do not match the current configuration")
	ErrDecode             = New("DECODE_ERROR", http.StatusBadRequest, "malformed state fragment")
	ErrSessionNotFound    = New("SESSION_NOT_FOUND", http.StatusNotFound, "wizard session not found")
	ErrGridNotBuilt       = New("GRID_NOT_BUILT", http.StatusConflict, "grid has not been built yet")
	ErrPayloadIncomplete  = New("PAYLOAD_INCOMPLETE", http.StatusConflict, "complete steps 1 and 2 before generating")
	ErrGenerationRunning  = New("GENERATION_IN_PROGRESS", http.StatusConflict, "a generation is already in progress for this session")
	ErrPlanNotGenerated   = New("PLAN_NOT_GENERATED", http.StatusConflict, "generate a plan before requesting documents")
	ErrPlannerFailed      = New("PLANNER_FAILED", http.StatusBadGateway, "the planner service could not produce a plan")
	ErrPlannerUnreachable = New("PLANNER_UNREACHABLE", http.StatusBadGateway, "the planner service could not be reached")
	ErrSnapshotStore      = New("SNAPSHOT_STORE_ERROR", http.StatusServiceUnavailable, "snapshot store unavailable")
	ErrSnapshotMiss       = New("SNAPSHOT_MISS", http.StatusNotFound, "no saved snapshot for this session")
	ErrNotFound           = New("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrInternal           = New("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
)

// WithFields returns a copy of the error carrying field-scoped validation flags.
func WithFields(base *Error, fields map[string]string) *Error {
	if base == nil {
		return nil
	}
	clone := *base
	clone.Fields = fields
	return &clone
}

// FromError normalises any error into an *Error.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Wrap(err, ErrInternal.Code, ErrInternal.Status, ErrInternal.Message)
}

// Clone returns a copy of the error allowing for message overrides.
func Clone(err *Error, message string) *Error {
	if err == nil {
		return nil
	}
	clone := *err
	if message != "" {
		clone.Message = message
	}
	return &clone
}
