package domain

import (
	"errors"
	"net/http"
)

// HTTPError defines errors that can be mapped to HTTP status codes.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// NotFoundError indicates a manuscript/volume/chapter id did not resolve
	NotFoundError struct {
		Message string
	}

	// ValidationError indicates an invalid request (e.g. a chapter with
	// neither a manuscript nor a volume parent)
	ValidationError struct {
		Message string
	}

	// UnauthorizedError indicates authentication failure
	UnauthorizedError struct {
		Message string
	}

	// ForbiddenError indicates the resolved owner is not the requesting user
	ForbiddenError struct {
		Message string
	}
)

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *UnauthorizedError) Error() string { return e.Message }
func (e *ForbiddenError) Error() string    { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *UnauthorizedError) StatusCode() int { return http.StatusUnauthorized }
func (e *ForbiddenError) StatusCode() int    { return http.StatusForbidden }

// Sentinel errors - use with errors.Is()
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("already exists")
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrAssistance   = errors.New("assistance failed")
)

// AssistanceError wraps a failure from the AI text-completion collaborator.
// The underlying provider error is kept for logging but never surfaced to the
// caller; users only see a generic retryable message.
type AssistanceError struct {
	Provider string
	Cause    error
}

func (e *AssistanceError) Error() string {
	return "assistance failed, please try again"
}

func (e *AssistanceError) StatusCode() int { return http.StatusBadGateway }

// Is allows errors.Is() to match against ErrAssistance
func (e *AssistanceError) Is(target error) bool {
	return target == ErrAssistance
}

// Unwrap exposes the provider error for logging call sites
func (e *AssistanceError) Unwrap() error { return e.Cause }

// ConflictError represents a resource conflict, e.g. a content save whose
// base_version no longer matches the stored version.
type ConflictError struct {
	Message      string
	ResourceType string
	ResourceID   string
}

func (e *ConflictError) Error() string { return e.Message }

func (e *ConflictError) StatusCode() int { return http.StatusConflict }

// Is allows errors.Is() to match against ErrConflict
func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}
