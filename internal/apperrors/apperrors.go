// Package apperrors defines the error-kind taxonomy shared by every core
// component, grounded on the repository's habit of wrapping errors with
// fmt.Errorf("...: %w", err) rather than introducing a third-party error
// library.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind tags an AppError with its origin so callers (notably internal/httpapi)
// can pick a response without inspecting error strings.
type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindUnsupportedState   Kind = "unsupported_state"
	KindAIUnavailable      Kind = "ai_unavailable"
	KindAIParseFailure     Kind = "ai_parse_failure"
	KindRuleExecutionError Kind = "rule_execution_error"
	KindValidation         Kind = "validation"
	KindPersistence        Kind = "persistence"
	KindCancelled          Kind = "cancelled"
)

// AppError is a Kind-tagged error that wraps an underlying cause.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// New builds an AppError of the given kind with a plain message.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap builds an AppError of the given kind wrapping an existing error.
func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the Kind of err if it is (or wraps) an *AppError.
func KindOf(err error) (Kind, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Kind, true
	}
	return "", false
}

// Is reports whether err is (or wraps) an AppError of the given kind.
func Is(err error, kind Kind) bool {
	k, ok := KindOf(err)
	return ok && k == kind
}

// NotFound builds a KindNotFound error for the named resource.
func NotFound(resource, id string) *AppError {
	return New(KindNotFound, fmt.Sprintf("%s %q not found", resource, id))
}
