package model

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ValidationError indicates malformed input. Fields maps input field names
// to their problem.
type ValidationError struct {
	Message string
	Fields  map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return e.Message + ": " + strings.Join(parts, "; ")
}

// NotFoundError indicates a missing resource, or one owned by someone else.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }

// UnauthorizedError indicates a missing, invalid or revoked token, bad
// credentials, or an inactive account.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string { return e.Message }

// ForbiddenError indicates an authenticated user lacking a required role.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

// ConflictError indicates a uniqueness or referential integrity violation.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string { return e.Message }

// InternalErrorMessage is the only detail callers see for unexpected failures.
const InternalErrorMessage = "Unexpected error, check server logs"

// InternalError hides an unexpected storage failure from the caller.
type InternalError struct {
	Err error
}

func (e *InternalError) Error() string { return InternalErrorMessage }

func (e *InternalError) Unwrap() error { return e.Err }

// ErrValidation creates a ValidationError with a formatted message.
func ErrValidation(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// ErrNotFound creates a NotFoundError with a formatted message.
func ErrNotFound(format string, args ...any) *NotFoundError {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

// ErrUnauthorized creates an UnauthorizedError with a formatted message.
func ErrUnauthorized(format string, args ...any) *UnauthorizedError {
	return &UnauthorizedError{Message: fmt.Sprintf(format, args...)}
}

// ErrForbidden creates a ForbiddenError with a formatted message.
func ErrForbidden(format string, args ...any) *ForbiddenError {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// ErrConflict creates a ConflictError with a formatted message.
func ErrConflict(format string, args ...any) *ConflictError {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

// fromValidation converts ozzo-validation output into a ValidationError.
func fromValidation(err error) error {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if errors.As(err, &errs) {
		fields := make(map[string]string, len(errs))
		for field, fieldErr := range errs {
			if fieldErr != nil {
				fields[field] = fieldErr.Error()
			}
		}
		return &ValidationError{Message: "invalid input", Fields: fields}
	}
	var internal validation.InternalError
	if errors.As(err, &internal) {
		return &InternalError{Err: err}
	}
	return &ValidationError{Message: err.Error()}
}
