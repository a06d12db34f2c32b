// Package shared contains common domain types and errors that are used
// across all domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	ErrNotFound = errors.New("not found")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrEmptyValue      = errors.New("value cannot be empty")
	ErrNegativeValue   = errors.New("value cannot be negative")
	ErrValueOutOfRange = errors.New("value out of range")
	ErrInvalidFormat   = errors.New("invalid format")

	// Dependency errors
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrTimeout            = errors.New("operation timeout")
)

// DomainError represents a domain-specific error with context.
type DomainError struct {
	Domain  string // e.g., "routine", "result", "reference"
	Op      string // Operation that failed, e.g., "Load", "Validate"
	Kind    error  // Base error type for errors.Is() checking
	Message string // Human-readable message
	Err     error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
	}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{
		Domain:  domain,
		Op:      op,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

// Routine domain errors
var (
	ErrInvalidLayout    = NewDomainError("routine", "Validate", ErrInvalidInput, "invalid week layout")
	ErrNoDays           = NewDomainError("routine", "Validate", ErrEmptyValue, "layout has no days")
	ErrBreakOutOfRange  = NewDomainError("routine", "Validate", ErrValueOutOfRange, "break position outside period range")
	ErrEmptyTimetable   = NewDomainError("routine", "Analyze", ErrEmptyValue, "timetable has no classes")
	ErrDuplicateDayName = NewDomainError("routine", "Validate", ErrInvalidInput, "duplicate day name in layout")
	ErrDuplicateSlotKey = NewDomainError("routine", "Parse", ErrInvalidInput, "two timetable entries name the same class or day")
)

// Reference data errors
var (
	ErrReferenceNotFound = NewDomainError("reference", "Load", ErrNotFound, "reference data file not found")
	ErrReferenceFormat   = NewDomainError("reference", "Parse", ErrInvalidFormat, "reference data is malformed")
	ErrEmptyTeacherName  = NewDomainError("reference", "Validate", ErrEmptyValue, "teacher name cannot be empty")
	ErrAliasCycle        = NewDomainError("reference", "Validate", ErrInvalidInput, "subject alias points to another alias")
)

// Result domain errors
var (
	ErrNoStudents       = NewDomainError("result", "Process", ErrEmptyValue, "no students supplied")
	ErrNegativeMarks    = NewDomainError("result", "Validate", ErrNegativeValue, "marks cannot be negative")
	ErrDuplicateStudent = NewDomainError("result", "Validate", ErrInvalidInput, "duplicate student ID")
	ErrDuplicateSubject = NewDomainError("result", "Validate", ErrInvalidInput, "duplicate subject")
)

// Cache errors
var (
	ErrCacheUnavailable = NewDomainError("cache", "Connect", ErrServiceUnavailable, "report cache is unavailable")
)

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrInvalidInput) ||
		errors.Is(err, ErrEmptyValue) ||
		errors.Is(err, ErrNegativeValue) ||
		errors.Is(err, ErrValueOutOfRange) ||
		errors.Is(err, ErrInvalidFormat)
}
