// Package apperr defines the classified errors the persistence core returns
// across its boundary. Callers branch on these types with errors.As; raw
// storage-engine errors never leave the core.
package apperr

import "fmt"

// Reasons carried by ValidationError.
const (
	ReasonBlank         = "blank"
	ReasonWrongType     = "wrong-type"
	ReasonNonPositive   = "non-positive"
	ReasonNegative      = "negative"
	ReasonInvalidFormat = "invalid-format"
	ReasonWriteOnly     = "write-only-field"
)

// ValidationError reports a single field failing a precondition before any
// row was staged. Always recoverable by correcting the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: field %q: %s", e.Field, e.Reason)
}

func Validation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

// DuplicateError reports a uniqueness constraint (username, email, category
// name) that would be violated. Raised only after a full rollback.
type DuplicateError struct {
	Constraint string
}

func (e *DuplicateError) Error() string {
	return fmt.Sprintf("duplicate: %s already exists", e.Constraint)
}

func Duplicate(constraint string) *DuplicateError {
	return &DuplicateError{Constraint: constraint}
}

// ConflictError reports a referential-integrity violation surfacing at commit
// time, e.g. a referenced product vanished mid-transaction. Raised only after
// a full rollback.
type ConflictError struct {
	Op string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("conflict: %s violates referential integrity", e.Op)
}

func Conflict(op string) *ConflictError {
	return &ConflictError{Op: op}
}

// NotFoundError reports a lookup by key that found no row.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found", e.Entity)
}

func NotFound(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}
