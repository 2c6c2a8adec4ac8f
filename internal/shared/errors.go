package shared

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a missing or malformed field.
	ErrValidation = errors.New("validation failed")
	// ErrReferentialIntegrity indicates a foreign key pointing at a missing row.
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	// ErrNotFound indicates resource not found.
	ErrNotFound = errors.New("not found")
	// ErrConflict indicates the write clashes with existing rows.
	ErrConflict = errors.New("conflict")
)

// ValidationError describes the offending field of a rejected entity.
type ValidationError struct {
	Entity string
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s.%s %s", e.Entity, e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError is a shorthand constructor.
func NewValidationError(entity, field, reason string) error {
	return &ValidationError{Entity: entity, Field: field, Reason: reason}
}

// ReferentialIntegrityError reports a reference to a row that does not exist.
type ReferentialIntegrityError struct {
	Entity    string
	Field     string
	RefEntity string
	RefID     int64
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("%s.%s references missing %s %d", e.Entity, e.Field, e.RefEntity, e.RefID)
}

func (e *ReferentialIntegrityError) Unwrap() error { return ErrReferentialIntegrity }

// NotFoundError reports a lookup miss by id.
type NotFoundError struct {
	Entity string
	ID     int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConflictError reports a write rejected because of existing rows, such as
// dependents blocking a delete or a duplicate unique key.
type ConflictError struct {
	Entity string
	ID     int64
	Reason string
}

func (e *ConflictError) Error() string {
	if e.ID == 0 {
		return fmt.Sprintf("%s conflict: %s", e.Entity, e.Reason)
	}
	return fmt.Sprintf("%s %d conflict: %s", e.Entity, e.ID, e.Reason)
}

func (e *ConflictError) Unwrap() error { return ErrConflict }
