package domain

import (
	"errors"
	"fmt"
)

// Sentinels used with errors.Is across layers
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrDuplicateName = errors.New("duplicate item name")
	ErrValidation    = errors.New("validation failed")
)

// ValidationError is a malformed or missing field, rejected before business logic
type ValidationError struct {
	Field   string
	Message string
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	return e.Message
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NotFoundError means the id has no live record
type NotFoundError struct {
	ID int64
}

func NewNotFoundError(id int64) *NotFoundError {
	return &NotFoundError{ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Item not found with id %d", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrItemNotFound
}

// DuplicateNameError is a name uniqueness violation seen by the service
type DuplicateNameError struct {
	Name string
}

func NewDuplicateNameError(name string) *DuplicateNameError {
	return &DuplicateNameError{Name: name}
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("Item with name '%s' already exists!", e.Name)
}

func (e *DuplicateNameError) Unwrap() error {
	return ErrDuplicateName
}

// ConstraintViolation is raised by a store when a write would break one of its
// constraints. Err identifies which one (ErrDuplicateName for the name index).
type ConstraintViolation struct {
	Constraint string
	Err        error
}

func (e *ConstraintViolation) Error() string {
	return fmt.Sprintf("constraint violation on %s: %v", e.Constraint, e.Err)
}

func (e *ConstraintViolation) Unwrap() error {
	return e.Err
}

// NewNameConstraintViolation reports a second live item with the same name
func NewNameConstraintViolation(name string) *ConstraintViolation {
	return &ConstraintViolation{
		Constraint: "items.name",
		Err:        fmt.Errorf("%w: %q", ErrDuplicateName, name),
	}
}
