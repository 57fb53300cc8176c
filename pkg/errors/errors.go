package errors

import (
	"fmt"
	"net/http"
)

// Error codes carried in the "error" field of a StandardError body
const (
	CodeInvalidRequest  = "InvalidRequest"
	CodeValidationError = "ValidationError"
	CodeItemNotFound    = "ItemNotFound"
	CodeDuplicateName   = "DuplicateName"
	CodeInternalError   = "InternalError"
)

// StandardError represents a standardized error response
type StandardError struct {
	Code    string `json:"error"`   // Error code/type (e.g., "InvalidRequest", "ItemNotFound")
	Message string `json:"message"` // Human-readable error message
	Details string `json:"details"` // Additional details (field name, item id, etc.)
}

// Error implements the error interface
func (e *StandardError) Error() string {
	return e.Message
}

// HTTPStatus returns the appropriate HTTP status code for the error
func (e *StandardError) HTTPStatus() int {
	switch e.Code {
	case CodeInvalidRequest, CodeValidationError:
		return http.StatusBadRequest
	case CodeItemNotFound:
		return http.StatusNotFound
	case CodeDuplicateName:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// NewStandardError creates a new StandardError
func NewStandardError(errorCode, message, details string) *StandardError {
	return &StandardError{
		Code:    errorCode,
		Message: message,
		Details: details,
	}
}

func NewInvalidRequest(message, details string) *StandardError {
	return NewStandardError(CodeInvalidRequest, message, details)
}

func NewValidationError(message, field string) *StandardError {
	return NewStandardError(CodeValidationError, message, fmt.Sprintf("Field: %s", field))
}

func NewItemNotFound(id int64) *StandardError {
	return NewStandardError(CodeItemNotFound, fmt.Sprintf("Item not found with id %d", id), fmt.Sprintf("Item ID: %d", id))
}

func NewDuplicateName(name string) *StandardError {
	return NewStandardError(CodeDuplicateName, fmt.Sprintf("Item with name '%s' already exists!", name), fmt.Sprintf("Name: %s", name))
}

func NewInternalError(message string, err error) *StandardError {
	details := ""
	if err != nil {
		details = err.Error()
	}
	return NewStandardError(CodeInternalError, message, details)
}
