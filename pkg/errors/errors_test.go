package errors

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStandardError_HTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      *StandardError
		expected int
	}{
		{"invalid request", NewInvalidRequest("bad body", "json"), http.StatusBadRequest},
		{"validation", NewValidationError("quantity must be greater than or equal to 0", "quantity"), http.StatusBadRequest},
		{"not found", NewItemNotFound(9), http.StatusNotFound},
		{"duplicate name", NewDuplicateName("Widget"), http.StatusConflict},
		{"store failure", NewInternalError("Failed to save item", errors.New("disk full")), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown code", NewStandardError("Whatever", "x", ""), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.HTTPStatus())
		})
	}
}

func TestStandardError_Messages(t *testing.T) {
	assert.Equal(t, "Item not found with id 9", NewItemNotFound(9).Error())
	assert.Equal(t, "Item with name 'Widget' already exists!", NewDuplicateName("Widget").Error())
	assert.Equal(t, "Field: quantity", NewValidationError("m", "quantity").Details)
	assert.Empty(t, NewInternalError("boom", nil).Details)
	assert.Equal(t, "disk full", NewInternalError("boom", errors.New("disk full")).Details)
}
