package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_SetTypeAndCode(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		wantType ErrorType
		wantCode int
	}{
		{"validation", NewValidationError("bad"), ErrorTypeValidation, http.StatusBadRequest},
		{"not found", NewNotFoundError("missing"), ErrorTypeNotFound, http.StatusNotFound},
		{"invalid state", NewInvalidStateError("1 checklist is not completed"), ErrorTypeInvalidState, http.StatusUnprocessableEntity},
		{"conflict", NewConflictError("retry"), ErrorTypeConflict, http.StatusConflict},
		{"internal", NewInternalError("boom"), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantType, tt.err.Type)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestAppError_ErrorIncludesDetails(t *testing.T) {
	err := NewValidationError("invalid discount", "must be between 0 and 100")
	assert.Equal(t, "validation_error: invalid discount (must be between 0 and 100)", err.Error())
	assert.Equal(t, "not_found: visit not found", NewNotFoundError("visit not found").Error())
}

func TestTypeChecks_UnwrapWrappedErrors(t *testing.T) {
	wrapped := fmt.Errorf("complete visit: %w", NewInvalidStateError("blocked"))

	assert.True(t, IsAppError(wrapped))
	assert.True(t, IsInvalidStateError(wrapped))
	assert.False(t, IsConflictError(wrapped))
	assert.Nil(t, GetAppError(errors.New("plain")))
}

func TestIsDuplicateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"mysql", errors.New("Error 1062: Duplicate entry 'SA-00001-2026' for key 'idx_agreement_number'"), true},
		{"sqlite", errors.New("UNIQUE constraint failed: service_agreements.agreement_number"), true},
		{"postgres", errors.New("ERROR: duplicate key value violates unique constraint"), true},
		{"other", errors.New("connection refused"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDuplicateError(tt.err))
		})
	}
}
