package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/student-records-api/pkg/validation"
)

func TestErrorMessageAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, ErrInternal.Code, ErrInternal.Status, "failed to list students")

	assert.Equal(t, "failed to list students: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "Student not found", ErrNotFound.Error())

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
	assert.Nil(t, nilErr.Unwrap())
}

func TestErrorIsMatchesByCode(t *testing.T) {
	clone := Clone(ErrNotFound, "gone")
	assert.ErrorIs(t, clone, ErrNotFound)
	assert.Equal(t, "gone", clone.Message)
	assert.Equal(t, "Student not found", ErrNotFound.Message)

	wrapped := fmt.Errorf("update: %w", ErrConflict)
	assert.ErrorIs(t, wrapped, ErrConflict)
	assert.False(t, errors.Is(ErrConflict, ErrNotFound))
	assert.Nil(t, Clone(nil, "x"))
}

func TestValidationCarriesFields(t *testing.T) {
	fields := []validation.FieldError{{Field: "gpa", Message: "GPA must be between 0.0 and 4.0"}}
	err := Validation(fields)

	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed", err.Message)
	assert.Equal(t, fields, err.Fields)
	assert.Empty(t, ErrValidation.Fields)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	typed := FromError(fmt.Errorf("wrapped: %w", ErrInvalidID))
	require.NotNil(t, typed)
	assert.Equal(t, http.StatusBadRequest, typed.Status)
	assert.Equal(t, "Invalid student ID", typed.Message)

	plain := FromError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
	assert.Equal(t, "boom", plain.Message)
}
