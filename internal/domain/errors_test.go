package domain

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppError_WrapsSentinel(t *testing.T) {
	err := fmt.Errorf("register: %w", NewConflictError("Already registered for this province."))

	assert.ErrorIs(t, err, ErrAlreadyExists)

	var appErr *AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusConflict, appErr.Code)
	assert.Equal(t, "Already registered for this province.", appErr.Message)
}

func TestAppError_Constructors(t *testing.T) {
	cases := []struct {
		err      *AppError
		code     int
		sentinel error
	}{
		{NewNotFoundError("x"), http.StatusNotFound, ErrNotFound},
		{NewBadRequestError("x"), http.StatusBadRequest, ErrInvalidInput},
		{NewUnauthorizedError("x"), http.StatusUnauthorized, ErrUnauthorized},
		{NewForbiddenError("x"), http.StatusForbidden, ErrForbidden},
		{NewTooManyRequestsError("x"), http.StatusTooManyRequests, ErrTooManyAttempts},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.code, tc.err.Code)
		assert.ErrorIs(t, tc.err, tc.sentinel)
	}
}
