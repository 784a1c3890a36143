package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/taskboard/internal/domain"
	"github.com/phrazzld/taskboard/internal/service/auth"
	"github.com/phrazzld/taskboard/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{auth.ErrInvalidToken, http.StatusUnauthorized},
		{auth.ErrExpiredToken, http.StatusUnauthorized},
		{domain.ErrUnauthorized, http.StatusUnauthorized},
		{store.ErrBoardNotFound, http.StatusNotFound},
		{fmt.Errorf("wrapped: %w", store.ErrTaskNotFound), http.StatusNotFound},
		{store.ErrUsernameExists, http.StatusConflict},
		{store.ErrInvalidEntity, http.StatusBadRequest},
		{domain.ErrEmptyContent, http.StatusBadRequest},
		{fmt.Errorf("%w: id", domain.ErrInvalidID), http.StatusBadRequest},
		{errors.New("pq: deadlock detected"), http.StatusInternalServerError},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err), "error: %v", tc.err)
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Board not found", GetSafeErrorMessage(store.ErrBoardNotFound))
	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Username already exists", GetSafeErrorMessage(store.ErrUsernameExists))
	assert.Equal(t, "Token expired", GetSafeErrorMessage(auth.ErrExpiredToken))
	assert.Equal(t, "Invalid column", GetSafeErrorMessage(domain.ErrInvalidColumn))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))
	assert.Equal(t, "An unexpected error occurred",
		GetSafeErrorMessage(errors.New("SELECT * FROM users failed at /srv/app/db.go:12")))
}

func TestSanitizeValidationError(t *testing.T) {
	t.Parallel()

	err := errors.New("Key: 'LoginRequest.Username' Error:Field validation for 'Username' failed on the 'required' tag")
	assert.Equal(t, "Invalid Username: required field", SanitizeValidationError(err))
	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("something else")))
}
