package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", ErrPasswordTooShort, http.StatusBadRequest},
		{"conflict", ErrUsernameTaken, http.StatusBadRequest},
		{"credentials", ErrInvalidCredentials, http.StatusBadRequest},
		{"not found", ErrUserNotFound, http.StatusNotFound},
		{"auth missing", ErrAuthMissing, http.StatusUnauthorized},
		{"auth invalid", ErrAuthInvalid, http.StatusForbidden},
		{"unavailable", ErrExportUnavailable, http.StatusServiceUnavailable},
		{"internal", Internal(errors.New("db down")), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
		{"wrapped", fmt.Errorf("signup: %w", ErrUsernameTaken), http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, HTTPStatus(tc.err))
		})
	}
}

func TestPublicMessage_HidesInternalCause(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"))
	assert.Equal(t, "Server error", PublicMessage(err))
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, "Server error", PublicMessage(errors.New("raw")))
	assert.Equal(t, "Username already taken", PublicMessage(ErrUsernameTaken))
}

func TestIs_MatchesSentinelThroughWrap(t *testing.T) {
	err := fmt.Errorf("login: %w", ErrInvalidCredentials)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.NotErrorIs(t, err, ErrUserNotFound)

	cause := errors.New("cause")
	wrapped := Wrap(KindConflict, "Username already taken", cause)
	assert.ErrorIs(t, wrapped, ErrUsernameTaken)
	assert.ErrorIs(t, wrapped, cause)
}
