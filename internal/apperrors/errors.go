// Package apperrors defines the error kinds the API reports to clients.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation         Kind = "VALIDATION"
	KindConflict           Kind = "CONFLICT"
	KindInvalidCredentials Kind = "INVALID_CREDENTIALS"
	KindNotFound           Kind = "NOT_FOUND"
	KindAuthMissing        Kind = "AUTH_MISSING"
	KindAuthInvalid        Kind = "AUTH_INVALID"
	KindUnavailable        Kind = "UNAVAILABLE"
	KindInternal           Kind = "INTERNAL"
)

type AppError struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Cause }

// Is matches on kind and message so wrapped copies of a sentinel still match.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

func New(kind Kind, message string) error {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, cause error) error {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func Validation(msg string) error { return New(KindValidation, msg) }
func Conflict(msg string) error   { return New(KindConflict, msg) }
func NotFound(msg string) error   { return New(KindNotFound, msg) }

func Internal(cause error) error {
	return Wrap(KindInternal, "Server error", cause)
}

var (
	ErrCredentialsRequired = Validation("Username and password required")
	ErrUsernameTooShort    = Validation("Username must be at least 3 characters")
	ErrUsernameTooLong     = Validation("Username must be at most 50 characters")
	ErrPasswordTooShort    = Validation("Password must be at least 6 characters")
	ErrEmailTooLong        = Validation("Email must be at most 100 characters")
	ErrNoUpdates           = Validation("No updates provided")
	ErrMessageRequired     = Validation("Username and message required")
	ErrUsernameRequired    = Validation("Username required")
	ErrInvalidInput        = Validation("Invalid input")

	ErrUsernameTaken = Conflict("Username already taken")
	ErrEmailTaken    = Conflict("Email already taken")

	// Same error for unknown user and wrong password.
	ErrInvalidCredentials = New(KindInvalidCredentials, "Invalid credentials")

	ErrUserNotFound = NotFound("User not found")

	ErrAuthMissing = New(KindAuthMissing, "Unauthorized")
	ErrAuthInvalid = New(KindAuthInvalid, "Forbidden")

	ErrExportUnavailable = New(KindUnavailable, "Export storage not configured")
)

// KindOf returns the kind of err, or KindInternal when err carries none.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error onto the status code the API answers with.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation, KindConflict, KindInvalidCredentials:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthMissing:
		return http.StatusUnauthorized
	case KindAuthInvalid:
		return http.StatusForbidden
	case KindUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage is the text safe to put in an {error: ...} body.
func PublicMessage(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Kind != KindInternal {
		return appErr.Message
	}
	return "Server error"
}
