package auth

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountLocked      = errors.New("account locked")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrUserNotFound       = errors.New("user not found")
)

// statusFor maps login failures to HTTP status and error code.
func statusFor(err error) (int, string, string) {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect"
	case errors.Is(err, ErrAccountLocked):
		return http.StatusForbidden, "ACCOUNT_LOCKED", "Account is temporarily locked"
	case errors.Is(err, ErrAccountDisabled):
		return http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled"
	case errors.Is(err, ErrUserNotFound):
		return http.StatusNotFound, "NOT_FOUND", "User not found"
	default:
		return http.StatusInternalServerError, "LOGIN_FAILED", "Failed to login"
	}
}
