package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// HTTPError is implemented by errors that map onto an HTTP status.
type HTTPError interface {
	error
	StatusCode() int
	Code() string
}

// Sentinels for errors.Is checks across packages.
var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("already exists")
	ErrTooLarge   = errors.New("payload too large")
)

type (
	NotFoundError struct {
		Message string
	}

	ValidationError struct {
		Message string
	}

	ConflictError struct {
		Message string
	}

	FileTooLargeError struct {
		Message string
	}
)

func NotFound(format string, args ...any) error {
	return &NotFoundError{Message: fmt.Sprintf(format, args...)}
}

func Invalid(format string, args ...any) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) error {
	return &ConflictError{Message: fmt.Sprintf(format, args...)}
}

func (e *NotFoundError) Error() string     { return e.Message }
func (e *ValidationError) Error() string   { return e.Message }
func (e *ConflictError) Error() string     { return e.Message }
func (e *FileTooLargeError) Error() string { return e.Message }

func (e *NotFoundError) StatusCode() int     { return http.StatusNotFound }
func (e *ValidationError) StatusCode() int   { return http.StatusBadRequest }
func (e *ConflictError) StatusCode() int     { return http.StatusConflict }
func (e *FileTooLargeError) StatusCode() int { return http.StatusRequestEntityTooLarge }

func (e *NotFoundError) Code() string     { return "NOT_FOUND" }
func (e *ValidationError) Code() string   { return "VALIDATION_ERROR" }
func (e *ConflictError) Code() string     { return "CONFLICT" }
func (e *FileTooLargeError) Code() string { return "FILE_TOO_LARGE" }

func (e *NotFoundError) Is(target error) bool     { return target == ErrNotFound }
func (e *ValidationError) Is(target error) bool   { return target == ErrValidation }
func (e *ConflictError) Is(target error) bool     { return target == ErrConflict }
func (e *FileTooLargeError) Is(target error) bool { return target == ErrTooLarge }
