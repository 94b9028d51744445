package errors

import (
	"errors"
	"fmt"
)

// ErrorCode classifies an application error
type ErrorCode int

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrValidation
	ErrForbidden
	ErrDomain
	ErrUnauthorized
	ErrInternal
)

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Error constructors
func NewNotFound(resource string, err error) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		Err:     err,
	}
}

func NewValidation(message string, err error) *AppError {
	return &AppError{
		Code:    ErrValidation,
		Message: message,
		Err:     err,
	}
}

func NewForbidden(message string, err error) *AppError {
	return &AppError{
		Code:    ErrForbidden,
		Message: message,
		Err:     err,
	}
}

// NewDomain reports an invalid state transition, e.g. cancelling an
// appointment that is already cancelled.
func NewDomain(message string, err error) *AppError {
	return &AppError{
		Code:    ErrDomain,
		Message: message,
		Err:     err,
	}
}

func NewUnauthorized(err error) *AppError {
	return &AppError{
		Code:    ErrUnauthorized,
		Message: "unauthorized",
		Err:     err,
	}
}

func NewInternal(err error) *AppError {
	return &AppError{
		Code:    ErrInternal,
		Message: "internal server error",
		Err:     err,
	}
}

// CodeOf extracts the error code, ErrInternal when err is not an AppError.
func CodeOf(err error) ErrorCode {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ErrInternal
}

func IsNotFound(err error) bool   { return CodeOf(err) == ErrNotFound }
func IsValidation(err error) bool { return CodeOf(err) == ErrValidation }
func IsForbidden(err error) bool  { return CodeOf(err) == ErrForbidden }
func IsDomain(err error) bool     { return CodeOf(err) == ErrDomain }
