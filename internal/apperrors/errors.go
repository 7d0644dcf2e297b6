package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInsufficientFunds indicates that a debit would take an account balance below zero.
var ErrInsufficientFunds = errors.New("insufficient funds")

// ErrInvalidStatus indicates that the resource is not in a state that allows the operation.
var ErrInvalidStatus = errors.New("invalid status for operation")

// ErrDuplicateDistribution indicates a surplus distribution already exists for the cooperative and fiscal year.
var ErrDuplicateDistribution = errors.New("surplus distribution already executed for fiscal year")

// ErrInternal indicates a storage or infrastructure failure.
var ErrInternal = errors.New("internal error")

// ErrUnauthorized indicates the caller could not be identified.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller is identified but not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// AppError carries an HTTP-style code alongside the underlying cause.
// errors.Is matches both the cause and the sentinel implied by Code.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause and the sentinel for the code.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	if sentinel := sentinelForCode(e.Code); sentinel != nil {
		errs = append(errs, sentinel)
	}
	return errs
}

func sentinelForCode(code int) error {
	switch code {
	case http.StatusBadRequest:
		return ErrValidation
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusConflict:
		return ErrDuplicate
	case http.StatusUnauthorized:
		return ErrUnauthorized
	case http.StatusForbidden:
		return ErrForbidden
	}
	if code >= http.StatusInternalServerError {
		return ErrInternal
	}
	return nil
}

// Internal wraps a storage failure as an ErrInternal AppError.
func Internal(message string, err error) error {
	return NewAppError(http.StatusInternalServerError, message, err)
}
