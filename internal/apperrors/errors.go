package apperrors

import (
	"errors"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized indicates bad credentials or a bad, stale or reused token.
var ErrUnauthorized = errors.New("unauthorized")

// ErrDependency indicates that the store or the object storage could not serve the request.
var ErrDependency = errors.New("dependency failure")

// ErrInvalidToken is returned by token verification for any malformed, expired or badly signed token.
var ErrInvalidToken = errors.New("invalid token")

// ErrStaleWrite is returned by conditional writes whose precondition no longer holds.
var ErrStaleWrite = errors.New("stale write")

// AppError carries an error kind, a client-safe message and an optional cause.
type AppError struct {
	Kind    error
	Message string
	Cause   error
}

// New creates an AppError of the given kind.
func New(kind error, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap creates an AppError of the given kind around cause.
func Wrap(kind error, message string, cause error) *AppError {
	return &AppError{Kind: kind, Message: message, Cause: cause}
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes both the kind and the cause to errors.Is / errors.As.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// PublicMessage returns the message of the outermost AppError in err's chain,
// or fallback when there is none.
func PublicMessage(err error, fallback string) string {
	var appErr *AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
