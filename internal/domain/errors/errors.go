package errors

import (
	"errors"
	"net/http"
)

// Domain errors
var (
	ErrNotFound          = errors.New("resource not found")
	ErrAlreadyExists     = errors.New("resource already exists")
	ErrValidation        = errors.New("validation failed")
	ErrInvalidInput      = errors.New("invalid input")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrForbidden         = errors.New("forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid      = errors.New("token invalid")
	ErrTokenExpired      = errors.New("token expired")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("conflicting update")
)

// AppError represents an application error with HTTP status and a machine code.
// Details carries structured payload such as missing field or document names.
type AppError struct {
	Status  int         `json:"-"`
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "application error"
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new app error
func NewAppError(status int, code, message string, err error) *AppError {
	return &AppError{
		Status:  status,
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Validation builds a 400 error naming the offending fields
func Validation(message string, missingFields []string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "VALIDATION_ERROR",
		Message: message,
		Details: map[string]interface{}{"missingFields": missingFields},
		Err:     ErrValidation,
	}
}

// NotFound builds a 404 error
func NotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, "NOT_FOUND", message, ErrNotFound)
}

// BadRequest builds a generic 400 error
func BadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "BAD_REQUEST", message, ErrInvalidInput)
}

// TokenInvalid builds a 400 error for malformed or unknown tokens
func TokenInvalid(message string) *AppError {
	return NewAppError(http.StatusBadRequest, "TOKEN_INVALID", message, ErrTokenInvalid)
}

// TokenExpired builds a 410 error for tokens past their expiry window
func TokenExpired(message string) *AppError {
	return NewAppError(http.StatusGone, "TOKEN_EXPIRED", message, ErrTokenExpired)
}

// InvalidTransition builds a 400 error for illegal state machine moves. The
// details payload enumerates the missing document types, if any.
func InvalidTransition(message string, missingDocuments []string) *AppError {
	return &AppError{
		Status:  http.StatusBadRequest,
		Code:    "INVALID_TRANSITION",
		Message: message,
		Details: map[string]interface{}{"missingDocuments": missingDocuments},
		Err:     ErrInvalidTransition,
	}
}

// Unauthorized builds a 401 error
func Unauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, "UNAUTHORIZED", message, ErrUnauthorized)
}

// Forbidden builds a 403 error
func Forbidden(message string) *AppError {
	return NewAppError(http.StatusForbidden, "FORBIDDEN", message, ErrForbidden)
}

// Conflict builds a 409 error for lost-update detection
func Conflict(message string) *AppError {
	return NewAppError(http.StatusConflict, "CONFLICT", message, ErrConflict)
}

// InternalError builds a 500 error
func InternalError(err error) *AppError {
	return NewAppError(http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error", err)
}
