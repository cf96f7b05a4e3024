package errors

import (
	"errors"
	"fmt"
)

var (
	// JWT and tokens
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenNotYetValid     = errors.New("token is not valid yet")
	ErrTokenIsNotRefresh    = errors.New("token is not a refresh token")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")

	// Authentication
	ErrEmptyAuthHeader    = errors.New("authorization header is missing")
	ErrInvalidAuthHeader  = errors.New("authorization header has invalid format")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserInactive       = errors.New("user account is deactivated")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
	ErrUnauthorized       = errors.New("unauthorized")

	// Authorization
	ErrForbidden = errors.New("you are not allowed to perform this action")

	// Context
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")
	ErrActorNotFoundInContext  = errors.New("actor not found in request context")

	// Workflow
	ErrInvalidState = errors.New("action is not applicable to the current request state")
	ErrCorruptState = errors.New("request has an inconsistent status/level pair")

	// General
	ErrNotFound       = errors.New("record not found")
	ErrUserNotFound   = errors.New("user not found")
	ErrConflict       = errors.New("record already exists")
	ErrEmailTaken     = errors.New("email is already in use")
	ErrBadRequest     = errors.New("bad request")
	ErrInternalServer = errors.New("internal server error")
)

// InvalidInputError is a validation failure caused by the caller's payload.
type InvalidInputError struct {
	Field   string
	Message string
}

func (e *InvalidInputError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewInvalidInputError(format string, args ...interface{}) error {
	return &InvalidInputError{Message: fmt.Sprintf(format, args...)}
}

func NewFieldError(field, message string) error {
	return &InvalidInputError{Field: field, Message: message}
}

func IsInvalidInput(err error) bool {
	var target *InvalidInputError
	return errors.As(err, &target)
}

// HttpError carries an explicit status code to the response layer.
type HttpError struct {
	Code    int
	Message string
	Err     error
	Details map[string]interface{}
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error, details map[string]interface{}) *HttpError {
	return &HttpError{
		Code:    code,
		Message: message,
		Err:     err,
		Details: details,
	}
}
