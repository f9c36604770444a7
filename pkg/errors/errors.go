package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// Tokens and auth.
	ErrInvalidSigningMethod = errors.New("invalid token signing method")
	ErrInvalidToken         = errors.New("invalid token")
	ErrTokenExpired         = errors.New("token has expired")
	ErrTokenIsNotRefresh    = errors.New("token is not a refresh token")
	ErrTokenIsNotAccess     = errors.New("token is not an access token")
	ErrEmptyAuthHeader      = errors.New("authorization header is missing")
	ErrInvalidAuthHeader    = errors.New("malformed authorization header")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrForbidden            = errors.New("forbidden")

	// Context.
	ErrUserIDNotFoundInContext = errors.New("user id not found in request context")

	// Domain.
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("record not found")
	ErrNotEligible       = errors.New("user is not an eligible assignee")
	ErrInvalidStatus     = errors.New("unknown status value")
	ErrProfileNotFound   = errors.New("user profile not found")
	ErrSequenceExhausted = errors.New("request number sequence exhausted for the year")
	ErrNumberConflict    = errors.New("request number allocation conflict")
	ErrStoreUnavailable  = errors.New("storage is unavailable")
	ErrAlreadyExists     = errors.New("record already exists")
)

// statusByError maps the error taxonomy to HTTP status codes. Wrapped errors
// are matched with errors.Is, so repositories and services may add context
// with fmt.Errorf("...: %w", err) without losing the mapping.
var statusByError = map[error]int{
	ErrValidation:              http.StatusBadRequest,
	ErrNotEligible:             http.StatusBadRequest,
	ErrInvalidStatus:           http.StatusBadRequest,
	ErrInvalidCredentials:      http.StatusBadRequest,
	ErrAlreadyExists:           http.StatusConflict,
	ErrNotFound:                http.StatusNotFound,
	ErrProfileNotFound:         http.StatusNotFound,
	ErrSequenceExhausted:       http.StatusConflict,
	ErrNumberConflict:          http.StatusConflict,
	ErrStoreUnavailable:        http.StatusServiceUnavailable,
	ErrUnauthorized:            http.StatusUnauthorized,
	ErrEmptyAuthHeader:         http.StatusUnauthorized,
	ErrInvalidAuthHeader:       http.StatusUnauthorized,
	ErrInvalidToken:            http.StatusUnauthorized,
	ErrTokenExpired:            http.StatusUnauthorized,
	ErrTokenIsNotAccess:        http.StatusUnauthorized,
	ErrTokenIsNotRefresh:       http.StatusUnauthorized,
	ErrUserIDNotFoundInContext: http.StatusUnauthorized,
	ErrForbidden:               http.StatusForbidden,
}

type HttpError struct {
	Code    int
	Message string
	Err     error
}

func (e *HttpError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *HttpError) Unwrap() error { return e.Err }

func NewHttpError(code int, message string, err error) *HttpError {
	return &HttpError{Code: code, Message: message, Err: err}
}

func NewValidationError(format string, args ...interface{}) error {
	return &HttpError{
		Code:    http.StatusBadRequest,
		Message: fmt.Sprintf(format, args...),
		Err:     ErrValidation,
	}
}

// HttpStatus resolves the HTTP status code for any error produced inside the
// application. Unrecognized errors map to 500.
func HttpStatus(err error) int {
	var httpErr *HttpError
	if errors.As(err, &httpErr) {
		return httpErr.Code
	}
	for sentinel, code := range statusByError {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return http.StatusInternalServerError
}
