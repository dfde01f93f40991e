package errors

import (
	"errors"
	"net/http"
)

var (
	// ErrInvalidCredentials is returned on login when the username is unknown
	// or the password does not match. The two cases share one error so a
	// caller cannot probe which usernames exist.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserConflict is returned when a username or email is already taken.
	ErrUserConflict = errors.New("username or email already exists")
	// ErrUserNotFound is returned when the referenced user id does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrValidation is returned when required request fields are missing or malformed.
	ErrValidation = errors.New("missing or invalid fields")
	// ErrUnauthenticated is returned when no bearer token accompanies the request.
	ErrUnauthenticated = errors.New("authentication token required")
	// ErrInvalidToken is returned when a token's signature or shape is wrong.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned when a token is past its embedded expiry.
	ErrExpiredToken = errors.New("token expired")
	// ErrForbidden is returned when the caller's role does not match the required role.
	ErrForbidden = errors.New("insufficient role")
	// ErrRateLimited is returned when the admission window for a key is exhausted.
	ErrRateLimited = errors.New("too many requests, please try again later")
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToErrorResponse converts an HTTPError to ErrorResponse.
func (e *HTTPError) ToErrorResponse() ErrorResponse {
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Everything outside the
// taxonomy collapses to a 500 with no internal detail surfaced.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrValidation):
		return NewHTTPError(http.StatusBadRequest, err.Error(), "VALIDATION_ERROR")
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrUnauthenticated):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHENTICATED")
	case errors.Is(err, ErrInvalidToken):
		return NewHTTPError(http.StatusForbidden, err.Error(), "INVALID_TOKEN")
	case errors.Is(err, ErrExpiredToken):
		return NewHTTPError(http.StatusForbidden, err.Error(), "EXPIRED_TOKEN")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrRateLimited):
		return NewHTTPError(http.StatusTooManyRequests, err.Error(), "RATE_LIMITED")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "NOT_FOUND")
	case errors.Is(err, ErrUserConflict):
		return NewHTTPError(http.StatusConflict, err.Error(), "CONFLICT")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
