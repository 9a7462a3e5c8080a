package apperror

import "net/http"

// AppError is the single error type handlers surface to clients. Each error
// kind maps to exactly one HTTP status code, applied uniformly by the error
// middleware.
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Details carries field-level validation messages, when present.
	Details interface{} `json:"details,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// BadRequest covers validation failures: missing or malformed required fields.
func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

// Validation is a BadRequest carrying per-field messages.
func Validation(messages []string) *AppError {
	e := New(http.StatusBadRequest, "Validation failed", nil)
	e.Details = messages
	return e
}

// Unauthorized covers missing, invalid, or expired credentials.
func Unauthorized(message string) *AppError {
	return New(http.StatusUnauthorized, message, nil)
}

// NotFound covers references to absent users or profiles.
func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Conflict covers unique-constraint and concurrent-update collisions.
func Conflict(message string) *AppError {
	return New(http.StatusConflict, message, nil)
}

// Upstream covers non-success responses from external services. Surfaced as
// 404, matching the repository-lookup contract.
func Upstream(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

// Internal covers unexpected store or runtime failures. The wrapped error is
// logged server-side only.
func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
