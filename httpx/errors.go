package httpx

import "net/http"

// ApiError is the single error type handlers raise. It carries the HTTP
// status code it should be reported with, so the wrapper in response.go can
// turn any returned ApiError into the uniform error envelope.
type ApiError struct {
	StatusCode int      `json:"statusCode"`
	Message    string   `json:"message"`
	Errors     []string `json:"errors"`
}

func (e *ApiError) Error() string {
	return e.Message
}

func NewApiError(statusCode int, message string, errs ...string) *ApiError {
	if errs == nil {
		errs = []string{}
	}
	return &ApiError{StatusCode: statusCode, Message: message, Errors: errs}
}

// ErrBadRequest covers missing or empty required input.
func ErrBadRequest(message string) *ApiError {
	return NewApiError(http.StatusBadRequest, message)
}

// ErrUnauthorized covers requests with no usable caller identity.
func ErrUnauthorized(message string) *ApiError {
	return NewApiError(http.StatusUnauthorized, message)
}

// ErrForbidden covers callers acting on resources they do not own.
func ErrForbidden(message string) *ApiError {
	return NewApiError(http.StatusForbidden, message)
}

func ErrNotFound(message string) *ApiError {
	return NewApiError(http.StatusNotFound, message)
}

func ErrInternal(message string) *ApiError {
	return NewApiError(http.StatusInternalServerError, message)
}
