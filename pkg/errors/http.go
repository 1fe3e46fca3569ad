package errors

import "net/http"

// HTTPError is a domain error already mapped to an HTTP status and error code.
type HTTPError struct {
	Code       int
	Message    string
	StatusCode int
}

// NewHTTPError returns an HTTPError. A zero statusCode defaults to 400.
func NewHTTPError(code int, message string, statusCode int) *HTTPError {
	if statusCode == 0 {
		statusCode = http.StatusBadRequest
	}
	return &HTTPError{Code: code, Message: message, StatusCode: statusCode}
}

func NewUnauthorizedHTTPError() *HTTPError {
	return &HTTPError{Code: 401, Message: "Unauthorized", StatusCode: http.StatusUnauthorized}
}

func (e *HTTPError) Error() string {
	return e.Message
}
