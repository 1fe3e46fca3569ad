package http

import (
	"net/http"

	"restock-srv/internal/alert"
	"restock-srv/pkg/errors"
	"restock-srv/pkg/response"
)

var (
	errWrongBody       = errors.NewHTTPError(110001, "Wrong body", http.StatusBadRequest)
	errInvalidEvent    = errors.NewHTTPError(110002, "Invalid availability event", http.StatusBadRequest)
	errUserNotFound    = errors.NewHTTPError(110003, "User not found", http.StatusNotFound)
	errLockUnavailable = errors.NewHTTPError(110004, "Event is already being processed, retry later", http.StatusConflict)
)

// Field-level validation codes.
const (
	codeFieldRequired = 110010
	codeFieldInvalid  = 110011
)

var errMap = response.ErrorMapping{
	alert.ErrInvalidInput:    errInvalidEvent,
	alert.ErrUserNotFound:    errUserNotFound,
	alert.ErrLockUnavailable: errLockUnavailable,
}
