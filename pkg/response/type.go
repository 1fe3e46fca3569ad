package response

import (
	"encoding/json"
	"time"

	"restock-srv/pkg/errors"
)

const (
	MessageSuccess          = "Success"
	DefaultErrorMessage     = "Something went wrong"
	ValidationErrorCode     = 400
	ValidationErrorMsg      = "Validation error"
	InternalServerErrorCode = 500

	stackTraceDepth   = 32
	reportChunkMaxLen = 4000
	DateTimeFormat    = "2006-01-02 15:04:05"
)

// Resp is the JSON envelope of every API reply.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// ErrorMapping maps domain sentinel errors to HTTP errors.
type ErrorMapping map[error]*errors.HTTPError

// DateTime renders as "2006-01-02 15:04:05" in UTC.
type DateTime time.Time

func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).UTC().Format(DateTimeFormat))
}
