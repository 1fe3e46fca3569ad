package quiethours

import (
	"time"

	"restock-srv/internal/model"
)

// Calculator evaluates a user's quiet-hours window.
type Calculator interface {
	// IsQuietNow never fails: a malformed config yields IsQuiet=false with a reason.
	IsQuietNow(cfg model.QuietHoursConfig, now time.Time) Result
	Validate(cfg model.QuietHoursConfig) ValidationResult
}

type Result struct {
	IsQuiet      bool
	Reason       string
	NextActiveAt *time.Time
}

type ValidationResult struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

const (
	ReasonDisabled        = "quiet hours disabled"
	ReasonNotQuietDay     = "not a quiet day"
	ReasonOutsideWindow   = "outside quiet hours"
	ReasonInsideWindow    = "within quiet hours"
	ReasonInvalidTimezone = "invalid timezone, delivering anyway"
	ReasonInvalidTime     = "invalid quiet hours time, delivering anyway"
)
