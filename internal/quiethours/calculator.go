package quiethours

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"restock-srv/internal/model"
)

var clockPattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// parseClock turns "HH:MM" (hour may be one digit) into minutes since midnight.
func parseClock(s string) (int, error) {
	if !clockPattern.MatchString(s) {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	h, m, _ := strings.Cut(s, ":")
	hh, _ := strconv.Atoi(h)
	mm, _ := strconv.Atoi(m)
	return hh*60 + mm, nil
}

func inWindow(minute, start, end int) bool {
	if start <= end {
		return start <= minute && minute <= end
	}
	// overnight
	return minute >= start || minute <= end
}

func hasDay(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func (c *implCalculator) IsQuietNow(cfg model.QuietHoursConfig, now time.Time) Result {
	if !cfg.Enabled {
		return Result{Reason: ReasonDisabled}
	}

	loc, err := c.location(cfg.Timezone)
	if err != nil {
		return Result{Reason: ReasonInvalidTimezone}
	}
	start, errStart := parseClock(cfg.StartTime)
	end, errEnd := parseClock(cfg.EndTime)
	if errStart != nil || errEnd != nil {
		return Result{Reason: ReasonInvalidTime}
	}

	local := now.In(loc)
	if len(cfg.Days) > 0 && !hasDay(cfg.Days, int(local.Weekday())) {
		return Result{Reason: ReasonNotQuietDay}
	}

	if !inWindow(local.Hour()*60+local.Minute(), start, end) {
		return Result{Reason: ReasonOutsideWindow}
	}

	next := nextActiveAt(local, end, now)
	return Result{IsQuiet: true, Reason: ReasonInsideWindow, NextActiveAt: &next}
}

// nextActiveAt is the first local occurrence of end strictly after now.
// Within an overnight window's evening part today's end has already passed,
// so this lands on tomorrow.
func nextActiveAt(local time.Time, end int, now time.Time) time.Time {
	y, m, d := local.Date()
	candidate := time.Date(y, m, d, end/60, end%60, 0, 0, local.Location())
	if !candidate.After(now) {
		candidate = time.Date(y, m, d+1, end/60, end%60, 0, 0, local.Location())
	}
	return candidate
}

func (c *implCalculator) Validate(cfg model.QuietHoursConfig) ValidationResult {
	var errs []string

	if cfg.Enabled {
		start, errStart := parseClock(cfg.StartTime)
		if errStart != nil {
			errs = append(errs, "start_time: "+errStart.Error())
		}
		end, errEnd := parseClock(cfg.EndTime)
		if errEnd != nil {
			errs = append(errs, "end_time: "+errEnd.Error())
		}
		if errStart == nil && errEnd == nil && start == end {
			errs = append(errs, "start_time and end_time must differ")
		}

		if strings.TrimSpace(cfg.Timezone) == "" {
			errs = append(errs, "timezone: required when quiet hours are enabled")
		} else if _, err := c.location(cfg.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("timezone: unknown zone %q", cfg.Timezone))
		}
	}

	seen := make(map[int]bool, len(cfg.Days))
	for _, d := range cfg.Days {
		if d < 0 || d > 6 {
			errs = append(errs, fmt.Sprintf("days: %d is not a weekday (0-6)", d))
			continue
		}
		if seen[d] {
			errs = append(errs, fmt.Sprintf("days: duplicate day %d", d))
		}
		seen[d] = true
	}

	return ValidationResult{IsValid: len(errs) == 0, Errors: errs}
}
