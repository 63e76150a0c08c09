// Package validate checks user input before it reaches the interval and goal
// stores, which trust their arguments.
package validate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Rejection reasons surfaced to the user. Callers translate them with i18n.
var (
	ErrStartAfterEnd = errors.New("start time must precede end time")
	ErrStartInFuture = errors.New("start time cannot be in the future")
	ErrBadClock      = errors.New("time must be in HH:MM format")
	ErrGoalEmpty     = errors.New("goal must be greater than zero")
	ErrGoalNegative  = errors.New("goal cannot be negative")
	ErrMinutesRange  = errors.New("minutes must be between 0 and 59")
	ErrNotANumber    = errors.New("value must be a whole number")
)

// ParseClock parses an "HH:MM" string and places it on day's calendar date in
// the local time zone. Seconds are zero.
func ParseClock(s string, day time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	hh, mm, ok := strings.Cut(s, ":")
	if !ok {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return time.Time{}, fmt.Errorf("%w: %q", ErrBadClock, s)
	}
	day = day.Local()
	return time.Date(day.Year(), day.Month(), day.Day(), h, m, 0, 0, time.Local), nil
}

// ParseOptionalClock is ParseClock for an optional end time: blank input
// yields nil.
func ParseOptionalClock(s string, day time.Time) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := ParseClock(s, day)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// Interval validates a manual or edited interval. end, when present, must be
// strictly after start. With checkFuture set, start may not be after now.
func Interval(start time.Time, end *time.Time, now time.Time, checkFuture bool) error {
	if end != nil && !end.After(start) {
		return ErrStartAfterEnd
	}
	if checkFuture && start.After(now) {
		return ErrStartInFuture
	}
	return nil
}

// Goal validates a daily goal target.
func Goal(hours, minutes int) error {
	if hours < 0 || minutes < 0 {
		return ErrGoalNegative
	}
	if minutes > 59 {
		return ErrMinutesRange
	}
	if hours == 0 && minutes == 0 {
		return ErrGoalEmpty
	}
	return nil
}

// ParseGoal parses form input for a goal. Blank fields count as zero.
func ParseGoal(hours, minutes string) (int, int, error) {
	h, err := atoiBlank(hours)
	if err != nil {
		return 0, 0, err
	}
	m, err := atoiBlank(minutes)
	if err != nil {
		return 0, 0, err
	}
	if err := Goal(h, m); err != nil {
		return 0, 0, err
	}
	return h, m, nil
}

func atoiBlank(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrNotANumber, s)
	}
	return n, nil
}
