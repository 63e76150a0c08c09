// Package timefmt renders durations and timestamps for display and buckets
// timestamps into calendar days.
package timefmt

import (
	"fmt"
	"strings"
	"time"
)

// DayKeyLayout is the layout of a day-key (local calendar date).
const DayKeyLayout = "2006-01-02"

// Clock formats d as HH:MM:SS, floored to whole seconds. Hours are not
// capped, so 30 hours renders as "30:00:00". Negative durations render as zero.
func Clock(d time.Duration) string {
	h, m, s := split(d)
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// WallClock formats the local wall-clock time of t as HH:MM.
func WallClock(t time.Time) string {
	return t.Local().Format("15:04")
}

// Compact formats d as "1h 2m 3s". The hour part is dropped when zero, the
// minute part when both it and the hours are zero. Seconds are always shown.
func Compact(d time.Duration) string {
	h, m, s := split(d)
	parts := make([]string, 0, 3)
	if h > 0 {
		parts = append(parts, fmt.Sprintf("%dh", h))
	}
	if m > 0 || h > 0 {
		parts = append(parts, fmt.Sprintf("%dm", m))
	}
	parts = append(parts, fmt.Sprintf("%ds", s))
	return strings.Join(parts, " ")
}

// Minutes formats a minute count as "1h 30m" or "45m".
func Minutes(total int) string {
	if total < 0 {
		total = 0
	}
	if h := total / 60; h > 0 {
		return fmt.Sprintf("%dh %dm", h, total%60)
	}
	return fmt.Sprintf("%dm", total)
}

// HoursMinutes formats a goal target as HH:MM.
func HoursMinutes(hours, minutes int) string {
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}

func split(d time.Duration) (h, m, s int64) {
	secs := int64(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return secs / 3600, (secs % 3600) / 60, secs % 60
}

// DayKey returns the local calendar date of t as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Local().Format(DayKeyLayout)
}

// ParseDayKey parses a day-key into local midnight of that day.
func ParseDayKey(key string) (time.Time, error) {
	t, err := time.ParseInLocation(DayKeyLayout, key, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse day key %q: %w", key, err)
	}
	return t, nil
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns 00:00:00 local time of t's day.
func StartOfDay(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
}

// FromMillis converts milliseconds since the epoch to a local time.
func FromMillis(ms int64) time.Time {
	return time.UnixMilli(ms).Local()
}
