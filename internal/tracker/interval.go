package tracker

import (
	"sort"
	"time"

	"github.com/sadopc/daytally/internal/timefmt"
)

// Interval is one contiguous tracking session. Timestamps are milliseconds
// since the epoch; a nil End means the interval is still running.
type Interval struct {
	ID    string `json:"id"`
	Start int64  `json:"start"`
	End   *int64 `json:"end,omitempty"`
}

// StartTime returns the start timestamp in local time.
func (iv Interval) StartTime() time.Time {
	return timefmt.FromMillis(iv.Start)
}

// EndTime returns the end timestamp, or false while the interval is open.
func (iv Interval) EndTime() (time.Time, bool) {
	if iv.End == nil {
		return time.Time{}, false
	}
	return timefmt.FromMillis(*iv.End), true
}

// Open reports whether the interval has no end yet.
func (iv Interval) Open() bool {
	return iv.End == nil
}

// Duration is the closed length of the interval. Open intervals count as
// zero; use the store's totals for the running figure.
func (iv Interval) Duration() time.Duration {
	if iv.End == nil {
		return 0
	}
	return time.Duration(*iv.End-iv.Start) * time.Millisecond
}

func (iv Interval) clone() Interval {
	if iv.End != nil {
		end := *iv.End
		iv.End = &end
	}
	return iv
}

// Days maps a day-key (YYYY-MM-DD, local time) to that day's intervals in
// chronological order.
type Days map[string][]Interval

// Clone returns a deep copy.
func (d Days) Clone() Days {
	out := make(Days, len(d))
	for k, list := range d {
		cp := make([]Interval, len(list))
		for i, iv := range list {
			cp[i] = iv.clone()
		}
		out[k] = cp
	}
	return out
}

// Keys returns the day-keys in ascending order.
func (d Days) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func millis(t time.Time) int64 {
	return t.UnixMilli()
}

func millisPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	ms := t.UnixMilli()
	return &ms
}
