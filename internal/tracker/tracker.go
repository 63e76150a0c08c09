// Package tracker owns the day-keyed interval bookkeeping: starting and
// stopping the timer, manual edits, and the elapsed-time totals derived from
// them. Every mutation is written through to the key-value backend.
package tracker

import (
	"errors"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/timefmt"
)

var ErrIntervalNotFound = errors.New("interval not found")

// ErrOpenNotLast rejects a manual interval without an end that would not
// become the running interval: something is already running, or it would not
// be the latest interval of the session day.
var ErrOpenNotLast = errors.New("only the latest interval of today can be open")

// Store is the interval store. Tracking is not stored anywhere: it is true
// exactly when the session day's last interval has no end.
type Store struct {
	mu    sync.Mutex
	kv    Storage
	clock clock.Clock

	days Days
	// day is the session day-key. It follows the clock, except that it stays
	// on the start day of a running interval until that interval is closed.
	day string
	// now is the last observed tick, used as the end of the running interval.
	now time.Time

	subs   map[int]func()
	nextID int
}

// New loads the persisted mapping from kv and returns a ready store.
func New(kv Storage, clk clock.Clock) (*Store, error) {
	if clk == nil {
		clk = clock.System{}
	}
	days, err := load(kv)
	if err != nil {
		return nil, err
	}

	s := &Store{
		kv:    kv,
		clock: clk,
		days:  days,
		now:   clk.Now(),
		subs:  make(map[int]func()),
	}
	s.day = s.resumeDay()
	return s, nil
}

// resumeDay pins the session to the newest day when it ends in a running
// interval, so a timer left running across midnight can still be stopped.
func (s *Store) resumeDay() string {
	today := timefmt.DayKey(s.clock.Now())
	keys := s.days.Keys()
	for i := len(keys) - 1; i >= 0; i-- {
		list := s.days[keys[i]]
		if len(list) == 0 {
			continue
		}
		if list[len(list)-1].Open() && keys[i] <= today {
			return keys[i]
		}
		break
	}
	return today
}

// Subscribe registers fn to run after every mutation. The returned func
// removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// commit persists the mapping and notifies subscribers. Called with mu held;
// releases it.
func (s *Store) commit() error {
	err := save(s.kv, s.days)
	s.mu.Unlock()
	if err != nil {
		log.Printf("tracker: %v", err)
	}
	s.notify()
	return err
}

func (s *Store) tracking() bool {
	list := s.days[s.day]
	return len(list) > 0 && list[len(list)-1].Open()
}

func (s *Store) refreshDay() {
	if s.tracking() {
		return
	}
	s.day = timefmt.DayKey(s.clock.Now())
}

// Tracking reports whether an interval is in progress.
func (s *Store) Tracking() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDay()
	return s.tracking()
}

// SessionDay returns the day-key the store currently treats as today.
func (s *Store) SessionDay() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDay()
	return s.day
}

// Start opens a new interval at the current time. No-op while tracking.
func (s *Store) Start() error {
	s.mu.Lock()
	s.refreshDay()
	if s.tracking() {
		s.mu.Unlock()
		return nil
	}
	now := s.clock.Now()
	s.days[s.day] = append(s.days[s.day], Interval{
		ID:    uuid.NewString(),
		Start: millis(now),
	})
	s.now = now
	return s.commit()
}

// Stop closes the running interval at the current time. No-op when idle.
func (s *Store) Stop() error {
	s.mu.Lock()
	s.refreshDay()
	if !s.tracking() {
		s.mu.Unlock()
		return nil
	}
	now := s.clock.Now()
	list := s.days[s.day]
	end := millis(now)
	list[len(list)-1].End = &end
	s.now = now
	return s.commit()
}

// Add records a manual interval under the day of its start, keeping the day in
// chronological order. A running interval always stays last. Start and end
// are not validated here, but an open interval is only accepted when it
// starts tracking: nothing runs yet and it lands last on the session day.
func (s *Store) Add(start time.Time, end *time.Time) (Interval, error) {
	s.mu.Lock()
	s.refreshDay()
	iv := Interval{
		ID:    uuid.NewString(),
		Start: millis(start),
		End:   millisPtr(end),
	}
	key := timefmt.DayKey(start)
	list := s.days[key]

	limit := len(list)
	if limit > 0 && list[limit-1].Open() {
		limit--
	}
	pos := sort.Search(limit, func(i int) bool { return list[i].Start > iv.Start })
	if iv.Open() && (s.tracking() || key != s.day || pos != len(list)) {
		s.mu.Unlock()
		return Interval{}, ErrOpenNotLast
	}
	if iv.Open() {
		s.now = s.clock.Now()
	}
	list = append(list, Interval{})
	copy(list[pos+1:], list[pos:])
	list[pos] = iv
	s.days[key] = list

	return iv.clone(), s.commit()
}

// Edit replaces start and end of the interval with the given id. When it is
// the running interval, end is ignored and the interval stays open.
func (s *Store) Edit(id string, start time.Time, end *time.Time) error {
	s.mu.Lock()
	s.refreshDay()
	key, idx, ok := s.find(id)
	if !ok {
		s.mu.Unlock()
		return ErrIntervalNotFound
	}
	list := s.days[key]
	running := key == s.day && idx == len(list)-1 && s.tracking()

	list[idx].Start = millis(start)
	if running {
		list[idx].End = nil
	} else {
		list[idx].End = millisPtr(end)
	}
	s.now = s.clock.Now()
	return s.commit()
}

// Delete removes the interval with the given id. Removing the running
// interval stops tracking.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	s.refreshDay()
	key, idx, ok := s.find(id)
	if !ok {
		s.mu.Unlock()
		return ErrIntervalNotFound
	}
	list := s.days[key]
	list = append(list[:idx], list[idx+1:]...)
	if len(list) == 0 {
		delete(s.days, key)
	} else {
		s.days[key] = list
	}
	s.refreshDay()
	return s.commit()
}

// Reset clears the session day. Other days are kept.
func (s *Store) Reset() error {
	s.mu.Lock()
	s.refreshDay()
	delete(s.days, s.day)
	s.refreshDay()
	return s.commit()
}

func (s *Store) find(id string) (key string, idx int, ok bool) {
	for k, list := range s.days {
		for i, iv := range list {
			if iv.ID == id {
				return k, i, true
			}
		}
	}
	return "", 0, false
}

// Tick records the latest observed time. Older times are ignored so totals
// never move backwards.
func (s *Store) Tick(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if now.After(s.now) {
		s.now = now
	}
}

// Refresh ticks with the store's clock.
func (s *Store) Refresh() {
	s.Tick(s.clock.Now())
}

// Total is the elapsed time of the session day, including the running
// interval up to the last tick.
func (s *Store) Total() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDay()
	return s.totalFor(s.day)
}

// TotalFor is Total for an arbitrary day-key.
func (s *Store) TotalFor(day string) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDay()
	return s.totalFor(day)
}

func (s *Store) totalFor(day string) time.Duration {
	list := s.days[day]
	running := day == s.day && s.tracking()
	nowMs := millis(s.now)

	var total int64
	for i, iv := range list {
		end := iv.Start
		switch {
		case iv.End != nil:
			end = *iv.End
		case running && i == len(list)-1:
			end = max(nowMs, iv.Start)
		}
		total += end - iv.Start
	}
	return time.Duration(total) * time.Millisecond
}

// Current returns the running interval.
func (s *Store) Current() (Interval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refreshDay()
	if !s.tracking() {
		return Interval{}, false
	}
	list := s.days[s.day]
	return list[len(list)-1].clone(), true
}

// Get returns the interval with the given id.
func (s *Store) Get(id string) (Interval, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key, idx, ok := s.find(id)
	if !ok {
		return Interval{}, false
	}
	return s.days[key][idx].clone(), true
}

// ForDate returns a copy of the intervals on t's calendar day.
func (s *Store) ForDate(t time.Time) []Interval {
	return s.ForDay(timefmt.DayKey(t))
}

// ForDay returns a copy of the intervals filed under day.
func (s *Store) ForDay(day string) []Interval {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.days[day]
	out := make([]Interval, len(list))
	for i, iv := range list {
		out[i] = iv.clone()
	}
	return out
}

// Today returns the session day's intervals.
func (s *Store) Today() []Interval {
	return s.ForDay(s.SessionDay())
}

// DayKeys returns every day with intervals, oldest first.
func (s *Store) DayKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days.Keys()
}

// Snapshot returns a deep copy of the whole mapping.
func (s *Store) Snapshot() Days {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.days.Clone()
}

// LastTick returns the time used as the end of the running interval.
func (s *Store) LastTick() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}
