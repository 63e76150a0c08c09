// Package goal keeps the single daily time goal and derives progress from
// the tracked time. A goal only lives for the calendar day it was set on.
package goal

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/sadopc/daytally/internal/clock"
	"github.com/sadopc/daytally/internal/store"
	"github.com/sadopc/daytally/internal/timefmt"
)

// Storage is the key-value backend the goal is persisted in.
type Storage interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}

type Goal struct {
	Hours        int        `json:"hours"`
	Minutes      int        `json:"minutes"`
	TotalMinutes int        `json:"totalMinutes"`
	IsActive     bool       `json:"isActive"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt,omitempty"`
}

// Target is the goal as a duration.
func (g Goal) Target() time.Duration {
	return time.Duration(g.TotalMinutes) * time.Minute
}

// Progress is the state of a goal against the time tracked so far.
type Progress struct {
	Percent   float64
	Remaining time.Duration
	Overtime  time.Duration
	Reached   bool
	// ETA is the estimated completion time; zero once reached.
	ETA time.Time
}

// Compute derives progress. Percent is based on whole tracked minutes and
// capped at 100.
func Compute(g Goal, tracked time.Duration, now time.Time) Progress {
	if g.TotalMinutes <= 0 {
		return Progress{Percent: 100, Reached: true, Overtime: tracked}
	}
	trackedMinutes := int(tracked / time.Minute)
	p := Progress{
		Percent:   min(100, float64(trackedMinutes)/float64(g.TotalMinutes)*100),
		Remaining: g.Target() - tracked,
	}
	if p.Remaining <= 0 {
		p.Reached = true
		p.Overtime = -p.Remaining
		p.Remaining = 0
		return p
	}
	p.ETA = now.Add(p.Remaining)
	return p
}

type Store struct {
	mu    sync.Mutex
	kv    Storage
	clock clock.Clock
	goal  *Goal
}

// New loads the persisted goal, discarding it when it was set on another day.
func New(kv Storage, clk clock.Clock) (*Store, error) {
	if clk == nil {
		clk = clock.System{}
	}
	s := &Store{kv: kv, clock: clk}

	raw, ok, err := kv.Get(store.KeyGoal)
	if err != nil {
		return nil, fmt.Errorf("load goal: %w", err)
	}
	if !ok {
		return s, nil
	}

	var g Goal
	if err := json.Unmarshal([]byte(raw), &g); err != nil {
		log.Printf("goal: discarding corrupt goal: %v", err)
		return s, s.kv.Delete(store.KeyGoal)
	}
	s.goal = &g
	if err := s.dropStale(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) dropStale() error {
	if s.goal == nil || timefmt.SameDay(s.goal.CreatedAt, s.clock.Now()) {
		return nil
	}
	log.Printf("goal: dropping goal from %s", timefmt.DayKey(s.goal.CreatedAt))
	s.goal = nil
	return s.kv.Delete(store.KeyGoal)
}

func (s *Store) save() error {
	if s.goal == nil {
		return s.kv.Delete(store.KeyGoal)
	}
	data, err := json.Marshal(s.goal)
	if err != nil {
		return fmt.Errorf("encode goal: %w", err)
	}
	if err := s.kv.Set(store.KeyGoal, string(data)); err != nil {
		return fmt.Errorf("save goal: %w", err)
	}
	return nil
}

// Current returns a copy of today's goal, or nil.
func (s *Store) Current() *Goal {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dropStale(); err != nil {
		log.Printf("goal: %v", err)
	}
	if s.goal == nil {
		return nil
	}
	g := *s.goal
	if g.CompletedAt != nil {
		c := *g.CompletedAt
		g.CompletedAt = &c
	}
	return &g
}

// Set replaces any goal with a new active one.
func (s *Store) Set(hours, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = &Goal{
		Hours:        hours,
		Minutes:      minutes,
		TotalMinutes: hours*60 + minutes,
		IsActive:     true,
		CreatedAt:    s.clock.Now(),
	}
	return s.save()
}

// Edit changes the target of the existing goal. No-op without a goal.
func (s *Store) Edit(hours, minutes int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dropStale(); err != nil || s.goal == nil {
		return err
	}
	s.goal.Hours = hours
	s.goal.Minutes = minutes
	s.goal.TotalMinutes = hours*60 + minutes
	return s.save()
}

// Complete marks the goal done. No-op without a goal.
func (s *Store) Complete() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.dropStale(); err != nil || s.goal == nil {
		return err
	}
	now := s.clock.Now()
	s.goal.IsActive = false
	s.goal.CompletedAt = &now
	return s.save()
}

// Clear removes the goal.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goal = nil
	return s.save()
}

// Progress computes progress of the current goal. ok is false without one.
func (s *Store) Progress(tracked time.Duration) (p Progress, ok bool) {
	g := s.Current()
	if g == nil {
		return Progress{}, false
	}
	return Compute(*g, tracked, s.clock.Now()), true
}
