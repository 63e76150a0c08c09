package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManualAdvance(t *testing.T) {
	t0 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	m := NewManual(t0)

	assert.Equal(t, t0, m.Now())
	assert.Equal(t, t0.Add(65*time.Second), m.Advance(65*time.Second))
	assert.Equal(t, t0.Add(65*time.Second), m.Now())

	t1 := t0.Add(24 * time.Hour)
	m.Set(t1)
	assert.Equal(t, t1, m.Now())
}

func TestSystemIsCurrent(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	assert.False(t, got.Before(before))
}
