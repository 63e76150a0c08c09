package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ticker schedules the one-second refresh while tracking. Stopping bumps the
// generation so a tick already in flight is ignored and not rescheduled.
type ticker struct {
	id       int
	running  bool
	interval time.Duration
}

func newTicker() ticker {
	return ticker{interval: time.Second}
}

func (t *ticker) start() tea.Cmd {
	if t.running {
		return nil
	}
	t.id++
	t.running = true
	return t.next()
}

func (t *ticker) stop() {
	if !t.running {
		return
	}
	t.id++
	t.running = false
}

// sync starts or stops the ticker to match tracking.
func (t *ticker) sync(tracking bool) tea.Cmd {
	if tracking {
		return t.start()
	}
	t.stop()
	return nil
}

func (t ticker) next() tea.Cmd {
	id := t.id
	return tea.Tick(t.interval, func(now time.Time) tea.Msg {
		return tickMsg{id: id, time: now}
	})
}

func (t ticker) accepts(msg tickMsg) bool {
	return t.running && msg.id == t.id
}
