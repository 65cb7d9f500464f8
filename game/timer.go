package game

import (
	"math"
	"time"
)

// One-shot delayed calls measured in ticks. They only ever run at the
// start of Step, between ticks, so they never see a half-updated body.

type timer struct {
	due int
	fn  func()
}

type timerQueue struct {
	pending []timer
}

// After schedules fn to run once, ticks steps from now. There is no
// cancel.
func (m *Match) After(ticks int, fn func()) {
	if ticks < 1 {
		ticks = 1
	}
	m.timers.pending = append(m.timers.pending, timer{due: m.Tick + ticks, fn: fn})
}

// DelayedCall is After with a wall-clock delay rounded up to whole ticks.
func (m *Match) DelayedCall(d time.Duration, fn func()) {
	m.After(int(math.Ceil(d.Seconds()*TickHz-1e-9)), fn)
}

// PendingTimers is the number of scheduled calls that have not fired.
func (m *Match) PendingTimers() int {
	return len(m.timers.pending)
}

func (m *Match) runTimers() {
	if len(m.timers.pending) == 0 {
		return
	}
	var due []timer
	kept := m.timers.pending[:0]
	for _, t := range m.timers.pending {
		if t.due <= m.Tick {
			due = append(due, t)
		} else {
			kept = append(kept, t)
		}
	}
	m.timers.pending = kept
	for _, t := range due {
		t.fn()
	}
}
