// Package clock provides the time source used by the diagnostics core.
//
// Production code uses System, which reads the process monotonic clock
// through time.Now. Tests inject a Manual clock so time-derived values
// (measure durations, outage lengths) are deterministic without sleeps.
package clock

import (
	"sync"
	"time"
)

// Clock supplies the current instant. Only differences between instants
// returned by the same Clock are meaningful.
type Clock interface {
	Now() time.Time
}

// System returns the production clock backed by time.Now.
// The returned clock is stateless and safe to share.
func System() Clock {
	return systemClock{}
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Manual is a test clock that only moves when told to.
// Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

// NewManual creates a manual clock pinned at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the clock's current instant.
func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance moves the clock forward by d. Negative values are ignored so a
// manual clock can never run backwards.
func (m *Manual) Advance(d time.Duration) {
	if d < 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = m.now.Add(d)
}

// Set pins the clock to t.
func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = t
}
