package clock

import (
	"sync"
	"time"
)

// Clock is the single source of "now" for expiry and reaping decisions.
type Clock interface {
	Now() time.Time
}

type system struct{}

// System returns a Clock backed by time.Now in UTC.
func System() Clock {
	return system{}
}

func (system) Now() time.Time { return time.Now().UTC() }

// Manual is a Clock whose time only moves when told to. Safe for concurrent use.
type Manual struct {
	mu  sync.Mutex
	now time.Time
}

func NewManual(now time.Time) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.now
}

func (m *Manual) Set(t time.Time) {
	m.mu.Lock()
	m.now = t
	m.mu.Unlock()
}

func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	m.now = m.now.Add(d)
	m.mu.Unlock()
}
