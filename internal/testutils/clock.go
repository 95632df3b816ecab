// Package testutils holds small helpers shared across test suites.
package testutils

import (
	"sync"
	"time"
)

// Clock is a manually advanced time source for eviction and elapsed-time
// tests.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock creates a fake clock starting at now.
func NewClock(now time.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}
