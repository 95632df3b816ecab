package ports

import "time"

// Clock abstracts the time source so idle eviction can be exercised in
// tests by advancing a fake clock instead of sleeping.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock implementation used in production.
type SystemClock struct{}

// Now returns the current wall-clock time.
func (SystemClock) Now() time.Time { return time.Now() }
