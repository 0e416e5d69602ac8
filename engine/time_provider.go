package engine

import "time"

// TimeProvider is a source of wall-clock time
type TimeProvider interface {
	Now() time.Time
}

// SystemTimeProvider reads the monotonic system clock
type SystemTimeProvider struct{}

// NewSystemTimeProvider creates the real time source
func NewSystemTimeProvider() SystemTimeProvider {
	return SystemTimeProvider{}
}

// Now returns the current time with monotonic clock reading
func (SystemTimeProvider) Now() time.Time {
	return time.Now()
}
