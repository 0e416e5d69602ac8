package engine

import (
	"sync/atomic"
	"time"
)

// FrameClock is a TimeProvider that only moves when stepped
// Headless runs and tests step it once per scene frame so clicks, toasts and
// pauses see the same time the scene integrated
type FrameClock struct {
	epoch  time.Time
	offset atomic.Int64 // nanoseconds since epoch
	frames atomic.Int64
}

func NewFrameClock(epoch time.Time) *FrameClock {
	return &FrameClock{epoch: epoch}
}

func (c *FrameClock) Now() time.Time {
	return c.epoch.Add(time.Duration(c.offset.Load()))
}

// Step advances one frame of dt seconds and returns the new time
// Negative dt counts the frame without moving time
func (c *FrameClock) Step(dt float64) time.Time {
	c.frames.Add(1)
	if dt > 0 {
		c.offset.Add(int64(dt * float64(time.Second)))
	}
	return c.Now()
}

// Advance jumps forward by d without counting a frame
func (c *FrameClock) Advance(d time.Duration) {
	if d > 0 {
		c.offset.Add(int64(d))
	}
}

// Frames counts Step calls
func (c *FrameClock) Frames() int64 {
	return c.frames.Load()
}
