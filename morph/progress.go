// Package morph eases regime progress and blends element transforms between
// their chaos and formed layouts every frame.
//
// A Controller owns one progress scalar; other components read it through a
// ProgressView and never write it. A Group owns a layout and a fixed arena of
// output transforms that Blend overwrites in place, so the steady state frame
// loop does not allocate.
package morph

import (
	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/vmath"
)

// Advance eases current toward the regime target by clamp(dt*rate, 0, 1)
// Exponential approach; the result is always within [0, 1]
func Advance(current float64, target core.Regime, rate, dt float64) float64 {
	alpha := vmath.Clamp01(dt * rate)
	return vmath.Clamp01(vmath.Lerp(vmath.Clamp01(current), target.Target(), alpha))
}

// Controller owns a progress scalar and its easing rate
type Controller struct {
	progress float64
	rate     float64
}

// NewController creates a controller starting at initial (clamped) easing at rate per second
func NewController(initial, rate float64) *Controller {
	return &Controller{
		progress: vmath.Clamp01(initial),
		rate:     rate,
	}
}

// Step advances progress toward target by wall-clock dt seconds
func (c *Controller) Step(target core.Regime, dt float64) float64 {
	c.progress = Advance(c.progress, target, c.rate, dt)
	return c.progress
}

// Progress returns the current scalar
func (c *Controller) Progress() float64 {
	return c.progress
}

// Rate returns the easing rate per second
func (c *Controller) Rate() float64 {
	return c.rate
}

// View returns a read-only handle for consumers
func (c *Controller) View() ProgressView {
	return ProgressView{c: c}
}

// ProgressView is a read-only view of a Controller's progress
// The zero value reads as fully scattered
type ProgressView struct {
	c *Controller
}

// Load returns the owner's current progress
func (v ProgressView) Load() float64 {
	if v.c == nil {
		return 0
	}
	return v.c.progress
}

// StaticProgress returns a view pinned at p, for tests and headless tools
func StaticProgress(p float64) ProgressView {
	return ProgressView{c: NewController(p, 0)}
}
