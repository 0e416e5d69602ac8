// Package interaction routes pointer, keyboard and gesture input into the
// assembly's angular velocity and the process-wide regime.
package interaction

import (
	"math"
	"time"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
)

// Options are the rotation and acknowledgment tunables
// Per-frame constants are expressed at the reference frame rate
type Options struct {
	Damping         float64
	DragSensitivity float64
	IdleThreshold   float64
	AmbientSpin     float64
	GestureDeadband float64
	GesturePush     float64
	Acknowledge     time.Duration
	// FrameCoupled applies per-frame constants once per Step regardless of dt
	FrameCoupled bool
}

// DefaultOptions returns the reference tuning
func DefaultOptions() Options {
	return Options{
		Damping:         parameter.RotationDamping,
		DragSensitivity: parameter.DragSensitivity,
		IdleThreshold:   parameter.IdleThreshold,
		AmbientSpin:     parameter.AmbientSpin,
		GestureDeadband: parameter.GestureDeadband,
		GesturePush:     parameter.GesturePush,
		Acknowledge:     time.Duration(parameter.AcknowledgeSeconds * float64(time.Second)),
	}
}

// Clickable is anything that can refuse a click while hidden
type Clickable interface {
	Interactable() bool
}

// RegimeListener observes regime transitions
type RegimeListener func(from, to core.Regime)

// Router owns the regime, the angular velocity and the accumulated rotation
// Not safe for concurrent use; driven from the frame loop
type Router struct {
	opts Options

	regime      core.Regime
	gestureMode bool

	velocity float64
	rotation float64
	dragging bool
	lastX    float64

	ackUntil time.Time

	regimeListeners []RegimeListener
	clickListeners  []func()
}

// New starts FORMED, at rest, with gesture mode off
func New(opts Options) *Router {
	return &Router{opts: opts, regime: core.RegimeFormed}
}

// PointerDown begins a drag at screen x
func (r *Router) PointerDown(x float64) {
	r.dragging = true
	r.lastX = x
}

// PointerMove feeds horizontal drag motion into the angular velocity
func (r *Router) PointerMove(x float64) {
	if !r.dragging {
		return
	}
	r.velocity += (x - r.lastX) * r.opts.DragSensitivity
	r.lastX = x
}

func (r *Router) PointerUp() {
	r.dragging = false
}

func (r *Router) PointerLeave() {
	r.dragging = false
}

// Step integrates one frame of rotation and returns the rotation delta applied
// Ambient spin goes straight to the rotation so the velocity keeps decaying
func (r *Router) Step(dt float64, sample core.MotionSample) float64 {
	f := 1.0
	if !r.opts.FrameCoupled {
		f = max(dt, 0) * parameter.ReferenceFPS
	}

	delta := r.velocity * f
	if f == 1 {
		r.velocity *= r.opts.Damping
	} else {
		r.velocity *= math.Pow(r.opts.Damping, f)
	}

	if !r.dragging && math.Abs(r.velocity) < r.opts.IdleThreshold {
		delta += r.opts.AmbientSpin * f
	}

	if r.gestureMode && sample.Active() && math.Abs(sample.X) > r.opts.GestureDeadband {
		r.velocity += sample.X * r.opts.GesturePush * f
	}

	r.rotation += delta
	return delta
}

// Toggle flips the regime and returns the new one
func (r *Router) Toggle() core.Regime {
	r.setRegime(r.regime.Toggle())
	return r.regime
}

// SetRegime forces a regime; returns true if it changed
func (r *Router) SetRegime(to core.Regime) bool {
	return r.setRegime(to)
}

// SetGestureMode switches between gesture and pointer/toggle control
func (r *Router) SetGestureMode(on bool) {
	r.gestureMode = on
}

// ApplyGesture maps an open hand to CHAOS and a fist to FORMED
// Ignored outside gesture mode; returns true if the regime changed
func (r *Router) ApplyGesture(sample core.MotionSample) bool {
	if !r.gestureMode {
		return false
	}
	switch sample.Gesture {
	case core.GestureOpenHand:
		return r.setRegime(core.RegimeChaos)
	case core.GestureClosedFist:
		return r.setRegime(core.RegimeFormed)
	default:
		return false
	}
}

func (r *Router) setRegime(to core.Regime) bool {
	if to == r.regime {
		return false
	}
	from := r.regime
	r.regime = to
	for _, fn := range r.regimeListeners {
		fn(from, to)
	}
	return true
}

// Click registers a click on target at now; hidden targets reject it
// An accepted click opens the acknowledgment window
func (r *Router) Click(target Clickable, now time.Time) bool {
	if target == nil || !target.Interactable() {
		return false
	}
	r.ackUntil = now.Add(r.opts.Acknowledge)
	for _, fn := range r.clickListeners {
		fn()
	}
	return true
}

// Acknowledged reports whether the last accepted click is still being acknowledged
func (r *Router) Acknowledged(now time.Time) bool {
	return now.Before(r.ackUntil)
}

// OnRegimeChange registers fn for every transition
func (r *Router) OnRegimeChange(fn RegimeListener) {
	r.regimeListeners = append(r.regimeListeners, fn)
}

// OnClick registers fn for every accepted click
func (r *Router) OnClick(fn func()) {
	r.clickListeners = append(r.clickListeners, fn)
}

func (r *Router) Regime() core.Regime { return r.regime }
func (r *Router) GestureMode() bool   { return r.gestureMode }
func (r *Router) Velocity() float64   { return r.velocity }
func (r *Router) Rotation() float64   { return r.rotation }
func (r *Router) Dragging() bool      { return r.dragging }
