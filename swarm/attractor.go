package swarm

import (
	"math"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Attractor is the FORMED-regime pull target
// Strength is the per-source gain before SwarmAttractGain is applied
type Attractor struct {
	Target   vmath.Vec3F
	Strength float64
}

// Viewport is the visible world extent at the swarm's depth plane
type Viewport struct {
	Width, Height float64
}

// ViewportAt is the visible extent of the plane distance units in front of a
// perspective camera with vertical field of view fovDeg
func ViewportAt(fovDeg, distance, aspect float64) Viewport {
	h := 2 * distance * math.Tan(fovDeg*math.Pi/360)
	return Viewport{Width: h * aspect, Height: h}
}

// PointerAttractor maps a pointer in normalized device coordinates [-1, 1]
// onto the world plane z=0
func PointerAttractor(ndcX, ndcY float64, vp Viewport) Attractor {
	return Attractor{
		Target: vmath.Vec3F{
			X: ndcX * vp.Width / 2,
			Y: ndcY * vp.Height / 2,
		},
		Strength: parameter.SwarmPointerStrength,
	}
}

// GestureAttractor maps a motion sample past the viewport edge so a hand at the
// frame border still drags particles to the screen border
func GestureAttractor(m core.MotionSample, vp Viewport) Attractor {
	return Attractor{
		Target: vmath.Vec3F{
			X: m.X * vp.Width / 2 * parameter.SwarmGestureReach,
			Y: m.Y * vp.Height / 2 * parameter.SwarmGestureReach,
		},
		Strength: parameter.SwarmGestureStrength,
	}
}

// SelectAttractor prefers an active gesture over the pointer
func SelectAttractor(m core.MotionSample, gestureMode bool, ndcX, ndcY float64, vp Viewport) Attractor {
	if gestureMode && m.Active() {
		return GestureAttractor(m, vp)
	}
	return PointerAttractor(ndcX, ndcY, vp)
}
