package morph

import (
	"math"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Gift is the single interactive element
// It is clickable only while its blended scale is visibly non-zero
type Gift struct {
	progress ProgressView
	target   vmath.Vec3F
	chaos    vmath.Vec3F
	baseRot  vmath.Vec3F

	hovered      bool
	xf           core.Transform
	interactable bool
}

// NewGift places the gift at its formed anchor with a random scatter position
func NewGift(progress ProgressView, rng *vmath.FastRand) *Gift {
	g := &Gift{
		progress: progress,
		target:   vmath.Vec3F{X: parameter.GiftTargetX, Y: parameter.GiftTargetY, Z: parameter.GiftTargetZ},
		chaos:    rng.Box(parameter.GiftChaosExtent, parameter.GiftChaosExtent, parameter.GiftChaosExtent),
		baseRot:  vmath.Vec3F{Y: parameter.GiftBaseYaw},
	}
	g.Update(0)
	return g
}

// SetHovered toggles the hover emphasis (scale and spin)
func (g *Gift) SetHovered(h bool) {
	g.hovered = h
}

// Hovered reports the current hover flag
func (g *Gift) Hovered() bool {
	return g.hovered
}

// Update recomputes the transform and the interactable flag
func (g *Gift) Update(elapsed float64) {
	p := g.progress.Load()

	pos := vmath.V3FLerp(g.chaos, g.target, p)
	pos.Y += math.Sin(elapsed*parameter.GiftBobFreq) * parameter.GiftBobAmp * p

	tumble := vmath.V3FAdd(g.baseRot, vmath.Vec3F{X: elapsed, Y: elapsed, Z: elapsed})
	formed := g.baseRot
	if g.hovered {
		formed.Y += elapsed * parameter.GiftHoverSpin
	}

	scale := p
	if g.hovered {
		scale *= parameter.GiftHoverScale
	}

	g.xf = core.Transform{
		Position: pos,
		Rotation: vmath.V3FLerp(tumble, formed, p),
		Scale:    scale,
	}
	g.interactable = scale > parameter.InteractableEpsilon
}

// Transform returns the transform computed by the last Update
func (g *Gift) Transform() core.Transform {
	return g.xf
}

// Interactable reports whether the gift is visible enough to accept clicks
func (g *Gift) Interactable() bool {
	return g.interactable
}
