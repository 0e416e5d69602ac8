package morph

import (
	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Group is one morph group: a layout, its progress controller and the
// transform arena rewritten by Blend
type Group struct {
	name   string
	layout *layout.Layout
	ctrl   *Controller
	drift  Drift
	spin   vmath.Vec3F
	color  core.RGB

	// out is indexed by element id and never reallocated
	out []core.Transform
}

// NewGroup binds a layout to a fresh controller starting at initial progress
func NewGroup(name string, l *layout.Layout, color core.RGB, initial, rate float64) *Group {
	g := &Group{
		name:   name,
		layout: l,
		ctrl:   NewController(initial, rate),
		drift:  DriftFor(l.Category),
		spin:   vmath.Vec3F{X: parameter.ChaosSpinX, Y: parameter.ChaosSpinY, Z: parameter.ChaosSpinZ},
		color:  color,
		out:    make([]core.Transform, l.Len()),
	}
	g.Blend(0)
	return g
}

// SetDrift overrides the category's default secondary motion
func (g *Group) SetDrift(d Drift) {
	g.drift = d
}

// Update advances progress toward target then blends at elapsed seconds
func (g *Group) Update(target core.Regime, dt, elapsed float64) {
	g.ctrl.Step(target, dt)
	g.Blend(elapsed)
}

// Blend writes every element's transform for the current progress
func (g *Group) Blend(elapsed float64) {
	if len(g.out) == 0 {
		return
	}
	p := g.ctrl.Progress()
	scaleMul := p*parameter.ScaleFormedShare + parameter.ScaleChaosShare
	spin := vmath.V3FScale(g.spin, elapsed)

	for i := range g.layout.Elements {
		e := &g.layout.Elements[i]
		o := &g.out[i]

		o.Position = vmath.V3FLerp(e.Chaos.Position, e.Target.Position, p)
		g.drift.apply(&o.Position, float64(e.Seed), p, elapsed)

		chaosRot := vmath.V3FAdd(e.Chaos.Rotation, spin)
		o.Rotation = vmath.V3FLerp(chaosRot, e.Target.Rotation, p)

		o.Scale = e.Target.Scale * scaleMul
	}
}

// Transforms returns the arena; valid until the next Blend
func (g *Group) Transforms() []core.Transform {
	return g.out
}

func (g *Group) Name() string              { return g.name }
func (g *Group) Len() int                  { return len(g.out) }
func (g *Group) Category() layout.Category { return g.layout.Category }
func (g *Group) Color() core.RGB           { return g.color }
func (g *Group) Layout() *layout.Layout    { return g.layout }
func (g *Group) Controller() *Controller   { return g.ctrl }
func (g *Group) Progress() ProgressView    { return g.ctrl.View() }
