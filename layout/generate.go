// Package layout samples the formed and chaos transforms of morph group elements.
//
// Formed layouts live inside (foliage) or near the surface of (ornaments) a cone
// centered on the origin; chaos layouts are uniform in a cube roughly three
// times the formed extent. Layouts are not reproducible across runs but a
// Stable slot keeps one alive until its count or category changes.
package layout

import (
	"fmt"
	"math"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Layout is an immutable set of elements for one morph group
type Layout struct {
	Category Category
	Shape    Shape
	Elements []core.Element
}

// Len returns the element count
func (l *Layout) Len() int {
	return len(l.Elements)
}

// Generate samples count elements of category c using its default shape
func Generate(count int, c Category, rng *vmath.FastRand) (*Layout, error) {
	shape, err := DefaultShape(c)
	if err != nil {
		return nil, err
	}
	return GenerateShape(count, c, shape, rng)
}

// GenerateShape samples count elements of category c inside shape
// Fails fast on negative count, unknown category or degenerate shape
func GenerateShape(count int, c Category, shape Shape, rng *vmath.FastRand) (*Layout, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: %d", ErrNegativeCount, count)
	}
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	if err := shape.Validate(); err != nil {
		return nil, err
	}

	l := &Layout{
		Category: c,
		Shape:    shape,
		Elements: make([]core.Element, count),
	}

	for i := range l.Elements {
		e := &l.Elements[i]
		if c.IsPointCloud() {
			e.Target = sampleVolume(shape, rng)
		} else {
			e.Target = sampleSurface(shape, instanceProfiles[c], rng)
		}
		e.Chaos = sampleChaos(shape.ChaosExtent, rng)
		e.Chaos.Scale = e.Target.Scale
		e.Seed = float32(rng.Float64())
	}

	return l, nil
}

// sampleVolume fills the cone uniformly across each cross-section
// sqrt(u) compensates the area element so points do not cluster at the axis
func sampleVolume(shape Shape, rng *vmath.FastRand) core.Transform {
	h := rng.Float64() * shape.Height
	r := shape.BaseRadius * (1 - h/shape.Height)
	theta := rng.Float64() * vmath.Tau
	dist := math.Sqrt(rng.Float64()) * r

	s, c := math.Sincos(theta)
	return core.Transform{
		Position: vmath.Vec3F{X: dist * c, Y: h - shape.Height/2, Z: dist * s},
		Scale:    parameter.FoliagePointSize,
	}
}

// sampleSurface places an ornament in a noisy band at offset times the local radius
func sampleSurface(shape Shape, p instanceProfile, rng *vmath.FastRand) core.Transform {
	h := rng.Float64() * shape.Height
	r := shape.BaseRadius * (1 - h/shape.Height)
	theta := rng.Float64() * vmath.Tau
	depth := rng.Centered(parameter.OrnamentDepthJitter)
	dist := r * (p.offset + depth)

	s, c := math.Sincos(theta)
	return core.Transform{
		Position: vmath.Vec3F{X: dist * c, Y: h - shape.Height/2, Z: dist * s},
		Rotation: vmath.Vec3F{Y: rng.Float64() * math.Pi},
		Scale:    p.scaleMin + rng.Float64()*p.scaleSpan,
	}
}

// sampleChaos scatters uniformly in a centered cube with a random tumble
func sampleChaos(extent float64, rng *vmath.FastRand) core.Transform {
	pos := rng.Box(extent, extent, extent)
	rx := rng.Float64() * vmath.Tau
	ry := rng.Float64() * vmath.Tau
	return core.Transform{
		Position: pos,
		Rotation: vmath.Vec3F{X: rx, Y: ry, Z: rx},
	}
}
