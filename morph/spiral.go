package morph

import (
	"math"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Spiral is the garland helix wound around the tree
// It fades with progress cubed and expands outward while scattered
type Spiral struct {
	progress ProgressView
	base     []vmath.Vec3F
	out      []vmath.Vec3F
	opacity  float64
}

// NewSpiral samples the helix once; samples below 2 fall back to the reference count
func NewSpiral(progress ProgressView, samples int) *Spiral {
	if samples < 2 {
		samples = parameter.SpiralSamples
	}
	s := &Spiral{
		progress: progress,
		base:     make([]vmath.Vec3F, samples),
		out:      make([]vmath.Vec3F, samples),
	}

	last := float64(samples - 1)
	for i := range s.base {
		u := float64(i) / last
		angle := u * vmath.Tau * parameter.SpiralTurns
		radius := (1-u)*parameter.SpiralBaseRadius + parameter.SpiralTopRadius
		sin, cos := math.Sincos(angle)
		s.base[i] = vmath.Vec3F{
			X: cos * radius,
			Y: (u - 0.5) * parameter.SpiralHeight,
			Z: sin * radius,
		}
	}
	s.Update(0)
	return s
}

// Update rewrites the point arena and opacity
func (s *Spiral) Update(elapsed float64) {
	p := s.progress.Load()
	s.opacity = math.Pow(p, parameter.SpiralOpacityPow)

	expand := vmath.Lerp(parameter.SpiralChaosExpand, 1, p)
	yaw := elapsed * parameter.SpiralSpin
	for i, b := range s.base {
		s.out[i] = vmath.V3FRotateY(vmath.V3FScale(b, expand), yaw)
	}
}

// Points returns the arena; valid until the next Update
func (s *Spiral) Points() []vmath.Vec3F { return s.out }

func (s *Spiral) Opacity() float64 { return s.opacity }

// Visible reports whether the garland should be drawn at all
func (s *Spiral) Visible() bool {
	return s.opacity > parameter.SpiralVisibleMin
}
