package morph

import (
	"math"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Star is the tree topper; it orbits while scattered and settles on the apex
type Star struct {
	progress ProgressView
	xf       core.Transform
}

func NewStar(progress ProgressView) *Star {
	s := &Star{progress: progress}
	s.Update(0)
	return s
}

func (s *Star) Update(elapsed float64) {
	p := s.progress.Load()
	r := parameter.StarChaosRadius

	chaos := vmath.Vec3F{
		X: math.Cos(elapsed*parameter.StarSpin) * r,
		Y: parameter.StarTopY + math.Sin(elapsed)*r,
		Z: math.Sin(elapsed) * r,
	}
	top := vmath.Vec3F{Y: parameter.StarTopY}

	pulse := (1 + math.Sin(elapsed*parameter.StarPulseFreq)*parameter.StarPulseAmp) * p

	s.xf = core.Transform{
		Position: vmath.V3FLerp(chaos, top, p),
		Rotation: vmath.Vec3F{
			Y: elapsed * parameter.StarSpin,
			Z: math.Sin(elapsed*parameter.StarWobbleFreq) * parameter.StarWobbleAmp,
		},
		Scale: math.Max(parameter.StarMinScale, pulse),
	}
}

func (s *Star) Transform() core.Transform {
	return s.xf
}
