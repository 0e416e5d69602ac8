// Package ambient animates the background snowfall
package ambient

import (
	"github.com/aquilax/go-perlin"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Perlin octave settings for the wind field
const (
	windAlpha   = 2.0
	windBeta    = 2.0
	windOctaves = 3
)

// Snow is a fixed population of falling flakes with a coherent sideways wind
type Snow struct {
	pos    []vmath.Vec3F
	speed  []float64
	rng    *vmath.FastRand
	wind   *perlin.Perlin
	extent vmath.Vec3F

	frameCoupled bool
	resets       uint64
}

// NewSnow scatters count flakes through the snow volume
func NewSnow(count int, frameCoupled bool, rng *vmath.FastRand) *Snow {
	n := max(count, 0)
	s := &Snow{
		pos:          make([]vmath.Vec3F, n),
		speed:        make([]float64, n),
		rng:          rng,
		wind:         perlin.NewPerlin(windAlpha, windBeta, windOctaves, int64(rng.Next()>>1)),
		extent:       vmath.Vec3F{X: parameter.SnowExtentX, Y: parameter.SnowExtentY, Z: parameter.SnowExtentZ},
		frameCoupled: frameCoupled,
	}
	for i := range s.pos {
		s.pos[i] = rng.Box(s.extent.X, s.extent.Y, s.extent.Z)
		s.speed[i] = rng.Range(parameter.SnowSpeedMin, parameter.SnowSpeedMax)
	}
	return s
}

// Step drops every flake and wraps those below the floor back to the top
func (s *Snow) Step(dt, elapsed float64) {
	f := 1.0
	if !s.frameCoupled {
		f = max(dt, 0) * parameter.ReferenceFPS
	}
	floor := -s.extent.Y / 2

	for i := range s.pos {
		p := &s.pos[i]
		p.Y -= s.speed[i] * f

		gust := vmath.Clamp(s.wind.Noise2D(float64(i)*parameter.SnowWindScale, elapsed), -1, 1)
		p.X += gust * parameter.SnowWindAmp * f

		if p.Y < floor {
			p.Y = -floor
			p.X = s.rng.Centered(s.extent.X)
			s.resets++
		}
	}
}

// Positions returns the flake arena
func (s *Snow) Positions() []vmath.Vec3F { return s.pos }

func (s *Snow) Len() int { return len(s.pos) }

// Resets counts flakes wrapped back to the top
func (s *Snow) Resets() uint64 { return s.resets }
