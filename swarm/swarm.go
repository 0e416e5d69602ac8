// Package swarm integrates the gold dust particles: a fixed population that
// explodes away from the center while scattered, drifts toward an attractor
// and its home anchors while formed, and respawns at home when it escapes.
package swarm

import (
	"math"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Particle is one swarm member
type Particle struct {
	Position vmath.Vec3F
	Velocity vmath.Vec3F
	Home     vmath.Vec3F
	Phase    float64
	BaseSize float64
}

// Options tunes a swarm; zero fields take reference values
type Options struct {
	Count int
	// FrameCoupled applies per-frame constants once per Step regardless of dt
	FrameCoupled bool
}

// Swarm owns the particles and a positions arena for the renderer
type Swarm struct {
	particles    []Particle
	positions    []vmath.Vec3F
	rng          *vmath.FastRand
	frameCoupled bool
	respawns     uint64
}

// New spawns count particles; negative counts are treated as zero
func New(opts Options, rng *vmath.FastRand) *Swarm {
	n := max(opts.Count, 0)
	s := &Swarm{
		particles:    make([]Particle, n),
		positions:    make([]vmath.Vec3F, n),
		rng:          rng,
		frameCoupled: opts.FrameCoupled,
	}
	for i := range s.particles {
		p := &s.particles[i]
		p.Position = rng.Box(parameter.SwarmSpawnX, parameter.SwarmSpawnY, parameter.SwarmSpawnZ)
		p.Home = rng.Box(parameter.SwarmHomeX, parameter.SwarmHomeY, parameter.SwarmHomeZ)
		p.Phase = rng.Float64() * vmath.Tau
		p.BaseSize = parameter.SwarmSizeMin + rng.Float64()*parameter.SwarmSizeSpan
		s.positions[i] = p.Position
	}
	return s
}

// frames converts dt into reference frames elapsed
func (s *Swarm) frames(dt float64) float64 {
	if s.frameCoupled {
		return 1
	}
	return max(dt, 0) * parameter.ReferenceFPS
}

// Step integrates every particle once; mode selects explosion or attraction
func (s *Swarm) Step(mode core.Regime, att Attractor, dt float64) {
	f := s.frames(dt)
	if f == 0 {
		return
	}
	damp := math.Pow(parameter.SwarmDamping, f)
	jitter := parameter.SwarmJitter * f
	explodeR2 := parameter.SwarmExplodeRadius * parameter.SwarmExplodeRadius
	captureR2 := parameter.SwarmCaptureRadius * parameter.SwarmCaptureRadius
	pull := att.Strength * parameter.SwarmAttractGain * f
	home := parameter.SwarmHomePull * f

	for i := range s.particles {
		p := &s.particles[i]

		if mode == core.RegimeChaos {
			if vmath.V3FMagSq(p.Position) < explodeR2 {
				p.Velocity = vmath.V3FAdd(p.Velocity, vmath.V3FScale(p.Position, parameter.SwarmExplodeGain*f))
			}
			p.Velocity.X += s.rng.Centered(jitter)
			p.Velocity.Y += s.rng.Centered(jitter)
			p.Velocity.Z += s.rng.Centered(jitter)
		} else {
			d := vmath.V3FSub(att.Target, p.Position)
			if vmath.V3FMagSq(d) < captureR2 {
				p.Velocity = vmath.V3FAdd(p.Velocity, vmath.V3FScale(d, pull))
			}
			p.Velocity = vmath.V3FAdd(p.Velocity, vmath.V3FScale(vmath.V3FSub(p.Home, p.Position), home))
		}

		p.Velocity = vmath.V3FScale(p.Velocity, damp)
		p.Position = vmath.V3FAdd(p.Position, vmath.V3FScale(p.Velocity, f))

		if vmath.V3FMaxAbs(p.Position) > parameter.SwarmBound {
			p.Position = p.Home
			p.Velocity = vmath.Vec3F{}
			s.respawns++
		}
		s.positions[i] = p.Position
	}
}

// Positions returns the arena written by Step
func (s *Swarm) Positions() []vmath.Vec3F { return s.positions }

// Particles exposes particle state for rendering size and twinkle phase
func (s *Swarm) Particles() []Particle { return s.particles }

func (s *Swarm) Len() int { return len(s.particles) }

// Respawns counts escapes since construction
func (s *Swarm) Respawns() uint64 { return s.respawns }
