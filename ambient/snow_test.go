package ambient

import (
	"math"
	"testing"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

func TestSnowSpawnVolume(t *testing.T) {
	s := NewSnow(2000, false, vmath.NewFastRand(11))
	for i, p := range s.Positions() {
		if math.Abs(p.X) > parameter.SnowExtentX/2 || math.Abs(p.Y) > parameter.SnowExtentY/2 || math.Abs(p.Z) > parameter.SnowExtentZ/2 {
			t.Fatalf("flake %d outside volume: %v", i, p)
		}
	}
	for i, v := range s.speed {
		if v < parameter.SnowSpeedMin || v >= parameter.SnowSpeedMax {
			t.Fatalf("flake %d speed %f", i, v)
		}
	}
}

func TestSnowFallsAndWraps(t *testing.T) {
	s := NewSnow(3, false, vmath.NewFastRand(2))
	s.pos[0] = vmath.Vec3F{Y: -parameter.SnowExtentY/2 + 0.001}
	s.speed[0] = parameter.SnowSpeedMax
	startY := s.pos[1].Y

	s.Step(1.0/60, 0.5)

	if s.pos[0].Y != parameter.SnowExtentY/2 {
		t.Errorf("Wrapped flake y=%f, want top %f", s.pos[0].Y, parameter.SnowExtentY/2)
	}
	if s.Resets() != 1 {
		t.Errorf("Expected 1 reset, got %d", s.Resets())
	}
	if s.pos[1].Y >= startY {
		t.Errorf("Flake did not fall: %f -> %f", startY, s.pos[1].Y)
	}
}

func TestSnowWindBounded(t *testing.T) {
	s := NewSnow(500, true, vmath.NewFastRand(4))
	before := make([]vmath.Vec3F, s.Len())
	copy(before, s.Positions())

	s.Step(0, 3.3)
	for i, p := range s.Positions() {
		if p.Y > before[i].Y {
			continue // wrapped
		}
		if d := math.Abs(p.X - before[i].X); d > parameter.SnowWindAmp+1e-12 {
			t.Fatalf("flake %d drifted %f", i, d)
		}
	}
}
