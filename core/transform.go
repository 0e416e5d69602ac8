package core

import "github.com/lixenwraith/evergreen/vmath"

// Transform is a renderable placement: position, per-axis Euler rotation (radians), uniform scale
type Transform struct {
	Position vmath.Vec3F
	Rotation vmath.Vec3F
	Scale    float64
}

// Element is one unit of a morph group
// Target and Chaos are generated together and never mutated afterwards
type Element struct {
	Target Transform
	Chaos  Transform
	// Seed in [0, 1) offsets per-element animation phase
	Seed float32
}
