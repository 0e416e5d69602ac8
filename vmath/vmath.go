package vmath

import (
	"math"
)

// Tau is a full turn in radians
const Tau = 2 * math.Pi

// --- Interpolation ---

// Lerp returns a + (b-a)*t with exact endpoints
// The two-product form keeps Lerp(a, b, 1) == b bit-for-bit
func Lerp(a, b, t float64) float64 {
	return a*(1-t) + b*t
}

// Clamp restricts v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 restricts v to [0, 1]
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// --- Randomness ---

// FastRand is a xorshift64 generator
// Not safe for concurrent use; each simulation owns its own instance
type FastRand struct {
	state uint64
}

// NewFastRand seeds the generator; the seed is scrambled with splitmix64
// so small sequential seeds do not produce correlated early output
func NewFastRand(seed uint64) *FastRand {
	seed += 0x9e3779b97f4a7c15
	seed = (seed ^ (seed >> 30)) * 0xbf58476d1ce4e5b9
	seed = (seed ^ (seed >> 27)) * 0x94d049bb133111eb
	seed ^= seed >> 31
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Float64 returns a uniform value in [0, 1) using the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}

// Range returns a uniform value in [lo, hi)
func (r *FastRand) Range(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Centered returns a uniform value in [-extent/2, extent/2)
func (r *FastRand) Centered(extent float64) float64 {
	return (r.Float64() - 0.5) * extent
}

// Box returns a uniform point inside an axis-aligned box centered on origin
func (r *FastRand) Box(ex, ey, ez float64) Vec3F {
	return Vec3F{r.Centered(ex), r.Centered(ey), r.Centered(ez)}
}
