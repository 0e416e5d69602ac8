package morph

import (
	"math"

	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Drift is the secondary motion added on top of the blended position
// Wind sways the formed tree (scaled by progress); Float drifts scattered
// elements (scaled by 1-progress) and switches off at FloatCeiling
type Drift struct {
	WindFreqX, WindFreqZ float64
	WindAmpX, WindAmpZ   float64
	WindHeightPhase      float64

	FloatFreq    float64
	FloatAmp     float64
	FloatSeedX   float64
	FloatSeedY   float64
	FloatCeiling float64
}

// FoliageDrift is the breathing/floating profile of the foliage cloud
var FoliageDrift = Drift{
	WindFreqX:       parameter.WindFreqX,
	WindFreqZ:       parameter.WindFreqZ,
	WindAmpX:        parameter.WindAmpX,
	WindAmpZ:        parameter.WindAmpZ,
	WindHeightPhase: parameter.WindHeightPhase,
	FloatFreq:       parameter.FloatFreq,
	FloatAmp:        parameter.FloatAmp,
	FloatSeedX:      parameter.FloatSeedX,
	FloatSeedY:      parameter.FloatSeedY,
	FloatCeiling:    parameter.FloatCeiling,
}

// DriftFor returns the category's drift profile; ornaments are rigid
func DriftFor(c layout.Category) Drift {
	if c.IsPointCloud() {
		return FoliageDrift
	}
	return Drift{}
}

// Zero reports whether the profile adds no motion
func (d Drift) Zero() bool {
	return d.WindAmpX == 0 && d.WindAmpZ == 0 && d.FloatAmp == 0
}

// apply offsets pos in place for progress p at elapsed seconds
func (d Drift) apply(pos *vmath.Vec3F, seed, p, elapsed float64) {
	if d.Zero() {
		return
	}

	phase := pos.Y * d.WindHeightPhase
	pos.X += math.Sin(elapsed*d.WindFreqX+phase) * d.WindAmpX * p
	pos.Z += math.Cos(elapsed*d.WindFreqZ+phase) * d.WindAmpZ * p

	if p < d.FloatCeiling {
		t := elapsed * d.FloatFreq
		inv := 1 - p
		pos.Y += math.Sin(t+seed*d.FloatSeedY) * d.FloatAmp * inv
		pos.X += math.Cos(t+seed*d.FloatSeedX) * d.FloatAmp * inv
	}
}
