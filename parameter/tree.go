package parameter

import "math"

// Foliage cone (formed layout of the point cloud)
const (
	// FoliageHeight is the cone height in world units, centered on y=0
	FoliageHeight = 12.0
	// FoliageBaseRadius is the cone radius at the base
	FoliageBaseRadius = 4.2
	// FoliagePointSize is the formed point size; chaos shrinks it to 60%
	FoliagePointSize = 5.0
	// FoliageCount is the reference point count
	FoliageCount = 30000
)

// Ornament cone sits slightly inside the foliage
const (
	OrnamentHeight     = 11.0
	OrnamentBaseRadius = 3.8

	// OrnamentDepthJitter is the full width of the radial noise band around the surface offset
	OrnamentDepthJitter = 0.5

	// Surface offsets as a fraction of the local cone radius
	GiftSurfaceOffset  = 0.7
	BallSurfaceOffset  = 0.9
	LightSurfaceOffset = 0.9

	// Scale ranges [min, min+span)
	GiftScaleMin   = 0.3
	GiftScaleSpan  = 0.5
	BallScaleMin   = 0.15
	BallScaleSpan  = 0.35
	LightScaleMin  = 0.05
	LightScaleSpan = 0.05
)

// ChaosExtent is the edge length of the scatter cube, about 3x the formed extent
const ChaosExtent = 35.0

// Scale blend: scale = target * (progress*ScaleFormedShare + ScaleChaosShare)
const (
	ScaleFormedShare = 0.4
	ScaleChaosShare  = 0.6
)

// Chaos spin rates (rad/s) per axis while scattered
const (
	ChaosSpinX = 0.2
	ChaosSpinY = 0.1
	ChaosSpinZ = 0.0
)

// Foliage secondary motion
const (
	// Wind/breathing sway while formed, scaled by progress
	WindFreqX = 1.5
	WindFreqZ = 1.2
	WindAmpX  = 0.08
	WindAmpZ  = 0.05
	// WindHeightPhase couples sway phase to height
	WindHeightPhase = 0.5

	// Floating drift while scattered, scaled by (1 - progress)
	FloatFreq    = 0.3
	FloatAmp     = 0.5
	FloatSeedY   = 10.0
	FloatSeedX   = 8.0
	FloatCeiling = 0.95 // drift disabled at or above this progress
)

// Special gift (interactive element)
const (
	GiftTargetX = 2.0
	GiftTargetY = -2.5
	GiftTargetZ = 3.2
	GiftBaseYaw = math.Pi / 4
)

const (
	// GiftChaosExtent is the scatter cube edge for the gift
	GiftChaosExtent = 40.0
	GiftBobFreq     = 3.0
	GiftBobAmp      = 0.05
	GiftHoverScale  = 1.1
	GiftHoverSpin   = 2.0
	// GiftSize is the rendered box edge at scale 1
	GiftSize = 0.8
	// InteractableEpsilon is the minimum scale at which the gift is visible and clickable
	InteractableEpsilon = 1e-3
)

// Star topper
const (
	StarTopY        = 6.2
	StarChaosRadius = 5.0
	StarSpin        = 0.5
	StarWobbleFreq  = 2.0
	StarWobbleAmp   = 0.1
	StarPulseFreq   = 3.0
	StarPulseAmp    = 0.1
	StarMinScale    = 0.1
)

// Spiral garland
const (
	SpiralTurns       = 6
	SpiralHeight      = 13.0
	SpiralBaseRadius  = 5.0
	SpiralTopRadius   = 0.5
	SpiralSamples     = 256
	SpiralChaosExpand = 1.5
	SpiralSpin        = -0.3
	SpiralOpacityPow  = 3.0
	SpiralVisibleMin  = 0.01
)

// Tree group placement in world space
const (
	TreeOffsetY = -2.0
	TreeScale   = 0.85
)
