package parameter

// Gold dust swarm
const (
	SwarmCount = 800

	// Initial spawn box (full edge lengths)
	SwarmSpawnX = 20.0
	SwarmSpawnY = 25.0
	SwarmSpawnZ = 20.0

	// Home anchor box (full edge lengths)
	SwarmHomeX = 15.0
	SwarmHomeY = 20.0
	SwarmHomeZ = 15.0

	SwarmSizeMin  = 0.5
	SwarmSizeSpan = 2.0

	// SwarmExplodeRadius: particles closer to origin than this get pushed outward in CHAOS
	SwarmExplodeRadius = 15.0
	// SwarmExplodeGain is the outward impulse per unit of position per frame
	SwarmExplodeGain = 0.002
	// SwarmJitter is the full width of the per-axis random impulse per frame
	SwarmJitter = 0.01

	// SwarmCaptureRadius bounds the attraction pull in FORMED
	SwarmCaptureRadius = 15.0
	// Attraction strengths for passive pointer hover and active gesture
	SwarmPointerStrength = 0.01
	SwarmGestureStrength = 0.04
	// SwarmAttractGain multiplies strength into a per-frame velocity gain
	SwarmAttractGain = 0.02
	// SwarmHomePull is the per-frame spring toward home
	SwarmHomePull = 0.001

	// SwarmDamping is velocity retention per reference frame
	SwarmDamping = 0.95
	// SwarmBound: any component beyond this respawns the particle at home
	SwarmBound = 40.0

	// SwarmGestureReach scales gesture targets past the viewport edge
	SwarmGestureReach = 1.5
)

// Snowfall
const (
	SnowCount    = 8000
	SnowExtentX  = 60.0
	SnowExtentY  = 60.0
	SnowExtentZ  = 40.0
	SnowSpeedMin = 0.02
	SnowSpeedMax = 0.10
	SnowWindAmp  = 0.005
	// SnowWindScale maps particle index into noise space
	SnowWindScale = 0.1
)
