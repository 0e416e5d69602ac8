package core

// Regime is the process-wide visual state every morph group chases
type Regime uint8

const (
	// RegimeFormed is the assembled tree, progress target 1
	RegimeFormed Regime = iota
	// RegimeChaos is the scattered cloud, progress target 0
	RegimeChaos
)

// String returns the regime name as shown in HUD and status metrics
func (r Regime) String() string {
	switch r {
	case RegimeFormed:
		return "FORMED"
	case RegimeChaos:
		return "CHAOS"
	default:
		return "UNKNOWN"
	}
}

// Toggle returns the opposite regime
func (r Regime) Toggle() Regime {
	if r == RegimeFormed {
		return RegimeChaos
	}
	return RegimeFormed
}

// Target returns the progress value this regime drives toward
func (r Regime) Target() float64 {
	if r == RegimeFormed {
		return 1
	}
	return 0
}
