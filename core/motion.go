package core

// Gesture is the discrete hand pose vocabulary
type Gesture uint8

const (
	GestureNone Gesture = iota
	GestureOpenHand
	GestureClosedFist
)

// String returns the wire/HUD name of the gesture
func (g Gesture) String() string {
	switch g {
	case GestureOpenHand:
		return "OPEN_HAND"
	case GestureClosedFist:
		return "CLOSED_FIST"
	default:
		return "NONE"
	}
}

// MarshalText encodes the gesture by name for JSON payloads
func (g Gesture) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// MotionSample is one frame of classified hand input
// X and Y are in [-1, 1] scene orientation, Intensity in [0, 1]
type MotionSample struct {
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Intensity float64 `json:"intensity"`
	Gesture   Gesture `json:"gesture"`
}

// Active reports whether the sample carries a recognized gesture
func (m MotionSample) Active() bool {
	return m.Gesture != GestureNone
}
