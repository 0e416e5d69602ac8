package gesture

import (
	"fmt"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
)

var fingerTips = [...]int{
	parameter.LandmarkIndex,
	parameter.LandmarkMiddle,
	parameter.LandmarkRing,
	parameter.LandmarkPinky,
}

// Classifier maps one hand to a MotionSample
// Stateless apart from the last-gesture memo; not safe for concurrent use
type Classifier struct {
	closed  float64
	open    float64
	last    core.Gesture
	changed bool
}

// NewClassifier requires 0 < closed <= open
func NewClassifier(closed, open float64) (*Classifier, error) {
	if closed <= 0 || open < closed {
		return nil, fmt.Errorf("%w: closed=%g open=%g", ErrThresholds, closed, open)
	}
	return &Classifier{closed: closed, open: open}, nil
}

// DefaultClassifier uses the reference thresholds
func DefaultClassifier() *Classifier {
	return &Classifier{
		closed: parameter.GestureClosedThreshold,
		open:   parameter.GestureOpenThreshold,
	}
}

// Classify derives position from the palm and the gesture from finger spread
// Fewer than a full hand of landmarks is treated as no hand
func (c *Classifier) Classify(hand []Landmark) core.MotionSample {
	var m core.MotionSample
	if len(hand) >= parameter.LandmarkCount {
		palm := hand[parameter.LandmarkPalm]

		// Mirror x for a selfie camera, flip y to scene up
		m.X = (1-palm.X)*2 - 1
		m.Y = -(palm.Y*2 - 1)

		switch spread := AverageSpread(hand); {
		case spread < c.closed:
			m.Gesture = core.GestureClosedFist
		case spread > c.open:
			m.Gesture = core.GestureOpenHand
			m.Intensity = 1
		}
	}

	c.changed = m.Gesture != c.last
	c.last = m.Gesture
	return m
}

// Changed reports whether the last Classify produced a different gesture than the one before
func (c *Classifier) Changed() bool {
	return c.changed
}

// Last returns the most recent gesture
func (c *Classifier) Last() core.Gesture {
	return c.last
}

// AverageSpread is the mean 2D wrist to fingertip distance
// The hand must carry a full landmark set
func AverageSpread(hand []Landmark) float64 {
	wrist := hand[parameter.LandmarkWrist]
	var total float64
	for _, idx := range fingerTips {
		total += dist2D(hand[idx], wrist)
	}
	return total / float64(len(fingerTips))
}
