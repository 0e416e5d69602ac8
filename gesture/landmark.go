// Package gesture turns hand landmark frames into motion samples and hands
// them to the frame loop through a single-slot mailbox.
//
// Landmarks come from an external perception component (a browser hand
// tracker posting to the feed server, or a scripted replay). The classifier
// is geometric only: palm position gives the pointer, the mean wrist-to-tip
// distance separates an open hand from a fist.
package gesture

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrUnavailable reports that no landmark source could be opened
	// Callers degrade to pointer and keyboard control
	ErrUnavailable = errors.New("gesture source unavailable")
	// ErrClosed is returned by operations on a stopped source or tracker
	ErrClosed = errors.New("gesture source closed")
	// ErrThresholds reports an inverted or out of range threshold pair
	ErrThresholds = errors.New("invalid gesture thresholds")
	// ErrBadFrame reports a malformed landmark payload
	ErrBadFrame = errors.New("malformed landmark frame")
)

// Landmark is one hand keypoint in normalized image coordinates
// x grows right, y grows down, both nominally in [0, 1]
type Landmark struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Frame is the landmark set for one camera frame
// An empty or short Landmarks slice means no hand was detected
type Frame struct {
	Landmarks []Landmark `json:"landmarks"`
	At        time.Time  `json:"-"`
}

// Validate rejects non-finite coordinates
func (f Frame) Validate() error {
	for i, l := range f.Landmarks {
		if !finite(l.X) || !finite(l.Y) || !finite(l.Z) {
			return fmt.Errorf("%w: landmark %d not finite", ErrBadFrame, i)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func dist2D(a, b Landmark) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}
