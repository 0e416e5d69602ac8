// Package audio plays short synthesized cues for regime changes and gift
// clicks through beep's speaker. A missing audio device degrades to silence.
package audio

import "errors"

// Cue identifies a synthesized sound
type Cue int

const (
	// CueChime acknowledges a gift click
	CueChime Cue = iota
	// CueScatter sweeps upward when the tree comes apart
	CueScatter
	// CueGather sweeps downward when the tree forms
	CueGather
	// CueTick is a short click for mode switches
	CueTick

	cueCount
)

var cueNames = [cueCount]string{
	CueChime:   "chime",
	CueScatter: "scatter",
	CueGather:  "gather",
	CueTick:    "tick",
}

func (c Cue) String() string {
	if c < 0 || c >= cueCount {
		return "unknown"
	}
	return cueNames[c]
}

// Sentinel errors
var (
	ErrNotStarted = errors.New("audio not started")
	ErrUnknownCue = errors.New("unknown cue")
)
