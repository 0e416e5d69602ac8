package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100
	// AudioBufferDuration determines latency of the speaker
	AudioBufferDuration = 100 * time.Millisecond
)

// Cue shapes
const (
	ChimeDuration = 1200 * time.Millisecond
	ChimeFreq     = 1046.5 // C6
	ChimeDecay    = 3.5

	WhooshDuration = 700 * time.Millisecond
	WhooshFreqLow  = 90.0
	WhooshFreqHigh = 320.0

	TickDuration = 40 * time.Millisecond
	TickFreq     = 1760.0
)
