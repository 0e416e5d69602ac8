package gesture

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/parameter"
)

// Synthetic hand geometry
const (
	scriptWristY      = 0.85
	scriptOpenSpread  = 0.45
	scriptFistSpread  = 0.15
	scriptIdleSpread  = 0.30
	scriptFingerSweep = math.Pi / 3
)

// ScriptStep holds one pose for a duration
// Absent is a step with no hand in frame
type ScriptStep struct {
	Gesture core.Gesture
	X, Y    float64
	Absent  bool
	Hold    time.Duration
}

// ParseScript reads steps of the form pose[@x,y]:duration separated by
// whitespace or semicolons, where pose is open, fist, idle or none (no hand)
//
//	open@0.6,0:2s fist:1500ms none:1s
func ParseScript(s string) ([]ScriptStep, error) {
	tokens := strings.FieldsFunc(s, func(r rune) bool {
		return r == ';' || unicode.IsSpace(r)
	})

	steps := make([]ScriptStep, 0, len(tokens))
	for _, tok := range tokens {
		st, err := parseStep(tok)
		if err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil, errors.New("empty gesture script")
	}
	return steps, nil
}

func parseStep(tok string) (ScriptStep, error) {
	var st ScriptStep
	head, dur, ok := strings.Cut(tok, ":")
	if !ok {
		return st, fmt.Errorf("script step %q: missing duration", tok)
	}
	hold, err := time.ParseDuration(dur)
	if err != nil || hold <= 0 {
		return st, fmt.Errorf("script step %q: bad duration", tok)
	}
	st.Hold = hold

	pose, coords, hasCoords := strings.Cut(head, "@")
	switch strings.ToLower(pose) {
	case "open":
		st.Gesture = core.GestureOpenHand
	case "fist":
		st.Gesture = core.GestureClosedFist
	case "idle":
		st.Gesture = core.GestureNone
	case "none":
		st.Absent = true
	default:
		return st, fmt.Errorf("script step %q: unknown pose %q", tok, pose)
	}

	if hasCoords {
		xs, ys, ok := strings.Cut(coords, ",")
		if !ok {
			return st, fmt.Errorf("script step %q: position needs x,y", tok)
		}
		if st.X, err = strconv.ParseFloat(xs, 64); err != nil {
			return st, fmt.Errorf("script step %q: %w", tok, err)
		}
		if st.Y, err = strconv.ParseFloat(ys, 64); err != nil {
			return st, fmt.Errorf("script step %q: %w", tok, err)
		}
		if math.Abs(st.X) > 1 || math.Abs(st.Y) > 1 {
			return st, fmt.Errorf("script step %q: position outside [-1,1]", tok)
		}
	}
	return st, nil
}

// SynthesizeHand builds a full landmark set whose palm maps to (x, y) and whose
// wrist-to-tip spread classifies as g
func SynthesizeHand(g core.Gesture, x, y float64) []Landmark {
	spread := scriptIdleSpread
	switch g {
	case core.GestureOpenHand:
		spread = scriptOpenSpread
	case core.GestureClosedFist:
		spread = scriptFistSpread
	}

	palm := Landmark{X: 1 - (x+1)/2, Y: (1 - y) / 2}
	wrist := Landmark{X: palm.X, Y: palm.Y + 0.1}

	hand := make([]Landmark, parameter.LandmarkCount)
	for i := range hand {
		hand[i] = palm
	}
	hand[parameter.LandmarkWrist] = wrist
	for i, idx := range fingerTips {
		// Fan the tips upward from the wrist at equal distance
		a := -math.Pi/2 + (float64(i)-1.5)*scriptFingerSweep/3
		s, c := math.Sincos(a)
		hand[idx] = Landmark{X: wrist.X + c*spread, Y: wrist.Y + s*spread}
	}
	return hand
}

// StepAt returns the step active at offset into the script
// ok is false once a non-looping script has run out or the script has no duration
func StepAt(steps []ScriptStep, offset time.Duration, loop bool) (ScriptStep, bool) {
	var total time.Duration
	for _, st := range steps {
		total += st.Hold
	}
	if total <= 0 || offset < 0 {
		return ScriptStep{}, false
	}
	if offset >= total {
		if !loop {
			return ScriptStep{}, false
		}
		offset %= total
	}
	for _, st := range steps {
		if offset < st.Hold {
			return st, true
		}
		offset -= st.Hold
	}
	return ScriptStep{}, false
}

// ScriptSource replays steps as landmark frames at a fixed rate
type ScriptSource struct {
	steps    []ScriptStep
	interval time.Duration
	loop     bool

	out  chan Frame
	done chan struct{}
	once sync.Once
	wg   sync.WaitGroup
}

// NewScriptSource starts emitting immediately; loop repeats the script until Close
func NewScriptSource(steps []ScriptStep, interval time.Duration, loop bool) *ScriptSource {
	if interval <= 0 {
		interval = time.Second / 30
	}
	s := &ScriptSource{
		steps:    steps,
		interval: interval,
		loop:     loop,
		out:      make(chan Frame, 1),
		done:     make(chan struct{}),
	}
	s.wg.Add(1)
	go s.run()
	return s
}

func (s *ScriptSource) run() {
	defer s.wg.Done()
	defer close(s.out)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		for _, st := range s.steps {
			if !s.hold(st, ticker.C) {
				return
			}
		}
		if !s.loop {
			return
		}
	}
}

// hold emits one step's frames until its duration elapses; false means closed
func (s *ScriptSource) hold(st ScriptStep, tick <-chan time.Time) bool {
	var hand []Landmark
	if !st.Absent {
		hand = SynthesizeHand(st.Gesture, st.X, st.Y)
	}
	deadline := time.Now().Add(st.Hold)
	for {
		select {
		case <-s.done:
			return false
		case now := <-tick:
			offer(s.out, Frame{Landmarks: hand, At: now})
			if !now.Before(deadline) {
				return true
			}
		}
	}
}

func (s *ScriptSource) Frames() <-chan Frame {
	return s.out
}

// Close stops the replay and waits for the emitter to exit
func (s *ScriptSource) Close() error {
	s.once.Do(func() { close(s.done) })
	s.wg.Wait()
	return nil
}
