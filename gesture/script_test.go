package gesture

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/evergreen/core"
)

func TestParseScript(t *testing.T) {
	steps, err := ParseScript("open@0.6,-0.2:2s fist:1500ms; idle:1s\nnone:250ms")
	if err != nil {
		t.Fatal(err)
	}
	if len(steps) != 4 {
		t.Fatalf("Expected 4 steps, got %d", len(steps))
	}
	if steps[0].Gesture != core.GestureOpenHand || steps[0].X != 0.6 || steps[0].Y != -0.2 || steps[0].Hold != 2*time.Second {
		t.Errorf("Step 0 = %+v", steps[0])
	}
	if steps[1].Gesture != core.GestureClosedFist || steps[1].Hold != 1500*time.Millisecond {
		t.Errorf("Step 1 = %+v", steps[1])
	}
	if steps[2].Gesture != core.GestureNone || steps[2].Absent {
		t.Errorf("Step 2 = %+v", steps[2])
	}
	if !steps[3].Absent {
		t.Errorf("Step 3 should have no hand")
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, s := range []string{"", "open", "wave:1s", "open:-1s", "open@2,0:1s", "open@0.1:1s", "fist:abc"} {
		if _, err := ParseScript(s); err == nil {
			t.Errorf("ParseScript(%q) accepted", s)
		}
	}
}

func TestSynthesizeHandClassifies(t *testing.T) {
	c := DefaultClassifier()
	for _, g := range []core.Gesture{core.GestureOpenHand, core.GestureClosedFist, core.GestureNone} {
		m := c.Classify(SynthesizeHand(g, 0.4, -0.6))
		if m.Gesture != g {
			t.Errorf("Synthesized %v classified as %v", g, m.Gesture)
		}
		if math.Abs(m.X-0.4) > eps || math.Abs(m.Y+0.6) > eps {
			t.Errorf("Synthesized %v at (%f,%f), want (0.4,-0.6)", g, m.X, m.Y)
		}
	}
}

func TestScriptSourceEndsAndCloses(t *testing.T) {
	steps := []ScriptStep{
		{Gesture: core.GestureOpenHand, Hold: 5 * time.Millisecond},
		{Absent: true, Hold: 5 * time.Millisecond},
	}
	src := NewScriptSource(steps, time.Millisecond, false)

	var frames int
	timeout := time.After(2 * time.Second)
	for done := false; !done; {
		select {
		case _, ok := <-src.Frames():
			if !ok {
				done = true
				break
			}
			frames++
		case <-timeout:
			t.Fatal("script did not finish")
		}
	}
	if frames == 0 {
		t.Error("No frames emitted")
	}
	if err := src.Close(); err != nil {
		t.Error(err)
	}
}

func TestScriptSourceLoopCloses(t *testing.T) {
	src := NewScriptSource([]ScriptStep{{Gesture: core.GestureOpenHand, Hold: time.Millisecond}}, time.Millisecond, true)
	<-src.Frames()
	src.Close()
	// Channel drains and closes after Close
	for range src.Frames() {
	}
}

func TestStepAt(t *testing.T) {
	steps, err := ParseScript("open:1s fist:500ms none:500ms")
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		at     time.Duration
		loop   bool
		want   core.Gesture
		absent bool
		ok     bool
	}{
		{0, false, core.GestureOpenHand, false, true},
		{999 * time.Millisecond, false, core.GestureOpenHand, false, true},
		{time.Second, false, core.GestureClosedFist, false, true},
		{1750 * time.Millisecond, false, core.GestureNone, true, true},
		{2 * time.Second, false, core.GestureNone, false, false},
		{2*time.Second + 1200*time.Millisecond, true, core.GestureClosedFist, false, true},
		{-time.Second, true, core.GestureNone, false, false},
	}
	for _, tc := range tests {
		st, ok := StepAt(steps, tc.at, tc.loop)
		if ok != tc.ok {
			t.Errorf("StepAt(%v, loop=%v) ok = %v, want %v", tc.at, tc.loop, ok, tc.ok)
			continue
		}
		if ok && (st.Gesture != tc.want || st.Absent != tc.absent) {
			t.Errorf("StepAt(%v) = %+v, want %v absent=%v", tc.at, st, tc.want, tc.absent)
		}
	}
	if _, ok := StepAt(nil, 0, true); ok {
		t.Error("empty script returned a step")
	}
}
