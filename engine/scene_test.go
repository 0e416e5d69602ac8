package engine

import (
	"math"
	"testing"
	"time"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/gesture"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/status"
)

const frame = 1.0 / 60

func smallOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 7
	opts.SwarmCount = 50
	opts.SnowCount = 40
	opts.Layers = []Layer{
		{Name: "foliage", Category: layout.CategoryFoliage, Count: 300, Color: core.RGB{R: 47, G: 125, B: 74}},
		{Name: "ball-0", Category: layout.CategoryBall, Count: 20, Color: core.RGB{R: 255, G: 215}},
		{Name: "light-1", Category: layout.CategoryLight, Count: 30, Color: core.RGB{R: 255, G: 250, B: 230}},
	}
	return opts
}

func newTestScene(t *testing.T, box *gesture.Mailbox) *Scene {
	t.Helper()
	s, err := NewScene(smallOptions(), box, nil)
	if err != nil {
		t.Fatalf("NewScene: %v", err)
	}
	return s
}

func run(s *Scene, seconds float64) {
	for i := 0; i < int(seconds/frame); i++ {
		s.Update(frame)
	}
}

func TestOptionsFromConfigDefaults(t *testing.T) {
	opts := DefaultOptions()
	if len(opts.Layers) != 8 {
		t.Fatalf("layers = %d, want foliage plus 7 ornament layers", len(opts.Layers))
	}
	if opts.Layers[0].Category != layout.CategoryFoliage {
		t.Errorf("first layer = %v, want foliage", opts.Layers[0].Category)
	}
	if opts.Router.Acknowledge != 5*time.Second {
		t.Errorf("acknowledge = %v, want 5s", opts.Router.Acknowledge)
	}
}

func TestNewSceneStartsFormed(t *testing.T) {
	s := newTestScene(t, nil)
	if s.Regime() != core.RegimeFormed {
		t.Fatalf("initial regime = %v", s.Regime())
	}
	if s.Progress() != 1 {
		t.Errorf("initial progress = %v, want 1", s.Progress())
	}
	if len(s.Groups()) != 3 {
		t.Errorf("groups = %d", len(s.Groups()))
	}
	if !s.Gift().Interactable() {
		t.Error("gift should be interactable when formed")
	}
}

func TestNewSceneRejectsEmpty(t *testing.T) {
	if _, err := NewScene(Options{}, nil, nil); err == nil {
		t.Fatal("expected error for scene without layers")
	}
}

func TestToggleDrivesEveryGroup(t *testing.T) {
	s := newTestScene(t, nil)
	s.Router().Toggle()
	run(s, 6)

	for _, g := range s.Groups() {
		if p := g.Controller().Progress(); p > 0.01 {
			t.Errorf("group %s progress = %v after 6s of CHAOS", g.Name(), p)
		}
	}
	if s.Gift().Interactable() {
		t.Error("gift must not be interactable when scattered")
	}
	if s.ClickGift(time.Now()) {
		t.Error("click on hidden gift was accepted")
	}
	if s.Spiral().Visible() {
		t.Error("spiral visible while scattered")
	}

	s.Router().Toggle()
	run(s, 4)
	if p := s.Progress(); p < 0.99 {
		t.Errorf("progress = %v after 4s of FORMED", p)
	}
	if !s.ClickGift(time.Now()) {
		t.Error("click on visible gift was refused")
	}
}

func TestGestureFromMailbox(t *testing.T) {
	box := gesture.NewMailbox()
	s := newTestScene(t, box)
	s.SetGestureMode(true)

	box.Publish(core.MotionSample{Gesture: core.GestureOpenHand, Intensity: 1})
	s.Update(frame)
	if s.Regime() != core.RegimeChaos {
		t.Fatalf("open hand should scatter, regime = %v", s.Regime())
	}

	box.Publish(core.MotionSample{Gesture: core.GestureClosedFist})
	s.Update(frame)
	if s.Regime() != core.RegimeFormed {
		t.Fatalf("fist should form, regime = %v", s.Regime())
	}
	if s.Sample().Gesture != core.GestureClosedFist {
		t.Errorf("sample = %+v", s.Sample())
	}
}

func TestStaleGestureReleases(t *testing.T) {
	box := gesture.NewMailbox()
	s := newTestScene(t, box)
	s.SetGestureMode(true)

	box.Publish(core.MotionSample{X: 0.9, Gesture: core.GestureOpenHand, Intensity: 1})
	box.Close()
	s.Update(frame)
	if s.Regime() != core.RegimeChaos {
		t.Fatalf("open hand should scatter, regime = %v", s.Regime())
	}

	// Held within the window
	run(s, parameter.GestureStaleSeconds/2)
	if s.Sample().Gesture != core.GestureOpenHand {
		t.Fatalf("sample dropped early: %+v", s.Sample())
	}

	run(s, parameter.GestureStaleSeconds)
	if s.Sample() != (core.MotionSample{}) {
		t.Fatalf("stale sample still applied: %+v", s.Sample())
	}

	// Push stops, damping takes the velocity back toward idle
	run(s, 10)
	if v := s.Router().Velocity(); math.Abs(v) > 0.01 {
		t.Errorf("velocity = %v after the hand went away", v)
	}
	if s.Regime() != core.RegimeChaos {
		t.Errorf("regime = %v, released hand should leave it unchanged", s.Regime())
	}

	// A fresh publication is picked up again
	box2 := gesture.NewMailbox()
	s2 := newTestScene(t, box2)
	s2.SetGestureMode(true)
	box2.Publish(core.MotionSample{Gesture: core.GestureOpenHand, Intensity: 1})
	run(s2, 1)
	box2.Publish(core.MotionSample{Gesture: core.GestureClosedFist})
	s2.Update(frame)
	if s2.Regime() != core.RegimeFormed {
		t.Errorf("fresh sample ignored, regime = %v", s2.Regime())
	}
}

func TestGestureIgnoredOutsideGestureMode(t *testing.T) {
	box := gesture.NewMailbox()
	s := newTestScene(t, box)

	box.Publish(core.MotionSample{Gesture: core.GestureOpenHand, Intensity: 1})
	s.Update(frame)
	if s.Regime() != core.RegimeFormed {
		t.Fatalf("gesture applied in pointer mode, regime = %v", s.Regime())
	}
}

func TestAmbientSpinAdvancesRotation(t *testing.T) {
	s := newTestScene(t, nil)
	run(s, 1)
	if s.Rotation() <= 0 {
		t.Errorf("rotation = %v, want ambient spin", s.Rotation())
	}
}

func TestZeroDtHoldsState(t *testing.T) {
	s := newTestScene(t, nil)
	s.Router().Toggle()
	p := s.Progress()
	rot := s.Rotation()
	s.Update(0)
	if s.Progress() != p || s.Rotation() != rot {
		t.Errorf("dt=0 changed state: progress %v->%v rotation %v->%v", p, s.Progress(), rot, s.Rotation())
	}
}

func TestResizeRegeneratesOnlyOnChange(t *testing.T) {
	s := newTestScene(t, nil)
	before := s.Groups()[1]

	if err := s.Resize(1, 20); err != nil {
		t.Fatal(err)
	}
	if s.Groups()[1] != before {
		t.Error("same count regenerated the group")
	}

	if err := s.Resize(1, 35); err != nil {
		t.Fatal(err)
	}
	if got := s.Groups()[1].Len(); got != 35 {
		t.Errorf("resized len = %d, want 35", got)
	}
	if err := s.Resize(9, 10); err == nil {
		t.Error("expected out of range error")
	}
	if err := s.Resize(1, -1); err == nil {
		t.Error("expected error for negative count")
	}
}

func TestResizeFoliageKeepsProgress(t *testing.T) {
	s := newTestScene(t, nil)
	s.Router().Toggle()
	run(s, 0.5)
	p := s.Progress()

	if err := s.Resize(0, 500); err != nil {
		t.Fatal(err)
	}
	if s.Progress() != p {
		t.Errorf("progress %v -> %v across resize", p, s.Progress())
	}
	if s.Gift().Interactable() != (p > 0) {
		t.Error("gift not rebound to new foliage progress")
	}
}

func TestSceneMetrics(t *testing.T) {
	reg := status.NewRegistry()
	s, err := NewScene(smallOptions(), nil, reg)
	if err != nil {
		t.Fatal(err)
	}
	run(s, 0.5)
	s.Router().Toggle()
	s.Update(frame)

	if got := reg.Strings.Get(status.KeyRegime).Load(); got != "CHAOS" {
		t.Errorf("regime metric = %q", got)
	}
	if got := reg.Ints.Get(status.KeyFrameCount).Load(); got != s.Frames() {
		t.Errorf("frame metric = %d, want %d", got, s.Frames())
	}
	if fps := reg.Floats.Get(status.KeyFPS).Get(); fps < 59 || fps > 61 {
		t.Errorf("fps metric = %v, want about 60", fps)
	}
	if got := reg.Floats.Get(status.KeyProgress).Get(); got != s.Progress() {
		t.Errorf("progress metric = %v, want %v", got, s.Progress())
	}
}

func TestSceneUpdateDoesNotAllocate(t *testing.T) {
	s := newTestScene(t, nil)
	s.Update(frame)
	allocs := testing.AllocsPerRun(50, func() { s.Update(frame) })
	if allocs != 0 {
		t.Errorf("Update allocated %v times per frame", allocs)
	}
}
