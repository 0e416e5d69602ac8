package audio

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/gopxl/beep"

	"github.com/lixenwraith/evergreen/status"
)

// fakeOutput records the played streamer so tests can pull samples
type fakeOutput struct {
	mu      sync.Mutex
	initErr error
	stream  beep.Streamer
	inits   int
	closed  bool
}

func (f *fakeOutput) Init(rate beep.SampleRate, n int) error {
	f.inits++
	return f.initErr
}
func (f *fakeOutput) Play(s beep.Streamer) { f.stream = s }
func (f *fakeOutput) Lock()                { f.mu.Lock() }
func (f *fakeOutput) Unlock()              { f.mu.Unlock() }
func (f *fakeOutput) Close()               { f.closed = true }

// pull streams n samples and returns the peak amplitude
func (f *fakeOutput) pull(n int) float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	buf := make([][2]float64, n)
	f.stream.Stream(buf)
	peak := 0.0
	for _, s := range buf {
		peak = max(peak, s[0], -s[0])
	}
	return peak
}

func startedManager(t *testing.T, opts Options) (*SoundManager, *fakeOutput, *status.Registry) {
	t.Helper()
	out := &fakeOutput{}
	opts.Enabled = true
	opts.Output = out
	reg := status.NewRegistry()
	sm := NewSoundManager(opts, reg, nil)
	if err := sm.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	if err := sm.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	return sm, out, reg
}

func TestSoundManagerGracefulDegradation(t *testing.T) {
	sm := NewSoundManager(Options{Output: &fakeOutput{}}, nil, nil)

	if err := sm.Init(); !errors.Is(err, ErrDisabled) {
		t.Fatalf("Init on disabled = %v, want ErrDisabled", err)
	}
	if sm.Play(CueChime) {
		t.Error("Play succeeded before Start")
	}
	if err := sm.Stop(); err != nil {
		t.Errorf("Stop before Start: %v", err)
	}
	if !sm.Optional() {
		t.Error("audio must be optional")
	}
}

func TestSoundManagerStartFailure(t *testing.T) {
	out := &fakeOutput{initErr: errors.New("no device")}
	sm := NewSoundManager(Options{Enabled: true, Output: out}, nil, nil)
	if err := sm.Start(context.Background()); err == nil {
		t.Fatal("expected device error")
	}
	if sm.Ready() || sm.Play(CueTick) {
		t.Error("manager usable after failed start")
	}
}

func TestSoundManagerPlayMixes(t *testing.T) {
	sm, out, reg := startedManager(t, Options{})

	if !reg.Bools.Get(status.KeyAudioReady).Load() {
		t.Error("ready metric not set")
	}
	if p := out.pull(512); p != 0 {
		t.Errorf("idle mixer peak = %v, want silence", p)
	}
	if !sm.Play(CueChime) {
		t.Fatal("Play refused")
	}
	if sm.Active() != 1 {
		t.Errorf("active = %d", sm.Active())
	}
	if p := out.pull(2048); p == 0 {
		t.Error("chime produced silence")
	}
	if sm.Play(Cue(99)) {
		t.Error("unknown cue played")
	}
}

func TestSoundManagerDoubleStart(t *testing.T) {
	sm, out, _ := startedManager(t, Options{})
	if err := sm.Start(context.Background()); err != nil {
		t.Fatalf("second Start: %v", err)
	}
	if out.inits != 1 {
		t.Errorf("device opened %d times", out.inits)
	}
}

func TestSoundManagerMute(t *testing.T) {
	sm, out, reg := startedManager(t, Options{})
	sm.Play(CueScatter)

	if !sm.ToggleMute() {
		t.Fatal("ToggleMute should report muted")
	}
	if !reg.Bools.Get(status.KeyAudioMuted).Load() {
		t.Error("muted metric not set")
	}
	if sm.Active() != 0 {
		t.Error("mute kept cues playing")
	}
	if sm.Play(CueChime) {
		t.Error("played while muted")
	}
	if p := out.pull(512); p != 0 {
		t.Errorf("muted peak = %v", p)
	}
	if sm.ToggleMute() {
		t.Error("second toggle should unmute")
	}
}

func TestSoundManagerInitMuteArg(t *testing.T) {
	sm := NewSoundManager(Options{Enabled: true, Output: &fakeOutput{}}, nil, nil)
	if err := sm.Init(true); err != nil {
		t.Fatal(err)
	}
	if !sm.Muted() {
		t.Error("Init(true) should mute")
	}
}

func TestSoundManagerStopIdempotent(t *testing.T) {
	sm, out, reg := startedManager(t, Options{})
	sm.Play(CueGather)
	if err := sm.Stop(); err != nil {
		t.Fatal(err)
	}
	if err := sm.Stop(); err != nil {
		t.Fatal(err)
	}
	if !out.closed {
		t.Error("output not closed")
	}
	if reg.Bools.Get(status.KeyAudioReady).Load() {
		t.Error("ready metric still set")
	}
	if sm.Play(CueChime) {
		t.Error("played after Stop")
	}
}

func TestSoundManagerVolume(t *testing.T) {
	loud, loudOut, _ := startedManager(t, Options{Volume: 0})
	quiet, quietOut, _ := startedManager(t, Options{Volume: -2})
	loud.Play(CueTick)
	quiet.Play(CueTick)

	lp, qp := loudOut.pull(256), quietOut.pull(256)
	if qp >= lp {
		t.Errorf("volume -2 peak %v not below unity peak %v", qp, lp)
	}
}
