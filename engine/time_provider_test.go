package engine

import (
	"testing"
	"time"
)

func TestSystemTimeProvider(t *testing.T) {
	provider := NewSystemTimeProvider()

	t1 := provider.Now()
	time.Sleep(10 * time.Millisecond)
	t2 := provider.Now()

	if !t2.After(t1) {
		t.Errorf("Expected t2 to be after t1, but got t1=%v, t2=%v", t1, t2)
	}
	if diff := t2.Sub(t1); diff < 10*time.Millisecond {
		t.Errorf("Expected at least 10ms difference, got %v", diff)
	}
}

func TestFrameClock(t *testing.T) {
	epoch := time.Date(2025, 12, 24, 0, 0, 0, 0, time.UTC)
	clock := NewFrameClock(epoch)

	if now := clock.Now(); !now.Equal(epoch) {
		t.Errorf("Expected initial time to be %v, got %v", epoch, now)
	}

	// Quarter-second frames are exact in nanoseconds
	for i := 0; i < 8; i++ {
		clock.Step(0.25)
	}
	if want := epoch.Add(2 * time.Second); !clock.Now().Equal(want) {
		t.Errorf("Expected time after 8 steps to be %v, got %v", want, clock.Now())
	}
	if clock.Frames() != 8 {
		t.Errorf("Frames = %d, want 8", clock.Frames())
	}

	// Zero and negative frames count but hold time
	clock.Step(0)
	clock.Step(-1)
	if want := epoch.Add(2 * time.Second); !clock.Now().Equal(want) {
		t.Errorf("time moved on a zero frame: %v", clock.Now())
	}

	clock.Advance(1500 * time.Millisecond)
	if want := epoch.Add(3500 * time.Millisecond); !clock.Now().Equal(want) {
		t.Errorf("Expected time after Advance to be %v, got %v", want, clock.Now())
	}
	if clock.Frames() != 10 {
		t.Errorf("Advance counted a frame: %d", clock.Frames())
	}
}

func TestPausableClock(t *testing.T) {
	start := time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC)
	mock := NewFrameClock(start)
	clock := NewPausableClock(mock)

	mock.Advance(2 * time.Second)
	if got := clock.Elapsed(); got != 2*time.Second {
		t.Fatalf("Elapsed = %v, want 2s", got)
	}

	if !clock.Toggle() {
		t.Fatal("Toggle should report paused")
	}
	frozen := clock.Now()
	mock.Advance(3 * time.Second)
	if !clock.Now().Equal(frozen) {
		t.Errorf("scene time moved while paused: %v -> %v", frozen, clock.Now())
	}
	if got := clock.TotalPauseDuration(); got != 3*time.Second {
		t.Errorf("TotalPauseDuration while paused = %v, want 3s", got)
	}

	clock.Pause() // no-op
	if clock.Toggle() {
		t.Fatal("Toggle should report running")
	}
	mock.Advance(time.Second)
	if got := clock.Elapsed(); got != 3*time.Second {
		t.Errorf("Elapsed after resume = %v, want 3s", got)
	}
	if got := clock.RealTime(); !got.Equal(start.Add(6 * time.Second)) {
		t.Errorf("RealTime = %v, want source time", got)
	}
}

func TestPausableClockNilSource(t *testing.T) {
	clock := NewPausableClock(nil)
	if clock.IsPaused() {
		t.Fatal("new clock should be running")
	}
	if clock.Elapsed() < 0 {
		t.Fatal("negative elapsed")
	}
}
