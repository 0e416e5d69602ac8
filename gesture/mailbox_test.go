package gesture

import (
	"sync"
	"testing"

	"github.com/lixenwraith/evergreen/core"
)

func TestMailboxLatestWins(t *testing.T) {
	b := NewMailbox()
	if _, ok := b.Latest(); ok {
		t.Fatal("Empty mailbox reported a sample")
	}

	b.Publish(core.MotionSample{X: 0.1, Gesture: core.GestureOpenHand})
	b.Publish(core.MotionSample{X: 0.2, Gesture: core.GestureClosedFist})

	m, ok := b.Latest()
	if !ok || m.X != 0.2 || m.Gesture != core.GestureClosedFist {
		t.Errorf("Expected newest sample, got %+v", m)
	}
	// Reading does not consume
	if again, _ := b.Latest(); again != m {
		t.Error("Latest consumed the sample")
	}
	if b.Seq() != 2 {
		t.Errorf("Seq = %d, want 2", b.Seq())
	}
}

func TestMailboxClose(t *testing.T) {
	b := NewMailbox()
	b.Publish(core.MotionSample{X: 0.5})
	b.Close()

	if b.Publish(core.MotionSample{X: 0.9}) {
		t.Error("Publish after Close accepted")
	}
	if m, _ := b.Latest(); m.X != 0.5 {
		t.Errorf("Last sample lost after close: %+v", m)
	}
}

func TestMailboxConcurrent(t *testing.T) {
	b := NewMailbox()
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			b.Publish(core.MotionSample{X: float64(i) / 1000})
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 1000; i++ {
			if m, ok := b.Latest(); ok && (m.X < 0 || m.X >= 1) {
				t.Errorf("Torn read: %+v", m)
				return
			}
		}
	}()
	wg.Wait()
}
