package gesture

import (
	"sync/atomic"

	"github.com/lixenwraith/evergreen/core"
)

// Mailbox is a single-slot latest-wins handoff from the tracker goroutine to
// the frame loop; neither side blocks
type Mailbox struct {
	slot   atomic.Pointer[core.MotionSample]
	closed atomic.Bool
	seq    atomic.Uint64
}

func NewMailbox() *Mailbox {
	return &Mailbox{}
}

// Publish replaces the pending sample; returns false once closed
func (b *Mailbox) Publish(m core.MotionSample) bool {
	if b.closed.Load() {
		return false
	}
	b.slot.Store(&m)
	b.seq.Add(1)
	return true
}

// Latest returns the most recent sample, or a zero sample and false if none was published
func (b *Mailbox) Latest() (core.MotionSample, bool) {
	if p := b.slot.Load(); p != nil {
		return *p, true
	}
	return core.MotionSample{}, false
}

// Seq counts accepted publications
func (b *Mailbox) Seq() uint64 {
	return b.seq.Load()
}

// Close rejects further publications; the last sample stays readable
func (b *Mailbox) Close() {
	b.closed.Store(true)
}

func (b *Mailbox) Closed() bool {
	return b.closed.Load()
}
