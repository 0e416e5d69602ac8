package gesture

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/status"
)

// Tracker classifies frames from a Source on its own goroutine and publishes
// the results to a Mailbox
type Tracker struct {
	src    Source
	cls    *Classifier
	box    *Mailbox
	logger *log.Logger

	gestureLast *status.AtomicString

	mu      sync.Mutex
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	started bool
	stopped bool
}

// NewTracker wires a source to a mailbox; reg and logger may be nil
func NewTracker(src Source, cls *Classifier, box *Mailbox, reg *status.Registry, logger *log.Logger) *Tracker {
	if cls == nil {
		cls = DefaultClassifier()
	}
	if logger == nil {
		logger = log.Default()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	return &Tracker{
		src:         src,
		cls:         cls,
		box:         box,
		logger:      logger.WithPrefix("gesture"),
		gestureLast: reg.Strings.Get(status.KeyGestureLast),
	}
}

// Name implements service.Service
func (t *Tracker) Name() string {
	return "gesture"
}

// Dependencies implements service.Service
func (t *Tracker) Dependencies() []string {
	return nil
}

// Optional implements service.Optional; pointer and toggle control keep working without it
func (t *Tracker) Optional() bool {
	return true
}

// Init implements service.Service; a tracker without a source is unavailable
func (t *Tracker) Init(args ...any) error {
	if t.src == nil {
		return ErrUnavailable
	}
	return nil
}

// Start launches the classify loop; it runs until ctx ends, the source
// closes, or Stop is called
func (t *Tracker) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	switch {
	case t.src == nil:
		return ErrUnavailable
	case t.stopped:
		return ErrClosed
	case t.started:
		return nil
	}

	ctx, t.cancel = context.WithCancel(ctx)
	t.started = true
	t.gestureLast.Store(core.GestureNone.String())

	t.wg.Add(1)
	core.Go(func() {
		defer t.wg.Done()
		t.loop(ctx)
	})
	return nil
}

func (t *Tracker) loop(ctx context.Context) {
	frames := t.src.Frames()
	for {
		select {
		case <-ctx.Done():
			return
		case f, ok := <-frames:
			if !ok {
				t.logger.Warn("landmark source ended")
				t.box.Publish(core.MotionSample{})
				return
			}
			if err := f.Validate(); err != nil {
				t.logger.Debug("dropping frame", "err", err)
				f.Landmarks = nil
			}
			m := t.cls.Classify(f.Landmarks)
			if !t.box.Publish(m) {
				return
			}
			if t.cls.Changed() {
				t.gestureLast.Store(m.Gesture.String())
				t.logger.Debug("gesture changed", "gesture", m.Gesture, "x", m.X, "y", m.Y)
			}
		}
	}
}

// Stop cancels the loop, waits for it, then closes the source and mailbox
// Nothing is published after Stop returns; safe to call more than once
func (t *Tracker) Stop() error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return nil
	}
	t.stopped = true
	cancel := t.cancel
	t.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	t.wg.Wait()

	var err error
	if t.src != nil {
		err = t.src.Close()
	}
	if t.box != nil {
		// Release the hand so the last gesture does not outlive the tracker
		t.box.Publish(core.MotionSample{})
		t.box.Close()
	}
	return err
}
