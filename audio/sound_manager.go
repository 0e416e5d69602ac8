package audio

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/status"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// ErrDisabled is returned by Init when audio is switched off in config
var ErrDisabled = errors.New("audio disabled")

// Output is the playback device; the speaker in production
type Output interface {
	Init(rate beep.SampleRate, bufferSize int) error
	Play(s beep.Streamer)
	Lock()
	Unlock()
	Close()
}

type speakerOutput struct{}

func (speakerOutput) Init(rate beep.SampleRate, n int) error { return speaker.Init(rate, n) }
func (speakerOutput) Play(s beep.Streamer)                   { speaker.Play(s) }
func (speakerOutput) Lock()                                  { speaker.Lock() }
func (speakerOutput) Unlock()                                { speaker.Unlock() }
func (speakerOutput) Close()                                 { speaker.Close() }

// Options configure a SoundManager
type Options struct {
	Enabled bool
	// Volume in base-2 exponent units; 0 is unity, -1 half amplitude
	Volume float64
	Muted  bool
	Seed   uint64
	// Output overrides the speaker
	Output Output
}

// SoundManager mixes cues into one speaker stream
// Safe for concurrent use; Play from the frame loop never blocks on synthesis
type SoundManager struct {
	mu     sync.Mutex
	opts   Options
	out    Output
	logger *log.Logger
	cache  *cueCache

	mixer  *beep.Mixer
	volume *effects.Volume

	initialized bool
	closed      bool

	muted       atomic.Bool
	readyMetric *atomic.Bool
	mutedMetric *atomic.Bool
}

// NewSoundManager creates a manager; reg and logger may be nil
func NewSoundManager(opts Options, reg *status.Registry, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	out := opts.Output
	if out == nil {
		out = speakerOutput{}
	}
	sm := &SoundManager{
		opts:        opts,
		out:         out,
		logger:      logger.WithPrefix("audio"),
		cache:       newCueCache(opts.Seed + 1),
		mixer:       &beep.Mixer{},
		readyMetric: reg.Bools.Get(status.KeyAudioReady),
		mutedMetric: reg.Bools.Get(status.KeyAudioMuted),
	}
	sm.volume = &effects.Volume{Streamer: sm.mixer, Base: 2, Volume: opts.Volume}
	sm.setMuted(opts.Muted)
	return sm
}

// Name implements service.Service
func (sm *SoundManager) Name() string { return "audio" }

// Dependencies implements service.Service
func (sm *SoundManager) Dependencies() []string { return nil }

// Optional implements service.Optional; the scene runs silent without audio
func (sm *SoundManager) Optional() bool { return true }

// Init implements service.Service
// args[0]: bool - initial mute state, overriding Options.Muted
func (sm *SoundManager) Init(args ...any) error {
	if !sm.opts.Enabled {
		return ErrDisabled
	}
	if len(args) > 0 {
		if muted, ok := args[0].(bool); ok {
			sm.setMuted(muted)
		}
	}
	sm.cache.preload()
	return nil
}

// Start opens the output device and starts streaming the mixer
func (sm *SoundManager) Start(ctx context.Context) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := sm.out.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	sm.out.Play(sm.volume)
	sm.initialized = true
	sm.closed = false
	sm.readyMetric.Store(true)
	sm.logger.Debug("speaker ready", "rate", int(sampleRate), "volume", sm.opts.Volume)
	return nil
}

// Stop silences everything and closes the output; safe to call more than once
func (sm *SoundManager) Stop() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.closed {
		return nil
	}
	sm.out.Lock()
	sm.mixer.Clear()
	sm.out.Unlock()
	sm.out.Close()

	sm.closed = true
	sm.initialized = false
	sm.readyMetric.Store(false)
	return nil
}

// Play mixes a cue in; returns false when not started, muted or unknown
func (sm *SoundManager) Play(c Cue) bool {
	if sm.muted.Load() {
		return false
	}
	buf := sm.cache.get(c)
	if buf == nil {
		return false
	}

	sm.mu.Lock()
	defer sm.mu.Unlock()
	if !sm.initialized {
		return false
	}
	sm.out.Lock()
	sm.mixer.Add(newBufferStreamer(buf))
	sm.out.Unlock()
	return true
}

// ToggleMute flips mute and returns the new state
func (sm *SoundManager) ToggleMute() bool {
	m := !sm.muted.Load()
	sm.setMuted(m)
	return m
}

// SetMuted sets mute; muting also drops cues already playing
func (sm *SoundManager) SetMuted(m bool) {
	sm.setMuted(m)
}

func (sm *SoundManager) setMuted(m bool) {
	sm.muted.Store(m)
	sm.mutedMetric.Store(m)
	if !m {
		return
	}
	sm.mu.Lock()
	defer sm.mu.Unlock()
	if sm.initialized {
		sm.out.Lock()
		sm.mixer.Clear()
		sm.out.Unlock()
	}
}

// SetVolume changes the master volume in base-2 exponent units
func (sm *SoundManager) SetVolume(v float64) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.out.Lock()
	sm.volume.Volume = v
	sm.out.Unlock()
	sm.opts.Volume = v
}

func (sm *SoundManager) Muted() bool { return sm.muted.Load() }

// Ready reports whether the output is open
func (sm *SoundManager) Ready() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.initialized
}

// Active is the number of cues currently mixing
func (sm *SoundManager) Active() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.out.Lock()
	defer sm.out.Unlock()
	return sm.mixer.Len()
}

// bufferStreamer plays a mono buffer on both channels once
type bufferStreamer struct {
	buf floatBuffer
	pos int
}

func newBufferStreamer(buf floatBuffer) *bufferStreamer {
	return &bufferStreamer{buf: buf}
}

func (b *bufferStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	if b.pos >= len(b.buf) {
		return 0, false
	}
	n = copyStereo(samples, b.buf[b.pos:])
	b.pos += n
	return n, true
}

func (b *bufferStreamer) Err() error { return nil }

func copyStereo(dst [][2]float64, src floatBuffer) int {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i][0] = src[i]
		dst[i][1] = src[i]
	}
	return n
}
