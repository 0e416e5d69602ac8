// Package status is a lock-free metric registry shared by the frame loop,
// the HUD and the landmark feed's status endpoint.
package status

import "sync/atomic"

// Metric keys published by the scene and its collaborators
const (
	KeyRegime       = "regime"
	KeyProgress     = "progress"
	KeyRotation     = "rotation"
	KeySwarmRespawn = "swarm.respawns"
	KeyGestureLast  = "gesture.last"
	KeyGestureMode  = "gesture.mode"
	KeyFrameCount   = "frame.count"
	KeyFPS          = "fps"
	KeyFeedFrames   = "feed.frames"
	KeyFeedRejected = "feed.rejected"
	KeyAudioReady   = "audio.ready"
	KeyAudioMuted   = "audio.muted"
	KeyPaused       = "paused"
)

// Registry is the central metrics facade
// Writers cache pointers at construction; frame loops write atomics directly
type Registry struct {
	Bools   *MetricMap[atomic.Bool]
	Ints    *MetricMap[atomic.Int64]
	Floats  *MetricMap[AtomicFloat]
	Strings *MetricMap[AtomicString]
}

// NewRegistry creates an initialized Registry
func NewRegistry() *Registry {
	return &Registry{
		Bools:   NewMetricMap[atomic.Bool](),
		Ints:    NewMetricMap[atomic.Int64](),
		Floats:  NewMetricMap[AtomicFloat](),
		Strings: NewMetricMap[AtomicString](),
	}
}

// TotalCount returns total metrics across all types
func (r *Registry) TotalCount() int {
	return r.Bools.Count() + r.Ints.Count() + r.Floats.Count() + r.Strings.Count()
}

// Snapshot copies every metric into a plain map for encoding
// Keys shared across types resolve in bool, int, float, string order
func (r *Registry) Snapshot() map[string]any {
	out := make(map[string]any, r.TotalCount())
	r.Strings.Range(func(k string, v *AtomicString) { out[k] = v.Load() })
	r.Floats.Range(func(k string, v *AtomicFloat) { out[k] = v.Get() })
	r.Ints.Range(func(k string, v *atomic.Int64) { out[k] = v.Load() })
	r.Bools.Range(func(k string, v *atomic.Bool) { out[k] = v.Load() })
	return out
}
