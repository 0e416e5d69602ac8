package parameter

// ReferenceFPS is the display rate the per-frame constants were tuned at
// Frame-rate independent updates scale by dt*ReferenceFPS
const ReferenceFPS = 60.0

// Progress easing
const (
	// EasingRate is the per-second lerp factor toward the regime target
	EasingRate = 1.5
)

// Assembly rotation
const (
	// RotationDamping is angular velocity retention per reference frame
	RotationDamping = 0.95
	// DragSensitivity converts horizontal pointer pixels to radians/frame of velocity
	DragSensitivity = 0.0005
	// IdleThreshold is the velocity below which ambient spin kicks in
	IdleThreshold = 0.001
	// AmbientSpin is the idle rotation added per reference frame
	AmbientSpin = 0.0015
	// GestureDeadband is the minimum |x| for a gesture to push rotation
	GestureDeadband = 0.3
	// GesturePush converts gesture x into velocity per frame
	GesturePush = 0.02
	// AcknowledgeSeconds is how long a gift click acknowledgment stays up
	AcknowledgeSeconds = 5.0
)
