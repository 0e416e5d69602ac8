package status

import "sync/atomic"

// MaxStringLen bounds stored labels so HUD rows stay fixed width
const MaxStringLen = 20

// AtomicString provides atomic string access with fixed max length
// Zero value is ready to use (represents empty string)
type AtomicString struct {
	ptr atomic.Pointer[string]
}

// Store sets the string value, truncating to MaxStringLen bytes
func (s *AtomicString) Store(val string) {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	s.ptr.Store(&val)
}

// Load returns the current string value
func (s *AtomicString) Load() string {
	if p := s.ptr.Load(); p != nil {
		return *p
	}
	return ""
}

// Swap stores val and reports whether it differed from the previous value
func (s *AtomicString) Swap(val string) bool {
	if len(val) > MaxStringLen {
		val = val[:MaxStringLen]
	}
	old := s.ptr.Swap(&val)
	return old == nil || *old != val
}
