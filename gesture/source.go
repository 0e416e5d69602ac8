package gesture

// Source is a stream of landmark frames from an external perception component
// Frames is closed by the source when it has nothing more to deliver
type Source interface {
	Frames() <-chan Frame
	Close() error
}

// offer delivers f on a one-slot channel, displacing any unread frame
// Only safe with a single sender
func offer(ch chan Frame, f Frame) (dropped bool) {
	select {
	case ch <- f:
		return false
	default:
	}
	select {
	case <-ch:
		dropped = true
	default:
	}
	select {
	case ch <- f:
	default:
	}
	return dropped
}
