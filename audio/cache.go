package audio

import (
	"sync"

	"github.com/lixenwraith/evergreen/vmath"
)

// cueCache stores pre-generated unity-gain buffers
type cueCache struct {
	mu    sync.RWMutex
	rng   *vmath.FastRand
	store [cueCount]floatBuffer
	ready [cueCount]bool
}

func newCueCache(seed uint64) *cueCache {
	return &cueCache{rng: vmath.NewFastRand(seed)}
}

// get returns the cached buffer or generates it on demand
func (c *cueCache) get(cue Cue) floatBuffer {
	if cue < 0 || cue >= cueCount {
		return nil
	}

	c.mu.RLock()
	if c.ready[cue] {
		buf := c.store[cue]
		c.mu.RUnlock()
		return buf
	}
	c.mu.RUnlock()

	c.mu.Lock()
	defer c.mu.Unlock()

	// Double-check after acquiring write lock
	if c.ready[cue] {
		return c.store[cue]
	}

	buf := generateCue(cue, c.rng)
	c.store[cue] = buf
	c.ready[cue] = true
	return buf
}

// preload generates every cue so the first play does not stall
func (c *cueCache) preload() {
	for cue := Cue(0); cue < cueCount; cue++ {
		c.get(cue)
	}
}
