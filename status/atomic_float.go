package status

import (
	"math"
	"sync/atomic"
)

// AtomicFloat is a float64 gauge stored as IEEE bits
// Zero value reads 0 and has no smoothing history
type AtomicFloat struct {
	bits   atomic.Uint64
	primed atomic.Bool
}

func (f *AtomicFloat) Set(val float64) {
	f.bits.Store(math.Float64bits(val))
	f.primed.Store(true)
}

func (f *AtomicFloat) Get() float64 {
	return math.Float64frombits(f.bits.Load())
}

// Smooth folds sample into an exponential moving average with the given
// weight in (0, 1] and returns the new average; the first sample seeds it
// NaN and infinite samples are ignored
func (f *AtomicFloat) Smooth(sample, weight float64) float64 {
	if math.IsNaN(sample) || math.IsInf(sample, 0) {
		return f.Get()
	}
	if f.primed.CompareAndSwap(false, true) {
		f.bits.Store(math.Float64bits(sample))
		return sample
	}
	weight = min(max(weight, 0), 1)
	for {
		old := f.bits.Load()
		cur := math.Float64frombits(old)
		next := cur + (sample-cur)*weight
		if f.bits.CompareAndSwap(old, math.Float64bits(next)) {
			return next
		}
	}
}
