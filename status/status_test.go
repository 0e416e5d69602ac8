package status

import (
	"math"
	"strings"
	"sync"
	"testing"
)

func TestRegistryCachedPointers(t *testing.T) {
	r := NewRegistry()
	a := r.Floats.Get(KeyProgress)
	b := r.Floats.Get(KeyProgress)
	if a != b {
		t.Fatal("Get should return the cached pointer")
	}
	a.Set(0.75)
	if r.Floats.Get(KeyProgress).Get() != 0.75 {
		t.Error("Value not visible through registry")
	}
	if _, ok := r.Floats.Lookup(KeyProgress); !ok {
		t.Error("Lookup misses a registered key")
	}
	if _, ok := r.Floats.Lookup(KeyRotation); ok {
		t.Error("Lookup registered a key")
	}
	if r.Floats.Count() != 1 {
		t.Errorf("Count = %d, want 1", r.Floats.Count())
	}
}

func TestMetricMapConcurrentRegistration(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	keys := []string{KeyProgress, KeyRotation, KeyFPS}
	ptrs := make([][]*AtomicFloat, 8)
	var wg sync.WaitGroup
	for i := range ptrs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for _, k := range keys {
				ptrs[i] = append(ptrs[i], m.Get(k))
			}
		}(i)
	}
	wg.Wait()

	for i := range ptrs {
		for j := range keys {
			if ptrs[i][j] != ptrs[0][j] {
				t.Fatalf("key %s registered twice", keys[j])
			}
		}
	}
	if m.Count() != len(keys) {
		t.Errorf("Count = %d, want %d", m.Count(), len(keys))
	}
}

func TestAtomicFloatSmooth(t *testing.T) {
	var f AtomicFloat
	if got := f.Smooth(30, 0.1); got != 30 {
		t.Fatalf("first sample should seed the average, got %v", got)
	}
	if got := f.Smooth(60, 0.1); got != 33 {
		t.Errorf("Expected 33, got %v", got)
	}
	if got := f.Smooth(math.Inf(1), 0.1); got != 33 {
		t.Errorf("infinite sample moved the average to %v", got)
	}
	for i := 0; i < 200; i++ {
		f.Smooth(60, 0.1)
	}
	if got := f.Get(); math.Abs(got-60) > 1e-6 {
		t.Errorf("Expected convergence to 60, got %v", got)
	}

	// Set primes the average too
	var g AtomicFloat
	g.Set(10)
	if got := g.Smooth(20, 0.5); got != 15 {
		t.Errorf("Expected 15 after Set, got %v", got)
	}
}

func TestAtomicStringTruncatesAndSwaps(t *testing.T) {
	var s AtomicString
	if s.Load() != "" {
		t.Error("Zero value should be empty")
	}
	s.Store(strings.Repeat("x", MaxStringLen+5))
	if len(s.Load()) != MaxStringLen {
		t.Errorf("Expected truncation to %d, got %d", MaxStringLen, len(s.Load()))
	}

	if !s.Swap("OPEN_HAND") {
		t.Error("Swap to a new value should report change")
	}
	if s.Swap("OPEN_HAND") {
		t.Error("Swap to the same value should not report change")
	}
}

func TestSnapshot(t *testing.T) {
	r := NewRegistry()
	r.Strings.Get(KeyRegime).Store("CHAOS")
	r.Floats.Get(KeyProgress).Set(0.5)
	r.Ints.Get(KeyFrameCount).Store(12)
	r.Bools.Get(KeyGestureMode).Store(true)

	snap := r.Snapshot()
	if len(snap) != 4 || r.TotalCount() != 4 {
		t.Fatalf("Expected 4 metrics, got %d/%d", len(snap), r.TotalCount())
	}
	if snap[KeyRegime] != "CHAOS" || snap[KeyProgress] != 0.5 || snap[KeyFrameCount] != int64(12) || snap[KeyGestureMode] != true {
		t.Errorf("Unexpected snapshot: %v", snap)
	}

	keys := r.Floats.Keys()
	if len(keys) != 1 || keys[0] != KeyProgress {
		t.Errorf("Keys = %v", keys)
	}
}
