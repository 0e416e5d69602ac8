package status

import (
	"maps"
	"slices"
	"sync"
	"sync/atomic"
)

// MetricMap is a named set of metrics of type T
// Lookups read an immutable map snapshot; registering a new key copies it
// Metric pointers are stable, so the frame loop caches them once
type MetricMap[T any] struct {
	mu    sync.Mutex // serializes registration
	items atomic.Pointer[map[string]*T]
}

func NewMetricMap[T any]() *MetricMap[T] {
	m := &MetricMap[T]{}
	empty := map[string]*T{}
	m.items.Store(&empty)
	return m
}

// Get returns the metric for key, registering it on first use
func (m *MetricMap[T]) Get(key string) *T {
	if ptr, ok := (*m.items.Load())[key]; ok {
		return ptr
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	cur := *m.items.Load()
	if ptr, ok := cur[key]; ok {
		return ptr
	}
	next := maps.Clone(cur)
	ptr := new(T)
	next[key] = ptr
	m.items.Store(&next)
	return ptr
}

// Lookup returns the metric for key without registering it
func (m *MetricMap[T]) Lookup(key string) (*T, bool) {
	ptr, ok := (*m.items.Load())[key]
	return ptr, ok
}

// Range visits metrics in sorted key order over one snapshot
func (m *MetricMap[T]) Range(fn func(key string, ptr *T)) {
	items := *m.items.Load()
	for _, k := range slices.Sorted(maps.Keys(items)) {
		fn(k, items[k])
	}
}

func (m *MetricMap[T]) Keys() []string {
	return slices.Sorted(maps.Keys(*m.items.Load()))
}

func (m *MetricMap[T]) Count() int {
	return len(*m.items.Load())
}
