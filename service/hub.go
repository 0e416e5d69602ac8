package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
)

var (
	ErrDuplicate = errors.New("service already registered")
	ErrUnknown   = errors.New("unregistered dependency")
	ErrCycle     = errors.New("circular service dependency")
	// ErrDependency marks a service skipped because a dependency was skipped
	ErrDependency = errors.New("dependency unavailable")
)

// Hub owns registered services and drives them in dependency order
type Hub struct {
	mu       sync.Mutex
	services map[string]Service
	order    []string // topological, computed on InitAll
	ready    []string // initialized and not skipped
	started  []string // for rollback and StopAll
	skipped  map[string]error
	logger   *log.Logger
}

// NewHub creates an empty hub; logger may be nil
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		services: make(map[string]Service),
		skipped:  make(map[string]error),
		logger:   logger.WithPrefix("service"),
	}
}

// Register adds a service; names must be unique
func (h *Hub) Register(svc Service) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	name := svc.Name()
	if _, exists := h.services[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, name)
	}
	h.services[name] = svc
	h.order = nil
	return nil
}

// Get retrieves a service by name
func (h *Hub) Get(name string) (Service, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	svc, ok := h.services[name]
	return svc, ok
}

// InitAll calls Init in dependency order with the same args for each service
// A failing required service stops the already initialized ones in reverse
func (h *Hub) InitAll(args ...any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.order == nil {
		order, err := h.topologicalSort()
		if err != nil {
			return err
		}
		h.order = order
	}

	h.ready = h.ready[:0]
	for _, name := range h.order {
		svc := h.services[name]
		if h.depSkipped(svc) {
			h.skip(name, ErrDependency)
			continue
		}
		if err := svc.Init(args...); err != nil {
			if isOptional(svc) {
				h.skip(name, err)
				continue
			}
			for i := len(h.ready) - 1; i >= 0; i-- {
				h.services[h.ready[i]].Stop()
			}
			return fmt.Errorf("service %s init failed: %w", name, err)
		}
		h.ready = append(h.ready, name)
	}
	return nil
}

// StartAll starts initialized services in order, rolling back on a required failure
func (h *Hub) StartAll(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.started = nil
	for _, name := range h.ready {
		svc := h.services[name]
		if h.depSkipped(svc) {
			h.skip(name, ErrDependency)
			continue
		}
		if err := svc.Start(ctx); err != nil {
			if isOptional(svc) {
				h.skip(name, err)
				continue
			}
			for i := len(h.started) - 1; i >= 0; i-- {
				h.services[h.started[i]].Stop()
			}
			h.started = nil
			return fmt.Errorf("service %s start failed: %w", name, err)
		}
		h.started = append(h.started, name)
	}
	return nil
}

// StopAll stops started services in reverse order; errors are logged
func (h *Hub) StopAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for i := len(h.started) - 1; i >= 0; i-- {
		name := h.started[i]
		if err := h.services[name].Stop(); err != nil {
			h.logger.Warn("stop failed", "service", name, "err", err)
		}
	}
	h.started = nil
}

// Skipped returns the optional services that were dropped and why
func (h *Hub) Skipped() map[string]error {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[string]error, len(h.skipped))
	for k, v := range h.skipped {
		out[k] = v
	}
	return out
}

// Running reports whether name was started and not yet stopped
func (h *Hub) Running(name string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, n := range h.started {
		if n == name {
			return true
		}
	}
	return false
}

func (h *Hub) skip(name string, err error) {
	h.skipped[name] = err
	h.logger.Warn("service unavailable, continuing without it", "service", name, "err", err)
}

func (h *Hub) depSkipped(svc Service) bool {
	for _, dep := range svc.Dependencies() {
		if _, ok := h.skipped[dep]; ok {
			return true
		}
	}
	return false
}

func isOptional(svc Service) bool {
	o, ok := svc.(Optional)
	return ok && o.Optional()
}

// topologicalSort orders services with Kahn's algorithm
// Ties break by name
func (h *Hub) topologicalSort() ([]string, error) {
	inDegree := make(map[string]int, len(h.services))
	dependents := make(map[string][]string)

	for name := range h.services {
		inDegree[name] = 0
	}
	for name, svc := range h.services {
		for _, dep := range svc.Dependencies() {
			if _, exists := h.services[dep]; !exists {
				return nil, fmt.Errorf("%w: %s depends on %s", ErrUnknown, name, dep)
			}
			inDegree[name]++
			dependents[dep] = append(dependents[dep], name)
		}
	}

	var queue []string
	for name, degree := range inDegree {
		if degree == 0 {
			queue = append(queue, name)
		}
	}
	slices.Sort(queue)

	result := make([]string, 0, len(h.services))
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		result = append(result, name)

		next := dependents[name]
		slices.Sort(next)
		for _, d := range next {
			inDegree[d]--
			if inDegree[d] == 0 {
				queue = append(queue, d)
			}
		}
	}

	if len(result) != len(h.services) {
		return nil, ErrCycle
	}
	return result, nil
}
