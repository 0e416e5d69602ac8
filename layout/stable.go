package layout

import "github.com/lixenwraith/evergreen/vmath"

// Key identifies the configuration a layout was generated for
type Key struct {
	Count    int
	Category Category
}

// Stable holds one group's layout and regenerates it only when the key changes
// Not safe for concurrent use; owned by the group that renders it
type Stable struct {
	rng    *vmath.FastRand
	key    Key
	layout *Layout
	gen    int
}

// NewStable creates an empty slot drawing from rng
func NewStable(rng *vmath.FastRand) *Stable {
	return &Stable{rng: rng}
}

// Resolve returns the layout for (count, c), generating only on first use or key change
func (s *Stable) Resolve(count int, c Category) (*Layout, error) {
	k := Key{Count: count, Category: c}
	if s.layout != nil && s.key == k {
		return s.layout, nil
	}
	l, err := Generate(count, c, s.rng)
	if err != nil {
		return nil, err
	}
	s.key = k
	s.layout = l
	s.gen++
	return l, nil
}

// Generation counts how many layouts this slot has produced
func (s *Stable) Generation() int {
	return s.gen
}
