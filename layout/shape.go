package layout

import (
	"fmt"

	"github.com/lixenwraith/evergreen/parameter"
)

// Shape is the cone and scatter volume a layout is sampled in
type Shape struct {
	// Height of the cone, centered vertically on the origin
	Height float64 `toml:"height"`
	// BaseRadius of the cone at its lowest point
	BaseRadius float64 `toml:"base_radius"`
	// ChaosExtent is the edge length of the centered scatter cube
	ChaosExtent float64 `toml:"chaos_extent"`
}

// DefaultShape returns the reference shape of a category
func DefaultShape(c Category) (Shape, error) {
	switch {
	case !c.Valid():
		return Shape{}, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	case c.IsPointCloud():
		return Shape{
			Height:      parameter.FoliageHeight,
			BaseRadius:  parameter.FoliageBaseRadius,
			ChaosExtent: parameter.ChaosExtent,
		}, nil
	default:
		return Shape{
			Height:      parameter.OrnamentHeight,
			BaseRadius:  parameter.OrnamentBaseRadius,
			ChaosExtent: parameter.ChaosExtent,
		}, nil
	}
}

// Validate rejects degenerate volumes
func (s Shape) Validate() error {
	if s.Height <= 0 || s.BaseRadius <= 0 || s.ChaosExtent <= 0 {
		return fmt.Errorf("%w: height=%g radius=%g extent=%g", ErrInvalidShape, s.Height, s.BaseRadius, s.ChaosExtent)
	}
	return nil
}

// RadiusAt returns the cone cross-section radius at y (world, centered)
// Zero outside the cone's vertical span
func (s Shape) RadiusAt(y float64) float64 {
	h := y + s.Height/2
	if h < 0 || h > s.Height {
		return 0
	}
	return s.BaseRadius * (1 - h/s.Height)
}
