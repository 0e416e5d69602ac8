package layout

import (
	"fmt"
	"strings"

	"github.com/lixenwraith/evergreen/parameter"
)

// Category selects the formed-layout model and per-element tuning
type Category uint8

const (
	// CategoryFoliage is the volume-filling point cloud
	CategoryFoliage Category = iota
	// CategoryGift are box ornaments sitting deeper inside the cone
	CategoryGift
	// CategoryBall are sphere ornaments near the surface
	CategoryBall
	// CategoryLight are small emissive points near the surface
	CategoryLight

	categoryCount
)

var categoryNames = [categoryCount]string{
	CategoryFoliage: "foliage",
	CategoryGift:    "gift",
	CategoryBall:    "ball",
	CategoryLight:   "light",
}

func (c Category) String() string {
	if c >= categoryCount {
		return fmt.Sprintf("category(%d)", uint8(c))
	}
	return categoryNames[c]
}

// Valid reports whether c is a known category
func (c Category) Valid() bool {
	return c < categoryCount
}

// IsPointCloud reports whether the category fills the cone volume rather than its surface band
func (c Category) IsPointCloud() bool {
	return c == CategoryFoliage
}

// ParseCategory resolves a config name, case-insensitive
func ParseCategory(s string) (Category, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range categoryNames {
		if n == name {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// MarshalText encodes the category by name
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, uint8(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText decodes a category name
func (c *Category) UnmarshalText(b []byte) error {
	v, err := ParseCategory(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

// instanceProfile is the surface band and scale range of an ornament category
type instanceProfile struct {
	offset    float64
	scaleMin  float64
	scaleSpan float64
}

var instanceProfiles = map[Category]instanceProfile{
	CategoryGift:  {parameter.GiftSurfaceOffset, parameter.GiftScaleMin, parameter.GiftScaleSpan},
	CategoryBall:  {parameter.BallSurfaceOffset, parameter.BallScaleMin, parameter.BallScaleSpan},
	CategoryLight: {parameter.LightSurfaceOffset, parameter.LightScaleMin, parameter.LightScaleSpan},
}

// ScaleRange returns the [min, max) target scale of a category
func (c Category) ScaleRange() (lo, hi float64) {
	if c == CategoryFoliage {
		return parameter.FoliagePointSize, parameter.FoliagePointSize
	}
	p := instanceProfiles[c]
	return p.scaleMin, p.scaleMin + p.scaleSpan
}
