package render

import (
	"math"

	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Camera is a perspective camera aimed at Target, projecting onto a cell grid
// Cell aspect stretches rows so a world unit covers the same screen distance on both axes
type Camera struct {
	Position   vmath.Vec3F
	Target     vmath.Vec3F
	FOV        float64 // vertical, degrees
	Near       float64
	CellAspect float64

	width, height int
	halfH         float64 // tan(fov/2)
	aspect        float64 // pixel width / pixel height

	// view basis
	right, up, forward vmath.Vec3F
}

// NewCamera creates the default scene camera sized to width x height cells
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Position:   vmath.Vec3F{X: parameter.CameraX, Y: parameter.CameraY, Z: parameter.CameraZ},
		FOV:        parameter.CameraFOV,
		Near:       parameter.CameraNear,
		CellAspect: parameter.CellAspect,
	}
	c.Resize(width, height)
	return c
}

// Resize recomputes the projection for a new grid
// Call after changing Position, Target or FOV as well
func (c *Camera) Resize(width, height int) {
	c.width, c.height = max(width, 1), max(height, 1)
	c.halfH = math.Tan(c.FOV * math.Pi / 360)
	c.aspect = float64(c.width) / (float64(c.height) * c.CellAspect)

	c.forward = vmath.V3FNormalize(vmath.V3FSub(c.Target, c.Position))
	worldUp := vmath.Vec3F{Y: 1}
	c.right = vmath.V3FNormalize(cross(c.forward, worldUp))
	c.up = cross(c.right, c.forward)
}

func cross(a, b vmath.Vec3F) vmath.Vec3F {
	return vmath.Vec3F{
		X: a.Y*b.Z - a.Z*b.Y,
		Y: a.Z*b.X - a.X*b.Z,
		Z: a.X*b.Y - a.Y*b.X,
	}
}

// Aspect is the projected pixel aspect ratio
func (c *Camera) Aspect() float64 {
	return c.aspect
}

// Project maps a world point to a cell and its view depth
// ok is false behind the near plane or off screen
func (c *Camera) Project(p vmath.Vec3F) (x, y int, depth float64, ok bool) {
	v := vmath.V3FSub(p, c.Position)
	depth = vmath.V3FDot(v, c.forward)
	if depth < c.Near {
		return 0, 0, depth, false
	}
	ndcX := vmath.V3FDot(v, c.right) / (depth * c.halfH * c.aspect)
	ndcY := vmath.V3FDot(v, c.up) / (depth * c.halfH)
	fx, fy := c.ndcToCell(ndcX, ndcY)
	x, y = int(math.Floor(fx)), int(math.Floor(fy))
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return x, y, depth, false
	}
	return x, y, depth, true
}

// ProjectRadius returns how many columns a world radius spans at depth
func (c *Camera) ProjectRadius(r, depth float64) float64 {
	if depth <= 0 {
		return 0
	}
	return r / (depth * c.halfH * c.aspect) * float64(c.width) / 2
}

func (c *Camera) ndcToCell(nx, ny float64) (float64, float64) {
	return (nx + 1) / 2 * float64(c.width), (1 - ny) / 2 * float64(c.height)
}

// CellToNDC maps a cell center back to normalized device coordinates
func (c *Camera) CellToNDC(x, y int) (float64, float64) {
	nx := (float64(x)+0.5)/float64(c.width)*2 - 1
	ny := 1 - (float64(y)+0.5)/float64(c.height)*2
	return nx, ny
}
