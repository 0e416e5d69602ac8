// Package render projects a scene onto a depth-tested terminal cell buffer
// and flushes it to a tcell screen.
package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/engine"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/vmath"
)

// Rect is an inclusive cell rectangle
type Rect struct {
	X0, Y0, X1, Y1 int
}

// Contains reports whether (x, y) lies inside r
func (r Rect) Contains(x, y int) bool {
	return x >= r.X0 && x <= r.X1 && y >= r.Y0 && y <= r.Y1
}

// Renderer draws a Scene each frame; not safe for concurrent use
type Renderer struct {
	buf *Buffer
	cam *Camera

	// gift hit region from the last Draw; valid only while giftShown
	giftRect  Rect
	giftShown bool
}

// NewRenderer creates a renderer for a width x height cell grid
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		buf: NewBuffer(width, height),
		cam: NewCamera(width, height),
	}
}

// Resize adapts buffer and camera to a new grid
func (r *Renderer) Resize(width, height int) {
	r.buf.Resize(width, height)
	r.cam.Resize(width, height)
	r.giftShown = false
}

func (r *Renderer) Buffer() *Buffer { return r.buf }
func (r *Renderer) Camera() *Camera { return r.cam }

// treeToWorld places a tree-local point: scale, spin about Y, then offset
func treeToWorld(p vmath.Vec3F, rotation float64) vmath.Vec3F {
	w := vmath.V3FRotateY(vmath.V3FScale(p, parameter.TreeScale), rotation)
	w.Y += parameter.TreeOffsetY
	return w
}

// Draw composes the scene and hud into the buffer; call Flush to show it
func (r *Renderer) Draw(s *engine.Scene, hud HUD) {
	r.buf.Clear()
	rot := s.Rotation()
	elapsed := s.Elapsed()

	r.drawSnow(s)
	r.drawSwarm(s)
	for _, g := range s.Groups() {
		r.drawGroup(g.Category(), g.Color(), g.Transforms(), rot, elapsed)
	}
	r.drawSpiral(s, rot)
	r.drawStar(s, rot)
	r.drawGift(s, rot)
	r.drawHUD(s, hud)
}

// Flush writes the composed frame to screen
func (r *Renderer) Flush(screen tcell.Screen) {
	r.buf.Flush(screen)
}

func (r *Renderer) drawGroup(c layout.Category, col core.RGB, xf []core.Transform, rot, elapsed float64) {
	for i := range xf {
		t := &xf[i]
		if t.Scale <= parameter.InteractableEpsilon {
			continue
		}
		x, y, depth, ok := r.cam.Project(treeToWorld(t.Position, rot))
		if !ok {
			continue
		}
		fg := col
		if c == layout.CategoryLight {
			// Twinkle
			fg = col.Scale(0.7 + 0.3*math.Sin(elapsed*3+float64(i)))
		}
		r.buf.Plot(x, y, depth, glyphFor(c, r.cam.ProjectRadius(t.Scale*parameter.TreeScale, depth)), fogged(fg, depth))
	}
}

// glyphFor picks a rune by category and projected radius in columns
func glyphFor(c layout.Category, cols float64) rune {
	switch c {
	case layout.CategoryFoliage:
		if cols > 0.08 {
			return '•'
		}
		return '·'
	case layout.CategoryGift:
		if cols > 0.6 {
			return '■'
		}
		return '▪'
	case layout.CategoryBall:
		if cols > 0.5 {
			return '●'
		}
		return '•'
	case layout.CategoryLight:
		return '*'
	default:
		return '?'
	}
}

func (r *Renderer) drawSwarm(s *engine.Scene) {
	for _, p := range s.Swarm().Positions() {
		x, y, depth, ok := r.cam.Project(p)
		if !ok {
			continue
		}
		r.buf.Plot(x, y, depth, '∙', fogged(RgbGoldDust, depth))
	}
}

func (r *Renderer) drawSnow(s *engine.Scene) {
	for _, p := range s.Snow().Positions() {
		x, y, depth, ok := r.cam.Project(p)
		if !ok {
			continue
		}
		glyph := '·'
		if depth < 16 {
			glyph = '*'
		}
		r.buf.Plot(x, y, depth, glyph, fogged(RgbSnow, depth))
	}
}

func (r *Renderer) drawSpiral(s *engine.Scene, rot float64) {
	sp := s.Spiral()
	if !sp.Visible() {
		return
	}
	alpha := sp.Opacity()
	for _, p := range sp.Points() {
		x, y, depth, ok := r.cam.Project(treeToWorld(p, rot))
		if !ok {
			continue
		}
		r.buf.PlotAlpha(x, y, depth, '·', RgbSpiral, alpha)
	}
}

func (r *Renderer) drawStar(s *engine.Scene, rot float64) {
	t := s.Star().Transform()
	x, y, depth, ok := r.cam.Project(treeToWorld(t.Position, rot))
	if !ok {
		return
	}
	r.buf.Plot(x, y, depth, '★', RgbStar)
	if t.Scale >= 0.5 {
		// Rays
		r.buf.Plot(x-1, y, depth, '─', RgbStar.Scale(0.7))
		r.buf.Plot(x+1, y, depth, '─', RgbStar.Scale(0.7))
		r.buf.Plot(x, y-1, depth, '│', RgbStar.Scale(0.7))
	}
}

// drawGift draws the gift box and records its hit region
// Hidden gifts leave no region, so clicks cannot reach them
func (r *Renderer) drawGift(s *engine.Scene, rot float64) {
	r.giftShown = false
	g := s.Gift()
	if !g.Interactable() {
		return
	}
	t := g.Transform()
	x, y, depth, ok := r.cam.Project(treeToWorld(t.Position, rot))
	if !ok {
		return
	}

	hw := int(math.Round(r.cam.ProjectRadius(parameter.GiftSize/2*t.Scale*parameter.TreeScale, depth)))
	hh := int(math.Round(float64(hw) / r.cam.CellAspect))
	rect := Rect{X0: x - hw, Y0: y - hh, X1: x + hw, Y1: y + hh}

	box := RgbGiftBox
	if g.Hovered() {
		box = box.Add(core.RGB{R: 40, G: 40, B: 40})
	}
	for cy := rect.Y0; cy <= rect.Y1; cy++ {
		for cx := rect.X0; cx <= rect.X1; cx++ {
			switch {
			case cx == x && cy == y:
				r.buf.Plot(cx, cy, depth, '✚', RgbRibbon)
			case cx == x:
				r.buf.Plot(cx, cy, depth, '┃', RgbRibbon)
			case cy == y:
				r.buf.Plot(cx, cy, depth, '━', RgbRibbon)
			default:
				r.buf.Plot(cx, cy, depth, '█', box)
			}
		}
	}
	r.giftRect = rect
	r.giftShown = true
}

// HitGift reports whether cell (x, y) lies on the gift drawn last frame
func (r *Renderer) HitGift(x, y int) bool {
	return r.giftShown && r.giftRect.Contains(x, y)
}

// GiftRect returns the last drawn gift region and whether it is shown
func (r *Renderer) GiftRect() (Rect, bool) {
	return r.giftRect, r.giftShown
}

// PointerNDC maps a cell to normalized device coordinates for the swarm
func (r *Renderer) PointerNDC(x, y int) (float64, float64) {
	return r.cam.CellToNDC(x, y)
}
