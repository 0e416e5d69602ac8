package render

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/core"
)

// Buffer is a depth-tested cell compositor flushed to a tcell screen
// Nearest write wins; overlay text bypasses the depth test
type Buffer struct {
	cells  []Cell
	depth  []float64
	width  int
	height int
}

// NewBuffer creates a buffer with the specified dimensions
func NewBuffer(width, height int) *Buffer {
	b := &Buffer{}
	b.Resize(width, height)
	return b
}

// Resize adjusts dimensions, reallocating only if capacity is insufficient
func (b *Buffer) Resize(width, height int) {
	width, height = max(width, 0), max(height, 0)
	size := width * height
	if cap(b.cells) < size {
		b.cells = make([]Cell, size)
		b.depth = make([]float64, size)
	} else {
		b.cells = b.cells[:size]
		b.depth = b.depth[:size]
	}
	b.width = width
	b.height = height
	b.Clear()
}

// Clear resets all cells and depths using exponential copy
func (b *Buffer) Clear() {
	if len(b.cells) == 0 {
		return
	}
	b.cells[0] = Cell{}
	b.depth[0] = math.Inf(1)
	for filled := 1; filled < len(b.cells); filled *= 2 {
		copy(b.cells[filled:], b.cells[:filled])
		copy(b.depth[filled:], b.depth[:filled])
	}
}

func (b *Buffer) inBounds(x, y int) bool {
	return x >= 0 && x < b.width && y >= 0 && y < b.height
}

// Bounds returns width and height
func (b *Buffer) Bounds() (int, int) {
	return b.width, b.height
}

// Get returns the cell at (x, y); out of bounds reads an empty cell
func (b *Buffer) Get(x, y int) Cell {
	if !b.inBounds(x, y) {
		return Cell{}
	}
	return b.cells[y*b.width+x]
}

// Depth returns the stored depth at (x, y), +Inf when empty
func (b *Buffer) Depth(x, y int) float64 {
	if !b.inBounds(x, y) {
		return math.Inf(1)
	}
	return b.depth[y*b.width+x]
}

// Plot writes r at (x, y) if depth is nearer than what the cell holds
func (b *Buffer) Plot(x, y int, depth float64, r rune, fg core.RGB) bool {
	if !b.inBounds(x, y) {
		return false
	}
	idx := y*b.width + x
	if depth >= b.depth[idx] {
		return false
	}
	b.depth[idx] = depth
	dst := &b.cells[idx]
	dst.Rune = r
	dst.Fg = fg
	dst.Attrs = tcell.AttrNone
	return true
}

// PlotAlpha is Plot with fg faded toward the backdrop by alpha
func (b *Buffer) PlotAlpha(x, y int, depth float64, r rune, fg core.RGB, alpha float64) bool {
	if alpha <= 0 {
		return false
	}
	return b.Plot(x, y, depth, r, b.backdrop(x, y).Blend(fg, alpha))
}

// Text writes s left to right starting at (x, y) above everything else
func (b *Buffer) Text(x, y int, s string, fg, bg core.RGB, attrs tcell.AttrMask) int {
	n := 0
	for _, r := range s {
		if b.inBounds(x+n, y) {
			idx := y*b.width + x + n
			b.depth[idx] = math.Inf(-1)
			b.cells[idx] = Cell{Rune: r, Fg: fg, Bg: bg, Attrs: attrs}
		}
		n++
	}
	return n
}

// backdrop is the radial gradient behind the scene at (x, y)
func (b *Buffer) backdrop(x, y int) core.RGB {
	if b.width == 0 || b.height == 0 {
		return BackdropEdge
	}
	dx := (float64(x) - float64(b.width)/2) / (float64(b.width) / 2)
	dy := (float64(y) - float64(b.height)/2) / (float64(b.height) / 2)
	t := math.Sqrt(dx*dx+dy*dy) / math.Sqrt2
	return BackdropCenter.Lerp(BackdropEdge, t)
}

// finalize paints the backdrop under every cell without an explicit background
func (b *Buffer) finalize() {
	for y := 0; y < b.height; y++ {
		row := b.cells[y*b.width : (y+1)*b.width]
		for x := range row {
			c := &row[x]
			if c.Bg == (core.RGB{}) && !math.IsInf(b.depth[y*b.width+x], -1) {
				c.Bg = b.backdrop(x, y)
			}
			if c.Rune == 0 {
				c.Rune = ' '
			}
		}
	}
}

// Flush writes the buffer to screen and shows it
func (b *Buffer) Flush(screen tcell.Screen) {
	b.finalize()
	for y := 0; y < b.height; y++ {
		for x := 0; x < b.width; x++ {
			c := b.cells[y*b.width+x]
			st := tcell.StyleDefault.
				Foreground(RGBToTcell(c.Fg)).
				Background(RGBToTcell(c.Bg)).
				Attributes(c.Attrs)
			screen.SetContent(x, y, c.Rune, nil, st)
		}
	}
	screen.Show()
}
