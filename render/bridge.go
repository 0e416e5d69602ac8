package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/core"
)

// TcellToRGB converts tcell.Color to RGB
// Treats ColorDefault as the backdrop edge color
func TcellToRGB(c tcell.Color) core.RGB {
	if c == tcell.ColorDefault {
		return BackdropEdge
	}
	r, g, b := c.RGB()
	return core.RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
}

// RGBToTcell converts RGB to tcell.Color
func RGBToTcell(rgb core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}
