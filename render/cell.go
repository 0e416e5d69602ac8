package render

import (
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/core"
)

// Cell is one composed terminal cell
// Rune 0 marks an untouched cell; finalize paints the backdrop there
type Cell struct {
	Rune  rune
	Fg    core.RGB
	Bg    core.RGB
	Attrs tcell.AttrMask
}
