package render

import "github.com/lixenwraith/evergreen/core"

// Scene palette
var (
	// Backdrop is a radial gradient from BackdropCenter to BackdropEdge
	BackdropCenter = core.RGB{R: 0x1a, G: 0x2e, B: 0x26}
	BackdropEdge   = core.RGB{}

	RgbGoldDust = core.RGB{R: 255, G: 215, B: 0}
	RgbStar     = core.RGB{R: 255, G: 236, B: 140}
	RgbSpiral   = core.RGB{R: 255, G: 244, B: 200}
	RgbSnow     = core.RGB{R: 230, G: 238, B: 255}
	RgbGiftBox  = core.RGB{R: 196, G: 30, B: 58}
	RgbRibbon   = core.RGB{R: 255, G: 215, B: 0}

	RgbHudText   = core.RGB{R: 220, G: 220, B: 220}
	RgbHudDim    = core.RGB{R: 110, G: 110, B: 110}
	RgbHudChaos  = core.RGB{R: 248, G: 113, B: 113} // red-400
	RgbHudFormed = core.RGB{R: 52, G: 211, B: 153}  // emerald-400
	RgbHudBg     = core.RGB{R: 8, G: 16, B: 12}
	RgbToast     = core.RGB{R: 255, G: 255, B: 255}
)

// fogged darkens a color with distance behind the tree center
func fogged(c core.RGB, depth float64) core.RGB {
	const near, far = 14.0, 34.0
	t := (depth - near) / (far - near)
	switch {
	case t <= 0:
		return c
	case t >= 1:
		return c.Scale(0.35)
	}
	return c.Scale(1 - 0.65*t)
}
