package render

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/engine"
)

// HUD is front-end state the scene does not own
type HUD struct {
	Title      string
	Toast      string // shown centered while non-empty
	Muted      bool
	AudioReady bool
	Paused     bool
	// Feed is the landmark feed address, empty when disabled
	Feed string
}

const helpLine = " space toggle  g gesture  m mute  p pause  +/- foliage  q quit "

func (r *Renderer) drawHUD(s *engine.Scene, h HUD) {
	w, hgt := r.buf.Bounds()
	if w == 0 || hgt == 0 {
		return
	}

	title := h.Title
	if title == "" {
		title = "EVERGREEN"
	}
	x := r.buf.Text(1, 0, title, RgbHudText, RgbHudBg, tcell.AttrBold) + 3

	regimeCol := RgbHudFormed
	if s.Regime() == core.RegimeChaos {
		regimeCol = RgbHudChaos
	}
	x += r.buf.Text(x, 0, s.Regime().String(), regimeCol, RgbHudBg, tcell.AttrBold) + 1
	x += r.buf.Text(x, 0, fmt.Sprintf("%3.0f%%", s.Progress()*100), RgbHudText, RgbHudBg, tcell.AttrNone) + 2

	if s.Router().GestureMode() {
		x += r.buf.Text(x, 0, "GESTURE", RgbHudText, RgbHudBg, tcell.AttrNone) + 1
		g := s.Sample().Gesture
		openCol, fistCol := RgbHudDim, RgbHudDim
		switch g {
		case core.GestureOpenHand:
			openCol = RgbHudChaos
		case core.GestureClosedFist:
			fistCol = RgbHudFormed
		}
		x += r.buf.Text(x, 0, "OPEN", openCol, RgbHudBg, tcell.AttrNone) + 1
		x += r.buf.Text(x, 0, "FIST", fistCol, RgbHudBg, tcell.AttrNone) + 2
	} else {
		x += r.buf.Text(x, 0, "POINTER", RgbHudDim, RgbHudBg, tcell.AttrNone) + 2
	}

	if h.Paused {
		x += r.buf.Text(x, 0, "PAUSED", RgbHudChaos, RgbHudBg, tcell.AttrBold) + 2
	}
	switch {
	case !h.AudioReady:
		x += r.buf.Text(x, 0, "silent", RgbHudDim, RgbHudBg, tcell.AttrNone) + 2
	case h.Muted:
		x += r.buf.Text(x, 0, "muted", RgbHudDim, RgbHudBg, tcell.AttrNone) + 2
	}
	if h.Feed != "" {
		x += r.buf.Text(x, 0, "feed "+h.Feed, RgbHudDim, RgbHudBg, tcell.AttrNone) + 2
	}

	fps := fmt.Sprintf("%2.0f fps", s.FPS())
	if fx := w - len(fps) - 1; fx > x {
		r.buf.Text(fx, 0, fps, RgbHudDim, RgbHudBg, tcell.AttrNone)
	}

	if hgt > 2 {
		r.buf.Text(max((w-len(helpLine))/2, 0), hgt-1, helpLine, RgbHudDim, RgbHudBg, tcell.AttrNone)
	}

	if h.Toast != "" && hgt > 4 {
		msg := "  " + h.Toast + "  "
		n := len([]rune(msg))
		r.buf.Text(max((w-n)/2, 0), 2, msg, RgbToast, RgbHudBg, tcell.AttrBold)
	}
}
