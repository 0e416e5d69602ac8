package main

import (
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/audio"
	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/engine"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/render"
	"github.com/lixenwraith/evergreen/status"
)

// maxFrameStep bounds dt after a stall so one frame cannot fling the swarm
const maxFrameStep = 0.25

// cuePlayer is the part of the sound manager the front end drives
type cuePlayer interface {
	Play(audio.Cue) bool
	ToggleMute() bool
	Muted() bool
	Ready() bool
}

// controller turns terminal events into scene operations and paces frames
type controller struct {
	scene    *engine.Scene
	view     *render.Renderer
	sound    cuePlayer
	clock    *engine.PausableClock
	logger   *log.Logger
	greeting string
	feed     string

	paused  *atomic.Bool
	last    time.Time
	pressed bool
}

func newController(scene *engine.Scene, view *render.Renderer, sound cuePlayer, clock *engine.PausableClock, logger *log.Logger) *controller {
	c := &controller{
		scene:  scene,
		view:   view,
		sound:  sound,
		clock:  clock,
		logger: logger,
		paused: scene.Registry().Bools.Get(status.KeyPaused),
		last:   clock.Now(),
	}
	scene.SetAspect(view.Camera().Aspect())

	scene.Router().OnRegimeChange(func(from, to core.Regime) {
		cue := audio.CueGather
		if to == core.RegimeChaos {
			cue = audio.CueScatter
		}
		sound.Play(cue)
		logger.Debug("regime changed", "from", from, "to", to)
	})
	scene.Router().OnClick(func() {
		sound.Play(audio.CueChime)
		logger.Info("gift opened")
	})
	return c
}

// handle applies one event; returns true when the user asked to quit
func (c *controller) handle(ev tcell.Event, now time.Time) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return c.key(ev)
	case *tcell.EventMouse:
		c.mouse(ev, now)
	case *tcell.EventResize:
		w, h := ev.Size()
		c.view.Resize(w, h)
		c.scene.SetAspect(c.view.Camera().Aspect())
	case *tcell.EventFocus:
		if !ev.Focused {
			c.pressed = false
			c.scene.Router().PointerLeave()
		}
	}
	return false
}

func (c *controller) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
	default:
		return false
	}

	switch ev.Rune() {
	case 'q', 'Q':
		return true
	case ' ':
		c.scene.Router().Toggle()
	case 'g', 'G':
		on := !c.scene.Router().GestureMode()
		c.scene.SetGestureMode(on)
		c.sound.Play(audio.CueTick)
		c.logger.Info("control mode", "gesture", on)
	case 'm', 'M':
		c.sound.ToggleMute()
	case 'p', 'P':
		c.paused.Store(c.clock.Toggle())
	case '+', '=':
		c.resizeFoliage(func(n int) int { return max(n*5/4, n+100) })
	case '-', '_':
		c.resizeFoliage(func(n int) int { return n * 4 / 5 })
	}
	return false
}

func (c *controller) resizeFoliage(next func(int) int) {
	n := min(max(next(c.scene.Groups()[0].Len()), 0), parameter.FoliageCount)
	if err := c.scene.Resize(0, n); err != nil {
		c.logger.Warn("resize foliage", "err", err)
		return
	}
	c.logger.Debug("foliage resized", "count", n)
}

// mouse: press on the gift clicks it, press elsewhere starts a drag
func (c *controller) mouse(ev *tcell.EventMouse, now time.Time) {
	x, y := ev.Position()
	px := float64(x) * parameter.CellPixelWidth
	router := c.scene.Router()

	hit := c.view.HitGift(x, y)
	c.scene.Gift().SetHovered(hit)
	c.scene.SetPointer(c.view.PointerNDC(x, y))

	down := ev.Buttons()&tcell.Button1 != 0
	switch {
	case down && !c.pressed:
		c.pressed = true
		if hit && c.scene.ClickGift(now) {
			return
		}
		router.PointerDown(px)
	case down:
		router.PointerMove(px)
	case c.pressed:
		c.pressed = false
		router.PointerUp()
	}
}

// tick advances the scene by scene-clock time since the last tick
func (c *controller) tick() float64 {
	now := c.clock.Now()
	dt := min(now.Sub(c.last).Seconds(), maxFrameStep)
	c.last = now
	c.scene.Update(dt)
	return dt
}

func (c *controller) hud(now time.Time) render.HUD {
	h := render.HUD{
		Muted:      c.sound.Muted(),
		AudioReady: c.sound.Ready(),
		Paused:     c.clock.IsPaused(),
		Feed:       c.feed,
	}
	if c.scene.Router().Acknowledged(now) {
		h.Toast = greetingText(c.greeting)
	}
	return h
}

func greetingText(name string) string {
	if name == "" {
		return "Merry Christmas"
	}
	return name + ", Merry Christmas"
}
