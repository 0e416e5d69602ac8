package render

import (
	"math"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/engine"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/vmath"
)

func TestCameraProjectsTargetToCenter(t *testing.T) {
	cam := NewCamera(80, 24)
	x, y, depth, ok := cam.Project(vmath.Vec3F{})
	if !ok {
		t.Fatal("origin not visible")
	}
	if x != 40 || y != 12 {
		t.Errorf("origin at (%d,%d), want (40,12)", x, y)
	}
	want := vmath.V3FMag(cam.Position)
	if math.Abs(depth-want) > 1e-9 {
		t.Errorf("depth = %v, want %v", depth, want)
	}
}

func TestCameraRejectsBehind(t *testing.T) {
	cam := NewCamera(80, 24)
	if _, _, _, ok := cam.Project(vmath.Vec3F{Y: 4, Z: 30}); ok {
		t.Error("point behind the camera projected")
	}
	if _, _, _, ok := cam.Project(vmath.Vec3F{X: 500}); ok {
		t.Error("far off-axis point projected on screen")
	}
}

func TestCameraAxes(t *testing.T) {
	cam := NewCamera(80, 24)
	cx, cy, _, _ := cam.Project(vmath.Vec3F{})
	rx, _, _, _ := cam.Project(vmath.Vec3F{X: 2})
	_, uy, _, _ := cam.Project(vmath.Vec3F{Y: 2})
	if rx <= cx {
		t.Errorf("+X projected left: %d vs %d", rx, cx)
	}
	if uy >= cy {
		t.Errorf("+Y projected down: %d vs %d", uy, cy)
	}
}

func TestCellToNDC(t *testing.T) {
	cam := NewCamera(80, 24)
	nx, ny := cam.CellToNDC(0, 0)
	if nx > -0.95 || ny < 0.95 {
		t.Errorf("top-left ndc = (%v,%v)", nx, ny)
	}
	nx, ny = cam.CellToNDC(79, 23)
	if nx < 0.95 || ny > -0.95 {
		t.Errorf("bottom-right ndc = (%v,%v)", nx, ny)
	}
}

func TestBufferDepthTest(t *testing.T) {
	b := NewBuffer(4, 2)
	red := core.RGB{R: 255}
	blue := core.RGB{B: 255}

	if !b.Plot(1, 1, 10, 'a', red) {
		t.Fatal("first plot refused")
	}
	if b.Plot(1, 1, 12, 'b', blue) {
		t.Error("farther plot overwrote nearer")
	}
	if !b.Plot(1, 1, 5, 'c', blue) {
		t.Error("nearer plot refused")
	}
	if c := b.Get(1, 1); c.Rune != 'c' || c.Fg != blue {
		t.Errorf("cell = %+v", c)
	}
	if b.Plot(-1, 0, 1, 'x', red) || b.Plot(4, 0, 1, 'x', red) {
		t.Error("out of bounds plot accepted")
	}

	b.Text(0, 1, "hud", red, core.RGB{}, tcell.AttrNone)
	if b.Plot(1, 1, 0.1, 'z', blue) {
		t.Error("plot over overlay text accepted")
	}
	if c := b.Get(1, 1); c.Rune != 'u' {
		t.Errorf("overlay cell = %q", c.Rune)
	}

	b.Clear()
	if c := b.Get(1, 1); c.Rune != 0 || !math.IsInf(b.Depth(1, 1), 1) {
		t.Errorf("clear left %+v depth %v", c, b.Depth(1, 1))
	}
}

func TestBufferResizeReuses(t *testing.T) {
	b := NewBuffer(10, 10)
	b.Resize(5, 4)
	if w, h := b.Bounds(); w != 5 || h != 4 {
		t.Fatalf("bounds = %dx%d", w, h)
	}
	b.Plot(4, 3, 1, 'x', core.RGBWhite)
	if b.Get(4, 3).Rune != 'x' {
		t.Error("plot at new corner lost")
	}
	b.Resize(-1, 3)
	if w, h := b.Bounds(); w != 0 || h != 3 {
		t.Errorf("negative resize bounds = %dx%d", w, h)
	}
}

func TestPlotAlphaZeroSkips(t *testing.T) {
	b := NewBuffer(3, 3)
	if b.PlotAlpha(1, 1, 1, '·', core.RGBWhite, 0) {
		t.Error("transparent plot accepted")
	}
	if !b.PlotAlpha(1, 1, 1, '·', core.RGBWhite, 0.5) {
		t.Fatal("half alpha plot refused")
	}
	if c := b.Get(1, 1); c.Fg == core.RGBWhite {
		t.Error("alpha did not fade the glyph")
	}
}

func testScene(t *testing.T) *engine.Scene {
	t.Helper()
	opts := engine.DefaultOptions()
	opts.Seed = 11
	opts.SwarmCount = 40
	opts.SnowCount = 40
	opts.Layers = []engine.Layer{
		{Name: "foliage", Category: layout.CategoryFoliage, Count: 400, Color: core.RGB{G: 200}},
		{Name: "ball-0", Category: layout.CategoryBall, Count: 10, Color: core.RGB{R: 255}},
	}
	s, err := engine.NewScene(opts, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestGiftDrawnAndHittableWhenFormed(t *testing.T) {
	s := testScene(t)
	s.Update(1.0 / 60)

	r := NewRenderer(80, 24)
	r.Draw(s, HUD{})

	rect, shown := r.GiftRect()
	if !shown {
		t.Fatal("gift not drawn while formed")
	}
	cx, cy := (rect.X0+rect.X1)/2, (rect.Y0+rect.Y1)/2
	if !r.HitGift(cx, cy) {
		t.Errorf("center (%d,%d) of %+v missed", cx, cy, rect)
	}
	if r.HitGift(rect.X1+1, cy) || r.HitGift(cx, rect.Y0-1) {
		t.Error("hit outside the gift")
	}
	if c := r.Buffer().Get(cx, cy); c.Rune == 0 {
		t.Error("gift center cell empty")
	}
}

func TestGiftHiddenWhenScattered(t *testing.T) {
	s := testScene(t)
	s.Router().Toggle()
	for i := 0; i < 6*60; i++ {
		s.Update(1.0 / 60)
	}

	r := NewRenderer(80, 24)
	r.Draw(s, HUD{})
	if _, shown := r.GiftRect(); shown {
		t.Fatal("gift drawn while scattered")
	}
	for y := 0; y < 24; y++ {
		for x := 0; x < 80; x++ {
			if r.HitGift(x, y) {
				t.Fatalf("hidden gift hit at (%d,%d)", x, y)
			}
		}
	}
}

func TestFlushToSimulationScreen(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(80, 24)

	s := testScene(t)
	s.Update(1.0 / 60)

	r := NewRenderer(80, 24)
	r.Draw(s, HUD{Title: "EVERGREEN", Toast: "Ada, Merry Christmas", AudioReady: true, Muted: true})
	r.Flush(screen)

	row := func(y int) string {
		out := make([]rune, 0, 80)
		for x := 0; x < 80; x++ {
			ch, _, _, _ := screen.GetContent(x, y)
			out = append(out, ch)
		}
		return string(out)
	}
	top := row(0)
	for _, want := range []string{"EVERGREEN", "FORMED", "muted"} {
		if !strings.Contains(top, want) {
			t.Errorf("hud row %q missing %q", top, want)
		}
	}
	if toast := row(2); !strings.Contains(toast, "Merry Christmas") {
		t.Errorf("toast row %q", toast)
	}
}
