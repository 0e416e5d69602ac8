package engine

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/evergreen/ambient"
	"github.com/lixenwraith/evergreen/config"
	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/gesture"
	"github.com/lixenwraith/evergreen/interaction"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/morph"
	"github.com/lixenwraith/evergreen/parameter"
	"github.com/lixenwraith/evergreen/status"
	"github.com/lixenwraith/evergreen/swarm"
	"github.com/lixenwraith/evergreen/vmath"
)

// Layer is one morph group to build: category, element count and color
type Layer struct {
	Name     string
	Category layout.Category
	Count    int
	Color    core.RGB
}

// Options fully describe a scene
type Options struct {
	Layers        []Layer // first layer drives decorations and the progress metric
	SwarmCount    int
	SnowCount     int
	SpiralSamples int
	EasingRate    float64
	Router        interaction.Options
	FrameCoupled  bool
	GestureMode   bool
	Seed          uint64
}

// OptionsFromConfig maps a validated configuration onto scene options
func OptionsFromConfig(cfg config.Config) (Options, error) {
	foliage, err := core.ParseHex(cfg.Tree.FoliageColor)
	if err != nil {
		return Options{}, fmt.Errorf("foliage color: %w", err)
	}
	layers, err := cfg.Layers()
	if err != nil {
		return Options{}, err
	}

	opts := Options{
		Layers:        make([]Layer, 0, len(layers)+1),
		SwarmCount:    cfg.Swarm.Count,
		SnowCount:     cfg.Snow.Count,
		SpiralSamples: cfg.Tree.SpiralSamples,
		EasingRate:    cfg.Motion.EasingRate,
		FrameCoupled:  cfg.Motion.FrameCoupled,
		GestureMode:   cfg.Gesture.Enabled,
		Seed:          cfg.Render.Seed,
		Router: interaction.Options{
			Damping:         cfg.Motion.Damping,
			DragSensitivity: cfg.Motion.DragSensitivity,
			IdleThreshold:   cfg.Motion.IdleThreshold,
			AmbientSpin:     cfg.Motion.AmbientSpin,
			GestureDeadband: cfg.Motion.GestureDeadband,
			GesturePush:     cfg.Motion.GesturePush,
			Acknowledge:     time.Duration(cfg.Motion.AcknowledgeSeconds * float64(time.Second)),
			FrameCoupled:    cfg.Motion.FrameCoupled,
		},
	}
	opts.Layers = append(opts.Layers, Layer{Name: "foliage", Category: layout.CategoryFoliage, Count: cfg.Tree.FoliageCount, Color: foliage})
	for i, l := range layers {
		opts.Layers = append(opts.Layers, Layer{
			Name:     fmt.Sprintf("%s-%d", l.Category, i),
			Category: l.Category,
			Count:    l.Count,
			Color:    l.Color,
		})
	}
	return opts, nil
}

// DefaultOptions is the default configuration as scene options
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(fmt.Sprintf("default scene options: %v", err))
	}
	return opts
}

type sceneMetrics struct {
	regime      *status.AtomicString
	progress    *status.AtomicFloat
	rotation    *status.AtomicFloat
	fps         *status.AtomicFloat
	respawns    *atomic.Int64
	frames      *atomic.Int64
	gestureMode *atomic.Bool
}

// Scene composes the morph groups, decorations, swarm, snow and router and
// advances them in a fixed order once per frame
type Scene struct {
	opts  Options
	rng   *vmath.FastRand
	slots []*layout.Stable

	groups []*morph.Group
	gift   *morph.Gift
	star   *morph.Star
	spiral *morph.Spiral
	swarm  *swarm.Swarm
	snow   *ambient.Snow
	router *interaction.Router

	mailbox   *gesture.Mailbox
	sample    core.MotionSample
	sampleSeq uint64
	sampleAge float64

	viewport swarm.Viewport
	pointerX float64
	pointerY float64
	elapsed  float64
	frames   int64
	metrics  sceneMetrics
	shown    core.Regime
	registry *status.Registry
}

// NewScene builds every layout up front; box and reg may be nil
// Fails fast on an invalid layer
func NewScene(opts Options, box *gesture.Mailbox, reg *status.Registry) (*Scene, error) {
	if len(opts.Layers) == 0 {
		return nil, fmt.Errorf("scene needs at least one layer")
	}
	if opts.EasingRate <= 0 {
		opts.EasingRate = parameter.EasingRate
	}
	if reg == nil {
		reg = status.NewRegistry()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := vmath.NewFastRand(seed)

	s := &Scene{
		opts:     opts,
		rng:      rng,
		router:   interaction.New(opts.Router),
		mailbox:  box,
		registry: reg,
		viewport: swarm.ViewportAt(parameter.CameraFOV, parameter.CameraZ, 1),
	}

	initial := core.RegimeFormed.Target()
	for _, l := range opts.Layers {
		slot := layout.NewStable(rng)
		lay, err := slot.Resolve(l.Count, l.Category)
		if err != nil {
			return nil, fmt.Errorf("layer %s: %w", l.Name, err)
		}
		s.slots = append(s.slots, slot)
		g := morph.NewGroup(l.Name, lay, l.Color, initial, opts.EasingRate)
		s.groups = append(s.groups, g)
	}

	tree := s.groups[0].Progress()
	s.gift = morph.NewGift(tree, rng)
	s.star = morph.NewStar(tree)
	s.spiral = morph.NewSpiral(tree, opts.SpiralSamples)
	s.swarm = swarm.New(swarm.Options{Count: opts.SwarmCount, FrameCoupled: opts.FrameCoupled}, rng)
	s.snow = ambient.NewSnow(opts.SnowCount, opts.FrameCoupled, rng)
	s.router.SetGestureMode(opts.GestureMode)
	s.gift.Update(0)
	s.star.Update(0)
	s.spiral.Update(0)

	s.metrics = sceneMetrics{
		regime:      reg.Strings.Get(status.KeyRegime),
		progress:    reg.Floats.Get(status.KeyProgress),
		rotation:    reg.Floats.Get(status.KeyRotation),
		fps:         reg.Floats.Get(status.KeyFPS),
		respawns:    reg.Ints.Get(status.KeySwarmRespawn),
		frames:      reg.Ints.Get(status.KeyFrameCount),
		gestureMode: reg.Bools.Get(status.KeyGestureMode),
	}
	s.shown = s.router.Regime()
	s.metrics.regime.Store(s.shown.String())
	s.publish()
	return s, nil
}

// Update advances one frame of dt seconds
//
// Order: read the gesture mailbox, route gesture to regime, integrate
// rotation, ease and blend every group, update decorations, step the swarm
// and the snow, publish metrics
func (s *Scene) Update(dt float64) {
	dt = max(dt, 0)

	s.readGesture(dt)
	s.router.ApplyGesture(s.sample)
	s.router.Step(dt, s.sample)

	s.elapsed += dt
	regime := s.router.Regime()
	for _, g := range s.groups {
		g.Update(regime, dt, s.elapsed)
	}
	s.gift.Update(s.elapsed)
	s.star.Update(s.elapsed)
	s.spiral.Update(s.elapsed)

	att := swarm.SelectAttractor(s.sample, s.router.GestureMode(), s.pointerX, s.pointerY, s.viewport)
	s.swarm.Step(regime, att, dt)
	s.snow.Step(dt, s.elapsed)

	s.frames++
	if dt > 0 {
		s.metrics.fps.Smooth(1/dt, 0.1)
	}
	s.publish()
}

// readGesture takes the newest mailbox sample; a sample not refreshed within
// GestureStaleSeconds of scene time decays to no hand
func (s *Scene) readGesture(dt float64) {
	if s.mailbox == nil {
		return
	}
	if seq := s.mailbox.Seq(); seq != s.sampleSeq {
		s.sampleSeq = seq
		s.sample, _ = s.mailbox.Latest()
		s.sampleAge = 0
		return
	}
	s.sampleAge += dt
	if s.sampleAge > parameter.GestureStaleSeconds {
		s.sample = core.MotionSample{}
	}
}

func (s *Scene) publish() {
	// String stores allocate; only republish on change
	if r := s.router.Regime(); r != s.shown {
		s.shown = r
		s.metrics.regime.Store(r.String())
	}
	s.metrics.progress.Set(s.Progress())
	s.metrics.rotation.Set(s.router.Rotation())
	s.metrics.respawns.Store(int64(s.swarm.Respawns()))
	s.metrics.frames.Store(s.frames)
	s.metrics.gestureMode.Store(s.router.GestureMode())
}

// SetPointer records the pointer in normalized device coordinates for the swarm
func (s *Scene) SetPointer(ndcX, ndcY float64) {
	s.pointerX = vmath.Clamp(ndcX, -1, 1)
	s.pointerY = vmath.Clamp(ndcY, -1, 1)
}

// SetAspect updates the swarm viewport for a new screen shape
func (s *Scene) SetAspect(aspect float64) {
	if aspect > 0 {
		s.viewport = swarm.ViewportAt(parameter.CameraFOV, parameter.CameraZ, aspect)
	}
}

// SetGestureMode switches control mode and publishes it
func (s *Scene) SetGestureMode(on bool) {
	s.router.SetGestureMode(on)
	s.metrics.gestureMode.Store(on)
}

// ClickGift forwards a click on the gift's hit region through the visibility gate
func (s *Scene) ClickGift(now time.Time) bool {
	return s.router.Click(s.gift, now)
}

// Resize changes a layer's element count, regenerating only if the count differs
func (s *Scene) Resize(layer, count int) error {
	if layer < 0 || layer >= len(s.groups) {
		return fmt.Errorf("layer %d out of range", layer)
	}
	old := s.groups[layer]
	slot := s.slots[layer]
	gen := slot.Generation()

	lay, err := slot.Resolve(count, old.Category())
	if err != nil {
		return fmt.Errorf("resize %s: %w", old.Name(), err)
	}
	if slot.Generation() == gen {
		return nil
	}

	g := morph.NewGroup(old.Name(), lay, old.Color(), old.Controller().Progress(), old.Controller().Rate())
	g.Blend(s.elapsed)
	s.groups[layer] = g
	if layer == 0 {
		// Decorations follow the first group's progress
		tree := g.Progress()
		s.gift = rebindGift(s.gift, tree, s.rng)
		s.star = morph.NewStar(tree)
		s.spiral = morph.NewSpiral(tree, s.opts.SpiralSamples)
		s.gift.Update(s.elapsed)
		s.star.Update(s.elapsed)
		s.spiral.Update(s.elapsed)
	}
	return nil
}

func rebindGift(old *morph.Gift, tree morph.ProgressView, rng *vmath.FastRand) *morph.Gift {
	g := morph.NewGift(tree, rng)
	g.SetHovered(old.Hovered())
	return g
}

func (s *Scene) Groups() []*morph.Group      { return s.groups }
func (s *Scene) Gift() *morph.Gift           { return s.gift }
func (s *Scene) Star() *morph.Star           { return s.star }
func (s *Scene) Spiral() *morph.Spiral       { return s.spiral }
func (s *Scene) Swarm() *swarm.Swarm         { return s.swarm }
func (s *Scene) Snow() *ambient.Snow         { return s.snow }
func (s *Scene) Router() *interaction.Router { return s.router }
func (s *Scene) Registry() *status.Registry  { return s.registry }
func (s *Scene) Sample() core.MotionSample   { return s.sample }
func (s *Scene) Regime() core.Regime         { return s.router.Regime() }
func (s *Scene) Rotation() float64           { return s.router.Rotation() }
func (s *Scene) Elapsed() float64            { return s.elapsed }
func (s *Scene) Frames() int64               { return s.frames }
func (s *Scene) FPS() float64                { return s.metrics.fps.Get() }

// Progress is the first group's progress
func (s *Scene) Progress() float64 {
	return s.groups[0].Controller().Progress()
}
