// Package config loads the runtime tunables.
//
// Precedence, lowest first: built-in defaults, TOML file, EVERGREEN_*
// environment variables, then command line flags applied by the caller.
// Validate fails fast on anything that would produce a degenerate layout.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	charmlog "github.com/charmbracelet/log"

	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/layout"
	"github.com/lixenwraith/evergreen/parameter"
)

// EnvPrefix namespaces every environment override
const EnvPrefix = "EVERGREEN_"

var (
	ErrInvalid    = errors.New("invalid config")
	ErrUnknownKey = errors.New("unknown config key")
)

type Config struct {
	Tree    TreeConfig    `toml:"tree" envPrefix:"TREE_"`
	Motion  MotionConfig  `toml:"motion" envPrefix:"MOTION_"`
	Swarm   SwarmConfig   `toml:"swarm" envPrefix:"SWARM_"`
	Snow    SnowConfig    `toml:"snow" envPrefix:"SNOW_"`
	Gesture GestureConfig `toml:"gesture" envPrefix:"GESTURE_"`
	Feed    FeedConfig    `toml:"feed" envPrefix:"FEED_"`
	Render  RenderConfig  `toml:"render" envPrefix:"RENDER_"`
	Audio   AudioConfig   `toml:"audio" envPrefix:"AUDIO_"`
	Log     LogConfig     `toml:"log" envPrefix:"LOG_"`
}

type TreeConfig struct {
	FoliageCount  int              `toml:"foliage_count" env:"FOLIAGE_COUNT"`
	FoliageColor  string           `toml:"foliage_color" env:"FOLIAGE_COLOR"`
	SpiralSamples int              `toml:"spiral_samples" env:"SPIRAL_SAMPLES"`
	Greeting      string           `toml:"greeting" env:"GREETING"`
	Ornaments     []OrnamentConfig `toml:"ornaments"`
}

// OrnamentConfig is one ornament layer: a category, a count and a color
type OrnamentConfig struct {
	Category string `toml:"category"`
	Count    int    `toml:"count"`
	Color    string `toml:"color"`
}

type MotionConfig struct {
	EasingRate         float64 `toml:"easing_rate" env:"EASING_RATE"`
	Damping            float64 `toml:"damping" env:"DAMPING"`
	DragSensitivity    float64 `toml:"drag_sensitivity" env:"DRAG_SENSITIVITY"`
	IdleThreshold      float64 `toml:"idle_threshold" env:"IDLE_THRESHOLD"`
	AmbientSpin        float64 `toml:"ambient_spin" env:"AMBIENT_SPIN"`
	GestureDeadband    float64 `toml:"gesture_deadband" env:"GESTURE_DEADBAND"`
	GesturePush        float64 `toml:"gesture_push" env:"GESTURE_PUSH"`
	AcknowledgeSeconds float64 `toml:"acknowledge_seconds" env:"ACKNOWLEDGE_SECONDS"`
	// FrameCoupled applies per-frame constants once per frame regardless of frame time
	FrameCoupled bool `toml:"frame_coupled" env:"FRAME_COUPLED"`
}

type SwarmConfig struct {
	Count int `toml:"count" env:"COUNT"`
}

type SnowConfig struct {
	Count int `toml:"count" env:"COUNT"`
}

type GestureConfig struct {
	// Enabled starts in gesture control mode
	Enabled         bool    `toml:"enabled" env:"ENABLED"`
	ClosedThreshold float64 `toml:"closed_threshold" env:"CLOSED_THRESHOLD"`
	OpenThreshold   float64 `toml:"open_threshold" env:"OPEN_THRESHOLD"`
	// Script replays synthetic gestures instead of the feed, see gesture.ParseScript
	Script string `toml:"script" env:"SCRIPT"`
}

type FeedConfig struct {
	Enabled        bool     `toml:"enabled" env:"ENABLED"`
	Addr           string   `toml:"addr" env:"ADDR"`
	AllowedOrigins []string `toml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`
}

type RenderConfig struct {
	FPS int `toml:"fps" env:"FPS"`
	// Seed fixes the layout random source; 0 seeds from the clock
	Seed uint64 `toml:"seed" env:"SEED"`
}

type AudioConfig struct {
	Enabled bool `toml:"enabled" env:"ENABLED"`
	// Volume in beep's base-2 exponent units; 0 is unity gain
	Volume float64 `toml:"volume" env:"VOLUME"`
}

type LogConfig struct {
	Level string `toml:"level" env:"LEVEL"`
	File  string `toml:"file" env:"FILE"`
}

// Default returns the reference configuration sized for a terminal
func Default() Config {
	return Config{
		Tree: TreeConfig{
			FoliageCount:  6000,
			FoliageColor:  "#2f7d4a",
			SpiralSamples: parameter.SpiralSamples,
			Ornaments: []OrnamentConfig{
				{Category: "gift", Count: 30, Color: "#5e0b0b"},
				{Category: "gift", Count: 20, Color: "#8a6d1c"},
				{Category: "ball", Count: 80, Color: "#F3E5AB"},
				{Category: "ball", Count: 50, Color: "#C0C0C0"},
				{Category: "ball", Count: 40, Color: "#ff0000"},
				{Category: "ball", Count: 40, Color: "#FFD700"},
				{Category: "light", Count: 300, Color: "#fffae6"},
			},
		},
		Motion: MotionConfig{
			EasingRate:         parameter.EasingRate,
			Damping:            parameter.RotationDamping,
			DragSensitivity:    parameter.DragSensitivity,
			IdleThreshold:      parameter.IdleThreshold,
			AmbientSpin:        parameter.AmbientSpin,
			GestureDeadband:    parameter.GestureDeadband,
			GesturePush:        parameter.GesturePush,
			AcknowledgeSeconds: parameter.AcknowledgeSeconds,
		},
		Swarm: SwarmConfig{Count: parameter.SwarmCount},
		Snow:  SnowConfig{Count: 1500},
		Gesture: GestureConfig{
			ClosedThreshold: parameter.GestureClosedThreshold,
			OpenThreshold:   parameter.GestureOpenThreshold,
		},
		Feed: FeedConfig{
			Addr:           parameter.FeedAddr,
			AllowedOrigins: []string{"*"},
		},
		Render: RenderConfig{FPS: 30},
		Audio:  AudioConfig{Enabled: true, Volume: -1},
		Log:    LogConfig{Level: "info", File: "evergreen.log"},
	}
}

// Load applies the TOML file at path (if non-empty) and the environment over
// the defaults, then validates
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config: %w", err)
		}
		if err := cfg.decode(data); err != nil {
			return cfg, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Parse decodes TOML text over the defaults without touching the environment
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := cfg.decode(data); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) decode(data []byte) error {
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return fmt.Errorf("decode toml: %w", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays EVERGREEN_* variables; unset variables leave fields untouched
func (c *Config) ApplyEnv() error {
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// Encode writes the configuration as TOML
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// String renders the configuration as TOML
func (c Config) String() string {
	var buf bytes.Buffer
	if err := c.Encode(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}

// Validate reports every problem at once
func (c Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Tree.FoliageCount < 0 {
		bad("tree.foliage_count %d is negative", c.Tree.FoliageCount)
	}
	if _, err := core.ParseHex(c.Tree.FoliageColor); err != nil {
		bad("tree.foliage_color: %w", err)
	}
	if c.Tree.SpiralSamples < 2 {
		bad("tree.spiral_samples %d must be at least 2", c.Tree.SpiralSamples)
	}
	for i, o := range c.Tree.Ornaments {
		cat, err := layout.ParseCategory(o.Category)
		if err != nil {
			bad("tree.ornaments[%d]: %w", i, err)
		} else if cat.IsPointCloud() {
			bad("tree.ornaments[%d]: %s is not an ornament category", i, o.Category)
		}
		if o.Count < 0 {
			bad("tree.ornaments[%d].count %d is negative", i, o.Count)
		}
		if _, err := core.ParseHex(o.Color); err != nil {
			bad("tree.ornaments[%d].color: %w", i, err)
		}
	}

	m := c.Motion
	if m.EasingRate <= 0 {
		bad("motion.easing_rate %g must be positive", m.EasingRate)
	}
	if m.Damping <= 0 || m.Damping > 1 {
		bad("motion.damping %g outside (0, 1]", m.Damping)
	}
	if m.IdleThreshold < 0 || m.AmbientSpin < 0 || m.GestureDeadband < 0 || m.AcknowledgeSeconds < 0 {
		bad("motion thresholds must not be negative")
	}

	if c.Swarm.Count < 0 {
		bad("swarm.count %d is negative", c.Swarm.Count)
	}
	if c.Snow.Count < 0 {
		bad("snow.count %d is negative", c.Snow.Count)
	}

	g := c.Gesture
	if g.ClosedThreshold <= 0 || g.OpenThreshold < g.ClosedThreshold {
		bad("gesture thresholds closed=%g open=%g must satisfy 0 < closed <= open", g.ClosedThreshold, g.OpenThreshold)
	}

	if c.Feed.Enabled && c.Feed.Addr == "" {
		bad("feed.addr is required when the feed is enabled")
	}
	if c.Render.FPS < 1 || c.Render.FPS > 240 {
		bad("render.fps %d outside [1, 240]", c.Render.FPS)
	}
	if _, err := charmlog.ParseLevel(c.Log.Level); err != nil {
		bad("log.level: %w", err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalid, errors.Join(errs...))
	}
	return nil
}

// Layer is a validated ornament layer
type Layer struct {
	Category layout.Category
	Count    int
	Color    core.RGB
}

// Layers resolves the ornament configuration
func (c Config) Layers() ([]Layer, error) {
	out := make([]Layer, 0, len(c.Tree.Ornaments))
	for i, o := range c.Tree.Ornaments {
		cat, err := layout.ParseCategory(o.Category)
		if err != nil {
			return nil, fmt.Errorf("ornament %d: %w", i, err)
		}
		col, err := core.ParseHex(o.Color)
		if err != nil {
			return nil, fmt.Errorf("ornament %d: %w", i, err)
		}
		out = append(out, Layer{Category: cat, Count: o.Count, Color: col})
	}
	return out, nil
}

// LogLevel parses Log.Level; Validate has already rejected bad values
func (c Config) LogLevel() charmlog.Level {
	lvl, err := charmlog.ParseLevel(c.Log.Level)
	if err != nil {
		return charmlog.InfoLevel
	}
	return lvl
}
