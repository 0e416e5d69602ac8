package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/evergreen/config"
	"github.com/lixenwraith/evergreen/engine"
	"github.com/lixenwraith/evergreen/gesture"
	"github.com/lixenwraith/evergreen/status"
)

type simFlags struct {
	steps   int
	dt      float64
	every   int
	script  string
	toggles []int
	clicks  []int
	seed    uint64
}

// simFrame is one line of simulate output
type simFrame struct {
	Step         int     `json:"step"`
	Time         float64 `json:"t"`
	Regime       string  `json:"regime"`
	Progress     float64 `json:"progress"`
	Rotation     float64 `json:"rotation"`
	Gesture      string  `json:"gesture"`
	GiftVisible  bool    `json:"gift_visible"`
	Acknowledged bool    `json:"acknowledged"`
	Respawns     uint64  `json:"swarm_respawns"`
}

func newSimulateCmd(a *app) *cobra.Command {
	f := simFlags{steps: 600, dt: 1.0 / 60, every: 30}
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Run the scene headless on a fixed clock and print JSON frames",
		Example: `  evergreen simulate --toggle 60 --steps 300
  evergreen simulate --script "open:2s fist:2s" --every 10`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			if cmd.Flags().Changed("seed") {
				cfg.Render.Seed = f.seed
			}
			if cfg.Render.Seed == 0 {
				// Reproducible by default
				cfg.Render.Seed = 1
			}
			if f.script != "" {
				cfg.Gesture.Script = f.script
			}
			return simulate(cmd.OutOrStdout(), cfg, f, loggerFromContext(cmd.Context()))
		},
	}

	fl := cmd.Flags()
	fl.IntVar(&f.steps, "steps", f.steps, "frames to simulate")
	fl.Float64Var(&f.dt, "dt", f.dt, "seconds per frame")
	fl.IntVar(&f.every, "every", f.every, "print every n-th frame")
	fl.StringVar(&f.script, "script", "", "gesture script driving the scene, enables gesture mode")
	fl.IntSliceVar(&f.toggles, "toggle", nil, "frames at which to toggle the regime")
	fl.IntSliceVar(&f.clicks, "click", nil, "frames at which to click the gift")
	fl.Uint64Var(&f.seed, "seed", 0, "layout random seed")
	return cmd
}

func simulate(w io.Writer, cfg config.Config, f simFlags, logger *log.Logger) error {
	if f.steps < 0 || f.dt < 0 || f.every < 1 {
		return fmt.Errorf("simulate: steps and dt must be non-negative and every at least 1")
	}

	var script []gesture.ScriptStep
	if cfg.Gesture.Script != "" {
		var err error
		if script, err = gesture.ParseScript(cfg.Gesture.Script); err != nil {
			return err
		}
		cfg.Gesture.Enabled = true
	}

	opts, err := engine.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	reg := status.NewRegistry()
	box := gesture.NewMailbox()
	scene, err := engine.NewScene(opts, box, reg)
	if err != nil {
		return err
	}
	cls, err := gesture.NewClassifier(cfg.Gesture.ClosedThreshold, cfg.Gesture.OpenThreshold)
	if err != nil {
		return err
	}

	frames := engine.NewFrameClock(time.Date(2025, 12, 24, 18, 0, 0, 0, time.UTC))
	clock := engine.NewPausableClock(frames)
	enc := json.NewEncoder(w)

	for i := 0; i < f.steps; i++ {
		if slices.Contains(f.toggles, i) {
			scene.Router().Toggle()
		}
		if script != nil {
			if st, ok := gesture.StepAt(script, clock.Elapsed(), true); ok {
				var hand []gesture.Landmark
				if !st.Absent {
					hand = gesture.SynthesizeHand(st.Gesture, st.X, st.Y)
				}
				box.Publish(cls.Classify(hand))
			}
		}
		if slices.Contains(f.clicks, i) && !scene.ClickGift(clock.Now()) {
			logger.Debug("click refused", "step", i)
		}

		frames.Step(f.dt)
		scene.Update(f.dt)

		if i%f.every == 0 || i == f.steps-1 {
			if err := enc.Encode(simFrame{
				Step:         i,
				Time:         scene.Elapsed(),
				Regime:       scene.Regime().String(),
				Progress:     scene.Progress(),
				Rotation:     scene.Rotation(),
				Gesture:      scene.Sample().Gesture.String(),
				GiftVisible:  scene.Gift().Interactable(),
				Acknowledged: scene.Router().Acknowledged(clock.Now()),
				Respawns:     scene.Swarm().Respawns(),
			}); err != nil {
				return fmt.Errorf("write frame: %w", err)
			}
		}
	}

	logger.Info("simulation done", "frames", scene.Frames(), "regime", scene.Regime(), "progress", fmt.Sprintf("%.3f", scene.Progress()))
	return nil
}
