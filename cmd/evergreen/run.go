package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/lixenwraith/evergreen/audio"
	"github.com/lixenwraith/evergreen/config"
	"github.com/lixenwraith/evergreen/core"
	"github.com/lixenwraith/evergreen/engine"
	"github.com/lixenwraith/evergreen/gesture"
	"github.com/lixenwraith/evergreen/render"
	"github.com/lixenwraith/evergreen/service"
	"github.com/lixenwraith/evergreen/status"
)

// errQuit ends the UI loop on user request
var errQuit = errors.New("quit")

type runFlags struct {
	logFile  string
	gesture  bool
	feed     bool
	feedAddr string
	script   string
	name     string
	mute     bool
	fps      int
	seed     uint64
}

func newRunCmd(a *app) *cobra.Command {
	var f runFlags
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Show the tree in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			applyRunFlags(cmd, &cfg, f)
			if err := cfg.Validate(); err != nil {
				return err
			}

			logFile, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("open log file: %w", err)
			}
			defer logFile.Close()
			a.cfg = cfg
			logger := newLogger(logFile, a.level())

			return runTerminal(cmd.Context(), cfg, f.mute, logger)
		},
	}

	fl := cmd.Flags()
	fl.StringVar(&f.logFile, "log-file", "", "log destination (default from config)")
	fl.BoolVarP(&f.gesture, "gesture", "g", false, "start in gesture control mode")
	fl.BoolVar(&f.feed, "feed", false, "serve the HTTP landmark feed")
	fl.StringVar(&f.feedAddr, "feed-addr", "", "landmark feed listen address")
	fl.StringVar(&f.script, "script", "", `replay synthetic gestures, e.g. "open:2s fist:2s"`)
	fl.StringVarP(&f.name, "name", "n", "", "name shown when the gift is opened")
	fl.BoolVar(&f.mute, "mute", false, "start muted")
	fl.IntVar(&f.fps, "fps", 0, "frame rate")
	fl.Uint64Var(&f.seed, "seed", 0, "layout random seed")
	return cmd
}

// applyRunFlags overlays flags the user actually set
func applyRunFlags(cmd *cobra.Command, cfg *config.Config, f runFlags) {
	changed := cmd.Flags().Changed
	if changed("log-file") {
		cfg.Log.File = f.logFile
	}
	if changed("gesture") {
		cfg.Gesture.Enabled = f.gesture
	}
	if changed("feed") {
		cfg.Feed.Enabled = f.feed
	}
	if changed("feed-addr") {
		cfg.Feed.Addr = f.feedAddr
	}
	if changed("script") {
		cfg.Gesture.Script = f.script
	}
	if changed("name") {
		cfg.Tree.Greeting = f.name
	}
	if changed("fps") {
		cfg.Render.FPS = f.fps
	}
	if changed("seed") {
		cfg.Render.Seed = f.seed
	}
}

// landmarkSource picks the tracker input: a script wins over the feed
// feed is non-nil only when the HTTP server must be run
func landmarkSource(cfg config.Config, box *gesture.Mailbox, reg *status.Registry, logger *log.Logger) (src gesture.Source, feed *gesture.FeedServer, err error) {
	switch {
	case cfg.Gesture.Script != "":
		steps, err := gesture.ParseScript(cfg.Gesture.Script)
		if err != nil {
			return nil, nil, err
		}
		return gesture.NewScriptSource(steps, time.Second/30, true), nil, nil
	case cfg.Feed.Enabled:
		feed = gesture.NewFeedServer(gesture.FeedOptions{
			Addr:           cfg.Feed.Addr,
			AllowedOrigins: cfg.Feed.AllowedOrigins,
		}, box, reg, logger)
		return feed, feed, nil
	default:
		return nil, nil, nil
	}
}

func runTerminal(ctx context.Context, cfg config.Config, mute bool, logger *log.Logger) error {
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

	src, feed, err := landmarkSource(cfg, box, reg, logger)
	if err != nil {
		return err
	}
	cls, err := gesture.NewClassifier(cfg.Gesture.ClosedThreshold, cfg.Gesture.OpenThreshold)
	if err != nil {
		return err
	}
	tracker := gesture.NewTracker(src, cls, box, reg, logger)
	sound := audio.NewSoundManager(audio.Options{
		Enabled: cfg.Audio.Enabled,
		Volume:  cfg.Audio.Volume,
		Seed:    cfg.Render.Seed,
	}, reg, logger)

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	hub := service.NewHub(logger)
	for _, svc := range []service.Service{sound, tracker} {
		if err := hub.Register(svc); err != nil {
			return err
		}
	}
	if err := hub.InitAll(mute); err != nil {
		return err
	}
	if err := hub.StartAll(ctx); err != nil {
		return err
	}
	defer hub.StopAll()
	for name, reason := range hub.Skipped() {
		logger.Info("running without service", "service", name, "reason", reason)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	core.SetCrashReset(screen.Fini)
	screen.EnableMouse()
	screen.EnableFocus()
	screen.HideCursor()

	w, h := screen.Size()
	view := render.NewRenderer(w, h)
	clock := engine.NewPausableClock(engine.NewSystemTimeProvider())
	ctl := newController(scene, view, sound, clock, logger)
	ctl.greeting = cfg.Tree.Greeting
	if feed != nil {
		ctl.feed = cfg.Feed.Addr
	}

	g, gctx := errgroup.WithContext(ctx)
	if feed != nil {
		g.Go(func() error { return feed.Serve(gctx) })
	}
	g.Go(func() error { return uiLoop(gctx, screen, ctl, view, cfg.Render.FPS) })

	logger.Info("started", "regime", scene.Regime(), "foliage", scene.Groups()[0].Len(), "gesture", cfg.Gesture.Enabled)
	err = g.Wait()
	if errors.Is(err, errQuit) {
		err = nil
	}
	logger.Info("stopped", "frames", scene.Frames())
	return err
}

// uiLoop owns the screen: it renders on a ticker and applies input in between
func uiLoop(ctx context.Context, screen tcell.Screen, ctl *controller, view *render.Renderer, fps int) error {
	events := make(chan tcell.Event, 64)
	core.Go(func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	ticker := time.NewTicker(time.Second / time.Duration(max(fps, 1)))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if ctl.handle(ev, time.Now()) {
				return errQuit
			}
		case <-ticker.C:
			ctl.tick()
			view.Draw(ctl.scene, ctl.hud(time.Now()))
			view.Flush(screen)
		}
	}
}
