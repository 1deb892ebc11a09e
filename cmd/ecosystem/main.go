// Ecosystem opens a window with the procedural ecosystem scene. Keys stand
// in for the surrounding UI:
//
//	= / -   grow or shrink the population (shift for single steps)
//	0       clear the population
//	T       toggle the dark theme
//	F       toggle focus mode, P pauses it
//	N       preview the next species, B hides the preview
//	Esc     quit
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"

	"ecoscene/config"
	"ecoscene/internal/opengl"
	"ecoscene/renderer"
	"ecoscene/scenemanager"
	"ecoscene/window"
)

var (
	levelFlag   logLevelFlag
	configFlag  = flag.String("config", "", "YAML file overriding the embedded defaults")
	logFileFlag = flag.String("logfile", "", "write logs to this file, rotated, instead of stderr")
	countFlag   = flag.Int("count", 40, "initial number of plants and animals")
	dumpFlag    = flag.Bool("dump-config", false, "print the effective configuration and exit")
)

func init() {
	levelFlag.value = slog.LevelInfo
	flag.Var(&levelFlag, "loglevel", "set log level")
}

func main() {
	flag.Parse()

	var out io.Writer = os.Stderr
	if *logFileFlag != "" {
		lj := &lumberjack.Logger{
			Filename:   *logFileFlag,
			MaxSize:    20, // megabytes
			MaxBackups: 3,
		}
		defer lj.Close()
		out = lj
	}
	logger := slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: levelFlag.value}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	if *dumpFlag {
		if err := cfg.EncodeYAML(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		return
	}

	if err := run(cfg, logger); err != nil {
		logger.Error("ecosystem", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	win, err := window.New(window.Config{
		Width:     cfg.Window.Width,
		Height:    cfg.Window.Height,
		Title:     cfg.Window.Title,
		Resizable: cfg.Window.Resizable,
		VSync:     cfg.Window.VSync,
		Samples:   cfg.Window.Samples,
	})
	if err != nil {
		return err
	}
	defer win.Destroy()

	state := newUIState(*countFlag)
	h := newHUD(cfg.Window.Title, time.Now())

	m := scenemanager.New(cfg,
		scenemanager.WithLogger(logger),
		scenemanager.WithRendererFactory(openGLRenderer(cfg, logger)),
		scenemanager.WithFrameHook(func(now time.Time) {
			if h.frame(now) {
				win.SetTitle(h.text(state))
			}
		}),
	)
	defer m.Dispose()
	if err := m.Init(win, win); err != nil {
		return fmt.Errorf("init scene: %w", err)
	}

	apply := func() {
		m.UpdateScene(state.theme(), state.count, state.previewID(), state.focusing, state.paused)
		win.SetTitle(h.text(state))
		logger.Debug("ui state", "state", state.String())
	}
	win.SetKeyHandler(func(key, mods int) {
		if state.handleKey(key, mods) {
			apply()
		}
		if state.quit {
			win.SetShouldClose(true)
		}
	})
	apply()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := m.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// openGLRenderer builds the GL backend on the window's current context.
func openGLRenderer(cfg *config.Config, logger *slog.Logger) scenemanager.RendererFactory {
	return func(scenemanager.Canvas) (scenemanager.Renderer, error) {
		b, err := opengl.NewBackend(logger)
		if err != nil {
			return nil, err
		}
		return renderer.New(b,
			renderer.WithLogger(logger),
			renderer.WithShadows(cfg.Renderer.Shadows),
		), nil
	}
}
