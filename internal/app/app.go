package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/disintegration/imaging"

	"winshell/internal/config"
	"winshell/internal/input"
	"winshell/internal/platform"
	"winshell/internal/platform/ebitenwin"
	"winshell/internal/platform/headless"
	"winshell/internal/shell"
)

type Options struct {
	ConfigPath string
	Logger     *slog.Logger

	// Headless runs on the in-memory platform for Frames frames.
	Headless bool
	Frames   int
	// Snapshot, if set, receives the last headless frame as an image.
	Snapshot string
}

type App struct {
	cfg    config.Config
	opts   Options
	logger *slog.Logger
	pad    *Pad
}

func New(cfg config.Config, opts Options) *App {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &App{cfg: cfg, opts: opts, logger: logger, pad: NewPad(cfg, logger)}
}

func (a *App) Pad() *Pad { return a.pad }

// Platform returns the backend the app runs on.
func (a *App) Platform() platform.Platform {
	if a.opts.Headless {
		return headless.New()
	}
	return ebitenwin.New(ebitenwin.Options{
		TPS:            a.cfg.Loop.TPS,
		RepeatDelay:    a.cfg.Loop.RepeatDelay,
		RepeatInterval: a.cfg.Loop.RepeatInterval,
		DebugOverlay:   a.cfg.Loop.DebugOverlay,
	})
}

// Run opens the pad window and blocks until it closes or ctx is done.
// Window creation failures wrap shell.ErrCreateWindow.
func (a *App) Run(ctx context.Context) error {
	return a.RunOn(ctx, a.Platform())
}

func (a *App) RunOn(ctx context.Context, p platform.Platform) error {
	s, err := shell.Create(p, shellConfig(a.cfg), a.pad,
		shell.WithLogger(a.logger),
		shell.WithKeyBindings(KeyBindings()),
	)
	if err != nil {
		return err
	}
	a.pad.Attach(shellHost{s})

	var hw *headless.Window
	if w, ok := s.Window().(*headless.Window); ok {
		hw = w
		w.SetActive(true)
		if a.opts.Frames > 0 {
			w.CloseAfter(a.opts.Frames)
		}
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	if a.opts.ConfigPath != "" {
		sender := s.Sender()
		go func() {
			err := config.Watch(ctx, a.opts.ConfigPath, a.logger, func(cfg config.Config) {
				a.pad.Reload(cfg)
				sender.RequestUpdate()
			})
			if err != nil {
				a.logger.Warn("config watch stopped", "err", err)
			}
		}()
	}

	if err := s.Run(); err != nil {
		return fmt.Errorf("run shell: %w", err)
	}

	if hw != nil && a.opts.Snapshot != "" {
		if fb := hw.LastFrame(); fb != nil {
			if err := imaging.Save(fb.Image(), a.opts.Snapshot); err != nil {
				return fmt.Errorf("save snapshot: %w", err)
			}
			a.logger.Info("snapshot saved", "path", a.opts.Snapshot)
		}
	}
	return nil
}

func shellConfig(cfg config.Config) shell.Config {
	sc := shell.DefaultConfig()
	sc.Title = cfg.Window.Title
	sc.Resizable = cfg.Window.Resizable
	sc.Borderless = cfg.Window.Borderless
	sc.AlwaysOnTop = cfg.Window.AlwaysOnTop
	sc.Bounds = platform.Rect{
		X:      float64(cfg.Window.X),
		Y:      float64(cfg.Window.Y),
		Width:  float64(cfg.Window.Width),
		Height: float64(cfg.Window.Height),
	}
	return sc
}

// KeyBindings extends the default tracked keys with the pad's extra
// shortcuts.
func KeyBindings() []shell.KeyBinding {
	return append(shell.DefaultKeyBindings(),
		shell.NewKeyBinding(platform.KeyCodeEnd, input.KeyEnd),
		shell.NewKeyBinding(platform.KeyCodeO, input.KeyO),
		shell.NewKeyBinding(platform.KeyCodeS, input.KeyS),
	)
}
