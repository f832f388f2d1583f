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
	"syscall"

	"github.com/sqweek/dialog"
	"golang.org/x/term"

	"winshell/internal/app"
	"winshell/internal/config"
	"winshell/internal/shell"
)

var (
	configPath = flag.String("config", "winshell.toml", "Configuration file")
	logLevel   = flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	headless   = flag.Bool("headless", false, "Run without a native window")
	frames     = flag.Int("frames", 120, "Frames to run in headless mode")
	snapshot   = flag.String("snapshot", "", "Save the last headless frame to this image file")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "winshell: %v\n", err)
		os.Exit(2)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "winshell: %v\n", err)
			os.Exit(2)
		}
	}

	logger := newLogger(os.Stderr, cfg.Log)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := app.New(cfg, app.Options{
		ConfigPath: *configPath,
		Logger:     logger,
		Headless:   *headless,
		Frames:     *frames,
		Snapshot:   *snapshot,
	})
	if err := a.Run(ctx); err != nil {
		logger.Error("winshell failed", "err", err)
		if errors.Is(err, shell.ErrCreateWindow) && !*headless {
			dialog.Message("%v", err).Title("winshell").Error()
		}
		os.Exit(1)
	}
}

func newLogger(w io.Writer, cfg config.LogConfig) *slog.Logger {
	level, err := cfg.SlogLevel()
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	format := cfg.Format
	if format == "auto" {
		format = "json"
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			format = "text"
		}
	}
	if format == "text" {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}
