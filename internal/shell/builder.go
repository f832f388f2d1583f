package shell

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"winshell/internal/platform"
	"winshell/internal/render"
)

var ErrCreateWindow = errors.New("shell: create window")

// Config describes the native window a shell is created with.
type Config struct {
	Title       string
	Resizable   bool
	Borderless  bool
	AlwaysOnTop bool
	Bounds      platform.Rect
}

func DefaultConfig() Config {
	return Config{Bounds: platform.Rect{Width: 100, Height: 100}}
}

func (c Config) windowConfig() platform.WindowConfig {
	return platform.WindowConfig{
		Title:       c.Title,
		Bounds:      c.Bounds,
		Resizable:   c.Resizable,
		Borderless:  c.Borderless,
		AlwaysOnTop: c.AlwaysOnTop,
	}
}

type Option func(*options)

type options struct {
	logger        *slog.Logger
	canvas        func(width, height float64) render.Canvas
	bindings      []KeyBinding
	requestBuffer int
}

func defaultOptions() options {
	return options{
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		canvas: func(width, height float64) render.Canvas {
			return render.NewContext(width, height)
		},
		bindings:      DefaultKeyBindings(),
		requestBuffer: defaultRequestBuffer,
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithCanvas replaces the software canvas. fn receives the initial window
// size.
func WithCanvas(fn func(width, height float64) render.Canvas) Option {
	return func(o *options) {
		if fn != nil {
			o.canvas = fn
		}
	}
}

// WithKeyBindings sets the tracked keys, polled in the given order.
func WithKeyBindings(bindings []KeyBinding) Option {
	return func(o *options) {
		o.bindings = append([]KeyBinding(nil), bindings...)
	}
}

func WithRequestBuffer(size int) Option {
	return func(o *options) {
		if size > 0 {
			o.requestBuffer = size
		}
	}
}

// Create opens a native window for cfg and binds it to adapter. A failure
// wraps ErrCreateWindow; callers are expected to treat it as fatal.
func Create(p platform.Platform, cfg Config, adapter Adapter, opts ...Option) (*Shell, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	window, err := p.CreateWindow(cfg.windowConfig())
	if err != nil {
		return nil, fmt.Errorf("%w %q on %s: %w", ErrCreateWindow, cfg.Title, p.Name(), err)
	}

	text := NewTextQueue()
	window.SetInputCallback(text.PushCodepoint)
	window.SetPosition(int(cfg.Bounds.X), int(cfg.Bounds.Y))

	w, h := window.Size()
	s := &Shell{
		id:       uuid.New(),
		logger:   o.logger,
		window:   window,
		canvas:   o.canvas(float64(w), float64(h)),
		adapter:  adapter,
		bindings: o.bindings,
		text:     text,
		requests: make(chan Request, o.requestBuffer),
		width:    w,
		height:   h,
		update:   true,
	}
	s.running.Store(true)
	s.logger.Info("window created", "window", s.id, "platform", p.Name(), "title", cfg.Title, "width", w, "height", h)
	return s, nil
}
