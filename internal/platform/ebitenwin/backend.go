package ebitenwin

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"winshell/internal/platform"
	"winshell/internal/render"
)

var (
	ErrSingleWindow = errors.New("ebitenwin: only one window per process")
	ErrNoWindow     = errors.New("ebitenwin: no window created")
)

// Options tune the ebiten run loop. Repeat timings are in ticks.
type Options struct {
	TPS            int
	RepeatDelay    int
	RepeatInterval int
	DebugOverlay   bool
}

func DefaultOptions() Options {
	return Options{TPS: 60, RepeatDelay: 30, RepeatInterval: 3}
}

// Platform opens the process-wide ebiten window. Ebiten owns the main
// loop, so Platform and Window both implement platform.Driver.
type Platform struct {
	opts   Options
	window *Window
}

func New(opts Options) *Platform {
	def := DefaultOptions()
	if opts.TPS <= 0 {
		opts.TPS = def.TPS
	}
	if opts.RepeatDelay <= 0 {
		opts.RepeatDelay = def.RepeatDelay
	}
	if opts.RepeatInterval <= 0 {
		opts.RepeatInterval = def.RepeatInterval
	}
	return &Platform{opts: opts}
}

func (p *Platform) Name() string { return "ebiten" }

func (p *Platform) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	if p.window != nil {
		return nil, ErrSingleWindow
	}
	w, h := int(cfg.Bounds.Width), int(cfg.Bounds.Height)
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("ebitenwin: invalid window size %dx%d", w, h)
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowDecorated(!cfg.Borderless)
	ebiten.SetWindowFloating(cfg.AlwaysOnTop)
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	} else {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeDisabled)
	}
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(p.opts.TPS)

	p.window = &Window{opts: p.opts, width: w, height: h}
	return p.window, nil
}

func (p *Platform) Drive(step func() bool) error {
	if p.window == nil {
		return ErrNoWindow
	}
	return p.window.Drive(step)
}

// Window adapts the ebiten game loop to platform.Window. All methods run
// on the ebiten update goroutine.
type Window struct {
	opts   Options
	width  int
	height int
	closed bool

	step     func() bool
	callback platform.InputCallback
	chars    []rune

	frame *render.FrameBuffer
	fresh bool
	image *ebiten.Image
}

func (w *Window) Drive(step func() bool) error {
	w.step = step
	if err := ebiten.RunGame(w); err != nil {
		return fmt.Errorf("ebitenwin: run: %w", err)
	}
	return nil
}

func (w *Window) Update() error {
	w.chars = ebiten.AppendInputChars(w.chars[:0])
	if w.callback != nil {
		for _, r := range w.chars {
			w.callback(uint32(r))
		}
	}
	if w.closed || w.step == nil || !w.step() {
		return ebiten.Termination
	}
	return nil
}

func (w *Window) Draw(screen *ebiten.Image) {
	if fb := w.frame; fb != nil && fb.W > 0 && fb.H > 0 {
		if w.image == nil || w.image.Bounds().Dx() != fb.W || w.image.Bounds().Dy() != fb.H {
			w.image = ebiten.NewImage(fb.W, fb.H)
			w.fresh = true
		}
		if w.fresh {
			w.image.WritePixels(fb.Pixels)
			w.fresh = false
		}
		screen.DrawImage(w.image, nil)
	}
	if w.opts.DebugOverlay {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("TPS: %0.1f FPS: %0.1f", ebiten.ActualTPS(), ebiten.ActualFPS()))
	}
}

func (w *Window) Layout(outsideWidth, outsideHeight int) (int, int) {
	w.width, w.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (w *Window) Size() (int, int) { return w.width, w.height }

func (w *Window) MousePos() (float64, float64, bool) {
	x, y := ebiten.CursorPosition()
	if x < 0 || y < 0 || x >= w.width || y >= w.height {
		return 0, 0, false
	}
	return float64(x), float64(y), true
}

func (w *Window) MouseDown(button platform.MouseButton) bool {
	if button < 0 || int(button) >= len(mouseMap) {
		return false
	}
	return ebiten.IsMouseButtonPressed(mouseMap[button])
}

func (w *Window) ScrollWheel() (float64, float64, bool) {
	dx, dy := ebiten.Wheel()
	return dx, dy, dx != 0 || dy != 0
}

func (w *Window) IsActive() bool { return ebiten.IsFocused() }

func (w *Window) IsOpen() bool { return !w.closed && !ebiten.IsWindowBeingClosed() }

func (w *Window) IsKeyPressed(code platform.KeyCode, repeat bool) bool {
	k, ok := keyMap[code]
	if !ok {
		return false
	}
	if !repeat {
		return inpututil.IsKeyJustPressed(k)
	}
	return repeatFires(inpututil.KeyPressDuration(k), w.opts.RepeatDelay, w.opts.RepeatInterval)
}

func (w *Window) IsKeyReleased(code platform.KeyCode) bool {
	k, ok := keyMap[code]
	return ok && inpututil.IsKeyJustReleased(k)
}

// Present keeps fb for the next Draw. The pixels are uploaded once per
// presented frame.
func (w *Window) Present(fb *render.FrameBuffer) error {
	if fb == nil {
		return errors.New("ebitenwin: nil frame")
	}
	if len(fb.Pixels) != 4*fb.W*fb.H {
		return fmt.Errorf("ebitenwin: frame %dx%d has %d bytes", fb.W, fb.H, len(fb.Pixels))
	}
	w.frame = fb
	w.fresh = true
	return nil
}

// Pump is a no-op; ebiten processes native events between ticks.
func (w *Window) Pump() {}

func (w *Window) SetInputCallback(cb platform.InputCallback) { w.callback = cb }
func (w *Window) SetPosition(x, y int)                       { ebiten.SetWindowPosition(x, y) }
func (w *Window) SetTitle(title string)                      { ebiten.SetWindowTitle(title) }
func (w *Window) Close()                                     { w.closed = true }
