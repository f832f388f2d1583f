package headless

import (
	"errors"
	"sync"

	"winshell/internal/platform"
	"winshell/internal/render"
)

var ErrInvalidSize = errors.New("headless: window size must be positive")

// Backend creates in-memory windows whose input is scripted by the caller.
type Backend struct {
	mu      sync.Mutex
	windows []*Window
	failErr error
}

func New() *Backend { return &Backend{} }

func (b *Backend) Name() string { return "headless" }

// FailNext makes the next CreateWindow return err.
func (b *Backend) FailNext(err error) {
	b.mu.Lock()
	b.failErr = err
	b.mu.Unlock()
}

func (b *Backend) CreateWindow(cfg platform.WindowConfig) (platform.Window, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := b.failErr; err != nil {
		b.failErr = nil
		return nil, err
	}
	if cfg.Bounds.Width <= 0 || cfg.Bounds.Height <= 0 {
		return nil, ErrInvalidSize
	}
	w := &Window{
		cfg:   cfg,
		title: cfg.Title,
		w:     int(cfg.Bounds.Width),
		h:     int(cfg.Bounds.Height),
		keys:  map[platform.KeyCode]*keyState{},
	}
	b.windows = append(b.windows, w)
	return w, nil
}

func (b *Backend) Windows() []*Window {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*Window(nil), b.windows...)
}

// keyState keeps the scripted transitions not yet reported, oldest first.
// true is a press, false a release.
type keyState struct {
	down    bool
	pending []bool
}

func (k *keyState) next(press bool) bool {
	if len(k.pending) == 0 || k.pending[0] != press {
		return false
	}
	k.pending = k.pending[1:]
	return true
}

// Window is a scriptable platform.Window. Key transitions are reported in
// the order they were scripted: a press is reported once, or on every poll
// for repeat queries while held, and a release is reported only after the
// press before it.
type Window struct {
	mu sync.Mutex

	cfg   platform.WindowConfig
	title string
	x     int
	y     int
	w     int
	h     int

	mouseX  float64
	mouseY  float64
	mouseIn bool
	buttons [3]bool
	scrollX float64
	scrollY float64
	scrolls bool
	active  bool
	closed  bool
	keys    map[platform.KeyCode]*keyState

	callback platform.InputCallback

	frames     int
	closeAfter int
	presented  int
	pumped     int
	last       *render.FrameBuffer
}

func (w *Window) Config() platform.WindowConfig { return w.cfg }

func (w *Window) Size() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.w, w.h
}

func (w *Window) MousePos() (float64, float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.mouseX, w.mouseY, w.mouseIn
}

func (w *Window) MouseDown(button platform.MouseButton) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if button < 0 || int(button) >= len(w.buttons) {
		return false
	}
	return w.buttons[button]
}

// ScrollWheel returns the delta accumulated since the previous call.
func (w *Window) ScrollWheel() (float64, float64, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.scrolls {
		return 0, 0, false
	}
	dx, dy := w.scrollX, w.scrollY
	w.scrollX, w.scrollY, w.scrolls = 0, 0, false
	return dx, dy, true
}

func (w *Window) IsActive() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

func (w *Window) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return !w.closed
}

func (w *Window) IsKeyPressed(code platform.KeyCode, repeat bool) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	k, ok := w.keys[code]
	if !ok {
		return false
	}
	if len(k.pending) > 0 {
		return k.next(true)
	}
	return repeat && k.down
}

func (w *Window) IsKeyReleased(code platform.KeyCode) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	k, ok := w.keys[code]
	if !ok {
		return false
	}
	return k.next(false)
}

func (w *Window) Present(fb *render.FrameBuffer) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.presented++
	w.last = fb
	w.endFrame()
	return nil
}

func (w *Window) Pump() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pumped++
	w.endFrame()
}

func (w *Window) endFrame() {
	w.frames++
	if w.closeAfter > 0 && w.frames >= w.closeAfter {
		w.closed = true
	}
}

func (w *Window) SetInputCallback(cb platform.InputCallback) {
	w.mu.Lock()
	w.callback = cb
	w.mu.Unlock()
}

func (w *Window) SetPosition(x, y int) {
	w.mu.Lock()
	w.x, w.y = x, y
	w.mu.Unlock()
}

func (w *Window) Position() (int, int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.x, w.y
}

func (w *Window) SetTitle(title string) {
	w.mu.Lock()
	w.title = title
	w.mu.Unlock()
}

func (w *Window) Title() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.title
}

func (w *Window) Close() {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()
}
