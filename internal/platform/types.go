package platform

import "winshell/internal/render"

type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

type WindowConfig struct {
	Title       string
	Bounds      Rect
	Resizable   bool
	Borderless  bool
	AlwaysOnTop bool
}

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// InputCallback receives raw code points typed into a window. Backends may
// invoke it from a context other than the frame loop.
type InputCallback func(codepoint uint32)

type Platform interface {
	Name() string
	CreateWindow(cfg WindowConfig) (Window, error)
}

// Driver is implemented by platforms that own the main loop. Drive calls
// step once per frame until it returns false.
type Driver interface {
	Drive(step func() bool) error
}

// Window exposes level-based queries. Edge detection is the caller's job,
// except for IsKeyPressed and IsKeyReleased which report presses and
// releases observed since the previous frame.
type Window interface {
	Size() (int, int)
	MousePos() (x, y float64, ok bool)
	MouseDown(button MouseButton) bool
	ScrollWheel() (dx, dy float64, ok bool)
	IsActive() bool
	IsOpen() bool
	IsKeyPressed(code KeyCode, repeat bool) bool
	IsKeyReleased(code KeyCode) bool
	Present(fb *render.FrameBuffer) error
	Pump()
	SetInputCallback(cb InputCallback)
	SetPosition(x, y int)
	SetTitle(title string)
	Close()
}
