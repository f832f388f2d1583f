package shell

import (
	"winshell/internal/input"
	"winshell/internal/render"
)

// Adapter receives the normalized event stream of one window. Methods are
// called on the frame loop goroutine and must return promptly.
type Adapter interface {
	Run(canvas render.Canvas)
	Resize(width, height float64)
	Mouse(x, y float64)
	MouseEvent(ev input.MouseEvent)
	KeyEvent(ev input.KeyEvent)
	Scroll(dx, dy float64)
	Active(active bool)
}

// NopAdapter ignores everything. Embed it to implement only the callbacks
// you need.
type NopAdapter struct{}

func (NopAdapter) Run(render.Canvas)           {}
func (NopAdapter) Resize(float64, float64)     {}
func (NopAdapter) Mouse(float64, float64)      {}
func (NopAdapter) MouseEvent(input.MouseEvent) {}
func (NopAdapter) KeyEvent(input.KeyEvent)     {}
func (NopAdapter) Scroll(float64, float64)     {}
func (NopAdapter) Active(bool)                 {}
