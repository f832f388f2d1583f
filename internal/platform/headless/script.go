package headless

import (
	"winshell/internal/platform"
	"winshell/internal/render"
)

// Scripting helpers. They may be called from any goroutine.

func (w *Window) MoveMouse(x, y float64) {
	w.mu.Lock()
	w.mouseX, w.mouseY, w.mouseIn = x, y, true
	w.mu.Unlock()
}

// LeaveMouse makes MousePos report no position.
func (w *Window) LeaveMouse() {
	w.mu.Lock()
	w.mouseIn = false
	w.mu.Unlock()
}

func (w *Window) SetButton(button platform.MouseButton, down bool) {
	w.mu.Lock()
	w.buttons[button] = down
	w.mu.Unlock()
}

func (w *Window) Scroll(dx, dy float64) {
	w.mu.Lock()
	w.scrollX += dx
	w.scrollY += dy
	w.scrolls = true
	w.mu.Unlock()
}

func (w *Window) SetActive(active bool) {
	w.mu.Lock()
	w.active = active
	w.mu.Unlock()
}

func (w *Window) Resize(width, height int) {
	w.mu.Lock()
	w.w, w.h = width, height
	w.mu.Unlock()
}

func (w *Window) PressKey(code platform.KeyCode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	k := w.key(code)
	if !k.down {
		k.down = true
		k.pending = append(k.pending, true)
	}
}

func (w *Window) ReleaseKey(code platform.KeyCode) {
	w.mu.Lock()
	defer w.mu.Unlock()
	k := w.key(code)
	if k.down {
		k.down = false
		k.pending = append(k.pending, false)
	}
}

func (w *Window) key(code platform.KeyCode) *keyState {
	k, ok := w.keys[code]
	if !ok {
		k = &keyState{}
		w.keys[code] = k
	}
	return k
}

// Type feeds each rune of s to the input callback, as a native text
// input thread would.
func (w *Window) Type(s string) {
	for _, r := range s {
		w.TypeCodepoint(uint32(r))
	}
}

func (w *Window) TypeCodepoint(code uint32) {
	w.mu.Lock()
	cb := w.callback
	w.mu.Unlock()
	if cb != nil {
		cb(code)
	}
}

// CloseAfter closes the window once n frames have been presented or
// pumped in total.
func (w *Window) CloseAfter(n int) {
	w.mu.Lock()
	w.closeAfter = n
	if n > 0 && w.frames >= n {
		w.closed = true
	}
	w.mu.Unlock()
}

func (w *Window) Presented() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.presented
}

func (w *Window) Pumped() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pumped
}

func (w *Window) LastFrame() *render.FrameBuffer {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.last
}
