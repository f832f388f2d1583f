package shell

import (
	"log/slog"
	"math"
	"sync/atomic"

	"github.com/google/uuid"

	"winshell/internal/input"
	"winshell/internal/platform"
	"winshell/internal/render"
)

var mouseButtons = [3]struct {
	native  platform.MouseButton
	logical input.MouseButton
}{
	{platform.MouseLeft, input.MouseLeft},
	{platform.MouseMiddle, input.MouseMiddle},
	{platform.MouseRight, input.MouseRight},
}

// Shell runs the frame loop of a single window. All state below the
// request channel is owned by the loop goroutine.
type Shell struct {
	id       uuid.UUID
	logger   *slog.Logger
	window   platform.Window
	canvas   render.Canvas
	adapter  Adapter
	bindings []KeyBinding
	text     *TextQueue

	requests chan Request
	running  atomic.Bool
	closed   bool

	mouseX  float64
	mouseY  float64
	buttons [3]bool
	width   int
	height  int
	active  bool
	update  bool
}

func (s *Shell) ID() uuid.UUID           { return s.id }
func (s *Shell) Window() platform.Window { return s.window }
func (s *Shell) Canvas() render.Canvas   { return s.canvas }
func (s *Shell) Adapter() Adapter        { return s.adapter }

// Sender returns a handle other goroutines use to request redraws.
func (s *Shell) Sender() Sender { return Sender{ch: s.requests} }

func (s *Shell) Running() bool           { return s.running.Load() }
func (s *Shell) SetRunning(running bool) { s.running.Store(running) }

// Stop ends the loop at the start of the next frame. Safe from any
// goroutine.
func (s *Shell) Stop() { s.running.Store(false) }

// UpdatePending reports whether a redraw was requested and not yet
// rendered.
func (s *Shell) UpdatePending() bool   { return s.update }
func (s *Shell) SetUpdate(update bool) { s.update = update }

// Step runs one frame and reports whether the loop should continue.
func (s *Shell) Step() bool {
	if !s.Running() || !s.window.IsOpen() {
		return false
	}

	s.adapter.Run(s.canvas)
	if s.update {
		s.update = false
	}

	if !s.flip() {
		s.window.Pump()
	}

	s.drainEvents()
	return true
}

// Run drives Step until the window closes or the shell is stopped, then
// closes the window.
func (s *Shell) Run() error {
	defer s.Close()
	s.logger.Info("shell started", "window", s.id)
	err := drive(s.window, s.Step)
	s.logger.Info("shell stopped", "window", s.id)
	return err
}

// Close releases the native window. It is idempotent.
func (s *Shell) Close() {
	if s.closed {
		return
	}
	s.closed = true
	s.running.Store(false)
	s.window.Close()
}

func (s *Shell) flip() bool {
	fb, ok := s.canvas.Flush()
	if !ok {
		return false
	}
	if err := s.window.Present(fb); err != nil {
		s.logger.Debug("present failed", "window", s.id, "err", err)
	}
	return true
}

func (s *Shell) drainEvents() {
	// mouse move
	if x, y, ok := s.window.MousePos(); ok {
		fx, fy := math.Floor(x), math.Floor(y)
		if fx != s.mouseX || fy != s.mouseY {
			s.adapter.Mouse(x, y)
			s.mouseX, s.mouseY = fx, fy
		}
	}

	// mouse buttons
	for i, b := range mouseButtons {
		down := s.window.MouseDown(b.native)
		if down == s.buttons[i] {
			continue
		}
		state := input.ButtonUp
		if down {
			state = input.ButtonDown
		}
		s.adapter.MouseEvent(input.MouseEvent{X: s.mouseX, Y: s.mouseY, Button: b.logical, State: state})
		s.buttons[i] = down
	}

	// focus
	if active := s.window.IsActive(); active != s.active {
		s.adapter.Active(active)
		s.active = active
		s.logger.Debug("focus changed", "window", s.id, "active", active)
	}

	// scroll
	if dx, dy, ok := s.window.ScrollWheel(); ok {
		s.adapter.Scroll(dx, dy)
	}

	// text input
	for _, ev := range s.text.Drain() {
		s.adapter.KeyEvent(ev)
	}

	// tracked keys
	for _, b := range s.bindings {
		if ev, ok := PollDown(b, s.window); ok {
			s.adapter.KeyEvent(ev)
		}
		if ev, ok := PollUp(b, s.window); ok {
			s.adapter.KeyEvent(ev)
		}
	}

	// resize
	if w, h := s.window.Size(); w != s.width || h != s.height {
		s.width, s.height = w, h
		s.canvas.Resize(float64(w), float64(h))
		s.adapter.Resize(float64(w), float64(h))
		s.logger.Debug("window resized", "window", s.id, "width", w, "height", h)
	}

	s.receiveRequests()
}

// receiveRequests drains the request channel without blocking. It does
// nothing while an update is already pending.
func (s *Shell) receiveRequests() {
	for !s.update {
		select {
		case req, ok := <-s.requests:
			if !ok {
				return
			}
			switch req {
			case RequestUpdate:
				s.update = true
				s.collapseUpdates()
			}
		default:
			return
		}
	}
}

// collapseUpdates discards the requests queued alongside the one just
// taken. RequestUpdate is the only request, and one redraw serves them all.
func (s *Shell) collapseUpdates() {
	for n := len(s.requests); n > 0; n-- {
		select {
		case _, ok := <-s.requests:
			if !ok {
				return
			}
		default:
			return
		}
	}
}

// drive hands step to the platform's own loop when it has one.
func drive(w platform.Window, step func() bool) error {
	if d, ok := w.(platform.Driver); ok {
		return d.Drive(step)
	}
	for step() {
	}
	return nil
}
