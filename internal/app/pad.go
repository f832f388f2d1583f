package app

import (
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"unicode"
	"unicode/utf8"

	"winshell/internal/config"
	"winshell/internal/editor"
	"winshell/internal/input"
	"winshell/internal/render"
	"winshell/internal/shell"
	"winshell/internal/ui"
)

// Host is the part of a shell the pad talks back to.
type Host interface {
	Stop()
	UpdatePending() bool
	SetTitle(title string)
}

type shellHost struct{ s *shell.Shell }

func (h shellHost) Stop()                 { h.s.Stop() }
func (h shellHost) UpdatePending() bool   { return h.s.UpdatePending() }
func (h shellHost) SetTitle(title string) { h.s.Window().SetTitle(title) }

// Pad is a small text editor implementing shell.Adapter. All methods except
// Reload run on the frame loop.
type Pad struct {
	logger *slog.Logger
	host   Host
	clip   Clipboard
	files  FilePicker

	state    *editor.State
	theme    ui.Theme
	scale    float64
	fontSize float64
	title    string
	filePath string
	logo     image.Image

	reloads chan config.Config

	width   float64
	height  float64
	mouseX  float64
	mouseY  float64
	active  bool
	ctrl    bool
	shift   bool
	scroll  int
	status  string
	dirty   bool
	renders int
	canvas  render.Canvas
	layout  ui.Layout
}

var _ shell.Adapter = (*Pad)(nil)

func NewPad(cfg config.Config, logger *slog.Logger) *Pad {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pad{
		logger:  logger,
		clip:    systemClipboard{},
		files:   dialogFiles{},
		state:   editor.NewState(""),
		reloads: make(chan config.Config, 1),
		status:  "Ready",
		dirty:   true,
	}
	p.apply(cfg)
	return p
}

// Attach connects the pad to the shell it is the adapter of.
func (p *Pad) Attach(h Host) { p.host = h }

func (p *Pad) SetClipboard(c Clipboard)   { p.clip = c }
func (p *Pad) SetFilePicker(f FilePicker) { p.files = f }

func (p *Pad) Text() string           { return p.state.Text() }
func (p *Pad) Status() string         { return p.status }
func (p *Pad) Renders() int           { return p.renders }
func (p *Pad) Theme() ui.Theme        { return p.theme }
func (p *Pad) Caret() editor.Position { return p.state.Caret() }

// Reload queues cfg for the next frame. It may be called from any
// goroutine; the caller should request an update afterwards.
func (p *Pad) Reload(cfg config.Config) {
	select {
	case p.reloads <- cfg:
	default:
		// replace the queued config with the newer one
		select {
		case <-p.reloads:
		default:
		}
		p.reloads <- cfg
	}
}

func (p *Pad) apply(cfg config.Config) {
	theme, err := ui.ThemeByName(cfg.UI.Theme)
	if err != nil {
		p.logger.Warn("unknown theme, using default", "theme", cfg.UI.Theme)
		theme = ui.DefaultTheme()
	}
	p.theme = theme
	p.scale = cfg.UI.Scale
	p.fontSize = cfg.UI.FontSize
	if cfg.UI.Logo != "" {
		img, err := render.LoadImage(cfg.UI.Logo)
		if err != nil {
			p.logger.Warn("logo not loaded", "err", err)
		}
		p.logo = img
	} else {
		p.logo = nil
	}
	if cfg.Window.Title != p.title {
		p.title = cfg.Window.Title
		if p.host != nil {
			p.host.SetTitle(p.title)
		}
	}
	p.dirty = true
}

func (p *Pad) Run(c render.Canvas) {
	select {
	case cfg := <-p.reloads:
		p.apply(cfg)
		p.status = "Configuration reloaded"
	default:
	}

	pending := p.host != nil && p.host.UpdatePending()
	if !p.dirty && !pending {
		return
	}
	p.canvas = c
	p.draw(c)
	p.dirty = false
	p.renders++
}

func (p *Pad) Resize(width, height float64) {
	p.width, p.height = width, height
	p.dirty = true
}

func (p *Pad) Mouse(x, y float64) {
	p.mouseX, p.mouseY = x, y
	p.dirty = true
}

func (p *Pad) MouseEvent(ev input.MouseEvent) {
	if ev.Button != input.MouseLeft || ev.State != input.ButtonDown {
		return
	}
	line, col, ok := p.hit(ev.X, ev.Y)
	if !ok {
		return
	}
	if p.shift {
		p.state.EnsureSelectionAnchor()
	} else {
		p.state.ClearSelection()
	}
	p.state.SetCaret(line, col)
	if p.shift {
		p.state.UpdateSelectionFromCaret()
	}
	p.dirty = true
}

func (p *Pad) Scroll(_, dy float64) {
	switch {
	case dy > 0:
		p.scroll--
	case dy < 0:
		p.scroll++
	}
	p.scroll = max(min(p.scroll, p.state.LineCount()-1), 0)
	p.dirty = true
}

func (p *Pad) Active(active bool) {
	p.active = active
	if !active {
		p.ctrl, p.shift = false, false
	}
	p.dirty = true
}

func (p *Pad) KeyEvent(ev input.KeyEvent) {
	if ev.State == input.ButtonUp {
		switch ev.Key {
		case input.KeyControl:
			p.ctrl = false
		case input.KeyShiftL, input.KeyShiftR:
			p.shift = false
		}
		return
	}

	if ev.Text != "" {
		p.typeText(ev.Text)
		return
	}

	switch ev.Key {
	case input.KeyControl:
		p.ctrl = true
		return
	case input.KeyShiftL, input.KeyShiftR:
		p.shift = true
		return
	case input.KeyEscape:
		if p.state.HasSelection() {
			p.state.ClearSelection()
			break
		}
		if p.host != nil {
			p.host.Stop()
		}
	case input.KeyEnter:
		p.state.SplitLineAtCaret()
	case input.KeyBackspace:
		if p.ctrl {
			p.state.DeleteWordBackward()
		} else {
			p.state.Backspace()
		}
	case input.KeyDelete:
		p.state.DeleteForward()
	case input.KeyLeft:
		p.move(p.state.MoveCaretLeft, p.state.MoveCaretWordLeft)
	case input.KeyRight:
		p.move(p.state.MoveCaretRight, p.state.MoveCaretWordRight)
	case input.KeyUp:
		p.move(p.state.MoveCaretUp, nil)
	case input.KeyDown:
		p.move(p.state.MoveCaretDown, nil)
	case input.KeyHome:
		p.move(p.state.MoveCaretToLineStart, nil)
	case input.KeyEnd:
		p.move(p.state.MoveCaretToLineEnd, nil)
	default:
		if !p.ctrl || !p.command(ev.Key) {
			return
		}
	}
	p.keepCaretVisible()
	p.dirty = true
}

func (p *Pad) typeText(text string) {
	if p.ctrl {
		return
	}
	r, _ := utf8.DecodeRuneInString(text)
	if r != '\t' && !unicode.IsPrint(r) {
		return
	}
	if err := p.state.InsertTextAtCaret(text); err != nil {
		p.status = "Insert failed: " + err.Error()
	}
	p.keepCaretVisible()
	p.dirty = true
}

func (p *Pad) move(plain, word func()) {
	if p.shift {
		p.state.EnsureSelectionAnchor()
	} else {
		p.state.ClearSelection()
	}
	if p.ctrl && word != nil {
		word()
	} else {
		plain()
	}
	if p.shift {
		p.state.UpdateSelectionFromCaret()
	}
}

// command runs a Ctrl shortcut and reports whether key was one.
func (p *Pad) command(key input.Key) bool {
	switch key {
	case input.KeyA:
		p.state.SelectAll()
	case input.KeyC:
		if p.state.HasSelection() {
			if err := p.clip.WriteAll(p.state.SelectedText()); err != nil {
				p.status = "Copy failed: " + err.Error()
			}
		}
	case input.KeyX:
		if p.state.HasSelection() {
			if err := p.clip.WriteAll(p.state.SelectedText()); err != nil {
				p.status = "Cut failed: " + err.Error()
			} else {
				p.state.DeleteSelection()
			}
		}
	case input.KeyV:
		paste, err := p.clip.ReadAll()
		if err != nil {
			p.status = "Paste failed: " + err.Error()
		} else if paste != "" {
			if err := p.state.InsertTextAtCaret(paste); err != nil {
				p.status = "Paste failed: " + err.Error()
			}
		}
	case input.KeyO:
		if err := p.open(); err != nil {
			p.status = "Open failed: " + err.Error()
		}
	case input.KeyS:
		if err := p.save(); err != nil {
			p.status = "Save failed: " + err.Error()
		}
	default:
		return false
	}
	return true
}

func (p *Pad) open() error {
	path, err := p.files.Open()
	if err != nil {
		return err
	}
	path = filepath.Clean(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if !utf8.Valid(data) {
		return fmt.Errorf("%s is not UTF-8 text", filepath.Base(path))
	}
	p.state = editor.NewState(string(data))
	p.filePath = path
	p.scroll = 0
	p.status = "Opened " + filepath.Base(path)
	return nil
}

func (p *Pad) save() error {
	path := p.filePath
	if path == "" {
		var err error
		if path, err = p.files.Save(); err != nil {
			return err
		}
	}
	if err := os.WriteFile(path, []byte(p.state.Text()), 0o644); err != nil {
		return err
	}
	p.filePath = path
	p.status = "Saved " + filepath.Base(path)
	return nil
}
