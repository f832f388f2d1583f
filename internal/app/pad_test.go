package app

import (
	"context"
	"errors"
	"image"
	"image/color"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winshell/internal/config"
	"winshell/internal/input"
	"winshell/internal/platform"
	"winshell/internal/platform/headless"
	"winshell/internal/render"
	"winshell/internal/shell"
)

type fakeHost struct {
	stopped bool
	pending bool
	titles  []string
}

func (h *fakeHost) Stop()                 { h.stopped = true }
func (h *fakeHost) UpdatePending() bool   { return h.pending }
func (h *fakeHost) SetTitle(title string) { h.titles = append(h.titles, title) }

type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) ReadAll() (string, error) { return c.text, c.err }

func (c *fakeClipboard) WriteAll(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

type fakeFiles struct {
	open string
	save string
	err  error
}

func (f fakeFiles) Open() (string, error) { return f.open, f.err }
func (f fakeFiles) Save() (string, error) { return f.save, f.err }

func newTestPad(t *testing.T) (*Pad, *fakeHost, *fakeClipboard) {
	t.Helper()
	p := NewPad(config.Default(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	h := &fakeHost{}
	c := &fakeClipboard{}
	p.Attach(h)
	p.SetClipboard(c)
	p.Active(true)
	return p, h, c
}

func down(key input.Key) input.KeyEvent { return input.KeyEvent{Key: key, State: input.ButtonDown} }
func up(key input.Key) input.KeyEvent   { return input.KeyEvent{Key: key, State: input.ButtonUp} }

func typeText(p *Pad, s string) {
	for _, r := range s {
		ev, ok := shell.TextEvent(uint32(r))
		if ok {
			p.KeyEvent(ev)
		}
	}
}

func TestPadTyping(t *testing.T) {
	p, _, _ := newTestPad(t)
	typeText(p, "hello")
	p.KeyEvent(down(input.KeyEnter))
	typeText(p, "world\r")
	p.KeyEvent(down(input.KeyBackspace))
	assert.Equal(t, "hello\nworl", p.Text())

	p.KeyEvent(down(input.KeyHome))
	p.KeyEvent(down(input.KeyDelete))
	assert.Equal(t, "hello\norl", p.Text())
}

func TestPadTrackedLetterWithoutControlIsIgnored(t *testing.T) {
	p, _, _ := newTestPad(t)
	typeText(p, "a")
	p.KeyEvent(down(input.KeyA))
	p.KeyEvent(up(input.KeyA))
	assert.Equal(t, "a", p.Text())
}

func TestPadClipboardShortcuts(t *testing.T) {
	p, _, clip := newTestPad(t)
	typeText(p, "copy me")

	p.KeyEvent(down(input.KeyControl))
	p.KeyEvent(down(input.KeyA))
	p.KeyEvent(down(input.KeyC))
	assert.Equal(t, "copy me", clip.text)

	p.KeyEvent(down(input.KeyX))
	assert.Equal(t, "", p.Text())

	clip.text = "pasted"
	p.KeyEvent(down(input.KeyV))
	p.KeyEvent(down(input.KeyV))
	assert.Equal(t, "pastedpasted", p.Text())

	typeText(p, "z")
	assert.Equal(t, "pastedpasted", p.Text(), "text is ignored while control is held")

	p.KeyEvent(up(input.KeyControl))
	typeText(p, "z")
	assert.Equal(t, "pastedpastedz", p.Text())
}

func TestPadClipboardErrorsGoToStatus(t *testing.T) {
	p, _, clip := newTestPad(t)
	clip.err = errors.New("no clipboard")
	p.KeyEvent(down(input.KeyControl))
	p.KeyEvent(down(input.KeyV))
	assert.Equal(t, "Paste failed: no clipboard", p.Status())
}

func TestPadShiftSelection(t *testing.T) {
	p, _, clip := newTestPad(t)
	typeText(p, "abc def")
	p.KeyEvent(down(input.KeyShiftL))
	p.KeyEvent(down(input.KeyControl))
	p.KeyEvent(down(input.KeyLeft))
	p.KeyEvent(down(input.KeyC))
	assert.Equal(t, "def", clip.text)

	p.KeyEvent(up(input.KeyShiftL))
	p.KeyEvent(up(input.KeyControl))
	p.KeyEvent(down(input.KeyRight))
	typeText(p, "!")
	assert.Equal(t, "abc d!ef", p.Text())
}

func TestPadEscape(t *testing.T) {
	p, h, _ := newTestPad(t)
	typeText(p, "x")
	p.KeyEvent(down(input.KeyControl))
	p.KeyEvent(down(input.KeyA))
	p.KeyEvent(up(input.KeyControl))

	p.KeyEvent(down(input.KeyEscape))
	assert.False(t, h.stopped, "first escape clears the selection")
	p.KeyEvent(down(input.KeyEscape))
	assert.True(t, h.stopped)
}

func TestPadRendersOnlyWhenNeeded(t *testing.T) {
	p, h, _ := newTestPad(t)
	c := render.NewContext(400, 300)

	p.Run(c)
	assert.Equal(t, 1, p.Renders())
	_, drawn := c.Flush()
	assert.True(t, drawn)

	p.Run(c)
	assert.Equal(t, 1, p.Renders(), "nothing changed")
	_, drawn = c.Flush()
	assert.False(t, drawn)

	h.pending = true
	p.Run(c)
	assert.Equal(t, 2, p.Renders(), "a pending update forces a redraw")

	h.pending = false
	p.Scroll(0, -1)
	p.Run(c)
	assert.Equal(t, 3, p.Renders())
}

func TestPadReloadAppliesOnNextFrame(t *testing.T) {
	p, h, _ := newTestPad(t)
	c := render.NewContext(400, 300)
	p.Run(c)

	cfg := config.Default()
	cfg.Window.Title = "renamed"
	cfg.UI.Theme = "dark"
	p.Reload(config.Default())
	p.Reload(cfg)
	assert.Equal(t, "light", p.Theme().Name, "applied on the loop only")

	p.Run(c)
	assert.Equal(t, "dark", p.Theme().Name)
	assert.Equal(t, []string{"renamed"}, h.titles)
	assert.Equal(t, "Configuration reloaded", p.Status())

	fb, _ := c.Flush()
	assert.Equal(t, p.Theme().Background, fb.At(1, 40))
}

func TestPadClickPlacesCaret(t *testing.T) {
	p, _, _ := newTestPad(t)
	typeText(p, "first")
	p.KeyEvent(down(input.KeyEnter))
	typeText(p, "second line")

	c := render.NewContext(600, 400)
	p.Run(c)

	l := p.layout
	p.MouseEvent(input.MouseEvent{X: l.ContentX + 1, Y: l.ContentY + 1, Button: input.MouseLeft, State: input.ButtonDown})
	assert.Equal(t, 0, p.Caret().Line)
	assert.Equal(t, 0, p.Caret().Byte)

	p.MouseEvent(input.MouseEvent{X: l.ContentX + l.ContentW - 1, Y: l.ContentY + p.lineHeight() + 1, Button: input.MouseLeft, State: input.ButtonDown})
	assert.Equal(t, 1, p.Caret().Line)
	assert.Equal(t, len("second line"), p.Caret().Byte)

	p.MouseEvent(input.MouseEvent{X: 1, Y: 1, Button: input.MouseLeft, State: input.ButtonDown})
	assert.Equal(t, 1, p.Caret().Line, "clicks outside the page are ignored")
}

func TestPadShiftClickInPlaceLeavesNoAnchor(t *testing.T) {
	p, _, _ := newTestPad(t)
	typeText(p, "ab")
	p.Run(render.NewContext(600, 400))

	l := p.layout
	p.KeyEvent(down(input.KeyShiftL))
	p.MouseEvent(input.MouseEvent{X: l.ContentX + l.ContentW - 1, Y: l.ContentY + 1, Button: input.MouseLeft, State: input.ButtonDown})
	p.KeyEvent(up(input.KeyShiftL))
	require.Equal(t, 2, p.Caret().Byte)
	require.False(t, p.state.HasSelection())

	typeText(p, "xy")
	p.KeyEvent(down(input.KeyShiftL))
	p.KeyEvent(down(input.KeyLeft))
	assert.Equal(t, "y", p.state.SelectedText())
}

func TestPadOpenAndSave(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.txt")
	out := filepath.Join(dir, "out.txt")
	require.NoError(t, os.WriteFile(in, []byte("line one\nline two"), 0o644))

	p, _, _ := newTestPad(t)
	p.SetFilePicker(fakeFiles{open: in, save: out})
	p.KeyEvent(down(input.KeyControl))
	p.KeyEvent(down(input.KeyO))
	assert.Equal(t, "line one\nline two", p.Text())
	assert.Equal(t, "Opened in.txt", p.Status())

	p.KeyEvent(up(input.KeyControl))
	typeText(p, "!")
	p.KeyEvent(down(input.KeyControl))
	p.KeyEvent(down(input.KeyS))
	data, err := os.ReadFile(in)
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two!", string(data), "saves back to the opened file")

	p.SetFilePicker(fakeFiles{err: errNoFile})
	p.KeyEvent(down(input.KeyO))
	assert.Equal(t, "Open failed: no file selected", p.Status())
}

func TestAppRunsHeadless(t *testing.T) {
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "frame.png")
	logo := filepath.Join(dir, "logo.png")
	require.NoError(t, imaging.Save(imaging.New(8, 8, color.NRGBA{R: 0xFF, A: 0xFF}), logo))

	cfg := config.Default()
	cfg.Window.Width, cfg.Window.Height = 320, 240
	cfg.UI.Logo = logo
	a := New(cfg, Options{Headless: true, Frames: 5, Snapshot: snapshot, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	require.NoError(t, a.Run(context.Background()))
	assert.Equal(t, 2, a.Pad().Renders(), "initial frame and the focus change")

	img, err := imaging.Open(snapshot)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 320, 240), img.Bounds())
}

func TestAppDrivesPadThroughShell(t *testing.T) {
	b := headless.New()
	cfg := config.Default()
	a := New(cfg, Options{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})

	done := make(chan error, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var win *headless.Window
	a.Pad().SetClipboard(&fakeClipboard{})
	go func() { done <- a.RunOn(ctx, b) }()
	// The first presented frame means the text callback is installed.
	require.Eventually(t, func() bool {
		ws := b.Windows()
		if len(ws) == 0 || ws[0].Presented() == 0 {
			return false
		}
		win = ws[0]
		return true
	}, 5*time.Second, time.Millisecond)

	win.Type("hi")
	win.PressKey(platform.KeyCodeEscape)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("escape did not stop the pad")
	}
	assert.Equal(t, "hi", a.Pad().Text())
	assert.False(t, win.IsOpen())
}

func TestAppCreateFailure(t *testing.T) {
	b := headless.New()
	b.FailNext(errors.New("no display"))
	err := New(config.Default(), Options{}).RunOn(context.Background(), b)
	assert.ErrorIs(t, err, shell.ErrCreateWindow)
}

func TestKeyBindingsExtendDefaults(t *testing.T) {
	bindings := KeyBindings()
	assert.Len(t, bindings, len(shell.DefaultKeyBindings())+3)
	assert.Equal(t, input.KeyS, bindings[len(bindings)-1].Key)
}
