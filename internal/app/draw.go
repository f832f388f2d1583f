package app

import (
	"fmt"
	"image/color"
	"math"

	"winshell/internal/render"
	"winshell/internal/ui"
)

const monoFamily = "mono"

func (p *Pad) lineHeight() float64 { return math.Ceil(p.fontSize * p.scale * 1.4) }

func (p *Pad) draw(c render.Canvas) {
	w, h := c.Size()
	p.width, p.height = w, h
	p.layout = ui.ComputeLayout(w, h, p.theme, p.scale)
	ui.DrawChrome(c, p.layout, p.theme, ui.Chrome{
		Title:  p.headerTitle(),
		Status: p.statusLine(),
		Active: p.active,
	}, p.scale)

	if p.logo != nil {
		size := p.layout.HeaderH - 8*p.scale
		if size > 0 {
			c.DrawImageScaled(p.logo, w-size-8*p.scale, 4*p.scale, size, size)
		}
	}

	l := p.layout
	if l.ContentW <= 0 || l.ContentH <= 0 {
		return
	}

	c.Save()
	defer c.Restore()
	c.BeginPath()
	c.Rect(l.ContentX, l.ContentY, l.ContentW, l.ContentH)
	c.Clip()

	c.SetFontFamily(monoFamily)
	c.SetFontSize(p.fontSize * p.scale)
	lh := p.lineHeight()

	start, end, selected := p.state.SelectionRange()
	caret := p.state.Caret()
	for i := p.scroll; i < len(p.state.Lines); i++ {
		y := l.ContentY + float64(i-p.scroll)*lh
		if y > l.ContentY+l.ContentH {
			break
		}
		line := p.state.Lines[i]

		if selected && i >= start.Line && i <= end.Line {
			from, to := 0, len(line)
			if i == start.Line {
				from = start.Byte
			}
			if i == end.Line {
				to = end.Byte
			}
			x0 := l.ContentX + c.MeasureText(string(line[:from])).Width
			x1 := l.ContentX + c.MeasureText(string(line[:to])).Width
			if i != end.Line {
				x1 += c.MeasureText(" ").Width
			}
			a := p.theme.Accent
			c.SetFillStyle(color.NRGBA{R: a.R, G: a.G, B: a.B, A: 0x50})
			c.FillRect(x0, y, x1-x0, lh)
		}

		c.SetFillStyle(p.theme.Text)
		c.FillText(string(line), l.ContentX, y+(lh-p.fontSize*p.scale)/2)

		if i == caret.Line && p.active {
			x := l.ContentX + c.MeasureText(string(line[:caret.Byte])).Width
			c.SetFillStyle(p.theme.Caret)
			c.FillRect(math.Floor(x), y+2, math.Max(1, p.scale*1.5), lh-4)
		}
	}
}

func (p *Pad) headerTitle() string {
	if p.filePath == "" {
		return p.title
	}
	return fmt.Sprintf("%s - %s", p.title, p.filePath)
}

func (p *Pad) statusLine() string {
	caret := p.state.Caret()
	focus := "unfocused"
	if p.active {
		focus = "focused"
	}
	return fmt.Sprintf("%s | Ln %d, Col %d | %d lines | mouse %.0f,%.0f | %s",
		p.status, caret.Line+1, caret.Byte+1, p.state.LineCount(), p.mouseX, p.mouseY, focus)
}

// hit maps a point to a caret position. It needs a laid out frame.
func (p *Pad) hit(x, y float64) (int, int, bool) {
	l := p.layout
	if p.canvas == nil || x < l.ContentX || y < l.ContentY || x >= l.ContentX+l.ContentW || y >= l.ContentY+l.ContentH {
		return 0, 0, false
	}
	line := p.scroll + int((y-l.ContentY)/p.lineHeight())
	if line >= len(p.state.Lines) {
		line = len(p.state.Lines) - 1
	}

	c := p.canvas
	c.Save()
	defer c.Restore()
	c.SetFontFamily(monoFamily)
	c.SetFontSize(p.fontSize * p.scale)

	text := p.state.Lines[line]
	rel := x - l.ContentX
	prev := 0.0
	for i, r := range string(text) {
		end := i + len(string(r))
		w := c.MeasureText(string(text[:end])).Width
		if rel < (prev+w)/2 {
			return line, i, true
		}
		prev = w
	}
	return line, len(text), true
}

func (p *Pad) keepCaretVisible() {
	lh := p.lineHeight()
	if p.layout.ContentH <= 0 || lh <= 0 {
		return
	}
	caret := p.state.Caret()
	visible := max(int(p.layout.ContentH/lh), 1)
	if caret.Line < p.scroll {
		p.scroll = caret.Line
	}
	if caret.Line >= p.scroll+visible {
		p.scroll = caret.Line - visible + 1
	}
}
