package render

import (
	"image"
	"image/color"
)

type TextMetrics struct {
	Width  float64
	Height float64
}

// Canvas is the drawing surface handed to adapters each frame. Resize and
// Flush are driven by the shell; everything else is for the adapter.
type Canvas interface {
	Size() (width, height float64)
	Resize(width, height float64)
	Clear(c color.Color)
	// Flush returns the backing buffer when something was drawn since the
	// previous call.
	Flush() (*FrameBuffer, bool)

	RegisterFont(family string, ttf []byte) error
	SetFontFamily(family string)
	SetFontSize(size float64)
	FillText(text string, x, y float64)
	MeasureText(text string) TextMetrics

	FillRect(x, y, width, height float64)
	StrokeRect(x, y, width, height float64)

	BeginPath()
	ClosePath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	QuadraticCurveTo(cpx, cpy, x, y float64)
	BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64)
	Rect(x, y, width, height float64)
	Arc(x, y, radius, startAngle, endAngle float64)
	Fill()
	Stroke()
	Clip()

	DrawImage(img image.Image, x, y float64)
	DrawImageWithClip(img image.Image, clip image.Rectangle, x, y float64)
	DrawImageScaled(img image.Image, x, y, width, height float64)

	SetLineWidth(width float64)
	SetAlpha(alpha float64)
	SetFillStyle(c color.Color)
	SetStrokeStyle(c color.Color)
	SetTransform(a, b, c, d, e, f float64)

	Save()
	Restore()
}
