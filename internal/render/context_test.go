package render

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	red   = color.RGBA{R: 0xFF, A: 0xFF}
	blue  = color.RGBA{B: 0xFF, A: 0xFF}
	white = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
)

func TestFlushReportsDrawnFramesOnce(t *testing.T) {
	c := NewContext(20, 10)

	fb, ok := c.Flush()
	require.True(t, ok, "a fresh context has a frame to present")
	assert.Equal(t, 20, fb.W)
	assert.Equal(t, 10, fb.H)

	_, ok = c.Flush()
	assert.False(t, ok, "nothing drawn since last flush")

	c.FillRect(0, 0, 5, 5)
	_, ok = c.Flush()
	assert.True(t, ok)
}

func TestResizeReplacesBuffer(t *testing.T) {
	c := NewContext(10, 10)
	c.Flush()
	c.Resize(32, 16)

	w, h := c.Size()
	assert.Equal(t, 32.0, w)
	assert.Equal(t, 16.0, h)
	fb, ok := c.Flush()
	require.True(t, ok)
	assert.Equal(t, 32*16*4, len(fb.Pixels))
}

func TestFillRectOpaqueAndTranslated(t *testing.T) {
	c := NewContext(10, 10)
	c.Clear(white)
	c.SetFillStyle(red)
	c.SetTransform(1, 0, 0, 1, 2, 3)
	c.FillRect(0, 0, 2, 2)

	fb := c.Buffer()
	assert.Equal(t, red, fb.At(2, 3))
	assert.Equal(t, red, fb.At(3, 4))
	assert.Equal(t, white, fb.At(1, 3))
	assert.Equal(t, white, fb.At(4, 3))
}

func TestFillPathCoversInterior(t *testing.T) {
	c := NewContext(20, 20)
	c.Clear(white)
	c.SetFillStyle(blue)
	c.BeginPath()
	c.MoveTo(2, 2)
	c.LineTo(18, 2)
	c.LineTo(18, 18)
	c.LineTo(2, 18)
	c.ClosePath()
	c.Fill()

	fb := c.Buffer()
	assertNear(t, blue, fb.At(10, 10))
	assert.Equal(t, white, fb.At(0, 0))
	assert.Equal(t, white, fb.At(19, 19))
}

func TestArcFillsCircle(t *testing.T) {
	c := NewContext(40, 40)
	c.Clear(white)
	c.SetFillStyle(red)
	c.BeginPath()
	c.Arc(20, 20, 10, 0, 2*math.Pi)
	c.Fill()

	fb := c.Buffer()
	assertNear(t, red, fb.At(20, 20))
	assertNear(t, red, fb.At(14, 20))
	assert.Equal(t, white, fb.At(2, 2))
	assert.Equal(t, white, fb.At(37, 37))
}

func TestStrokeDrawsOutlineOnly(t *testing.T) {
	c := NewContext(30, 30)
	c.Clear(white)
	c.SetStrokeStyle(blue)
	c.SetLineWidth(2)
	c.BeginPath()
	c.Rect(5, 5, 20, 20)
	c.Stroke()

	fb := c.Buffer()
	assertNear(t, blue, fb.At(15, 5))
	assertNear(t, blue, fb.At(5, 15))
	assert.Equal(t, white, fb.At(15, 15))
}

func TestFillRectNegativeSize(t *testing.T) {
	for _, a := range []uint8{0xFF, 0xFE} {
		c := NewContext(20, 20)
		c.SetFillStyle(color.NRGBA{A: a})
		c.FillRect(10, 5, -5, 5)

		fb := c.Buffer()
		assertNear(t, color.RGBA{A: a}, fb.At(7, 7))
		assert.Equal(t, color.RGBA{}, fb.At(11, 7), "alpha %#x", a)
	}
}

func TestStrokeRectCentersLineOnEdges(t *testing.T) {
	opaque := NewContext(30, 30)
	translucent := NewContext(30, 30)
	for _, c := range []*Context{opaque, translucent} {
		c.Clear(white)
		c.SetLineWidth(2)
	}
	opaque.SetStrokeStyle(blue)
	translucent.SetStrokeStyle(color.NRGBA{B: 0xFF, A: 0xFE})
	opaque.StrokeRect(5, 5, 20, 10)
	translucent.StrokeRect(5, 5, 20, 10)

	for _, c := range []*Context{opaque, translucent} {
		fb := c.Buffer()
		assertNear(t, blue, fb.At(4, 10))
		assertNear(t, blue, fb.At(5, 10))
		assertNear(t, blue, fb.At(15, 15))
		assert.Equal(t, white, fb.At(3, 10))
		assert.Equal(t, white, fb.At(6, 10))
		assert.Equal(t, white, fb.At(15, 16))
	}
}

func TestClipLimitsFill(t *testing.T) {
	c := NewContext(20, 20)
	c.Clear(white)
	c.Save()
	c.BeginPath()
	c.Rect(0, 0, 10, 20)
	c.Clip()

	c.SetFillStyle(red)
	c.BeginPath()
	c.Rect(0, 0, 20, 20)
	c.Fill()
	c.Restore()

	fb := c.Buffer()
	assertNear(t, red, fb.At(5, 5))
	assert.Equal(t, white, fb.At(15, 5))

	c.FillRect(10, 0, 10, 20)
	assert.Equal(t, color.RGBA{A: 0xFF}, fb.At(15, 5), "restore drops the clip and the fill style")
}

func TestRestoreOnEmptyStackIsNoop(t *testing.T) {
	c := NewContext(4, 4)
	c.SetLineWidth(3)
	c.Restore()
	assert.Equal(t, 3.0, c.st.lineWidth)
}

func TestAlphaBlendsFill(t *testing.T) {
	c := NewContext(4, 4)
	c.Clear(white)
	c.SetAlpha(0.5)
	c.SetFillStyle(color.RGBA{A: 0xFF})
	c.FillRect(0, 0, 4, 4)

	px := c.Buffer().At(1, 1)
	assert.InDelta(t, 0x80, int(px.R), 2)
	assert.Equal(t, uint8(0xFF), px.A)
}

func TestFillTextAndMeasure(t *testing.T) {
	c := NewContext(120, 40)
	c.Clear(white)
	c.SetFillStyle(color.RGBA{A: 0xFF})
	c.SetFontSize(16)

	m := c.MeasureText("Hello")
	assert.Greater(t, m.Width, 0.0)
	assert.Greater(t, m.Height, 0.0)
	assert.Greater(t, c.MeasureText("Hello, world").Width, m.Width)

	c.FillText("Hello", 2, 2)
	fb := c.Buffer()
	dark := 0
	for y := 0; y < fb.H; y++ {
		for x := 0; x < fb.W; x++ {
			if fb.At(x, y).R < 0x80 {
				dark++
			}
		}
	}
	assert.Greater(t, dark, 0, "text must reach the buffer")
}

func TestUnknownFontFamilyFallsBack(t *testing.T) {
	c := NewContext(10, 10)
	c.SetFontFamily("no-such-family")
	assert.Greater(t, c.MeasureText("abc").Width, 0.0)
	assert.Error(t, c.RegisterFont("broken", []byte("not a font")))
}

func TestDrawImageWithClip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if x < 2 {
				src.SetRGBA(x, y, red)
			} else {
				src.SetRGBA(x, y, blue)
			}
		}
	}
	c := NewContext(10, 10)
	c.Clear(white)
	c.DrawImageWithClip(src, image.Rect(2, 0, 4, 4), 5, 5)

	fb := c.Buffer()
	assert.Equal(t, blue, fb.At(5, 5))
	assert.Equal(t, blue, fb.At(6, 8))
	assert.Equal(t, white, fb.At(7, 5))
	assert.Equal(t, white, fb.At(4, 5))
}

func TestDrawImageScaled(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := 0; i < len(src.Pix); i += 4 {
		copy(src.Pix[i:], []uint8{0xFF, 0, 0, 0xFF})
	}
	c := NewContext(10, 10)
	c.Clear(white)
	c.DrawImageScaled(src, 0, 0, 8, 8)

	fb := c.Buffer()
	assertNear(t, red, fb.At(4, 4))
	assert.Equal(t, white, fb.At(9, 9))
}

func assertNear(t *testing.T, want, got color.RGBA) {
	t.Helper()
	diff := func(a, b uint8) int {
		d := int(a) - int(b)
		if d < 0 {
			return -d
		}
		return d
	}
	if diff(want.R, got.R) > 2 || diff(want.G, got.G) > 2 || diff(want.B, got.B) > 2 || diff(want.A, got.A) > 2 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
