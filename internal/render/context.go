package render

import (
	"image"
	"image/color"
	"math"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const curveSegments = 16

type point struct {
	x float64
	y float64
}

type subpath struct {
	pts    []point
	closed bool
}

// matrix is a 2D affine transform laid out as canvas setTransform(a..f).
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

func (m matrix) apply(x, y float64) point {
	return point{x: m[0]*x + m[2]*y + m[4], y: m[1]*x + m[3]*y + m[5]}
}

type drawState struct {
	fill       color.NRGBA
	stroke     color.NRGBA
	lineWidth  float64
	alpha      float64
	fontFamily string
	fontSize   float64
	transform  matrix
	clip       *image.Alpha
}

// Context is a software Canvas. Paths are flattened to polygons and
// rasterized with x/image/vector; text goes through x/image/font.
type Context struct {
	width  float64
	height float64
	fb     *FrameBuffer
	dirty  bool

	st    drawState
	stack []drawState
	path  []subpath

	fonts   *fontBank
	scratch *image.Alpha
}

var _ Canvas = (*Context)(nil)

func NewContext(width, height float64) *Context {
	c := &Context{
		fonts: newFontBank(),
		st: drawState{
			fill:       color.NRGBA{A: 0xFF},
			stroke:     color.NRGBA{A: 0xFF},
			lineWidth:  1,
			alpha:      1,
			fontFamily: DefaultFontFamily,
			fontSize:   12,
			transform:  identity,
		},
	}
	c.Resize(width, height)
	return c
}

func (c *Context) Size() (float64, float64) { return c.width, c.height }

// Resize replaces the backing buffer. Clip regions are tied to the old
// buffer size and are dropped.
func (c *Context) Resize(width, height float64) {
	c.width = width
	c.height = height
	c.fb = NewFrameBuffer(int(width), int(height))
	c.scratch = nil
	c.st.clip = nil
	for i := range c.stack {
		c.stack[i].clip = nil
	}
	c.dirty = true
}

func (c *Context) Clear(col color.Color) {
	c.fb.Clear(color.RGBAModel.Convert(col).(color.RGBA))
	c.dirty = true
}

func (c *Context) Flush() (*FrameBuffer, bool) {
	if !c.dirty {
		return nil, false
	}
	c.dirty = false
	return c.fb, true
}

// Buffer returns the backing buffer without touching the dirty state.
func (c *Context) Buffer() *FrameBuffer { return c.fb }

func (c *Context) RegisterFont(family string, ttf []byte) error {
	return c.fonts.register(family, ttf)
}

func (c *Context) SetFontFamily(family string) { c.st.fontFamily = family }
func (c *Context) SetFontSize(size float64)    { c.st.fontSize = size }
func (c *Context) SetLineWidth(width float64)  { c.st.lineWidth = width }

func (c *Context) SetAlpha(alpha float64) {
	c.st.alpha = math.Max(0, math.Min(1, alpha))
}

func (c *Context) SetFillStyle(col color.Color) {
	c.st.fill = color.NRGBAModel.Convert(col).(color.NRGBA)
}

func (c *Context) SetStrokeStyle(col color.Color) {
	c.st.stroke = color.NRGBAModel.Convert(col).(color.NRGBA)
}

func (c *Context) SetTransform(a, b, cc, d, e, f float64) {
	c.st.transform = matrix{a, b, cc, d, e, f}
}

func (c *Context) Save() {
	c.stack = append(c.stack, c.st)
}

// Restore pops the last saved state; it is a no-op on an empty stack.
func (c *Context) Restore() {
	if len(c.stack) == 0 {
		return
	}
	c.st = c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
}

// Paths

func (c *Context) BeginPath() { c.path = c.path[:0] }

func (c *Context) ClosePath() {
	if n := len(c.path); n > 0 && len(c.path[n-1].pts) > 0 {
		c.path[n-1].closed = true
	}
}

func (c *Context) MoveTo(x, y float64) {
	c.path = append(c.path, subpath{pts: []point{c.st.transform.apply(x, y)}})
}

func (c *Context) LineTo(x, y float64) {
	c.lineToDevice(c.st.transform.apply(x, y))
}

func (c *Context) lineToDevice(p point) {
	sp := c.openSubpath()
	if sp == nil {
		c.path = append(c.path, subpath{pts: []point{p}})
		return
	}
	sp.pts = append(sp.pts, p)
}

// openSubpath returns the subpath new segments extend. After a close the
// next segment starts a fresh subpath at the closed one's first point.
func (c *Context) openSubpath() *subpath {
	n := len(c.path)
	if n == 0 {
		return nil
	}
	last := &c.path[n-1]
	if !last.closed {
		return last
	}
	c.path = append(c.path, subpath{pts: []point{last.pts[0]}})
	return &c.path[n]
}

func (c *Context) currentPoint() (point, bool) {
	sp := c.openSubpath()
	if sp == nil || len(sp.pts) == 0 {
		return point{}, false
	}
	return sp.pts[len(sp.pts)-1], true
}

func (c *Context) QuadraticCurveTo(cpx, cpy, x, y float64) {
	cp := c.st.transform.apply(cpx, cpy)
	end := c.st.transform.apply(x, y)
	p0, ok := c.currentPoint()
	if !ok {
		c.path = append(c.path, subpath{pts: []point{cp}})
		p0 = cp
	}
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		c.lineToDevice(point{
			x: u*u*p0.x + 2*u*t*cp.x + t*t*end.x,
			y: u*u*p0.y + 2*u*t*cp.y + t*t*end.y,
		})
	}
}

func (c *Context) BezierCurveTo(cp1x, cp1y, cp2x, cp2y, x, y float64) {
	c1 := c.st.transform.apply(cp1x, cp1y)
	c2 := c.st.transform.apply(cp2x, cp2y)
	end := c.st.transform.apply(x, y)
	p0, ok := c.currentPoint()
	if !ok {
		c.path = append(c.path, subpath{pts: []point{c1}})
		p0 = c1
	}
	for i := 1; i <= curveSegments; i++ {
		t := float64(i) / curveSegments
		u := 1 - t
		c.lineToDevice(point{
			x: u*u*u*p0.x + 3*u*u*t*c1.x + 3*u*t*t*c2.x + t*t*t*end.x,
			y: u*u*u*p0.y + 3*u*u*t*c1.y + 3*u*t*t*c2.y + t*t*t*end.y,
		})
	}
}

func (c *Context) Rect(x, y, width, height float64) {
	c.path = append(c.path, c.rectSubpath(x, y, width, height))
}

func (c *Context) rectSubpath(x, y, width, height float64) subpath {
	m := c.st.transform
	return subpath{
		pts: []point{
			m.apply(x, y),
			m.apply(x+width, y),
			m.apply(x+width, y+height),
			m.apply(x, y+height),
		},
		closed: true,
	}
}

// Arc adds a clockwise arc. A sweep of 2π or more draws the full circle.
func (c *Context) Arc(x, y, radius, startAngle, endAngle float64) {
	if radius <= 0 {
		c.LineTo(x, y)
		return
	}
	sweep := endAngle - startAngle
	if sweep >= 2*math.Pi {
		sweep = 2 * math.Pi
	} else {
		sweep = math.Mod(sweep, 2*math.Pi)
		if sweep < 0 {
			sweep += 2 * math.Pi
		}
	}
	n := int(math.Ceil(sweep * radius / 2))
	if n < 4 {
		n = 4
	}
	if n > 256 {
		n = 256
	}
	for i := 0; i <= n; i++ {
		a := startAngle + sweep*float64(i)/float64(n)
		p := c.st.transform.apply(x+radius*math.Cos(a), y+radius*math.Sin(a))
		if i == 0 {
			if _, ok := c.currentPoint(); !ok {
				c.path = append(c.path, subpath{pts: []point{p}})
				continue
			}
		}
		c.lineToDevice(p)
	}
}

func (c *Context) Fill() {
	c.fillSubpaths(c.path, c.st.fill)
}

func (c *Context) Stroke() {
	c.strokeSubpaths(c.path, c.st.stroke)
}

// Clip intersects the clip region with the current path.
func (c *Context) Clip() {
	mask := image.NewAlpha(c.fb.Bounds())
	z := c.rasterizer()
	addPolygons(z, c.path)
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	if prev := c.st.clip; prev != nil {
		for i := range mask.Pix {
			if prev.Pix[i] < mask.Pix[i] {
				mask.Pix[i] = prev.Pix[i]
			}
		}
	}
	c.st.clip = mask
}

// Rectangles

func (c *Context) FillRect(x, y, width, height float64) {
	x, y, width, height = normRect(x, y, width, height)
	if col, ok := c.solid(c.st.fill); ok {
		c.fb.FillRect(int(math.Round(x+c.st.transform[4])), int(math.Round(y+c.st.transform[5])), int(math.Round(width)), int(math.Round(height)), col)
		c.dirty = true
		return
	}
	c.fillSubpaths([]subpath{c.rectSubpath(x, y, width, height)}, c.st.fill)
}

// StrokeRect centers the line on the rectangle's edges. A line whose outer
// edge falls on whole pixels is written straight into the buffer.
func (c *Context) StrokeRect(x, y, width, height float64) {
	x, y, width, height = normRect(x, y, width, height)
	lw := c.st.lineWidth
	if col, ok := c.solid(c.st.stroke); ok && lw > 0 {
		ox, oy := x+c.st.transform[4]-lw/2, y+c.st.transform[5]-lw/2
		if onGrid(lw, ox, oy, width, height) {
			c.fb.StrokeRect(int(ox), int(oy), int(width+lw), int(height+lw), int(lw), col)
			c.dirty = true
			return
		}
	}
	c.strokeSubpaths([]subpath{c.rectSubpath(x, y, width, height)}, c.st.stroke)
}

// normRect flips a rectangle with a negative side so it spans the same
// area with positive width and height.
func normRect(x, y, width, height float64) (float64, float64, float64, float64) {
	if width < 0 {
		x, width = x+width, -width
	}
	if height < 0 {
		y, height = y+height, -height
	}
	return x, y, width, height
}

func onGrid(vs ...float64) bool {
	for _, v := range vs {
		if v != math.Trunc(v) {
			return false
		}
	}
	return true
}

// solid reports whether col can be written straight into the buffer:
// opaque, unclipped and only translated.
func (c *Context) solid(col color.NRGBA) (color.RGBA, bool) {
	m := c.st.transform
	if c.st.clip != nil || c.st.alpha < 1 || col.A != 0xFF {
		return color.RGBA{}, false
	}
	if m[0] != 1 || m[1] != 0 || m[2] != 0 || m[3] != 1 {
		return color.RGBA{}, false
	}
	return color.RGBA{R: col.R, G: col.G, B: col.B, A: 0xFF}, true
}

// Text

// FillText draws text with its top-left corner at (x, y).
func (c *Context) FillText(text string, x, y float64) {
	if text == "" {
		return
	}
	face := c.fonts.face(c.st.fontFamily, c.st.fontSize)
	origin := c.st.transform.apply(x, y)
	dot := image.Pt(int(math.Round(origin.x)), int(math.Round(origin.y))+face.Metrics().Ascent.Ceil())

	b, _ := font.BoundString(face, text)
	r := image.Rect(b.Min.X.Floor(), b.Min.Y.Floor(), b.Max.X.Ceil(), b.Max.Y.Ceil()).Add(dot)
	r = r.Intersect(c.fb.Bounds())
	if r.Empty() {
		return
	}
	mask := image.NewAlpha(r)
	d := font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(dot.X, dot.Y)}
	d.DrawString(text)
	c.composite(mask, c.st.fill)
}

func (c *Context) MeasureText(text string) TextMetrics {
	face := c.fonts.face(c.st.fontFamily, c.st.fontSize)
	return TextMetrics{
		Width:  float64(font.MeasureString(face, text)) / 64,
		Height: float64(face.Metrics().Height) / 64,
	}
}

// Images

func (c *Context) DrawImage(img image.Image, x, y float64) {
	c.drawImage(img, img.Bounds(), x, y)
}

// DrawImageWithClip draws the part of img inside clip, given in the
// image's own coordinates, at (x, y).
func (c *Context) DrawImageWithClip(img image.Image, clip image.Rectangle, x, y float64) {
	c.drawImage(img, clip.Add(img.Bounds().Min).Intersect(img.Bounds()), x, y)
}

func (c *Context) drawImage(img image.Image, src image.Rectangle, x, y float64) {
	if src.Empty() {
		return
	}
	p := c.st.transform.apply(x, y)
	dp := image.Pt(int(math.Round(p.x)), int(math.Round(p.y)))
	r := image.Rectangle{Min: dp, Max: dp.Add(src.Size())}
	if mask := c.mask(r); mask != nil {
		xdraw.DrawMask(c.fb.Image(), r, img, src.Min, mask, r.Min, xdraw.Over)
	} else {
		xdraw.Draw(c.fb.Image(), r, img, src.Min, xdraw.Over)
	}
	c.dirty = true
}

func (c *Context) DrawImageScaled(img image.Image, x, y, width, height float64) {
	p := c.st.transform.apply(x, y)
	r := image.Rect(int(math.Round(p.x)), int(math.Round(p.y)), int(math.Round(p.x+width)), int(math.Round(p.y+height)))
	if r.Empty() {
		return
	}
	var opts *xdraw.Options
	if mask := c.mask(r); mask != nil {
		opts = &xdraw.Options{DstMask: mask}
	}
	xdraw.ApproxBiLinear.Scale(c.fb.Image(), r, img, img.Bounds(), xdraw.Over, opts)
	c.dirty = true
}

// mask combines the clip region and global alpha over r, or returns nil
// when neither applies.
func (c *Context) mask(r image.Rectangle) image.Image {
	a := c.st.alpha
	if c.st.clip == nil {
		if a >= 1 {
			return nil
		}
		return image.NewUniform(color.Alpha{A: uint8(a * 0xFF)})
	}
	r = r.Intersect(c.fb.Bounds())
	m := image.NewAlpha(r)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			m.Pix[m.PixOffset(x, y)] = uint8(float64(c.st.clip.Pix[c.st.clip.PixOffset(x, y)]) * a)
		}
	}
	return m
}

// Rasterization

func (c *Context) rasterizer() *vector.Rasterizer {
	return vector.NewRasterizer(c.fb.W, c.fb.H)
}

func (c *Context) coverage() *image.Alpha {
	if c.scratch == nil || c.scratch.Rect != c.fb.Bounds() {
		c.scratch = image.NewAlpha(c.fb.Bounds())
	} else {
		clear(c.scratch.Pix)
	}
	return c.scratch
}

func (c *Context) fillSubpaths(paths []subpath, col color.NRGBA) {
	z := c.rasterizer()
	if addPolygons(z, paths) == 0 {
		return
	}
	mask := c.coverage()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	c.composite(mask, col)
}

func (c *Context) strokeSubpaths(paths []subpath, col color.NRGBA) {
	hw := c.st.lineWidth / 2
	if hw <= 0 {
		return
	}
	z := c.rasterizer()
	n := 0
	for _, sp := range paths {
		pts := sp.pts
		if sp.closed && len(pts) > 1 {
			pts = append(pts[:len(pts):len(pts)], pts[0])
		}
		for i := 1; i < len(pts); i++ {
			if addSegment(z, pts[i-1], pts[i], hw) {
				n++
			}
			if i < len(pts)-1 || sp.closed {
				addJoin(z, pts[i], hw)
			}
		}
	}
	if n == 0 {
		return
	}
	mask := c.coverage()
	z.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	c.composite(mask, col)
}

// composite paints col through mask, honoring the clip and global alpha.
func (c *Context) composite(mask *image.Alpha, col color.NRGBA) {
	r := mask.Rect
	if clip := c.st.clip; clip != nil {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				i := mask.PixOffset(x, y)
				mask.Pix[i] = uint8(uint16(mask.Pix[i]) * uint16(clip.Pix[clip.PixOffset(x, y)]) / 0xFF)
			}
		}
	}
	col.A = uint8(float64(col.A) * c.st.alpha)
	xdraw.DrawMask(c.fb.Image(), r, image.NewUniform(col), image.Point{}, mask, r.Min, xdraw.Over)
	c.dirty = true
}

func addPolygons(z *vector.Rasterizer, paths []subpath) int {
	n := 0
	for _, sp := range paths {
		if len(sp.pts) < 3 {
			continue
		}
		z.MoveTo(float32(sp.pts[0].x), float32(sp.pts[0].y))
		for _, p := range sp.pts[1:] {
			z.LineTo(float32(p.x), float32(p.y))
		}
		z.ClosePath()
		n++
	}
	return n
}

// addSegment adds the quad covering a line of half width hw from a to b.
// All stroke polygons share one winding so overlaps never cancel.
func addSegment(z *vector.Rasterizer, a, b point, hw float64) bool {
	dx, dy := b.x-a.x, b.y-a.y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return false
	}
	nx, ny := -dy/l*hw, dx/l*hw
	z.MoveTo(float32(a.x+nx), float32(a.y+ny))
	z.LineTo(float32(b.x+nx), float32(b.y+ny))
	z.LineTo(float32(b.x-nx), float32(b.y-ny))
	z.LineTo(float32(a.x-nx), float32(a.y-ny))
	z.ClosePath()
	return true
}

func addJoin(z *vector.Rasterizer, p point, hw float64) {
	const sides = 8
	for i := 0; i < sides; i++ {
		a := -2 * math.Pi * float64(i) / sides
		x, y := float32(p.x+hw*math.Cos(a)), float32(p.y+hw*math.Sin(a))
		if i == 0 {
			z.MoveTo(x, y)
		} else {
			z.LineTo(x, y)
		}
	}
	z.ClosePath()
}
