package ui

import (
	"winshell/internal/render"
)

type Layout struct {
	Width    float64
	Height   float64
	HeaderH  float64
	StatusH  float64
	StatusY  float64
	PageX    float64
	PageY    float64
	PageW    float64
	PageH    float64
	ContentX float64
	ContentY float64
	ContentW float64
	ContentH float64
}

func ComputeLayout(w, h float64, theme Theme, scale float64) Layout {
	if scale <= 0 {
		scale = 1
	}
	dp := func(v int) float64 { return float64(v) * scale }

	headerH := dp(theme.HeaderHeightDp)
	statusH := dp(theme.StatusHeightDp)
	margin := dp(theme.PageMarginDp)
	pad := dp(theme.PagePaddingDp)

	pageY := headerH + margin
	pageH := max(h-statusH-margin-pageY, 0)
	pageW := min(max(w-margin*2, 0), dp(900))
	pageX := (w - pageW) / 2

	return Layout{
		Width:    w,
		Height:   h,
		HeaderH:  headerH,
		StatusH:  statusH,
		StatusY:  max(h-statusH, headerH),
		PageX:    pageX,
		PageY:    pageY,
		PageW:    pageW,
		PageH:    pageH,
		ContentX: pageX + pad,
		ContentY: pageY + pad,
		ContentW: max(pageW-pad*2, 0),
		ContentH: max(pageH-pad*2, 0),
	}
}

// Chrome is the text shown around the page.
type Chrome struct {
	Title  string
	Status string
	Active bool
}

// DrawChrome paints everything but the page content. The canvas state is
// restored before it returns.
func DrawChrome(c render.Canvas, layout Layout, theme Theme, chrome Chrome, scale float64) {
	if scale <= 0 {
		scale = 1
	}
	c.Save()
	defer c.Restore()

	c.Clear(theme.Background)

	// Header
	header := theme.Header
	if !chrome.Active {
		header = theme.InactiveHeader
	}
	c.SetFillStyle(header)
	c.FillRect(0, 0, layout.Width, layout.HeaderH)

	c.SetFontSize(13 * scale)
	c.SetFillStyle(theme.HeaderText)
	m := c.MeasureText(chrome.Title)
	c.FillText(chrome.Title, 12*scale, (layout.HeaderH-m.Height)/2)

	// Page with shadow and accent line
	if layout.PageW > 0 && layout.PageH > 0 {
		c.SetFillStyle(theme.Shadow)
		c.FillRect(layout.PageX+2, layout.PageY+2, layout.PageW, layout.PageH)
		c.SetFillStyle(theme.Page)
		c.FillRect(layout.PageX, layout.PageY, layout.PageW, layout.PageH)
		c.SetLineWidth(1)
		c.SetStrokeStyle(theme.Border)
		c.StrokeRect(layout.PageX, layout.PageY, layout.PageW, layout.PageH)
		c.SetFillStyle(theme.Accent)
		c.FillRect(layout.PageX, layout.PageY, layout.PageW, max(3*scale, 1))
	}

	// Status bar
	c.SetFillStyle(theme.StatusBar)
	c.FillRect(0, layout.StatusY, layout.Width, layout.StatusH)
	c.SetStrokeStyle(theme.Border)
	c.BeginPath()
	c.MoveTo(0, layout.StatusY+0.5)
	c.LineTo(layout.Width, layout.StatusY+0.5)
	c.Stroke()

	c.SetFontSize(11 * scale)
	c.SetFillStyle(theme.StatusText)
	m = c.MeasureText(chrome.Status)
	c.FillText(chrome.Status, 10*scale, layout.StatusY+(layout.StatusH-m.Height)/2)
}
