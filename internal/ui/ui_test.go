package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winshell/internal/render"
)

func TestThemeByName(t *testing.T) {
	light, err := ThemeByName("light")
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme(), light)

	dark, err := ThemeByName("dark")
	require.NoError(t, err)
	assert.Equal(t, "dark", dark.Name)
	assert.NotEqual(t, light.Page, dark.Page)

	_, err = ThemeByName("neon")
	assert.Error(t, err)
}

func TestComputeLayout(t *testing.T) {
	theme := DefaultTheme()
	l := ComputeLayout(800, 600, theme, 1)

	assert.Equal(t, 34.0, l.HeaderH)
	assert.Equal(t, 574.0, l.StatusY)
	assert.Equal(t, 752.0, l.PageW)
	assert.Equal(t, 24.0, l.PageX)
	assert.Equal(t, 58.0, l.PageY)
	assert.Equal(t, 600.0-26-24-58, l.PageH)
	assert.Equal(t, l.PageX+18, l.ContentX)
	assert.Equal(t, l.PageW-36, l.ContentW)
}

func TestComputeLayoutCapsAndScales(t *testing.T) {
	wide := ComputeLayout(2000, 600, DefaultTheme(), 1)
	assert.Equal(t, 900.0, wide.PageW)
	assert.Equal(t, 550.0, wide.PageX)

	scaled := ComputeLayout(2000, 1200, DefaultTheme(), 2)
	assert.Equal(t, 68.0, scaled.HeaderH)
	assert.Equal(t, 1800.0, scaled.PageW)

	tiny := ComputeLayout(10, 10, DefaultTheme(), 0)
	assert.Zero(t, tiny.PageH)
	assert.Zero(t, tiny.ContentW)
}

func TestDrawChrome(t *testing.T) {
	theme := DefaultTheme()
	c := render.NewContext(400, 300)
	l := ComputeLayout(400, 300, theme, 1)
	DrawChrome(c, l, theme, Chrome{Title: "pad", Status: "ready", Active: true}, 1)

	fb, ok := c.Flush()
	require.True(t, ok)
	assert.Equal(t, theme.Background, fb.At(1, 40))
	assert.Equal(t, theme.Page, fb.At(int(l.PageX)+50, int(l.PageY)+50))
	assert.Equal(t, theme.StatusBar, fb.At(399, 299))
	assert.Equal(t, theme.Header, fb.At(399, 1))

	DrawChrome(c, l, theme, Chrome{Title: "pad"}, 1)
	assert.Equal(t, theme.InactiveHeader, fb.At(399, 1))
}

func TestDrawChromeRestoresState(t *testing.T) {
	c := render.NewContext(100, 100)
	c.SetFillStyle(color.RGBA{R: 0xFF, A: 0xFF})
	DrawChrome(c, ComputeLayout(100, 100, DefaultTheme(), 1), DefaultTheme(), Chrome{}, 1)
	c.FillRect(0, 0, 1, 1)
	fb, _ := c.Flush()
	assert.Equal(t, color.RGBA{R: 0xFF, A: 0xFF}, fb.At(0, 0))
}
