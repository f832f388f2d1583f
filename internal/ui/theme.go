package ui

import (
	"fmt"
	"image/color"
)

type Theme struct {
	Name           string
	Background     color.RGBA
	Header         color.RGBA
	HeaderText     color.RGBA
	Page           color.RGBA
	Border         color.RGBA
	Shadow         color.RGBA
	Text           color.RGBA
	Caret          color.RGBA
	Accent         color.RGBA
	StatusBar      color.RGBA
	StatusText     color.RGBA
	InactiveHeader color.RGBA
	HeaderHeightDp int
	StatusHeightDp int
	PageMarginDp   int
	PagePaddingDp  int
}

func DefaultTheme() Theme {
	return Theme{
		Name:           "light",
		Background:     color.RGBA{0xE2, 0xE7, 0xEF, 0xFF},
		Header:         color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		HeaderText:     color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Page:           color.RGBA{0xFF, 0xFF, 0xFF, 0xFF},
		Border:         color.RGBA{0xB2, 0xBF, 0xD0, 0xFF},
		Shadow:         color.RGBA{0xC8, 0xCF, 0xDB, 0xFF},
		Text:           color.RGBA{0x1F, 0x23, 0x28, 0xFF},
		Caret:          color.RGBA{0x15, 0x54, 0xA4, 0xFF},
		Accent:         color.RGBA{0x2B, 0x57, 0x9A, 0xFF},
		StatusBar:      color.RGBA{0xEA, 0xEF, 0xF6, 0xFF},
		StatusText:     color.RGBA{0x4A, 0x55, 0x66, 0xFF},
		InactiveHeader: color.RGBA{0x6B, 0x7A, 0x90, 0xFF},
		HeaderHeightDp: 34,
		StatusHeightDp: 26,
		PageMarginDp:   24,
		PagePaddingDp:  18,
	}
}

func DarkTheme() Theme {
	t := DefaultTheme()
	t.Name = "dark"
	t.Background = color.RGBA{0x1B, 0x1E, 0x24, 0xFF}
	t.Header = color.RGBA{0x25, 0x2A, 0x33, 0xFF}
	t.HeaderText = color.RGBA{0xD7, 0xDE, 0xE8, 0xFF}
	t.Page = color.RGBA{0x2A, 0x2F, 0x38, 0xFF}
	t.Border = color.RGBA{0x3C, 0x44, 0x52, 0xFF}
	t.Shadow = color.RGBA{0x12, 0x14, 0x18, 0xFF}
	t.Text = color.RGBA{0xE6, 0xE9, 0xEE, 0xFF}
	t.Caret = color.RGBA{0x6C, 0xA8, 0xFF, 0xFF}
	t.Accent = color.RGBA{0x6C, 0xA8, 0xFF, 0xFF}
	t.StatusBar = color.RGBA{0x22, 0x26, 0x2E, 0xFF}
	t.StatusText = color.RGBA{0x9A, 0xA5, 0xB4, 0xFF}
	t.InactiveHeader = color.RGBA{0x30, 0x34, 0x3C, 0xFF}
	return t
}

func ThemeByName(name string) (Theme, error) {
	switch name {
	case "", "light":
		return DefaultTheme(), nil
	case "dark":
		return DarkTheme(), nil
	}
	return Theme{}, fmt.Errorf("ui: unknown theme %q", name)
}
