package render

import (
	"fmt"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gobolditalic"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
)

const DefaultFontFamily = "sans"

type faceKey struct {
	family string
	size   int // 1/100 pt
}

type fontBank struct {
	fonts map[string]*opentype.Font
	cache map[faceKey]font.Face
}

func newFontBank() *fontBank {
	bank := &fontBank{
		fonts: map[string]*opentype.Font{},
		cache: map[faceKey]font.Face{},
	}
	builtin := map[string][]byte{
		"sans":             goregular.TTF,
		"sans-bold":        gobold.TTF,
		"sans-italic":      goitalic.TTF,
		"sans-bold-italic": gobolditalic.TTF,
		"mono":             gomono.TTF,
	}
	for family, ttf := range builtin {
		// The Go fonts are known good; a parse failure leaves the family
		// on the bitmap fallback.
		_ = bank.register(family, ttf)
	}
	return bank
}

func (b *fontBank) register(family string, ttf []byte) error {
	f, err := opentype.Parse(ttf)
	if err != nil {
		return fmt.Errorf("parse font %q: %w", family, err)
	}
	b.fonts[family] = f
	for key := range b.cache {
		if key.family == family {
			delete(b.cache, key)
		}
	}
	return nil
}

// face returns a cached face for family at size points, falling back to
// basicfont when the family is unknown.
func (b *fontBank) face(family string, size float64) font.Face {
	key := faceKey{family: family, size: int(math.Round(size * 100))}
	if f, ok := b.cache[key]; ok {
		return f
	}
	base, ok := b.fonts[family]
	if !ok || size <= 0 {
		return basicfont.Face7x13
	}
	face, err := opentype.NewFace(base, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return basicfont.Face7x13
	}
	b.cache[key] = face
	return face
}
