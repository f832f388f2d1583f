package input

import (
	"unicode"
)

type ButtonState int

const (
	ButtonDown ButtonState = iota
	ButtonUp
)

func (s ButtonState) String() string {
	if s == ButtonDown {
		return "down"
	}
	return "up"
}

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

func (b MouseButton) String() string {
	switch b {
	case MouseLeft:
		return "left"
	case MouseMiddle:
		return "middle"
	case MouseRight:
		return "right"
	}
	return "unknown"
}

// KeyEvent is a single edge on a logical key. Text holds the produced
// character for printable input and is empty otherwise.
type KeyEvent struct {
	Key   Key
	State ButtonState
	Text  string
}

// MouseEvent reports a button edge at the last known cursor position.
type MouseEvent struct {
	X      float64
	Y      float64
	Button MouseButton
	State  ButtonState
}

// KeyFromRune maps a decoded character to its logical key. Printable
// characters without a dedicated key map to KeyCharacter; other control
// codes map to KeyUnknown. Line breaks are KeyUnknown too since Enter is
// reported by its key state.
func KeyFromRune(r rune) Key {
	switch {
	case r >= 'a' && r <= 'z':
		return KeyA + Key(r-'a')
	case r >= 'A' && r <= 'Z':
		return KeyA + Key(r-'A')
	case r >= '0' && r <= '9':
		return Key0 + Key(r-'0')
	}
	switch r {
	case ' ':
		return KeySpace
	case '\t':
		return KeyTab
	case 0x08:
		return KeyBackspace
	case 0x1b:
		return KeyEscape
	case 0x7f:
		return KeyDelete
	}
	if unicode.IsPrint(r) {
		return KeyCharacter
	}
	return KeyUnknown
}
