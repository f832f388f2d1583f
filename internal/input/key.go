package input

import "strconv"

// Key is a logical, platform independent key.
type Key int

const (
	KeyUnknown Key = iota
	KeyBackspace
	KeyDelete
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyEnter
	KeyControl
	KeyShiftL
	KeyShiftR
	KeyAlt
	KeyEscape
	KeyHome
	KeyEnd
	KeyTab
	KeySpace
	KeyCharacter

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9
)

var keyNames = map[Key]string{
	KeyUnknown:   "unknown",
	KeyBackspace: "backspace",
	KeyDelete:    "delete",
	KeyLeft:      "left",
	KeyRight:     "right",
	KeyUp:        "up",
	KeyDown:      "down",
	KeyEnter:     "enter",
	KeyControl:   "control",
	KeyShiftL:    "shift_l",
	KeyShiftR:    "shift_r",
	KeyAlt:       "alt",
	KeyEscape:    "escape",
	KeyHome:      "home",
	KeyEnd:       "end",
	KeyTab:       "tab",
	KeySpace:     "space",
	KeyCharacter: "character",
}

func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	switch {
	case k >= KeyA && k <= KeyZ:
		return string(rune('a' + int(k-KeyA)))
	case k >= Key0 && k <= Key9:
		return string(rune('0' + int(k-Key0)))
	}
	return "key(" + strconv.Itoa(int(k)) + ")"
}

// IsLetter reports whether k is one of KeyA..KeyZ.
func (k Key) IsLetter() bool { return k >= KeyA && k <= KeyZ }
