package shell

import (
	"winshell/internal/input"
	"winshell/internal/platform"
)

// KeyBinding ties a native key to the logical key reported for it.
// Repeat is set only for navigation and deletion keys, whose presses the
// platform regenerates while held.
type KeyBinding struct {
	Code   platform.KeyCode
	Key    input.Key
	Repeat bool
}

// KeyPoller is the part of a platform window the tracker needs.
type KeyPoller interface {
	IsKeyPressed(code platform.KeyCode, repeat bool) bool
	IsKeyReleased(code platform.KeyCode) bool
}

func NewKeyBinding(code platform.KeyCode, key input.Key) KeyBinding {
	return KeyBinding{Code: code, Key: key, Repeat: repeatAllowed(code)}
}

func repeatAllowed(code platform.KeyCode) bool {
	switch code {
	case platform.KeyCodeLeft, platform.KeyCodeRight, platform.KeyCodeUp, platform.KeyCodeDown,
		platform.KeyCodeBackspace, platform.KeyCodeDelete:
		return true
	}
	return false
}

// DefaultKeyBindings returns the tracked key set in polling order.
func DefaultKeyBindings() []KeyBinding {
	return []KeyBinding{
		NewKeyBinding(platform.KeyCodeBackspace, input.KeyBackspace),
		NewKeyBinding(platform.KeyCodeDelete, input.KeyDelete),
		NewKeyBinding(platform.KeyCodeLeft, input.KeyLeft),
		NewKeyBinding(platform.KeyCodeRight, input.KeyRight),
		NewKeyBinding(platform.KeyCodeUp, input.KeyUp),
		NewKeyBinding(platform.KeyCodeDown, input.KeyDown),
		NewKeyBinding(platform.KeyCodeEnter, input.KeyEnter),
		NewKeyBinding(platform.KeyCodeLeftControl, input.KeyControl),
		NewKeyBinding(platform.KeyCodeRightControl, input.KeyControl),
		NewKeyBinding(platform.KeyCodeLeftShift, input.KeyShiftL),
		NewKeyBinding(platform.KeyCodeRightShift, input.KeyShiftR),
		NewKeyBinding(platform.KeyCodeLeftAlt, input.KeyAlt),
		NewKeyBinding(platform.KeyCodeRightAlt, input.KeyAlt),
		NewKeyBinding(platform.KeyCodeEscape, input.KeyEscape),
		NewKeyBinding(platform.KeyCodeHome, input.KeyHome),
		NewKeyBinding(platform.KeyCodeA, input.KeyA),
		NewKeyBinding(platform.KeyCodeC, input.KeyC),
		NewKeyBinding(platform.KeyCodeV, input.KeyV),
		NewKeyBinding(platform.KeyCodeX, input.KeyX),
	}
}

func PollDown(b KeyBinding, p KeyPoller) (input.KeyEvent, bool) {
	if !p.IsKeyPressed(b.Code, b.Repeat) {
		return input.KeyEvent{}, false
	}
	return input.KeyEvent{Key: b.Key, State: input.ButtonDown}, true
}

func PollUp(b KeyBinding, p KeyPoller) (input.KeyEvent, bool) {
	if !p.IsKeyReleased(b.Code) {
		return input.KeyEvent{}, false
	}
	return input.KeyEvent{Key: b.Key, State: input.ButtonUp}, true
}
