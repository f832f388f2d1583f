package ebitenwin

import (
	"github.com/hajimehoshi/ebiten/v2"

	"winshell/internal/platform"
)

var keyMap = map[platform.KeyCode]ebiten.Key{
	platform.KeyCodeA: ebiten.KeyA,
	platform.KeyCodeB: ebiten.KeyB,
	platform.KeyCodeC: ebiten.KeyC,
	platform.KeyCodeD: ebiten.KeyD,
	platform.KeyCodeE: ebiten.KeyE,
	platform.KeyCodeF: ebiten.KeyF,
	platform.KeyCodeG: ebiten.KeyG,
	platform.KeyCodeH: ebiten.KeyH,
	platform.KeyCodeI: ebiten.KeyI,
	platform.KeyCodeJ: ebiten.KeyJ,
	platform.KeyCodeK: ebiten.KeyK,
	platform.KeyCodeL: ebiten.KeyL,
	platform.KeyCodeM: ebiten.KeyM,
	platform.KeyCodeN: ebiten.KeyN,
	platform.KeyCodeO: ebiten.KeyO,
	platform.KeyCodeP: ebiten.KeyP,
	platform.KeyCodeQ: ebiten.KeyQ,
	platform.KeyCodeR: ebiten.KeyR,
	platform.KeyCodeS: ebiten.KeyS,
	platform.KeyCodeT: ebiten.KeyT,
	platform.KeyCodeU: ebiten.KeyU,
	platform.KeyCodeV: ebiten.KeyV,
	platform.KeyCodeW: ebiten.KeyW,
	platform.KeyCodeX: ebiten.KeyX,
	platform.KeyCodeY: ebiten.KeyY,
	platform.KeyCodeZ: ebiten.KeyZ,

	platform.KeyCode0: ebiten.KeyDigit0,
	platform.KeyCode1: ebiten.KeyDigit1,
	platform.KeyCode2: ebiten.KeyDigit2,
	platform.KeyCode3: ebiten.KeyDigit3,
	platform.KeyCode4: ebiten.KeyDigit4,
	platform.KeyCode5: ebiten.KeyDigit5,
	platform.KeyCode6: ebiten.KeyDigit6,
	platform.KeyCode7: ebiten.KeyDigit7,
	platform.KeyCode8: ebiten.KeyDigit8,
	platform.KeyCode9: ebiten.KeyDigit9,

	platform.KeyCodeSpace:     ebiten.KeySpace,
	platform.KeyCodeEnter:     ebiten.KeyEnter,
	platform.KeyCodeEscape:    ebiten.KeyEscape,
	platform.KeyCodeBackspace: ebiten.KeyBackspace,
	platform.KeyCodeDelete:    ebiten.KeyDelete,
	platform.KeyCodeTab:       ebiten.KeyTab,

	platform.KeyCodeLeft:     ebiten.KeyArrowLeft,
	platform.KeyCodeRight:    ebiten.KeyArrowRight,
	platform.KeyCodeUp:       ebiten.KeyArrowUp,
	platform.KeyCodeDown:     ebiten.KeyArrowDown,
	platform.KeyCodeHome:     ebiten.KeyHome,
	platform.KeyCodeEnd:      ebiten.KeyEnd,
	platform.KeyCodePageUp:   ebiten.KeyPageUp,
	platform.KeyCodePageDown: ebiten.KeyPageDown,

	platform.KeyCodeLeftShift:    ebiten.KeyShiftLeft,
	platform.KeyCodeRightShift:   ebiten.KeyShiftRight,
	platform.KeyCodeLeftControl:  ebiten.KeyControlLeft,
	platform.KeyCodeRightControl: ebiten.KeyControlRight,
	platform.KeyCodeLeftAlt:      ebiten.KeyAltLeft,
	platform.KeyCodeRightAlt:     ebiten.KeyAltRight,
}

var mouseMap = [...]ebiten.MouseButton{
	platform.MouseLeft:   ebiten.MouseButtonLeft,
	platform.MouseMiddle: ebiten.MouseButtonMiddle,
	platform.MouseRight:  ebiten.MouseButtonRight,
}

// repeatFires reports whether a key held for d ticks produces a press on
// this tick. The first tick always does; after delay ticks it repeats every
// interval ticks.
func repeatFires(d, delay, interval int) bool {
	if d <= 0 {
		return false
	}
	if d == 1 {
		return true
	}
	if interval <= 0 || d < delay {
		return false
	}
	return (d-delay)%interval == 0
}
