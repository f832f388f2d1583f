package platform

// KeyCode identifies a physical key on the native keyboard.
type KeyCode int

const (
	KeyCodeUnknown KeyCode = iota

	KeyCodeA
	KeyCodeB
	KeyCodeC
	KeyCodeD
	KeyCodeE
	KeyCodeF
	KeyCodeG
	KeyCodeH
	KeyCodeI
	KeyCodeJ
	KeyCodeK
	KeyCodeL
	KeyCodeM
	KeyCodeN
	KeyCodeO
	KeyCodeP
	KeyCodeQ
	KeyCodeR
	KeyCodeS
	KeyCodeT
	KeyCodeU
	KeyCodeV
	KeyCodeW
	KeyCodeX
	KeyCodeY
	KeyCodeZ

	KeyCode0
	KeyCode1
	KeyCode2
	KeyCode3
	KeyCode4
	KeyCode5
	KeyCode6
	KeyCode7
	KeyCode8
	KeyCode9

	KeyCodeSpace
	KeyCodeEnter
	KeyCodeEscape
	KeyCodeBackspace
	KeyCodeDelete
	KeyCodeTab

	KeyCodeLeft
	KeyCodeRight
	KeyCodeUp
	KeyCodeDown
	KeyCodeHome
	KeyCodeEnd
	KeyCodePageUp
	KeyCodePageDown

	KeyCodeLeftShift
	KeyCodeRightShift
	KeyCodeLeftControl
	KeyCodeRightControl
	KeyCodeLeftAlt
	KeyCodeRightAlt
)
