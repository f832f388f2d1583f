package editor

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type Position struct {
	Line int
	Byte int
}

// State is a plain text buffer with a caret and an optional selection.
// Lines never contain '\n'.
type State struct {
	Lines     [][]byte
	Line      int
	CaretByte int

	// goal column in bytes kept across vertical moves
	goal int

	selectionAnchor    Position
	selectionAnchored  bool
	selectionIsVisible bool
}

func NewState(text string) *State {
	s := &State{}
	s.SetText(text)
	return s
}

func (s *State) SetText(text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	parts := strings.Split(text, "\n")
	s.Lines = make([][]byte, len(parts))
	for i, p := range parts {
		s.Lines[i] = []byte(p)
	}
	s.Line = len(s.Lines) - 1
	s.CaretByte = len(s.Lines[s.Line])
	s.goal = s.CaretByte
	s.ClearSelection()
}

func (s *State) Normalize() {
	if len(s.Lines) == 0 {
		s.Lines = [][]byte{{}}
	}
	if s.Line < 0 {
		s.Line = 0
	}
	if s.Line >= len(s.Lines) {
		s.Line = len(s.Lines) - 1
	}
	s.CaretByte = clampToRuneBoundary(s.Lines[s.Line], s.CaretByte)
}

func (s *State) Text() string {
	return string(joinLines(s.Lines))
}

func (s *State) LineCount() int {
	s.Normalize()
	return len(s.Lines)
}

func (s *State) CurrentLine() []byte {
	s.Normalize()
	return s.Lines[s.Line]
}

func (s *State) Caret() Position {
	s.Normalize()
	return s.caretPos()
}

func (s *State) SetCaret(line, bytePos int) {
	s.Line = line
	s.CaretByte = bytePos
	s.Normalize()
	s.goal = s.CaretByte
}

func (s *State) MoveCaretLeft() {
	s.Normalize()
	defer s.resetGoal()
	if s.CaretByte <= 0 {
		if s.Line > 0 {
			s.Line--
			s.CaretByte = len(s.Lines[s.Line])
		}
		return
	}
	s.CaretByte = previousRuneBoundary(s.Lines[s.Line], s.CaretByte)
}

func (s *State) MoveCaretRight() {
	s.Normalize()
	defer s.resetGoal()
	text := s.Lines[s.Line]
	if s.CaretByte >= len(text) {
		if s.Line < len(s.Lines)-1 {
			s.Line++
			s.CaretByte = 0
		}
		return
	}
	s.CaretByte = nextRuneBoundary(text, s.CaretByte)
}

func (s *State) MoveCaretUp() {
	s.Normalize()
	if s.Line == 0 {
		s.CaretByte = 0
		s.resetGoal()
		return
	}
	s.Line--
	s.CaretByte = clampToRuneBoundary(s.Lines[s.Line], s.goal)
}

func (s *State) MoveCaretDown() {
	s.Normalize()
	if s.Line >= len(s.Lines)-1 {
		s.CaretByte = len(s.Lines[s.Line])
		s.resetGoal()
		return
	}
	s.Line++
	s.CaretByte = clampToRuneBoundary(s.Lines[s.Line], s.goal)
}

func (s *State) MoveCaretWordLeft() {
	s.Normalize()
	defer s.resetGoal()
	if s.CaretByte <= 0 {
		if s.Line > 0 {
			s.Line--
			s.CaretByte = len(s.Lines[s.Line])
		}
		return
	}
	s.CaretByte = previousWordBoundary(s.Lines[s.Line], s.CaretByte)
}

func (s *State) MoveCaretWordRight() {
	s.Normalize()
	defer s.resetGoal()
	text := s.Lines[s.Line]
	if s.CaretByte >= len(text) {
		if s.Line < len(s.Lines)-1 {
			s.Line++
			s.CaretByte = 0
		}
		return
	}
	s.CaretByte = nextWordBoundary(text, s.CaretByte)
}

func (s *State) MoveCaretToLineStart() {
	s.Normalize()
	s.CaretByte = 0
	s.resetGoal()
}

func (s *State) MoveCaretToLineEnd() {
	s.Normalize()
	s.CaretByte = len(s.Lines[s.Line])
	s.resetGoal()
}

// InsertTextAtCaret replaces the selection, if any, with input. Newlines
// in input split the current line.
func (s *State) InsertTextAtCaret(input string) error {
	if input == "" {
		return nil
	}
	if !utf8.ValidString(input) {
		return fmt.Errorf("input must be valid UTF-8")
	}
	s.Normalize()
	s.DeleteSelection()

	input = strings.ReplaceAll(input, "\r\n", "\n")
	input = strings.ReplaceAll(input, "\r", "\n")
	parts := strings.Split(input, "\n")

	line := s.Lines[s.Line]
	head := append([]byte(nil), line[:s.CaretByte]...)
	tail := append([]byte(nil), line[s.CaretByte:]...)

	if len(parts) == 1 {
		s.Lines[s.Line] = append(append(head, parts[0]...), tail...)
		s.CaretByte += len(parts[0])
		s.resetGoal()
		return nil
	}

	inserted := make([][]byte, 0, len(parts))
	inserted = append(inserted, append(head, parts[0]...))
	for _, p := range parts[1 : len(parts)-1] {
		inserted = append(inserted, []byte(p))
	}
	last := parts[len(parts)-1]
	inserted = append(inserted, append([]byte(last), tail...))

	lines := make([][]byte, 0, len(s.Lines)+len(inserted)-1)
	lines = append(lines, s.Lines[:s.Line]...)
	lines = append(lines, inserted...)
	lines = append(lines, s.Lines[s.Line+1:]...)
	s.Lines = lines
	s.Line += len(inserted) - 1
	s.CaretByte = len(last)
	s.resetGoal()
	return nil
}

func (s *State) SplitLineAtCaret() {
	_ = s.InsertTextAtCaret("\n")
}

func (s *State) Backspace() {
	s.Normalize()
	defer s.resetGoal()
	if s.DeleteSelection() {
		return
	}
	if s.CaretByte > 0 {
		start := previousRuneBoundary(s.Lines[s.Line], s.CaretByte)
		s.deleteRange(s.Line, start, s.CaretByte)
		s.CaretByte = start
		return
	}
	if s.Line == 0 {
		return
	}
	prevLen := len(s.Lines[s.Line-1])
	s.mergeLines(s.Line - 1)
	s.Line--
	s.CaretByte = prevLen
}

func (s *State) DeleteForward() {
	s.Normalize()
	defer s.resetGoal()
	if s.DeleteSelection() {
		return
	}
	text := s.Lines[s.Line]
	if s.CaretByte < len(text) {
		s.deleteRange(s.Line, s.CaretByte, nextRuneBoundary(text, s.CaretByte))
		return
	}
	if s.Line < len(s.Lines)-1 {
		s.mergeLines(s.Line)
	}
}

func (s *State) DeleteWordBackward() {
	s.Normalize()
	if s.CaretByte == 0 || s.HasSelection() {
		s.Backspace()
		return
	}
	s.ClearSelection()
	start := previousWordBoundary(s.Lines[s.Line], s.CaretByte)
	s.deleteRange(s.Line, start, s.CaretByte)
	s.CaretByte = start
	s.resetGoal()
}

func (s *State) HasSelection() bool {
	return s.selectionIsVisible
}

func (s *State) EnsureSelectionAnchor() {
	s.Normalize()
	if s.selectionAnchored {
		return
	}
	s.selectionAnchor = s.caretPos()
	s.selectionAnchored = true
	s.selectionIsVisible = false
}

func (s *State) UpdateSelectionFromCaret() {
	s.Normalize()
	if !s.selectionAnchored {
		s.selectionAnchor = s.caretPos()
		s.selectionAnchored = true
	}
	s.selectionIsVisible = comparePos(s.selectionAnchor, s.caretPos()) != 0
}

func (s *State) ClearSelection() {
	s.selectionAnchored = false
	s.selectionIsVisible = false
}

func (s *State) SelectionRange() (Position, Position, bool) {
	if !s.selectionIsVisible {
		return Position{}, Position{}, false
	}
	s.Normalize()
	a := s.clampPosition(s.selectionAnchor)
	b := s.caretPos()
	if comparePos(a, b) <= 0 {
		return a, b, true
	}
	return b, a, true
}

func (s *State) SelectAll() {
	s.Normalize()
	s.selectionAnchor = Position{}
	s.selectionAnchored = true
	s.Line = len(s.Lines) - 1
	s.CaretByte = len(s.Lines[s.Line])
	s.resetGoal()
	s.selectionIsVisible = comparePos(s.selectionAnchor, s.caretPos()) != 0
}

func (s *State) SelectedText() string {
	start, end, ok := s.SelectionRange()
	if !ok {
		return ""
	}
	if start.Line == end.Line {
		return string(s.Lines[start.Line][start.Byte:end.Byte])
	}

	var out strings.Builder
	out.Write(s.Lines[start.Line][start.Byte:])
	for i := start.Line + 1; i < end.Line; i++ {
		out.WriteByte('\n')
		out.Write(s.Lines[i])
	}
	out.WriteByte('\n')
	out.Write(s.Lines[end.Line][:end.Byte])
	return out.String()
}

// DeleteSelection removes the selected text. Without a visible selection it
// only drops an anchor left by a selection gesture that never moved the
// caret, so later edits start a fresh selection.
func (s *State) DeleteSelection() bool {
	start, end, ok := s.SelectionRange()
	if !ok {
		s.ClearSelection()
		return false
	}
	if comparePos(start, end) >= 0 {
		s.ClearSelection()
		return false
	}

	prefix := append([]byte(nil), s.Lines[start.Line][:start.Byte]...)
	merged := append(prefix, s.Lines[end.Line][end.Byte:]...)
	s.Lines[start.Line] = merged
	s.Lines = append(s.Lines[:start.Line+1], s.Lines[end.Line+1:]...)
	s.Line = start.Line
	s.CaretByte = start.Byte
	s.resetGoal()
	s.ClearSelection()
	return true
}

func (s *State) caretPos() Position {
	return Position{Line: s.Line, Byte: s.CaretByte}
}

func (s *State) resetGoal() {
	s.goal = s.CaretByte
}

func (s *State) clampPosition(p Position) Position {
	if p.Line < 0 {
		return Position{}
	}
	if p.Line >= len(s.Lines) {
		last := len(s.Lines) - 1
		return Position{Line: last, Byte: len(s.Lines[last])}
	}
	p.Byte = clampToRuneBoundary(s.Lines[p.Line], p.Byte)
	return p
}

func (s *State) deleteRange(line, start, end int) {
	text := s.Lines[line]
	s.Lines[line] = append(append([]byte(nil), text[:start]...), text[end:]...)
}

// mergeLines joins line i+1 onto line i.
func (s *State) mergeLines(i int) {
	s.Lines[i] = append(append([]byte(nil), s.Lines[i]...), s.Lines[i+1]...)
	s.Lines = append(s.Lines[:i+1], s.Lines[i+2:]...)
}

func joinLines(lines [][]byte) []byte {
	n := 0
	for _, l := range lines {
		n += len(l) + 1
	}
	out := make([]byte, 0, n)
	for i, l := range lines {
		if i > 0 {
			out = append(out, '\n')
		}
		out = append(out, l...)
	}
	return out
}

func clampToRuneBoundary(text []byte, pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(text) {
		pos = len(text)
	}
	for pos > 0 && pos < len(text) && !utf8.RuneStart(text[pos]) {
		pos--
	}
	return pos
}

func previousRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos == 0 {
		return 0
	}
	_, size := utf8.DecodeLastRune(text[:pos])
	if size <= 0 {
		size = 1
	}
	return pos - size
}

func nextRuneBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	if pos >= len(text) {
		return len(text)
	}
	_, size := utf8.DecodeRune(text[pos:])
	if size <= 0 {
		size = 1
	}
	return pos + size
}

func previousWordBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if isWordRune(r) {
			break
		}
		pos -= max(size, 1)
	}
	for pos > 0 {
		r, size := utf8.DecodeLastRune(text[:pos])
		if !isWordRune(r) {
			break
		}
		pos -= max(size, 1)
	}
	return clampToRuneBoundary(text, pos)
}

func nextWordBoundary(text []byte, pos int) int {
	pos = clampToRuneBoundary(text, pos)
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if isWordRune(r) {
			break
		}
		pos += max(size, 1)
	}
	for pos < len(text) {
		r, size := utf8.DecodeRune(text[pos:])
		if !isWordRune(r) {
			break
		}
		pos += max(size, 1)
	}
	return clampToRuneBoundary(text, pos)
}

func comparePos(a, b Position) int {
	if a.Line != b.Line {
		if a.Line < b.Line {
			return -1
		}
		return 1
	}
	if a.Byte < b.Byte {
		return -1
	}
	if a.Byte > b.Byte {
		return 1
	}
	return 0
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
