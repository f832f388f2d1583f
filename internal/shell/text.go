package shell

import (
	"sync"
	"unicode/utf8"

	"winshell/internal/input"
)

// TextEvent converts a raw code point into a printable key event. Keys the
// tracker reports by polling are dropped here so they are never delivered
// twice.
func TextEvent(code uint32) (input.KeyEvent, bool) {
	key := input.KeyUnknown
	text := ""
	if r := rune(code); code <= utf8.MaxRune && utf8.ValidRune(r) {
		key = input.KeyFromRune(r)
		text = string(r)
	}
	switch key {
	case input.KeyUp, input.KeyDown, input.KeyLeft, input.KeyRight,
		input.KeyBackspace, input.KeyControl, input.KeyHome, input.KeyEscape,
		input.KeyDelete, input.KeyUnknown:
		return input.KeyEvent{}, false
	}
	return input.KeyEvent{Key: key, State: input.ButtonDown, Text: text}, true
}

// TextQueue collects text events from the platform callback until the
// frame loop drains them.
type TextQueue struct {
	mu     sync.Mutex
	events []input.KeyEvent
}

func NewTextQueue() *TextQueue {
	return &TextQueue{events: make([]input.KeyEvent, 0, 16)}
}

func (q *TextQueue) Push(ev input.KeyEvent) {
	q.mu.Lock()
	q.events = append(q.events, ev)
	q.mu.Unlock()
}

// PushCodepoint is an InputCallback that enqueues printable input.
func (q *TextQueue) PushCodepoint(code uint32) {
	if ev, ok := TextEvent(code); ok {
		q.Push(ev)
	}
}

// Drain removes and returns every queued event in arrival order. Events
// pushed while the caller handles the result land in the next drain.
func (q *TextQueue) Drain() []input.KeyEvent {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.events) == 0 {
		return nil
	}
	out := q.events
	q.events = make([]input.KeyEvent, 0, cap(out))
	return out
}

func (q *TextQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}
