package shell

type Request int

const (
	RequestUpdate Request = iota
)

func (r Request) String() string {
	switch r {
	case RequestUpdate:
		return "update"
	}
	return "unknown"
}

const defaultRequestBuffer = 64

// Sender posts requests to a shell from any goroutine. Copies share the
// same channel.
type Sender struct {
	ch chan<- Request
}

// Send never blocks. It reports false when the buffer is full, which
// already guarantees a pending update on the receiving side.
func (s Sender) Send(r Request) bool {
	if s.ch == nil {
		return false
	}
	select {
	case s.ch <- r:
		return true
	default:
		return false
	}
}

// RequestUpdate asks for a redraw on the next frame.
func (s Sender) RequestUpdate() bool {
	return s.Send(RequestUpdate)
}
