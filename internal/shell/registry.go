package shell

import (
	"log/slog"

	"winshell/internal/platform"
)

// Registry runs several shells on one platform. Its loop ends when the
// last window has finished.
type Registry struct {
	platform platform.Platform
	logger   *slog.Logger
	opts     []Option
	windows  []*Shell
}

// NewRegistry creates an empty registry. opts apply to every window it
// creates, before any per-window options.
func NewRegistry(p platform.Platform, opts ...Option) *Registry {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Registry{platform: p, logger: o.logger, opts: opts}
}

func (r *Registry) CreateWindow(cfg Config, adapter Adapter, opts ...Option) (*Shell, error) {
	all := append(append([]Option(nil), r.opts...), opts...)
	s, err := Create(r.platform, cfg, adapter, all...)
	if err != nil {
		return nil, err
	}
	r.windows = append(r.windows, s)
	return s, nil
}

func (r *Registry) Len() int { return len(r.windows) }

// Windows returns the live shells in creation order.
func (r *Registry) Windows() []*Shell {
	return append([]*Shell(nil), r.windows...)
}

// Step runs one frame of every window in creation order, closing and
// dropping the ones that finished. It reports whether any remain.
func (r *Registry) Step() bool {
	live := r.windows[:0]
	for _, s := range r.windows {
		if s.Step() {
			live = append(live, s)
			continue
		}
		s.Close()
		r.logger.Info("window finished", "window", s.id)
	}
	for i := len(live); i < len(r.windows); i++ {
		r.windows[i] = nil
	}
	r.windows = live
	return len(r.windows) > 0
}

func (r *Registry) Run() error {
	defer func() {
		for _, s := range r.windows {
			s.Close()
		}
		r.windows = nil
	}()
	if d, ok := r.platform.(platform.Driver); ok {
		return d.Drive(r.Step)
	}
	for r.Step() {
	}
	return nil
}
