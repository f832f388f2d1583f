package shell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"winshell/internal/platform"
	"winshell/internal/platform/headless"
)

func TestRegistryRunsUntilEmpty(t *testing.T) {
	b := headless.New()
	r := NewRegistry(b)

	cfg := DefaultConfig()
	first := &recorder{}
	second := &recorder{}
	s1, err := r.CreateWindow(cfg, first)
	require.NoError(t, err)
	s2, err := r.CreateWindow(cfg, second)
	require.NoError(t, err)
	assert.NotEqual(t, s1.ID(), s2.ID())
	assert.Equal(t, 2, r.Len())

	s1.Window().(*headless.Window).CloseAfter(2)
	s2.Window().(*headless.Window).CloseAfter(4)

	require.NoError(t, r.Run())
	assert.Equal(t, 2, first.runs)
	assert.Equal(t, 4, second.runs)
	assert.Zero(t, r.Len())
}

func TestRegistryStepDropsFinished(t *testing.T) {
	r := NewRegistry(headless.New())
	a, err := r.CreateWindow(DefaultConfig(), NopAdapter{})
	require.NoError(t, err)
	b, err := r.CreateWindow(DefaultConfig(), NopAdapter{})
	require.NoError(t, err)

	a.Stop()
	assert.True(t, r.Step())
	assert.Equal(t, []*Shell{b}, r.Windows())
	assert.False(t, a.Window().IsOpen(), "finished windows are closed")

	b.Window().Close()
	assert.False(t, r.Step())
	assert.Empty(t, r.Windows())
}

func TestRegistryEmptyStep(t *testing.T) {
	r := NewRegistry(headless.New())
	assert.False(t, r.Step())
	assert.NoError(t, r.Run())
}

func TestRegistryCreateError(t *testing.T) {
	b := headless.New()
	r := NewRegistry(b)
	b.FailNext(errors.New("boom"))
	_, err := r.CreateWindow(DefaultConfig(), NopAdapter{})
	assert.ErrorIs(t, err, ErrCreateWindow)

	cfg := DefaultConfig()
	cfg.Bounds = platform.Rect{}
	_, err = r.CreateWindow(cfg, NopAdapter{})
	assert.ErrorIs(t, err, headless.ErrInvalidSize)
	assert.Zero(t, r.Len())
}

type driverPlatform struct {
	*headless.Backend
	drove int
}

func (d *driverPlatform) Drive(step func() bool) error {
	for step() {
		d.drove++
	}
	return nil
}

func TestRegistryUsesPlatformDriver(t *testing.T) {
	p := &driverPlatform{Backend: headless.New()}
	r := NewRegistry(p)
	s, err := r.CreateWindow(DefaultConfig(), NopAdapter{})
	require.NoError(t, err)
	s.Window().(*headless.Window).CloseAfter(3)

	require.NoError(t, r.Run())
	assert.Equal(t, 3, p.drove)
}
