package layout

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/leaf/internal/document"
)

func newTestManager(t *testing.T, pages int, size document.Size) *Manager {
	t.Helper()
	m, err := NewManager(Config{
		Source:   document.NewUniformPattern(pages, size),
		Viewport: Viewport{Width: 300, Height: 350},
	})
	require.NoError(t, err)
	return m
}

func TestManager_Step(t *testing.T) {
	m := newTestManager(t, 2, document.Size{Width: 300, Height: 700})
	require.Equal(t, 4, m.Len())
	require.Equal(t, 0, m.Cursor())

	_, cur, ok := m.Step(-1)
	assert.False(t, ok)
	assert.Equal(t, 0, cur)

	var cursors []int
	for i := 0; i < 3; i++ {
		_, cur, ok := m.Step(1)
		require.True(t, ok)
		cursors = append(cursors, cur)
	}
	assert.Equal(t, []int{1, 2, 3}, cursors)
	assert.Equal(t, 1, m.CurrentPage())

	_, cur, ok = m.Step(1)
	assert.False(t, ok)
	assert.Equal(t, 3, cur)
	assert.Equal(t, 3, m.Cursor())
}

func TestManager_ModeToggle(t *testing.T) {
	m := newTestManager(t, 3, document.Size{Width: 300, Height: 700})

	var changes []Change
	m.OnInvalidate(func(c Change) { changes = append(changes, c) })

	// Second screen of page 1.
	_, err := m.Seek(3)
	require.NoError(t, err)
	require.Equal(t, 1, m.CurrentPage())

	require.NoError(t, m.SetSinglePageMode(true))
	assert.True(t, m.IsSinglePageMode())
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, 1, m.Cursor())

	require.NoError(t, m.SetSinglePageMode(false))
	assert.Equal(t, 1, m.CurrentPage())
	assert.Equal(t, 2, m.Cursor(), "re-mapped to first screen of the page")

	// No-op toggle does not invalidate.
	require.NoError(t, m.SetSinglePageMode(false))
	require.Len(t, changes, 2)
	assert.Equal(t, ReasonMode, changes[0].Reason)
	assert.Equal(t, 1, changes[0].Page)
	assert.Greater(t, changes[1].Generation, changes[0].Generation)
}

func TestManager_CurrentPageLayout(t *testing.T) {
	m := newTestManager(t, 2, document.Size{Width: 300, Height: 700})
	_, _, err := m.SeekPage(1)
	require.NoError(t, err)

	screens := m.CurrentPageLayout()
	require.Len(t, screens, 2)
	for _, s := range screens {
		assert.Equal(t, 1, s.Page)
	}
	assert.Nil(t, m.PageLayout(5))
}

func TestManager_SetViewport(t *testing.T) {
	m := newTestManager(t, 2, document.Size{Width: 300, Height: 700})
	_, _, err := m.SeekPage(1)
	require.NoError(t, err)

	var got Change
	m.OnInvalidate(func(c Change) { got = c })

	// Rotation.
	require.NoError(t, m.SetViewport(Viewport{Width: 350, Height: 300}))
	assert.Equal(t, ReasonViewport, got.Reason)
	assert.Equal(t, 1, m.CurrentPage())
	require.NoError(t, Validate(m.Sequence(), m.Source(), m.Viewport()))

	err = m.SetViewport(Viewport{})
	assert.ErrorIs(t, err, ErrInvalidViewport)
	assert.Equal(t, Viewport{Width: 350, Height: 300}, m.Viewport())
}

func TestManager_Zoom(t *testing.T) {
	m := newTestManager(t, 1, document.Size{Width: 300, Height: 350})
	require.Equal(t, 1, m.Len())

	require.NoError(t, m.SetZoom(2))
	assert.Equal(t, 4, m.Len())
	assert.Equal(t, 0, m.Cursor())

	assert.Error(t, m.SetZoom(0))
}

func TestManager_Seek(t *testing.T) {
	m := newTestManager(t, 2, document.Size{Width: 300, Height: 700})

	s, err := m.Seek(2)
	require.NoError(t, err)
	assert.Equal(t, 1, s.Page)

	_, err = m.Seek(4)
	assert.ErrorIs(t, err, ErrCursorOutOfRange)
	assert.Equal(t, 2, m.Cursor())

	_, _, err = m.SeekPage(2)
	assert.ErrorIs(t, err, document.ErrPageOutOfRange)
}

func TestManager_Empty(t *testing.T) {
	m, err := NewManager(Config{Source: document.NewPattern(), Viewport: Viewport{Width: 10, Height: 10}})
	require.NoError(t, err)

	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.CurrentPage())
	_, _, ok := m.Current()
	assert.False(t, ok)
	_, _, ok = m.Step(1)
	assert.False(t, ok)
	_, err = m.Seek(0)
	assert.ErrorIs(t, err, ErrNoPages)
	require.NoError(t, m.SetSinglePageMode(true))
}

// unstableSource reports a smaller size on every second PageSize call once
// unstable is set.
type unstableSource struct {
	document.Source
	unstable atomic.Bool
	calls    atomic.Int32
}

func (s *unstableSource) PageSize(page int) (document.Size, error) {
	size, err := s.Source.PageSize(page)
	if err != nil || !s.unstable.Load() {
		return size, err
	}
	if s.calls.Add(1)%2 == 0 {
		size.Width /= 2
		size.Height /= 2
	}
	return size, nil
}

func TestManager_RejectsInconsistentLayout(t *testing.T) {
	vp := Viewport{Width: 300, Height: 350}

	t.Run("initial layout", func(t *testing.T) {
		src := &unstableSource{Source: document.NewUniformPattern(1, document.Size{Width: 300, Height: 700})}
		src.unstable.Store(true)
		_, err := NewManager(Config{Source: src, Viewport: vp})
		assert.ErrorIs(t, err, ErrInconsistent)
	})

	t.Run("recompute keeps previous layout", func(t *testing.T) {
		src := &unstableSource{Source: document.NewUniformPattern(1, document.Size{Width: 300, Height: 700})}
		m, err := NewManager(Config{Source: src, Viewport: vp})
		require.NoError(t, err)
		_, err = m.Seek(1)
		require.NoError(t, err)

		var changes int
		m.OnInvalidate(func(Change) { changes++ })
		before, gen := m.Sequence(), m.Generation()

		src.unstable.Store(true)
		err = m.SetViewport(Viewport{Width: 350, Height: 300})
		assert.ErrorIs(t, err, ErrInconsistent)

		assert.Equal(t, before, m.Sequence())
		assert.Equal(t, gen, m.Generation())
		assert.Equal(t, vp, m.Viewport())
		assert.Equal(t, 1, m.Cursor())
		assert.Zero(t, changes)
	})
}
