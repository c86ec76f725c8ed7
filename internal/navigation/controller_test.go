package navigation

import (
	"bytes"
	"context"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/render"
)

var device = layout.Viewport{Width: 300, Height: 350}

func newController(t *testing.T, cfg Config) *Controller {
	t.Helper()
	if cfg.Viewport == (layout.Viewport{}) {
		cfg.Viewport = device
	}
	if cfg.Workers == 0 {
		cfg.Workers = 2
	}
	if cfg.RetryDelay == 0 {
		cfg.RetryDelay = time.Millisecond
	}
	c, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(c.Close)
	return c
}

func frameOf(t *testing.T, task *render.Task) *render.Frame {
	t.Helper()
	require.NotNil(t, task)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	frame, err := task.Wait(ctx)
	require.NoError(t, err)
	return frame
}

// walk draws n screens in one direction and returns the rendered buffers.
func walk(t *testing.T, draw func() *render.Task, n int) [][]byte {
	t.Helper()
	var out [][]byte
	for i := 0; i < n; i++ {
		task := draw()
		if task == nil {
			break
		}
		out = append(out, frameOf(t, task).Image.Pix)
	}
	return out
}

func assertNoAdjacentDuplicates(t *testing.T, frames [][]byte) {
	t.Helper()
	for i := 1; i < len(frames); i++ {
		assert.False(t, bytes.Equal(frames[i-1], frames[i]), "frames %d and %d are identical", i-1, i)
	}
}

func reversed(frames [][]byte) [][]byte {
	out := make([][]byte, len(frames))
	for i, f := range frames {
		out[len(frames)-1-i] = f
	}
	return out
}

func TestController_ReversalSymmetry(t *testing.T) {
	book := document.NewUniformPattern(30, document.Size{Width: 663, Height: 886})

	for _, single := range []bool{false, true} {
		name := "continuous"
		if single {
			name = "single page"
		}
		t.Run(name, func(t *testing.T) {
			c := newController(t, Config{Source: book, SinglePage: single, CacheEntries: 4})

			next := walk(t, c.DrawNext, 21)
			require.Len(t, next, 21)
			prev := walk(t, c.DrawPrev, 21)
			require.Len(t, prev, 21)
			assert.Equal(t, 0, c.Cursor())

			assertNoAdjacentDuplicates(t, next)
			assertNoAdjacentDuplicates(t, prev)
			assert.Equal(t, reversed(next[:len(next)-1]), prev[:len(prev)-1])
		})
	}
}

func TestController_TwoPageScenario(t *testing.T) {
	book := document.NewUniformPattern(2, document.Size{Width: 300, Height: 700})
	c := newController(t, Config{Source: book})

	require.False(t, c.PageLayoutManager().IsSinglePageMode())
	require.Equal(t, 4, c.PageLayoutManager().Len())
	require.Equal(t, 2, c.PageCount())

	cursors := []int{c.Cursor()}
	var next, prev [][]byte
	for i := 0; i < 3; i++ {
		next = append(next, frameOf(t, c.DrawNext()).Image.Pix)
		cursors = append(cursors, c.Cursor())
	}
	for i := 0; i < 3; i++ {
		prev = append(prev, frameOf(t, c.DrawPrev()).Image.Pix)
		cursors = append(cursors, c.Cursor())
	}

	assert.Equal(t, []int{0, 1, 2, 3, 2, 1, 0}, cursors)
	assert.Equal(t, reversed(next[:2]), prev[:2])
	assert.Equal(t, next[1], prev[0], "screen at cursor 2")

	first := frameOf(t, c.DrawCurrent()).Image.Pix
	assert.Equal(t, first, frameOf(t, c.DrawCurrent()).Image.Pix, "cache idempotence")
}

func TestController_Boundaries(t *testing.T) {
	book := document.NewUniformPattern(1, document.Size{Width: 300, Height: 700})
	c := newController(t, Config{Source: book})

	assert.Nil(t, c.DrawPrev())
	assert.Equal(t, 0, c.Cursor())

	require.NotNil(t, c.DrawNext())
	assert.Nil(t, c.DrawNext())
	assert.Equal(t, 1, c.Cursor())
	assert.Equal(t, 0, c.CurrentPage())
}

func TestController_EmptyDocument(t *testing.T) {
	c := newController(t, Config{Source: document.NewPattern()})

	assert.Nil(t, c.DrawNext())
	assert.Nil(t, c.DrawPrev())
	assert.Nil(t, c.DrawCurrent())
	assert.Equal(t, 0, c.PageCount())
	assert.Equal(t, -1, c.CurrentPage())
	_, err := c.GoToPage(0)
	assert.ErrorIs(t, err, layout.ErrNoPages)
}

func TestController_ModeSwitchPreservesPage(t *testing.T) {
	book := document.NewUniformPattern(4, document.Size{Width: 663, Height: 886})
	c := newController(t, Config{Source: book})

	frameOf(t, c.DrawNext())
	frameOf(t, c.DrawNext())
	frameOf(t, c.DrawNext())
	require.Equal(t, 1, c.CurrentPage())
	require.Equal(t, 3, c.Cursor())

	require.NoError(t, c.PageLayoutManager().SetSinglePageMode(true))
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 1, c.Cursor())
	assert.Equal(t, 0, c.Cache().Len(), "mode change purges the cache")

	frame := frameOf(t, c.DrawCurrent())
	assert.Equal(t, 1, frame.Screen.Page)
	assert.Equal(t, []layout.Screen{frame.Screen}, c.PageLayoutManager().CurrentPageLayout())

	require.NoError(t, c.SetSinglePageMode(false))
	assert.Equal(t, 1, c.CurrentPage())
	assert.Equal(t, 2, c.Cursor())
}

func TestController_SetViewport(t *testing.T) {
	book := document.NewUniformPattern(3, document.Size{Width: 663, Height: 886})
	c := newController(t, Config{Source: book})

	_, err := c.GoToPage(2)
	require.NoError(t, err)
	frameOf(t, c.DrawCurrent())

	rotated := layout.Viewport{Width: 350, Height: 300}
	require.NoError(t, c.SetViewport(rotated))
	assert.Equal(t, 2, c.CurrentPage())
	assert.Equal(t, 0, c.Cache().Len())

	frame := frameOf(t, c.DrawCurrent())
	assert.Equal(t, image.Rect(0, 0, 350, 300), frame.Image.Bounds())
	assert.Equal(t, rotated, c.Status().Viewport)
}

// failingPage fails every render of one page.
type failingPage struct {
	document.Source
	page int
}

func (s failingPage) Render(ctx context.Context, page int, region document.Region, scale float64) (*image.RGBA, error) {
	if page == s.page {
		return nil, document.ErrCorruptPage
	}
	return s.Source.Render(ctx, page, region, scale)
}

func TestController_RenderFailureKeepsCursor(t *testing.T) {
	book := failingPage{Source: document.NewUniformPattern(3, document.Size{Width: 300, Height: 350}), page: 1}
	c := newController(t, Config{Source: book})

	task := c.DrawNext()
	require.NotNil(t, task)
	_, err := task.Wait(context.Background())
	assert.ErrorIs(t, err, render.ErrRenderFailed)
	assert.ErrorIs(t, err, document.ErrCorruptPage)
	assert.Equal(t, 1, c.Cursor())

	frame := frameOf(t, c.DrawNext())
	assert.Equal(t, 2, frame.Screen.Page)
}

// gatedSource blocks renders of gated pages until released.
type gatedSource struct {
	document.Source
	gated   int
	release chan struct{}
	calls   atomic.Int32
}

func (s *gatedSource) Render(ctx context.Context, page int, region document.Region, scale float64) (*image.RGBA, error) {
	if page == s.gated {
		s.calls.Add(1)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.release:
		}
	}
	return s.Source.Render(ctx, page, region, scale)
}

func TestController_JumpCancelsOutsideWindow(t *testing.T) {
	book := &gatedSource{
		Source:  document.NewUniformPattern(40, document.Size{Width: 300, Height: 350}),
		gated:   0,
		release: make(chan struct{}),
	}
	c := newController(t, Config{Source: book, LookAhead: 1})

	stuck := c.DrawCurrent()
	require.NotNil(t, stuck)

	jumped, err := c.GoToPage(30)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err = stuck.Wait(ctx)
	assert.ErrorIs(t, err, render.ErrCancelled)

	frame := frameOf(t, jumped)
	assert.Equal(t, 30, frame.Screen.Page)
	assert.Equal(t, 30, c.CurrentPage())
	close(book.release)
}

func TestController_RevisitHitsCache(t *testing.T) {
	book := document.NewUniformPattern(5, document.Size{Width: 300, Height: 350})
	c := newController(t, Config{Source: book, LookAhead: -1})

	frameOf(t, c.DrawNext())
	frameOf(t, c.DrawNext())
	frame := frameOf(t, c.DrawPrev())
	assert.True(t, frame.Cached)
	assert.Equal(t, 1, frame.Screen.Page)

	st := c.Status()
	assert.Equal(t, int64(1), st.Scheduler.CacheHits)
	assert.Equal(t, 2, st.Cache.Entries)
}
