package cache

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
)

var vp = layout.Viewport{Width: 4, Height: 4}

func screen(page int, y float64) layout.Screen {
	return layout.Screen{
		Page:     page,
		Region:   document.Region{Y: y, Width: 4, Height: 4},
		Scale:    1,
		Viewport: vp,
	}
}

func buffer(fill byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, vp.Width, vp.Height))
	for i := range img.Pix {
		img.Pix[i] = fill
	}
	return img
}

func TestCache_GetPut(t *testing.T) {
	c := New(Config{MaxEntries: 4})

	_, _, ok := c.Get(screen(0, 0))
	assert.False(t, ok)

	stamp1, ok := c.Put(screen(0, 0), buffer(1), c.Epoch())
	require.True(t, ok)
	stamp2, ok := c.Put(screen(0, 4), buffer(2), c.Epoch())
	require.True(t, ok)
	assert.Greater(t, stamp2, stamp1)

	t.Run("idempotent reads", func(t *testing.T) {
		a, s1, ok := c.Get(screen(0, 0))
		require.True(t, ok)
		b, s2, ok := c.Get(screen(0, 0))
		require.True(t, ok)
		assert.Equal(t, a.Pix, b.Pix)
		assert.Equal(t, s1, s2)
	})

	t.Run("returns copies", func(t *testing.T) {
		a, _, _ := c.Get(screen(0, 0))
		a.Pix[0] = 99
		b, _, _ := c.Get(screen(0, 0))
		assert.Equal(t, byte(1), b.Pix[0])
	})

	t.Run("structural key", func(t *testing.T) {
		s := screen(0, 4)
		s.Scale = 2
		_, _, ok := c.Get(s)
		assert.False(t, ok)
	})

	st := c.Stats()
	assert.Equal(t, 2, st.Entries)
	assert.Equal(t, int64(2), st.Puts)
	assert.GreaterOrEqual(t, st.Hits, int64(4))
	assert.GreaterOrEqual(t, st.Misses, int64(2))
}

func TestCache_EvictsFarthestFromFocus(t *testing.T) {
	c := New(Config{MaxEntries: 3})
	c.SetFocus(5)

	for _, page := range []int{4, 9, 6} {
		_, ok := c.Put(screen(page, 0), buffer(byte(page)), c.Epoch())
		require.True(t, ok)
	}

	_, ok := c.Put(screen(5, 0), buffer(5), c.Epoch())
	require.True(t, ok)
	assert.Equal(t, 3, c.Len())
	assert.False(t, c.Contains(screen(9, 0)), "page 9 is farthest from focus")
	assert.True(t, c.Contains(screen(5, 0)))

	t.Run("ties evict oldest insertion", func(t *testing.T) {
		// 4 and 6 are both one page away; 4 went in first.
		_, ok := c.Put(screen(5, 4), buffer(7), c.Epoch())
		require.True(t, ok)
		assert.False(t, c.Contains(screen(4, 0)))
		assert.True(t, c.Contains(screen(6, 0)))
	})

	t.Run("never evicts the new entry", func(t *testing.T) {
		c.SetFocus(0)
		_, ok := c.Put(screen(100, 0), buffer(8), c.Epoch())
		require.True(t, ok)
		assert.True(t, c.Contains(screen(100, 0)))
		assert.Equal(t, 3, c.Len())
	})

	assert.Equal(t, int64(3), c.Stats().Evictions)
}

func TestCache_Purge(t *testing.T) {
	c := New(Config{MaxEntries: 4})
	epoch := c.Epoch()
	_, ok := c.Put(screen(0, 0), buffer(1), epoch)
	require.True(t, ok)

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.NotEqual(t, epoch, c.Epoch())

	// A render started before the purge must not repopulate the cache.
	_, ok = c.Put(screen(0, 0), buffer(1), epoch)
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, int64(1), c.Stats().Stale)
}
