package navigation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jackzampolin/leaf/internal/config"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
)

func TestSettingsConfig(t *testing.T) {
	book := document.NewUniformPattern(2, document.Size{Width: 663, Height: 886})
	cfg := config.DefaultConfig()
	cfg.Render.RetryDelayMS = 5

	got := SettingsConfig(book, cfg, nil, nil)
	assert.Equal(t, layout.Viewport{Width: 300, Height: 350}, got.Viewport)
	assert.Equal(t, cfg.Cache.MaxEntries, got.CacheEntries)
	assert.Equal(t, cfg.Render.Workers, got.Workers)
	assert.Equal(t, cfg.Render.LookAhead, got.LookAhead)
	assert.Equal(t, 5*time.Millisecond, got.RetryDelay)
	assert.Same(t, book, got.Source.(*document.Pattern))
}

func TestController_ApplySettings(t *testing.T) {
	book := document.NewUniformPattern(4, document.Size{Width: 663, Height: 886})
	c := newController(t, Config{Source: book})

	_, err := c.GoToPage(2)
	require.NoError(t, err)
	frameOf(t, c.DrawCurrent())
	gen := c.Status().Generation

	t.Run("unchanged settings keep the layout", func(t *testing.T) {
		require.NoError(t, c.ApplySettings(config.DefaultConfig()))
		assert.Equal(t, gen, c.Status().Generation)
		assert.True(t, c.Cache().Len() > 0)
	})

	t.Run("viewport and mode change", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Viewport = config.ViewportCfg{Width: 350, Height: 300}
		cfg.Layout.SinglePage = true

		require.NoError(t, c.ApplySettings(cfg))
		st := c.Status()
		assert.Equal(t, layout.Viewport{Width: 350, Height: 300}, st.Viewport)
		assert.True(t, st.SinglePage)
		assert.Equal(t, 2, st.Page)
		assert.Equal(t, 2, st.Cursor)
		assert.Equal(t, 0, c.Cache().Len())
	})

	t.Run("invalid zoom is reported", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Layout.SinglePage = true
		cfg.Viewport = config.ViewportCfg{Width: 350, Height: 300}
		cfg.Layout.Zoom = 0

		assert.Error(t, c.ApplySettings(cfg))
		assert.Equal(t, 2, c.CurrentPage())
	})
}
