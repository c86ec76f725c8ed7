package navigation

import (
	"errors"
	"log/slog"

	"github.com/jackzampolin/leaf/internal/config"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/metrics"
)

// SettingsConfig maps loaded settings onto a controller Config for src.
func SettingsConfig(src document.Source, cfg *config.Config, rec *metrics.Recorder, logger *slog.Logger) Config {
	return Config{
		Source:       src,
		Viewport:     layout.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height},
		SinglePage:   cfg.Layout.SinglePage,
		Zoom:         cfg.Layout.Zoom,
		CacheEntries: cfg.Cache.MaxEntries,
		LookAhead:    cfg.Render.LookAhead,
		Workers:      cfg.Render.Workers,
		QueueSize:    cfg.Render.QueueSize,
		MaxRetries:   cfg.Render.MaxRetries,
		RetryDelay:   cfg.RetryDelay(),
		Metrics:      rec,
		Logger:       logger,
	}
}

// ApplySettings pushes viewport, layout mode and zoom from cfg onto the
// controller. Unchanged values leave the layout and cache alone.
func (c *Controller) ApplySettings(cfg *config.Config) error {
	vp := layout.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
	return errors.Join(
		c.SetViewport(vp),
		c.SetSinglePageMode(cfg.Layout.SinglePage),
		c.SetZoom(cfg.Layout.Zoom),
	)
}
