// Package navigation is the public entry point of the viewer core: it
// moves a cursor over the screen sequence and hands back a render task for
// every screen it lands on.
//
// Stepping N screens forward and then N back revisits the same screens in
// reverse, and the rendered buffers are byte-identical because sources are
// deterministic and every screen is keyed structurally.
package navigation

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"sync"
	"time"

	"github.com/jackzampolin/leaf/internal/cache"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/metrics"
	"github.com/jackzampolin/leaf/internal/render"
)

// DefaultLookAhead is how many screens on each side of the cursor are
// prefetched.
const DefaultLookAhead = 2

// Config configures a Controller.
type Config struct {
	Source     document.Source
	Viewport   layout.Viewport
	SinglePage bool
	Zoom       float64

	CacheEntries int
	LookAhead    int // screens prefetched on each side; negative disables

	Workers    int
	QueueSize  int
	MaxRetries int
	RetryDelay time.Duration
	Background color.Color

	Metrics *metrics.Recorder
	Logger  *slog.Logger
}

// Status is a snapshot of navigation state.
type Status struct {
	Cursor     int             `json:"cursor"`
	Screens    int             `json:"screens"`
	Page       int             `json:"page"`
	PageCount  int             `json:"page_count"`
	SinglePage bool            `json:"single_page"`
	Viewport   layout.Viewport `json:"viewport"`
	Zoom       float64         `json:"zoom"`
	Generation uint64          `json:"generation"`
	Scheduler  render.Status   `json:"scheduler"`
	Cache      cache.Stats     `json:"cache"`
}

// Controller owns the navigation cursor. Draw calls move the cursor
// synchronously and return a task; rendering happens on the scheduler's
// workers. A Controller serves one reader.
type Controller struct {
	mu sync.Mutex

	layout    *layout.Manager
	cache     *cache.Cache
	sched     *render.Scheduler
	lookAhead int
	logger    *slog.Logger
}

// New builds the layout, cache and scheduler for cfg.Source. Call Start
// before drawing.
func New(cfg Config) (*Controller, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	mgr, err := layout.NewManager(layout.Config{
		Source:     cfg.Source,
		Viewport:   cfg.Viewport,
		SinglePage: cfg.SinglePage,
		Zoom:       cfg.Zoom,
		Logger:     logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to compute layout: %w", err)
	}

	tiles := cache.New(cache.Config{MaxEntries: cfg.CacheEntries, Logger: logger})
	sched, err := render.NewScheduler(render.SchedulerConfig{
		Source:     cfg.Source,
		Cache:      tiles,
		Metrics:    cfg.Metrics,
		Logger:     logger,
		Workers:    cfg.Workers,
		QueueSize:  cfg.QueueSize,
		MaxRetries: cfg.MaxRetries,
		RetryDelay: cfg.RetryDelay,
		Background: cfg.Background,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	lookAhead := cfg.LookAhead
	if lookAhead == 0 {
		lookAhead = DefaultLookAhead
	}
	if lookAhead < 0 {
		lookAhead = 0
	}

	c := &Controller{
		layout:    mgr,
		cache:     tiles,
		sched:     sched,
		lookAhead: lookAhead,
		logger:    logger.With("component", "navigation"),
	}

	// Runs inside the layout's critical section: old buffers and renders
	// are dropped before any screen of the new layout can be requested.
	mgr.OnInvalidate(func(ch layout.Change) {
		tiles.Purge()
		n := sched.CancelAll()
		tiles.SetFocus(max(ch.Page, 0))
		c.logger.Debug("layout invalidated", "reason", ch.Reason, "cancelled", n, "cursor", ch.Cursor)
	})
	return c, nil
}

// Start launches the render workers.
func (c *Controller) Start(ctx context.Context) error {
	return c.sched.Start(ctx)
}

// Close stops rendering and cancels pending tasks.
func (c *Controller) Close() {
	c.sched.Stop()
}

// DrawNext advances one screen and returns its render task. At the last
// screen it returns nil and leaves the cursor unchanged.
func (c *Controller) DrawNext() *render.Task {
	return c.step(1)
}

// DrawPrev steps back one screen. At the first screen it returns nil and
// leaves the cursor unchanged.
func (c *Controller) DrawPrev() *render.Task {
	return c.step(-1)
}

func (c *Controller) step(delta int) *render.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	screen, cursor, ok := c.layout.Step(delta)
	if !ok {
		c.logger.Debug("boundary reached", "cursor", cursor, "delta", delta)
		return nil
	}
	return c.showLocked(screen, cursor)
}

// DrawCurrent renders the screen under the cursor; nil for an empty
// document.
func (c *Controller) DrawCurrent() *render.Task {
	c.mu.Lock()
	defer c.mu.Unlock()

	screen, cursor, ok := c.layout.Current()
	if !ok {
		return nil
	}
	return c.showLocked(screen, cursor)
}

// GoToPage moves the cursor to the first screen of page. Renders outside
// the new prefetch window are cancelled.
func (c *Controller) GoToPage(page int) (*render.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	screen, cursor, err := c.layout.SeekPage(page)
	if err != nil {
		return nil, err
	}
	return c.showLocked(screen, cursor), nil
}

// Seek restores a saved cursor position.
func (c *Controller) Seek(cursor int) (*render.Task, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	screen, err := c.layout.Seek(cursor)
	if err != nil {
		return nil, err
	}
	return c.showLocked(screen, cursor), nil
}

// showLocked requests screen at top priority and refreshes the prefetch
// window around cursor. Caller holds mu.
func (c *Controller) showLocked(screen layout.Screen, cursor int) *render.Task {
	c.cache.SetFocus(screen.Page)

	task, err := c.sched.Request(screen, render.PriorityCurrent)
	if err != nil {
		c.logger.Warn("render request failed", "cursor", cursor, "page", screen.Page, "error", err)
		task = render.Failed(screen, &render.Error{Screen: screen, Err: err})
	}
	c.prefetchLocked(cursor)
	return task
}

// prefetchLocked cancels renders outside [cursor-lookAhead,
// cursor+lookAhead] and queues the uncached screens inside it, nearest
// first. Caller holds mu.
func (c *Controller) prefetchLocked(cursor int) {
	window := make(map[layout.Screen]struct{}, 2*c.lookAhead+1)
	for i := cursor - c.lookAhead; i <= cursor+c.lookAhead; i++ {
		if s, ok := c.layout.Screen(i); ok {
			window[s] = struct{}{}
		}
	}
	if n := c.sched.CancelOutside(func(s layout.Screen) bool {
		_, ok := window[s]
		return ok
	}); n > 0 {
		c.logger.Debug("cancelled renders outside window", "count", n, "cursor", cursor)
	}

	for d := 1; d <= c.lookAhead; d++ {
		for _, i := range []int{cursor + d, cursor - d} {
			s, ok := c.layout.Screen(i)
			if !ok || c.cache.Contains(s) {
				continue
			}
			if _, err := c.sched.Request(s, render.PriorityForDistance(d)); err != nil {
				c.logger.Debug("prefetch skipped", "cursor", i, "error", err)
				return
			}
		}
	}
}

// PageCount returns the document's page count.
func (c *Controller) PageCount() int {
	return c.layout.PageCount()
}

// CurrentPage returns the page under the cursor, or -1 for an empty
// document.
func (c *Controller) CurrentPage() int {
	return c.layout.CurrentPage()
}

// Cursor returns the screen index under the cursor.
func (c *Controller) Cursor() int {
	return c.layout.Cursor()
}

// PageLayoutManager exposes the layout for mode toggles and page layout
// queries. Mode and viewport changes made through it invalidate the cache.
func (c *Controller) PageLayoutManager() *layout.Manager {
	return c.layout
}

// SetSinglePageMode toggles the layout mode, keeping the current page.
func (c *Controller) SetSinglePageMode(single bool) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.SetSinglePageMode(single)
}

// SetViewport applies a host viewport change.
func (c *Controller) SetViewport(vp layout.Viewport) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.SetViewport(vp)
}

// SetZoom changes the Continuous-mode zoom.
func (c *Controller) SetZoom(zoom float64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.layout.SetZoom(zoom)
}

// Scheduler returns the render scheduler.
func (c *Controller) Scheduler() *render.Scheduler {
	return c.sched
}

// Cache returns the tile cache.
func (c *Controller) Cache() *cache.Cache {
	return c.cache
}

// Status returns a snapshot of navigation, scheduler and cache state.
func (c *Controller) Status() Status {
	return Status{
		Cursor:     c.layout.Cursor(),
		Screens:    c.layout.Len(),
		Page:       c.layout.CurrentPage(),
		PageCount:  c.layout.PageCount(),
		SinglePage: c.layout.IsSinglePageMode(),
		Viewport:   c.layout.Viewport(),
		Zoom:       c.layout.Zoom(),
		Generation: c.layout.Generation(),
		Scheduler:  c.sched.Status(),
		Cache:      c.cache.Stats(),
	}
}
