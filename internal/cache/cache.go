// Package cache memoizes rendered screens.
//
// Entries are keyed by the structural screen descriptor. When the cache is
// full the entry whose page lies farthest from the focus page is evicted,
// oldest insertion first on ties.
package cache

import (
	"image"
	"log/slog"
	"sync"

	"github.com/jackzampolin/leaf/internal/layout"
)

// DefaultMaxEntries bounds a cache created without a limit.
const DefaultMaxEntries = 32

// Config configures a Cache.
type Config struct {
	MaxEntries int
	Logger     *slog.Logger
}

type entry struct {
	img      *image.RGBA
	stamp    uint64
	inserted uint64
}

// Stats is a snapshot of cache counters.
type Stats struct {
	Entries    int    `json:"entries"`
	MaxEntries int    `json:"max_entries"`
	Hits       int64  `json:"hits"`
	Misses     int64  `json:"misses"`
	Puts       int64  `json:"puts"`
	Evictions  int64  `json:"evictions"`
	Stale      int64  `json:"stale"`
	Epoch      uint64 `json:"epoch"`
	Focus      int    `json:"focus"`
}

// Cache is a bounded screen buffer cache. It is safe for concurrent use.
type Cache struct {
	mu      sync.Mutex
	max     int
	entries map[layout.Screen]*entry
	focus   int
	epoch   uint64
	stamp   uint64
	seq     uint64
	stats   Stats
	logger  *slog.Logger
}

// New creates a cache.
func New(cfg Config) *Cache {
	if cfg.MaxEntries <= 0 {
		cfg.MaxEntries = DefaultMaxEntries
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		max:     cfg.MaxEntries,
		entries: make(map[layout.Screen]*entry, cfg.MaxEntries),
		logger:  logger.With("component", "cache"),
	}
}

// Get returns a copy of the cached buffer for s and its generation stamp.
func (c *Cache) Get(s layout.Screen) (*image.RGBA, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[s]
	if !ok {
		c.stats.Misses++
		return nil, 0, false
	}
	c.stats.Hits++
	return Clone(e.img), e.stamp, true
}

// Contains reports whether s is cached without counting a hit or miss.
func (c *Cache) Contains(s layout.Screen) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[s]
	return ok
}

// Epoch returns the current invalidation epoch. Renders capture it when
// they start and hand it back to Put.
func (c *Cache) Epoch() uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.epoch
}

// Put stores a copy of img for s and returns its generation stamp. A put
// carrying an epoch older than the last Purge is dropped and returns false.
func (c *Cache) Put(s layout.Screen, img *image.RGBA, epoch uint64) (uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if epoch != c.epoch {
		c.stats.Stale++
		return 0, false
	}

	c.stamp++
	c.stats.Puts++
	if e, ok := c.entries[s]; ok {
		e.img = Clone(img)
		e.stamp = c.stamp
		return e.stamp, true
	}

	c.seq++
	c.entries[s] = &entry{img: Clone(img), stamp: c.stamp, inserted: c.seq}
	for len(c.entries) > c.max {
		c.evictLocked(s)
	}
	return c.stamp, true
}

// evictLocked removes the entry farthest from focus, never keep.
func (c *Cache) evictLocked(keep layout.Screen) {
	var (
		victim   layout.Screen
		found    bool
		bestDist int
		bestSeq  uint64
	)
	for s, e := range c.entries {
		if s == keep {
			continue
		}
		d := distance(s.Page, c.focus)
		if !found || d > bestDist || (d == bestDist && e.inserted < bestSeq) {
			victim, bestDist, bestSeq, found = s, d, e.inserted, true
		}
	}
	if !found {
		return
	}
	delete(c.entries, victim)
	c.stats.Evictions++
	c.logger.Debug("evicted screen", "page", victim.Page, "distance", bestDist)
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// SetFocus sets the page eviction distances are measured from.
func (c *Cache) SetFocus(page int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focus = page
}

// Purge drops every entry and starts a new epoch.
func (c *Cache) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := len(c.entries)
	c.entries = make(map[layout.Screen]*entry, c.max)
	c.epoch++
	c.logger.Debug("cache purged", "entries", n, "epoch", c.epoch)
}

func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Stats returns a snapshot of the counters.
func (c *Cache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	st := c.stats
	st.Entries = len(c.entries)
	st.MaxEntries = c.max
	st.Epoch = c.epoch
	st.Focus = c.focus
	return st
}

// Clone returns a deep copy of img.
func Clone(img *image.RGBA) *image.RGBA {
	if img == nil {
		return nil
	}
	out := &image.RGBA{
		Pix:    make([]byte, len(img.Pix)),
		Stride: img.Stride,
		Rect:   img.Rect,
	}
	copy(out.Pix, img.Pix)
	return out
}
