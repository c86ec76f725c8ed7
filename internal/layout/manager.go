package layout

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/jackzampolin/leaf/internal/document"
)

// Change reasons passed to invalidation hooks.
const (
	ReasonMode     = "mode"
	ReasonViewport = "viewport"
	ReasonZoom     = "zoom"
)

// Change describes a layout recomputation.
type Change struct {
	Reason     string
	Generation uint64
	Page       int // page the cursor was re-mapped onto
	Cursor     int
}

// Config configures a Manager.
type Config struct {
	Source     document.Source
	Viewport   Viewport
	SinglePage bool
	Zoom       float64
	Logger     *slog.Logger
}

// Manager owns the screen sequence and the navigation cursor.
//
// Mode, viewport and zoom changes recompute the sequence and re-map the
// cursor to the first screen of the page it was on. Invalidation hooks run
// inside the same critical section, so a hook observing a Change sees no
// interleaved cursor movement. Hooks must not call back into the Manager.
type Manager struct {
	mu sync.RWMutex

	src    document.Source
	vp     Viewport
	mode   Mode
	zoom   float64
	logger *slog.Logger

	seq        []Screen
	pageStart  []int
	cursor     int
	generation uint64

	hooks []func(Change)
}

// NewManager computes the initial layout with the cursor on screen 0.
func NewManager(cfg Config) (*Manager, error) {
	if cfg.Source == nil {
		return nil, fmt.Errorf("document source is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	zoom := cfg.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	mode := Continuous
	if cfg.SinglePage {
		mode = SinglePage
	}

	m := &Manager{
		src:    cfg.Source,
		vp:     cfg.Viewport,
		mode:   mode,
		zoom:   zoom,
		logger: logger.With("component", "layout"),
	}
	seq, err := m.compute(m.vp, m.mode, m.zoom)
	if err != nil {
		return nil, err
	}
	m.install(seq)
	m.logger.Debug("layout computed", "screens", len(seq), "pages", m.src.PageCount(), "mode", m.mode, "viewport", m.vp)
	return m, nil
}

// compute builds and validates a sequence; an inconsistent one is never
// installed.
func (m *Manager) compute(vp Viewport, mode Mode, zoom float64) ([]Screen, error) {
	seq, err := ComputeSequence(m.src, vp, mode, zoom)
	if err != nil {
		return nil, err
	}
	if err := Validate(seq, m.src, vp); err != nil {
		m.logger.Error("rejected inconsistent layout", "mode", mode, "viewport", vp, "zoom", zoom, "error", err)
		return nil, fmt.Errorf("failed to compute %s layout: %w", mode, err)
	}
	return seq, nil
}

// install swaps in seq and rebuilds the page index. Caller holds mu.
func (m *Manager) install(seq []Screen) {
	m.seq = seq
	m.pageStart = make([]int, m.src.PageCount())
	for i := len(seq) - 1; i >= 0; i-- {
		m.pageStart[seq[i].Page] = i
	}
	m.generation++
}

// OnInvalidate registers fn to run after every recomputation.
func (m *Manager) OnInvalidate(fn func(Change)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, fn)
}

// Source returns the document being laid out.
func (m *Manager) Source() document.Source {
	return m.src
}

// PageCount returns the document's page count.
func (m *Manager) PageCount() int {
	return m.src.PageCount()
}

// Sequence returns a copy of the current screen sequence.
func (m *Manager) Sequence() []Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Screen, len(m.seq))
	copy(out, m.seq)
	return out
}

// Len returns the number of screens.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.seq)
}

// Generation increments on every recomputation.
func (m *Manager) Generation() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generation
}

func (m *Manager) Cursor() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cursor
}

// Screen returns the screen at index i.
func (m *Manager) Screen(i int) (Screen, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if i < 0 || i >= len(m.seq) {
		return Screen{}, false
	}
	return m.seq[i], true
}

// Current returns the screen under the cursor and its index.
func (m *Manager) Current() (Screen, int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if len(m.seq) == 0 {
		return Screen{}, 0, false
	}
	return m.seq[m.cursor], m.cursor, true
}

// CurrentPage returns the page under the cursor, or -1 for an empty document.
func (m *Manager) CurrentPage() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentPageLocked()
}

func (m *Manager) currentPageLocked() int {
	if len(m.seq) == 0 {
		return -1
	}
	return m.seq[m.cursor].Page
}

// CurrentPageLayout returns the screens of the page under the cursor.
func (m *Manager) CurrentPageLayout() []Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pageLayoutLocked(m.currentPageLocked())
}

// PageLayout returns the screens of page.
func (m *Manager) PageLayout(page int) []Screen {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pageLayoutLocked(page)
}

func (m *Manager) pageLayoutLocked(page int) []Screen {
	if page < 0 || page >= len(m.pageStart) {
		return nil
	}
	var out []Screen
	for i := m.pageStart[page]; i < len(m.seq) && m.seq[i].Page == page; i++ {
		out = append(out, m.seq[i])
	}
	return out
}

// Step moves the cursor by delta. At either end of the sequence it leaves
// the cursor unchanged and returns ok=false.
func (m *Manager) Step(delta int) (Screen, int, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	next := m.cursor + delta
	if len(m.seq) == 0 || next < 0 || next >= len(m.seq) {
		return Screen{}, m.cursor, false
	}
	m.cursor = next
	return m.seq[next], next, true
}

// Seek places the cursor on screen index i, for restoring a saved position.
func (m *Manager) Seek(i int) (Screen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.seq) == 0 {
		return Screen{}, ErrNoPages
	}
	if i < 0 || i >= len(m.seq) {
		return Screen{}, fmt.Errorf("%w: %d not in [0, %d)", ErrCursorOutOfRange, i, len(m.seq))
	}
	m.cursor = i
	return m.seq[i], nil
}

// SeekPage places the cursor on the first screen of page.
func (m *Manager) SeekPage(page int) (Screen, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.seq) == 0 {
		return Screen{}, 0, ErrNoPages
	}
	if page < 0 || page >= len(m.pageStart) {
		return Screen{}, m.cursor, fmt.Errorf("%w: %d", document.ErrPageOutOfRange, page)
	}
	m.cursor = m.pageStart[page]
	return m.seq[m.cursor], m.cursor, nil
}

func (m *Manager) Mode() Mode {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mode
}

// IsSinglePageMode reports whether each page is one screen.
func (m *Manager) IsSinglePageMode() bool {
	return m.Mode() == SinglePage
}

// SetSinglePageMode toggles between SinglePage and Continuous.
func (m *Manager) SetSinglePageMode(single bool) error {
	mode := Continuous
	if single {
		mode = SinglePage
	}
	return m.SetMode(mode)
}

// SetMode switches layout mode. Setting the current mode is a no-op.
func (m *Manager) SetMode(mode Mode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if mode == m.mode {
		return nil
	}
	return m.recompute(ReasonMode, m.vp, mode, m.zoom)
}

func (m *Manager) Viewport() Viewport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.vp
}

// SetViewport applies a new display size, e.g. after rotation.
func (m *Manager) SetViewport(vp Viewport) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if vp == m.vp {
		return nil
	}
	return m.recompute(ReasonViewport, vp, m.mode, m.zoom)
}

func (m *Manager) Zoom() float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.zoom
}

// SetZoom changes the Continuous-mode zoom factor.
func (m *Manager) SetZoom(zoom float64) error {
	if zoom <= 0 {
		return fmt.Errorf("zoom must be positive, got %v", zoom)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if zoom == m.zoom {
		return nil
	}
	return m.recompute(ReasonZoom, m.vp, m.mode, zoom)
}

// recompute installs a new layout and re-maps the cursor. On error the
// previous layout stays in place. Caller holds mu.
func (m *Manager) recompute(reason string, vp Viewport, mode Mode, zoom float64) error {
	seq, err := m.compute(vp, mode, zoom)
	if err != nil {
		return err
	}

	page := m.currentPageLocked()
	m.vp, m.mode, m.zoom = vp, mode, zoom
	m.install(seq)
	m.cursor = 0
	if page >= 0 && page < len(m.pageStart) {
		m.cursor = m.pageStart[page]
	}

	change := Change{
		Reason:     reason,
		Generation: m.generation,
		Page:       page,
		Cursor:     m.cursor,
	}
	m.logger.Info("layout recomputed",
		"reason", reason,
		"screens", len(seq),
		"mode", mode,
		"viewport", vp,
		"zoom", zoom,
		"page", page,
		"cursor", m.cursor)
	for _, fn := range m.hooks {
		fn(change)
	}
	return nil
}
