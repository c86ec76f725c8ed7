// Package layout maps document pages onto viewport-sized screens.
//
// A layout is a pure function of (document, viewport, mode, zoom): the
// resulting Sequence is the total order the navigation cursor walks.
package layout

import (
	"errors"
	"fmt"
	"image"
	"math"
	"strings"

	"github.com/jackzampolin/leaf/internal/document"
)

var (
	// ErrInconsistent marks a sequence that violates a layout invariant.
	ErrInconsistent = errors.New("layout inconsistency")

	// ErrNoPages is returned by operations that need at least one screen.
	ErrNoPages = errors.New("document has no pages")

	// ErrInvalidViewport is returned for a viewport without area.
	ErrInvalidViewport = errors.New("invalid viewport")

	// ErrCursorOutOfRange is returned when seeking past the sequence.
	ErrCursorOutOfRange = errors.New("cursor out of range")
)

// Viewport is the display surface size in device pixels.
type Viewport struct {
	Width  int `json:"width" yaml:"width"`
	Height int `json:"height" yaml:"height"`
}

// Valid reports whether the viewport has area.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

func (v Viewport) String() string {
	return fmt.Sprintf("%dx%d", v.Width, v.Height)
}

// Mode selects how pages are decomposed into screens.
type Mode int

const (
	// Continuous scales each page to the viewport width and tiles it.
	Continuous Mode = iota
	// SinglePage fits each page into one letterboxed screen.
	SinglePage
)

func (m Mode) String() string {
	switch m {
	case SinglePage:
		return "single"
	default:
		return "continuous"
	}
}

// ParseMode accepts "single", "single_page", "continuous".
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single", "single_page", "singlepage", "page":
		return SinglePage, nil
	case "continuous", "tiled", "":
		return Continuous, nil
	default:
		return Continuous, fmt.Errorf("unknown layout mode: %s", s)
	}
}

// Screen describes one viewport-sized frame: which part of which page is
// shown, at what scale, and where the content sits in the frame buffer.
//
// Screen is comparable and is used directly as the cache and dedup key.
type Screen struct {
	Page     int             `json:"page"`
	Region   document.Region `json:"region"`
	Scale    float64         `json:"scale"`
	Viewport Viewport        `json:"viewport"`
	// Dest is the top-left of the rendered content inside the frame.
	Dest image.Point `json:"dest"`
	// Blank screens stand in for pages without area and render as
	// background only.
	Blank bool `json:"blank,omitempty"`
}

// ContentSize returns the pixel size of the rendered region.
func (s Screen) ContentSize() (int, int) {
	if s.Blank {
		return 0, 0
	}
	return s.Region.PixelSize(s.Scale)
}

// ContentRect returns the frame rectangle covered by page content.
func (s Screen) ContentRect() image.Rectangle {
	w, h := s.ContentSize()
	return image.Rect(s.Dest.X, s.Dest.Y, s.Dest.X+w, s.Dest.Y+h)
}

func (s Screen) String() string {
	if s.Blank {
		return fmt.Sprintf("page %d (blank)", s.Page)
	}
	return fmt.Sprintf("page %d [%.1f,%.1f %.1fx%.1f] @%.4f", s.Page,
		s.Region.X, s.Region.Y, s.Region.Width, s.Region.Height, s.Scale)
}

// ComputeSequence decomposes every page of doc into screens.
//
// SinglePage yields one screen per page scaled by min(vw/pw, vh/ph) and
// centred. Continuous scales the page to zoom times the viewport width and
// tiles it left to right, then top to bottom; the last row and column may
// be shorter than the viewport and never include a neighbouring page.
// A page with zero width or height yields exactly one blank screen.
func ComputeSequence(doc document.Source, vp Viewport, mode Mode, zoom float64) ([]Screen, error) {
	if !vp.Valid() {
		return nil, fmt.Errorf("%w: %s", ErrInvalidViewport, vp)
	}
	if zoom <= 0 || math.IsNaN(zoom) || math.IsInf(zoom, 0) {
		zoom = 1
	}

	count := doc.PageCount()
	seq := make([]Screen, 0, count)
	for page := 0; page < count; page++ {
		size, err := doc.PageSize(page)
		if err != nil {
			return nil, fmt.Errorf("failed to read size of page %d: %w", page, err)
		}
		if size.Degenerate() {
			seq = append(seq, Screen{Page: page, Viewport: vp, Blank: true})
			continue
		}
		if mode == SinglePage {
			seq = append(seq, fitPage(page, size, vp))
		} else {
			seq = append(seq, tilePage(page, size, vp, zoom)...)
		}
	}
	return seq, nil
}

func fitPage(page int, size document.Size, vp Viewport) Screen {
	scale := math.Min(float64(vp.Width)/size.Width, float64(vp.Height)/size.Height)
	region := document.Region{Width: size.Width, Height: size.Height}
	w, h := region.PixelSize(scale)
	if w < 1 || h < 1 {
		return Screen{Page: page, Viewport: vp, Blank: true}
	}
	return Screen{
		Page:     page,
		Region:   region,
		Scale:    scale,
		Viewport: vp,
		Dest:     image.Pt((vp.Width-min(w, vp.Width))/2, (vp.Height-min(h, vp.Height))/2),
	}
}

func tilePage(page int, size document.Size, vp Viewport, zoom float64) []Screen {
	scale := zoom * float64(vp.Width) / size.Width
	width := int(math.Round(size.Width * scale))
	height := int(math.Round(size.Height * scale))
	if width < 1 || height < 1 {
		return []Screen{{Page: page, Viewport: vp, Blank: true}}
	}

	rows := (height + vp.Height - 1) / vp.Height
	cols := (width + vp.Width - 1) / vp.Width
	screens := make([]Screen, 0, rows*cols)
	for r := 0; r < rows; r++ {
		y0 := r * vp.Height
		y1 := min(y0+vp.Height, height)
		for c := 0; c < cols; c++ {
			x0 := c * vp.Width
			x1 := min(x0+vp.Width, width)

			region := document.Region{
				X:      float64(x0) / scale,
				Y:      float64(y0) / scale,
				Width:  float64(x1-x0) / scale,
				Height: float64(y1-y0) / scale,
			}
			// Rounding the scaled page can push the last tile past the edge.
			region.Width = math.Min(region.Width, size.Width-region.X)
			region.Height = math.Min(region.Height, size.Height-region.Y)
			if w, h := region.PixelSize(scale); w < 1 || h < 1 {
				continue
			}

			screens = append(screens, Screen{
				Page:     page,
				Region:   region,
				Scale:    scale,
				Viewport: vp,
			})
		}
	}
	if len(screens) == 0 {
		return []Screen{{Page: page, Viewport: vp, Blank: true}}
	}
	return screens
}
