// Package document defines the page source contract consumed by the layout
// and render core, plus the sources leaf ships with.
package document

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
)

// Sentinel errors returned by sources.
var (
	// ErrPageOutOfRange is returned for a page index outside [0, PageCount).
	ErrPageOutOfRange = errors.New("page index out of range")

	// ErrCorruptPage is returned when a page cannot be decoded at all.
	// Retrying a render that failed with it is pointless.
	ErrCorruptPage = errors.New("corrupt page")

	// ErrEmptyRegion is returned when a render is requested for a region
	// that covers no pixels.
	ErrEmptyRegion = errors.New("render region is empty")

	// ErrInvalidScale is returned for a zero, negative or non-finite scale.
	ErrInvalidScale = errors.New("invalid render scale")
)

// Size is a page extent in content units (points for PDF, source pixels for
// page images).
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Degenerate reports whether the page has no area.
func (s Size) Degenerate() bool {
	return s.Width <= 0 || s.Height <= 0
}

// Region is a rectangle in content units, measured from the page's top-left.
type Region struct {
	X      float64 `json:"x" yaml:"x"`
	Y      float64 `json:"y" yaml:"y"`
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// PixelSize returns the device pixel dimensions of the region at scale.
func (r Region) PixelSize(scale float64) (int, int) {
	return int(math.Round(r.Width * scale)), int(math.Round(r.Height * scale))
}

// Source is a read-only document: page geometry plus a region rasterizer.
//
// Render must be deterministic for fixed inputs and must observe ctx: a
// cancelled render returns ctx.Err() without touching shared state.
// The returned image has bounds (0, 0, w, h) where (w, h) is
// region.PixelSize(scale).
type Source interface {
	PageCount() int
	PageSize(page int) (Size, error)
	Render(ctx context.Context, page int, region Region, scale float64) (*image.RGBA, error)
}

// Closer is implemented by sources holding files or caches.
type Closer interface {
	Close() error
}

// Close releases src if it holds resources.
func Close(src Source) error {
	if c, ok := src.(Closer); ok {
		return c.Close()
	}
	return nil
}

// CheckPage validates a page index against a source.
func CheckPage(src Source, page int) error {
	if page < 0 || page >= src.PageCount() {
		return fmt.Errorf("%w: %d (page count %d)", ErrPageOutOfRange, page, src.PageCount())
	}
	return nil
}

// checkRegion validates a render request and returns its pixel size.
func checkRegion(region Region, scale float64) (int, int, error) {
	if scale <= 0 || math.IsNaN(scale) || math.IsInf(scale, 0) {
		return 0, 0, fmt.Errorf("%w: %v", ErrInvalidScale, scale)
	}
	w, h := region.PixelSize(scale)
	if w <= 0 || h <= 0 {
		return 0, 0, fmt.Errorf("%w: %+v at scale %v", ErrEmptyRegion, region, scale)
	}
	return w, h, nil
}
