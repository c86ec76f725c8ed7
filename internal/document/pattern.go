package document

import (
	"context"
	"fmt"
	"image"
	"math"
)

// DefaultCellSize is the edge of one pattern cell in content units.
const DefaultCellSize = 16.0

// Pattern is a synthetic document whose pixels are a pure function of
// (page, content position). Every cell of every page gets its own colour,
// so two screens covering different content never render identically.
// It backs the "pattern" source type and the test suites.
type Pattern struct {
	sizes    []Size
	cellSize float64
}

// NewPattern returns a pattern document with the given page sizes.
func NewPattern(sizes ...Size) *Pattern {
	s := make([]Size, len(sizes))
	copy(s, sizes)
	return &Pattern{sizes: s, cellSize: DefaultCellSize}
}

// NewUniformPattern returns a pattern document of count pages of one size.
func NewUniformPattern(count int, size Size) *Pattern {
	sizes := make([]Size, count)
	for i := range sizes {
		sizes[i] = size
	}
	return &Pattern{sizes: sizes, cellSize: DefaultCellSize}
}

// WithCellSize overrides the cell edge length.
func (p *Pattern) WithCellSize(cell float64) *Pattern {
	if cell > 0 {
		p.cellSize = cell
	}
	return p
}

func (p *Pattern) PageCount() int {
	return len(p.sizes)
}

func (p *Pattern) PageSize(page int) (Size, error) {
	if err := CheckPage(p, page); err != nil {
		return Size{}, err
	}
	return p.sizes[page], nil
}

func (p *Pattern) Render(ctx context.Context, page int, region Region, scale float64) (*image.RGBA, error) {
	if err := CheckPage(p, page); err != nil {
		return nil, err
	}
	if p.sizes[page].Degenerate() {
		return nil, fmt.Errorf("%w: page %d has no area", ErrCorruptPage, page)
	}
	w, h, err := checkRegion(region, scale)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		cy := region.Y + (float64(y)+0.5)/scale
		row := int64(math.Floor(cy / p.cellSize))
		off := y * img.Stride
		for x := 0; x < w; x++ {
			cx := region.X + (float64(x)+0.5)/scale
			col := int64(math.Floor(cx / p.cellSize))
			v := mix(uint64(page), uint64(row), uint64(col))
			img.Pix[off+4*x+0] = uint8(v)
			img.Pix[off+4*x+1] = uint8(v >> 8)
			img.Pix[off+4*x+2] = uint8(v >> 16)
			img.Pix[off+4*x+3] = 0xff
		}
	}
	return img, nil
}

// mix is splitmix64 over the three cell coordinates.
func mix(page, row, col uint64) uint64 {
	z := page*0x9e3779b97f4a7c15 ^ row*0xbf58476d1ce4e5b9 ^ col*0x94d049bb133111eb
	z += 0x9e3779b97f4a7c15
	z = (z ^ (z >> 30)) * 0xbf58476d1ce4e5b9
	z = (z ^ (z >> 27)) * 0x94d049bb133111eb
	return z ^ (z >> 31)
}

var _ Source = (*Pattern)(nil)
