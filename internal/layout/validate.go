package layout

import (
	"fmt"

	"github.com/jackzampolin/leaf/internal/document"
)

// boundsTolerance absorbs float error when comparing regions to page edges.
const boundsTolerance = 1e-6

// Validate checks seq against the invariants every computed layout holds:
// pages appear in order, each page has at least one screen, regions stay
// inside their page, content fits the viewport and no screen repeats.
// Violations are reported as ErrInconsistent.
func Validate(seq []Screen, doc document.Source, vp Viewport) error {
	count := doc.PageCount()
	if len(seq) < count {
		return fmt.Errorf("%w: %d screens for %d pages", ErrInconsistent, len(seq), count)
	}

	seen := make(map[Screen]int, len(seq))
	nextPage := 0
	for i, s := range seq {
		if prev, dup := seen[s]; dup {
			return fmt.Errorf("%w: screen %d repeats screen %d (%s)", ErrInconsistent, i, prev, s)
		}
		seen[s] = i

		if s.Viewport != vp {
			return fmt.Errorf("%w: screen %d has viewport %s, want %s", ErrInconsistent, i, s.Viewport, vp)
		}
		switch {
		case s.Page == nextPage:
			nextPage++
		case s.Page != nextPage-1:
			return fmt.Errorf("%w: screen %d is on page %d after page %d", ErrInconsistent, i, s.Page, nextPage-1)
		}

		if s.Blank {
			continue
		}
		size, err := doc.PageSize(s.Page)
		if err != nil {
			return fmt.Errorf("%w: screen %d: %v", ErrInconsistent, i, err)
		}
		r := s.Region
		if r.X < -boundsTolerance || r.Y < -boundsTolerance ||
			r.X+r.Width > size.Width+boundsTolerance ||
			r.Y+r.Height > size.Height+boundsTolerance {
			return fmt.Errorf("%w: screen %d region exceeds page %d bounds", ErrInconsistent, i, s.Page)
		}
		if s.Scale <= 0 {
			return fmt.Errorf("%w: screen %d has scale %v", ErrInconsistent, i, s.Scale)
		}
		rect := s.ContentRect()
		if rect.Empty() || rect.Min.X < 0 || rect.Min.Y < 0 || rect.Max.X > vp.Width || rect.Max.Y > vp.Height {
			return fmt.Errorf("%w: screen %d content %v outside viewport %s", ErrInconsistent, i, rect, vp)
		}
	}
	if nextPage != count {
		return fmt.Errorf("%w: sequence covers %d of %d pages", ErrInconsistent, nextPage, count)
	}
	return nil
}
