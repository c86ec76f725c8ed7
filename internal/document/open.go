package document

import (
	"fmt"
	"os"
	"strings"
)

// Source types accepted by Open.
const (
	TypeAuto    = "auto"
	TypePDF     = "pdf"
	TypeImages  = "images"
	TypePattern = "pattern"
)

// OpenOptions selects and configures a source.
type OpenOptions struct {
	Type         string // auto, pdf, images, pattern
	Rasterizer   string // pdftoppm binary for pdf sources
	DecodedPages int    // decoded page memo size for image sources

	// Pattern sources ignore the path and use these.
	PatternPages int
	PatternSize  Size
}

// Open returns the source for path. With TypeAuto a directory opens as an
// image directory and anything else as a PDF.
func Open(path string, opts OpenOptions) (Source, error) {
	typ := strings.ToLower(opts.Type)
	if typ == "" {
		typ = TypeAuto
	}

	if typ == TypeAuto {
		typ = detectType(path)
	}

	switch typ {
	case TypePDF:
		return OpenPDF(path, WithRasterizer(opts.Rasterizer))
	case TypeImages:
		return OpenImageDir(path, opts.DecodedPages)
	case TypePattern:
		if opts.PatternPages <= 0 {
			return nil, fmt.Errorf("pattern source needs a positive page count")
		}
		return NewUniformPattern(opts.PatternPages, opts.PatternSize), nil
	default:
		return nil, fmt.Errorf("unknown source type: %s", opts.Type)
	}
}

func detectType(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return TypeImages
	}
	return TypePDF
}
