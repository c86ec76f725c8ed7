package document

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strconv"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	xdraw "golang.org/x/image/draw"
)

// PointsPerInch converts PDF user space units to inches.
const PointsPerInch = 72.0

// DefaultPDFToPPM is the rasterizer binary (poppler-utils).
const DefaultPDFToPPM = "pdftoppm"

// PDF is a document backed by a PDF file. Page geometry comes from pdfcpu;
// region rasterization shells out to pdftoppm with a crop box, so only the
// visible part of a page is ever rendered.
type PDF struct {
	path   string
	binary string
	sizes  []Size
}

// PDFOption configures a PDF source.
type PDFOption func(*PDF)

// WithRasterizer overrides the pdftoppm binary path.
func WithRasterizer(binary string) PDFOption {
	return func(p *PDF) {
		if binary != "" {
			p.binary = binary
		}
	}
}

// OpenPDF reads page dimensions (in points) from the PDF at path.
func OpenPDF(path string, opts ...PDFOption) (*PDF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	dims, err := api.PageDims(f, conf)
	if err != nil {
		return nil, fmt.Errorf("failed to read page dimensions: %w", err)
	}

	p := &PDF{
		path:   path,
		binary: DefaultPDFToPPM,
		sizes:  make([]Size, len(dims)),
	}
	for i, d := range dims {
		p.sizes[i] = Size{Width: d.Width, Height: d.Height}
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Path returns the PDF file path.
func (p *PDF) Path() string {
	return p.path
}

func (p *PDF) PageCount() int {
	return len(p.sizes)
}

func (p *PDF) PageSize(page int) (Size, error) {
	if err := CheckPage(p, page); err != nil {
		return Size{}, err
	}
	return p.sizes[page], nil
}

// Render rasterizes region of page at scale device pixels per point.
// The pdftoppm process is killed when ctx is cancelled.
func (p *PDF) Render(ctx context.Context, page int, region Region, scale float64) (*image.RGBA, error) {
	if err := CheckPage(p, page); err != nil {
		return nil, err
	}
	w, h, err := checkRegion(region, scale)
	if err != nil {
		return nil, err
	}

	args := pdftoppmArgs(page, region, scale, w, h)
	args = append(args, p.path)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, p.binary, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, fmt.Errorf("pdftoppm failed on page %d: %w (output: %s)", page, err, stderr.String())
	}

	decoded, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("%w: page %d: %v", ErrCorruptPage, page, err)
	}

	// pdftoppm may be off by a pixel at the crop edge; normalize to (w, h).
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.Draw(out, out.Bounds(), decoded, decoded.Bounds().Min, xdraw.Src)
	return out, nil
}

// pdftoppmArgs builds a single-page, cropped PNG render to stdout.
// pdftoppm pages are 1-indexed and crop coordinates are in output pixels.
func pdftoppmArgs(page int, region Region, scale float64, w, h int) []string {
	pageStr := strconv.Itoa(page + 1)
	dpi := scale * PointsPerInch
	return []string{
		"-png",
		"-singlefile",
		"-f", pageStr,
		"-l", pageStr,
		"-r", strconv.FormatFloat(dpi, 'f', 4, 64),
		"-x", strconv.Itoa(int(math.Round(region.X * scale))),
		"-y", strconv.Itoa(int(math.Round(region.Y * scale))),
		"-W", strconv.Itoa(w),
		"-H", strconv.Itoa(h),
	}
}

var _ Source = (*PDF)(nil)
