package document

import (
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	lru "github.com/hashicorp/golang-lru/v2"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/singleflight"
)

// pageImagePattern matches page_0001.png style names (1-indexed).
var pageImagePattern = regexp.MustCompile(`^page_(\d+)\.(png|jpe?g)$`)

// DefaultDecodedPages is how many decoded page images ImageDir keeps.
const DefaultDecodedPages = 4

// ImageDir is a document backed by a directory of pre-rendered page images
// (page_0001.png, page_0002.png, ...). Content units are source pixels.
type ImageDir struct {
	dir   string
	paths []string
	sizes []Size

	decoded *lru.Cache[int, image.Image]
	group   singleflight.Group
}

// OpenImageDir scans dir for page images and reads their dimensions.
// keep bounds the number of decoded pages held in memory.
func OpenImageDir(dir string, keep int) (*ImageDir, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read page directory: %w", err)
	}

	type numbered struct {
		num  int
		path string
	}
	var pages []numbered
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		m := pageImagePattern.FindStringSubmatch(entry.Name())
		if m == nil {
			continue
		}
		num, _ := strconv.Atoi(m[1])
		pages = append(pages, numbered{num: num, path: filepath.Join(dir, entry.Name())})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].num < pages[j].num })

	if keep <= 0 {
		keep = DefaultDecodedPages
	}
	decoded, err := lru.New[int, image.Image](keep)
	if err != nil {
		return nil, fmt.Errorf("failed to create page cache: %w", err)
	}

	d := &ImageDir{
		dir:     dir,
		paths:   make([]string, len(pages)),
		sizes:   make([]Size, len(pages)),
		decoded: decoded,
	}
	for i, p := range pages {
		d.paths[i] = p.path
		size, err := readImageSize(p.path)
		if err != nil {
			// Unreadable pages keep their index and lay out as degenerate.
			size = Size{}
		}
		d.sizes[i] = size
	}
	return d, nil
}

func readImageSize(path string) (Size, error) {
	f, err := os.Open(path)
	if err != nil {
		return Size{}, err
	}
	defer f.Close()

	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return Size{}, err
	}
	return Size{Width: float64(cfg.Width), Height: float64(cfg.Height)}, nil
}

// Dir returns the scanned directory.
func (d *ImageDir) Dir() string {
	return d.dir
}

func (d *ImageDir) PageCount() int {
	return len(d.paths)
}

func (d *ImageDir) PageSize(page int) (Size, error) {
	if err := CheckPage(d, page); err != nil {
		return Size{}, err
	}
	return d.sizes[page], nil
}

func (d *ImageDir) Render(ctx context.Context, page int, region Region, scale float64) (*image.RGBA, error) {
	if err := CheckPage(d, page); err != nil {
		return nil, err
	}
	w, h, err := checkRegion(region, scale)
	if err != nil {
		return nil, err
	}

	src, err := d.page(ctx, page)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	b := src.Bounds()
	srcRect := image.Rect(
		b.Min.X+int(math.Floor(region.X)),
		b.Min.Y+int(math.Floor(region.Y)),
		b.Min.X+int(math.Ceil(region.X+region.Width)),
		b.Min.Y+int(math.Ceil(region.Y+region.Height)),
	).Intersect(b)
	if srcRect.Empty() {
		return nil, fmt.Errorf("%w: %+v outside page %d", ErrEmptyRegion, region, page)
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, srcRect, xdraw.Src, nil)
	return dst, nil
}

// page returns the decoded page image, decoding at most once per page even
// when several screens of it render concurrently.
func (d *ImageDir) page(ctx context.Context, page int) (image.Image, error) {
	if img, ok := d.decoded.Get(page); ok {
		return img, nil
	}

	ch := d.group.DoChan(strconv.Itoa(page), func() (any, error) {
		f, err := os.Open(d.paths[page])
		if err != nil {
			return nil, fmt.Errorf("failed to open page %d: %w", page, err)
		}
		defer f.Close()

		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("%w: page %d: %v", ErrCorruptPage, page, err)
		}
		d.decoded.Add(page, img)
		return img, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(image.Image), nil
	}
}

// Close drops decoded pages.
func (d *ImageDir) Close() error {
	d.decoded.Purge()
	return nil
}

var (
	_ Source = (*ImageDir)(nil)
	_ Closer = (*ImageDir)(nil)
)
