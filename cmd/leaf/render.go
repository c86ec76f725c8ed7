package main

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/home"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/metrics"
	"github.com/jackzampolin/leaf/internal/navigation"
	"github.com/jackzampolin/leaf/internal/render"
)

var (
	renderPage    int
	renderCount   int
	renderMode    string
	renderBack    bool
	renderTimeout time.Duration
)

var renderCmd = &cobra.Command{
	Use:   "render <document>",
	Short: "Render screens of a document to PNG files",
	Long: `Walk a document screen by screen and write each rendered screen
to the home directory (exports/<document>/screen_NNNN.png).

The walk starts at --page and steps --count screens forward, or
backward with --back. Adjacent identical screens are reported.

Examples:
  leaf render book.pdf                      # First 10 screens
  leaf render book.pdf --page 40 --count 5  # Five screens from page 40
  leaf render book.pdf --mode single --count 0   # Every page`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		cm, err := loadConfig(h)
		if err != nil {
			return err
		}
		cfg := cm.Get()
		logger := newLogger(cfg)

		src, err := document.Open(args[0], cfg.SourceOptions())
		if err != nil {
			return err
		}
		defer document.Close(src)

		rec := metrics.NewRecorder(0)
		ctrl, err := navigation.New(navigation.SettingsConfig(src, cfg, rec, logger))
		if err != nil {
			return err
		}
		if renderMode != "" {
			mode, err := layout.ParseMode(renderMode)
			if err != nil {
				return err
			}
			if err := ctrl.SetSinglePageMode(mode == layout.SinglePage); err != nil {
				return err
			}
		}
		if ctrl.PageCount() == 0 {
			return fmt.Errorf("document has no pages")
		}
		if err := ctrl.Start(ctx); err != nil {
			return err
		}
		defer ctrl.Close()

		var first *render.Task
		if renderPage > 0 {
			if first, err = ctrl.GoToPage(renderPage); err != nil {
				return err
			}
		} else {
			first = ctrl.DrawCurrent()
		}

		key := home.DocumentKey(args[0])
		if err := h.EnsureDocumentExportDir(key); err != nil {
			return err
		}

		count := renderCount
		if count <= 0 {
			count = ctrl.PageLayoutManager().Len()
		}
		step := ctrl.DrawNext
		if renderBack {
			step = ctrl.DrawPrev
		}

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(4)

		var prev *image.RGBA
		duplicates := 0
		written := 0
		task := first
		for i := 0; i < count && task != nil; i++ {
			if gctx.Err() != nil {
				break
			}
			frame, err := waitFrame(gctx, task, renderTimeout)
			if err != nil {
				logger.Warn("screen failed to render", "cursor", ctrl.Cursor(), "error", err)
			} else {
				if prev != nil && bytes.Equal(prev.Pix, frame.Image.Pix) {
					duplicates++
					logger.Warn("adjacent screens are identical", "cursor", ctrl.Cursor(), "screen", frame.Screen.String())
				}
				prev = frame.Image

				path := h.ScreenImagePath(key, ctrl.Cursor())
				img := frame.Image
				g.Go(func() error {
					return writePNG(path, img)
				})
				written++
			}
			if i < count-1 {
				task = step()
			}
		}
		if err := g.Wait(); err != nil {
			return err
		}

		summary := rec.GetSummary(metrics.Filter{})
		fmt.Printf("Wrote %d screens to %s\n", written, h.DocumentExportDir(key))
		fmt.Printf("  Rendered: %d  Cached: %d  Failed: %d\n", summary.RenderedCount, summary.CachedCount, summary.FailedCount)
		if duplicates > 0 {
			fmt.Printf("  Adjacent duplicates: %d\n", duplicates)
		}
		return nil
	},
}

func waitFrame(ctx context.Context, task *render.Task, timeout time.Duration) (*render.Frame, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return task.Wait(ctx)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

func init() {
	renderCmd.Flags().IntVar(&renderPage, "page", 0, "page to start from (0-indexed)")
	renderCmd.Flags().IntVar(&renderCount, "count", 10, "screens to render; 0 renders to the end")
	renderCmd.Flags().StringVar(&renderMode, "mode", "", "layout mode: continuous or single (default from config)")
	renderCmd.Flags().BoolVar(&renderBack, "back", false, "walk backward")
	renderCmd.Flags().DurationVar(&renderTimeout, "timeout", 30*time.Second, "per-screen render timeout")

	rootCmd.AddCommand(renderCmd)
}
