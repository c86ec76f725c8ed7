package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
)

var (
	screensMode string
	screensPage int
)

// ScreensOutput is the offline layout listing.
type ScreensOutput struct {
	Document string          `json:"document" yaml:"document"`
	Mode     string          `json:"mode" yaml:"mode"`
	Viewport layout.Viewport `json:"viewport" yaml:"viewport"`
	Pages    int             `json:"pages" yaml:"pages"`
	Total    int             `json:"total" yaml:"total"`
	Screens  []ScreenLine    `json:"screens" yaml:"screens"`
}

// ScreenLine is one screen of the listing.
type ScreenLine struct {
	Index  int    `json:"index" yaml:"index"`
	Page   int    `json:"page" yaml:"page"`
	Screen string `json:"screen" yaml:"screen"`
}

var screensCmd = &cobra.Command{
	Use:   "screens <document>",
	Short: "Print the screen sequence of a document",
	Long: `Compute the screen sequence of a document for the configured
viewport without starting the server.

Examples:
  leaf screens book.pdf                 # Continuous layout
  leaf screens book.pdf --mode single   # One screen per page
  leaf screens book.pdf --page 3 -o json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cm, err := loadConfig(nil)
		if err != nil {
			return err
		}
		cfg := cm.Get()

		mode := layout.Continuous
		if cfg.Layout.SinglePage {
			mode = layout.SinglePage
		}
		if screensMode != "" {
			if mode, err = layout.ParseMode(screensMode); err != nil {
				return err
			}
		}

		src, err := document.Open(args[0], cfg.SourceOptions())
		if err != nil {
			return err
		}
		defer document.Close(src)

		vp := layout.Viewport{Width: cfg.Viewport.Width, Height: cfg.Viewport.Height}
		seq, err := layout.ComputeSequence(src, vp, mode, cfg.Layout.Zoom)
		if err != nil {
			return err
		}

		out := ScreensOutput{
			Document: args[0],
			Mode:     mode.String(),
			Viewport: vp,
			Pages:    src.PageCount(),
			Total:    len(seq),
		}
		for i, s := range seq {
			if screensPage >= 0 && s.Page != screensPage {
				continue
			}
			out.Screens = append(out.Screens, ScreenLine{Index: i, Page: s.Page, Screen: s.String()})
		}
		if screensPage >= 0 && len(out.Screens) == 0 {
			return fmt.Errorf("page %d not in document (%d pages)", screensPage, out.Pages)
		}
		return api.Output(out)
	},
}

func init() {
	screensCmd.Flags().StringVar(&screensMode, "mode", "", "layout mode: continuous or single (default from config)")
	screensCmd.Flags().IntVar(&screensPage, "page", -1, "only screens of this page")

	rootCmd.AddCommand(screensCmd)
}
