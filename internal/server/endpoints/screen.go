package endpoints

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/render"
	"github.com/jackzampolin/leaf/internal/svcctx"
)

// ScreenImageEndpoint handles GET /api/screen.png.
type ScreenImageEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*ScreenImageEndpoint)(nil)

func (e *ScreenImageEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/screen.png", e.handler
}

func (e *ScreenImageEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get current screen image
//	@Description	Render the screen under the cursor as a viewport-sized PNG
//	@Tags			navigate
//	@Produce		image/png
//	@Success		200	{file}		binary
//	@Failure		404	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Failure		504	{object}	ErrorResponse
//	@Router			/api/screen.png [get]
func (e *ScreenImageEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctrl := svcctx.ControllerFrom(r.Context())
	frame, ok := currentFrame(w, r, e.Timeout)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set("X-Leaf-Cursor", strconv.Itoa(ctrl.Cursor()))
	w.Header().Set("X-Leaf-Page", strconv.Itoa(frame.Screen.Page))
	w.Write(buf.Bytes())
}

// currentFrame renders the screen under the cursor, writing the error
// response itself when that fails.
func currentFrame(w http.ResponseWriter, r *http.Request, timeout time.Duration) (*render.Frame, bool) {
	ctrl := svcctx.ControllerFrom(r.Context())
	task := ctrl.DrawCurrent()
	if task == nil {
		writeError(w, http.StatusNotFound, "document has no screens")
		return nil, false
	}

	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	ctx, cancel := context.WithTimeout(r.Context(), timeout)
	defer cancel()

	frame, err := task.Wait(ctx)
	if err != nil {
		svcctx.LoggerFrom(r.Context()).Warn("screen render failed",
			"cursor", ctrl.Cursor(), "screen", task.Screen().String(), "error", err)
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusGatewayTimeout, "render timed out")
		return nil, false
	case errors.Is(err, render.ErrCancelled):
		writeError(w, http.StatusConflict, err.Error())
		return nil, false
	case err != nil:
		writeError(w, http.StatusBadGateway, err.Error())
		return nil, false
	}
	return frame, true
}

func (e *ScreenImageEndpoint) Command(getServerURL func() string) *cobra.Command {
	var outputFile string
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Save the current screen as PNG",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			data, contentType, err := client.GetRaw(cmd.Context(), "/api/screen.png")
			if err != nil {
				return err
			}
			if contentType != "image/png" {
				return fmt.Errorf("unexpected content type %q", contentType)
			}
			if err := os.WriteFile(outputFile, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %s: %w", outputFile, err)
			}
			fmt.Printf("Wrote %s (%d bytes)\n", outputFile, len(data))
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputFile, "file", "f", "screen.png", "Output file path")
	return cmd
}

// ExportResponse reports where a screen was written.
type ExportResponse struct {
	Path   string `json:"path"`
	Cursor int    `json:"cursor"`
	Page   int    `json:"page"`
}

// ExportScreenEndpoint handles POST /api/screen/export.
type ExportScreenEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*ExportScreenEndpoint)(nil)

func (e *ExportScreenEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/screen/export", e.handler
}

func (e *ExportScreenEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Export current screen
//	@Description	Write the screen under the cursor to the home directory as exports/<document>/screen_NNNN.png
//	@Tags			navigate
//	@Produce		json
//	@Success		200	{object}	ExportResponse
//	@Failure		404	{object}	ErrorResponse
//	@Failure		500	{object}	ErrorResponse
//	@Failure		502	{object}	ErrorResponse
//	@Router			/api/screen/export [post]
func (e *ExportScreenEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	h := svcctx.HomeFrom(r.Context())
	if h == nil {
		writeError(w, http.StatusInternalServerError, "home directory not configured")
		return
	}

	ctrl := svcctx.ControllerFrom(r.Context())
	frame, ok := currentFrame(w, r, e.Timeout)
	if !ok {
		return
	}

	key := svcctx.DocumentFrom(r.Context()).Key
	if err := h.EnsureDocumentExportDir(key); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	cursor := ctrl.Cursor()
	path := h.ScreenImagePath(key, cursor)

	var buf bytes.Buffer
	if err := png.Encode(&buf, frame.Image); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, ExportResponse{Path: path, Cursor: cursor, Page: frame.Screen.Page})
}

func (e *ExportScreenEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the current screen to the server's home directory",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp ExportResponse
			if err := client.Post(cmd.Context(), "/api/screen/export", nil, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}
