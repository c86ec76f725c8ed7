package endpoints

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/svcctx"
)

// LayoutResponse lists screens of the current layout.
type LayoutResponse struct {
	Mode     string          `json:"mode"`
	Viewport layout.Viewport `json:"viewport"`
	Zoom     float64         `json:"zoom"`
	Cursor   int             `json:"cursor"`
	Total    int             `json:"total"`
	Screens  []ScreenEntry   `json:"screens"`
}

// ScreenEntry is one screen with its index in the sequence.
type ScreenEntry struct {
	Index  int           `json:"index"`
	Screen layout.Screen `json:"screen"`
}

// LayoutEndpoint handles GET /api/layout.
type LayoutEndpoint struct{}

var _ api.Endpoint = (*LayoutEndpoint)(nil)

func (e *LayoutEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/layout", e.handler
}

func (e *LayoutEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get layout
//	@Description	List the screen sequence, or the screens of one page with ?page=N
//	@Tags			layout
//	@Produce		json
//	@Param			page	query		int	false	"Only screens of this page (0-indexed)"
//	@Success		200		{object}	LayoutResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/layout [get]
func (e *LayoutEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	mgr := svcctx.ControllerFrom(r.Context()).PageLayoutManager()

	seq := mgr.Sequence()
	resp := LayoutResponse{
		Mode:     mgr.Mode().String(),
		Viewport: mgr.Viewport(),
		Zoom:     mgr.Zoom(),
		Cursor:   mgr.Cursor(),
		Total:    len(seq),
		Screens:  make([]ScreenEntry, 0, len(seq)),
	}

	page := -1
	if p := r.URL.Query().Get("page"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 || n >= mgr.PageCount() {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("page must be in [0, %d)", mgr.PageCount()))
			return
		}
		page = n
	}

	for i, s := range seq {
		if page >= 0 && s.Page != page {
			continue
		}
		resp.Screens = append(resp.Screens, ScreenEntry{Index: i, Screen: s})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (e *LayoutEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the screen sequence",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/layout"
			if page >= 0 {
				path += "?page=" + strconv.Itoa(page)
			}
			var resp LayoutResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&page, "page", -1, "Only screens of this page")
	return cmd
}

// ModeRequest is the body for PUT /api/layout/mode.
type ModeRequest struct {
	Mode string `json:"mode"` // "continuous" or "single"
}

// ModeEndpoint handles PUT /api/layout/mode.
type ModeEndpoint struct{}

var _ api.Endpoint = (*ModeEndpoint)(nil)

func (e *ModeEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/layout/mode", e.handler
}

func (e *ModeEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Set layout mode
//	@Description	Switch between continuous and single-page layout, keeping the current page
//	@Tags			layout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ModeRequest	true	"Layout mode"
//	@Success		200		{object}	NavigateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/layout/mode [put]
func (e *ModeEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ModeRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := layout.ParseMode(req.Mode)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := svcctx.ControllerFrom(r.Context())
	if err := ctrl.SetSinglePageMode(mode == layout.SinglePage); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, nil, 0))
}

func (e *ModeEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "mode <continuous|single>",
		Short: "Switch layout mode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Put(cmd.Context(), "/api/layout/mode", ModeRequest{Mode: args[0]}, &resp); err != nil {
				return err
			}
			fmt.Printf("Mode: %s (screen %d of %d, page %d)\n", args[0], resp.Cursor, resp.Screens, resp.Page)
			return nil
		},
	}
}

// ViewportEndpoint handles PUT /api/layout/viewport.
type ViewportEndpoint struct{}

var _ api.Endpoint = (*ViewportEndpoint)(nil)

func (e *ViewportEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/layout/viewport", e.handler
}

func (e *ViewportEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Set viewport
//	@Description	Apply a host viewport change (resize or rotation); the layout is recomputed and cached screens are dropped
//	@Tags			layout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		layout.Viewport	true	"Viewport in device pixels"
//	@Success		200		{object}	NavigateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/layout/viewport [put]
func (e *ViewportEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var vp layout.Viewport
	if err := readJSON(r, &vp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := svcctx.ControllerFrom(r.Context())
	if err := ctrl.SetViewport(vp); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, nil, 0))
}

func (e *ViewportEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "viewport <width> <height>",
		Short: "Change the viewport size",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			width, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("width must be an integer: %w", err)
			}
			height, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("height must be an integer: %w", err)
			}
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			vp := layout.Viewport{Width: width, Height: height}
			if err := client.Put(cmd.Context(), "/api/layout/viewport", vp, &resp); err != nil {
				return err
			}
			fmt.Printf("Viewport: %s (screen %d of %d, page %d)\n", vp, resp.Cursor, resp.Screens, resp.Page)
			return nil
		},
	}
}

// ZoomRequest is the body for PUT /api/layout/zoom.
type ZoomRequest struct {
	Zoom float64 `json:"zoom"`
}

// ZoomEndpoint handles PUT /api/layout/zoom.
type ZoomEndpoint struct{}

var _ api.Endpoint = (*ZoomEndpoint)(nil)

func (e *ZoomEndpoint) Route() (string, string, http.HandlerFunc) {
	return "PUT", "/api/layout/zoom", e.handler
}

func (e *ZoomEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Set zoom
//	@Description	Change the continuous-mode zoom factor
//	@Tags			layout
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ZoomRequest	true	"Zoom factor"
//	@Success		200		{object}	NavigateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/layout/zoom [put]
func (e *ZoomEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req ZoomRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := svcctx.ControllerFrom(r.Context())
	if err := ctrl.SetZoom(req.Zoom); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, nil, 0))
}

func (e *ZoomEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "zoom <factor>",
		Short: "Change the continuous-mode zoom",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			zoom, err := strconv.ParseFloat(args[0], 64)
			if err != nil {
				return fmt.Errorf("zoom must be a number: %w", err)
			}
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Put(cmd.Context(), "/api/layout/zoom", ZoomRequest{Zoom: zoom}, &resp); err != nil {
				return err
			}
			fmt.Printf("Zoom: %g (screen %d of %d, page %d)\n", zoom, resp.Cursor, resp.Screens, resp.Page)
			return nil
		},
	}
}
