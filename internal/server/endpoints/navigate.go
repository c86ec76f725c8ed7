package endpoints

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/document"
	"github.com/jackzampolin/leaf/internal/layout"
	"github.com/jackzampolin/leaf/internal/navigation"
	"github.com/jackzampolin/leaf/internal/render"
	"github.com/jackzampolin/leaf/internal/svcctx"
)

// DefaultRenderTimeout bounds how long navigation handlers wait for a frame.
const DefaultRenderTimeout = 30 * time.Second

// NavigateResponse describes the screen under the cursor after a
// navigation call.
type NavigateResponse struct {
	Moved     bool           `json:"moved"`
	Cursor    int            `json:"cursor"`
	Page      int            `json:"page"`
	Screens   int            `json:"screens"`
	PageCount int            `json:"page_count"`
	Screen    *layout.Screen `json:"screen,omitempty"`
	TaskID    string         `json:"task_id,omitempty"`
	Cached    bool           `json:"cached,omitempty"`
	Stamp     uint64         `json:"stamp,omitempty"`
	// RenderError is set when the cursor moved but its screen failed to
	// render.
	RenderError string `json:"render_error,omitempty"`
	// Cancelled marks a render that was cancelled rather than failed; the
	// same navigation can be retried.
	Cancelled bool `json:"cancelled,omitempty"`
}

// GotoRequest is the body for POST /api/navigate/goto.
type GotoRequest struct {
	Page int `json:"page"`
}

// SeekRequest is the body for POST /api/navigate/seek.
type SeekRequest struct {
	Cursor int `json:"cursor"`
}

// awaitScreen waits for task and builds the response. A nil task means the
// cursor did not move.
func awaitScreen(ctx context.Context, ctrl *navigation.Controller, task *render.Task, timeout time.Duration) NavigateResponse {
	resp := NavigateResponse{
		Moved:     task != nil,
		Cursor:    ctrl.Cursor(),
		Page:      ctrl.CurrentPage(),
		Screens:   ctrl.PageLayoutManager().Len(),
		PageCount: ctrl.PageCount(),
	}
	if task == nil {
		return resp
	}

	screen := task.Screen()
	resp.Screen = &screen
	resp.TaskID = task.ID()

	if timeout <= 0 {
		timeout = DefaultRenderTimeout
	}
	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	frame, err := task.Wait(waitCtx)
	if err != nil {
		resp.RenderError = err.Error()
		resp.Cancelled = errors.Is(err, render.ErrCancelled)
		return resp
	}
	resp.Cached = frame.Cached
	resp.Stamp = frame.Stamp
	return resp
}

func printNavigation(resp NavigateResponse) error {
	if api.GetOutputFormat() == api.OutputFormatJSON {
		return api.Output(resp)
	}
	if !resp.Moved {
		fmt.Printf("At boundary: screen %d of %d (page %d)\n", resp.Cursor, resp.Screens, resp.Page)
		return nil
	}
	return api.Output(resp)
}

// NextEndpoint handles POST /api/navigate/next.
type NextEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*NextEndpoint)(nil)

func (e *NextEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/navigate/next", e.handler
}

func (e *NextEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Next screen
//	@Description	Advance the cursor one screen and wait for its render. At the last screen the cursor stays and moved is false.
//	@Tags			navigate
//	@Produce		json
//	@Success		200	{object}	NavigateResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/navigate/next [post]
func (e *NextEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctrl := svcctx.ControllerFrom(r.Context())
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, ctrl.DrawNext(), e.Timeout))
}

func (e *NextEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "next",
		Short: "Advance one screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Post(cmd.Context(), "/api/navigate/next", nil, &resp); err != nil {
				return err
			}
			return printNavigation(resp)
		},
	}
}

// PrevEndpoint handles POST /api/navigate/prev.
type PrevEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*PrevEndpoint)(nil)

func (e *PrevEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/navigate/prev", e.handler
}

func (e *PrevEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Previous screen
//	@Description	Step the cursor back one screen and wait for its render. At the first screen the cursor stays and moved is false.
//	@Tags			navigate
//	@Produce		json
//	@Success		200	{object}	NavigateResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/navigate/prev [post]
func (e *PrevEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctrl := svcctx.ControllerFrom(r.Context())
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, ctrl.DrawPrev(), e.Timeout))
}

func (e *PrevEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "prev",
		Short: "Step back one screen",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Post(cmd.Context(), "/api/navigate/prev", nil, &resp); err != nil {
				return err
			}
			return printNavigation(resp)
		},
	}
}

// CurrentEndpoint handles GET /api/navigate/current.
type CurrentEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*CurrentEndpoint)(nil)

func (e *CurrentEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/navigate/current", e.handler
}

func (e *CurrentEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Current screen
//	@Description	Render the screen under the cursor without moving it
//	@Tags			navigate
//	@Produce		json
//	@Success		200	{object}	NavigateResponse
//	@Failure		503	{object}	ErrorResponse
//	@Router			/api/navigate/current [get]
func (e *CurrentEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	ctrl := svcctx.ControllerFrom(r.Context())
	resp := awaitScreen(r.Context(), ctrl, ctrl.DrawCurrent(), e.Timeout)
	resp.Moved = false
	writeJSON(w, http.StatusOK, resp)
}

func (e *CurrentEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "current",
		Short: "Show the screen under the cursor",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Get(cmd.Context(), "/api/navigate/current", &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// GotoEndpoint handles POST /api/navigate/goto.
type GotoEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*GotoEndpoint)(nil)

func (e *GotoEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/navigate/goto", e.handler
}

func (e *GotoEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Go to page
//	@Description	Move the cursor to the first screen of a page (0-indexed)
//	@Tags			navigate
//	@Accept			json
//	@Produce		json
//	@Param			request	body		GotoRequest	true	"Target page"
//	@Success		200		{object}	NavigateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/navigate/goto [post]
func (e *GotoEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req GotoRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := svcctx.ControllerFrom(r.Context())
	task, err := ctrl.GoToPage(req.Page)
	if err != nil {
		writeNavigationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, task, e.Timeout))
}

func (e *GotoEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "goto <page>",
		Short: "Jump to a page (0-indexed)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			page, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("page must be an integer: %w", err)
			}
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Post(cmd.Context(), "/api/navigate/goto", GotoRequest{Page: page}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// SeekEndpoint handles POST /api/navigate/seek.
type SeekEndpoint struct {
	Timeout time.Duration
}

var _ api.Endpoint = (*SeekEndpoint)(nil)

func (e *SeekEndpoint) Route() (string, string, http.HandlerFunc) {
	return "POST", "/api/navigate/seek", e.handler
}

func (e *SeekEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Seek to screen
//	@Description	Move the cursor to a screen index in the current layout
//	@Tags			navigate
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SeekRequest	true	"Target screen index"
//	@Success		200		{object}	NavigateResponse
//	@Failure		400		{object}	ErrorResponse
//	@Failure		404		{object}	ErrorResponse
//	@Router			/api/navigate/seek [post]
func (e *SeekEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	var req SeekRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctrl := svcctx.ControllerFrom(r.Context())
	task, err := ctrl.Seek(req.Cursor)
	if err != nil {
		writeNavigationError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, awaitScreen(r.Context(), ctrl, task, e.Timeout))
}

func (e *SeekEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "seek <screen>",
		Short: "Jump to a screen index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cursor, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("screen must be an integer: %w", err)
			}
			client := api.NewClient(getServerURL())
			var resp NavigateResponse
			if err := client.Post(cmd.Context(), "/api/navigate/seek", SeekRequest{Cursor: cursor}, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
}

// writeNavigationError maps layout errors to HTTP statuses.
func writeNavigationError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, layout.ErrNoPages):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, document.ErrPageOutOfRange), errors.Is(err, layout.ErrCursorOutOfRange):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusBadRequest, err.Error())
	}
}
