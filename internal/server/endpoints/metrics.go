package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/metrics"
	"github.com/jackzampolin/leaf/internal/svcctx"
)

// filterFromQuery builds a metrics filter from ?page=&outcome=&success=.
func filterFromQuery(q url.Values) (metrics.Filter, error) {
	var f metrics.Filter
	if p := q.Get("page"); p != "" {
		page, err := strconv.Atoi(p)
		if err != nil {
			return f, fmt.Errorf("page must be an integer")
		}
		f.Page = &page
	}
	f.Outcome = q.Get("outcome")
	if s := q.Get("success"); s != "" {
		ok, err := strconv.ParseBool(s)
		if err != nil {
			return f, fmt.Errorf("success must be a boolean")
		}
		f.Success = &ok
	}
	return f, nil
}

func filterQuery(page int, outcome string) string {
	q := url.Values{}
	if page >= 0 {
		q.Set("page", strconv.Itoa(page))
	}
	if outcome != "" {
		q.Set("outcome", outcome)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListMetricsResponse is the response for listing render metrics.
type ListMetricsResponse struct {
	Metrics []metrics.Metric `json:"metrics"`
	Total   int64            `json:"total"`
}

// ListMetricsEndpoint handles GET /api/metrics.
type ListMetricsEndpoint struct{}

var _ api.Endpoint = (*ListMetricsEndpoint)(nil)

func (e *ListMetricsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics", e.handler
}

func (e *ListMetricsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List render metrics
//	@Description	Recent resolved render tasks, oldest first
//	@Tags			metrics
//	@Produce		json
//	@Param			page	query		int		false	"Filter by page"
//	@Param			outcome	query		string	false	"Filter by outcome (rendered, cached, failed, cancelled)"
//	@Param			limit	query		int		false	"Most recent N"
//	@Success		200		{object}	ListMetricsResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/metrics [get]
func (e *ListMetricsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec := svcctx.MetricsFrom(r.Context())
	if rec == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not enabled")
		return
	}

	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit := 100
	if l := r.URL.Query().Get("limit"); l != "" {
		if limit, err = strconv.Atoi(l); err != nil {
			writeError(w, http.StatusBadRequest, "limit must be an integer")
			return
		}
	}

	list := rec.List(f, limit)
	if list == nil {
		list = []metrics.Metric{}
	}
	writeJSON(w, http.StatusOK, ListMetricsResponse{Metrics: list, Total: rec.Total()})
}

func (e *ListMetricsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page, limit int
	var outcome string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recent render metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			path := "/api/metrics" + filterQuery(page, outcome)
			if limit > 0 {
				sep := "?"
				if len(path) > len("/api/metrics") {
					sep = "&"
				}
				path += sep + "limit=" + strconv.Itoa(limit)
			}
			var resp ListMetricsResponse
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp)
		},
	}
	cmd.Flags().IntVar(&page, "page", -1, "Filter by page")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Filter by outcome")
	cmd.Flags().IntVar(&limit, "limit", 20, "Most recent N")
	return cmd
}

// MetricsSummaryResponse is the response for summary queries.
type MetricsSummaryResponse struct {
	metrics.Summary
	TotalTimeSeconds float64        `json:"total_time_seconds"`
	ByOutcome        map[string]int `json:"by_outcome"`
	ErrorsByType     map[string]int `json:"errors_by_type,omitempty"`
}

// MetricsSummaryEndpoint handles GET /api/metrics/summary.
type MetricsSummaryEndpoint struct{}

var _ api.Endpoint = (*MetricsSummaryEndpoint)(nil)

func (e *MetricsSummaryEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/metrics/summary", e.handler
}

func (e *MetricsSummaryEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Render metrics summary
//	@Description	Counts, cache hit rate and render latency percentiles
//	@Tags			metrics
//	@Produce		json
//	@Param			page	query		int		false	"Filter by page"
//	@Param			outcome	query		string	false	"Filter by outcome"
//	@Success		200		{object}	MetricsSummaryResponse
//	@Failure		400		{object}	ErrorResponse
//	@Router			/api/metrics/summary [get]
func (e *MetricsSummaryEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	rec := svcctx.MetricsFrom(r.Context())
	if rec == nil {
		writeError(w, http.StatusServiceUnavailable, "metrics not enabled")
		return
	}

	f, err := filterFromQuery(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	summary := rec.GetSummary(f)
	writeJSON(w, http.StatusOK, MetricsSummaryResponse{
		Summary:          *summary,
		TotalTimeSeconds: summary.TotalTime.Seconds(),
		ByOutcome:        rec.CountByOutcome(f),
		ErrorsByType:     rec.ErrorsByType(f),
	})
}

func (e *MetricsSummaryEndpoint) Command(getServerURL func() string) *cobra.Command {
	var page int
	var outcome string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Get render metrics summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())

			var resp MetricsSummaryResponse
			if err := client.Get(cmd.Context(), "/api/metrics/summary"+filterQuery(page, outcome), &resp); err != nil {
				return err
			}
			if api.GetOutputFormat() == api.OutputFormatJSON {
				return api.Output(resp)
			}

			fmt.Printf("Render Summary\n")
			fmt.Printf("==============\n")
			fmt.Printf("  Count:      %d\n", resp.Count)
			fmt.Printf("  Rendered:   %d\n", resp.RenderedCount)
			fmt.Printf("  Cached:     %d\n", resp.CachedCount)
			fmt.Printf("  Failed:     %d\n", resp.FailedCount)
			fmt.Printf("  Cancelled:  %d\n", resp.CancelledCount)
			fmt.Printf("  Hit rate:   %.1f%%\n", resp.HitRate*100)
			fmt.Println()
			fmt.Printf("  Total Time: %s\n", time.Duration(resp.TotalTimeSeconds*float64(time.Second)))
			fmt.Printf("  Avg Time:   %.3fs\n", resp.AvgTimeSeconds)
			fmt.Printf("  p50/p95/p99: %.3fs / %.3fs / %.3fs\n", resp.LatencyP50, resp.LatencyP95, resp.LatencyP99)
			for typ, n := range resp.ErrorsByType {
				fmt.Printf("  error %-12s %d\n", typ+":", n)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&page, "page", -1, "Filter by page")
	cmd.Flags().StringVar(&outcome, "outcome", "", "Filter by outcome")

	return cmd
}
