package endpoints

import (
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jackzampolin/leaf/internal/api"
	"github.com/jackzampolin/leaf/internal/config"
	"github.com/jackzampolin/leaf/internal/svcctx"
)

// Setting is a config key with its effective and default values.
type Setting struct {
	Key         string `json:"key"`
	Value       any    `json:"value"`
	Default     any    `json:"default"`
	Description string `json:"description,omitempty"`
}

// SettingsResponse contains all settings.
type SettingsResponse struct {
	File     string             `json:"file,omitempty"`
	Settings map[string]Setting `json:"settings"`
}

// SettingResponse contains a single setting.
type SettingResponse struct {
	Setting *Setting `json:"setting,omitempty"`
	Error   string   `json:"error,omitempty"`
}

func effectiveSetting(mgr *config.Manager, e config.Entry) Setting {
	s := Setting{Key: e.Key, Value: e.Value, Default: e.Value, Description: e.Description}
	if v, err := mgr.Value(e.Key); err == nil {
		s.Value = v
	}
	return s
}

// ListSettingsEndpoint handles GET /api/settings.
type ListSettingsEndpoint struct{}

var _ api.Endpoint = (*ListSettingsEndpoint)(nil)

func (e *ListSettingsEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings", e.handler
}

func (e *ListSettingsEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		List all settings
//	@Description	Effective configuration values with their defaults. Edit the config file to change them; it is hot-reloaded.
//	@Tags			settings
//	@Produce		json
//	@Success		200	{object}	SettingsResponse
//	@Failure		500	{object}	ErrorResponse
//	@Router			/api/settings [get]
func (e *ListSettingsEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	mgr := svcctx.ConfigManagerFrom(r.Context())
	if mgr == nil {
		writeError(w, http.StatusInternalServerError, "config manager not available")
		return
	}

	settings := make(map[string]Setting)
	for _, entry := range config.DefaultEntries() {
		settings[entry.Key] = effectiveSetting(mgr, entry)
	}
	writeJSON(w, http.StatusOK, SettingsResponse{File: mgr.File(), Settings: settings})
}

func (e *ListSettingsEndpoint) Command(getServerURL func() string) *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List all settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SettingsResponse
			if err := client.Get(cmd.Context(), "/api/settings", &resp); err != nil {
				return err
			}

			keys := make([]string, 0, len(resp.Settings))
			for k := range resp.Settings {
				if strings.HasPrefix(k, prefix) {
					keys = append(keys, k)
				}
			}
			sort.Strings(keys)

			sorted := make([]Setting, 0, len(keys))
			for _, k := range keys {
				sorted = append(sorted, resp.Settings[k])
			}
			return api.Output(sorted)
		},
	}
	cmd.Flags().StringVar(&prefix, "prefix", "", "Filter by key prefix (e.g., 'render.')")
	return cmd
}

// GetSettingEndpoint handles GET /api/settings/{key...}.
type GetSettingEndpoint struct{}

var _ api.Endpoint = (*GetSettingEndpoint)(nil)

func (e *GetSettingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", "/api/settings/{key...}", e.handler
}

func (e *GetSettingEndpoint) RequiresInit() bool { return true }

// handler godoc
//
//	@Summary		Get a setting
//	@Description	Get a single configuration setting by key
//	@Tags			settings
//	@Produce		json
//	@Param			key	path		string	true	"Setting key (URL-encoded)"
//	@Success		200	{object}	SettingResponse
//	@Failure		400	{object}	ErrorResponse
//	@Failure		404	{object}	ErrorResponse
//	@Router			/api/settings/{key} [get]
func (e *GetSettingEndpoint) handler(w http.ResponseWriter, r *http.Request) {
	key, err := url.PathUnescape(r.PathValue("key"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid key encoding")
		return
	}
	if err := config.ValidateKey(key); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	mgr := svcctx.ConfigManagerFrom(r.Context())
	if mgr == nil {
		writeError(w, http.StatusInternalServerError, "config manager not available")
		return
	}

	entry := config.GetDefault(key)
	if entry == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("%s: %s", config.ErrNoDefault, key))
		return
	}
	s := effectiveSetting(mgr, *entry)
	writeJSON(w, http.StatusOK, SettingResponse{Setting: &s})
}

func (e *GetSettingEndpoint) Command(getServerURL func() string) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a setting by key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := api.NewClient(getServerURL())
			var resp SettingResponse
			path := "/api/settings/" + url.PathEscape(args[0])
			if err := client.Get(cmd.Context(), path, &resp); err != nil {
				return err
			}
			return api.Output(resp.Setting)
		},
	}
}
