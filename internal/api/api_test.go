package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

type pingEndpoint struct {
	path string
	init bool
}

func (e *pingEndpoint) Route() (string, string, http.HandlerFunc) {
	return "GET", e.path, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true}`))
	}
}

func (e *pingEndpoint) RequiresInit() bool { return e.init }

func (e *pingEndpoint) Command(func() string) *cobra.Command { return nil }

func TestRegistry_RegisterRoutes(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&pingEndpoint{path: "/open"})
	reg.Register(&pingEndpoint{path: "/guarded", init: true})

	mux := http.NewServeMux()
	reg.RegisterRoutes(mux, func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}
	})

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/open", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/guarded", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}

func TestClient(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/echo":
			var body map[string]any
			json.NewDecoder(r.Body).Decode(&body)
			json.NewEncoder(w).Encode(map[string]any{"method": r.Method, "body": body})
		case "/png":
			w.Header().Set("Content-Type", "image/png")
			w.Write([]byte{0x89, 'P', 'N', 'G'})
		case "/missing":
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"page out of range"}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte("boom"))
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx := context.Background()

	t.Run("json round trip", func(t *testing.T) {
		var resp struct {
			Method string         `json:"method"`
			Body   map[string]any `json:"body"`
		}
		require.NoError(t, client.Put(ctx, "/echo", map[string]int{"page": 3}, &resp))
		assert.Equal(t, http.MethodPut, resp.Method)
		assert.Equal(t, float64(3), resp.Body["page"])

		require.NoError(t, client.Post(ctx, "/echo", nil, &resp))
		assert.Equal(t, http.MethodPost, resp.Method)
	})

	t.Run("raw body", func(t *testing.T) {
		data, contentType, err := client.GetRaw(ctx, "/png")
		require.NoError(t, err)
		assert.Equal(t, "image/png", contentType)
		assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, data)
	})

	t.Run("error responses", func(t *testing.T) {
		err := client.Get(ctx, "/missing", nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server error (404): page out of range")

		_, _, err = client.GetRaw(ctx, "/other")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "server error (500): boom")
	})
}

func TestOutput(t *testing.T) {
	data := map[string]int{"cursor": 4}

	var buf bytes.Buffer
	require.NoError(t, OutputTo(&buf, OutputFormatJSON, data))
	assert.JSONEq(t, `{"cursor":4}`, buf.String())

	buf.Reset()
	require.NoError(t, OutputTo(&buf, OutputFormatYAML, data))
	assert.Equal(t, "cursor: 4\n", buf.String())

	assert.Error(t, OutputTo(&buf, "xml", data))

	SetOutputFormat("json")
	assert.Equal(t, OutputFormatJSON, GetOutputFormat())
	SetOutputFormat("bogus")
	assert.Equal(t, DefaultOutput, GetOutputFormat())
}

func TestOutputToFile(t *testing.T) {
	dir := t.TempDir()
	data := map[string]string{"title": "Leaf API"}

	jsonPath := filepath.Join(dir, "spec.json")
	require.NoError(t, OutputToFile(data, jsonPath))
	raw, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{"title":"Leaf API"}`, string(raw))

	yamlPath := filepath.Join(dir, "spec.yaml")
	require.NoError(t, OutputToFile(data, yamlPath))
	raw, err = os.ReadFile(yamlPath)
	require.NoError(t, err)
	var got map[string]string
	require.NoError(t, yaml.Unmarshal(raw, &got))
	assert.Equal(t, data, got)
}
