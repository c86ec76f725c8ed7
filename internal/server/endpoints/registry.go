package endpoints

import (
	"time"

	"github.com/jackzampolin/leaf/internal/api"
)

// Config holds dependencies needed by some endpoints.
type Config struct {
	// RenderTimeout bounds how long navigation calls wait for a frame.
	RenderTimeout time.Duration
	// SwaggerInstance selects the registered swag spec.
	SwaggerInstance string
}

// All returns all endpoint instances.
func All(cfg Config) []api.Endpoint {
	return []api.Endpoint{
		// Health endpoints
		&HealthEndpoint{},
		&ReadyEndpoint{},
		&StatusEndpoint{},

		// Navigation endpoints
		&NextEndpoint{Timeout: cfg.RenderTimeout},
		&PrevEndpoint{Timeout: cfg.RenderTimeout},
		&CurrentEndpoint{Timeout: cfg.RenderTimeout},
		&GotoEndpoint{Timeout: cfg.RenderTimeout},
		&SeekEndpoint{Timeout: cfg.RenderTimeout},
		&ScreenImageEndpoint{Timeout: cfg.RenderTimeout},
		&ExportScreenEndpoint{Timeout: cfg.RenderTimeout},

		// Layout endpoints
		&LayoutEndpoint{},
		&ModeEndpoint{},
		&ViewportEndpoint{},
		&ZoomEndpoint{},

		// Metrics endpoints
		&ListMetricsEndpoint{},
		&MetricsSummaryEndpoint{},

		// Settings endpoints
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},

		// Swagger/OpenAPI endpoints
		&SwaggerEndpoint{InstanceName: cfg.SwaggerInstance},
		&SwaggerUIEndpoint{},

		// Static files (catch-all, must be last)
		&StaticEndpoint{},
	}
}

// NavigateCommands returns endpoints grouped under "leaf api" directly.
func NavigateCommands() []api.Endpoint {
	return []api.Endpoint{
		&NextEndpoint{},
		&PrevEndpoint{},
		&CurrentEndpoint{},
		&GotoEndpoint{},
		&SeekEndpoint{},
		&ScreenImageEndpoint{},
		&ExportScreenEndpoint{},
	}
}

// LayoutCommands returns endpoints for the "layout" subcommand.
func LayoutCommands() []api.Endpoint {
	return []api.Endpoint{
		&LayoutEndpoint{},
		&ModeEndpoint{},
		&ViewportEndpoint{},
		&ZoomEndpoint{},
	}
}

// MetricsCommands returns endpoints for the "metrics" subcommand.
func MetricsCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListMetricsEndpoint{},
		&MetricsSummaryEndpoint{},
	}
}

// SettingsCommands returns endpoints for the "settings" subcommand.
func SettingsCommands() []api.Endpoint {
	return []api.Endpoint{
		&ListSettingsEndpoint{},
		&GetSettingEndpoint{},
	}
}
