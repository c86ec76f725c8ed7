// Package svcctx provides service context for dependency injection via context.
// This package is separate from server to avoid import cycles with endpoints.
package svcctx

import (
	"context"
	"log/slog"

	"github.com/jackzampolin/leaf/internal/config"
	"github.com/jackzampolin/leaf/internal/home"
	"github.com/jackzampolin/leaf/internal/metrics"
	"github.com/jackzampolin/leaf/internal/navigation"
)

// Document identifies the open document.
type Document struct {
	Path string `json:"path"`
	Key  string `json:"key"`
}

// Services holds all core services that flow through context.
// Components extract what they need via the individual extractors.
type Services struct {
	Controller    *navigation.Controller
	ConfigManager *config.Manager
	Metrics       *metrics.Recorder
	Logger        *slog.Logger
	Home          *home.Dir
	Document      Document
}

type servicesKey struct{}

// WithServices returns a new context with services attached.
func WithServices(ctx context.Context, s *Services) context.Context {
	return context.WithValue(ctx, servicesKey{}, s)
}

// ServicesFrom extracts the full Services struct from context.
// Returns nil if not present.
func ServicesFrom(ctx context.Context) *Services {
	s, _ := ctx.Value(servicesKey{}).(*Services)
	return s
}

// ControllerFrom extracts the navigation controller from context.
func ControllerFrom(ctx context.Context) *navigation.Controller {
	if s := ServicesFrom(ctx); s != nil {
		return s.Controller
	}
	return nil
}

// ConfigManagerFrom extracts the config manager from context.
func ConfigManagerFrom(ctx context.Context) *config.Manager {
	if s := ServicesFrom(ctx); s != nil {
		return s.ConfigManager
	}
	return nil
}

// MetricsFrom extracts the render metrics recorder from context.
func MetricsFrom(ctx context.Context) *metrics.Recorder {
	if s := ServicesFrom(ctx); s != nil {
		return s.Metrics
	}
	return nil
}

// LoggerFrom extracts the logger from context, falling back to
// slog.Default.
func LoggerFrom(ctx context.Context) *slog.Logger {
	if s := ServicesFrom(ctx); s != nil && s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// HomeFrom extracts the home directory from context.
func HomeFrom(ctx context.Context) *home.Dir {
	if s := ServicesFrom(ctx); s != nil {
		return s.Home
	}
	return nil
}

// DocumentFrom extracts the open document from context.
func DocumentFrom(ctx context.Context) Document {
	if s := ServicesFrom(ctx); s != nil {
		return s.Document
	}
	return Document{}
}
