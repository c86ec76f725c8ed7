package config

import (
	"errors"
	"fmt"
	"unicode"
)

// ErrInvalidKey is returned when a config key contains invalid characters.
var ErrInvalidKey = errors.New("invalid config key")

// ErrNoDefault is returned when no default value exists for a config key.
var ErrNoDefault = errors.New("no default exists")

// Entry is a single configuration key with its default value.
type Entry struct {
	Key         string `json:"key" yaml:"key"`
	Value       any    `json:"value" yaml:"value"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// DefaultEntries returns every configuration key with its default value.
// The manager seeds viper from this list so each key can be overridden
// from the environment.
func DefaultEntries() []Entry {
	d := DefaultConfig()
	return []Entry{
		// Viewport
		{Key: "viewport.width", Value: d.Viewport.Width, Description: "Viewport width in device pixels"},
		{Key: "viewport.height", Value: d.Viewport.Height, Description: "Viewport height in device pixels"},

		// Layout
		{Key: "layout.single_page", Value: d.Layout.SinglePage, Description: "Fit each page into one screen instead of scrolling"},
		{Key: "layout.zoom", Value: d.Layout.Zoom, Description: "Continuous mode zoom; above 1 tiles pages into columns"},

		// Cache
		{Key: "cache.max_entries", Value: d.Cache.MaxEntries, Description: "Rendered screens kept in memory"},

		// Render
		{Key: "render.workers", Value: d.Render.Workers, Description: "Concurrent render workers"},
		{Key: "render.queue_size", Value: d.Render.QueueSize, Description: "Maximum outstanding render tasks"},
		{Key: "render.look_ahead", Value: d.Render.LookAhead, Description: "Screens prefetched on each side of the cursor (-1 disables)"},
		{Key: "render.max_retries", Value: d.Render.MaxRetries, Description: "Retries for transient source failures"},
		{Key: "render.retry_delay_ms", Value: d.Render.RetryDelayMS, Description: "Delay between render retries in milliseconds"},

		// Source
		{Key: "source.type", Value: d.Source.Type, Description: "Document source: auto, pdf, images or pattern"},
		{Key: "source.pdftoppm", Value: d.Source.Pdftoppm, Description: "Rasterizer binary for PDF sources"},
		{Key: "source.decoded_pages", Value: d.Source.DecodedPages, Description: "Decoded pages memoized by image directory sources"},
		{Key: "source.pattern_pages", Value: d.Source.PatternPages, Description: "Page count of the synthetic pattern source"},
		{Key: "source.pattern_width", Value: d.Source.PatternWidth, Description: "Page width of the synthetic pattern source"},
		{Key: "source.pattern_height", Value: d.Source.PatternHeight, Description: "Page height of the synthetic pattern source"},

		// Server
		{Key: "server.host", Value: d.Server.Host, Description: "Host for leaf serve"},
		{Key: "server.port", Value: d.Server.Port, Description: "Port for leaf serve"},

		// Log
		{Key: "log.level", Value: d.Log.Level, Description: "Log level: debug, info, warn or error"},
	}
}

// GetDefault returns the default entry for key, or nil if none exists.
func GetDefault(key string) *Entry {
	for _, e := range DefaultEntries() {
		if e.Key == key {
			return &e
		}
	}
	return nil
}

// ValidateKey checks if a config key contains only allowed characters.
// Valid keys contain: letters, digits, dots, underscores, and hyphens.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	for i, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.' && r != '_' && r != '-' {
			return fmt.Errorf("%w: invalid character %q at position %d", ErrInvalidKey, r, i)
		}
	}
	if key[0] == '.' || key[len(key)-1] == '.' {
		return fmt.Errorf("%w: key cannot start or end with a dot", ErrInvalidKey)
	}
	return nil
}
