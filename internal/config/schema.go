package config

import "github.com/jackzampolin/leaf/internal/document"

// Config holds leaf configuration.
// Stored at: {home}/config.yaml
type Config struct {
	Viewport ViewportCfg `mapstructure:"viewport" yaml:"viewport" json:"viewport"`
	Layout   LayoutCfg   `mapstructure:"layout" yaml:"layout" json:"layout"`
	Cache    CacheCfg    `mapstructure:"cache" yaml:"cache" json:"cache"`
	Render   RenderCfg   `mapstructure:"render" yaml:"render" json:"render"`
	Source   SourceCfg   `mapstructure:"source" yaml:"source" json:"source"`
	Server   ServerCfg   `mapstructure:"server" yaml:"server" json:"server"`
	Log      LogCfg      `mapstructure:"log" yaml:"log" json:"log"`
}

// ViewportCfg is the host drawing surface in device pixels.
type ViewportCfg struct {
	Width  int `mapstructure:"width" yaml:"width" json:"width"`
	Height int `mapstructure:"height" yaml:"height" json:"height"`
}

// LayoutCfg selects the layout mode.
type LayoutCfg struct {
	SinglePage bool    `mapstructure:"single_page" yaml:"single_page" json:"single_page"`
	Zoom       float64 `mapstructure:"zoom" yaml:"zoom" json:"zoom"` // Continuous mode only
}

// CacheCfg bounds the tile cache.
type CacheCfg struct {
	MaxEntries int `mapstructure:"max_entries" yaml:"max_entries" json:"max_entries"`
}

// RenderCfg configures the render scheduler and prefetch window.
type RenderCfg struct {
	Workers      int `mapstructure:"workers" yaml:"workers" json:"workers"`
	QueueSize    int `mapstructure:"queue_size" yaml:"queue_size" json:"queue_size"`
	LookAhead    int `mapstructure:"look_ahead" yaml:"look_ahead" json:"look_ahead"` // screens each side; -1 disables
	MaxRetries   int `mapstructure:"max_retries" yaml:"max_retries" json:"max_retries"`
	RetryDelayMS int `mapstructure:"retry_delay_ms" yaml:"retry_delay_ms" json:"retry_delay_ms"`
}

// SourceCfg selects how documents are opened.
type SourceCfg struct {
	Type          string `mapstructure:"type" yaml:"type" json:"type"`             // "auto", "pdf", "images", "pattern"
	Pdftoppm      string `mapstructure:"pdftoppm" yaml:"pdftoppm" json:"pdftoppm"` // rasterizer binary
	DecodedPages  int    `mapstructure:"decoded_pages" yaml:"decoded_pages" json:"decoded_pages"`
	PatternPages  int    `mapstructure:"pattern_pages" yaml:"pattern_pages" json:"pattern_pages"`
	PatternWidth  int    `mapstructure:"pattern_width" yaml:"pattern_width" json:"pattern_width"`
	PatternHeight int    `mapstructure:"pattern_height" yaml:"pattern_height" json:"pattern_height"`
}

// ServerCfg is the bind address for leaf serve.
type ServerCfg struct {
	Host string `mapstructure:"host" yaml:"host" json:"host"`
	Port string `mapstructure:"port" yaml:"port" json:"port"`
}

// LogCfg configures logging.
type LogCfg struct {
	Level string `mapstructure:"level" yaml:"level" json:"level"` // debug, info, warn, error
}

// DefaultConfig returns configuration with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Viewport: ViewportCfg{Width: 300, Height: 350},
		Layout:   LayoutCfg{SinglePage: false, Zoom: 1.0},
		Cache:    CacheCfg{MaxEntries: 32},
		Render: RenderCfg{
			Workers:      4,
			QueueSize:    256,
			LookAhead:    2,
			MaxRetries:   3,
			RetryDelayMS: 50,
		},
		Source: SourceCfg{
			Type:          "auto",
			Pdftoppm:      "pdftoppm",
			DecodedPages:  8,
			PatternPages:  30,
			PatternWidth:  663,
			PatternHeight: 886,
		},
		Server: ServerCfg{Host: "127.0.0.1", Port: "8080"},
		Log:    LogCfg{Level: "info"},
	}
}

// SourceOptions maps the source section onto document open options.
func (c *Config) SourceOptions() document.OpenOptions {
	return document.OpenOptions{
		Type:         c.Source.Type,
		Rasterizer:   c.Source.Pdftoppm,
		DecodedPages: c.Source.DecodedPages,
		PatternPages: c.Source.PatternPages,
		PatternSize: document.Size{
			Width:  float64(c.Source.PatternWidth),
			Height: float64(c.Source.PatternHeight),
		},
	}
}
