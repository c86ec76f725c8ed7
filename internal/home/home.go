package home

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	// DefaultDirName is the default name for the leaf home directory.
	DefaultDirName = ".leaf"

	// ExportsDirName is the subdirectory for rendered screen exports.
	ExportsDirName = "exports"

	// PositionsDirName is the subdirectory for saved reading positions.
	PositionsDirName = "positions"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"
)

// Dir represents the leaf home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.leaf).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, dir := range []string{d.ExportsDir(), d.PositionsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}

// DocumentKey derives a filesystem-safe name from a document path.
func DocumentKey(docPath string) string {
	base := filepath.Base(filepath.Clean(docPath))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	key := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_' {
			return r
		}
		return '_'
	}, base)
	if key == "" || key == "_" {
		return "document"
	}
	return key
}

// ExportsDir returns the directory for rendered screen exports.
func (d *Dir) ExportsDir() string {
	return filepath.Join(d.path, ExportsDirName)
}

// DocumentExportDir returns the export directory for one document.
func (d *Dir) DocumentExportDir(docKey string) string {
	return filepath.Join(d.ExportsDir(), docKey)
}

// ScreenImagePath returns the path of an exported screen.
// Screen indexes are 0-indexed, matching the layout cursor.
func (d *Dir) ScreenImagePath(docKey string, cursor int) string {
	return filepath.Join(d.DocumentExportDir(docKey), fmt.Sprintf("screen_%04d.png", cursor))
}

// EnsureDocumentExportDir creates the export directory for a document.
func (d *Dir) EnsureDocumentExportDir(docKey string) error {
	return os.MkdirAll(d.DocumentExportDir(docKey), 0o755)
}

// PositionsDir returns the directory for saved reading positions.
func (d *Dir) PositionsDir() string {
	return filepath.Join(d.path, PositionsDirName)
}

// PositionPath returns the saved position file for a document.
func (d *Dir) PositionPath(docKey string) string {
	return filepath.Join(d.PositionsDir(), docKey+".json")
}

// Position is a saved reading position. Cursor is only meaningful under
// the same layout, so Page is used when the layout differs.
type Position struct {
	Page       int  `json:"page"`
	Cursor     int  `json:"cursor"`
	Screens    int  `json:"screens"`
	SinglePage bool `json:"single_page"`
}

// SavePosition writes the reading position for a document.
func (d *Dir) SavePosition(docKey string, pos Position) error {
	if err := os.MkdirAll(d.PositionsDir(), 0o755); err != nil {
		return fmt.Errorf("failed to create positions directory: %w", err)
	}
	data, err := json.MarshalIndent(pos, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode position: %w", err)
	}
	return os.WriteFile(d.PositionPath(docKey), data, 0o644)
}

// LoadPosition reads the saved position for a document. ok is false when
// none has been saved.
func (d *Dir) LoadPosition(docKey string) (pos Position, ok bool, err error) {
	data, err := os.ReadFile(d.PositionPath(docKey))
	if errors.Is(err, os.ErrNotExist) {
		return Position{}, false, nil
	}
	if err != nil {
		return Position{}, false, fmt.Errorf("failed to read position: %w", err)
	}
	if err := json.Unmarshal(data, &pos); err != nil {
		return Position{}, false, fmt.Errorf("failed to decode position: %w", err)
	}
	return pos, true, nil
}
