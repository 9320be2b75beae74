package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the shiftscan home directory.
	DefaultDirName = ".shiftscan"

	// UserdataDirName is the subdirectory for parse outputs and traces.
	UserdataDirName = "userdata"

	// UploadsDirName is the subdirectory for uploaded schedule images.
	UploadsDirName = "uploads"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// DatabaseFileName is the sqlite database file name.
	DatabaseFileName = "shiftscan.db"
)

// Dir represents the shiftscan home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.shiftscan).
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

// UserdataPath returns the path to the userdata directory.
func (d *Dir) UserdataPath() string {
	return filepath.Join(d.path, UserdataDirName)
}

// UploadsPath returns the path to the uploads directory.
func (d *Dir) UploadsPath() string {
	return filepath.Join(d.path, UploadsDirName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// DatabasePath returns the path to the sqlite database.
func (d *Dir) DatabasePath() string {
	return filepath.Join(d.path, DatabaseFileName)
}

// RawOCRPath returns the path where the raw OCR dump for the most recent
// upload is written.
func (d *Dir) RawOCRPath() string {
	return filepath.Join(d.UserdataPath(), "raw_ocr.txt")
}

// TracePath returns the path where the parse diagnostics trace is written.
func (d *Dir) TracePath() string {
	return filepath.Join(d.UserdataPath(), "parsed_debug.txt")
}

// ExportPath returns the path for an export file (shifts.csv, shifts.json,
// shifts.xlsx).
func (d *Dir) ExportPath(name string) string {
	return filepath.Join(d.UserdataPath(), name)
}

// UploadPath returns the storage path for an uploaded source file.
func (d *Dir) UploadPath(uploadID, ext string) string {
	return filepath.Join(d.UploadsPath(), uploadID+ext)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	for _, p := range []string{d.UserdataPath(), d.UploadsPath()} {
		if err := os.MkdirAll(p, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", p, err)
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
