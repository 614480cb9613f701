// Package settings loads cpfsolver configuration from .cpfsolver/settings.yaml.
//
// Every field is optional; command-line flags override the file.
//
//	strict: true     # reject characters after the CPF
//	workers: 4       # goroutines used to search body holes
//	format: yaml     # report format: text or yaml
package settings

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Settings holds cpfsolver configuration.
type Settings struct {
	Strict  *bool  `yaml:"strict"`
	Workers int    `yaml:"workers"`
	Format  string `yaml:"format"`
}

// DefaultPath returns .cpfsolver/settings.yaml relative to root.
func DefaultPath(root string) string {
	return filepath.Join(root, ".cpfsolver", "settings.yaml")
}

// Load reads the settings file at DefaultPath(root).
// Returns nil (not an error) if the file does not exist.
func Load(root string) (*Settings, error) {
	s, err := LoadFile(DefaultPath(root))
	if os.IsNotExist(err) {
		return nil, nil
	}
	return s, err
}

// LoadFile reads an explicit settings file. A missing file is an error.
func LoadFile(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	var s Settings
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal %s: %w", path, err)
	}
	if s.Workers < 0 {
		return nil, fmt.Errorf("%s: workers must not be negative, got %d", path, s.Workers)
	}
	return &s, nil
}

// StrictOr returns the configured strict mode, or def when unset.
// Safe to call on a nil *Settings receiver.
func (s *Settings) StrictOr(def bool) bool {
	if s == nil || s.Strict == nil {
		return def
	}
	return *s.Strict
}

// WorkersOr returns the configured worker count, or def when unset.
func (s *Settings) WorkersOr(def int) int {
	if s == nil || s.Workers == 0 {
		return def
	}
	return s.Workers
}

// FormatOr returns the configured report format, or def when unset.
func (s *Settings) FormatOr(def string) string {
	if s == nil || s.Format == "" {
		return def
	}
	return s.Format
}
