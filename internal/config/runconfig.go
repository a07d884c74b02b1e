// Package config loads run defaults for the decomposition CLI from a JSON
// file. All fields are pointers so a partial config only overrides what it
// names; the Get* accessors supply built-in defaults for the rest.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// RunConfig represents the root configuration for a decomposition run. The
// schema mirrors the CLI flags so the same JSON can seed defaults that
// individual flags still override.
type RunConfig struct {
	// Azimuth is the assumed horizontal-motion direction, degrees clockwise.
	Azimuth *float64 `json:"azimuth,omitempty"`

	// Output paths for the vertical and horizontal component rasters.
	VerticalOut   *string `json:"vertical_out,omitempty"`
	HorizontalOut *string `json:"horizontal_out,omitempty"`

	// Preview enables PNG quicklook rendering next to each output.
	Preview *bool `json:"preview,omitempty"`

	// HistoryDB is the sqlite run-history database path; empty disables
	// history recording.
	HistoryDB *string `json:"history_db,omitempty"`

	// Quiet suppresses progress logging.
	Quiet *bool `json:"quiet,omitempty"`
}

// EmptyRunConfig returns a RunConfig with all fields unset.
func EmptyRunConfig() *RunConfig {
	return &RunConfig{}
}

// LoadRunConfig loads a RunConfig from a JSON file. The file must have a
// .json extension and stay under the max file size. Fields omitted from the
// JSON keep their built-in defaults, so partial configs are safe.
func LoadRunConfig(path string) (*RunConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyRunConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *RunConfig) Validate() error {
	if c.Azimuth != nil {
		if *c.Azimuth < -360 || *c.Azimuth >= 360 {
			return fmt.Errorf("azimuth must be in [-360, 360), got %f", *c.Azimuth)
		}
	}
	if c.VerticalOut != nil && *c.VerticalOut == "" {
		return fmt.Errorf("vertical_out must not be empty")
	}
	if c.HorizontalOut != nil && *c.HorizontalOut == "" {
		return fmt.Errorf("horizontal_out must not be empty")
	}
	return nil
}

// GetAzimuth returns the azimuth value or the default (90 = pure east-west
// motion assumption).
func (c *RunConfig) GetAzimuth() float64 {
	if c.Azimuth == nil {
		return 90.0 // default
	}
	return *c.Azimuth
}

// GetVerticalOut returns the vertical output path or the default.
func (c *RunConfig) GetVerticalOut() string {
	if c.VerticalOut == nil || *c.VerticalOut == "" {
		return "up.dgr" // default
	}
	return *c.VerticalOut
}

// GetHorizontalOut returns the horizontal output path or the default.
func (c *RunConfig) GetHorizontalOut() string {
	if c.HorizontalOut == nil || *c.HorizontalOut == "" {
		return "hz.dgr" // default
	}
	return *c.HorizontalOut
}

// GetPreview returns the preview value or the default.
func (c *RunConfig) GetPreview() bool {
	if c.Preview == nil {
		return false // default: no quicklooks
	}
	return *c.Preview
}

// GetHistoryDB returns the history database path or "" when disabled.
func (c *RunConfig) GetHistoryDB() string {
	if c.HistoryDB == nil {
		return ""
	}
	return *c.HistoryDB
}

// GetQuiet returns the quiet value or the default.
func (c *RunConfig) GetQuiet() bool {
	if c.Quiet == nil {
		return false
	}
	return *c.Quiet
}
