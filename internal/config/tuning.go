package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// DefaultConfigPath is the path to the canonical tuning defaults file.
// This is the single source of truth for all default tuning values.
const DefaultConfigPath = "config/proximity.defaults.json"

// SectorConfig describes one angular sector of the distance model.
type SectorConfig struct {
	MiddleDeg float64 `json:"middle_deg"`
	WidthDeg  float64 `json:"width_deg"`
}

// IgnoreZoneConfig describes one angular window excluded from obstacle
// consideration, e.g. a mounting strut occluding the sensor.
type IgnoreZoneConfig struct {
	AngleDeg uint16 `json:"angle_deg"`
	WidthDeg uint8  `json:"width_deg"`
}

// TuningConfig represents the root configuration for the proximity
// daemon. Pointer fields distinguish "not set" from a zero value, so
// partial configs are safe: the Get* methods supply defaults for any
// field omitted from the JSON.
type TuningConfig struct {
	// Distance model params
	MaxRangeMeters        *float64           `json:"max_range_meters,omitempty"`
	BoundaryDistMinMeters *float64           `json:"boundary_dist_min_meters,omitempty"`
	Sectors               []SectorConfig     `json:"sectors,omitempty"`
	IgnoreZones           []IgnoreZoneConfig `json:"ignore_zones,omitempty"`

	// Scanner params
	SerialPort    *string `json:"serial_port,omitempty"`
	SerialBaud    *int    `json:"serial_baud,omitempty"`
	SampleTimeout *string `json:"sample_timeout,omitempty"` // duration string like "500ms"

	// Recorder params
	SnapshotInterval *string `json:"snapshot_interval,omitempty"` // duration string like "1s"
}

// EmptyTuningConfig returns a TuningConfig with all fields set to nil.
// Use LoadTuningConfig to load actual values from the defaults file.
func EmptyTuningConfig() *TuningConfig {
	return &TuningConfig{}
}

// LoadTuningConfig loads a TuningConfig from a JSON file.
// The file is validated to ensure it has a .json extension and is under
// the max file size. Fields omitted from the JSON file retain their
// default values, so partial configs are safe.
func LoadTuningConfig(path string) (*TuningConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	// Check file size for safety (max 1MB)
	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyTuningConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that the configuration values are valid.
func (c *TuningConfig) Validate() error {
	if c.MaxRangeMeters != nil && *c.MaxRangeMeters <= 0 {
		return fmt.Errorf("max_range_meters must be positive, got %f", *c.MaxRangeMeters)
	}

	if c.BoundaryDistMinMeters != nil && *c.BoundaryDistMinMeters < 0 {
		return fmt.Errorf("boundary_dist_min_meters must be non-negative, got %f", *c.BoundaryDistMinMeters)
	}

	for i, s := range c.Sectors {
		if s.WidthDeg <= 0 {
			return fmt.Errorf("sector %d width_deg must be positive, got %f", i, s.WidthDeg)
		}
		if s.MiddleDeg < 0 || s.MiddleDeg >= 360 {
			return fmt.Errorf("sector %d middle_deg must be in [0,360), got %f", i, s.MiddleDeg)
		}
	}

	for i, z := range c.IgnoreZones {
		if z.AngleDeg >= 360 {
			return fmt.Errorf("ignore zone %d angle_deg must be in [0,360), got %d", i, z.AngleDeg)
		}
	}

	if c.SampleTimeout != nil && *c.SampleTimeout != "" {
		if _, err := time.ParseDuration(*c.SampleTimeout); err != nil {
			return fmt.Errorf("invalid sample_timeout '%s': %w", *c.SampleTimeout, err)
		}
	}

	if c.SnapshotInterval != nil && *c.SnapshotInterval != "" {
		if _, err := time.ParseDuration(*c.SnapshotInterval); err != nil {
			return fmt.Errorf("invalid snapshot_interval '%s': %w", *c.SnapshotInterval, err)
		}
	}

	if c.SerialBaud != nil && *c.SerialBaud <= 0 {
		return fmt.Errorf("serial_baud must be positive, got %d", *c.SerialBaud)
	}

	return nil
}

// GetMaxRangeMeters returns the max_range_meters value or the default.
func (c *TuningConfig) GetMaxRangeMeters() float64 {
	if c.MaxRangeMeters == nil {
		return 100.0 // default
	}
	return *c.MaxRangeMeters
}

// GetBoundaryDistMinMeters returns the boundary_dist_min_meters value
// or the default.
func (c *TuningConfig) GetBoundaryDistMinMeters() float64 {
	if c.BoundaryDistMinMeters == nil {
		return 0.6 // default
	}
	return *c.BoundaryDistMinMeters
}

// GetSerialPort returns the serial_port value or the default.
func (c *TuningConfig) GetSerialPort() string {
	if c.SerialPort == nil || *c.SerialPort == "" {
		return "/dev/ttyUSB0" // default
	}
	return *c.SerialPort
}

// GetSerialBaud returns the serial_baud value or the default.
func (c *TuningConfig) GetSerialBaud() int {
	if c.SerialBaud == nil {
		return 115200 // default
	}
	return *c.SerialBaud
}

// GetSampleTimeout parses and returns the SampleTimeout as a
// time.Duration.
func (c *TuningConfig) GetSampleTimeout() time.Duration {
	if c.SampleTimeout == nil || *c.SampleTimeout == "" {
		return 500 * time.Millisecond // default
	}
	d, err := time.ParseDuration(*c.SampleTimeout)
	if err != nil {
		return 500 * time.Millisecond // default on parse error
	}
	return d
}

// GetSnapshotInterval parses and returns the SnapshotInterval as a
// time.Duration.
func (c *TuningConfig) GetSnapshotInterval() time.Duration {
	if c.SnapshotInterval == nil || *c.SnapshotInterval == "" {
		return time.Second // default
	}
	d, err := time.ParseDuration(*c.SnapshotInterval)
	if err != nil {
		return time.Second // default on parse error
	}
	return d
}
