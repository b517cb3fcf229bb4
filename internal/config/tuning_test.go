package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestGetterDefaults(t *testing.T) {
	cfg := EmptyTuningConfig()

	if cfg.GetMaxRangeMeters() != 100.0 {
		t.Errorf("GetMaxRangeMeters() = %f, want 100.0", cfg.GetMaxRangeMeters())
	}
	if cfg.GetBoundaryDistMinMeters() != 0.6 {
		t.Errorf("GetBoundaryDistMinMeters() = %f, want 0.6", cfg.GetBoundaryDistMinMeters())
	}
	if cfg.GetSerialPort() != "/dev/ttyUSB0" {
		t.Errorf("GetSerialPort() = %q, want /dev/ttyUSB0", cfg.GetSerialPort())
	}
	if cfg.GetSerialBaud() != 115200 {
		t.Errorf("GetSerialBaud() = %d, want 115200", cfg.GetSerialBaud())
	}
	if cfg.GetSampleTimeout() != 500*time.Millisecond {
		t.Errorf("GetSampleTimeout() = %v, want 500ms", cfg.GetSampleTimeout())
	}
	if cfg.GetSnapshotInterval() != time.Second {
		t.Errorf("GetSnapshotInterval() = %v, want 1s", cfg.GetSnapshotInterval())
	}
}

func TestLoadTuningConfig(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "test_config.json")

	testJSON := `{
  "max_range_meters": 50,
  "boundary_dist_min_meters": 1.2,
  "serial_port": "/dev/ttyAMA0",
  "serial_baud": 921600,
  "sample_timeout": "250ms",
  "snapshot_interval": "2s",
  "sectors": [
    {"middle_deg": 0, "width_deg": 45},
    {"middle_deg": 45, "width_deg": 45}
  ],
  "ignore_zones": [
    {"angle_deg": 180, "width_deg": 30}
  ]
}`
	if err := os.WriteFile(configPath, []byte(testJSON), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("LoadTuningConfig failed: %v", err)
	}

	if cfg.GetMaxRangeMeters() != 50 {
		t.Errorf("GetMaxRangeMeters() = %f, want 50", cfg.GetMaxRangeMeters())
	}
	if cfg.GetBoundaryDistMinMeters() != 1.2 {
		t.Errorf("GetBoundaryDistMinMeters() = %f, want 1.2", cfg.GetBoundaryDistMinMeters())
	}
	if cfg.GetSerialPort() != "/dev/ttyAMA0" {
		t.Errorf("GetSerialPort() = %q, want /dev/ttyAMA0", cfg.GetSerialPort())
	}
	if cfg.GetSerialBaud() != 921600 {
		t.Errorf("GetSerialBaud() = %d, want 921600", cfg.GetSerialBaud())
	}
	if cfg.GetSampleTimeout() != 250*time.Millisecond {
		t.Errorf("GetSampleTimeout() = %v, want 250ms", cfg.GetSampleTimeout())
	}
	if cfg.GetSnapshotInterval() != 2*time.Second {
		t.Errorf("GetSnapshotInterval() = %v, want 2s", cfg.GetSnapshotInterval())
	}
	if len(cfg.Sectors) != 2 || cfg.Sectors[1].MiddleDeg != 45 {
		t.Errorf("Sectors = %+v, want two sectors with second middle 45", cfg.Sectors)
	}
	if len(cfg.IgnoreZones) != 1 || cfg.IgnoreZones[0].AngleDeg != 180 {
		t.Errorf("IgnoreZones = %+v, want one zone at 180", cfg.IgnoreZones)
	}
}

func TestLoadTuningConfigPartial(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "partial.json")

	if err := os.WriteFile(configPath, []byte(`{"max_range_meters": 25}`), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := LoadTuningConfig(configPath)
	if err != nil {
		t.Fatalf("LoadTuningConfig failed: %v", err)
	}

	if cfg.GetMaxRangeMeters() != 25 {
		t.Errorf("GetMaxRangeMeters() = %f, want 25", cfg.GetMaxRangeMeters())
	}
	// Unset fields fall back to defaults.
	if cfg.GetSerialBaud() != 115200 {
		t.Errorf("GetSerialBaud() = %d, want default 115200", cfg.GetSerialBaud())
	}
}

func TestLoadTuningConfigErrors(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("rejects non-json extension", func(t *testing.T) {
		path := filepath.Join(tmpDir, "config.yaml")
		os.WriteFile(path, []byte(`{}`), 0644)
		if _, err := LoadTuningConfig(path); err == nil {
			t.Error("expected error for non-.json extension")
		}
	})

	t.Run("rejects missing file", func(t *testing.T) {
		if _, err := LoadTuningConfig(filepath.Join(tmpDir, "missing.json")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		path := filepath.Join(tmpDir, "bad.json")
		os.WriteFile(path, []byte(`{not json`), 0644)
		if _, err := LoadTuningConfig(path); err == nil {
			t.Error("expected error for malformed JSON")
		}
	})

	t.Run("rejects invalid values", func(t *testing.T) {
		tests := []struct {
			name string
			json string
		}{
			{"negative max range", `{"max_range_meters": -1}`},
			{"negative boundary min", `{"boundary_dist_min_meters": -0.5}`},
			{"zero-width sector", `{"sectors": [{"middle_deg": 0, "width_deg": 0}]}`},
			{"sector middle out of range", `{"sectors": [{"middle_deg": 400, "width_deg": 45}]}`},
			{"ignore zone angle out of range", `{"ignore_zones": [{"angle_deg": 400, "width_deg": 10}]}`},
			{"bad sample timeout", `{"sample_timeout": "fast"}`},
			{"bad snapshot interval", `{"snapshot_interval": "often"}`},
			{"negative baud", `{"serial_baud": -9600}`},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				path := filepath.Join(tmpDir, "invalid.json")
				os.WriteFile(path, []byte(tt.json), 0644)
				if _, err := LoadTuningConfig(path); err == nil {
					t.Errorf("expected validation error for %s", tt.name)
				}
			})
		}
	})
}
