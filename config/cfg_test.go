package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/rupor-github/gencfg"

	"trr/common"
)

func TestLoadConfiguration_NoFile(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() with empty path error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}

	if cfg.Version != 1 {
		t.Errorf("Default config version = %d, want 1", cfg.Version)
	}
	if cfg.Export.MaxSegmentHeight != 3333 {
		t.Errorf("Default max segment height = %d, want 3333", cfg.Export.MaxSegmentHeight)
	}
	if cfg.Export.Pause != 100*time.Millisecond {
		t.Errorf("Default pause = %v, want 100ms", cfg.Export.Pause)
	}
	if cfg.Report.RankThreshold != 10 {
		t.Errorf("Default rank threshold = %d, want 10", cfg.Report.RankThreshold)
	}
	if !cfg.Report.ShowNewSection {
		t.Error("Expected new section to be shown by default")
	}
	if cfg.Report.Labels.UpdateNoticeTmpl == "" || cfg.Report.Labels.Title == "" {
		t.Error("Expected default labels to be set")
	}
}

func TestLoadConfiguration_WithFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `version: 1
report:
  mode: incremental
  display_mode: platform
  region_order: [rss, hotlist]
  show_new_section: false
  rank_threshold: 20
export:
  segmented: false
  max_segment_height: 2000
  scale: 2
  pause: 250ms
  format: jpeg
  jpeg_quality_level: 85
logging:
  console:
    level: normal
  quiet: [layout, css-parser]
  file:
    level: debug
    destination: ` + filepath.Join(tmpDir, "test.log") + `
    mode: append
reporting:
  destination: ` + filepath.Join(tmpDir, "test-report.zip") + `
`

	if err := os.WriteFile(configPath, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	cfg, err := LoadConfiguration(configPath)
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}

	if cfg.Report.Mode != common.ReportModeIncremental {
		t.Errorf("Mode = %v, want incremental", cfg.Report.Mode)
	}
	if cfg.Report.DisplayMode != common.DisplayModePlatform {
		t.Errorf("DisplayMode = %v, want platform", cfg.Report.DisplayMode)
	}
	if cfg.Report.ShowNewSection {
		t.Error("Expected ShowNewSection to be false")
	}
	if cfg.Report.RankThreshold != 20 {
		t.Errorf("RankThreshold = %d, want 20", cfg.Report.RankThreshold)
	}
	if cfg.Export.Segmented {
		t.Error("Expected Segmented to be false")
	}
	if cfg.Export.MaxSegmentHeight != 2000 {
		t.Errorf("MaxSegmentHeight = %d, want 2000", cfg.Export.MaxSegmentHeight)
	}
	if cfg.Export.Scale != 2 {
		t.Errorf("Scale = %f, want 2", cfg.Export.Scale)
	}
	if cfg.Export.Pause != 250*time.Millisecond {
		t.Errorf("Pause = %v, want 250ms", cfg.Export.Pause)
	}
	if cfg.Export.Format != common.ExportFormatJpeg {
		t.Errorf("Format = %v, want jpeg", cfg.Export.Format)
	}
	if !slices.Equal(cfg.Logging.Quiet, []string{"layout", "css-parser"}) {
		t.Errorf("Quiet = %v, want [layout css-parser]", cfg.Logging.Quiet)
	}
	// values not present in file must keep defaults
	if cfg.Export.Width != 600 {
		t.Errorf("Width = %d, want default 600", cfg.Export.Width)
	}
	if cfg.Report.Labels.Title == "" {
		t.Error("Expected default title label to survive partial configuration")
	}
}

func TestLoadConfiguration_NonExistentFile(t *testing.T) {
	_, err := LoadConfiguration("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadConfiguration_InvalidYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `version: 1
report:
  mode: daily
  invalid indent
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for invalid YAML")
	}
}

func TestLoadConfiguration_UnknownFields(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "unknown.yaml")

	configWithUnknown := `version: 1
unknown_field: value
report:
  mode: daily
`

	if err := os.WriteFile(configPath, []byte(configWithUnknown), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}

	_, err := LoadConfiguration(configPath)
	if err == nil {
		t.Error("Expected error for unknown fields")
	}
}

func TestLoadConfiguration_ValidationError(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"version", "version: 2\n"},
		{"segment height", "version: 1\nexport:\n  max_segment_height: 10\n"},
		{"scale", "version: 1\nexport:\n  scale: 0\n"},
		{"jpeg quality", "version: 1\nexport:\n  jpeg_quality_level: 10\n"},
		{"rank threshold", "version: 1\nreport:\n  rank_threshold: 0\n"},
		{"unknown mode", "version: 1\nreport:\n  mode: weekly\n"},
		{"unknown quiet component", "version: 1\nlogging:\n  quiet: [layout, kfx]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			configPath := filepath.Join(t.TempDir(), "invalid_values.yaml")
			if err := os.WriteFile(configPath, []byte(tt.content), 0644); err != nil {
				t.Fatalf("Failed to write config file: %v", err)
			}
			if _, err := LoadConfiguration(configPath); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestLoadConfiguration_WithOptions(t *testing.T) {
	option := func(opts *gencfg.ProcessingOptions) {
		// Options are opaque, just test that we can pass them
	}

	cfg, err := LoadConfiguration("", option)
	if err != nil {
		t.Fatalf("LoadConfiguration() with options error = %v", err)
	}

	if cfg == nil {
		t.Fatal("LoadConfiguration() returned nil config")
	}
}

func TestPrepare(t *testing.T) {
	data, err := Prepare()
	if err != nil {
		t.Fatalf("Prepare() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Prepare() returned empty data")
	}

	// Verify it's valid YAML by trying to unmarshal
	cfg := &Config{}
	_, err = unmarshalConfig(data, cfg, true)
	if err != nil {
		t.Errorf("Prepared config is not valid: %v", err)
	}
}

func TestDump(t *testing.T) {
	cfg, err := LoadConfiguration("")
	if err != nil {
		t.Fatalf("LoadConfiguration() error = %v", err)
	}
	cfg.Report.Mode = common.ReportModeCurrent
	cfg.Export.Pause = 300 * time.Millisecond

	data, err := Dump(cfg)
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	if len(data) == 0 {
		t.Error("Dump() returned empty data")
	}

	// Verify we can load it back
	cfg2 := &Config{}
	_, err = unmarshalConfig(data, cfg2, false)
	if err != nil {
		t.Fatalf("Dumped config cannot be loaded: %v", err)
	}

	if cfg2.Version != cfg.Version {
		t.Errorf("Version mismatch after dump/load: got %d, want %d", cfg2.Version, cfg.Version)
	}
	if cfg2.Report.Mode != common.ReportModeCurrent {
		t.Errorf("Mode mismatch after dump/load: got %v", cfg2.Report.Mode)
	}
	if cfg2.Export.Pause != cfg.Export.Pause {
		t.Errorf("Pause mismatch after dump/load: got %v, want %v", cfg2.Export.Pause, cfg.Export.Pause)
	}
}

func TestUnmarshalConfig(t *testing.T) {
	t.Run("valid config without processing", func(t *testing.T) {
		data := []byte(`version: 1`)
		cfg := &Config{}

		result, err := unmarshalConfig(data, cfg, false)
		if err != nil {
			t.Errorf("unmarshalConfig() error = %v", err)
		}

		if result == nil {
			t.Fatal("unmarshalConfig() returned nil")
		}

		if result.Version != 1 {
			t.Errorf("Version = %d, want 1", result.Version)
		}
	})

	t.Run("invalid yaml", func(t *testing.T) {
		data := []byte(`invalid: [yaml`)
		cfg := &Config{}

		_, err := unmarshalConfig(data, cfg, false)
		if err == nil {
			t.Error("Expected error for invalid YAML")
		}
	})
}

func TestReportConfig_RegionOrder(t *testing.T) {
	tests := []struct {
		name        string
		in          []string
		wantOrder   []common.RegionKind
		wantUnknown []string
	}{
		{
			name:      "empty uses default",
			in:        nil,
			wantOrder: common.DefaultRegionOrder(),
		},
		{
			name:      "custom",
			in:        []string{"ai_analysis", "hotlist"},
			wantOrder: []common.RegionKind{common.RegionKindAiAnalysis, common.RegionKindHotlist},
		},
		{
			name:        "unknown ignored",
			in:          []string{"weather", "rss"},
			wantOrder:   []common.RegionKind{common.RegionKindRss},
			wantUnknown: []string{"weather"},
		},
		{
			name:      "duplicates dropped",
			in:        []string{"rss", "new_items", "rss"},
			wantOrder: []common.RegionKind{common.RegionKindRss, common.RegionKindNewItems},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conf := &ReportConfig{RegionNames: tt.in}
			order, unknown := conf.RegionOrder()
			if !slices.Equal(order, tt.wantOrder) {
				t.Errorf("order = %v, want %v", order, tt.wantOrder)
			}
			if !slices.Equal(unknown, tt.wantUnknown) {
				t.Errorf("unknown = %v, want %v", unknown, tt.wantUnknown)
			}
		})
	}
}
