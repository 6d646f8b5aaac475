package convert

import (
	"path/filepath"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"trr/config"
	"trr/state"
)

func setupTestEnvForOutputPath(t *testing.T, noDirs bool, transliterate bool, template string) *state.LocalEnv {
	t.Helper()
	logger := zaptest.NewLogger(t, zaptest.WrapOptions(zap.AddCaller(), zap.AddCallerSkip(1)))
	cfg, err := config.LoadConfiguration("")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Report.NameTransliterate = transliterate
	cfg.Report.OutputNameTemplate = template

	return &state.LocalEnv{
		Log:    logger,
		Cfg:    cfg,
		NoDirs: noDirs,
		Now:    func() time.Time { return testClock },
	}
}

func TestBuildOutputPath(t *testing.T) {
	dst := filepath.FromSlash("/out")
	src := filepath.FromSlash("2026/march/trends.json")

	tests := []struct {
		name          string
		noDirs        bool
		transliterate bool
		template      string
		want          string
	}{
		{"source name keeps dirs", false, false, "", "/out/2026/march/trends"},
		{"source name no dirs", true, false, "", "/out/trends"},
		{"template", true, false, "TrendRadar_{{ .Date }}_{{ .Time }}", "/out/TrendRadar_20260304_0506"},
		{"template with subdirs", true, false, "{{ .Mode }}/{{ .Date }}", "/out/daily/20260304"},
		{"template under source dirs", false, false, "{{ .Date }}", "/out/2026/march/20260304"},
		{"transliterate", true, true, "{{ .Title }}", "/out/trending-news-report"},
		{"broken template falls back", true, false, "{{ .Nope }}", "/out/trends"},
		{"escaping segments are cleaned", true, false, "../{{ .Date }}", "/out/_bad_file_name_/20260304"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := setupTestEnvForOutputPath(t, tt.noDirs, tt.transliterate, tt.template)
			got := buildOutputPath(testValues(), src, dst, env)
			if want := filepath.FromSlash(tt.want); got != want {
				t.Errorf("buildOutputPath() = %q, want %q", got, want)
			}
		})
	}
}

func TestSplitAndCleanPath(t *testing.T) {
	tests := []struct {
		path string
		want []string
	}{
		{"file", []string{"file"}},
		{filepath.Join("a", "b", "file"), []string{"a", "b", "file"}},
		{filepath.Join("a", "file") + string(filepath.Separator), []string{"a", "file"}},
		{"", nil},
	}
	for _, tt := range tests {
		got := splitAndCleanPath(tt.path)
		if len(got) != len(tt.want) {
			t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("splitAndCleanPath(%q) = %v, want %v", tt.path, got, tt.want)
				break
			}
		}
	}
}
