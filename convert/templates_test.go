package convert

import (
	"strings"
	"testing"
	"time"

	"trr/config"
	"trr/report"
)

func testValues() *Values {
	return &Values{
		Mode:       "daily",
		Date:       "20260304",
		Time:       "0506",
		SourceFile: "trends",
		Title:      "Trending News Report",
		Total:      120,
		Hot:        7,
	}
}

func TestExpandTemplate(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"simple text", "simple-text", "simple-text"},
		{"date and time", "TrendRadar_{{ .Date }}_{{ .Time }}", "TrendRadar_20260304_0506"},
		{"source file", "{{ .SourceFile }}-{{ .Mode }}", "trends-daily"},
		{"counts", "{{ .Hot }}of{{ .Total }}", "7of120"},
		{"context", "{{ .Context }}", string(config.OutputNameTemplateFieldName)},
		{"sprig functions", "{{ .Title | lower | replace \" \" \"_\" }}", "trending_news_report"},
		{"subdirectories", "{{ .Mode }}/{{ .Date }}", "daily/20260304"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expandTemplate(testValues(), config.OutputNameTemplateFieldName, tt.template)
			if err != nil {
				t.Fatalf("expandTemplate() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("expandTemplate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExpandTemplate_Errors(t *testing.T) {
	for _, tmpl := range []string{"{{ .Title", "{{ .NoSuchField }}"} {
		if _, err := expandTemplate(testValues(), config.OutputNameTemplateFieldName, tmpl); err == nil {
			t.Errorf("expandTemplate(%q) expected error", tmpl)
		}
	}
}

func TestBuildValues(t *testing.T) {
	env := setupTestEnvForOutputPath(t, false, false, "")

	t.Run("report timestamp", func(t *testing.T) {
		in := &report.Input{GeneratedAt: "2026-03-04T05:06:00+08:00", TotalTitles: 12}
		v := buildValues(in, "daily/trends.json", env)
		if v.Date != "20260304" || v.Time != "0506" {
			t.Errorf("date/time = %s/%s, want 20260304/0506", v.Date, v.Time)
		}
		if v.SourceFile != "trends" {
			t.Errorf("SourceFile = %q, want trends", v.SourceFile)
		}
		if v.Mode != "daily" || v.Total != 12 {
			t.Errorf("unexpected values %+v", v)
		}
	})

	t.Run("clock fallback", func(t *testing.T) {
		v := buildValues(&report.Input{GeneratedAt: "yesterday"}, "trends.yaml", env)
		if v.Date != "20260102" || v.Time != "1530" {
			t.Errorf("date/time = %s/%s, want clock 20260102/1530", v.Date, v.Time)
		}
		if !strings.HasPrefix(v.Title, "Trending") {
			t.Errorf("Title = %q", v.Title)
		}
	})
}

var testClock = time.Date(2026, 1, 2, 15, 30, 0, 0, time.UTC)
