package config

import (
	"os"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanFileName(t *testing.T) {
	sep := string(os.PathSeparator)
	tests := []struct {
		name, in, want string
	}{
		{"plain", "TrendRadar_20260304_0506", "TrendRadar_20260304_0506"},
		{"unicode kept", "热点新闻 report", "热点新闻 report"},
		{"separator dropped", "a" + sep + "b", "ab"},
		{"parent dir", "..", "_bad_file_name_"},
		{"leading dots", "...hidden", "hidden"},
		{"trailing dots and spaces", "report. . ", "report"},
		{"control characters", "re\x00po\trt\n", "report"},
		{"empty", "", "_bad_file_name_"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanFileName(tt.in); got != tt.want {
				t.Errorf("CleanFileName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanFileName_Long(t *testing.T) {
	in := strings.Repeat("新", MaxFileNameLength)
	got := CleanFileName(in)
	if len(got) > MaxFileNameLength {
		t.Errorf("len = %d, want at most %d", len(got), MaxFileNameLength)
	}
	if !utf8.ValidString(got) {
		t.Errorf("result is not valid UTF-8: %q", got)
	}
	if len(got) < MaxFileNameLength-utf8.UTFMax {
		t.Errorf("cut too much: len = %d", len(got))
	}
}
