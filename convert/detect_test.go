package convert

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"
)

func writeZip(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	for name, content := range entries {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file in zip: %v", err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestIsArchiveFile(t *testing.T) {
	dir := t.TempDir()

	zipped := filepath.Join(dir, "reports.bin")
	writeZip(t, zipped, map[string]string{"a.json": "{}"})
	fake := filepath.Join(dir, "fake.zip")
	if err := os.WriteFile(fake, []byte("not a real zip file"), 0644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		want bool
	}{
		{"zip detected by content", zipped, true},
		{"extension is not enough", fake, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isArchiveFile(tt.path)
			if err != nil {
				t.Fatalf("isArchiveFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isArchiveFile() = %v, want %v", got, tt.want)
			}
		})
	}

	if _, err := isArchiveFile(filepath.Join(dir, "missing.zip")); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestIsReportName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.json", true},
		{"report.JSON", true},
		{"dir/report.yaml", true},
		{"report.yml", true},
		{"report.txt", false},
		{"report", false},
		{"json", false},
	}
	for _, tt := range tests {
		if got := isReportName(tt.name); got != tt.want {
			t.Errorf("isReportName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestIsReportFile(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"noext":      "\xEF\xBB\xBF\n  {\"total_titles\": 3}",
		"notes.txt":  "just some notes",
		"trend.yaml": "total_titles: 3",
		"array":      "[1, 2, 3]",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name string
		want bool
	}{
		{"noext", true},
		{"notes.txt", false},
		{"trend.yaml", true},
		{"array", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := isReportFile(filepath.Join(dir, tt.name))
			if err != nil {
				t.Fatalf("isReportFile() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("isReportFile() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsJSONObject(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{`{"a": 1}`, true},
		{"{}", true},
		{"{\n\"a\": 1}", true},
		{" \r\n\t{ \"a\": 1}", true},
		{"\xEF\xBB\xBF{}", true},
		{"{{ template }}", false},
		{"[]", false},
		{"{", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isJSONObject([]byte(tt.in)); got != tt.want {
			t.Errorf("isJSONObject(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
