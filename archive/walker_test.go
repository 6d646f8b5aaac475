package archive

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

// makeZip writes archive with given entries, names ending with "/" become
// directories.
func makeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	zipPath := filepath.Join(t.TempDir(), "reports.zip")
	f, err := os.Create(zipPath)
	if err != nil {
		t.Fatalf("Failed to create zip file: %v", err)
	}
	w := zip.NewWriter(f)
	for name, content := range entries {
		if strings.HasSuffix(name, "/") {
			hdr := &zip.FileHeader{Name: name}
			hdr.SetMode(os.ModeDir | 0755)
			if _, err := w.CreateHeader(hdr); err != nil {
				t.Fatalf("Failed to create directory %s: %v", name, err)
			}
			continue
		}
		fw, err := w.Create(name)
		if err != nil {
			t.Fatalf("Failed to create file %s in zip: %v", name, err)
		}
		if _, err := fw.Write([]byte(content)); err != nil {
			t.Fatalf("Failed to write content for %s: %v", name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return zipPath
}

func isJSON(name string) bool {
	return strings.HasSuffix(name, ".json")
}

func TestWalk(t *testing.T) {
	zipPath := makeZip(t, map[string]string{
		"2026/":              "",
		"2026/day10.json":    `{"total_titles": 10}`,
		"2026/day2.json":     `{"total_titles": 2}`,
		"2026/day1.json":     `{"total_titles": 1}`,
		"2026/notes.txt":     "notes",
		"2025/day31.json":    `{}`,
		"summary.yaml":       "total_titles: 0",
		"2026/nested/a.json": `{}`,
	})

	tests := []struct {
		name   string
		prefix string
		match  func(string) bool
		want   []string
	}{
		{"natural order under prefix", "2026/", isJSON, []string{"2026/day1.json", "2026/day2.json", "2026/day10.json", "2026/nested/a.json"}},
		{"no matcher", "2026/", nil, []string{"2026/day1.json", "2026/day2.json", "2026/day10.json", "2026/nested/a.json", "2026/notes.txt"}},
		{"whole archive", "", isJSON, []string{"2025/day31.json", "2026/day1.json", "2026/day2.json", "2026/day10.json", "2026/nested/a.json"}},
		{"no match", "2027/", nil, nil},
		{"prefix is case sensitive", "2026/DAY", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var visited []string
			err := Walk(zipPath, tt.prefix, tt.match, func(archive string, file *zip.File) error {
				if archive != zipPath {
					t.Errorf("archive = %s, want %s", archive, zipPath)
				}
				visited = append(visited, file.Name)
				return nil
			})
			if err != nil {
				t.Fatalf("Walk() error = %v", err)
			}
			if !slices.Equal(visited, tt.want) {
				t.Errorf("visited %v, want %v", visited, tt.want)
			}
		})
	}
}

func TestWalk_EarlyTermination(t *testing.T) {
	zipPath := makeZip(t, map[string]string{"a.json": "", "b.json": "", "c.json": ""})

	stopErr := errors.New("stop walking")
	var visited int
	err := Walk(zipPath, "", nil, func(string, *zip.File) error {
		visited++
		if visited == 2 {
			return stopErr
		}
		return nil
	})
	if !errors.Is(err, stopErr) {
		t.Errorf("Walk() error = %v, want %v", err, stopErr)
	}
	if visited != 2 {
		t.Errorf("visited %d files, want 2", visited)
	}
}

func TestWalk_InvalidArchive(t *testing.T) {
	invalid := filepath.Join(t.TempDir(), "invalid.zip")
	if err := os.WriteFile(invalid, []byte("not a zip file"), 0644); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"/nonexistent/file.zip", invalid} {
		if err := Walk(name, "", nil, func(string, *zip.File) error { return nil }); err == nil {
			t.Errorf("expected error for %s", name)
		}
	}
}

func TestWalk_UnsafePaths(t *testing.T) {
	for _, name := range []string{"../escape.json", "/abs.json", "a/../../b.json"} {
		t.Run(name, func(t *testing.T) {
			zipPath := makeZip(t, map[string]string{"ok.json": "{}", name: "{}"})
			called := false
			err := Walk(zipPath, "", nil, func(string, *zip.File) error {
				called = true
				return nil
			})
			if err == nil {
				t.Error("expected error for unsafe entry")
			}
			if called {
				t.Error("no entry should be visited in unsafe archive")
			}
		})
	}
}

func TestReadFile(t *testing.T) {
	zipPath := makeZip(t, map[string]string{"report.json": `{"total_titles": 3}`})

	err := Walk(zipPath, "", nil, func(_ string, file *zip.File) error {
		data, err := ReadFile(file)
		if err != nil {
			return err
		}
		if string(data) != `{"total_titles": 3}` {
			t.Errorf("content = %s", data)
		}
		return nil
	})
	if err != nil {
		t.Errorf("Walk() error = %v", err)
	}
}

func TestIsSafePath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"report.json", true},
		{"dir/report.json", true},
		{"dir/..report.json", true},
		{"../report.json", false},
		{"dir/../../report.json", false},
		{"/report.json", false},
		{`\report.json`, false},
	}
	for _, tt := range tests {
		if got := isSafePath(tt.name); got != tt.want {
			t.Errorf("isSafePath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
