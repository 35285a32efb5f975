package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		name     string
		files    []string
		expected string
	}{
		{
			name:     "top level file",
			files:    []string{"books.csv"},
			expected: "books.csv",
		},
		{
			name:     "nested file",
			files:    []string{"README.md", "versions/1/goodreads_data.csv"},
			expected: "versions/1/goodreads_data.csv",
		},
		{
			name:     "ignores other extensions",
			files:    []string{"a.json", "b.csv.bak", "c.CSV", "d/e.csv"},
			expected: "d/e.csv",
		},
		{
			name:     "top level before nested",
			files:    []string{"a/x.csv", "b.csv"},
			expected: "b.csv",
		},
		{
			name:     "directory files before subdirectories",
			files:    []string{"a/b/y.csv", "a/z.csv"},
			expected: "a/z.csv",
		},
		{
			name:     "siblings in name order",
			files:    []string{"b/x.csv", "a/y.csv"},
			expected: "a/y.csv",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for _, f := range tt.files {
				writeFile(t, filepath.Join(dir, filepath.FromSlash(f)), "x\n")
			}

			path, err := Locate(dir)
			if err != nil {
				t.Fatalf("Locate failed: %v", err)
			}

			expected := filepath.Join(dir, filepath.FromSlash(tt.expected))
			if path != expected {
				t.Errorf("Expected %s, got %s", expected, path)
			}
		})
	}
}

func TestLocateNoTabularFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "data", "books.parquet"), "x")

	_, err := Locate(dir)
	if !errors.Is(err, ErrNoTabularFile) {
		t.Errorf("Expected ErrNoTabularFile, got %v", err)
	}
}

func TestLocateMissingDirectory(t *testing.T) {
	_, err := Locate(filepath.Join(t.TempDir(), "missing"))
	if err == nil {
		t.Fatal("Expected error for missing directory, got nil")
	}
	if errors.Is(err, ErrNoTabularFile) {
		t.Error("Expected a stat error, not ErrNoTabularFile")
	}
}

func TestLocateNotADirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "books.csv")
	if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}

	if _, err := Locate(file); err == nil {
		t.Error("Expected error for non-directory path, got nil")
	}
}
