package table

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/parquet-go/parquet-go"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
}

func TestNewLoader(t *testing.T) {
	path := "./books.csv"
	loader := NewLoader(path)

	if loader.path != path {
		t.Errorf("Expected path %s, got %s", path, loader.path)
	}
}

func TestLoadCSV(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "books.csv")
	writeFile(t, csvPath, "\ufeff Book , Author,Description\n"+
		"Dune, Frank Herbert ,\"A sci-fi epic, with sand\"\n"+
		"Emma,Jane Austen,\n")

	tbl, err := NewLoader(csvPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expectedColumns := []string{"Book", "Author", "Description"}
	if !reflect.DeepEqual(tbl.Columns, expectedColumns) {
		t.Errorf("Expected columns %v, got %v", expectedColumns, tbl.Columns)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}

	if got := tbl.Cell(0, 1); got != "Frank Herbert" {
		t.Errorf("Expected trimmed author 'Frank Herbert', got %q", got)
	}

	if got := tbl.Cell(0, 2); got != "A sci-fi epic, with sand" {
		t.Errorf("Expected quoted description, got %q", got)
	}

	if got := tbl.Cell(1, 2); got != "" {
		t.Errorf("Expected empty description, got %q", got)
	}
}

func TestLoadCSVShortRowsPadded(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "short.csv")
	writeFile(t, csvPath, "a,b,c\n1\n1,2\n1,2,3\n")

	tbl, err := NewLoader(csvPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := [][]string{{"1", "", ""}, {"1", "2", ""}, {"1", "2", "3"}}
	if !reflect.DeepEqual(tbl.Rows, expected) {
		t.Errorf("Expected rows %v, got %v", expected, tbl.Rows)
	}
}

func TestLoadCSVRaggedRows(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "ragged.csv")
	writeFile(t, csvPath, "a,b,c\n1\n1,2,3,4\n")

	tbl, err := NewLoader(csvPath).Load()
	if err == nil {
		t.Fatalf("Expected error for row with extra fields, got rows %v", tbl.Rows)
	}

	for _, want := range []string{"line 3", "expected 3 fields, got 4"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Expected error to contain %q, got %v", want, err)
		}
	}
}

func TestLoadCSVMissingMarkers(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "na.csv")
	writeFile(t, csvPath, "Book,Author,Genres,URL,Description\n"+
		"Dune,NaN,N/A,NULL,\n"+
		"Emma, NA ,#N/A,None,null\n"+
		"Nan,Nana,n/a?,<NA>,nan\n")

	tbl, err := NewLoader(csvPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	expected := [][]string{
		{"Dune", "", "", "", ""},
		{"Emma", "", "", "", ""},
		{"Nan", "Nana", "n/a?", "", ""},
	}
	if !reflect.DeepEqual(tbl.Rows, expected) {
		t.Errorf("Expected rows %v, got %v", expected, tbl.Rows)
	}
}

func TestLoadCSVHeaderOnly(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "header.csv")
	writeFile(t, csvPath, "Book,Author\n")

	tbl, err := NewLoader(csvPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.Len() != 0 {
		t.Errorf("Expected 0 rows, got %d", tbl.Len())
	}
}

func TestLoadEmptyFile(t *testing.T) {
	csvPath := filepath.Join(t.TempDir(), "empty.csv")
	writeFile(t, csvPath, "")

	if _, err := NewLoader(csvPath).Load(); err == nil {
		t.Error("Expected error for empty file, got nil")
	}
}

type parquetBook struct {
	Book   string  `parquet:"Book"`
	Author string  `parquet:"Author,optional"`
	Rating float64 `parquet:"Avg_Rating"`
}

func TestLoadParquet(t *testing.T) {
	parquetPath := filepath.Join(t.TempDir(), "books.parquet")
	rows := []parquetBook{
		{Book: "Dune", Author: "Frank Herbert", Rating: 4.25},
		{Book: "Emma", Rating: 3.5},
	}
	if err := parquet.WriteFile(parquetPath, rows); err != nil {
		t.Fatalf("Failed to write parquet file: %v", err)
	}

	tbl, err := NewLoader(parquetPath).Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if tbl.Len() != 2 {
		t.Fatalf("Expected 2 rows, got %d", tbl.Len())
	}

	bookIdx := tbl.Index("Book")
	authorIdx := tbl.Index("Author")
	if bookIdx < 0 || authorIdx < 0 {
		t.Fatalf("Expected Book and Author columns, got %v", tbl.Columns)
	}

	if got := tbl.Cell(0, bookIdx); got != "Dune" {
		t.Errorf("Expected 'Dune', got %q", got)
	}
	if got := tbl.Cell(0, authorIdx); got != "Frank Herbert" {
		t.Errorf("Expected 'Frank Herbert', got %q", got)
	}
	if got := tbl.Cell(1, authorIdx); got != "" {
		t.Errorf("Expected null author to load as empty, got %q", got)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	loader := NewLoader("test.txt")

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for unsupported format, got nil")
	}
}

func TestLoadNonExistentFile(t *testing.T) {
	loader := NewLoader("/nonexistent/path/file.csv")

	if _, err := loader.Load(); err == nil {
		t.Error("Expected error for non-existent file, got nil")
	}
}

func TestCellOutOfRange(t *testing.T) {
	tbl := &SourceTable{Columns: []string{"a"}, Rows: [][]string{{"x"}}}

	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"row past end", 1, 0},
		{"negative col", 0, -1},
		{"col past end", 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tbl.Cell(tt.row, tt.col); got != "" {
				t.Errorf("Expected empty cell, got %q", got)
			}
		})
	}
}
