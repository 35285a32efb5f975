package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// naValues are the cell strings a CSV reader treats as missing, matching the
// default NA markers of common dataframe readers
var naValues = map[string]bool{
	"":         true,
	"#N/A":     true,
	"#N/A N/A": true,
	"#NA":      true,
	"-1.#IND":  true,
	"-1.#QNAN": true,
	"-NaN":     true,
	"-nan":     true,
	"1.#IND":   true,
	"1.#QNAN":  true,
	"<NA>":     true,
	"N/A":      true,
	"NA":       true,
	"NULL":     true,
	"NaN":      true,
	"None":     true,
	"n/a":      true,
	"nan":      true,
	"null":     true,
}

// Loader reads a tabular dataset file into a SourceTable
type Loader struct {
	path string
}

// NewLoader creates a new loader for the file at path
func NewLoader(path string) *Loader {
	return &Loader{
		path: path,
	}
}

// Load loads the whole file (CSV or Parquet).
// Column names and cell values are trimmed of surrounding whitespace.
// CSV cells holding an NA marker such as "NaN" or "N/A" load as empty.
// A CSV row with more fields than the header is an error.
func (l *Loader) Load() (*SourceTable, error) {
	ext := strings.ToLower(filepath.Ext(l.path))

	switch ext {
	case ".csv":
		return l.loadCSV()
	case ".parquet":
		return l.loadParquet()
	default:
		return nil, fmt.Errorf("unsupported file format: %s (supported: .csv, .parquet)", ext)
	}
}

func (l *Loader) loadCSV() (*SourceTable, error) {
	slog.Debug("Opening CSV file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	defer file.Close()

	// Rows may be shorter than the header; width is checked per row below
	reader := csv.NewReader(file)
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	// Read header
	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("empty dataset file: %s", l.path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	t := &SourceTable{Columns: normalizeHeader(header)}

	// Read all rows
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to parse CSV: %w", err)
		}

		if len(record) > len(t.Columns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("failed to parse CSV: line %d: expected %d fields, got %d", line, len(t.Columns), len(record))
		}

		t.Rows = append(t.Rows, fitRow(record, len(t.Columns)))

		if len(t.Rows)%1000 == 0 {
			slog.Debug("Reading CSV", "rows_read", len(t.Rows))
		}
	}

	slog.Debug("Finished reading CSV file", "columns", len(t.Columns), "total_rows", len(t.Rows))

	return t, nil
}

func (l *Loader) loadParquet() (*SourceTable, error) {
	slog.Debug("Opening Parquet file", "path", l.path)

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet file: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	// Open parquet file with size info
	pf, err := parquet.OpenFile(file, info.Size())
	if err != nil {
		return nil, fmt.Errorf("failed to open parquet: %w", err)
	}

	// Flatten nested column paths into dotted names
	var columns []string
	for _, path := range pf.Schema().Columns() {
		columns = append(columns, strings.Join(path, "."))
	}

	t := &SourceTable{Columns: normalizeHeader(columns)}
	slog.Debug("Parquet file opened successfully", "num_rows", pf.NumRows(), "num_row_groups", len(pf.RowGroups()))

	// Read all row groups
	for _, rg := range pf.RowGroups() {
		if err := t.appendRowGroup(rg); err != nil {
			return nil, err
		}
	}

	slog.Debug("Finished reading Parquet file", "total_rows", len(t.Rows))

	return t, nil
}

func (t *SourceTable) appendRowGroup(rg parquet.RowGroup) error {
	rows := rg.Rows()
	defer rows.Close()

	buf := make([]parquet.Row, 128)
	for {
		n, err := rows.ReadRows(buf)
		for _, row := range buf[:n] {
			// Keep the first non-null value of each leaf column
			cells := make([]string, len(t.Columns))
			for _, v := range row {
				col := v.Column()
				if col < 0 || col >= len(cells) || v.IsNull() || cells[col] != "" {
					continue
				}
				cells[col] = strings.TrimSpace(valueString(v))
			}
			t.Rows = append(t.Rows, cells)
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read parquet rows: %w", err)
		}
	}
}

func valueString(v parquet.Value) string {
	if v.Kind() == parquet.ByteArray || v.Kind() == parquet.FixedLenByteArray {
		return string(v.ByteArray())
	}
	return v.String()
}

func normalizeHeader(header []string) []string {
	columns := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		columns[i] = strings.TrimSpace(h)
	}
	return columns
}

// fitRow pads a short record to width, trims every cell and blanks NA markers.
// Callers reject records longer than width.
func fitRow(record []string, width int) []string {
	cells := make([]string, width)
	for i := 0; i < len(record); i++ {
		cell := strings.TrimSpace(record[i])
		if naValues[cell] {
			continue
		}
		cells[i] = cell
	}
	return cells
}
