package books

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
)

// WriteCSV writes books to path with a header row and no index column.
// The file is replaced atomically, so a failed write leaves any previous file as it was.
func WriteCSV(path string, books []Book) error {
	return WriteFiles(path, "", books)
}

// WriteParquet writes books to path as a Parquet file with the same columns as WriteCSV
func WriteParquet(path string, books []Book) error {
	return writeAtomic(path, parquetContent(books))
}

// WriteFiles writes the CSV file and, when parquetPath is set, a Parquet copy.
// Both are fully written to temp files before either is moved into place,
// so a failed write leaves both destinations as they were.
func WriteFiles(csvPath, parquetPath string, books []Book) error {
	csvFile, err := stage(csvPath, csvContent(books))
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", csvPath, err)
	}

	if parquetPath == "" {
		return csvFile.commit()
	}

	parquetFile, err := stage(parquetPath, parquetContent(books))
	if err != nil {
		csvFile.discard()
		return fmt.Errorf("failed to write %s: %w", parquetPath, err)
	}

	if err := parquetFile.commit(); err != nil {
		csvFile.discard()
		return err
	}
	return csvFile.commit()
}

func csvContent(books []Book) func(io.Writer) error {
	return func(w io.Writer) error {
		writer := csv.NewWriter(w)

		if err := writer.Write(Columns); err != nil {
			return fmt.Errorf("failed to write header: %w", err)
		}

		for i := range books {
			if err := writer.Write(books[i].Record()); err != nil {
				return fmt.Errorf("failed to write record %d: %w", i+1, err)
			}
		}

		writer.Flush()
		return writer.Error()
	}
}

func parquetContent(books []Book) func(io.Writer) error {
	return func(w io.Writer) error {
		writer := parquet.NewGenericWriter[Book](w)

		if _, err := writer.Write(books); err != nil {
			return fmt.Errorf("failed to write rows: %w", err)
		}

		return writer.Close()
	}
}

// staged is a completely written temp file waiting to replace dest
type staged struct {
	temp string
	dest string
}

func writeAtomic(path string, write func(io.Writer) error) error {
	s, err := stage(path, write)
	if err != nil {
		return err
	}
	return s.commit()
}

// stage writes a temp file next to path. Nothing at path is touched.
func stage(path string, write func(io.Writer) error) (*staged, error) {
	out, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	s := &staged{temp: out.Name(), dest: path}

	if err := write(out); err != nil {
		out.Close()
		s.discard()
		return nil, err
	}

	if err := out.Close(); err != nil {
		s.discard()
		return nil, fmt.Errorf("failed to close file: %w", err)
	}

	if err := os.Chmod(s.temp, 0644); err != nil {
		s.discard()
		return nil, fmt.Errorf("failed to set file mode: %w", err)
	}

	return s, nil
}

func (s *staged) commit() error {
	if err := os.Rename(s.temp, s.dest); err != nil {
		s.discard()
		return fmt.Errorf("failed to move file: %w", err)
	}
	return nil
}

func (s *staged) discard() {
	os.Remove(s.temp)
}
