package prepare

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/lehigh-university-libraries/bookprep/internal/books"
	"github.com/lehigh-university-libraries/bookprep/internal/table"
)

// DefaultOutputPath is where the import file is written
const DefaultOutputPath = "final_books_import.csv"

// Provider fetches a dataset and returns the local directory holding its files
type Provider interface {
	Download(ctx context.Context, handle string) (string, error)
}

// Config holds the settings of one run
type Config struct {
	Dataset     string
	OutputPath  string
	ParquetPath string
	Mapping     books.Mapping
	Synthesizer *books.Synthesizer
	Out         io.Writer
}

// Result describes a completed run
type Result struct {
	SourcePath string
	Columns    []string
	Records    int
	OutputPath string
}

// Run downloads the dataset, normalizes its first CSV file and writes the import file.
// Any failure aborts the run before the output is replaced.
func Run(ctx context.Context, provider Provider, cfg Config) (*Result, error) {
	if cfg.OutputPath == "" {
		cfg.OutputPath = DefaultOutputPath
	}
	if cfg.Mapping == nil {
		cfg.Mapping = books.DefaultMapping
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	fmt.Fprintln(cfg.Out, "Downloading dataset...")
	datasetDir, err := provider.Download(ctx, cfg.Dataset)
	if err != nil {
		return nil, err
	}
	fmt.Fprintln(cfg.Out, "Path to dataset files:", datasetDir)

	sourcePath, err := table.Locate(datasetDir)
	if err != nil {
		return nil, err
	}

	fmt.Fprintf(cfg.Out, "Processing %s...\n", sourcePath)
	src, err := table.NewLoader(sourcePath).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset: %w", err)
	}
	fmt.Fprintln(cfg.Out, "Original Columns:", src.Columns)

	slog.Info("Loaded dataset", "path", sourcePath, "rows", src.Len(), "columns", len(src.Columns))

	records, err := books.NewNormalizer(cfg.Mapping, cfg.Synthesizer).Normalize(src)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize dataset: %w", err)
	}

	// Neither file is replaced unless both are written
	if err := books.WriteFiles(cfg.OutputPath, cfg.ParquetPath, records); err != nil {
		return nil, err
	}
	if cfg.ParquetPath != "" {
		slog.Info("Wrote parquet copy", "path", cfg.ParquetPath)
	}

	fmt.Fprintf(cfg.Out, "Successfully created %s with %d records.\n", cfg.OutputPath, len(records))

	return &Result{
		SourcePath: sourcePath,
		Columns:    src.Columns,
		Records:    len(records),
		OutputPath: cfg.OutputPath,
	}, nil
}
