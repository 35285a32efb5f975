package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/lehigh-university-libraries/bookprep/internal/kaggle"
	"github.com/lehigh-university-libraries/bookprep/internal/prepare"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	var dataset string
	var outputPath string
	var parquetPath string
	var cacheDir string
	var force bool
	var verbose bool

	cmd := &cobra.Command{
		Use:   "bookprep",
		Short: "Build the library bulk-import CSV from a public book dataset",
		Long: `Bookprep downloads the best-books dataset from Kaggle, maps its columns onto the
library import schema (Title, Author, ISBN, Genre, Description, CoverUrl, RentalPrice, Copies)
and writes final_books_import.csv.

ISBNs, rental prices and copy counts are generated. Missing authors, genres, descriptions
and covers get placeholder values.`,
		Example: `  # Build final_books_import.csv
  bookprep

  # Re-download the dataset and also write a parquet copy
  bookprep --force --parquet final_books_import.parquet`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()

			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := executePrepare(cmd, dataset, outputPath, parquetPath, cacheDir, force)
			if err != nil {
				slog.Debug("Run failed", "err", err)
				fmt.Fprintln(cmd.OutOrStdout(), prepare.Report(err))
			}
			return nil
		},
	}

	cmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Verbose logging")

	cmd.Flags().StringVar(&dataset, "dataset", kaggle.DefaultDataset, "Kaggle dataset handle (owner/dataset)")
	cmd.Flags().StringVar(&outputPath, "output", prepare.DefaultOutputPath, "Path to output CSV file")
	cmd.Flags().StringVar(&parquetPath, "parquet", "", "Also write the records to this parquet file")
	cmd.Flags().StringVar(&cacheDir, "cache-dir", kaggle.DefaultCacheDir, "Dataset cache directory")
	cmd.Flags().BoolVar(&force, "force", false, "Download the dataset even if it is cached")

	cmd.AddCommand(newInspectCmd())

	return cmd
}

func executePrepare(cmd *cobra.Command, dataset, outputPath, parquetPath, cacheDir string, force bool) error {
	creds, err := kaggle.LoadCredentials()
	if err != nil {
		return err
	}

	downloader := kaggle.NewDownloader(kaggle.DownloadConfig{
		CacheDir:      cacheDir,
		ForceDownload: force,
		Credentials:   creds,
	})

	_, err = prepare.Run(cmd.Context(), downloader, prepare.Config{
		Dataset:     dataset,
		OutputPath:  outputPath,
		ParquetPath: parquetPath,
		Out:         cmd.OutOrStdout(),
	})
	return err
}
