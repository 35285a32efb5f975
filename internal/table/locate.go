package table

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
)

// Extension is the tabular file extension Locate searches for.
const Extension = ".csv"

// ErrNoTabularFile is returned by Locate when the directory tree holds no tabular file.
var ErrNoTabularFile = errors.New("no CSV file found")

var errStopWalk = errors.New("stop walk")

// Locate walks dir recursively and returns the path of the first file
// whose name ends in Extension. A directory's own files are checked before its
// subdirectories, and entries within a directory go in name order.
func Locate(dir string) (string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return "", fmt.Errorf("failed to stat dataset directory: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("dataset path is not a directory: %s", dir)
	}

	var found string
	err = doublestar.GlobWalk(os.DirFS(dir), "**/*"+Extension, func(path string, d fs.DirEntry) error {
		found = path
		return errStopWalk
	}, doublestar.WithFilesOnly())
	if err != nil && !errors.Is(err, errStopWalk) {
		return "", fmt.Errorf("failed to search dataset directory: %w", err)
	}

	if found == "" {
		return "", fmt.Errorf("%w under %s", ErrNoTabularFile, dir)
	}

	path := filepath.Join(dir, filepath.FromSlash(found))
	slog.Debug("Located tabular file", "path", path)
	return path, nil
}
