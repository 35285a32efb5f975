package kaggle

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	// DefaultDataset is the best-books dataset the import file is built from
	DefaultDataset = "ishikajohari/best-books-10k-multi-genre-data"

	// DefaultBaseURL is the Kaggle site hosting the public API
	DefaultBaseURL = "https://www.kaggle.com"

	// Download endpoint, relative to the base URL
	downloadPath = "/api/v1/datasets/download/%s/%s"

	// Default cache directory (same layout as kagglehub)
	DefaultCacheDir = "~/.cache/kagglehub/datasets"

	// Written once an archive is fully extracted
	completeMarker = ".complete"
)

// DownloadConfig configures dataset downloading
type DownloadConfig struct {
	CacheDir      string
	ForceDownload bool
	BaseURL       string
	Credentials   Credentials
	HTTPClient    *http.Client
}

// Downloader handles downloading, caching and extracting Kaggle datasets
type Downloader struct {
	config DownloadConfig
}

// NewDownloader creates a new dataset downloader
func NewDownloader(config DownloadConfig) *Downloader {
	if config.CacheDir == "" {
		config.CacheDir = DefaultCacheDir
	}

	// Expand ~ to home directory
	if strings.HasPrefix(config.CacheDir, "~") {
		homeDir, err := os.UserHomeDir()
		if err == nil {
			config.CacheDir = filepath.Join(homeDir, config.CacheDir[1:])
		}
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}
	config.BaseURL = strings.TrimRight(config.BaseURL, "/")

	if config.HTTPClient == nil {
		config.HTTPClient = &http.Client{Timeout: 10 * time.Minute}
	}

	return &Downloader{
		config: config,
	}
}

// Download fetches the dataset named by handle ("owner/slug") and
// returns the directory holding its extracted files
func (d *Downloader) Download(ctx context.Context, handle string) (string, error) {
	owner, slug, err := splitHandle(handle)
	if err != nil {
		return "", err
	}

	datasetDir := d.GetCachePath(handle)

	// Reuse a completed extraction unless a fresh download is forced
	if d.config.ForceDownload {
		if err := d.ClearCache(handle); err != nil {
			return "", fmt.Errorf("failed to clear cache: %w", err)
		}
	} else if _, err := os.Stat(filepath.Join(datasetDir, completeMarker)); err == nil {
		slog.Info("Using cached dataset", "path", datasetDir)
		return datasetDir, nil
	}

	if err := os.MkdirAll(filepath.Dir(datasetDir), 0755); err != nil {
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	slog.Info("Downloading dataset from Kaggle", "dataset", handle)

	url := d.config.BaseURL + fmt.Sprintf(downloadPath, owner, slug)
	archivePath := datasetDir + ".zip"

	// Fetch archive
	if err := d.downloadFile(ctx, url, archivePath); err != nil {
		return "", err
	}
	defer os.Remove(archivePath)

	// Extract archive
	if err := extract(archivePath, datasetDir); err != nil {
		return "", fmt.Errorf("failed to extract dataset: %w", err)
	}

	slog.Info("Dataset downloaded successfully", "path", datasetDir)
	return datasetDir, nil
}

// downloadFile downloads url to destPath through a temp file
func (d *Downloader) downloadFile(ctx context.Context, url, destPath string) error {
	// Create HTTP request
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if !d.config.Credentials.Empty() {
		req.SetBasicAuth(d.config.Credentials.Username, d.config.Credentials.Key)
	}

	// Send request
	resp, err := d.config.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	// Rejected credentials are a missing dependency, not a generic failure
	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &DependencyError{
			Name: "Kaggle credentials",
			Hint: credentialsHint,
			Err:  fmt.Errorf("download failed with status: %d", resp.StatusCode),
		}
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	// Stream body to a temp file
	tempPath := destPath + ".tmp"
	out, err := os.Create(tempPath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	progress := &progressWriter{total: resp.ContentLength}
	_, err = io.Copy(io.MultiWriter(out, progress), resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("download failed: %w", err)
	}

	slog.Debug("Download finished", "bytes", progress.written)

	// Move temp file to final destination
	if err := os.Rename(tempPath, destPath); err != nil {
		os.Remove(tempPath)
		return fmt.Errorf("failed to move file: %w", err)
	}

	return nil
}

// GetCachePath returns the directory a dataset is extracted into
func (d *Downloader) GetCachePath(handle string) string {
	return filepath.Join(d.config.CacheDir, filepath.FromSlash(handle))
}

// ClearCache removes a cached dataset
func (d *Downloader) ClearCache(handle string) error {
	cacheDir := d.GetCachePath(handle)
	slog.Info("Clearing cache", "path", cacheDir)
	return os.RemoveAll(cacheDir)
}

func splitHandle(handle string) (string, string, error) {
	owner, slug, ok := strings.Cut(handle, "/")
	if !ok || owner == "" || slug == "" || strings.Contains(slug, "/") || owner == ".." || slug == ".." {
		return "", "", fmt.Errorf("invalid dataset handle %q (expected owner/dataset)", handle)
	}
	return owner, slug, nil
}

// extract unpacks the zip archive into destDir, replacing whatever was there
func extract(archivePath, destDir string) error {
	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer r.Close()

	// Unpack into a sibling directory first
	tempDir := destDir + ".tmp"
	if err := os.RemoveAll(tempDir); err != nil {
		return err
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return err
	}

	for _, f := range r.File {
		if err := extractFile(f, tempDir); err != nil {
			os.RemoveAll(tempDir)
			return err
		}
	}

	// Mark as complete so later runs hit the cache
	if err := os.WriteFile(filepath.Join(tempDir, completeMarker), nil, 0644); err != nil {
		os.RemoveAll(tempDir)
		return err
	}

	// Swap in the new extraction
	if err := os.RemoveAll(destDir); err != nil {
		os.RemoveAll(tempDir)
		return err
	}
	return os.Rename(tempDir, destDir)
}

func extractFile(f *zip.File, destDir string) error {
	// Reject entries that would escape destDir
	target := filepath.Join(destDir, filepath.FromSlash(f.Name))
	if !strings.HasPrefix(target, filepath.Clean(destDir)+string(os.PathSeparator)) {
		return fmt.Errorf("illegal file path in archive: %s", f.Name)
	}

	if f.FileInfo().IsDir() {
		return os.MkdirAll(target, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}

	src, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", f.Name, err)
	}
	defer src.Close()

	dst, err := os.Create(target)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", target, err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("failed to extract %s: %w", f.Name, err)
	}
	return dst.Close()
}

// progressWriter logs download progress every 10MB
type progressWriter struct {
	total   int64
	written int64
}

const progressStep = 10 * 1024 * 1024

func (p *progressWriter) Write(b []byte) (int, error) {
	before := p.written / progressStep
	p.written += int64(len(b))
	if p.written/progressStep > before {
		args := []any{"downloaded_mb", p.written / (1024 * 1024)}
		if p.total > 0 {
			args = append(args,
				"total_mb", p.total/(1024*1024),
				"progress", fmt.Sprintf("%.1f%%", float64(p.written)/float64(p.total)*100))
		}
		slog.Debug("Download progress", args...)
	}
	return len(b), nil
}

