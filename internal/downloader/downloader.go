// Package downloader saves extracted tracks to local files.
package downloader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/jaki95/soundcloud-playlist/internal/domain"
)

// Default timeout for downloads
const defaultDownloadTimeout = 30 * time.Minute

// HTTPDownloader downloads a track's stream to a local file.
type HTTPDownloader struct {
	client *http.Client
}

// NewHTTPDownloader creates a new HTTP downloader
func NewHTTPDownloader() *HTTPDownloader {
	return &HTTPDownloader{
		client: &http.Client{Timeout: defaultDownloadTimeout},
	}
}

// Download fetches the track's stream URL and writes it to outputDir,
// reporting progress on stderr. It returns the path of the written file.
func (d *HTTPDownloader) Download(ctx context.Context, track *domain.Track, outputDir string) (string, error) {
	if track.StreamURL == "" {
		return "", fmt.Errorf("track has no stream URL")
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, track.StreamURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to download: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	outputPath := filepath.Join(outputDir, fileName(track))
	outFile, err := os.Create(outputPath)
	if err != nil {
		return "", fmt.Errorf("failed to create output file: %w", err)
	}
	defer outFile.Close()

	bar := progressbar.DefaultBytes(resp.ContentLength, track.Title)
	bytesWritten, err := io.Copy(io.MultiWriter(outFile, bar), resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	if bytesWritten == 0 {
		return "", fmt.Errorf("downloaded file is empty")
	}

	slog.Info("Downloaded track", "path", outputPath, "size", bytesWritten)
	return outputPath, nil
}

// fileName derives a safe file name from the track title, falling back to
// the stream URL path when the title is empty.
func fileName(track *domain.Track) string {
	name := track.Title
	if name == "" {
		base := filepath.Base(strings.SplitN(track.StreamURL, "?", 2)[0])
		if base != "." && base != "/" {
			name = base
		} else {
			name = "track"
		}
	}

	replacer := strings.NewReplacer("/", "-", ":", "-", "\"", "'", "?", "", "\\", "-", "|", "-")
	name = replacer.Replace(name)

	if !strings.Contains(name, ".") {
		name += ".mp3"
	}
	return name
}
