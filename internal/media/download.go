package media

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"sceneforge/internal/fileutil"
	"sceneforge/internal/services"
)

// Downloader streams remote generation results to local storage.
type Downloader struct {
	client *http.Client
}

// NewDownloader constructs a downloader with the given per-request timeout.
func NewDownloader(timeout time.Duration) *Downloader {
	return &Downloader{client: &http.Client{Timeout: timeout}}
}

// Download fetches url into destPath, creating parent directories. Partial
// files are removed on failure.
func (d *Downloader) Download(ctx context.Context, url, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "download", "request", url, err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "download", "fetch", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrExternalTool, "download", "fetch",
			fmt.Sprintf("%s: unexpected status %d", url, resp.StatusCode), nil)
	}

	if err := fileutil.EnsureParentDir(destPath); err != nil {
		return services.Wrap(services.ErrExternalTool, "download", "prepare output", destPath, err)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "download", "create file", destPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		os.Remove(destPath)
		return services.Wrap(services.ErrExternalTool, "download", "write file", destPath, err)
	}
	if err := out.Close(); err != nil {
		os.Remove(destPath)
		return services.Wrap(services.ErrExternalTool, "download", "close file", destPath, err)
	}
	return nil
}
