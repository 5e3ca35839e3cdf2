package corpus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"time"
)

// DefaultURL points at a public-domain English text that works well as a
// frequency baseline.
const DefaultURL = "https://www.gutenberg.org/cache/epub/35/pg35.txt"

// FetchResult describes a corpus file in the local cache.
type FetchResult struct {
	Path     string
	Filename string
	Cached   bool
}

// Fetch downloads a baseline corpus into cacheDir, keyed by the URL's
// file name. An already-cached corpus is returned without a request.
func Fetch(ctx context.Context, rawURL, cacheDir string) (FetchResult, error) {
	if cacheDir == "" {
		return FetchResult{}, fmt.Errorf("cache directory is required")
	}
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to parse corpus URL: %w", err)
	}
	filename := path.Base(parsed.Path)
	if filename == "" || filename == "." || filename == "/" {
		return FetchResult{}, fmt.Errorf("corpus URL has no file name: %s", rawURL)
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return FetchResult{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	destPath := filepath.Join(cacheDir, filename)
	if _, err := os.Stat(destPath); err == nil {
		return FetchResult{Path: destPath, Filename: filename, Cached: true}, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return FetchResult{}, fmt.Errorf("failed to stat cached corpus: %w", err)
	}

	tmpFile, err := os.CreateTemp(cacheDir, "corpus-*.txt")
	if err != nil {
		return FetchResult{}, fmt.Errorf("failed to create temp corpus: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	resp, err := httpRequest(ctx, rawURL)
	if err != nil {
		return FetchResult{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return FetchResult{}, fmt.Errorf("unexpected corpus status: %s", resp.Status)
	}

	if _, err := io.Copy(tmpFile, resp.Body); err != nil {
		return FetchResult{}, fmt.Errorf("failed to download corpus: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return FetchResult{}, fmt.Errorf("failed to close temp corpus: %w", err)
	}
	if err := os.Rename(tmpPath, destPath); err != nil {
		return FetchResult{}, fmt.Errorf("failed to move corpus into cache: %w", err)
	}

	return FetchResult{Path: destPath, Filename: filename, Cached: false}, nil
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}
