package rsc

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const defaultBaseURL = "https://image.tmdb.org/t/p/original"

// Fetcher downloads provider artwork into a local directory. The provider
// path becomes the file name under the destination directory, so a refetch
// of the same path overwrites the previous copy.
type Fetcher struct {
	baseURL    string
	destDir    string
	httpClient *http.Client
	logger     *logrus.Logger
}

// Option tweaks fetcher construction
type Option func(*Fetcher)

// WithBaseURL points the fetcher at a different artwork endpoint
func WithBaseURL(u string) Option {
	return func(f *Fetcher) { f.baseURL = strings.TrimRight(u, "/") }
}

// NewFetcher creates a fetcher writing into destDir
func NewFetcher(destDir string, logger *logrus.Logger, opts ...Option) *Fetcher {
	f := &Fetcher{
		baseURL:    defaultBaseURL,
		destDir:    destDir,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads one artwork path. An empty path is a no-op, so callers can
// pass through whatever the provider returned without checking.
func (f *Fetcher) Fetch(ctx context.Context, path string) error {
	if path == "" {
		return nil
	}

	fullURL := f.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("artwork request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("artwork request failed with status %d", resp.StatusCode)
	}

	dest := filepath.Join(f.destDir, filepath.Base(path))
	if err := os.MkdirAll(f.destDir, 0755); err != nil {
		return fmt.Errorf("failed to create artwork directory: %w", err)
	}

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("failed to create artwork file: %w", err)
	}
	defer out.Close()

	written, err := io.Copy(out, resp.Body)
	if err != nil {
		return fmt.Errorf("failed to write artwork file: %w", err)
	}

	f.logger.WithFields(logrus.Fields{
		"path": path,
		"dest": dest,
		"size": written,
	}).Debug("Fetched artwork")
	return nil
}

// FetchAll downloads every path in the list, stopping at the first failure
func (f *Fetcher) FetchAll(ctx context.Context, paths []string) error {
	for _, p := range paths {
		if err := f.Fetch(ctx, p); err != nil {
			return fmt.Errorf("failed to fetch %s: %w", p, err)
		}
	}
	return nil
}
