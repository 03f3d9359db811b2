package corpus

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/auslex-labs/auslex-core/internal/core/domain"
)

// Fetcher downloads corpus files over HTTP. Corpus snapshots are large
// and hosts throttle, so transient failures retry with backoff.
type Fetcher struct {
	httpClient *http.Client
	maxRetries int
	backoff    time.Duration
	userAgent  string
}

// NewFetcher creates a corpus fetcher.
func NewFetcher() *Fetcher {
	return &Fetcher{
		// No overall timeout: a full corpus download runs for minutes.
		// Cancellation comes from the caller's context.
		httpClient: &http.Client{},
		maxRetries: 3,
		backoff:    2 * time.Second,
		userAgent:  "auslex-core",
	}
}

// Fetch opens a streaming reader over a corpus URL. Gzip payloads are
// decompressed transparently. The caller must close the reader.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	var lastErr error

	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(attempt) * f.backoff
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		body, retryable, err := f.fetchOnce(ctx, rawURL)
		if err == nil {
			return body, nil
		}
		lastErr = err
		if !retryable {
			break
		}
	}

	return nil, fmt.Errorf("fetch corpus %s: %w", rawURL, lastErr)
}

// FetchDocuments downloads a corpus URL and loads it through a loader
// in one pass.
func (f *Fetcher) FetchDocuments(ctx context.Context, rawURL string, loader *Loader) ([]*domain.Document, error) {
	body, err := f.Fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	return loader.Load(body)
}

func (f *Fetcher) fetchOnce(ctx context.Context, rawURL string) (io.ReadCloser, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		// Network errors are worth retrying; context errors are not
		if ctx.Err() != nil {
			return nil, false, ctx.Err()
		}
		return nil, true, err
	}

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, true, fmt.Errorf("server returned %d", resp.StatusCode)
	default:
		resp.Body.Close()
		return nil, false, fmt.Errorf("server returned %d", resp.StatusCode)
	}

	if strings.HasSuffix(rawURL, ".gz") || resp.Header.Get("Content-Type") == "application/gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			resp.Body.Close()
			return nil, false, fmt.Errorf("open gzip stream: %w", err)
		}
		return &gzipReadCloser{gz: gz, body: resp.Body}, false, nil
	}

	return resp.Body, false, nil
}

// gzipReadCloser closes both the gzip layer and the underlying body
type gzipReadCloser struct {
	gz   *gzip.Reader
	body io.ReadCloser
}

func (g *gzipReadCloser) Read(p []byte) (int, error) {
	return g.gz.Read(p)
}

func (g *gzipReadCloser) Close() error {
	gzErr := g.gz.Close()
	bodyErr := g.body.Close()
	if gzErr != nil {
		return gzErr
	}
	return bodyErr
}
