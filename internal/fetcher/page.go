package fetcher

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// PageFetcher performs a single, timeout-bounded GET of a web page. There
// is no retry; each call site gets exactly one attempt.
type PageFetcher interface {
	FetchPage(ctx context.Context, url string) ([]byte, error)
}

type httpPageFetcher struct {
	client *http.Client
}

// NewPageFetcher constructs the default PageFetcher backed by a plain
// http.Client with the given total request timeout.
func NewPageFetcher(timeout time.Duration) PageFetcher {
	return &httpPageFetcher{
		client: &http.Client{Timeout: timeout},
	}
}

func (fetcher *httpPageFetcher) FetchPage(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := fetcher.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("GET %s returned status %d", url, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body from %s: %w", url, err)
	}

	return body, nil
}
