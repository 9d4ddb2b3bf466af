// Package fetcher performs the single outbound GET of the pipeline.
// Redirects are followed transparently; the whole request runs under a hard
// deadline and the connection is released on cancellation.
package fetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/taizguy/zamapedia/internal/page/domain"
)

const (
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "zamapedia/1.0"
)

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL string) (*domain.RawPage, error)
}

// HTTPFetcher fetches pages via net/http with a per-request deadline.
type HTTPFetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

func New(timeout time.Duration, userAgent string) *HTTPFetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return &HTTPFetcher{
		// The deadline comes from the request context, not client.Timeout,
		// so callers and tests control cancellation directly.
		client:    &http.Client{},
		timeout:   timeout,
		userAgent: userAgent,
	}
}

// Fetch issues one GET for rawURL. Failures are classified as
// domain.ErrFetchTimeout, *domain.UpstreamError (non-2xx, not retried) or
// *domain.NetworkError.
func (f *HTTPFetcher) Fetch(ctx context.Context, rawURL string) (*domain.RawPage, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &domain.NetworkError{Err: err}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrFetchTimeout
		}
		return nil, &domain.NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &domain.UpstreamError{
			Status:     resp.StatusCode,
			StatusText: http.StatusText(resp.StatusCode),
		}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		// The deadline can also fire mid-body.
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, domain.ErrFetchTimeout
		}
		return nil, &domain.NetworkError{Err: err}
	}

	return &domain.RawPage{
		HTML:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}
