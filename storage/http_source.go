package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"fairhuur/utils"
)

// HTTPFetcher downloads the listings document, bypassing HTTP caches.
type HTTPFetcher struct {
	client *resty.Client
	url    string
	retry  *utils.RetryConfig
	logger *utils.Logger
}

// NewHTTPFetcher creates an HTTPFetcher for url.
func NewHTTPFetcher(url string, timeout time.Duration, retry *utils.RetryConfig, logger *utils.Logger) *HTTPFetcher {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("Accept", "application/json").
		SetHeader("Cache-Control", "no-store")

	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1, Logger: logger}
	}
	return &HTTPFetcher{client: client, url: url, retry: retry, logger: logger}
}

func (f *HTTPFetcher) Fetch(ctx context.Context) ([]byte, error) {
	var body []byte

	err := f.retry.Do(ctx, "fetch-listings", func() error {
		resp, err := f.client.R().SetContext(ctx).Get(f.url)
		if err != nil {
			return fmt.Errorf("http: get %s: %w", f.url, err)
		}

		code := resp.StatusCode()
		switch {
		case code == http.StatusNotFound:
			return utils.Permanent(fmt.Errorf("http: %s: %w", f.url, ErrNotFound))
		case code >= 500 || code == http.StatusTooManyRequests:
			return fmt.Errorf("http: %s: unexpected status %d", f.url, code)
		case code >= 400:
			return utils.Permanent(fmt.Errorf("http: %s: unexpected status %d", f.url, code))
		}

		body = resp.Body()
		return nil
	})
	if err != nil {
		return nil, err
	}

	f.logger.Debug("[http] Fetched %d bytes from %s", len(body), f.url)
	return body, nil
}
