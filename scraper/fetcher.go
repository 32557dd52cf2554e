package scraper

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"polo-scraper/utils"
)

const (
	UserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 " +
		"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	acceptHTML = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
)

// Fetcher returns the HTML body served at url.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// HTTPFetcher issues a single GET per call with browser-like headers. It
// never retries; a non-2xx status is an error.
type HTTPFetcher struct {
	client *resty.Client
}

// NewHTTPFetcher creates an HTTPFetcher with a fixed per-request timeout.
func NewHTTPFetcher(timeout time.Duration, logger *utils.Logger) *HTTPFetcher {
	c := resty.New().
		SetTimeout(timeout).
		SetRetryCount(0).
		SetLogger(restyLogger{logger}).
		SetHeaders(map[string]string{
			"User-Agent":                UserAgent,
			"Accept":                    acceptHTML,
			"Accept-Language":           "en-US,en;q=0.5",
			"Upgrade-Insecure-Requests": "1",
		})
	return &HTTPFetcher{client: c}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("http: get %s: %w", url, err)
	}
	if !resp.IsSuccess() {
		return "", fmt.Errorf("http: get %s: unexpected status %d", url, resp.StatusCode())
	}
	return resp.String(), nil
}

// restyLogger routes resty's internal warnings through the application logger.
type restyLogger struct {
	logger *utils.Logger
}

func (l restyLogger) Errorf(format string, v ...interface{}) { l.logger.Error("[http] "+format, v...) }
func (l restyLogger) Warnf(format string, v ...interface{})  { l.logger.Warn("[http] "+format, v...) }
func (l restyLogger) Debugf(format string, v ...interface{}) { l.logger.Debug("[http] "+format, v...) }
