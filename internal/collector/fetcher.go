package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"TrendSniper/internal/model"
)

// ErrNoData is returned by fetchers when the provider has no bars for a ticker.
var ErrNoData = errors.New("no bars returned")

// Fetcher retrieves one-minute bars from a market-data provider.
type Fetcher interface {
	FetchMinuteBars(ctx context.Context, ticker string, limit int) ([]model.Bar, error)
	Name() string
}

// newHTTPClient builds a client with optional proxy support.
func newHTTPClient(proxyURL string, timeout time.Duration) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
