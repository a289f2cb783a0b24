package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultFinnhubBaseURL = "https://finnhub.io/api/v1"

// FinnhubProvider implements Provider using the Finnhub company-news endpoint.
type FinnhubProvider struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewFinnhubProvider creates a provider with optional proxy support.
func NewFinnhubProvider(baseURL, apiKey, proxyURL string) *FinnhubProvider {
	if baseURL == "" {
		baseURL = defaultFinnhubBaseURL
	}
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &FinnhubProvider{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		APIKey:  apiKey,
		Client:  &http.Client{Timeout: 10 * time.Second, Transport: transport},
	}
}

func (p *FinnhubProvider) Name() string { return "finnhub" }

func (p *FinnhubProvider) CompanyNews(ctx context.Context, ticker string, from, to time.Time) ([]RawItem, error) {
	if p.APIKey == "" {
		return nil, ErrNoCredentials
	}
	q := url.Values{}
	q.Set("symbol", ticker)
	q.Set("from", from.Format("2006-01-02"))
	q.Set("to", to.Format("2006-01-02"))
	q.Set("token", p.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.BaseURL+"/company-news?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("finnhub fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("finnhub: status %d, body: %s", resp.StatusCode, string(body))
	}

	var items []RawItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("finnhub decode: %w", err)
	}
	return items, nil
}
