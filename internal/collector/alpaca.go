package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"TrendSniper/internal/model"
)

const defaultAlpacaBaseURL = "https://data.alpaca.markets"

// AlpacaFetcher implements Fetcher using the Alpaca market data v2 REST API.
type AlpacaFetcher struct {
	BaseURL   string
	APIKey    string
	APISecret string
	Feed      string
	Lookback  time.Duration
	Client    *http.Client
	now       func() time.Time
}

// NewAlpacaFetcher creates a fetcher with optional proxy support.
func NewAlpacaFetcher(baseURL, apiKey, apiSecret, feed, proxyURL string) *AlpacaFetcher {
	if baseURL == "" {
		baseURL = defaultAlpacaBaseURL
	}
	return &AlpacaFetcher{
		BaseURL:   strings.TrimSuffix(baseURL, "/"),
		APIKey:    apiKey,
		APISecret: apiSecret,
		Feed:      feed,
		Lookback:  96 * time.Hour,
		Client:    newHTTPClient(proxyURL, 30*time.Second),
		now:       time.Now,
	}
}

func (f *AlpacaFetcher) Name() string { return "alpaca" }

// alpacaBar is the JSON shape of one bar in the bars response.
type alpacaBar struct {
	T string  `json:"t"`
	O float64 `json:"o"`
	H float64 `json:"h"`
	L float64 `json:"l"`
	C float64 `json:"c"`
	V float64 `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          []alpacaBar `json:"bars"`
	Symbol        string      `json:"symbol"`
	NextPageToken *string     `json:"next_page_token"`
}

// FetchMinuteBars requests the newest bars first and returns them ascending.
func (f *AlpacaFetcher) FetchMinuteBars(ctx context.Context, ticker string, limit int) ([]model.Bar, error) {
	q := url.Values{}
	q.Set("timeframe", "1Min")
	q.Set("limit", strconv.Itoa(limit))
	q.Set("sort", "desc")
	q.Set("adjustment", "raw")
	q.Set("start", f.now().Add(-f.Lookback).UTC().Format(time.RFC3339))
	if f.Feed != "" {
		q.Set("feed", f.Feed)
	}
	endpoint := fmt.Sprintf("%s/v2/stocks/%s/bars?%s", f.BaseURL, url.PathEscape(ticker), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("APCA-API-KEY-ID", f.APIKey)
	req.Header.Set("APCA-API-SECRET-KEY", f.APISecret)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("alpaca fetch: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("alpaca: status %d, body: %s", resp.StatusCode, string(body))
	}

	var result alpacaBarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("alpaca decode: %w", err)
	}
	if len(result.Bars) == 0 {
		return nil, ErrNoData
	}

	bars := make([]model.Bar, 0, len(result.Bars))
	for i := len(result.Bars) - 1; i >= 0; i-- {
		ab := result.Bars[i]
		ts, err := time.Parse(time.RFC3339, ab.T)
		if err != nil {
			return nil, fmt.Errorf("alpaca: bad timestamp %q: %w", ab.T, err)
		}
		bars = append(bars, model.Bar{
			Time:   ts,
			Open:   ab.O,
			High:   ab.H,
			Low:    ab.L,
			Close:  ab.C,
			Volume: ab.V,
		})
	}
	return bars, nil
}
