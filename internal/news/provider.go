// Package news attaches recent headlines and a catalyst flag to trade ideas.
package news

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"
)

// ErrNoCredentials is returned by providers that have no API key configured.
var ErrNoCredentials = errors.New("news provider credentials missing")

// RawItem is one news item as returned by a provider. Datetime is kept raw
// so malformed values never fail decoding of the whole response.
type RawItem struct {
	Headline string          `json:"headline"`
	Summary  string          `json:"summary"`
	URL      string          `json:"url"`
	Datetime json.RawMessage `json:"datetime"`
}

// Title returns the headline, falling back to the summary.
func (r RawItem) Title() string {
	if t := strings.TrimSpace(r.Headline); t != "" {
		return t
	}
	return strings.TrimSpace(r.Summary)
}

// Timestamp parses Datetime as unix seconds (number or numeric string) or an
// RFC3339 string. Anything else yields nil.
func (r RawItem) Timestamp() *time.Time {
	raw := bytes.TrimSpace(r.Datetime)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}
	var num float64
	if err := json.Unmarshal(raw, &num); err == nil {
		return unixTime(num)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil
	}
	s = strings.TrimSpace(s)
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return unixTime(n)
	}
	if ts, err := time.Parse(time.RFC3339, s); err == nil {
		return &ts
	}
	return nil
}

func unixTime(sec float64) *time.Time {
	if sec <= 0 || sec > 1e11 {
		return nil
	}
	ts := time.Unix(int64(sec), 0).UTC()
	return &ts
}

// Provider fetches raw company news for a ticker over a date range.
type Provider interface {
	CompanyNews(ctx context.Context, ticker string, from, to time.Time) ([]RawItem, error)
	Name() string
}
