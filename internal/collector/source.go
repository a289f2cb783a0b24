package collector

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"TrendSniper/internal/model"
)

const defaultFetchTimeout = 10 * time.Second

// Source is the bar source used by the scanner. It never returns an error:
// provider failures, timeouts and empty responses all come back as absent.
type Source struct {
	fetcher Fetcher
	timeout time.Duration
	log     zerolog.Logger
	now     func() time.Time
}

// NewSource wraps fetcher with a per-call timeout.
func NewSource(fetcher Fetcher, timeout time.Duration, log zerolog.Logger) *Source {
	if timeout <= 0 {
		timeout = defaultFetchTimeout
	}
	return &Source{
		fetcher: fetcher,
		timeout: timeout,
		log:     log.With().Str("component", "bar_source").Str("provider", fetcher.Name()).Logger(),
		now:     time.Now,
	}
}

// Fetch returns up to limit of the most recent bars in ascending order.
// The second result is false when no usable data is available.
func (s *Source) Fetch(ctx context.Context, ticker string, limit int) (model.BarSeries, bool) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))
	if ticker == "" || limit <= 0 {
		return model.BarSeries{}, false
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	bars, err := s.fetcher.FetchMinuteBars(ctx, ticker, limit)
	if err != nil {
		s.log.Debug().Err(err).Str("ticker", ticker).Msg("bar fetch failed")
		return model.BarSeries{}, false
	}

	bars = normalizeBars(bars)
	if len(bars) == 0 {
		return model.BarSeries{}, false
	}
	if len(bars) > limit {
		bars = bars[len(bars)-limit:]
	}
	return model.BarSeries{Ticker: ticker, Bars: bars, FetchedAt: s.now()}, true
}

// normalizeBars sorts ascending, keeps the last bar per timestamp and drops
// bars with negative fields.
func normalizeBars(in []model.Bar) []model.Bar {
	out := make([]model.Bar, 0, len(in))
	for _, b := range in {
		if b.Open < 0 || b.High < 0 || b.Low < 0 || b.Close < 0 || b.Volume < 0 {
			continue
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time.Before(out[j].Time) })

	deduped := out[:0]
	for _, b := range out {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}
	return deduped
}
