package scanner

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"TrendSniper/internal/collector"
	"TrendSniper/internal/dedup"
	"TrendSniper/internal/model"
)

var testStart = time.Date(2024, 3, 4, 14, 0, 0, 0, time.UTC)

// risingBars closes linearly from lo to hi with a volume spike on the last bar.
func risingBars(n int, lo, hi, vol, lastVol float64) []model.Bar {
	bars := make([]model.Bar, n)
	for i := 0; i < n; i++ {
		c := lo + (hi-lo)*float64(i)/float64(n-1)
		v := vol
		if i == n-1 {
			v = lastVol
		}
		bars[i] = model.Bar{
			Time:   testStart.Add(time.Duration(i) * time.Minute),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: v,
		}
	}
	return bars
}

func flatBars(n int, price, vol float64) []model.Bar {
	return risingBars(n, price, price, vol, vol)
}

type stubNews struct {
	headlines []model.Headline
	catalyst  bool
	calls     []string
}

func (s *stubNews) Lookup(_ context.Context, ticker string, _, _ int) ([]model.Headline, bool) {
	s.calls = append(s.calls, ticker)
	return s.headlines, s.catalyst
}

type panicSource struct {
	next    BarSource
	tickers map[string]bool
}

func (p *panicSource) Fetch(ctx context.Context, ticker string, limit int) (model.BarSeries, bool) {
	if p.tickers[ticker] {
		panic("boom")
	}
	return p.next.Fetch(ctx, ticker, limit)
}

func newTestScanner(t *testing.T, bars map[string][]model.Bar, errs map[string]error, lookup CatalystLookup, workers int) *Scanner {
	t.Helper()
	fetcher := &collector.MockFetcher{Bars: bars, Errs: errs}
	src := collector.NewSource(fetcher, time.Second, zerolog.Nop())
	cfg := DefaultConfig()
	cfg.Workers = workers
	return New(src, lookup, cfg, zerolog.Nop())
}

func scenarioBars() (map[string][]model.Bar, map[string]error) {
	bars := map[string][]model.Bar{
		"B": flatBars(120, 12.00, 100000),
		"C": risingBars(120, 2.0, 3.0, 100000, 300000),
	}
	errs := map[string]error{"A": errors.New("provider down")}
	return bars, errs
}

func TestScanProducesIdea(t *testing.T) {
	bars, errs := scenarioBars()
	lookup := &stubNews{
		headlines: []model.Headline{{Text: "C wins FDA approval", Matched: true}},
		catalyst:  true,
	}
	s := newTestScanner(t, bars, errs, lookup, 1)
	posted := dedup.NewStore()

	report := s.Scan(context.Background(), []string{"A", "B", "C"}, posted, 25)

	if report.CycleID == "" {
		t.Error("expected cycle id")
	}
	if report.Examined != 3 || len(report.Results) != 3 {
		t.Fatalf("examined=%d results=%d, want 3/3", report.Examined, len(report.Results))
	}
	if len(report.Ideas) != 1 {
		t.Fatalf("got %d ideas, want 1", len(report.Ideas))
	}

	idea := report.Ideas[0]
	if idea.Ticker != "C" {
		t.Errorf("ticker = %s, want C", idea.Ticker)
	}
	if !(idea.Stop < idea.Entry && idea.Entry < idea.Take) {
		t.Errorf("levels not ordered: stop=%v entry=%v take=%v", idea.Stop, idea.Entry, idea.Take)
	}
	if idea.Shares <= 0 {
		t.Errorf("shares = %d, want > 0", idea.Shares)
	}
	if !idea.HasCatalyst || len(idea.Headlines) != 1 {
		t.Errorf("catalyst not attached: %+v", idea)
	}
	if idea.Price != 3.0 {
		t.Errorf("price = %v, want 3.0", idea.Price)
	}

	if res, _ := report.Result("A"); res.Status != StatusSkipped {
		t.Errorf("A status = %s, want skipped", res.Status)
	}
	if res, _ := report.Result("B"); res.Status != StatusRejected || !strings.Contains(res.Reason, "ceiling") {
		t.Errorf("B = %+v, want ceiling rejection", res)
	}
	if !posted.Has("C") || posted.Len() != 1 {
		t.Errorf("posted = %v, want [C]", posted.List())
	}
	if len(lookup.calls) != 1 || lookup.calls[0] != "C" {
		t.Errorf("news looked up for %v, want only C", lookup.calls)
	}
}

func TestScanSuppressesDuplicates(t *testing.T) {
	bars, errs := scenarioBars()
	s := newTestScanner(t, bars, errs, nil, 1)
	posted := dedup.NewStore()

	first := s.Scan(context.Background(), []string{"A", "B", "C"}, posted, 25)
	if len(first.Ideas) != 1 {
		t.Fatalf("first scan ideas = %d, want 1", len(first.Ideas))
	}

	second := s.Scan(context.Background(), []string{"A", "B", "C"}, posted, 25)
	if len(second.Ideas) != 0 {
		t.Fatalf("second scan ideas = %d, want 0", len(second.Ideas))
	}
	if res, _ := second.Result("C"); res.Status != StatusDuplicate {
		t.Errorf("C status = %s, want duplicate", res.Status)
	}
	if first.CycleID == second.CycleID {
		t.Error("cycle ids should differ")
	}

	posted.Clear()
	third := s.Scan(context.Background(), []string{"C"}, posted, 25)
	if len(third.Ideas) != 1 {
		t.Errorf("after reset ideas = %d, want 1", len(third.Ideas))
	}
}

func TestScanNoHeadlinesWithoutLookup(t *testing.T) {
	bars, _ := scenarioBars()
	s := newTestScanner(t, bars, nil, nil, 1)

	report := s.Scan(context.Background(), []string{"C"}, dedup.NewStore(), 25)
	if len(report.Ideas) != 1 {
		t.Fatalf("ideas = %d, want 1", len(report.Ideas))
	}
	idea := report.Ideas[0]
	if idea.Headlines == nil || len(idea.Headlines) != 0 || idea.HasCatalyst {
		t.Errorf("expected empty headlines without catalyst, got %+v", idea.Headlines)
	}
}

func TestScanFilters(t *testing.T) {
	bars := map[string][]model.Bar{
		"SHORT": risingBars(10, 2.0, 3.0, 100000, 300000),
		"THIN":  risingBars(120, 2.0, 3.0, 1000, 3000),
		"FLAT":  flatBars(120, 5.0, 150000),
		"EMPTY": {},
		"EDGE":  flatBars(120, 10.00, 150000),
	}
	s := newTestScanner(t, bars, nil, nil, 1)

	report := s.Scan(context.Background(), []string{"SHORT", "THIN", "FLAT", "EMPTY", "EDGE"}, dedup.NewStore(), 25)
	if len(report.Ideas) != 0 {
		t.Fatalf("ideas = %d, want 0", len(report.Ideas))
	}

	tests := []struct {
		ticker string
		status Status
		reason string
	}{
		{"SHORT", StatusSkipped, "insufficient bars"},
		{"THIN", StatusRejected, "avg volume"},
		{"FLAT", StatusRejected, "signal"},
		{"EMPTY", StatusSkipped, "no recent bars"},
		{"EDGE", StatusRejected, "ceiling"},
	}
	for _, tt := range tests {
		res, ok := report.Result(tt.ticker)
		if !ok {
			t.Errorf("%s not examined", tt.ticker)
			continue
		}
		if res.Status != tt.status || !strings.Contains(res.Reason, tt.reason) {
			t.Errorf("%s = %s %q, want %s containing %q", tt.ticker, res.Status, res.Reason, tt.status, tt.reason)
		}
	}
}

func TestScanCapBoundsExamined(t *testing.T) {
	bars := map[string][]model.Bar{
		"C1": risingBars(120, 2.0, 3.0, 100000, 300000),
		"C2": risingBars(120, 2.0, 3.0, 100000, 300000),
		"C3": risingBars(120, 2.0, 3.0, 100000, 300000),
	}
	s := newTestScanner(t, bars, nil, nil, 1)

	report := s.Scan(context.Background(), []string{"C1", "C2", "C3"}, dedup.NewStore(), 2)
	if report.Examined != 2 {
		t.Errorf("examined = %d, want 2", report.Examined)
	}
	if len(report.Ideas) != 2 || report.Ideas[0].Ticker != "C1" || report.Ideas[1].Ticker != "C2" {
		t.Errorf("ideas = %+v, want C1 and C2 in order", report.Ideas)
	}
	if _, ok := report.Result("C3"); ok {
		t.Error("C3 should not be examined")
	}
}

func TestScanEmptyUniverse(t *testing.T) {
	s := newTestScanner(t, nil, nil, nil, 1)
	report := s.Scan(context.Background(), nil, dedup.NewStore(), 25)
	if report.Ideas == nil {
		t.Fatal("ideas should be empty, not nil")
	}
	if report.Examined != 0 || len(report.Results) != 0 {
		t.Errorf("examined = %d, want 0", report.Examined)
	}
}

func TestScanRecoversPanics(t *testing.T) {
	bars, errs := scenarioBars()
	fetcher := &collector.MockFetcher{Bars: bars, Errs: errs}
	src := &panicSource{
		next:    collector.NewSource(fetcher, time.Second, zerolog.Nop()),
		tickers: map[string]bool{"B": true},
	}
	s := New(src, nil, DefaultConfig(), zerolog.Nop())

	report := s.Scan(context.Background(), []string{"A", "B", "C"}, dedup.NewStore(), 25)
	res, _ := report.Result("B")
	if res.Status != StatusFailed || res.Err == nil {
		t.Errorf("B = %+v, want failed with error", res)
	}
	if len(report.Ideas) != 1 || report.Ideas[0].Ticker != "C" {
		t.Errorf("scan should continue past failure, ideas = %+v", report.Ideas)
	}
	if report.Count(StatusFailed) != 1 {
		t.Errorf("failed count = %d, want 1", report.Count(StatusFailed))
	}
}

func TestScanConcurrentMatchesSequential(t *testing.T) {
	bars := map[string][]model.Bar{}
	universe := []string{}
	for _, tk := range []string{"D1", "D2", "D3", "D4", "D5", "D6"} {
		bars[tk] = risingBars(120, 2.0, 3.0, 100000, 300000)
		universe = append(universe, tk)
	}
	bars["D3"] = flatBars(120, 11, 100000)
	universe = append(universe, "D1")

	seq := newTestScanner(t, bars, nil, nil, 1).Scan(context.Background(), universe, dedup.NewStore(), 25)
	par := newTestScanner(t, bars, nil, nil, 4).Scan(context.Background(), universe, dedup.NewStore(), 25)

	if len(seq.Results) != len(par.Results) {
		t.Fatalf("results %d vs %d", len(seq.Results), len(par.Results))
	}
	for i := range seq.Results {
		if seq.Results[i].Ticker != par.Results[i].Ticker || seq.Results[i].Status != par.Results[i].Status {
			t.Errorf("result %d: %s/%s vs %s/%s", i,
				seq.Results[i].Ticker, seq.Results[i].Status,
				par.Results[i].Ticker, par.Results[i].Status)
		}
	}
	if len(par.Ideas) != 5 {
		t.Errorf("ideas = %d, want 5", len(par.Ideas))
	}
	if last := par.Results[len(par.Results)-1]; last.Status != StatusDuplicate {
		t.Errorf("repeated D1 status = %s, want duplicate", last.Status)
	}
}
