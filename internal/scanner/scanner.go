package scanner

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"TrendSniper/internal/calculator"
	"TrendSniper/internal/dedup"
	"TrendSniper/internal/metrics"
	"TrendSniper/internal/model"
	"TrendSniper/internal/news"
	"TrendSniper/internal/strategy"
)

// BarSource returns recent bars, or false when none are usable.
type BarSource interface {
	Fetch(ctx context.Context, ticker string, limit int) (model.BarSeries, bool)
}

// CatalystLookup returns recent headlines and whether any matched a keyword.
type CatalystLookup interface {
	Lookup(ctx context.Context, ticker string, daysBack, maxHeadlines int) ([]model.Headline, bool)
}

// PostedSet is the session dedup store.
type PostedSet interface {
	Has(ticker string) bool
	Add(ticker string)
}

// Config tunes one scanner.
type Config struct {
	Params          strategy.Params
	ShortLimit      int
	LongLimit       int
	MinBars         int
	CapitalPerTrade float64
	RiskPct         float64
	ProfitMultiple  float64
	NewsDaysBack    int
	MaxHeadlines    int
	Workers         int
}

// DefaultConfig returns the production settings.
func DefaultConfig() Config {
	return Config{
		Params:          strategy.DefaultParams(),
		ShortLimit:      5,
		LongLimit:       120,
		MinBars:         20,
		CapitalPerTrade: 1000,
		RiskPct:         calculator.DefaultRiskPct,
		ProfitMultiple:  calculator.DefaultProfitMultiple,
		NewsDaysBack:    news.DefaultDaysBack,
		MaxHeadlines:    news.DefaultMaxHeadlines,
		Workers:         1,
	}
}

// Scanner runs the scan-and-filter pass over a universe.
type Scanner struct {
	bars BarSource
	news CatalystLookup
	cfg  Config
	log  zerolog.Logger
	now  func() time.Time
}

// New creates a Scanner. A nil news lookup attaches no headlines.
func New(bars BarSource, lookup CatalystLookup, cfg Config, log zerolog.Logger) *Scanner {
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	return &Scanner{
		bars: bars,
		news: lookup,
		cfg:  cfg,
		log:  log.With().Str("component", "scanner").Logger(),
		now:  time.Now,
	}
}

// evaluation carries the outcome of the data and signal steps for one ticker.
type evaluation struct {
	result Result
	snap   model.Snapshot
}

// Scan examines at most maxCandidates tickers in universe order (all of them
// when maxCandidates <= 0) and returns the trade ideas in that order.
func (s *Scanner) Scan(ctx context.Context, universe []string, posted PostedSet, maxCandidates int) *Report {
	report := &Report{
		CycleID:   uuid.NewString(),
		StartedAt: s.now(),
		Ideas:     []model.TradeIdea{},
	}

	tickers := universe
	if maxCandidates > 0 && len(tickers) > maxCandidates {
		tickers = tickers[:maxCandidates]
	}
	report.Examined = len(tickers)

	evals := s.evaluateAll(ctx, tickers)
	report.Results = make([]Result, 0, len(evals))
	for _, ev := range evals {
		res := ev.result
		if res.Status == "" {
			res = s.finalize(ctx, ev, posted)
		}
		if res.Idea != nil {
			report.Ideas = append(report.Ideas, *res.Idea)
		}
		s.logResult(report.CycleID, res)
		metrics.TickersExamined.WithLabelValues(string(res.Status)).Inc()
		report.Results = append(report.Results, res)
	}

	report.FinishedAt = s.now()
	metrics.TradeIdeas.Add(float64(len(report.Ideas)))
	metrics.ScanDuration.Observe(report.Duration().Seconds())
	s.log.Info().
		Str("cycle_id", report.CycleID).
		Int("examined", report.Examined).
		Int("ideas", len(report.Ideas)).
		Int("failed", report.Count(StatusFailed)).
		Dur("took", report.Duration()).
		Msg("scan finished")
	return report
}

// evaluateAll runs the per-ticker data steps, concurrently when Workers > 1.
// Output order always matches tickers.
func (s *Scanner) evaluateAll(ctx context.Context, tickers []string) []evaluation {
	evals := make([]evaluation, len(tickers))
	if s.cfg.Workers <= 1 || len(tickers) <= 1 {
		for i, t := range tickers {
			evals[i] = s.safeEvaluate(ctx, t)
		}
		return evals
	}

	var g errgroup.Group
	g.SetLimit(s.cfg.Workers)
	for i, t := range tickers {
		g.Go(func() error {
			evals[i] = s.safeEvaluate(ctx, t)
			return nil
		})
	}
	_ = g.Wait()
	return evals
}

func (s *Scanner) safeEvaluate(ctx context.Context, ticker string) (ev evaluation) {
	ticker = dedup.Normalize(ticker)
	defer func() {
		if r := recover(); r != nil {
			ev = evaluation{result: failed(ticker, fmt.Errorf("panic: %v", r))}
		}
	}()
	return s.evaluate(ctx, ticker)
}

// evaluate applies the price filter, data sufficiency, liquidity and signal
// checks. A zero result Status means the ticker qualified.
func (s *Scanner) evaluate(ctx context.Context, ticker string) evaluation {
	if ticker == "" {
		return evaluation{result: Result{Ticker: ticker, Status: StatusSkipped, Reason: "empty ticker"}}
	}

	recent, ok := s.bars.Fetch(ctx, ticker, s.cfg.ShortLimit)
	if !ok || recent.Len() == 0 {
		return evaluation{result: Result{Ticker: ticker, Status: StatusSkipped, Reason: "no recent bars"}}
	}
	last := recent.Last().Close
	if !s.cfg.Params.BelowCeiling(last) {
		return evaluation{result: Result{
			Ticker: ticker,
			Status: StatusRejected,
			Reason: fmt.Sprintf("price %.4f >= ceiling %.2f", last, s.cfg.Params.PriceCeiling),
		}}
	}

	series, ok := s.bars.Fetch(ctx, ticker, s.cfg.LongLimit)
	if !ok {
		return evaluation{result: Result{Ticker: ticker, Status: StatusSkipped, Reason: "no bar history"}}
	}
	if series.Len() < s.cfg.MinBars {
		return evaluation{result: Result{
			Ticker: ticker,
			Status: StatusSkipped,
			Reason: fmt.Sprintf("insufficient bars: %d < %d", series.Len(), s.cfg.MinBars),
		}}
	}

	snap, _ := calculator.Latest(series.Bars)
	if !s.cfg.Params.Liquid(snap.AvgVolume20) {
		return evaluation{result: Result{
			Ticker: ticker,
			Status: StatusRejected,
			Reason: fmt.Sprintf("avg volume %.0f below %.0f", snap.AvgVolume20, s.cfg.Params.MinAvgVolume),
		}}
	}

	sig := strategy.Evaluate(snap, s.cfg.Params)
	if !sig.Qualified {
		return evaluation{result: Result{
			Ticker: ticker,
			Status: StatusRejected,
			Reason: "signal: " + strings.Join(sig.Failed(), ","),
			Signal: sig,
		}, snap: snap}
	}
	return evaluation{result: Result{Ticker: ticker, Signal: sig}, snap: snap}
}

// finalize consults the dedup store and assembles the idea. It runs in
// universe order so dedup behaves exactly as in a sequential pass.
func (s *Scanner) finalize(ctx context.Context, ev evaluation, posted PostedSet) (res Result) {
	res = ev.result
	defer func() {
		if r := recover(); r != nil {
			res = failed(ev.result.Ticker, fmt.Errorf("panic: %v", r))
		}
	}()

	if posted.Has(res.Ticker) {
		res.Status = StatusDuplicate
		res.Reason = "already posted this session"
		return res
	}

	snap := ev.snap
	lv := calculator.TradeLevels(snap.Close, snap.VWAP, snap.MA20, s.cfg.RiskPct, s.cfg.ProfitMultiple)
	shares := calculator.PositionSize(s.cfg.CapitalPerTrade, lv.Entry, lv.Stop)

	headlines := []model.Headline{}
	hasCatalyst := false
	if s.news != nil {
		headlines, hasCatalyst = s.news.Lookup(ctx, res.Ticker, s.cfg.NewsDaysBack, s.cfg.MaxHeadlines)
	}

	res.Idea = &model.TradeIdea{
		Ticker:      res.Ticker,
		Price:       snap.Close,
		VWAP:        snap.VWAP,
		MA20:        snap.MA20,
		MA50:        snap.MA50,
		AvgVolume:   int64(snap.AvgVolume20),
		LastVolume:  int64(snap.Volume),
		Entry:       lv.Entry,
		Stop:        lv.Stop,
		Take:        lv.Take,
		Shares:      shares,
		Headlines:   headlines,
		HasCatalyst: hasCatalyst,
		CreatedAt:   s.now(),
	}
	res.Status = StatusIdea
	posted.Add(res.Ticker)
	return res
}

func failed(ticker string, err error) Result {
	return Result{Ticker: ticker, Status: StatusFailed, Reason: err.Error(), Err: err}
}

func (s *Scanner) logResult(cycleID string, res Result) {
	switch res.Status {
	case StatusFailed:
		s.log.Warn().Str("cycle_id", cycleID).Str("ticker", res.Ticker).Err(res.Err).Msg("ticker failed")
	case StatusIdea:
		s.log.Info().Str("cycle_id", cycleID).Str("ticker", res.Ticker).
			Float64("entry", res.Idea.Entry).Float64("stop", res.Idea.Stop).Float64("take", res.Idea.Take).
			Int64("shares", res.Idea.Shares).Bool("catalyst", res.Idea.HasCatalyst).
			Msg("trade idea")
	default:
		s.log.Debug().Str("cycle_id", cycleID).Str("ticker", res.Ticker).
			Str("status", string(res.Status)).Str("reason", res.Reason).Msg("ticker skipped")
	}
}
