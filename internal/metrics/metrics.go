package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ScanCycles = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trendsniper_scan_cycles_total", Help: "Scan cycles by result (ran, skipped_paused, skipped_window, skipped_busy)"},
		[]string{"result"},
	)
	TickersExamined = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "trendsniper_tickers_examined_total", Help: "Tickers examined by outcome"},
		[]string{"status"},
	)
	TradeIdeas = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "trendsniper_trade_ideas_total", Help: "Trade ideas emitted"},
	)
	ScanDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trendsniper_scan_duration_seconds",
			Help:    "Wall time of one scan pass",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
	UniverseSize = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "trendsniper_universe_size", Help: "Symbols in the current universe"},
	)
	PostedTickers = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "trendsniper_posted_tickers", Help: "Tickers already surfaced this session"},
	)
)

func init() {
	prometheus.MustRegister(ScanCycles, TickersExamined, TradeIdeas, ScanDuration, UniverseSize, PostedTickers)
}
