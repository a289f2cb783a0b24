package calculator

import (
	"math"

	"github.com/shopspring/decimal"
)

const (
	DefaultRiskPct        = 0.005
	DefaultProfitMultiple = 2.0

	// minRiskPerShare floors entry-stop so sizing never divides by zero.
	minRiskPerShare = 0.0001
	priceDecimals   = 4
)

// Levels are the suggested prices for one trade idea.
type Levels struct {
	Entry float64
	Stop  float64
	Take  float64
}

// TradeLevels derives entry, stop and take from the latest indicators.
// Entry sits at the highest of vwap, ma20 and close*0.995; stop at the lowest
// of vwap, ma20 and close less riskPct.
func TradeLevels(close, vwap, ma20, riskPct, profitMultiple float64) Levels {
	base := math.Max(math.Max(vwap, ma20), close*0.995)
	entry := round4(base)
	stop := round4(math.Min(math.Min(vwap, ma20), close) * (1 - riskPct))
	take := round4(entry * profitMultiple)
	return Levels{Entry: entry, Stop: stop, Take: take}
}

// PositionSize returns floor(capital / risk-per-share). Any degenerate input
// yields 0 shares rather than an error.
func PositionSize(capital, entry, stop float64) int64 {
	risk := math.Max(minRiskPerShare, entry-stop)
	if math.IsNaN(risk) || math.IsInf(risk, 0) {
		return 0
	}
	shares := math.Floor(capital / risk)
	if math.IsNaN(shares) || math.IsInf(shares, 0) || shares < 0 || shares > math.MaxInt64/2 {
		return 0
	}
	return int64(shares)
}

func round4(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	return decimal.NewFromFloat(v).Round(priceDecimals).InexactFloat64()
}
