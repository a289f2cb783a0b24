package strategy

import "TrendSniper/internal/model"

const (
	DefaultPriceCeiling    = 10.0
	DefaultMinAvgVolume    = 100000
	DefaultSpikeMultiplier = 1.8
)

// Params are the thresholds of the momentum filter.
type Params struct {
	PriceCeiling    float64
	MinAvgVolume    float64
	SpikeMultiplier float64
}

// DefaultParams returns the production thresholds.
func DefaultParams() Params {
	return Params{
		PriceCeiling:    DefaultPriceCeiling,
		MinAvgVolume:    DefaultMinAvgVolume,
		SpikeMultiplier: DefaultSpikeMultiplier,
	}
}

// BelowCeiling reports whether the last price passes the hard price filter.
func (p Params) BelowCeiling(lastClose float64) bool {
	return lastClose < p.PriceCeiling
}

// Liquid reports whether the trailing average volume meets the minimum.
func (p Params) Liquid(avgVolume float64) bool {
	return avgVolume >= p.MinAvgVolume
}

// Evaluate applies the three-part momentum predicate to the latest snapshot.
// Every condition must pass for the signal to qualify.
func Evaluate(snap model.Snapshot, p Params) *model.Signal {
	conds := []model.Condition{
		checkAboveVWAP(snap),
		checkTrend(snap),
		checkVolumeSpike(snap, p.SpikeMultiplier),
	}
	qualified := true
	for _, c := range conds {
		if !c.Passed {
			qualified = false
		}
	}
	return &model.Signal{Conditions: conds, Qualified: qualified}
}
