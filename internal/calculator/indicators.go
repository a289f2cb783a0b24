package calculator

import "TrendSniper/internal/model"

const (
	FastPeriod   = 20
	SlowPeriod   = 50
	VolumePeriod = 20
)

// Compute derives one Snapshot per bar. Each snapshot depends only on bars at
// or before its own position.
func Compute(bars []model.Bar) []model.Snapshot {
	closes := extractCloses(bars)
	vols := extractVolumes(bars)

	// Periods are positive constants, so SMASeries cannot fail here.
	ma20, _ := SMASeries(closes, FastPeriod)
	ma50, _ := SMASeries(closes, SlowPeriod)
	avgVol, _ := SMASeries(vols, VolumePeriod)
	vwap := VWAPSeries(bars)
	priceChg := PctChangeSeries(closes)
	volChg := PctChangeSeries(vols)

	out := make([]model.Snapshot, len(bars))
	for i, b := range bars {
		out[i] = model.Snapshot{
			Time:            b.Time,
			Close:           b.Close,
			Volume:          b.Volume,
			MA20:            ma20[i],
			MA50:            ma50[i],
			VWAP:            vwap[i],
			AvgVolume20:     avgVol[i],
			PriceChangePct:  priceChg[i],
			VolumeChangePct: volChg[i],
		}
	}
	return out
}

// Latest computes the series and returns its final snapshot.
func Latest(bars []model.Bar) (model.Snapshot, bool) {
	if len(bars) == 0 {
		return model.Snapshot{}, false
	}
	snaps := Compute(bars)
	return snaps[len(snaps)-1], true
}
