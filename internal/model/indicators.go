package model

import "time"

// Snapshot holds the indicator values at one position of a bar series.
// PriceChangePct and VolumeChangePct are nil where the delta is undefined.
type Snapshot struct {
	Time            time.Time
	Close           float64
	Volume          float64
	MA20            float64
	MA50            float64
	VWAP            float64
	AvgVolume20     float64
	PriceChangePct  *float64
	VolumeChangePct *float64
}
