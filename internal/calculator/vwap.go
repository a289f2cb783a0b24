package calculator

import "TrendSniper/internal/model"

// VWAPSeries returns the session-cumulative volume-weighted average close.
// While cumulative volume is still zero the close itself is used.
func VWAPSeries(bars []model.Bar) []float64 {
	out := make([]float64, len(bars))
	var pv, vol float64
	for i, b := range bars {
		pv += b.Close * b.Volume
		vol += b.Volume
		if vol > 0 {
			out[i] = pv / vol
		} else {
			out[i] = b.Close
		}
	}
	return out
}

// PctChangeSeries returns the percentage delta against the previous value.
// Position 0 and positions whose previous value is zero are nil.
func PctChangeSeries(values []float64) []*float64 {
	out := make([]*float64, len(values))
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			continue
		}
		pct := (values[i] - prev) / prev * 100
		out[i] = &pct
	}
	return out
}
