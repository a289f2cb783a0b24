package calculator

import (
	"errors"

	"TrendSniper/internal/model"
)

// CalculateSMA computes the simple moving average of the last period prices.
// When fewer than period prices exist the average covers all of them.
func CalculateSMA(prices []float64, period int) (float64, error) {
	if period <= 0 {
		return 0, errors.New("period must be positive")
	}
	if len(prices) == 0 {
		return 0, errors.New("no data for SMA calculation")
	}
	start := len(prices) - period
	if start < 0 {
		start = 0
	}
	sum := 0.0
	for i := start; i < len(prices); i++ {
		sum += prices[i]
	}
	return sum / float64(len(prices)-start), nil
}

// SMASeries returns the trailing moving average at every position of values.
// Early positions use a partial window of i+1 observations, so the first
// period-1 values are statistically weaker than the rest.
func SMASeries(values []float64, period int) ([]float64, error) {
	if period <= 0 {
		return nil, errors.New("period must be positive")
	}
	out := make([]float64, len(values))
	for i := range values {
		ma, err := CalculateSMA(values[:i+1], period)
		if err != nil {
			return nil, err
		}
		out[i] = ma
	}
	return out, nil
}

func extractCloses(bars []model.Bar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

func extractVolumes(bars []model.Bar) []float64 {
	vols := make([]float64, len(bars))
	for i, b := range bars {
		vols[i] = b.Volume
	}
	return vols
}
