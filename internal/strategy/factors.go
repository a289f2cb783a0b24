package strategy

import (
	"fmt"

	"TrendSniper/internal/model"
)

const (
	CondAboveVWAP   = "close>vwap"
	CondTrend       = "ma20>ma50"
	CondVolumeSpike = "volume_spike"
)

func checkAboveVWAP(s model.Snapshot) model.Condition {
	return model.Condition{
		Name:       CondAboveVWAP,
		Passed:     s.Close > s.VWAP,
		Commentary: fmt.Sprintf("close %.4f vs vwap %.4f", s.Close, s.VWAP),
	}
}

func checkTrend(s model.Snapshot) model.Condition {
	return model.Condition{
		Name:       CondTrend,
		Passed:     s.MA20 > s.MA50,
		Commentary: fmt.Sprintf("ma20 %.4f vs ma50 %.4f", s.MA20, s.MA50),
	}
}

// checkVolumeSpike requires the last bar to exceed the trailing average by multiplier.
func checkVolumeSpike(s model.Snapshot, multiplier float64) model.Condition {
	threshold := s.AvgVolume20 * multiplier
	return model.Condition{
		Name:       CondVolumeSpike,
		Passed:     s.Volume > threshold,
		Commentary: fmt.Sprintf("last %.0f vs %.0f (avg %.0f x%.1f)", s.Volume, threshold, s.AvgVolume20, multiplier),
	}
}
