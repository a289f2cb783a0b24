package collector

import (
	"context"
	"hash/fnv"
	"time"

	"TrendSniper/internal/model"
)

// MockFetcher returns deterministic bars for development and testing.
// Bars maps a ticker to a fixed series; other tickers get generated data
// seeded from the symbol so repeated calls agree.
type MockFetcher struct {
	Bars map[string][]model.Bar
	Errs map[string]error
	Now  func() time.Time
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMinuteBars(ctx context.Context, ticker string, limit int) ([]model.Bar, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err, ok := m.Errs[ticker]; ok {
		return nil, err
	}
	if bars, ok := m.Bars[ticker]; ok {
		if len(bars) == 0 {
			return nil, ErrNoData
		}
		return bars, nil
	}
	now := time.Now
	if m.Now != nil {
		now = m.Now
	}
	return generateMockBars(ticker, limit, now()), nil
}

func generateMockBars(ticker string, count int, end time.Time) []model.Bar {
	h := fnv.New32a()
	_, _ = h.Write([]byte(ticker))
	seed := h.Sum32()
	basePrice := 1 + float64(seed%1500)/100
	baseVolume := 50000 + float64(seed%200000)

	end = end.Truncate(time.Minute)
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   end.Add(-time.Duration(count-1-i) * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: baseVolume * (1 + float64((int(seed)+i)%7)/10),
		}
	}
	return bars
}
