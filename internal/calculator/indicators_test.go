package calculator

import (
	"math"
	"testing"
	"time"

	"TrendSniper/internal/model"
)

func makeBars(n int) []model.Bar {
	start := time.Date(2026, 3, 2, 14, 30, 0, 0, time.UTC)
	bars := make([]model.Bar, n)
	for i := 0; i < n; i++ {
		p := 2.0 + float64(i)*0.01
		bars[i] = model.Bar{
			Time:   start.Add(time.Duration(i) * time.Minute),
			Open:   p,
			High:   p * 1.01,
			Low:    p * 0.99,
			Close:  p,
			Volume: float64(1000 + i*10),
		}
	}
	return bars
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCalculateSMA(t *testing.T) {
	tests := []struct {
		prices []float64
		period int
		want   float64
	}{
		{[]float64{1, 2, 3, 4}, 2, 3.5},
		{[]float64{1, 2, 3, 4}, 4, 2.5},
		{[]float64{1, 2, 3}, 20, 2},
		{[]float64{5}, 50, 5},
	}
	for _, tt := range tests {
		got, err := CalculateSMA(tt.prices, tt.period)
		if err != nil {
			t.Fatalf("CalculateSMA(%v, %d): %v", tt.prices, tt.period, err)
		}
		if !almostEqual(got, tt.want) {
			t.Errorf("CalculateSMA(%v, %d) = %f, want %f", tt.prices, tt.period, got, tt.want)
		}
	}
	if _, err := CalculateSMA([]float64{1}, 0); err == nil {
		t.Error("expected error for non-positive period")
	}
	if _, err := CalculateSMA(nil, 5); err == nil {
		t.Error("expected error for empty input")
	}
}

func TestComputeLengthMatchesInput(t *testing.T) {
	for _, n := range []int{1, 2, 19, 20, 50, 120} {
		if got := len(Compute(makeBars(n))); got != n {
			t.Fatalf("n=%d: expected %d snapshots, got %d", n, n, got)
		}
	}
	if got := Compute(nil); len(got) != 0 {
		t.Fatalf("expected empty output for empty input, got %d", len(got))
	}
}

func TestComputeNoLookAhead(t *testing.T) {
	bars := makeBars(80)
	before := Compute(bars)

	mutated := append([]model.Bar(nil), bars...)
	for i := 60; i < len(mutated); i++ {
		mutated[i].Close *= 3
		mutated[i].Volume *= 7
	}
	after := Compute(mutated)

	for i := 0; i < 60; i++ {
		b, a := before[i], after[i]
		if b.MA20 != a.MA20 || b.MA50 != a.MA50 || b.VWAP != a.VWAP || b.AvgVolume20 != a.AvgVolume20 {
			t.Fatalf("position %d changed after mutating later bars: %+v vs %+v", i, b, a)
		}
	}
	if before[70].MA20 == after[70].MA20 {
		t.Fatal("expected later positions to reflect the mutation")
	}
}

func TestComputeIdempotent(t *testing.T) {
	bars := makeBars(120)
	first := Compute(bars)
	second := Compute(bars)
	for i := range first {
		if first[i].MA20 != second[i].MA20 || first[i].MA50 != second[i].MA50 || first[i].VWAP != second[i].VWAP {
			t.Fatalf("position %d differs between runs", i)
		}
	}
}

func TestComputePartialWindows(t *testing.T) {
	bars := makeBars(3)
	snaps := Compute(bars)
	// With three bars both averages cover every close seen so far.
	want := (bars[0].Close + bars[1].Close + bars[2].Close) / 3
	if !almostEqual(snaps[2].MA20, want) || !almostEqual(snaps[2].MA50, want) {
		t.Fatalf("expected partial-window mean %f, got ma20=%f ma50=%f", want, snaps[2].MA20, snaps[2].MA50)
	}
	if snaps[0].MA20 != bars[0].Close {
		t.Fatalf("expected first MA20 to equal first close, got %f", snaps[0].MA20)
	}
}

func TestComputeVWAPCumulative(t *testing.T) {
	bars := []model.Bar{
		{Close: 10, Volume: 100},
		{Close: 20, Volume: 300},
		{Close: 30, Volume: 0},
	}
	snaps := Compute(bars)
	if !almostEqual(snaps[0].VWAP, 10) {
		t.Errorf("vwap[0] = %f, want 10", snaps[0].VWAP)
	}
	if !almostEqual(snaps[1].VWAP, 17.5) {
		t.Errorf("vwap[1] = %f, want 17.5", snaps[1].VWAP)
	}
	if !almostEqual(snaps[2].VWAP, 17.5) {
		t.Errorf("vwap[2] = %f, want 17.5 (zero-volume bar adds nothing)", snaps[2].VWAP)
	}
}

func TestComputeVWAPZeroVolumeUsesClose(t *testing.T) {
	snaps := Compute([]model.Bar{{Close: 4, Volume: 0}, {Close: 5, Volume: 0}})
	if snaps[1].VWAP != 5 {
		t.Fatalf("expected close fallback, got %f", snaps[1].VWAP)
	}
}

func TestComputePctChange(t *testing.T) {
	bars := []model.Bar{
		{Close: 10, Volume: 100},
		{Close: 11, Volume: 150},
		{Close: 11, Volume: 0},
		{Close: 12, Volume: 50},
	}
	snaps := Compute(bars)
	if snaps[0].PriceChangePct != nil || snaps[0].VolumeChangePct != nil {
		t.Fatal("expected nil deltas at position 0")
	}
	if snaps[1].PriceChangePct == nil || !almostEqual(*snaps[1].PriceChangePct, 10) {
		t.Fatalf("expected +10%% price change, got %v", snaps[1].PriceChangePct)
	}
	if snaps[1].VolumeChangePct == nil || !almostEqual(*snaps[1].VolumeChangePct, 50) {
		t.Fatalf("expected +50%% volume change, got %v", snaps[1].VolumeChangePct)
	}
	if snaps[3].VolumeChangePct != nil {
		t.Fatal("expected nil volume change after a zero-volume bar")
	}
}

func TestComputeAvgVolumeWindow(t *testing.T) {
	bars := makeBars(30)
	snaps := Compute(bars)
	sum := 0.0
	for i := 10; i < 30; i++ {
		sum += bars[i].Volume
	}
	if !almostEqual(snaps[29].AvgVolume20, sum/20) {
		t.Fatalf("expected trailing 20-bar volume mean %f, got %f", sum/20, snaps[29].AvgVolume20)
	}
}

func TestLatest(t *testing.T) {
	if _, ok := Latest(nil); ok {
		t.Fatal("expected no snapshot for empty input")
	}
	bars := makeBars(25)
	snap, ok := Latest(bars)
	if !ok || snap.Close != bars[24].Close {
		t.Fatalf("unexpected latest snapshot: %+v", snap)
	}
}
