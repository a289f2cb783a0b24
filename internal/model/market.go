package model

import "time"

// Bar represents a single one-minute candlestick.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// BarSeries holds the bars fetched for one ticker in ascending time order.
type BarSeries struct {
	Ticker    string
	Bars      []Bar
	FetchedAt time.Time
}

// Len returns the number of bars in the series.
func (s BarSeries) Len() int { return len(s.Bars) }

// Last returns the most recent bar. The series must not be empty.
func (s BarSeries) Last() Bar { return s.Bars[len(s.Bars)-1] }
