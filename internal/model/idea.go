package model

import "time"

// Headline is one news item attached to a trade idea.
type Headline struct {
	Time    *time.Time `json:"time,omitempty"`
	Text    string     `json:"text"`
	URL     string     `json:"url,omitempty"`
	Matched bool       `json:"matched"`
}

// TradeIdea is a qualifying candidate produced by one scan cycle.
type TradeIdea struct {
	Ticker      string     `json:"ticker"`
	Price       float64    `json:"price"`
	VWAP        float64    `json:"vwap"`
	MA20        float64    `json:"ma20"`
	MA50        float64    `json:"ma50"`
	AvgVolume   int64      `json:"avg_volume"`
	LastVolume  int64      `json:"last_volume"`
	Entry       float64    `json:"entry"`
	Stop        float64    `json:"stop"`
	Take        float64    `json:"take"`
	Shares      int64      `json:"shares"`
	Headlines   []Headline `json:"headlines"`
	HasCatalyst bool       `json:"has_catalyst"`
	CreatedAt   time.Time  `json:"created_at"`
}
