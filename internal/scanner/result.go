package scanner

import (
	"time"

	"TrendSniper/internal/model"
)

// Status classifies what happened to one examined ticker.
type Status string

const (
	StatusIdea      Status = "idea"
	StatusSkipped   Status = "skipped"  // absent or insufficient data
	StatusRejected  Status = "rejected" // failed a filter or the signal predicate
	StatusDuplicate Status = "duplicate"
	StatusFailed    Status = "failed" // unexpected error, ticker abandoned
)

// Result is the outcome for one examined ticker.
type Result struct {
	Ticker string
	Status Status
	Reason string
	Err    error
	Signal *model.Signal
	Idea   *model.TradeIdea
}

// Report aggregates one scan pass. Ideas is never nil.
type Report struct {
	CycleID    string
	StartedAt  time.Time
	FinishedAt time.Time
	Examined   int
	Results    []Result
	Ideas      []model.TradeIdea
}

// Count returns how many results have the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Result returns the outcome for ticker, if it was examined.
func (r *Report) Result(ticker string) (Result, bool) {
	for _, res := range r.Results {
		if res.Ticker == ticker {
			return res, true
		}
	}
	return Result{}, false
}

// Duration is the wall time of the pass.
func (r *Report) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
