package recorder

import (
	"time"

	"TrendSniper/internal/model"
)

// CycleEvent summarizes one scheduled or manual scan cycle.
type CycleEvent struct {
	CycleID      string
	Trigger      string // "schedule" or "command"
	StartedAt    time.Time
	FinishedAt   time.Time
	UniverseSize int
	Examined     int
	Ideas        int
	Skipped      int
	Rejected     int
	Duplicates   int
	Failed       int
	DeliveryErr  string
}

// Recorder persists scan history for analysis.
type Recorder interface {
	RecordCycle(evt *CycleEvent) error
	RecordIdea(cycleID string, idea *model.TradeIdea) error
	Close() error
}
