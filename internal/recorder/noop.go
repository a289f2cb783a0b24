package recorder

import "TrendSniper/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordCycle(_ *CycleEvent) error               { return nil }
func (n *NoopRecorder) RecordIdea(_ string, _ *model.TradeIdea) error { return nil }
func (n *NoopRecorder) Close() error                                  { return nil }
