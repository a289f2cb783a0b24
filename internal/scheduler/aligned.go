package scheduler

import "time"

// AlignedSchedule fires on wall-clock multiples of Interval since the Unix
// epoch, so a 60s interval fires at :00 of every minute.
type AlignedSchedule struct {
	Interval time.Duration
}

// Next returns the first aligned instant strictly after t.
func (a AlignedSchedule) Next(t time.Time) time.Time {
	iv := a.Interval
	if iv < time.Second {
		iv = time.Second
	}
	next := t.Truncate(iv).Add(iv)
	if !next.After(t) {
		next = next.Add(iv)
	}
	return next.In(t.Location())
}

// UntilNext returns how long to wait from t until the next aligned instant.
func (a AlignedSchedule) UntilNext(t time.Time) time.Duration {
	return a.Next(t).Sub(t)
}
