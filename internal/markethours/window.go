package markethours

import (
	"fmt"
	"time"
)

const (
	DefaultTimezone  = "America/New_York"
	DefaultOpenHour  = 4
	DefaultCloseHour = 20
)

// fallback is used when the timezone database is unavailable: roughly the
// regular session expressed in UTC.
var (
	fallbackOpen  = 13*time.Hour + 30*time.Minute
	fallbackClose = 20 * time.Hour
)

// Window decides whether a moment falls inside the scanning hours.
type Window struct {
	Location     *time.Location
	OpenHour     int
	CloseHour    int
	WeekdaysOnly bool

	// utcFallback is set when Location could not be loaded.
	utcFallback bool
}

// New builds a Window for the named zone. If the zone cannot be loaded the
// returned Window uses a fixed UTC range and the error describes why.
func New(timezone string, openHour, closeHour int, weekdaysOnly bool) (*Window, error) {
	if timezone == "" {
		timezone = DefaultTimezone
	}
	w := &Window{OpenHour: openHour, CloseHour: closeHour, WeekdaysOnly: weekdaysOnly}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		w.Location = time.UTC
		w.utcFallback = true
		return w, fmt.Errorf("load timezone %q: %w", timezone, err)
	}
	w.Location = loc
	return w, nil
}

// Default returns the pre-market through after-hours window in New York.
func Default() *Window {
	w, _ := New(DefaultTimezone, DefaultOpenHour, DefaultCloseHour, true)
	return w
}

// Fallback reports whether the window runs on the fixed UTC range.
func (w *Window) Fallback() bool { return w.utcFallback }

// Contains reports whether t is inside [open, close) on an eligible day.
func (w *Window) Contains(t time.Time) bool {
	if w.utcFallback {
		u := t.UTC()
		if w.WeekdaysOnly && !isWeekday(u.Weekday()) {
			return false
		}
		since := u.Sub(midnight(u))
		return since >= fallbackOpen && since < fallbackClose
	}

	loc := w.Location
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	if w.WeekdaysOnly && !isWeekday(local.Weekday()) {
		return false
	}
	h := local.Hour()
	return h >= w.OpenHour && h < w.CloseHour
}

func isWeekday(d time.Weekday) bool {
	return d != time.Saturday && d != time.Sunday
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
