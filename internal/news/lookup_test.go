package news

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

type fakeProvider struct {
	items []RawItem
	err   error
	calls int
	from  time.Time
	to    time.Time
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CompanyNews(_ context.Context, _ string, from, to time.Time) ([]RawItem, error) {
	f.calls++
	f.from, f.to = from, to
	return f.items, f.err
}

func TestLookupFlagsCatalyst(t *testing.T) {
	p := &fakeProvider{items: []RawItem{
		{Headline: "Company X announces merger", URL: "https://example.com/a"},
		{Headline: "Unrelated update"},
	}}
	l := NewLookup(p, []string{"merger"}, time.Second, zerolog.Nop())
	headlines, hasCatalyst := l.Lookup(context.Background(), "X", 5, 5)
	if !hasCatalyst {
		t.Fatal("expected catalyst")
	}
	if len(headlines) != 2 {
		t.Fatalf("expected 2 headlines, got %d", len(headlines))
	}
	matched := 0
	for _, h := range headlines {
		if h.Matched {
			matched++
		}
	}
	if matched != 1 || !headlines[0].Matched {
		t.Fatalf("expected exactly the first headline to match, got %+v", headlines)
	}
	if headlines[0].URL != "https://example.com/a" {
		t.Fatalf("unexpected url %q", headlines[0].URL)
	}
}

func TestLookupCaseInsensitive(t *testing.T) {
	l := NewLookup(nil, []string{"FDA"}, time.Second, zerolog.Nop())
	if !l.Matches("fda grants approval") {
		t.Fatal("expected case-insensitive match")
	}
	if l.Matches("nothing to see") {
		t.Fatal("unexpected match")
	}
}

func TestLookupFallbackToSummaryAndSkipsEmpty(t *testing.T) {
	p := &fakeProvider{items: []RawItem{
		{Summary: "Quarterly earnings beat"},
		{},
		{Headline: "   ", Summary: ""},
		{Headline: "Plain news"},
	}}
	l := NewLookup(p, []string{"earnings"}, time.Second, zerolog.Nop())
	headlines, hasCatalyst := l.Lookup(context.Background(), "X", 5, 5)
	if len(headlines) != 2 {
		t.Fatalf("expected 2 usable headlines, got %d", len(headlines))
	}
	if headlines[0].Text != "Quarterly earnings beat" || !hasCatalyst {
		t.Fatalf("expected summary fallback to match, got %+v", headlines[0])
	}
}

func TestLookupTruncatesInProviderOrder(t *testing.T) {
	var items []RawItem
	for _, h := range []string{"e", "d", "c", "b", "a", "z", "merger late"} {
		items = append(items, RawItem{Headline: h})
	}
	l := NewLookup(&fakeProvider{items: items}, []string{"merger"}, time.Second, zerolog.Nop())
	headlines, hasCatalyst := l.Lookup(context.Background(), "X", 5, 5)
	if len(headlines) != 5 {
		t.Fatalf("expected 5 headlines, got %d", len(headlines))
	}
	if headlines[0].Text != "e" || headlines[4].Text != "a" {
		t.Fatalf("expected provider order, got %+v", headlines)
	}
	if hasCatalyst {
		t.Fatal("a match beyond the truncation point must not set the catalyst flag")
	}
}

func TestLookupFailureIsEmpty(t *testing.T) {
	for name, p := range map[string]Provider{
		"error":          &fakeProvider{err: errors.New("boom")},
		"no credentials": &fakeProvider{err: ErrNoCredentials},
		"nil provider":   nil,
	} {
		l := NewLookup(p, nil, time.Second, zerolog.Nop())
		headlines, hasCatalyst := l.Lookup(context.Background(), "X", 5, 5)
		if headlines == nil || len(headlines) != 0 || hasCatalyst {
			t.Errorf("%s: expected empty non-nil result, got %v %v", name, headlines, hasCatalyst)
		}
	}
}

func TestLookupDateRange(t *testing.T) {
	p := &fakeProvider{}
	l := NewLookup(p, nil, time.Second, zerolog.Nop())
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }
	l.Lookup(context.Background(), "X", 7, 5)
	if p.calls != 1 {
		t.Fatalf("expected one provider call, got %d", p.calls)
	}
	if !p.to.Equal(now) || !p.from.Equal(now.AddDate(0, 0, -7)) {
		t.Fatalf("unexpected range %v - %v", p.from, p.to)
	}
}

func TestRawItemTimestamp(t *testing.T) {
	tests := []struct {
		raw  string
		want int64 // 0 means nil
	}{
		{`1772461800`, 1772461800},
		{`1772461800.0`, 1772461800},
		{`"1772461800"`, 1772461800},
		{`"2026-03-02T14:30:00Z"`, 1772461800},
		{`"yesterday"`, 0},
		{`null`, 0},
		{``, 0},
		{`0`, 0},
		{`-5`, 0},
		{`{"bad":true}`, 0},
	}
	for _, tt := range tests {
		item := RawItem{Datetime: json.RawMessage(tt.raw)}
		got := item.Timestamp()
		if tt.want == 0 {
			if got != nil {
				t.Errorf("raw %q: expected nil, got %v", tt.raw, got)
			}
			continue
		}
		if got == nil || got.Unix() != tt.want {
			t.Errorf("raw %q: expected %d, got %v", tt.raw, tt.want, got)
		}
	}
}
