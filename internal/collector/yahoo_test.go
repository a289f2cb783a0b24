package collector

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestYahooFetcherSkipsNullBarsAndTrims(t *testing.T) {
	const body = `{"chart":{"result":[{"timestamp":[1772461800,1772461860,1772461920,1772461980],
		"indicators":{"quote":[{
			"open":[2.0,null,2.1,2.2],
			"high":[2.1,null,2.2,2.3],
			"low":[1.9,null,2.0,2.1],
			"close":[2.05,null,2.15,2.25],
			"volume":[1000,null,1200,1300]}]}}],"error":null}}`
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("interval") != "1m" {
			t.Errorf("expected 1m interval, got %s", r.URL.Query().Get("interval"))
		}
		_, _ = w.Write([]byte(body))
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	bars, err := f.FetchMinuteBars(context.Background(), "ABC", 2)
	if err != nil {
		t.Fatalf("FetchMinuteBars returned error: %v", err)
	}
	if len(bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(bars))
	}
	if bars[0].Close != 2.15 || bars[1].Close != 2.25 {
		t.Fatalf("unexpected closes %v %v", bars[0].Close, bars[1].Close)
	}
}

func TestYahooFetcherAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer server.Close()

	f := NewYahooFetcher(server.URL, "")
	if _, err := f.FetchMinuteBars(context.Background(), "ZZZZ", 5); err == nil {
		t.Fatal("expected error for api error payload")
	}
}
