package news

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"TrendSniper/internal/model"
)

const (
	DefaultDaysBack     = 5
	DefaultMaxHeadlines = 5
	defaultTimeout      = 10 * time.Second
)

// Lookup fetches headlines for a ticker and flags keyword matches.
type Lookup struct {
	provider Provider
	keywords []string
	timeout  time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewLookup creates a Lookup. A nil provider behaves like missing credentials.
// Empty keywords select DefaultKeywords.
func NewLookup(provider Provider, keywords []string, timeout time.Duration, log zerolog.Logger) *Lookup {
	if len(keywords) == 0 {
		keywords = DefaultKeywords
	}
	lowered := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			lowered = append(lowered, kw)
		}
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Lookup{
		provider: provider,
		keywords: lowered,
		timeout:  timeout,
		log:      log.With().Str("component", "catalyst").Logger(),
		now:      time.Now,
	}
}

// Lookup returns up to maxHeadlines headlines in provider order and whether
// any of them matched a keyword. Failures yield an empty result.
func (l *Lookup) Lookup(ctx context.Context, ticker string, daysBack, maxHeadlines int) ([]model.Headline, bool) {
	headlines := []model.Headline{}
	if l.provider == nil || maxHeadlines <= 0 {
		return headlines, false
	}
	if daysBack <= 0 {
		daysBack = DefaultDaysBack
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	to := l.now()
	from := to.AddDate(0, 0, -daysBack)
	raw, err := l.provider.CompanyNews(ctx, ticker, from, to)
	if err != nil {
		l.log.Debug().Err(err).Str("ticker", ticker).Msg("news lookup failed")
		return headlines, false
	}

	hasCatalyst := false
	for _, item := range raw {
		title := item.Title()
		if title == "" {
			continue
		}
		matched := l.Matches(title)
		if matched {
			hasCatalyst = true
		}
		headlines = append(headlines, model.Headline{
			Time:    item.Timestamp(),
			Text:    title,
			URL:     strings.TrimSpace(item.URL),
			Matched: matched,
		})
		if len(headlines) >= maxHeadlines {
			break
		}
	}
	return headlines, hasCatalyst
}

// Matches reports whether title contains any keyword, ignoring case.
func (l *Lookup) Matches(title string) bool {
	tl := strings.ToLower(title)
	for _, kw := range l.keywords {
		if strings.Contains(tl, kw) {
			return true
		}
	}
	return false
}
