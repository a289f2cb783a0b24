package session

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"TrendSniper/internal/dedup"
	"TrendSniper/internal/markethours"
	"TrendSniper/internal/metrics"
	"TrendSniper/internal/universe"
)

// Status is the externally visible session state.
type Status struct {
	Enabled            bool      `json:"enabled"`
	InMarketWindow     bool      `json:"in_market_window"`
	UniverseSize       int       `json:"universe_size"`
	SessionPostedCount int       `json:"session_posted_count"`
	Time               time.Time `json:"time"`
}

// Session holds the enabled flag, the loaded universe and the posted set.
// It is safe for concurrent use by the scheduler and the command handlers.
type Session struct {
	mu       sync.RWMutex
	enabled  bool
	universe []string

	posted   *dedup.Store
	provider universe.Provider
	window   *markethours.Window
	log      zerolog.Logger
}

// New creates a disabled session with an empty universe.
func New(provider universe.Provider, window *markethours.Window, log zerolog.Logger) *Session {
	if window == nil {
		window = markethours.Default()
	}
	return &Session{
		posted:   dedup.NewStore(),
		provider: provider,
		window:   window,
		log:      log.With().Str("component", "session").Logger(),
	}
}

// LoadUniverse (re)reads the symbol list and returns its size.
func (s *Session) LoadUniverse(ctx context.Context) int {
	var symbols []string
	if s.provider != nil {
		symbols = s.provider.Load(ctx)
	}
	symbols = universe.Normalize(symbols)

	s.mu.Lock()
	s.universe = symbols
	s.mu.Unlock()

	metrics.UniverseSize.Set(float64(len(symbols)))
	s.log.Info().Int("symbols", len(symbols)).Msg("universe loaded")
	return len(symbols)
}

// Start enables scanning and clears the posted set so every ticker may be
// surfaced again.
func (s *Session) Start() {
	s.mu.Lock()
	s.enabled = true
	s.mu.Unlock()
	s.posted.Clear()
	metrics.PostedTickers.Set(0)
	s.log.Info().Msg("scanning enabled")
}

// Pause disables scanning. A scan already running finishes.
func (s *Session) Pause() {
	s.mu.Lock()
	s.enabled = false
	s.mu.Unlock()
	s.log.Info().Msg("scanning paused")
}

// Reset clears the posted set, reloads the universe and returns its new size.
// The enabled flag is unchanged.
func (s *Session) Reset(ctx context.Context) int {
	s.posted.Clear()
	metrics.PostedTickers.Set(0)
	return s.LoadUniverse(ctx)
}

// Enabled reports whether scheduled scans should run.
func (s *Session) Enabled() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.enabled
}

// Universe returns a copy of the loaded symbols.
func (s *Session) Universe() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.universe))
	copy(out, s.universe)
	return out
}

// Posted returns the session dedup store.
func (s *Session) Posted() *dedup.Store { return s.posted }

// Window returns the market-hours window.
func (s *Session) Window() *markethours.Window { return s.window }

// InWindow reports whether now is inside the market-hours window.
func (s *Session) InWindow(now time.Time) bool { return s.window.Contains(now) }

// SyncPosted refreshes the posted gauge after a scan.
func (s *Session) SyncPosted() {
	metrics.PostedTickers.Set(float64(s.posted.Len()))
}

// Status reports the session state at now.
func (s *Session) Status(now time.Time) Status {
	s.mu.RLock()
	enabled := s.enabled
	size := len(s.universe)
	s.mu.RUnlock()
	return Status{
		Enabled:            enabled,
		InMarketWindow:     s.window.Contains(now),
		UniverseSize:       size,
		SessionPostedCount: s.posted.Len(),
		Time:               now,
	}
}
