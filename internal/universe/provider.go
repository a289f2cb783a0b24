// Package universe loads the ordered list of tickers to scan.
package universe

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Fallback is used whenever the configured universe cannot be loaded.
var Fallback = []string{"AAPL", "TSLA", "AMD", "NVDA", "MSFT", "GOOGL", "META", "AMZN"}

// Provider supplies the scan universe. Load never returns an empty list.
type Provider interface {
	Load(ctx context.Context) []string
}

// FileProvider reads one symbol per line from Path. Blank lines and lines
// starting with '#' are ignored.
type FileProvider struct {
	Path string
	log  zerolog.Logger
}

// NewFileProvider creates a FileProvider for path.
func NewFileProvider(path string, log zerolog.Logger) *FileProvider {
	return &FileProvider{Path: path, log: log.With().Str("component", "universe").Logger()}
}

// Load returns the symbols in file order, or Fallback on any failure.
func (p *FileProvider) Load(_ context.Context) []string {
	symbols, err := ReadSymbols(p.Path)
	if err != nil {
		p.log.Warn().Err(err).Str("path", p.Path).Int("fallback", len(Fallback)).Msg("universe load failed, using fallback")
		return append([]string(nil), Fallback...)
	}
	if len(symbols) == 0 {
		p.log.Warn().Str("path", p.Path).Msg("universe file is empty, using fallback")
		return append([]string(nil), Fallback...)
	}
	p.log.Info().Str("path", p.Path).Int("symbols", len(symbols)).Msg("universe loaded")
	return symbols
}

// ReadSymbols parses a symbols file.
func ReadSymbols(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open symbols: %w", err)
	}
	defer f.Close()

	var raw []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		raw = append(raw, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read symbols: %w", err)
	}
	return Normalize(raw), nil
}

// Normalize uppercases symbols and removes duplicates, keeping first occurrence.
func Normalize(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, s := range symbols {
		s = strings.ToUpper(strings.TrimSpace(s))
		if s == "" {
			continue
		}
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Static is a fixed universe, mainly for tests and the mock data source.
type Static []string

func (s Static) Load(_ context.Context) []string {
	if len(s) == 0 {
		return append([]string(nil), Fallback...)
	}
	return Normalize(s)
}
