package symbolsource

import (
	"context"
	"fmt"
	"strings"
)

// StaticSource serves a fixed basket, typically parsed from the SYMBOLS
// environment variable.
type StaticSource struct {
	symbols []string
}

// NewStatic creates a source over a fixed symbol list.
func NewStatic(symbols []string) (*StaticSource, error) {
	cleaned := normalizeSymbols(symbols)
	if len(cleaned) == 0 {
		return nil, fmt.Errorf("static symbol source needs at least one symbol")
	}
	return &StaticSource{symbols: cleaned}, nil
}

// Symbols returns a copy of the configured basket.
func (s *StaticSource) Symbols(ctx context.Context) ([]string, error) {
	out := make([]string, len(s.symbols))
	copy(out, s.symbols)
	return out, nil
}

// normalizeSymbols trims, uppercases and deduplicates, keeping first-seen
// order.
func normalizeSymbols(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		sym := strings.ToUpper(strings.TrimSpace(s))
		if sym == "" {
			continue
		}
		if _, dup := seen[sym]; dup {
			continue
		}
		seen[sym] = struct{}{}
		out = append(out, sym)
	}
	return out
}
