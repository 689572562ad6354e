package symbolsource

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// YAMLSource loads the basket from a watchlist file. Two shapes are accepted:
//
//	- AAPL
//	- MSFT
//
// or
//
//	name: tech
//	symbols:
//	  - AAPL
//	  - MSFT
type YAMLSource struct {
	path string
}

type watchlistDoc struct {
	Name    string   `yaml:"name"`
	Symbols []string `yaml:"symbols"`
}

// NewYAML creates a source reading the watchlist at path.
func NewYAML(path string) (*YAMLSource, error) {
	if path == "" {
		return nil, fmt.Errorf("watchlist path is required")
	}
	return &YAMLSource{path: path}, nil
}

// Symbols loads and normalizes the watchlist.
func (s *YAMLSource) Symbols(ctx context.Context) ([]string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watchlist %s: %w", s.path, err)
	}

	// Try the bare sequence shape first, then the named document shape.
	var syms []string
	if err := yaml.Unmarshal(data, &syms); err != nil {
		var doc watchlistDoc
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse watchlist %s: %w", s.path, err)
		}
		syms = doc.Symbols
	}

	symbols := normalizeSymbols(syms)
	if len(symbols) == 0 {
		return nil, fmt.Errorf("watchlist %s contains no symbols", s.path)
	}
	return symbols, nil
}
