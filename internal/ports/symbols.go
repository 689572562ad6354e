package ports

import "context"

// SymbolSource resolves the basket of symbols a screening run works on.
type SymbolSource interface {
	// Symbols returns candidate symbols in priority order. The caller applies
	// any configured cap; sources return everything they know about.
	Symbols(ctx context.Context) ([]string, error)
}
