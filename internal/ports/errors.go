package ports

import "errors"

// Standard application-level errors.
// Adapters wrap underlying infrastructure errors with these standard errors so
// the core can branch with errors.Is without knowing which provider produced
// the failure.
var (
	// Analysis Errors
	ErrInvalidSeries       = errors.New("price series is missing or malformed")
	ErrDivisionByZero      = errors.New("division by zero in return computation")
	ErrInsufficientHistory = errors.New("insufficient price history for analysis")

	// Provider Errors
	ErrFetchFailed         = errors.New("failed to fetch price data")
	ErrSymbolNotFound      = errors.New("symbol not found at provider")
	ErrEmptyRange          = errors.New("no price data in requested range")
	ErrRateLimited         = errors.New("API rate limit exceeded")
	ErrProviderUnavailable = errors.New("market data provider is unavailable")
	ErrTimeout             = errors.New("operation timed out")
	ErrContextCanceled     = errors.New("operation canceled via context")

	// Database Specific Errors
	ErrDBConnection = errors.New("database connection error")
	ErrQueryFailed  = errors.New("database query failed")
)
