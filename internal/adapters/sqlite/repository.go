package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"tradeScout/internal/domain"
	"tradeScout/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.RunRepository interface using SQLite.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("logger is required for SQLite repository")
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/tradescout.db" // Default path
	}

	// Create data directory if it doesn't exist
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Open database connection
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Test the connection
	if err := db.Ping(); err != nil {
		db.Close() // Close the connection if ping fails
		err = fmt.Errorf("failed to ping database at '%s': %w: %w", dbPath, ports.ErrDBConnection, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// Set connection pool settings (important for SQLite)
	db.SetMaxOpenConns(1) // SQLite handles concurrency internally, but Go driver benefits from limiting connections
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cfg.Logger.Info(context.Background(), "SQLite database connection established", map[string]interface{}{"path": dbPath})

	repo := &Repository{db: db, logger: cfg.Logger}

	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		started_at TIMESTAMP NOT NULL,
		finished_at TIMESTAMP NOT NULL,
		symbols_requested INTEGER NOT NULL,
		symbols_analyzed INTEGER NOT NULL,
		best_symbol TEXT DEFAULT NULL
	);

	CREATE TABLE IF NOT EXISTS run_analyses (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id INTEGER NOT NULL,
		symbol TEXT NOT NULL,
		last_close REAL NOT NULL,
		last_return_pct REAL NOT NULL,
		trailing_avg REAL NOT NULL,
		trend_score INTEGER NOT NULL,
		trade_signal INTEGER NOT NULL,
		reason TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_run_analyses_run_id ON run_analyses (run_id);
	`
	_, err := r.db.ExecContext(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to execute schema initialization: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (r *Repository) Close() error {
	if r.db != nil {
		r.logger.Info(context.Background(), "Closing SQLite database connection")
		return r.db.Close()
	}
	return nil
}

// SaveRun persists a run summary and its analyses in one transaction,
// returning the new run ID.
func (r *Repository) SaveRun(ctx context.Context, summary *domain.RunSummary) (int64, error) {
	if summary == nil {
		return 0, fmt.Errorf("run summary is required")
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin run transaction: %w: %w", ports.ErrQueryFailed, err)
	}
	defer tx.Rollback()

	var bestSymbol sql.NullString
	if summary.Best != nil {
		bestSymbol = sql.NullString{String: summary.Best.Symbol, Valid: true}
	}

	const insertRun = `
	INSERT INTO runs (started_at, finished_at, symbols_requested, symbols_analyzed, best_symbol)
	VALUES (?, ?, ?, ?, ?)`

	result, err := tx.ExecContext(ctx, insertRun,
		summary.StartedAt, summary.FinishedAt, summary.SymbolsRequested, len(summary.Analyses), bestSymbol)
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w: %w", ports.ErrQueryFailed, err)
	}

	runID, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run ID: %w: %w", ports.ErrQueryFailed, err)
	}

	const insertAnalysis = `
	INSERT INTO run_analyses (run_id, symbol, last_close, last_return_pct, trailing_avg, trend_score, trade_signal, reason)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	for _, a := range summary.Analyses {
		if _, err := tx.ExecContext(ctx, insertAnalysis,
			runID, a.Symbol, a.LastClose, a.LastReturnPct, a.TrailingAvg, a.TrendScore, a.TradeSignal, a.Reason); err != nil {
			return 0, fmt.Errorf("failed to insert analysis for %s: %w: %w", a.Symbol, ports.ErrQueryFailed, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit run transaction: %w: %w", ports.ErrQueryFailed, err)
	}

	r.logger.Debug(ctx, "Run persisted", map[string]interface{}{
		"runID":    runID,
		"analyses": len(summary.Analyses),
	})
	return runID, nil
}

// RecentRuns returns the most recent runs, newest first, up to limit.
func (r *Repository) RecentRuns(ctx context.Context, limit int) ([]domain.RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	const query = `
	SELECT id, started_at, finished_at, symbols_requested, symbols_analyzed, COALESCE(best_symbol, '')
	FROM runs
	ORDER BY started_at DESC, id DESC
	LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent runs: %w: %w", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	records := make([]domain.RunRecord, 0)
	for rows.Next() {
		var rec domain.RunRecord
		if err := rows.Scan(&rec.ID, &rec.StartedAt, &rec.FinishedAt,
			&rec.SymbolsRequested, &rec.SymbolsAnalyzed, &rec.BestSymbol); err != nil {
			return nil, fmt.Errorf("failed to scan run record: %w: %w", ports.ErrQueryFailed, err)
		}
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating run rows: %w: %w", ports.ErrQueryFailed, err)
	}
	return records, nil
}

// AnalysesForRun returns the stored analyses of one run in insertion order.
func (r *Repository) AnalysesForRun(ctx context.Context, runID int64) ([]*domain.Analysis, error) {
	const query = `
	SELECT symbol, last_close, last_return_pct, trailing_avg, trend_score, trade_signal, reason
	FROM run_analyses
	WHERE run_id = ?
	ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses for run %d: %w: %w", runID, ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	analyses := make([]*domain.Analysis, 0)
	for rows.Next() {
		a := &domain.Analysis{}
		if err := rows.Scan(&a.Symbol, &a.LastClose, &a.LastReturnPct,
			&a.TrailingAvg, &a.TrendScore, &a.TradeSignal, &a.Reason); err != nil {
			return nil, fmt.Errorf("failed to scan analysis for run %d: %w: %w", runID, ports.ErrQueryFailed, err)
		}
		analyses = append(analyses, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis rows: %w: %w", ports.ErrQueryFailed, err)
	}
	return analyses, nil
}
