package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"tradeScout/config"
	"tradeScout/internal/adapters/logger"
	"tradeScout/internal/adapters/sqlite"
)

// run_history prints the screening runs stored in the local database.
func main() {
	limit := flag.Int("limit", 10, "number of runs to show")
	last := flag.Bool("last", false, "also print the analyses of the most recent run")
	flag.Parse()

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: Failed to load configuration: %v", err) // Use standard log before logger is ready
	}

	// 2. Initialize Logger
	appLogger := logger.NewStdLogger(cfg.LogLevel)

	// 3. Open the run history database
	repo, err := sqlite.NewRepository(sqlite.Config{DBPath: cfg.DBPath, Logger: appLogger})
	if err != nil {
		appLogger.Error(context.Background(), err, "FATAL: Failed to open run history database")
		log.Fatalf("FATAL: Failed to open run history database: %v", err)
	}
	defer repo.Close()

	ctx := context.Background()
	runs, err := repo.RecentRuns(ctx, *limit)
	if err != nil {
		appLogger.Error(ctx, err, "Failed to load recent runs")
		log.Fatalf("Failed to load recent runs: %v", err)
	}
	if len(runs) == 0 {
		fmt.Println("No screening runs recorded yet.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(w, "ID\tStarted\tFinished\tRequested\tAnalyzed\tBest\t")
	for _, run := range runs {
		best := run.BestSymbol
		if best == "" {
			best = "-"
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\t%d\t%s\t\n",
			run.ID,
			run.StartedAt.Format("2006-01-02 15:04"),
			run.FinishedAt.Format("2006-01-02 15:04"),
			run.SymbolsRequested,
			run.SymbolsAnalyzed,
			best,
		)
	}
	w.Flush()

	if !*last {
		return
	}

	analyses, err := repo.AnalysesForRun(ctx, runs[0].ID)
	if err != nil {
		appLogger.Error(ctx, err, "Failed to load analyses for run")
		log.Fatalf("Failed to load analyses for run %d: %v", runs[0].ID, err)
	}
	if len(analyses) == 0 {
		fmt.Printf("\nRun %d stored no analyses.\n", runs[0].ID)
		return
	}

	fmt.Printf("\nAnalyses for run %d:\n", runs[0].ID)
	aw := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', tabwriter.AlignRight|tabwriter.Debug)
	fmt.Fprintln(aw, "Symbol\tLastClose\tReturn%\tScore\tSignal\tReason\t")
	for _, a := range analyses {
		fmt.Fprintf(aw, "%s\t%.2f\t%.2f\t%d\t%t\t%s\t\n",
			a.Symbol,
			a.LastClose,
			a.LastReturnPct,
			a.TrendScore,
			a.TradeSignal,
			a.Reason,
		)
	}
	aw.Flush()
}
