package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"tradeScout/internal/domain"
)

// ConsoleRenderer prints a run summary as a styled table followed by the
// best-candidate block.
type ConsoleRenderer struct {
	color  bool
	window int
}

// ConsoleOptions configures the console renderer.
type ConsoleOptions struct {
	Color  bool // ANSI colors; turn off for redirected output
	Window int  // Trend window, shown as the score denominator
}

// NewConsoleRenderer creates a console renderer.
func NewConsoleRenderer(opts ConsoleOptions) *ConsoleRenderer {
	window := opts.Window
	if window <= 0 {
		window = 5
	}
	return &ConsoleRenderer{color: opts.Color, window: window}
}

// Render writes the per-symbol table, the skipped note and the
// best-candidate block to w.
func (r *ConsoleRenderer) Render(w io.Writer, summary *domain.RunSummary) error {
	if summary == nil {
		return fmt.Errorf("run summary is required")
	}

	if len(summary.Analyses) > 0 {
		tw := table.NewWriter()
		tw.SetOutputMirror(w)
		tw.SetStyle(table.StyleLight)
		tw.AppendHeader(table.Row{"SYMBOL", "LAST CLOSE", "RETURN %", "SCORE", "SIGNAL", "REASON"})
		tw.SetColumnConfigs([]table.ColumnConfig{
			{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 3, Align: text.AlignRight, AlignHeader: text.AlignRight},
			{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignRight},
		})

		for _, a := range summary.Analyses {
			closeCell := fmt.Sprintf("$%.2f", a.LastClose)
			returnCell := fmt.Sprintf("%.2f%%", a.LastReturnPct)
			scoreCell := fmt.Sprintf("%d/%d", a.TrendScore, r.window)
			signalCell := "-"
			if a.TradeSignal {
				signalCell = "BUY"
			}
			if r.color {
				if a.LastReturnPct > 0 {
					returnCell = text.Colors{text.FgGreen}.Sprint(returnCell)
				} else if a.LastReturnPct < 0 {
					returnCell = text.Colors{text.FgRed}.Sprint(returnCell)
				}
				if a.TradeSignal {
					signalCell = text.Colors{text.FgGreen, text.Bold}.Sprint(signalCell)
				}
			}
			tw.AppendRow(table.Row{a.Symbol, closeCell, returnCell, scoreCell, signalCell, a.Reason})
		}
		tw.Render()
	}

	if len(summary.Skipped) > 0 {
		notes := make([]string, 0, len(summary.Skipped))
		for _, s := range summary.Skipped {
			notes = append(notes, fmt.Sprintf("%s (%s)", s.Symbol, s.Reason))
		}
		fmt.Fprintf(w, "Skipped %d of %d symbols: %s\n",
			len(summary.Skipped), summary.SymbolsRequested, strings.Join(notes, ", "))
	}

	fmt.Fprintln(w)
	if summary.Best == nil {
		fmt.Fprintln(w, "No strong trade candidates today.")
		return nil
	}

	best := summary.Best
	headline := fmt.Sprintf("Best trade candidate: %s", best.Symbol)
	if r.color {
		headline = text.Colors{text.FgGreen, text.Bold}.Sprint(headline)
	}
	fmt.Fprintln(w, headline)
	fmt.Fprintf(w, "  Last close:   $%.2f\n", best.LastClose)
	fmt.Fprintf(w, "  Last return:  %.2f%%\n", best.LastReturnPct)
	fmt.Fprintf(w, "  Trend score:  %d/%d\n", best.TrendScore, r.window)
	fmt.Fprintf(w, "  Reason:       %s\n", best.Reason)
	return nil
}
