package screener

import (
	"sort"

	"tradeScout/internal/domain"
)

// Rank returns the signaled analyses ordered by descending trend score, then
// descending last daily return, then symbol ascending. The lexicographic
// final key makes full ties deterministic regardless of the order symbols
// finished in. The input slice is never modified.
func Rank(analyses []*domain.Analysis) []*domain.Analysis {
	ranked := make([]*domain.Analysis, 0, len(analyses))
	for _, a := range analyses {
		if a != nil && a.TradeSignal {
			ranked = append(ranked, a)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].TrendScore != ranked[j].TrendScore {
			return ranked[i].TrendScore > ranked[j].TrendScore
		}
		if ranked[i].LastReturnPct != ranked[j].LastReturnPct {
			return ranked[i].LastReturnPct > ranked[j].LastReturnPct
		}
		return ranked[i].Symbol < ranked[j].Symbol
	})
	return ranked
}

// BestCandidate returns the top ranked analysis. ok is false when nothing
// signaled; a day without candidates is a legitimate outcome, not an error.
func BestCandidate(analyses []*domain.Analysis) (*domain.Analysis, bool) {
	ranked := Rank(analyses)
	if len(ranked) == 0 {
		return nil, false
	}
	return ranked[0], true
}
