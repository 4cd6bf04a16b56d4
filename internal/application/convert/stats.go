package convert

import (
	"sort"

	"github.com/doeshing/baseconv/internal/domain"
)

// Summarize counts records and ranks base pairs by use. topN <= 0 keeps
// every pair.
func Summarize(records []domain.ConversionRecord, topN int) domain.HistoryStats {
	stats := domain.HistoryStats{Total: len(records)}
	if len(records) == 0 {
		return stats
	}

	frequency := make(map[domain.ConversionPair]int)
	stats.Oldest = records[0].Timestamp
	stats.Newest = records[0].Timestamp
	for _, rec := range records {
		frequency[rec.Pair()]++
		if rec.Timestamp.Before(stats.Oldest) {
			stats.Oldest = rec.Timestamp
		}
		if rec.Timestamp.After(stats.Newest) {
			stats.Newest = rec.Timestamp
		}
	}
	stats.TopPairs = topPairs(frequency, topN)
	return stats
}

func topPairs(frequency map[domain.ConversionPair]int, limit int) []domain.PairCount {
	counts := make([]domain.PairCount, 0, len(frequency))
	for pair, n := range frequency {
		counts = append(counts, domain.PairCount{Pair: pair, Count: n})
	}
	// count descending, then by base pair so ties are stable
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		if counts[i].Pair.From != counts[j].Pair.From {
			return counts[i].Pair.From < counts[j].Pair.From
		}
		return counts[i].Pair.To < counts[j].Pair.To
	})
	if limit > 0 && len(counts) > limit {
		return counts[:limit]
	}
	return counts
}
