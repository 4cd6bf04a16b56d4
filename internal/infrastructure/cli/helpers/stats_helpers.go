package helpers

import (
	"fmt"

	"github.com/doeshing/baseconv/internal/domain"
)

// CalculateShare returns count as a percentage of total.
func CalculateShare(count int, total int) float64 {
	if total == 0 {
		return 0.0
	}
	return float64(count) / float64(total) * 100.0
}

// FormatPairCount renders one `history stats` row, e.g.
// "Hexadecimal to Binary          3 (42.9%)".
func FormatPairCount(pc domain.PairCount, total int) string {
	return fmt.Sprintf("%-28s %d (%.1f%%)", pc.Pair, pc.Count, CalculateShare(pc.Count, total))
}
