package dataset

import (
	"fmt"

	"github.com/Faultbox/stockbars/internal/chart"
)

// LegendEntry summarizes one company.
type LegendEntry struct {
	Symbol  string
	Average float64
	Color   chart.Color
}

// String formats the entry as "AAPL (avg: $123.45)".
func (e LegendEntry) String() string {
	return fmt.Sprintf("%s (avg: $%.2f)", e.Symbol, e.Average)
}

// Legend averages prices per symbol. Entries are in first-seen order and
// colored by position in that order.
func Legend(points []chart.DataPoint, palette chart.Palette) []LegendEntry {
	var order []string
	sums := make(map[string]float64)
	counts := make(map[string]int)

	for _, p := range points {
		if _, seen := counts[p.Symbol]; !seen {
			order = append(order, p.Symbol)
		}
		sums[p.Symbol] += float64(p.Value)
		counts[p.Symbol]++
	}

	entries := make([]LegendEntry, len(order))
	for i, sym := range order {
		entries[i] = LegendEntry{
			Symbol:  sym,
			Average: sums[sym] / float64(counts[sym]),
			Color:   palette.For(i),
		}
	}
	return entries
}
