package render

import (
	"sort"

	"github.com/GoWeddingSite/GoWeddingSite/internal/model"
)

const (
	topGifts      = 5
	maxLabelRunes = 15
)

// Bar is one bar of the popularity chart.
type Bar struct {
	Label string
	Count int
}

// Summary is the public transparency dashboard.
type Summary struct {
	TotalGifts int
	TotalValue float64
	Top        []Bar
	Gifts      []model.Gift
}

// Summarize adds up the purchased gifts. Top holds the five gifts with the
// highest counter; equal counters keep the catalog order.
func Summarize(gifts []model.Gift) Summary {
	sum := Summary{Gifts: gifts}

	for _, g := range gifts {
		sum.TotalGifts += g.PurchasedCount
		sum.TotalValue += g.Price * float64(g.PurchasedCount)
	}

	sorted := make([]model.Gift, len(gifts))
	copy(sorted, gifts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PurchasedCount > sorted[j].PurchasedCount
	})

	if len(sorted) > topGifts {
		sorted = sorted[:topGifts]
	}

	sum.Top = make([]Bar, 0, len(sorted))
	for _, g := range sorted {
		sum.Top = append(sum.Top, Bar{Label: Truncate(g.Name), Count: g.PurchasedCount})
	}

	return sum
}

// Truncate shortens long gift names for the chart axis.
func Truncate(name string) string {
	r := []rune(name)
	if len(r) <= maxLabelRunes {
		return name
	}

	return string(r[:maxLabelRunes]) + "..."
}
