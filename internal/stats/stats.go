// Package stats computes aggregate inventory statistics.
package stats

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/erazemk/shramba/internal/model"
)

// RecentLimit is the number of items reported as recent.
const RecentLimit = 5

// Compute derives the aggregate view from the full item and location
// collections. It is recomputed from scratch on every call.
func Compute(items []model.Item, locations []model.Location) model.Stats {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(model.ParseValue(it.Value))
	}

	return model.Stats{
		TotalItems:     len(items),
		TotalValue:     total,
		LocationsCount: len(locations),
		RecentItems:    Recent(items, RecentLimit),
	}
}

// Recent returns up to n items ordered by creation time, newest first.
// Items created at the same instant keep their input order.
func Recent(items []model.Item, n int) []model.Item {
	sorted := slices.Clone(items)
	slices.SortStableFunc(sorted, func(a, b model.Item) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	if sorted == nil {
		sorted = []model.Item{}
	}
	return sorted
}
