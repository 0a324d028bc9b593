// Package export renders the inventory as CSV, HTML and XLSX documents.
// Nothing in this package mutates state.
package export

import (
	"strings"
	"time"

	"github.com/erazemk/shramba/internal/model"
)

// DateLayout is used for every date written by an exporter.
const DateLayout = "2006-01-02"

// Columns is the fixed column order shared by the tabular exporters.
var Columns = []string{
	"Name",
	"Description",
	"Barcode",
	"Value",
	"Purchase Date",
	"Warranty End Date",
	"Location",
	"Notes",
	"Created Date",
}

// row flattens an item into Columns order.
func row(it model.Item, paths map[int64]string) []string {
	return []string{
		it.Name,
		it.Description,
		it.Barcode,
		strings.TrimSpace(it.Value),
		formatDate(it.PurchaseDate),
		formatDate(it.WarrantyEndDate),
		locationPath(it.LocationID, paths),
		it.Notes,
		it.CreatedAt.UTC().Format(DateLayout),
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.UTC().Format(DateLayout)
}

// pathIndex maps location IDs to their materialized paths.
func pathIndex(locs []model.Location) map[int64]string {
	paths := make(map[int64]string, len(locs))
	for _, l := range locs {
		paths[l.ID] = l.Path
	}
	return paths
}

// locationPath resolves an item's location. Deleted locations render empty.
func locationPath(id *int64, paths map[int64]string) string {
	if id == nil {
		return ""
	}
	return paths[*id]
}
