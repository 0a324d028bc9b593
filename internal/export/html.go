package export

import (
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/erazemk/shramba/internal/model"
	"github.com/erazemk/shramba/internal/stats"
)

//go:embed report.html
var reportSource string

var reportTemplate = template.Must(template.New("report").Parse(reportSource))

type reportRow struct {
	Name         string
	Location     string
	Value        string
	PurchaseDate string
	WarrantyEnd  string
}

// HTML writes a printable inventory report.
func HTML(w io.Writer, items []model.Item, locs []model.Location, now time.Time) error {
	paths := pathIndex(locs)
	s := stats.Compute(items, locs)

	rows := make([]reportRow, 0, len(items))
	for _, it := range items {
		loc := locationPath(it.LocationID, paths)
		if loc == "" {
			loc = "No location"
		}
		value := ""
		if it.Value != "" {
			value = "$" + model.ParseValue(it.Value).StringFixed(2)
		}
		rows = append(rows, reportRow{
			Name:         it.Name,
			Location:     loc,
			Value:        value,
			PurchaseDate: formatDate(it.PurchaseDate),
			WarrantyEnd:  formatDate(it.WarrantyEndDate),
		})
	}

	err := reportTemplate.Execute(w, struct {
		TotalItems int
		TotalValue string
		Generated  string
		Rows       []reportRow
	}{
		TotalItems: s.TotalItems,
		TotalValue: s.TotalValue.StringFixed(2),
		Generated:  now.UTC().Format(DateLayout),
		Rows:       rows,
	})
	if err != nil {
		return fmt.Errorf("rendering html report: %w", err)
	}
	return nil
}
