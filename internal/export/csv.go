package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/erazemk/shramba/internal/model"
)

// CSV writes one header row followed by one row per item. Fields are
// quoted when they contain a comma, quote, CR or LF, and also when they
// start with a space or tab so readers that trim unquoted fields keep the
// leading whitespace.
func CSV(w io.Writer, items []model.Item, locs []model.Location) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("writing csv header: %w", err)
	}

	paths := pathIndex(locs)
	for _, it := range items {
		if err := cw.Write(row(it, paths)); err != nil {
			return fmt.Errorf("writing csv row for item %d: %w", it.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}
	return nil
}
