package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/erazemk/shramba/internal/model"
)

// SheetName is the worksheet that holds the inventory.
const SheetName = "Inventory"

// valueColumn is the 1-based index of "Value" in Columns.
const valueColumn = 4

// XLSX writes the inventory as a spreadsheet with the same columns as CSV.
// Values that parse as numbers are stored as numeric cells.
func XLSX(w io.Writer, items []model.Item, locs []model.Location) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	for i, name := range Columns {
		if err := setCell(f, i+1, 1, name); err != nil {
			return err
		}
	}

	paths := pathIndex(locs)
	for r, it := range items {
		for c, v := range row(it, paths) {
			var cell any = v
			if c+1 == valueColumn && v != "" {
				n, _ := model.ParseValue(v).Float64()
				cell = n
			}
			if err := setCell(f, c+1, r+2, cell); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing xlsx: %w", err)
	}
	return nil
}

func setCell(f *excelize.File, col, row int, v any) error {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("resolving cell: %w", err)
	}
	if err := f.SetCellValue(SheetName, name, v); err != nil {
		return fmt.Errorf("setting cell %s: %w", name, err)
	}
	return nil
}
