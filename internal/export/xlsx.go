// Package export renders query results into spreadsheet workbooks.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/auto72auto/wisebricks/internal/catalog"
)

const sheetName = "Sets"

var headers = []string{"Set number", "Title", "Theme", "Pieces", "Release year", "RRP (GBP)"}

// SearchWorkbook builds a single-sheet workbook from ranked search results.
// Unknown attributes stay as empty cells.
func SearchWorkbook(results []catalog.SetView) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for i, s := range results {
		row := i + 2
		values := []interface{}{
			s.SetNumber,
			s.Title,
			catalog.ThemeOrUnknown(s.Theme),
			optInt(s.Pieces),
			optInt(s.ReleaseYear),
			optFloat(s.RRPGBP),
		}
		for col, v := range values {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}

func optInt(v *int) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func optFloat(v *float64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}
