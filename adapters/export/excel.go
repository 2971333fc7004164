package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"gostop/app"
)

const sheetName = "Sweep"

// WriteXLSX writes a sweep result as a spreadsheet: one row per skip value
// with the success probability and markers for the empirical and theoretical
// optima. The output is plain tabular data for charting elsewhere.
func WriteXLSX(result *app.SweepResult, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	idx, err := f.NewSheet(sheetName)
	if err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}
	f.SetActiveSheet(idx)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("drop default sheet: %w", err)
	}

	headers := []string{"Skip", "Probability", "Marker"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheetName, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", h, err)
		}
	}

	for rowIdx, pt := range result.Curve {
		row := rowIdx + 2
		values := []interface{}{pt.Skip, pt.Probability, marker(result, pt.Skip)}
		for c, v := range values {
			cell, _ := excelize.CoordinatesToCellName(c+1, row)
			if err := f.SetCellValue(sheetName, cell, v); err != nil {
				return fmt.Errorf("write row %d: %w", row, err)
			}
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save workbook: %w", err)
	}
	return nil
}

func marker(result *app.SweepResult, skip int) string {
	switch {
	case skip == result.Optimum.Skip && skip == result.TheoreticalSkip:
		return "empirical+theoretical optimum"
	case skip == result.Optimum.Skip:
		return "empirical optimum"
	case skip == result.TheoreticalSkip:
		return "theoretical optimum"
	default:
		return ""
	}
}
