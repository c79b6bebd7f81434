package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/henrybloomingdale/pubmed-extract/internal/extract"
)

// SheetName is the single worksheet written to .xlsx files.
const SheetName = "Sheet1"

// writeXLSX writes a one-sheet workbook with a bold header row.
func writeXLSX(path string, records []extract.ArticleRecord) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("creating header style: %w", err)
	}

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("opening sheet: %w", err)
	}

	cells := make([]interface{}, len(extract.Columns))
	for i, c := range extract.Columns {
		cells[i] = excelize.Cell{StyleID: header, Value: c}
	}
	if err := sw.SetRow("A1", cells); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range records {
		row := r.Row()
		vals := make([]interface{}, len(row))
		for j, v := range row {
			vals[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, vals); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flushing sheet: %w", err)
	}
	return f.SaveAs(path)
}
