package render

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/fund-report/internal/report"
)

const (
	defaultSheet = "Sheet1"
	columnWidth  = 16.0
)

// SpreadsheetWriter exports a flat dump as a single-sheet workbook.
type SpreadsheetWriter struct {
	SheetName string
}

// Write encodes dump as xlsx to w. The first row holds field names; absent
// values are left empty and numbers stay numeric.
func (s SpreadsheetWriter) Write(dump report.FlatDump, w io.Writer) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	sheet := defaultSheet
	if s.SheetName != "" && s.SheetName != defaultSheet {
		if err := f.SetSheetName(defaultSheet, s.SheetName); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", s.SheetName, err)
		}
		sheet = s.SheetName
	}

	header := make([]interface{}, len(dump.Header))
	for i, h := range dump.Header {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, row := range dump.Rows {
		for j, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return fmt.Errorf("failed to write %s: %w", cell, err)
			}
		}
	}

	if len(dump.Header) > 0 {
		bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return err
		}
		if err := f.SetRowStyle(sheet, 1, 1, bold); err != nil {
			return err
		}
		last, err := excelize.ColumnNumberToName(len(dump.Header))
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, "A", last, columnWidth); err != nil {
			return err
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
