// Package export writes tables as Excel workbooks.
package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/rongwang/nyayadrishti/internal/dataset"
)

// ContentType is the MIME type of the generated workbooks
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const defaultSheet = "Sheet1"

// Sheet is one named table in a workbook
type Sheet struct {
	Name  string
	Table *dataset.Table
}

// WriteXLSX renders the sheets into an .xlsx workbook. Dates are written as
// date cells and numbers as numbers; nulls stay empty.
func WriteXLSX(sheets ...Sheet) ([]byte, error) {
	if len(sheets) == 0 {
		return nil, fmt.Errorf("no sheets to export")
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}
	dateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	if err != nil {
		return nil, fmt.Errorf("failed to create date style: %w", err)
	}

	for i, sheet := range sheets {
		index, err := f.NewSheet(sheet.Name)
		if err != nil {
			return nil, fmt.Errorf("failed to create sheet %s: %w", sheet.Name, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if err := writeSheet(f, sheet, headerStyle, dateStyle); err != nil {
			return nil, err
		}
	}

	if !hasSheet(sheets, defaultSheet) {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("failed to delete default sheet: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSheet(f *excelize.File, sheet Sheet, headerStyle, dateStyle int) error {
	columns := sheet.Table.Columns()
	if len(columns) == 0 {
		return nil
	}

	header := make([]any, len(columns))
	for j, name := range columns {
		header[j] = name
	}
	if err := f.SetSheetRow(sheet.Name, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(len(columns), 1)
	if err != nil {
		return fmt.Errorf("failed to convert coordinates: %w", err)
	}
	if err := f.SetCellStyle(sheet.Name, "A1", last, headerStyle); err != nil {
		return fmt.Errorf("failed to set header style: %w", err)
	}

	for i := 0; i < sheet.Table.Len(); i++ {
		row := sheet.Table.Row(i)
		for j, name := range columns {
			v := row.Get(name)
			if v.IsNull() {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(j+1, i+2)
			if err != nil {
				return fmt.Errorf("failed to convert coordinates: %w", err)
			}
			if err := f.SetCellValue(sheet.Name, cell, cellValue(v)); err != nil {
				return fmt.Errorf("failed to set cell %s: %w", cell, err)
			}
			if v.Kind == dataset.KindDate {
				if err := f.SetCellStyle(sheet.Name, cell, cell, dateStyle); err != nil {
					return fmt.Errorf("failed to set date style: %w", err)
				}
			}
		}
	}

	for j := range columns {
		col, err := excelize.ColumnNumberToName(j + 1)
		if err != nil {
			return fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(sheet.Name, col, col, 18); err != nil {
			return fmt.Errorf("failed to set column width: %w", err)
		}
	}
	return nil
}

func cellValue(v dataset.Value) any {
	switch v.Kind {
	case dataset.KindInt:
		return v.Int
	case dataset.KindFloat:
		return v.Float
	case dataset.KindDate:
		return v.Date
	default:
		return v.String()
	}
}

func hasSheet(sheets []Sheet, name string) bool {
	for _, s := range sheets {
		if s.Name == name {
			return true
		}
	}
	return false
}
