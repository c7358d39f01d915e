package export

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// ContentTypeXLSX MIME тип книги Excel
const ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	defaultSheet = "Sheet1"
	columnWidth  = 18
)

var (
	// ErrBuildWorkbook возвращается при ошибке формирования xlsx
	ErrBuildWorkbook = errors.New("export: failed to build workbook")
)

// Table лист книги: заголовки и строки значений
type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]interface{}
}

// XLSX строит книгу из одного или нескольких листов и возвращает ее содержимое
func XLSX(tables ...Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#D3D3D3"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: header style: %v", ErrBuildWorkbook, err)
	}

	keepDefault := false
	for i, table := range tables {
		index, err := f.NewSheet(table.Sheet)
		if err != nil {
			return nil, fmt.Errorf("%w: sheet %q: %v", ErrBuildWorkbook, table.Sheet, err)
		}
		if i == 0 {
			f.SetActiveSheet(index)
		}
		if table.Sheet == defaultSheet {
			keepDefault = true
		}

		if err := writeTable(f, table, headerStyle); err != nil {
			return nil, err
		}
	}

	if !keepDefault && len(tables) > 0 {
		if err := f.DeleteSheet(defaultSheet); err != nil {
			return nil, fmt.Errorf("%w: delete default sheet: %v", ErrBuildWorkbook, err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("%w: write: %v", ErrBuildWorkbook, err)
	}

	return buf.Bytes(), nil
}

func writeTable(f *excelize.File, table Table, headerStyle int) error {
	for col, header := range table.Headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return fmt.Errorf("%w: header cell: %v", ErrBuildWorkbook, err)
		}
		if err := f.SetCellValue(table.Sheet, cell, header); err != nil {
			return fmt.Errorf("%w: header %q: %v", ErrBuildWorkbook, header, err)
		}
		if err := f.SetCellStyle(table.Sheet, cell, cell, headerStyle); err != nil {
			return fmt.Errorf("%w: header style: %v", ErrBuildWorkbook, err)
		}
	}

	for rowIdx, row := range table.Rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			if err != nil {
				return fmt.Errorf("%w: cell: %v", ErrBuildWorkbook, err)
			}
			if err := f.SetCellValue(table.Sheet, cell, value); err != nil {
				return fmt.Errorf("%w: cell %s: %v", ErrBuildWorkbook, cell, err)
			}
		}
	}

	if len(table.Headers) > 0 {
		last, err := excelize.ColumnNumberToName(len(table.Headers))
		if err != nil {
			return fmt.Errorf("%w: column name: %v", ErrBuildWorkbook, err)
		}
		if err := f.SetColWidth(table.Sheet, "A", last, columnWidth); err != nil {
			return fmt.Errorf("%w: column width: %v", ErrBuildWorkbook, err)
		}
	}

	return nil
}
