package xlsexport

import (
	"strconv"

	"github.com/xuri/excelize/v2"
)

const (
	fontFamily = "Arial"
	fontSize   = 10
	colWidth   = 22
)

func newCellStyle(f *excelize.File, horizontal string, bold bool) (int, error) {
	return f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: horizontal,
			Vertical:   "center",
			WrapText:   !bold,
		},
		Font: &excelize.Font{
			Bold:   bold,
			Family: fontFamily,
			Size:   fontSize,
		},
	})
}

// setRangeStyle columnas y filas desde 1, ambos extremos incluidos
func setRangeStyle(f *excelize.File, sheet string, style, colFrom, rowFrom, colTo, rowTo int) error {
	first, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, first, last, style)
}

func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

// writeHeader escribe los titulos en la fila siguiente y la devuelve
func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	style, err := newCellStyle(f, "center", true)
	if err != nil {
		return row, err
	}
	if err = setRangeStyle(f, sheet, style, 1, row, len(headers), row); err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, colWidth); err != nil {
		return row, err
	}
	values := make([]interface{}, 0, len(headers))
	for _, header := range headers {
		values = append(values, header)
	}
	if err = writeRow(f, sheet, row, values); err != nil {
		return row, err
	}
	// titulos fijos al desplazarse
	return row, f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      row,
		TopLeftCell: "A" + strconv.Itoa(row+1),
		ActivePane:  "bottomLeft",
	})
}

func applyDataCellStyle(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int) error {
	style, err := newCellStyle(f, "left", false)
	if err != nil {
		return err
	}
	return setRangeStyle(f, sheet, style, colFrom, rowFrom, colTo, rowTo)
}
