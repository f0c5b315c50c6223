package importer

import (
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelReader renders the first sheet of a workbook as CSV text.
type ExcelReader struct{}

func (r *ExcelReader) Read(path string) (string, error) {
	file, err := excelize.OpenFile(path)
	if err != nil {
		return "", fmt.Errorf("open excel file %s: %w", path, err)
	}
	defer file.Close()

	sheetName := file.GetSheetName(0)
	if sheetName == "" {
		return "", fmt.Errorf("excel file has no sheets: %s", path)
	}

	rows, err := file.GetRows(sheetName)
	if err != nil {
		return "", fmt.Errorf("read rows from sheet %s: %w", sheetName, err)
	}
	if len(rows) == 0 {
		return "", fmt.Errorf("sheet %s is empty", sheetName)
	}

	// GetRows drops trailing empty cells; pad to the header width.
	width := len(rows[0])
	var text strings.Builder
	writer := csv.NewWriter(&text)
	for i, row := range rows {
		if i > 0 && blankRow(row) {
			continue
		}
		for len(row) < width {
			row = append(row, "")
		}
		if err := writer.Write(row); err != nil {
			return "", fmt.Errorf("render sheet %s row %d: %w", sheetName, i+1, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return "", fmt.Errorf("render sheet %s: %w", sheetName, err)
	}

	return text.String(), nil
}

func blankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
