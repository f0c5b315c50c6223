package output

import (
	"fmt"
	"orderenhancer/exporter"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

const (
	ordersSheet = "Orders"
	statsSheet  = "Statistics"
)

// ExcelWriter stores the orders on one sheet and the run statistics on a
// second one.
type ExcelWriter struct{}

func (w *ExcelWriter) Write(path string, result *exporter.Result) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(file.GetSheetName(0), ordersSheet); err != nil {
		return fmt.Errorf("rename excel sheet: %w", err)
	}

	if err := writeSheetRow(file, ordersSheet, 1, result.Header); err != nil {
		return err
	}
	for i, row := range result.Rows {
		if err := writeSheetRow(file, ordersSheet, i+2, row); err != nil {
			return err
		}
	}
	if len(result.Header) > 0 {
		if err := file.SetPanes(ordersSheet, &excelize.Panes{
			Freeze:      true,
			YSplit:      1,
			TopLeftCell: "A2",
			ActivePane:  "bottomLeft",
		}); err != nil {
			return fmt.Errorf("freeze excel header: %w", err)
		}
	}

	if _, err := file.NewSheet(statsSheet); err != nil {
		return fmt.Errorf("create excel sheet %s: %w", statsSheet, err)
	}
	stats := result.Stats
	statRows := [][]string{
		{"Mode", string(result.Mode)},
		{"Original Rows", strconv.Itoa(stats.OriginalRows)},
		{"Processed Rows", strconv.Itoa(stats.ProcessedRows)},
		{"Skipped Rows", strconv.Itoa(stats.SkippedRows)},
		{"Consolidation Ratio", fmt.Sprintf("%.2f%%", stats.ConsolidationRatio)},
		{"Exported At", stats.ExportedAt.Format(time.RFC3339)},
	}
	for i, row := range statRows {
		if err := writeSheetRow(file, statsSheet, i+1, row); err != nil {
			return err
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}

// writeSheetRow stores values as text cells so formula-like content is
// never evaluated.
func writeSheetRow(file *excelize.File, sheet string, row int, values []string) error {
	for col, value := range values {
		cell, _ := excelize.CoordinatesToCellName(col+1, row)
		if err := file.SetCellStr(sheet, cell, value); err != nil {
			return fmt.Errorf("set excel value %s!%s: %w", sheet, cell, err)
		}
	}
	return nil
}
