package output

import (
	"encoding/csv"
	"fmt"
	"orderenhancer/order"
	"os"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
)

var historyHeaders = []string{"RunID", "ExportedAt", "Source", "Output", "Format", "Schema", "Mode", "OriginalRows", "ProcessedRows", "SkippedRows", "ConsolidationRatio", "FieldErrors"}

func historyRow(run order.Run) []string {
	return []string{
		run.RunID,
		run.Stats.ExportedAt.Format(time.RFC3339),
		run.SourceFile,
		run.OutputFile,
		run.Format,
		run.Schema,
		run.Mode,
		strconv.Itoa(run.Stats.OriginalRows),
		strconv.Itoa(run.Stats.ProcessedRows),
		strconv.Itoa(run.Stats.SkippedRows),
		fmt.Sprintf("%.2f", run.Stats.ConsolidationRatio),
		strconv.Itoa(run.FieldErrors),
	}
}

// WriteRunHistory exports recorded runs as CSV or Excel.
func WriteRunHistory(path, format string, runs []order.Run) error {
	switch normalizeFormat(format) {
	case "csv":
		return writeRunHistoryCSV(path, runs)
	case "excel", "xlsx":
		return writeRunHistoryExcel(path, runs)
	default:
		return fmt.Errorf("unsupported output format for run history: %s", format)
	}
}

func writeRunHistoryCSV(path string, runs []order.Run) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv output %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(historyHeaders); err != nil {
		return fmt.Errorf("write csv headers: %w", err)
	}
	for _, run := range runs {
		if err := writer.Write(historyRow(run)); err != nil {
			return fmt.Errorf("write csv row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv output: %w", err)
	}

	return nil
}

func writeRunHistoryExcel(path string, runs []order.Run) error {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	if err := writeSheetRow(file, sheet, 1, historyHeaders); err != nil {
		return err
	}
	for i, run := range runs {
		if err := writeSheetRow(file, sheet, i+2, historyRow(run)); err != nil {
			return err
		}
	}

	if err := file.SaveAs(path); err != nil {
		return fmt.Errorf("save excel output %s: %w", path, err)
	}

	return nil
}
