package output

import (
	"fmt"
	"orderenhancer/exporter"
	"os"
)

// CSVWriter stores the enhanced text exactly as produced, byte order mark
// included.
type CSVWriter struct{}

func (w *CSVWriter) Write(path string, result *exporter.Result) error {
	if err := os.WriteFile(path, []byte(result.Text), 0o644); err != nil {
		return fmt.Errorf("write csv output %s: %w", path, err)
	}
	return nil
}
