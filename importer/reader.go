package importer

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Reader loads an order export file and returns its content as CSV text.
type Reader interface {
	Read(path string) (string, error)
}

func ReaderForFormat(format string) (Reader, error) {
	switch normalizeHeader(format) {
	case "csv":
		return &CSVReader{}, nil
	case "excel", "xlsx", "xlsm":
		return &ExcelReader{}, nil
	default:
		return nil, fmt.Errorf("unsupported input format: %s", format)
	}
}

// InferFormat returns format when set, otherwise derives it from the file
// extension.
func InferFormat(path string, format string) (string, error) {
	if strings.TrimSpace(format) != "" {
		return format, nil
	}

	extension := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	switch extension {
	case "csv", "txt":
		return "csv", nil
	case "xlsx", "xlsm":
		return "excel", nil
	default:
		return "", fmt.Errorf("unsupported file extension for %s", path)
	}
}

// ReadFile picks a reader for path and returns the export text.
func ReadFile(path, format string) (string, error) {
	sourceFormat, err := InferFormat(path, format)
	if err != nil {
		return "", err
	}
	reader, err := ReaderForFormat(sourceFormat)
	if err != nil {
		return "", err
	}
	return reader.Read(path)
}
