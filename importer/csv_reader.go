package importer

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// CSVReader returns the raw file text. A UTF-8 or UTF-16 byte order mark
// selects the decoding and is removed; files without one are passed through
// byte for byte so later sanitizing can repair legacy encodings.
type CSVReader struct{}

func (r *CSVReader) Read(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open csv file %s: %w", path, err)
	}
	defer file.Close()

	decoded := transform.NewReader(file, unicode.BOMOverride(transform.Nop))
	content, err := io.ReadAll(decoded)
	if err != nil {
		return "", fmt.Errorf("read csv file %s: %w", path, err)
	}
	return string(content), nil
}
