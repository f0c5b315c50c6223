package timeutil

import (
	"fmt"
	"strings"
	"time"
)

// DisplayFormats lists the supported date display formats, written in the
// PHP date() notation used by the store configuration.
var DisplayFormats = []string{
	"Y-m-d H:i:s",
	"d/m/Y H:i",
	"m/d/Y H:i",
	"d-m-Y H:i",
	"M j, Y g:i A",
}

const DefaultDisplayFormat = "Y-m-d H:i:s"

var phpTokens = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "01",
	'n': "1",
	'd': "02",
	'j': "2",
	'H': "15",
	'G': "15",
	'h': "03",
	'g': "3",
	'i': "04",
	's': "05",
	'A': "PM",
	'a': "pm",
	'M': "Jan",
	'F': "January",
	'D': "Mon",
}

// Layout translates a PHP date() format into a Go time layout.
func Layout(phpFormat string) (string, error) {
	if strings.TrimSpace(phpFormat) == "" {
		return "", fmt.Errorf("empty date format")
	}
	var layout strings.Builder
	for i := 0; i < len(phpFormat); i++ {
		char := phpFormat[i]
		if token, ok := phpTokens[char]; ok {
			layout.WriteString(token)
			continue
		}
		if (char >= 'a' && char <= 'z') || (char >= 'A' && char <= 'Z') {
			return "", fmt.Errorf("unsupported date format token %q in %q", char, phpFormat)
		}
		layout.WriteByte(char)
	}
	return layout.String(), nil
}

var inputLayouts = []string{
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan 2, 2006 3:04:05 PM",
	"Jan 2, 2006 3:04 PM",
	"Jan 2, 2006",
	"02/01/2006 15:04",
	"02-01-2006 15:04",
	"01/02/2006 15:04:05",
}

// Parse accepts the date shapes found in store exports.
func Parse(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range inputLayouts {
		if parsed, err := time.ParseInLocation(layout, value, time.UTC); err == nil {
			return parsed, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported date format: %q", value)
}

// Reformat renders value with layout. Values that cannot be parsed are
// returned unchanged.
func Reformat(value, layout string) string {
	parsed, err := Parse(value)
	if err != nil {
		return value
	}
	return parsed.Format(layout)
}
