// Package csvline parses and formats single CSV records for order exports.
//
// Parsing is forgiving: it never fails and always returns the best field
// sequence it can find. Formatting always quotes every field so the output
// survives re-parsing by tools with weaker CSV support.
package csvline

import (
	"encoding/csv"
	"regexp"
	"strings"
	"unicode/utf8"

	"orderenhancer/internal/sanitize"
)

const (
	// MaxFieldLength is the longest field, in characters, Format emits.
	MaxFieldLength = 2000
	// Ellipsis marks a truncated field.
	Ellipsis = "..."

	delimiter = ','
	quote     = '"'
)

var (
	whitespace = regexp.MustCompile(`\s+`)
	lineBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")
)

// Parse splits one logical line into cleaned fields.
func Parse(text string) []string {
	fields, ok := parseStandard(text)
	if !ok || (len(fields) == 1 && strings.ContainsRune(text, delimiter)) {
		fields = scan(text)
	}

	for i, field := range fields {
		fields[i] = clean(field)
	}
	return fields
}

// parseStandard runs encoding/csv over text and accepts the result only when
// text forms exactly one record.
func parseStandard(text string) ([]string, bool) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// scan is the quote-aware fallback. Line breaks are ordinary characters
// here; only an unquoted delimiter ends a field. Doubled quotes inside a
// quoted field are unescaped.
func scan(text string) []string {
	fields := make([]string, 0, 16)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(text); i++ {
		char := text[i]
		switch {
		case char == quote:
			if inQuotes && i+1 < len(text) && text[i+1] == quote {
				current.WriteByte(quote)
				i++
				continue
			}
			inQuotes = !inQuotes
		case char == delimiter && !inQuotes:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteByte(char)
		}
	}
	return append(fields, current.String())
}

// clean flattens a parsed field. Quotes are already unescaped by both
// parsers and are left alone.
func clean(field string) string {
	field = lineBreaks.Replace(field)
	field = whitespace.ReplaceAllString(field, " ")
	return strings.TrimSpace(field)
}

// Unterminated reports whether text ends inside an open quoted field, which
// means the record continues on the next physical line.
func Unterminated(text string) bool {
	inQuotes := false
	for i := 0; i < len(text); i++ {
		if text[i] != quote {
			continue
		}
		if inQuotes && i+1 < len(text) && text[i+1] == quote {
			i++
			continue
		}
		inQuotes = !inQuotes
	}
	return inQuotes
}

// Format serializes fields into one CSV line. Every field is quoted,
// internal quotes are doubled, over-long fields are truncated and formula
// prefixes are neutralized.
func Format(fields []string) string {
	var line strings.Builder
	for i, field := range fields {
		if i > 0 {
			line.WriteByte(delimiter)
		}
		line.WriteByte(quote)
		line.WriteString(strings.ReplaceAll(prepare(field), `"`, `""`))
		line.WriteByte(quote)
	}
	return line.String()
}

func prepare(field string) string {
	field = sanitize.GuardFormula(field)
	if utf8.RuneCountInString(field) > MaxFieldLength {
		runes := []rune(field)
		field = string(runes[:MaxFieldLength-len(Ellipsis)]) + Ellipsis
	}
	return field
}
