// Package exporter turns a raw order export into enhanced CSV text: columns
// are projected onto a canonical schema, fragment rows are consolidated
// into logical orders and every value is resolved and sanitized.
package exporter

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"orderenhancer/consolidate"
	"orderenhancer/csvline"
	"orderenhancer/internal/logging"
	"orderenhancer/internal/sanitize"
	"orderenhancer/order"
	"orderenhancer/resolve"
	"orderenhancer/schema"
)

// BOM prefixes every produced text so spreadsheet tools detect UTF-8.
const BOM = "\ufeff"

var ErrNoHeader = errors.New("export has no header line")

type Mode string

const (
	// ModePassthrough returns the input untouched (export disabled).
	ModePassthrough Mode = "passthrough"
	// ModeEncodingOnly re-serializes every line without reprojection
	// because no schema column matched the header.
	ModeEncodingOnly Mode = "encoding_only"
	ModeEnhanced     Mode = "enhanced"
)

type Options struct {
	Enabled     bool
	Consolidate bool
	Schema      schema.Schema
	Resolver    *resolve.Resolver
	Sanitizer   *sanitize.Sanitizer
	Logger      *slog.Logger
	Now         func() time.Time
}

// FieldError records a value that could not be resolved. The field is left
// empty in the output.
type FieldError struct {
	Order    int
	OrderRef string
	Field    string
	Err      error
}

func (e FieldError) Error() string {
	return fmt.Sprintf("order %d (%s) field %q: %v", e.Order, e.OrderRef, e.Field, e.Err)
}

func (e FieldError) Unwrap() error {
	return e.Err
}

type Result struct {
	Text        string
	Header      []string
	Rows        [][]string
	Mode        Mode
	Stats       order.Stats
	FieldErrors []FieldError
}

// Run processes one export payload. Data problems never abort the run:
// malformed rows are repaired or counted as skipped and resolution failures
// are collected in Result.FieldErrors. Only a missing header is an error.
func Run(text string, opts Options) (*Result, error) {
	opts = withDefaults(opts)

	if !opts.Enabled {
		return passthrough(text, opts), nil
	}

	lines := splitLines(text)
	if len(lines) == 0 || strings.TrimSpace(lines[0]) == "" {
		return nil, ErrNoHeader
	}
	if err := opts.Schema.Validate(); err != nil {
		return nil, fmt.Errorf("export schema: %w", err)
	}

	header := csvline.Parse(lines[0])
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	mapping := schema.MapHeader(header, opts.Schema)
	if mapping.Matched() == 0 {
		opts.Logger.Warn("no schema column matched the export header, applying encoding fix only",
			"schema", opts.Schema.Name,
			"columns", len(header),
		)
		return encodingOnly(lines, opts), nil
	}
	opts.Logger.Debug("mapped export header",
		"schema", opts.Schema.Name,
		"matched", mapping.Matched(),
		"columns", len(mapping.Entries),
	)

	rows, skipped := readRows(header, lines[1:], opts.Logger)

	orders := rows
	if opts.Consolidate {
		orders = consolidate.GroupAndMerge(rows)
		opts.Logger.Info("consolidated orders", "rows", len(rows), "orders", len(orders))
	}

	result := &Result{
		Header: opts.Schema.Header(),
		Rows:   make([][]string, 0, len(orders)),
		Mode:   ModeEnhanced,
	}
	for i, o := range orders {
		values := make([]string, 0, len(mapping.Entries))
		for _, entry := range mapping.Entries {
			value, err := opts.Resolver.Resolve(entry, o)
			if err != nil {
				fieldErr := FieldError{
					Order:    i + 1,
					OrderRef: resolve.OrderReference(o),
					Field:    entry.Column.Name,
					Err:      err,
				}
				opts.Logger.Warn("field resolution failed", "order", fieldErr.Order, "field", fieldErr.Field, "error", err)
				result.FieldErrors = append(result.FieldErrors, fieldErr)
				value = ""
			}
			values = append(values, value)
		}
		result.Rows = append(result.Rows, values)
	}

	result.Text = render(result.Header, result.Rows)
	result.Stats = order.NewStats(len(rows), len(orders), skipped, opts.Now())
	return result, nil
}

func withDefaults(opts Options) Options {
	if opts.Sanitizer == nil {
		opts.Sanitizer = &sanitize.Sanitizer{}
	}
	if opts.Resolver == nil {
		opts.Resolver = resolve.New(resolve.Options{Sanitizer: opts.Sanitizer})
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func splitLines(text string) []string {
	text = strings.TrimPrefix(text, BOM)
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

// readRows rebuilds logical rows from physical lines. A line with fewer
// fields than the header is only joined with the following line while it
// ends inside an open quote; otherwise it is dropped and every physical line
// it spans counts as skipped. Surplus fields are folded into the last column.
func readRows(header []string, lines []string, logger *slog.Logger) ([]order.Row, int) {
	expected := len(header)
	rows := make([]order.Row, 0, len(lines))
	skipped := 0
	buffer := ""
	buffered := 0
	bufferedAt := 0

	for i, line := range lines {
		lineNo := i + 2
		if buffered == 0 && strings.TrimSpace(line) == "" {
			continue
		}

		candidate := line
		if buffered > 0 {
			candidate = buffer + "\n" + line
		} else {
			bufferedAt = lineNo
		}
		buffered++

		fields := csvline.Parse(candidate)
		if len(fields) < expected {
			if csvline.Unterminated(candidate) {
				logger.Debug("buffering partial row", "line", bufferedAt, "fields", len(fields), "expected", expected)
				buffer = candidate
				continue
			}
			skipped += buffered
			logger.Warn("skipping incomplete row", "line", bufferedAt, "lines", buffered, "fields", len(fields), "expected", expected)
			buffer, buffered = "", 0
			continue
		}
		if len(fields) > expected {
			logger.Debug("merging surplus fields into last column", "line", bufferedAt, "fields", len(fields), "expected", expected)
			fields = foldSurplus(fields, expected)
		}

		buffer, buffered = "", 0
		rows = append(rows, order.NewRow(header, fields))
	}

	if buffered > 0 {
		skipped += buffered
		logger.Warn("skipping incomplete row at end of export", "line", bufferedAt, "lines", buffered, "expected", expected)
	}
	return rows, skipped
}

func foldSurplus(fields []string, expected int) []string {
	folded := make([]string, 0, expected)
	folded = append(folded, fields[:expected-1]...)
	return append(folded, strings.Join(fields[expected-1:], " "))
}

func encodingOnly(lines []string, opts Options) *Result {
	records := make([][]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := csvline.Parse(line)
		for i := range fields {
			fields[i] = opts.Sanitizer.Value(fields[i])
		}
		records = append(records, fields)
	}

	result := &Result{Mode: ModeEncodingOnly}
	if len(records) > 0 {
		result.Header = records[0]
		result.Rows = records[1:]
	}
	result.Text = render(result.Header, result.Rows)
	result.Stats = order.NewStats(len(result.Rows), len(result.Rows), 0, opts.Now())
	return result
}

// passthrough leaves the text as it is but still exposes parsed records so
// non-CSV writers can render them.
func passthrough(text string, opts Options) *Result {
	result := &Result{Text: text, Mode: ModePassthrough}
	for _, line := range splitLines(text) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if result.Header == nil {
			result.Header = csvline.Parse(line)
			continue
		}
		result.Rows = append(result.Rows, csvline.Parse(line))
	}
	result.Stats = order.NewStats(len(result.Rows), len(result.Rows), 0, opts.Now())
	return result
}

func render(header []string, rows [][]string) string {
	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, csvline.Format(header))
	for _, row := range rows {
		lines = append(lines, csvline.Format(row))
	}
	return BOM + strings.Join(lines, "\n")
}
