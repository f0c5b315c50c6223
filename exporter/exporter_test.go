package exporter

import (
	"errors"
	"strings"
	"testing"
	"time"

	"orderenhancer/csvline"
	"orderenhancer/resolve"
	"orderenhancer/schema"
)

var fixedNow = func() time.Time {
	return time.Date(2025, 3, 1, 12, 0, 0, 0, time.FixedZone("EET", 2*60*60))
}

func enabled() Options {
	return Options{
		Enabled:     true,
		Consolidate: true,
		Schema:      schema.ExcelExport(),
		Now:         fixedNow,
	}
}

func lines(values ...string) string {
	return strings.Join(values, "\n")
}

func column(t *testing.T, result *Result, name string) int {
	t.Helper()
	for i, header := range result.Header {
		if header == name {
			return i
		}
	}
	t.Fatalf("column %q not in header %v", name, result.Header)
	return -1
}

func TestRun_ConsolidatesFragmentRows(t *testing.T) {
	t.Parallel()

	input := lines(
		"increment_id,item_details,item_prices,grand_total",
		`"1001001","Widget A (SKU: W1, Qty: 1)","10.00","30.00"`,
		`"1001001","Widget B (SKU: W2, Qty: 2)","20.00",""`,
		`"1001002","Gadget (SKU: G1, Qty: 1)","5.00","5.00"`,
	)

	result, err := Run(input, enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Mode != ModeEnhanced {
		t.Fatalf("expected enhanced mode, got %s", result.Mode)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected 2 logical orders, got %d", len(result.Rows))
	}

	first := result.Rows[0]
	if got := first[column(t, result, "Order ID")]; got != "1001001" {
		t.Fatalf("unexpected order id %q", got)
	}
	if got := first[column(t, result, "Item Details")]; got != "Widget A (SKU: W1, Qty: 1) | Widget B (SKU: W2, Qty: 2)" {
		t.Fatalf("unexpected item details %q", got)
	}
	if got := first[column(t, result, "Item Price")]; got != "10.00, 20.00" {
		t.Fatalf("unexpected item prices %q", got)
	}
	if got := first[column(t, result, "Grand Total")]; got != "30.00" {
		t.Fatalf("unexpected grand total %q", got)
	}
	if got := first[column(t, result, "Order Name")]; got != resolve.GuestCustomer {
		t.Fatalf("unexpected order name %q", got)
	}

	stats := result.Stats
	if stats.OriginalRows != 3 || stats.ProcessedRows != 2 || stats.SkippedRows != 0 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
	if stats.ConsolidationRatio != 33.33 {
		t.Fatalf("unexpected consolidation ratio %v", stats.ConsolidationRatio)
	}
	if stats.ExportedAt.Location() != time.UTC || !stats.ExportedAt.Equal(fixedNow()) {
		t.Fatalf("unexpected timestamp %v", stats.ExportedAt)
	}
}

func TestRun_OutputTextHasBOMAndCanonicalHeader(t *testing.T) {
	t.Parallel()

	result, err := Run(lines("increment_id,grand_total", `"7","9.50"`), enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.HasPrefix(result.Text, BOM) {
		t.Fatalf("expected BOM prefix")
	}
	outLines := strings.Split(strings.TrimPrefix(result.Text, BOM), "\n")
	if len(outLines) != 2 {
		t.Fatalf("expected header and one row, got %d lines", len(outLines))
	}
	if outLines[0] != csvline.Format(schema.ExcelExport().Header()) {
		t.Fatalf("unexpected header line %q", outLines[0])
	}
	row := csvline.Parse(outLines[1])
	if len(row) != len(schema.ExcelExport().Columns) {
		t.Fatalf("row and header widths differ: %d", len(row))
	}
}

func TestRun_SkippedRowAccounting(t *testing.T) {
	t.Parallel()

	input := []string{"increment_id,customer_email,billing_firstname,billing_lastname,grand_total"}
	for i := 1; i <= 10; i++ {
		id := string(rune('0'+i%10)) + "00"
		switch i {
		case 3, 10:
			input = append(input, `"`+id+`","broken@example.com"`)
		default:
			input = append(input, `"`+id+`","a@example.com","Ali","Hassan","1.00"`)
		}
	}

	result, err := Run(lines(input...), enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Stats.ProcessedRows != 8 || result.Stats.SkippedRows != 2 {
		t.Fatalf("expected 8 processed and 2 skipped, got %+v", result.Stats)
	}
	if len(result.Rows) != 8 {
		t.Fatalf("expected 8 output rows, got %d", len(result.Rows))
	}
	for _, row := range result.Rows {
		if row[column(t, result, "Order Name")] != "Ali Hassan" {
			t.Fatalf("unexpected row %v", row)
		}
	}
}

func TestRun_AdjacentShortRowsAreNotJoined(t *testing.T) {
	t.Parallel()

	header := "increment_id,customer_email,billing_firstname,billing_lastname,grand_total"
	tests := []struct {
		name  string
		short []string
	}{
		{
			name:  "joined text still short",
			short: []string{`"200","broken@example.com"`, `"300","other@example.com"`},
		},
		{
			name:  "joined text matches header width",
			short: []string{`"200","b@example.com","Bob"`, `"300","c@example.com","Cat"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []string{header, `"100","a@example.com","Ali","Hassan","1.00"`}
			input = append(input, tt.short...)
			input = append(input, `"400","d@example.com","Dina","Said","2.00"`)

			result, err := Run(lines(input...), enabled())
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if result.Stats.ProcessedRows != 2 || result.Stats.SkippedRows != 2 {
				t.Fatalf("expected 2 processed and 2 skipped, got %+v", result.Stats)
			}
			for _, row := range result.Rows {
				if got := row[column(t, result, "Grand Total")]; got != "1.00" && got != "2.00" {
					t.Fatalf("unexpected row built from short lines: %v", row)
				}
			}
		})
	}
}

func TestRun_UnclosedQuoteCountsEveryLine(t *testing.T) {
	t.Parallel()

	input := lines(
		"increment_id,customer_note,grand_total",
		`"1001","","1.00"`,
		`"1002","never`,
		`closed`,
		`still open`,
	)

	result, err := Run(input, enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Stats.ProcessedRows != 1 || result.Stats.SkippedRows != 3 {
		t.Fatalf("expected 1 processed and 3 skipped, got %+v", result.Stats)
	}
}

func TestRun_RejoinsMultilineRecords(t *testing.T) {
	t.Parallel()

	input := lines(
		"increment_id,customer_note,grand_total",
		`"1002","leave at the door`,
		`ring twice","5.00"`,
		`"1003","","6.00"`,
	)

	result, err := Run(input, enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Rows) != 2 || result.Stats.SkippedRows != 0 {
		t.Fatalf("expected 2 rows and no skips, got %d rows %+v", len(result.Rows), result.Stats)
	}
	if got := result.Rows[0][column(t, result, "Order Comments")]; got != "leave at the door ring twice" {
		t.Fatalf("unexpected comment %q", got)
	}
	if got := result.Rows[0][column(t, result, "Grand Total")]; got != "5.00" {
		t.Fatalf("unexpected grand total %q", got)
	}
}

func TestRun_FoldsSurplusFieldsIntoLastColumn(t *testing.T) {
	t.Parallel()

	input := lines(
		"increment_id,grand_total,customer_note",
		`"1","5.00","hello","world"`,
	)

	result, err := Run(input, enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if got := result.Rows[0][column(t, result, "Order Comments")]; got != "hello world" {
		t.Fatalf("unexpected comment %q", got)
	}
}

func TestRun_ConsolidationDisabledKeepsEveryRow(t *testing.T) {
	t.Parallel()

	opts := enabled()
	opts.Consolidate = false
	input := lines("increment_id,item_prices", `"1","1.00"`, `"1","2.00"`)

	result, err := Run(input, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Rows) != 2 || result.Stats.ConsolidationRatio != 0 {
		t.Fatalf("expected rows kept apart, got %d rows %+v", len(result.Rows), result.Stats)
	}
}

func TestRun_DisabledIsPassthrough(t *testing.T) {
	t.Parallel()

	input := lines("increment_id,grand_total", "1,2")
	opts := enabled()
	opts.Enabled = false

	result, err := Run(input, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Mode != ModePassthrough || result.Text != input {
		t.Fatalf("expected untouched text, got mode %s text %q", result.Mode, result.Text)
	}
	if len(result.Rows) != 1 || result.Header[0] != "increment_id" {
		t.Fatalf("expected parsed records, got %v %v", result.Header, result.Rows)
	}
}

func TestRun_EncodingOnlyWhenNothingMatches(t *testing.T) {
	t.Parallel()

	input := lines("foo,bar", "a\x01,=b", "", "c,d")

	result, err := Run(input, enabled())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if result.Mode != ModeEncodingOnly {
		t.Fatalf("expected encoding-only mode, got %s", result.Mode)
	}
	want := BOM + lines(`"foo","bar"`, `"a","'=b"`, `"c","d"`)
	if result.Text != want {
		t.Fatalf("want %q, got %q", want, result.Text)
	}
	if result.Stats.OriginalRows != 2 || result.Stats.ProcessedRows != 2 {
		t.Fatalf("unexpected stats %+v", result.Stats)
	}
}

func TestRun_NoHeader(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", BOM, "\n1,2"} {
		if _, err := Run(input, enabled()); !errors.Is(err, ErrNoHeader) {
			t.Fatalf("input %q: expected ErrNoHeader, got %v", input, err)
		}
	}
}

type failingCustomFields struct{}

func (failingCustomFields) LookupCustomField(string, string) (string, bool, error) {
	return "", false, errors.New("store unavailable")
}

func TestRun_FieldErrorsDoNotStopTheExport(t *testing.T) {
	t.Parallel()

	opts := enabled()
	opts.Resolver = resolve.New(resolve.Options{CustomFields: failingCustomFields{}})
	input := lines("increment_id,grand_total", `"1","1.00"`, `"2","2.00"`)

	result, err := Run(input, opts)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(result.Rows) != 2 {
		t.Fatalf("expected both orders exported, got %d", len(result.Rows))
	}
	if len(result.FieldErrors) != 4 {
		t.Fatalf("expected 4 field errors, got %d", len(result.FieldErrors))
	}
	fieldErr := result.FieldErrors[0]
	if fieldErr.Order != 1 || fieldErr.OrderRef != "1" || fieldErr.Field != resolve.FieldAlternativePhone {
		t.Fatalf("unexpected field error %+v", fieldErr)
	}
	if result.Rows[1][column(t, result, "Grand Total")] != "2.00" {
		t.Fatalf("expected remaining fields resolved")
	}
	if result.Rows[0][column(t, result, "Alternative Phone")] != "" {
		t.Fatalf("expected failed field left empty")
	}
}

func TestRun_InvalidSchema(t *testing.T) {
	t.Parallel()

	opts := enabled()
	opts.Schema = schema.Schema{Name: "empty"}
	if _, err := Run("a,b\n1,2", opts); err == nil {
		t.Fatalf("expected schema validation error")
	}
}
