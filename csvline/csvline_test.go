package csvline

import (
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		want []string
	}{
		{
			name: "plain",
			line: "1001,pending, 10.00 ",
			want: []string{"1001", "pending", "10.00"},
		},
		{
			name: "quoted comma",
			line: `"1001","Cairo, Nasr City","x"`,
			want: []string{"1001", "Cairo, Nasr City", "x"},
		},
		{
			name: "escaped quotes",
			line: `"1001","He said ""call first"""`,
			want: []string{"1001", `He said "call first"`},
		},
		{
			name: "embedded newline collapsed",
			line: "\"1001\",\"line one\nline   two\"",
			want: []string{"1001", "line one line two"},
		},
		{
			name: "unquoted continuation joined by scanner",
			line: "1001,Ali\nHassan,x",
			want: []string{"1001", "Ali Hassan", "x"},
		},
		{
			name: "quoted field after space",
			line: `a, "b,c", d`,
			want: []string{"a", "b,c", "d"},
		},
		{
			name: "empty fields kept",
			line: `"a","","c"`,
			want: []string{"a", "", "c"},
		},
		{
			name: "single field without delimiter",
			line: "header",
			want: []string{"header"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.line)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Fatalf("Parse(%q): want %q, got %q", tt.line, tt.want, got)
			}
		})
	}
}

func TestParse_NeverFails(t *testing.T) {
	t.Parallel()

	inputs := []string{"", `"`, `"unterminated,field`, `a"b,c`, ",,,", "\x00,\xff"}
	for _, input := range inputs {
		if got := Parse(input); len(got) == 0 {
			t.Fatalf("Parse(%q) returned no fields", input)
		}
	}
}

func TestParse_UnterminatedQuoteKeepsLeadingFields(t *testing.T) {
	t.Parallel()

	got := Parse(`1001,"first line of a note`)
	if len(got) != 2 || got[0] != "1001" || got[1] != "first line of a note" {
		t.Fatalf("unexpected fields: %q", got)
	}
}

func TestUnterminated(t *testing.T) {
	t.Parallel()

	tests := []struct {
		line string
		want bool
	}{
		{line: `a,"b`, want: true},
		{line: `a,"b"`, want: false},
		{line: `a,"b ""quoted"" still open`, want: true},
		{line: `a,b`, want: false},
	}
	for _, tt := range tests {
		if got := Unterminated(tt.line); got != tt.want {
			t.Fatalf("Unterminated(%q): want %v, got %v", tt.line, tt.want, got)
		}
	}
}

func TestFormat(t *testing.T) {
	t.Parallel()

	got := Format([]string{"1001", `say "hi"`, "=SUM(A1:A2)", "#N/A", ""})
	want := `"1001","say ""hi""","'=SUM(A1:A2)","'#N/A",""`
	if got != want {
		t.Fatalf("unexpected line:\nwant %s\ngot  %s", want, got)
	}
}

func TestFormat_TruncatesLongFields(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("ب", MaxFieldLength+50)
	got := Format([]string{long})

	inner := strings.TrimSuffix(strings.TrimPrefix(got, `"`), `"`)
	if !strings.HasSuffix(inner, Ellipsis) {
		t.Fatalf("expected ellipsis suffix")
	}
	if n := len([]rune(inner)); n != MaxFieldLength {
		t.Fatalf("expected %d characters, got %d", MaxFieldLength, n)
	}

	exact := strings.Repeat("a", MaxFieldLength)
	if got := Format([]string{exact}); got != `"`+exact+`"` {
		t.Fatalf("field of exactly max length must not be truncated")
	}
}

func TestFormatParseRoundTrip(t *testing.T) {
	t.Parallel()

	fields := []string{"Order ID", `Ali "The Builder" Hassan`, "=1+1", "", "Cairo, Egypt", "10.00, 20.00"}
	first := Format(fields)
	second := Format(Parse(first))
	if first != second {
		t.Fatalf("round trip changed line:\nfirst  %s\nsecond %s", first, second)
	}
}

func TestParse_KeepsConsecutiveQuotes(t *testing.T) {
	t.Parallel()

	for _, value := range []string{`a""b`, `"quoted"`, `""`, `5" screen`} {
		got := Parse(Format([]string{"x", value}))
		if len(got) != 2 || got[1] != value {
			t.Fatalf("value %q came back as %q", value, got)
		}
	}
}
