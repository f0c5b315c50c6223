package timeutil

import "testing"

func TestLayout(t *testing.T) {
	t.Parallel()

	tests := []struct {
		format string
		want   string
	}{
		{format: "Y-m-d H:i:s", want: "2006-01-02 15:04:05"},
		{format: "d/m/Y H:i", want: "02/01/2006 15:04"},
		{format: "m/d/Y H:i", want: "01/02/2006 15:04"},
		{format: "d-m-Y H:i", want: "02-01-2006 15:04"},
		{format: "M j, Y g:i A", want: "Jan 2, 2006 3:04 PM"},
	}
	for _, tt := range tests {
		got, err := Layout(tt.format)
		if err != nil {
			t.Fatalf("Layout(%q): %v", tt.format, err)
		}
		if got != tt.want {
			t.Fatalf("Layout(%q): want %q, got %q", tt.format, tt.want, got)
		}
	}

	if _, err := Layout("Y-m-d Q"); err == nil {
		t.Fatalf("expected unsupported token error")
	}
}

func TestReformat(t *testing.T) {
	t.Parallel()

	layout, err := Layout("M j, Y g:i A")
	if err != nil {
		t.Fatalf("layout: %v", err)
	}

	if got := Reformat("2024-12-25 14:30:00", layout); got != "Dec 25, 2024 2:30 PM" {
		t.Fatalf("unexpected reformatted date: %q", got)
	}
	if got := Reformat("Dec 25, 2024 2:30:00 PM", "2006-01-02 15:04:05"); got != "2024-12-25 14:30:00" {
		t.Fatalf("unexpected reformatted grid date: %q", got)
	}
	if got := Reformat("sometime next week", layout); got != "sometime next week" {
		t.Fatalf("expected unparseable date unchanged, got %q", got)
	}
}
