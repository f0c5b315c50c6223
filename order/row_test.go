package order

import (
	"testing"
	"time"
)

func TestNewRow_PadsMissingValuesAndKeepsOrder(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"increment_id", "status", "grand_total"}, []string{"1001", "pending"})

	keys := row.Keys()
	if len(keys) != 3 || keys[0] != "increment_id" || keys[2] != "grand_total" {
		t.Fatalf("unexpected keys: %v", keys)
	}
	value, ok := row.Lookup("grand_total")
	if !ok || value != "" {
		t.Fatalf("expected present empty grand_total, got %q ok=%v", value, ok)
	}
	if _, ok := row.Lookup("missing"); ok {
		t.Fatalf("expected missing column to be absent")
	}
}

func TestNewRow_DuplicateHeaderKeepsFirstOccurrence(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"status", "status"}, []string{"first", "second"})
	if row.Len() != 1 {
		t.Fatalf("expected 1 column, got %d", row.Len())
	}
	if got := row.Get("status"); got != "first" {
		t.Fatalf("expected first value, got %q", got)
	}
}

func TestRow_CloneIsIndependent(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"a"}, []string{"1"})
	clone := row.Clone()
	clone.Set("a", "2")
	clone.Set("b", "3")

	if row.Get("a") != "1" || row.Has("b") {
		t.Fatalf("clone mutated original: %v", row.Values())
	}
	if !clone.Equal(NewRow([]string{"a", "b"}, []string{"2", "3"})) {
		t.Fatalf("unexpected clone contents: %v", clone.Values())
	}
}

func TestRow_FirstNonEmpty(t *testing.T) {
	t.Parallel()

	row := NewRow([]string{"a", "b", "c"}, []string{" ", " x ", "y"})
	value, name := row.FirstNonEmpty("missing", "a", "b", "c")
	if value != "x" || name != "b" {
		t.Fatalf("expected x from b, got %q from %q", value, name)
	}
}

func TestNewStats_ConsolidationRatio(t *testing.T) {
	t.Parallel()

	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.FixedZone("EET", 2*3600))
	stats := NewStats(3, 2, 1, at)
	if stats.ConsolidationRatio != 33.33 {
		t.Fatalf("expected 33.33, got %v", stats.ConsolidationRatio)
	}
	if stats.ExportedAt.Location() != time.UTC {
		t.Fatalf("expected UTC timestamp, got %v", stats.ExportedAt)
	}
	if got := ConsolidationRatio(0, 0); got != 0 {
		t.Fatalf("expected 0 ratio for empty input, got %v", got)
	}
}
