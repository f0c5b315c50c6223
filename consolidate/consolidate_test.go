package consolidate

import (
	"strings"
	"testing"

	"orderenhancer/order"
)

func rowOf(pairs ...string) order.Row {
	header := make([]string, 0, len(pairs)/2)
	values := make([]string, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		header = append(header, pairs[i])
		values = append(values, pairs[i+1])
	}
	return order.NewRow(header, values)
}

func TestIdentifier(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		row  order.Row
		want string
	}{
		{name: "entity id first", row: rowOf("increment_id", "1001", "entity_id", "7"), want: "7"},
		{name: "increment id", row: rowOf("increment_id", " 1001 ", "entity_id", ""), want: "1001"},
		{name: "order date", row: rowOf("Order Date", "2024-01-01", "grand_total", "9"), want: "2024-01-01"},
		{name: "first non-empty value", row: rowOf("a", "", "b", "beta", "c", "gamma"), want: "beta"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Identifier(tt.row); got != tt.want {
				t.Fatalf("want %q, got %q", tt.want, got)
			}
		})
	}
}

func TestIdentifier_SynthesizesUniqueKeys(t *testing.T) {
	t.Parallel()

	blank := rowOf("a", "", "b", "  ")
	first := Identifier(blank)
	second := Identifier(blank)
	if !strings.HasPrefix(first, synthesizedPrefix) {
		t.Fatalf("expected synthesized key, got %q", first)
	}
	if first == second {
		t.Fatalf("expected distinct synthesized keys, got %q twice", first)
	}

	groups := GroupAndMerge([]order.Row{blank, blank})
	if len(groups) != 2 {
		t.Fatalf("expected blank rows to stay separate, got %d groups", len(groups))
	}
}

func TestMerge_ScalarFirstNonEmptyWins(t *testing.T) {
	t.Parallel()

	a := rowOf("increment_id", "1", "status", "", "city", "Cairo")
	b := rowOf("increment_id", "1", "status", "pending", "city", "Giza", "note", "extra")

	merged := Merge(a, b)
	if merged.Get("status") != "pending" {
		t.Fatalf("expected empty status to adopt incoming value, got %q", merged.Get("status"))
	}
	if merged.Get("city") != "Cairo" {
		t.Fatalf("expected existing city to win, got %q", merged.Get("city"))
	}
	if !merged.Has("note") || merged.Keys()[3] != "note" {
		t.Fatalf("expected new column appended, got keys %v", merged.Keys())
	}
	if a.Get("status") != "" {
		t.Fatalf("merge must not modify its inputs")
	}
}

func TestMerge_ListUnion(t *testing.T) {
	t.Parallel()

	a := rowOf("item_prices", "a,b")
	b := rowOf("item_prices", "b,c")
	if got := Merge(a, b).Get("item_prices"); got != "a, b, c" {
		t.Fatalf("want %q, got %q", "a, b, c", got)
	}

	a = rowOf("Item Details", "X (SKU: 1, Qty: 1)")
	b = rowOf("Item Details", "Y (SKU: 2, Qty: 1) | X (SKU: 1, Qty: 1)")
	if got := Merge(a, b).Get("Item Details"); got != "X (SKU: 1, Qty: 1) | Y (SKU: 2, Qty: 1)" {
		t.Fatalf("unexpected detail union: %q", got)
	}
}

func TestMerge_Idempotent(t *testing.T) {
	t.Parallel()

	a := rowOf("increment_id", "1", "item_prices", "10.00", "status", "", "item_details", "A")
	b := rowOf("increment_id", "1", "item_prices", "20.00, 10.00", "status", "paid", "item_details", "B|A")

	once := Merge(a, b)
	twice := Merge(once, b)
	if !once.Equal(twice) {
		t.Fatalf("merge not idempotent: %v vs %v", once.Values(), twice.Values())
	}
}

func TestMerge_Associative(t *testing.T) {
	t.Parallel()

	a := rowOf("id", "1", "status", "", "item_prices", "1")
	b := rowOf("id", "1", "status", "new", "item_prices", "2|1", "city", "")
	c := rowOf("id", "1", "status", "done", "item_prices", "3", "city", "Alex")

	left := Merge(Merge(a, b), c)
	right := Merge(a, Merge(b, c))
	if !left.Equal(right) {
		t.Fatalf("merge not associative: %v vs %v", left.Values(), right.Values())
	}
	if left.Get("item_prices") != "1, 2, 3" || left.Get("status") != "new" || left.Get("city") != "Alex" {
		t.Fatalf("unexpected merged row: %v", left.Values())
	}
}

func TestGroupAndMerge_ConsolidatesItems(t *testing.T) {
	t.Parallel()

	rows := []order.Row{
		rowOf("increment_id", "1001001", "item_details", "Widget A (SKU: W1, Qty: 1)", "item_prices", "10.00"),
		rowOf("increment_id", "1002", "item_details", "Other (SKU: O1, Qty: 1)", "item_prices", "5.00"),
		rowOf("increment_id", "1001001", "item_details", "Widget B (SKU: W2, Qty: 2)", "item_prices", "20.00"),
	}

	orders := GroupAndMerge(rows)
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	first := orders[0]
	if first.Get("increment_id") != "1001001" {
		t.Fatalf("expected first-seen order first, got %q", first.Get("increment_id"))
	}
	if got := first.Get("item_details"); got != "Widget A (SKU: W1, Qty: 1) | Widget B (SKU: W2, Qty: 2)" {
		t.Fatalf("unexpected item_details: %q", got)
	}
	if got := first.Get("item_prices"); got != "10.00, 20.00" {
		t.Fatalf("unexpected item_prices: %q", got)
	}
}

func TestGroupAndMerge_SingleRowUnchanged(t *testing.T) {
	t.Parallel()

	row := rowOf("increment_id", "5", "item_prices", "1.00,2.00", "status", " ")
	orders := GroupAndMerge([]order.Row{row})
	if len(orders) != 1 || !orders[0].Equal(row) {
		t.Fatalf("expected single row unchanged, got %v", orders)
	}
}

func TestIsListField(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"Item Details", "item_details", "Item Price", "item_prices"} {
		if !IsListField(name) {
			t.Fatalf("expected %q to be a list field", name)
		}
	}
	if IsListField("Grand Total") {
		t.Fatalf("scalar field reported as list")
	}
}
