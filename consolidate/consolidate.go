package consolidate

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"orderenhancer/order"
)

const synthesizedPrefix = "order_"

// identifierFields are tried in order before falling back to any value.
var identifierFields = []string{"entity_id", "increment_id", "order_id", "Order ID", "Order Date"}

type listStyle struct {
	split *regexp.Regexp
	join  string
}

var (
	priceList  = listStyle{split: regexp.MustCompile(`[,|]`), join: ", "}
	detailList = listStyle{split: regexp.MustCompile(`\|`), join: " | "}
)

// Item detail tokens carry commas of their own ("Widget (SKU: W1, Qty: 1)"),
// so they are only split on pipes.
var listFields = map[string]listStyle{
	"Item Details": detailList,
	"item_details": detailList,
	"Item Price":   priceList,
	"item_prices":  priceList,
}

// IsListField reports whether name holds a delimited collection that is
// unioned instead of overwritten on merge.
func IsListField(name string) bool {
	_, ok := listFields[name]
	return ok
}

// Identifier returns the grouping key of a raw row. Rows without any value
// receive a fresh synthesized key so they form a group of their own.
func Identifier(row order.Row) string {
	if value, _ := row.FirstNonEmpty(identifierFields...); value != "" {
		return value
	}
	for _, value := range row.Values() {
		if value = strings.TrimSpace(value); value != "" {
			return value
		}
	}
	return synthesizedPrefix + uuid.NewString()
}

// Merge folds next into existing and returns the result; neither input is
// modified. Scalar fields keep the first non-empty value. List fields become
// the ordered union of their tokens. Columns only present in next are
// appended.
func Merge(existing, next order.Row) order.Row {
	merged := existing.Clone()
	for _, name := range next.Keys() {
		incoming := next.Get(name)
		current, present := merged.Lookup(name)
		if !present {
			merged.Set(name, incoming)
			continue
		}
		if style, ok := listFields[name]; ok {
			if order.IsBlank(current) && order.IsBlank(incoming) {
				continue
			}
			merged.Set(name, style.union(current, incoming))
			continue
		}
		if order.IsBlank(current) && !order.IsBlank(incoming) {
			merged.Set(name, incoming)
		}
	}
	return merged
}

func (s listStyle) union(values ...string) string {
	seen := make(map[string]struct{})
	tokens := make([]string, 0, 4)
	for _, value := range values {
		for _, token := range s.split.Split(value, -1) {
			token = strings.TrimSpace(token)
			if token == "" {
				continue
			}
			if _, dup := seen[token]; dup {
				continue
			}
			seen[token] = struct{}{}
			tokens = append(tokens, token)
		}
	}
	return strings.Join(tokens, s.join)
}

// GroupAndMerge collapses rows sharing an identifier into one logical order.
// Orders are returned in the order their identifier was first seen; a group
// of one row is returned as that row.
func GroupAndMerge(rows []order.Row) []order.Row {
	index := make(map[string]int, len(rows))
	orders := make([]order.Row, 0, len(rows))
	for _, row := range rows {
		id := Identifier(row)
		position, seen := index[id]
		if !seen {
			index[id] = len(orders)
			orders = append(orders, row)
			continue
		}
		orders[position] = Merge(orders[position], row)
	}
	return orders
}
