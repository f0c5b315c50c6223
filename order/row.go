package order

import "strings"

// Row is an ordered mapping from column name to raw value. It is the unit
// passed between parsing, grouping and field resolution.
type Row struct {
	keys   []string
	values map[string]string
}

// NewRow pairs header names with values. Missing trailing values become
// empty strings. A repeated header name keeps its first occurrence.
func NewRow(header, values []string) Row {
	row := Row{
		keys:   make([]string, 0, len(header)),
		values: make(map[string]string, len(header)),
	}
	for i, name := range header {
		if _, exists := row.values[name]; exists {
			continue
		}
		value := ""
		if i < len(values) {
			value = values[i]
		}
		row.keys = append(row.keys, name)
		row.values[name] = value
	}
	return row
}

// Set stores value under name, appending name when it is new.
func (r *Row) Set(name, value string) {
	if r.values == nil {
		r.values = make(map[string]string)
	}
	if _, exists := r.values[name]; !exists {
		r.keys = append(r.keys, name)
	}
	r.values[name] = value
}

// Get returns the value for name, or "" when the column is absent.
func (r Row) Get(name string) string {
	return r.values[name]
}

// Lookup distinguishes an absent column from an empty one.
func (r Row) Lookup(name string) (string, bool) {
	value, ok := r.values[name]
	return value, ok
}

func (r Row) Has(name string) bool {
	_, ok := r.values[name]
	return ok
}

// Keys returns column names in insertion order.
func (r Row) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

func (r Row) Len() int {
	return len(r.keys)
}

// Values returns the values in key order.
func (r Row) Values() []string {
	values := make([]string, len(r.keys))
	for i, key := range r.keys {
		values[i] = r.values[key]
	}
	return values
}

func (r Row) Clone() Row {
	clone := Row{
		keys:   make([]string, len(r.keys)),
		values: make(map[string]string, len(r.values)),
	}
	copy(clone.keys, r.keys)
	for key, value := range r.values {
		clone.values[key] = value
	}
	return clone
}

// FirstNonEmpty returns the trimmed value of the first listed column that
// holds a non-blank value, together with that column's name.
func (r Row) FirstNonEmpty(names ...string) (string, string) {
	for _, name := range names {
		if value := strings.TrimSpace(r.values[name]); value != "" {
			return value, name
		}
	}
	return "", ""
}

// Equal reports whether both rows hold the same columns in the same order
// with the same values.
func (r Row) Equal(other Row) bool {
	if len(r.keys) != len(other.keys) {
		return false
	}
	for i, key := range r.keys {
		if other.keys[i] != key || other.values[key] != r.values[key] {
			return false
		}
	}
	return true
}

// IsBlank reports whether a value counts as empty for merge and fallback
// decisions.
func IsBlank(value string) bool {
	return strings.TrimSpace(value) == ""
}
