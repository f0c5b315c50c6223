package schema

import "strings"

// Absent marks a canonical column with no matching source column.
const Absent = -1

// Entry is the resolution of one canonical column against an input header.
type Entry struct {
	Column Column
	// Index is the header position supplying the column, or Absent.
	Index int
	// Source is the header name that matched, empty when absent.
	Source string
}

func (e Entry) Absent() bool {
	return e.Index == Absent
}

// Mapping holds one Entry per schema column, in schema order. Absent
// columns are kept so callers can still derive their values.
type Mapping struct {
	Schema  Schema
	Entries []Entry
}

// Matched counts columns that found a source.
func (m Mapping) Matched() int {
	matched := 0
	for _, entry := range m.Entries {
		if !entry.Absent() {
			matched++
		}
	}
	return matched
}

// MapHeader resolves every schema column against header. Source names are
// tried in priority order and compared to trimmed header names by exact
// string equality; the first header position equal to the highest-priority
// available source wins.
func MapHeader(header []string, s Schema) Mapping {
	positions := make(map[string]int, len(header))
	for i, name := range header {
		trimmed := strings.TrimSpace(name)
		if _, exists := positions[trimmed]; !exists {
			positions[trimmed] = i
		}
	}

	mapping := Mapping{Schema: s, Entries: make([]Entry, len(s.Columns))}
	for i, column := range s.Columns {
		entry := Entry{Column: column, Index: Absent}
		for _, source := range column.Sources {
			if index, ok := positions[source]; ok {
				entry.Index = index
				entry.Source = source
				break
			}
		}
		mapping.Entries[i] = entry
	}
	return mapping
}
