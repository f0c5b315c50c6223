package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var ErrUnknownSchema = errors.New("unknown schema")

// Column is one canonical output column and the source column names that
// may supply it, in priority order.
type Column struct {
	Name    string
	Sources []string
}

// Schema is an ordered set of canonical columns. Schemas are immutable
// configuration values; different export contexts use different schemas.
type Schema struct {
	Name    string
	Columns []Column
}

// Header returns the canonical display names in declaration order.
func (s Schema) Header() []string {
	header := make([]string, len(s.Columns))
	for i, column := range s.Columns {
		header[i] = column.Name
	}
	return header
}

// Column returns the column with the given display name.
func (s Schema) Column(name string) (Column, bool) {
	for _, column := range s.Columns {
		if column.Name == name {
			return column, true
		}
	}
	return Column{}, false
}

// Validate checks that every column has a unique name and at least one
// source.
func (s Schema) Validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("schema %q has no columns", s.Name)
	}
	seen := make(map[string]struct{}, len(s.Columns))
	for i, column := range s.Columns {
		name := strings.TrimSpace(column.Name)
		if name == "" {
			return fmt.Errorf("schema %q: columns[%d] has no name", s.Name, i)
		}
		if _, exists := seen[name]; exists {
			return fmt.Errorf("schema %q: duplicate column %q", s.Name, name)
		}
		seen[name] = struct{}{}
		if len(column.Sources) == 0 {
			return fmt.Errorf("schema %q: column %q has no source names", s.Name, name)
		}
		for j, source := range column.Sources {
			if strings.TrimSpace(source) == "" {
				return fmt.Errorf("schema %q: column %q sources[%d] is empty", s.Name, name, j)
			}
		}
	}
	return nil
}

// Registry resolves schema names against the built-in variants and any
// schemas loaded from file. File schemas shadow built-ins of the same name.
type Registry struct {
	custom map[string]Schema
}

func NewRegistry(custom map[string]Schema) *Registry {
	return &Registry{custom: custom}
}

func (r *Registry) Lookup(name string) (Schema, error) {
	key := strings.TrimSpace(name)
	if r != nil {
		if s, ok := r.custom[key]; ok {
			return s, nil
		}
	}
	if s, ok := Builtin(key); ok {
		return s, nil
	}
	return Schema{}, fmt.Errorf("%w: %q (available: %s)", ErrUnknownSchema, name, strings.Join(r.Names(), ", "))
}

// Names lists every resolvable schema name, sorted.
func (r *Registry) Names() []string {
	names := BuiltinNames()
	if r != nil {
		for name := range r.custom {
			if _, builtin := Builtin(name); !builtin {
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
