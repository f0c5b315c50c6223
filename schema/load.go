package schema

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadFile reads named schemas from a YAML file. See Load for the format.
func LoadFile(path string) (map[string]Schema, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read schema file %s: %w", path, err)
	}
	schemas, err := Load(content)
	if err != nil {
		return nil, fmt.Errorf("schema file %s: %w", path, err)
	}
	return schemas, nil
}

// Load decodes named schemas. The document is a mapping from schema name to
// an ordered mapping of display name to source names:
//
//	marketplace:
//	  Order ID: [order_number, increment_id]
//	  Order Name: [buyer_name]
//
// Column order follows the document order.
func Load(content []byte) (map[string]Schema, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(content, &doc); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	if len(doc.Content) == 0 {
		return map[string]Schema{}, nil
	}

	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: expected a mapping of schema names", root.Line)
	}

	schemas := make(map[string]Schema, len(root.Content)/2)
	for i := 0; i+1 < len(root.Content); i += 2 {
		nameNode, body := root.Content[i], root.Content[i+1]
		name := nameNode.Value
		if _, exists := schemas[name]; exists {
			return nil, fmt.Errorf("line %d: duplicate schema %q", nameNode.Line, name)
		}

		s, err := decodeSchema(name, body)
		if err != nil {
			return nil, err
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		schemas[name] = s
	}
	return schemas, nil
}

func decodeSchema(name string, body *yaml.Node) (Schema, error) {
	if body.Kind != yaml.MappingNode {
		return Schema{}, fmt.Errorf("line %d: schema %q must map display names to source lists", body.Line, name)
	}

	s := Schema{Name: name, Columns: make([]Column, 0, len(body.Content)/2)}
	for i := 0; i+1 < len(body.Content); i += 2 {
		keyNode, valueNode := body.Content[i], body.Content[i+1]

		var sources []string
		switch valueNode.Kind {
		case yaml.SequenceNode:
			if err := valueNode.Decode(&sources); err != nil {
				return Schema{}, fmt.Errorf("line %d: schema %q column %q: %w", valueNode.Line, name, keyNode.Value, err)
			}
		case yaml.ScalarNode:
			sources = []string{valueNode.Value}
		default:
			return Schema{}, fmt.Errorf("line %d: schema %q column %q: expected a list of source names", valueNode.Line, name, keyNode.Value)
		}

		s.Columns = append(s.Columns, Column{Name: keyNode.Value, Sources: sources})
	}
	return s, nil
}
