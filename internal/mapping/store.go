// Package mapping loads the declarative entity mapping that translates
// logical entities into a customer's physical schema.
//
// The mapping file (data_mapping.yaml) defines, per entity, the source table,
// an ordered logical-to-physical column map, and an optional static SQL
// filter applied to every query:
//
//	entities:
//	  pilots:
//	    source_table: operators
//	    columns:
//	      id: operator_id
//	      name: full_name
//	    filter: status = 'active'
package mapping

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Entity is the mapping configuration for one logical entity.
type Entity struct {
	Name        string
	SourceTable string
	Columns     ColumnMap
	Filter      string
}

// entityDoc is the YAML shape of a single entity block.
type entityDoc struct {
	SourceTable string    `yaml:"source_table"`
	Columns     ColumnMap `yaml:"columns"`
	Filter      string    `yaml:"filter"`
}

// ColumnMap is an ordered mapping from logical column name to physical column
// expression. Iteration order is the order the columns appear in the YAML
// file, which also determines the SELECT list order.
type ColumnMap struct {
	names []string
	phys  map[string]string
}

// UnmarshalYAML decodes a YAML mapping node while preserving key order.
// Pairs with an empty physical column are dropped: a logical name with no
// physical counterpart is simply unselectable.
func (c *ColumnMap) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("columns: expected a mapping, got %s", node.Tag)
	}
	c.names = nil
	c.phys = make(map[string]string, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		val := node.Content[i+1].Value
		if val == "" {
			continue
		}
		if _, dup := c.phys[key]; dup {
			return fmt.Errorf("columns: duplicate logical column %q", key)
		}
		c.names = append(c.names, key)
		c.phys[key] = val
	}
	return nil
}

// Len returns the number of mapped columns.
func (c *ColumnMap) Len() int { return len(c.names) }

// Names returns the logical column names in file order.
func (c *ColumnMap) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Physical returns the physical column expression for a logical name.
func (c *ColumnMap) Physical(logical string) (string, bool) {
	p, ok := c.phys[logical]
	return p, ok
}

// Has reports whether a logical column is mapped.
func (c *ColumnMap) Has(logical string) bool {
	_, ok := c.phys[logical]
	return ok
}

// Store is the loaded entity mapping. It is immutable after Load; concurrent
// readers need no locking.
type Store struct {
	entities map[string]*Entity
	order    []string
}

// Load reads the mapping file at path. A missing file is not an error — it
// yields an empty store with zero configured entities.
func Load(path string) (*Store, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from deployment config
	if err != nil {
		if os.IsNotExist(err) {
			return &Store{entities: map[string]*Entity{}}, nil
		}
		return nil, fmt.Errorf("read mapping %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes mapping YAML. Entity order in the file is preserved.
func Parse(data []byte) (*Store, error) {
	var doc struct {
		Entities yaml.Node `yaml:"entities"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse mapping: %w", err)
	}

	s := &Store{entities: map[string]*Entity{}}
	if doc.Entities.Kind == 0 {
		return s, nil // no entities key
	}
	if doc.Entities.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("parse mapping: entities must be a mapping")
	}

	for i := 0; i+1 < len(doc.Entities.Content); i += 2 {
		name := doc.Entities.Content[i].Value
		var ed entityDoc
		if err := doc.Entities.Content[i+1].Decode(&ed); err != nil {
			return nil, fmt.Errorf("parse mapping: entity %q: %w", name, err)
		}
		if _, dup := s.entities[name]; dup {
			return nil, fmt.Errorf("parse mapping: duplicate entity %q", name)
		}
		s.entities[name] = &Entity{
			Name:        name,
			SourceTable: ed.SourceTable,
			Columns:     ed.Columns,
			Filter:      ed.Filter,
		}
		s.order = append(s.order, name)
	}
	return s, nil
}

// Get returns the mapping for an entity, configured or not.
func (s *Store) Get(entity string) (*Entity, bool) {
	e, ok := s.entities[entity]
	return e, ok
}

// IsConfigured reports whether an entity is queryable: it must have a source
// table and at least one mapped column.
func (s *Store) IsConfigured(entity string) bool {
	e, ok := s.entities[entity]
	return ok && e.SourceTable != "" && e.Columns.Len() > 0
}

// ListConfigured returns the configured entity names in file order.
func (s *Store) ListConfigured() []string {
	var out []string
	for _, name := range s.order {
		if s.IsConfigured(name) {
			out = append(out, name)
		}
	}
	return out
}
