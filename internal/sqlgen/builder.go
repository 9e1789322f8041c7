// Package sqlgen turns entity mappings into parameterized SELECT statements.
//
// Identifier-producing paths (table and column names) only ever read from the
// trusted mapping configuration; value-producing paths are always bound as
// parameters. Caller input never reaches the SQL text directly.
package sqlgen

import (
	"sort"
	"strconv"
	"strings"

	"compliance-mcp/internal/domain"
	"compliance-mcp/internal/mapping"
)

// Options carries the optional parts of a SELECT build.
type Options struct {
	// Where is an additional predicate fragment with `?` placeholders.
	// It is produced by this package (EqualityPredicate, IDPredicate) — never
	// raw caller text.
	Where string
	// Args are the bind values for Where, in placeholder order.
	Args []any
	// Limit caps the row count; appended only when positive.
	Limit int
}

// statement accumulates typed clauses and renders them once.
type statement struct {
	table      string
	selectList []string
	predicates []string
	args       []any
	limit      int
}

func (s *statement) render() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(s.selectList, ", "))
	b.WriteString(" FROM ")
	b.WriteString(s.table)
	b.WriteString(" WHERE ")
	if len(s.predicates) == 0 {
		b.WriteString("1=1")
	} else {
		b.WriteString(strings.Join(s.predicates, " AND "))
	}
	if s.limit > 0 {
		b.WriteString(" LIMIT ")
		b.WriteString(strconv.Itoa(s.limit))
	}
	return b.String(), s.args
}

// BuildSelect produces a parameterized SELECT for an entity mapping.
//
// The select list emits `physical AS logical` for every mapped column in file
// order. The WHERE clause is the conjunction of the entity's static filter
// (if any) and the caller-supplied predicate (if any), each parenthesized,
// in that order; with neither present the predicate is the constant true.
func BuildSelect(e *mapping.Entity, opt Options) (string, []any, error) {
	if e == nil || e.SourceTable == "" {
		name := ""
		if e != nil {
			name = e.Name
		}
		return "", nil, &domain.NotConfiguredError{Entity: name}
	}
	if e.Columns.Len() == 0 {
		return "", nil, &domain.NoMappedColumnsError{Entity: e.Name}
	}

	st := &statement{table: e.SourceTable, limit: opt.Limit}
	for _, logical := range e.Columns.Names() {
		physical, _ := e.Columns.Physical(logical)
		st.selectList = append(st.selectList, physical+" AS "+logical)
	}
	if e.Filter != "" {
		st.predicates = append(st.predicates, "("+e.Filter+")")
	}
	if opt.Where != "" {
		st.predicates = append(st.predicates, "("+opt.Where+")")
		st.args = append(st.args, opt.Args...)
	}

	sqlText, args := st.render()
	return sqlText, args, nil
}

// EqualityPredicate builds a conjunctive equality predicate from logical
// filter keys. Every key must be a configured logical column of the entity;
// an unknown key is rejected with InvalidFilterKeyError rather than being
// interpolated or dropped. Keys are sorted so the generated SQL is
// deterministic. Empty filters yield an empty predicate (unconditional match).
func EqualityPredicate(e *mapping.Entity, filters map[string]any) (string, []any, error) {
	if len(filters) == 0 {
		return "", nil, nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys))
	for _, k := range keys {
		physical, ok := e.Columns.Physical(k)
		if !ok {
			return "", nil, &domain.InvalidFilterKeyError{
				Entity: e.Name,
				Key:    k,
				Valid:  e.Columns.Names(),
			}
		}
		conditions = append(conditions, physical+" = ?")
		args = append(args, filters[k])
	}
	return strings.Join(conditions, " AND "), args, nil
}

// IDPredicate builds the equality predicate for a by-ID lookup. The physical
// column backing idColumn is resolved through the mapping, defaulting to the
// logical name itself when it is not mapped under an alias.
func IDPredicate(e *mapping.Entity, idColumn string, idValue any) (string, []any) {
	physical, ok := e.Columns.Physical(idColumn)
	if !ok {
		physical = idColumn
	}
	return physical + " = ?", []any{idValue}
}
