// Package store executes built statements against the underlying relational
// store and returns rows re-keyed to logical column names.
package store

import (
	"context"
	"database/sql"
	"log/slog"

	"compliance-mcp/internal/domain"
	"compliance-mcp/internal/mapping"
	"compliance-mcp/internal/sqlgen"
)

// DefaultLimit caps multi-record queries when the caller does not supply a
// positive limit.
const DefaultLimit = 100

// Accessor runs mapped read-only queries. Each call borrows a connection from
// the pool for the duration of one statement and releases it on every exit
// path; the accessor holds no per-call state.
type Accessor struct {
	db       *sql.DB
	mappings *mapping.Store
	logger   *slog.Logger
}

// NewAccessor creates an Accessor over the given pool and mapping store.
func NewAccessor(db *sql.DB, mappings *mapping.Store, logger *slog.Logger) *Accessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Accessor{db: db, mappings: mappings, logger: logger}
}

// Mappings returns the mapping store the accessor was built with.
func (a *Accessor) Mappings() *mapping.Store { return a.mappings }

// QueryOne fetches a single record by ID. idColumn names the logical ID
// column (usually "id"); its physical counterpart is resolved through the
// mapping. A missing row is not an error: the record is nil and the error is
// nil.
func (a *Accessor) QueryOne(ctx context.Context, entity string, idValue any, idColumn string) (domain.Record, error) {
	e, err := a.configured(entity)
	if err != nil {
		return nil, err
	}
	if idColumn == "" {
		idColumn = "id"
	}

	where, args := sqlgen.IDPredicate(e, idColumn, idValue)
	records, err := a.run(ctx, e, sqlgen.Options{Where: where, Args: args, Limit: 1})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return records[0], nil
}

// QueryMany fetches up to limit records matching the given predicate. The
// predicate must come from sqlgen (or be empty for an unconditional query).
// Row order is whatever the underlying engine returns; no ORDER BY is added.
func (a *Accessor) QueryMany(ctx context.Context, entity string, where string, args []any, limit int) ([]domain.Record, error) {
	e, err := a.configured(entity)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return a.run(ctx, e, sqlgen.Options{Where: where, Args: args, Limit: limit})
}

func (a *Accessor) configured(entity string) (*mapping.Entity, error) {
	if !a.mappings.IsConfigured(entity) {
		return nil, &domain.NotConfiguredError{
			Entity:    entity,
			Available: a.mappings.ListConfigured(),
		}
	}
	e, _ := a.mappings.Get(entity)
	return e, nil
}

// run builds, executes, and scans one statement. The result columns are the
// logical aliases from the select list, so zipping them with the scanned
// values re-keys each row to logical names.
func (a *Accessor) run(ctx context.Context, e *mapping.Entity, opt sqlgen.Options) ([]domain.Record, error) {
	sqlText, args, err := sqlgen.BuildSelect(e, opt)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("executing mapped query", "entity", e.Name, "sql", sqlText)

	rows, err := a.db.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, &domain.StoreUnavailableError{Err: err}
	}
	defer rows.Close() //nolint:errcheck

	cols, err := rows.Columns()
	if err != nil {
		return nil, &domain.StoreUnavailableError{Err: err}
	}

	var records []domain.Record
	for rows.Next() {
		vals := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, &domain.StoreUnavailableError{Err: err}
		}

		rec := make(domain.Record, len(cols))
		for i, col := range cols {
			rec[col] = normalize(vals[i])
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.StoreUnavailableError{Err: err}
	}
	return records, nil
}

// normalize converts driver byte slices to strings so records serialize as
// text rather than base64.
func normalize(v any) any {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}
