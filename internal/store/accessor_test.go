package store

import (
	"context"
	"log/slog"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-mcp/internal/db"
	"compliance-mcp/internal/domain"
	"compliance-mcp/internal/mapping"
	"compliance-mcp/internal/sqlgen"
)

const testMapping = `
entities:
  pilots:
    source_table: pilots
    columns:
      id: id
      name: name
      certificate_valid: certificate_valid
  crew:
    source_table: pilots
    columns:
      pilot_id: id
      full_name: name
  valid_pilots:
    source_table: pilots
    columns:
      id: id
      name: name
    filter: certificate_valid = 1
`

func setupAccessor(t *testing.T) *Accessor {
	t.Helper()
	handle := db.OpenTestSQLite(t)
	m, err := mapping.Parse([]byte(testMapping))
	require.NoError(t, err)
	return NewAccessor(handle, m, slog.Default())
}

func TestQueryOne_Found(t *testing.T) {
	a := setupAccessor(t)

	rec, err := a.QueryOne(context.Background(), "pilots", "PLT-002", "id")
	require.NoError(t, err)
	require.NotNil(t, rec)

	// Keys are exactly the configured logical names.
	assert.Len(t, rec, 3)
	assert.Equal(t, "PLT-002", rec["id"])
	assert.Equal(t, "Jane Doe", rec["name"])
	assert.EqualValues(t, 0, rec["certificate_valid"])
}

func TestQueryOne_AbsentIsNotAnError(t *testing.T) {
	a := setupAccessor(t)

	rec, err := a.QueryOne(context.Background(), "pilots", "PLT-999", "id")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestQueryOne_RekeysAliasedColumns(t *testing.T) {
	a := setupAccessor(t)

	rec, err := a.QueryOne(context.Background(), "crew", "PLT-001", "pilot_id")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, domain.Record{"pilot_id": "PLT-001", "full_name": "John Smith"}, rec)
}

func TestQueryOne_DefaultIDColumn(t *testing.T) {
	a := setupAccessor(t)

	rec, err := a.QueryOne(context.Background(), "pilots", "PLT-003", "")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Bob Wilson", rec["name"])
}

func TestQueryOne_Unconfigured(t *testing.T) {
	a := setupAccessor(t)

	_, err := a.QueryOne(context.Background(), "widgets", "X-1", "id")
	var nc *domain.NotConfiguredError
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "widgets", nc.Entity)
	assert.Equal(t, []string{"pilots", "crew", "valid_pilots"}, nc.Available)
}

func TestQueryMany_AllRows(t *testing.T) {
	a := setupAccessor(t)

	recs, err := a.QueryMany(context.Background(), "pilots", "", nil, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 3)
	for _, rec := range recs {
		assert.Len(t, rec, 3)
		assert.Contains(t, rec, "id")
		assert.Contains(t, rec, "name")
		assert.Contains(t, rec, "certificate_valid")
	}
}

func TestQueryMany_LimitCapsRows(t *testing.T) {
	a := setupAccessor(t)

	recs, err := a.QueryMany(context.Background(), "pilots", "", nil, 2)
	require.NoError(t, err)
	assert.Len(t, recs, 2)
}

func TestQueryMany_StaticFilterApplied(t *testing.T) {
	a := setupAccessor(t)

	recs, err := a.QueryMany(context.Background(), "valid_pilots", "", nil, 0)
	require.NoError(t, err)
	assert.Len(t, recs, 2) // PLT-002 is excluded by certificate_valid = 1
	for _, rec := range recs {
		assert.NotEqual(t, "PLT-002", rec["id"])
	}
}

func TestQueryMany_WithPredicate(t *testing.T) {
	a := setupAccessor(t)
	e, _ := a.Mappings().Get("pilots")

	where, args, err := sqlgen.EqualityPredicate(e, map[string]any{"name": "Jane Doe"})
	require.NoError(t, err)

	recs, err := a.QueryMany(context.Background(), "pilots", where, args, 0)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, "PLT-002", recs[0]["id"])
}

func TestQueryMany_StoreUnavailable(t *testing.T) {
	handle := db.OpenTestSQLite(t)
	m, err := mapping.Parse([]byte(`
entities:
  ghosts:
    source_table: no_such_table
    columns:
      id: id
`))
	require.NoError(t, err)
	a := NewAccessor(handle, m, slog.Default())

	_, err = a.QueryMany(context.Background(), "ghosts", "", nil, 0)
	var su *domain.StoreUnavailableError
	require.ErrorAs(t, err, &su)
}
