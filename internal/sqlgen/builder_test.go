package sqlgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-mcp/internal/domain"
	"compliance-mcp/internal/mapping"
)

func pilotsEntity(t *testing.T) *mapping.Entity {
	t.Helper()
	s, err := mapping.Parse([]byte(`
entities:
  pilots:
    source_table: operators
    columns:
      id: operator_id
      name: full_name
      certificate_valid: cert_ok
    filter: status = 'active'
`))
	require.NoError(t, err)
	e, ok := s.Get("pilots")
	require.True(t, ok)
	return e
}

func TestBuildSelect_ColumnsInFileOrder(t *testing.T) {
	sqlText, args, err := BuildSelect(pilotsEntity(t), Options{})
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t,
		"SELECT operator_id AS id, full_name AS name, cert_ok AS certificate_valid"+
			" FROM operators WHERE (status = 'active')",
		sqlText)
}

func TestBuildSelect_StaticFilterThenCallerPredicate(t *testing.T) {
	sqlText, args, err := BuildSelect(pilotsEntity(t), Options{
		Where: "full_name = ?",
		Args:  []any{"Jane Doe"},
		Limit: 10,
	})
	require.NoError(t, err)
	assert.Equal(t, []any{"Jane Doe"}, args)
	assert.Equal(t,
		"SELECT operator_id AS id, full_name AS name, cert_ok AS certificate_valid"+
			" FROM operators WHERE (status = 'active') AND (full_name = ?) LIMIT 10",
		sqlText)
}

func TestBuildSelect_NoPredicatesIsUnconditional(t *testing.T) {
	s, err := mapping.Parse([]byte(`
entities:
  aircraft:
    source_table: fleet
    columns:
      id: tail_id
`))
	require.NoError(t, err)
	e, _ := s.Get("aircraft")

	sqlText, args, err := BuildSelect(e, Options{})
	require.NoError(t, err)
	assert.Empty(t, args)
	assert.Equal(t, "SELECT tail_id AS id FROM fleet WHERE 1=1", sqlText)
}

func TestBuildSelect_NoLimitWhenNonPositive(t *testing.T) {
	e := pilotsEntity(t)
	for _, limit := range []int{0, -5} {
		sqlText, _, err := BuildSelect(e, Options{Limit: limit})
		require.NoError(t, err)
		assert.NotContains(t, sqlText, "LIMIT")
	}
}

func TestBuildSelect_NotConfigured(t *testing.T) {
	_, _, err := BuildSelect(nil, Options{})
	var nc *domain.NotConfiguredError
	require.ErrorAs(t, err, &nc)

	_, _, err = BuildSelect(&mapping.Entity{Name: "widgets"}, Options{})
	require.ErrorAs(t, err, &nc)
	assert.Equal(t, "widgets", nc.Entity)
}

func TestBuildSelect_NoMappedColumns(t *testing.T) {
	_, _, err := BuildSelect(&mapping.Entity{Name: "pilots", SourceTable: "operators"}, Options{})
	var nm *domain.NoMappedColumnsError
	require.ErrorAs(t, err, &nm)
	assert.Equal(t, "pilots", nm.Entity)
}

func TestEqualityPredicate_SortedKeysAndBoundValues(t *testing.T) {
	where, args, err := EqualityPredicate(pilotsEntity(t), map[string]any{
		"name":              "Jane Doe",
		"certificate_valid": false,
	})
	require.NoError(t, err)
	assert.Equal(t, "cert_ok = ? AND full_name = ?", where)
	assert.Equal(t, []any{false, "Jane Doe"}, args)
}

func TestEqualityPredicate_EmptyFilters(t *testing.T) {
	where, args, err := EqualityPredicate(pilotsEntity(t), nil)
	require.NoError(t, err)
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestEqualityPredicate_RejectsUnknownKey(t *testing.T) {
	_, _, err := EqualityPredicate(pilotsEntity(t), map[string]any{
		"name":                    "Jane Doe",
		"x; DROP TABLE operators": 1,
	})
	var bad *domain.InvalidFilterKeyError
	require.ErrorAs(t, err, &bad)
	assert.Equal(t, "pilots", bad.Entity)
	assert.Equal(t, "x; DROP TABLE operators", bad.Key)
	assert.Equal(t, []string{"id", "name", "certificate_valid"}, bad.Valid)
}

func TestIDPredicate(t *testing.T) {
	e := pilotsEntity(t)

	where, args := IDPredicate(e, "id", "PLT-002")
	assert.Equal(t, "operator_id = ?", where)
	assert.Equal(t, []any{"PLT-002"}, args)

	// Unmapped id column falls back to the logical name itself.
	where, args = IDPredicate(e, "uuid", "abc")
	assert.Equal(t, "uuid = ?", where)
	assert.Equal(t, []any{"abc"}, args)
}
