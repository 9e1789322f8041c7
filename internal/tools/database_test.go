package tools

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
	"compliance-mcp/internal/store"
)

const demoMapping = `
entities:
  pilots:
    source_table: pilots
    columns:
      id: id
      name: name
      certificate_valid: certificate_valid
  aircraft:
    source_table: aircraft
    columns:
      id: id
      registration: registration
      registration_valid: registration_valid
`

func setupService(t *testing.T, mappingYAML string) *Service {
	t.Helper()
	handle := db.OpenTestSQLite(t)
	m, err := mapping.Parse([]byte(mappingYAML))
	require.NoError(t, err)
	accessor := store.NewAccessor(handle, m, slog.Default())
	return NewService(m, accessor, slog.Default())
}

func TestListEntities(t *testing.T) {
	svc := setupService(t, demoMapping)

	got := svc.ListEntities()
	assert.Empty(t, got.Message)
	assert.Equal(t, map[string]string{
		"pilots":   "Pilot certifications and credentials",
		"aircraft": "Aircraft registration and status",
	}, got.Entities)
}

func TestListEntities_EmptyStoreIsSignalNotError(t *testing.T) {
	svc := setupService(t, "")

	got := svc.ListEntities()
	assert.Empty(t, got.Entities)
	assert.NotEmpty(t, got.Message)
}

func TestListEntities_UnknownEntityDescription(t *testing.T) {
	svc := setupService(t, `
entities:
  widgets:
    source_table: pilots
    columns:
      id: id
`)
	got := svc.ListEntities()
	assert.Equal(t, "widgets data", got.Entities["widgets"])
}

func TestDescribeEntity_FieldsMatchConfiguredColumns(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.DescribeEntity("pilots").(EntityDescription)
	require.True(t, ok)
	assert.Equal(t, "pilots", got.Entity)
	assert.Equal(t, "pilots", got.SourceTable)
	// Exactly the configured logical names, regardless of table content.
	assert.Equal(t, map[string]string{
		"id":                "Unique identifier",
		"name":              "Full name",
		"certificate_valid": "Whether certificate is currently valid",
	}, got.Fields)
}

func TestDescribeEntity_Unconfigured(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.DescribeEntity("widgets").(ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "Entity 'widgets' not configured", got.Error)
	assert.Equal(t, []string{"pilots", "aircraft"}, got.AvailableEntities)
}

func TestQueryEntity_ByID(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{
		Entity: "pilots", ID: "PLT-002",
	}).(SingleResult)
	require.True(t, ok)
	require.NotNil(t, got.Data)
	assert.Equal(t, "PLT-002", got.Data["id"])
	assert.Equal(t, "Jane Doe", got.Data["name"])
	assert.EqualValues(t, 0, got.Data["certificate_valid"])
	assert.Empty(t, got.Message)
}

func TestQueryEntity_ByID_NotFoundIsNullSuccess(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{
		Entity: "pilots", ID: "PLT-999",
	}).(SingleResult)
	require.True(t, ok)
	assert.Nil(t, got.Data)
	assert.Equal(t, "No pilots found with id 'PLT-999'", got.Message)
}

func TestQueryEntity_Unconfigured(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{Entity: "widgets"}).(ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "Entity 'widgets' not configured", got.Error)
	// available_entities always equals the configured list, for any call order.
	assert.Equal(t, []string{"pilots", "aircraft"}, got.AvailableEntities)

	list := svc.ListEntities()
	for _, name := range got.AvailableEntities {
		assert.Contains(t, list.Entities, name)
	}
}

func TestQueryEntity_EmptyFiltersReturnsAllUpToLimit(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{Entity: "pilots"}).(ManyResult)
	require.True(t, ok)
	assert.Equal(t, 3, got.Count)
	assert.Len(t, got.Data, 3)
	assert.Equal(t, store.DefaultLimit, got.Limit)
}

func TestQueryEntity_LimitCapsCount(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{
		Entity: "pilots", Limit: 2,
	}).(ManyResult)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
	assert.Len(t, got.Data, 2)
	assert.Equal(t, 2, got.Limit)
}

func TestQueryEntity_EqualityFilters(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{
		Entity:  "aircraft",
		Filters: map[string]any{"registration_valid": 1},
	}).(ManyResult)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
	for _, rec := range got.Data {
		assert.NotEqual(t, "AC-002", rec["id"])
	}
}

func TestQueryEntity_InvalidFilterKeyIsRejected(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{
		Entity:  "pilots",
		Filters: map[string]any{"nonexistent": "x"},
	}).(ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "unknown filter field 'nonexistent' for entity 'pilots'", got.Error)
	assert.Equal(t, []string{"id", "name", "certificate_valid"}, got.AvailableFields)
}

func TestQueryEntity_FieldProjection(t *testing.T) {
	svc := setupService(t, demoMapping)

	got, ok := svc.QueryEntity(context.Background(), QueryRequest{
		Entity: "pilots", ID: "PLT-001", Fields: []string{"name", "no_such_field"},
	}).(SingleResult)
	require.True(t, ok)
	// Unknown projection names are silently ignored.
	assert.Equal(t, domain.Record{"name": "John Smith"}, got.Data)
}

func TestFieldProjection_Idempotent(t *testing.T) {
	rec := domain.Record{"id": "PLT-001", "name": "John Smith", "certificate_valid": true}
	fields := []string{"id", "name"}

	once := rec.Project(fields)
	twice := once.Project(fields)
	assert.Equal(t, once, twice)
}

func TestQueryEntity_StoreFailureIsGeneric(t *testing.T) {
	svc := setupService(t, `
entities:
  ghosts:
    source_table: no_such_table
    columns:
      id: id
`)
	got, ok := svc.QueryEntity(context.Background(), QueryRequest{Entity: "ghosts"}).(ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "data store unavailable", got.Error)
}
