package tools

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRegistry(t *testing.T) *Registry {
	t.Helper()
	return NewRegistry(setupService(t, demoMapping))
}

func TestRegistry_ListsAllTools(t *testing.T) {
	r := setupRegistry(t)

	names := []string{}
	for _, tool := range r.List() {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description)
		assert.Equal(t, "object", tool.InputSchema["type"])
	}
	assert.Equal(t, []string{
		"list_entities", "describe_entity", "query_entity",
		"list_files", "read_file", "get_file_metadata",
	}, names)
}

func TestRegistry_InvokeUnknownTool(t *testing.T) {
	r := setupRegistry(t)

	got, ok := r.Invoke(context.Background(), "drop_tables", nil).(ErrorResult)
	require.True(t, ok)
	assert.Equal(t, "Unknown tool: drop_tables", got.Error)
}

func TestRegistry_MissingRequiredArgument(t *testing.T) {
	r := setupRegistry(t)

	for _, tc := range []struct {
		tool string
		want string
	}{
		{"describe_entity", "Missing required argument: entity"},
		{"query_entity", "Missing required argument: entity"},
		{"list_files", "Missing required argument: directory"},
		{"read_file", "Missing required argument: path"},
		{"get_file_metadata", "Missing required argument: path"},
	} {
		got, ok := r.Invoke(context.Background(), tc.tool, map[string]any{}).(ErrorResult)
		require.True(t, ok, tc.tool)
		assert.Equal(t, tc.want, got.Error, tc.tool)
	}
}

func TestRegistry_QueryEntityArgumentDecoding(t *testing.T) {
	r := setupRegistry(t)

	// JSON-decoded arguments arrive as float64/[]any/map[string]any.
	got, ok := r.Invoke(context.Background(), "query_entity", map[string]any{
		"entity": "pilots",
		"fields": []any{"id", "name"},
		"limit":  float64(2),
	}).(ManyResult)
	require.True(t, ok)
	assert.Equal(t, 2, got.Count)
	assert.Equal(t, 2, got.Limit)
	for _, rec := range got.Data {
		assert.Len(t, rec, 2)
	}
}

func TestRegistry_QueryEntityByIDThroughDispatch(t *testing.T) {
	r := setupRegistry(t)

	got, ok := r.Invoke(context.Background(), "query_entity", map[string]any{
		"entity": "pilots",
		"id":     "PLT-002",
	}).(SingleResult)
	require.True(t, ok)
	require.NotNil(t, got.Data)
	assert.Equal(t, "Jane Doe", got.Data["name"])
}

func TestRegistry_ListEntitiesThroughDispatch(t *testing.T) {
	r := setupRegistry(t)

	got, ok := r.Invoke(context.Background(), "list_entities", nil).(EntityList)
	require.True(t, ok)
	assert.Contains(t, got.Entities, "pilots")
}
