package tools

import (
	"context"
	"fmt"
)

// Tool describes one invokable tool: its wire name, description, JSON input
// schema, and handler. The schema is served verbatim to agents discovering
// the gateway.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"inputSchema"`
	handler     func(ctx context.Context, args map[string]any) any
}

// Registry dispatches tool calls by name. It is shared by the HTTP and stdio
// transports so both expose exactly the same surface.
type Registry struct {
	tools  []Tool
	byName map[string]*Tool
}

// NewRegistry builds the standard tool set around a database tool service.
func NewRegistry(svc *Service) *Registry {
	r := &Registry{byName: map[string]*Tool{}}

	r.register(Tool{
		Name:        "list_entities",
		Description: "List all available data entities. Call this first to see what data is available.",
		InputSchema: objectSchema(map[string]any{}, nil),
		handler: func(_ context.Context, _ map[string]any) any {
			return svc.ListEntities()
		},
	})

	r.register(Tool{
		Name:        "describe_entity",
		Description: "Describe the fields available for a specific entity.",
		InputSchema: objectSchema(map[string]any{
			"entity": map[string]any{"type": "string", "description": "Entity name (e.g., pilots, aircraft, flights)"},
		}, []string{"entity"}),
		handler: func(_ context.Context, args map[string]any) any {
			entity, ok := stringArg(args, "entity")
			if !ok {
				return missingArg("entity")
			}
			return svc.DescribeEntity(entity)
		},
	})

	r.register(Tool{
		Name:        "query_entity",
		Description: "Query data from an entity. Get single record by ID, or multiple records with filters.",
		InputSchema: objectSchema(map[string]any{
			"entity":  map[string]any{"type": "string", "description": "Entity name"},
			"id":      map[string]any{"type": "string", "description": "Optional: Get single record by ID"},
			"filters": map[string]any{"type": "object", "description": "Optional: Filter conditions as {field: value}", "additionalProperties": true},
			"fields":  map[string]any{"type": "array", "items": map[string]any{"type": "string"}, "description": "Optional: Specific fields to return"},
			"limit":   map[string]any{"type": "integer", "description": "Maximum records (default: 100)", "default": 100},
		}, []string{"entity"}),
		handler: func(ctx context.Context, args map[string]any) any {
			entity, ok := stringArg(args, "entity")
			if !ok {
				return missingArg("entity")
			}
			req := QueryRequest{Entity: entity}
			if id, present := args["id"]; present && id != nil {
				req.ID = id
			}
			if filters, ok := args["filters"].(map[string]any); ok {
				req.Filters = filters
			}
			if fields, ok := args["fields"].([]any); ok {
				for _, f := range fields {
					if name, ok := f.(string); ok {
						req.Fields = append(req.Fields, name)
					}
				}
			}
			req.Limit = intArg(args, "limit", 0)
			return svc.QueryEntity(ctx, req)
		},
	})

	r.register(Tool{
		Name:        "list_files",
		Description: "List files in a directory",
		InputSchema: objectSchema(map[string]any{
			"directory": map[string]any{"type": "string", "description": "Directory path to list"},
			"pattern":   map[string]any{"type": "string", "description": "Glob pattern to filter files", "default": "*"},
			"recursive": map[string]any{"type": "boolean", "description": "List recursively", "default": false},
		}, []string{"directory"}),
		handler: func(_ context.Context, args map[string]any) any {
			directory, ok := stringArg(args, "directory")
			if !ok {
				return missingArg("directory")
			}
			pattern, _ := stringArg(args, "pattern")
			recursive, _ := args["recursive"].(bool)
			return ListFiles(directory, pattern, recursive)
		},
	})

	r.register(Tool{
		Name:        "read_file",
		Description: "Read file content",
		InputSchema: objectSchema(map[string]any{
			"path":      map[string]any{"type": "string", "description": "File path to read"},
			"max_bytes": map[string]any{"type": "integer", "description": "Maximum bytes to read"},
		}, []string{"path"}),
		handler: func(_ context.Context, args map[string]any) any {
			path, ok := stringArg(args, "path")
			if !ok {
				return missingArg("path")
			}
			return ReadFile(path, intArg(args, "max_bytes", 0))
		},
	})

	r.register(Tool{
		Name:        "get_file_metadata",
		Description: "Get file metadata (size, type, dates)",
		InputSchema: objectSchema(map[string]any{
			"path": map[string]any{"type": "string", "description": "File or directory path"},
		}, []string{"path"}),
		handler: func(_ context.Context, args map[string]any) any {
			path, ok := stringArg(args, "path")
			if !ok {
				return missingArg("path")
			}
			return GetFileMetadata(path)
		},
	})

	return r
}

func (r *Registry) register(t Tool) {
	r.tools = append(r.tools, t)
	r.byName[t.Name] = &r.tools[len(r.tools)-1]
}

// List returns the tool descriptors in registration order.
func (r *Registry) List() []Tool {
	out := make([]Tool, len(r.tools))
	copy(out, r.tools)
	return out
}

// Invoke dispatches a tool call. Unknown tools and handler failures come back
// as ErrorResult payloads, never as errors.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) any {
	t, ok := r.byName[name]
	if !ok {
		return ErrorResult{Error: fmt.Sprintf("Unknown tool: %s", name)}
	}
	if args == nil {
		args = map[string]any{}
	}
	return t.handler(ctx, args)
}

func objectSchema(properties map[string]any, required []string) map[string]any {
	if required == nil {
		required = []string{}
	}
	return map[string]any{
		"type":       "object",
		"properties": properties,
		"required":   required,
	}
}

func stringArg(args map[string]any, key string) (string, bool) {
	s, ok := args[key].(string)
	return s, ok && s != ""
}

// intArg reads an integer argument, tolerating the float64 that JSON
// decoding produces.
func intArg(args map[string]any, key string, def int) int {
	switch v := args[key].(type) {
	case int:
		return v
	case int64:
		return int(v)
	case float64:
		return int(v)
	default:
		return def
	}
}

func missingArg(name string) ErrorResult {
	return ErrorResult{Error: fmt.Sprintf("Missing required argument: %s", name)}
}
