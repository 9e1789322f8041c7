// Package tools implements the generic read-only tools the gateway exposes:
// entity discovery, description, and querying over the mapped customer
// schema, plus file access helpers.
//
// Every tool is total over its input domain — failures come back as
// structured payloads, never as propagated errors, so transports can
// serialize whatever they get.
package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"compliance-mcp/internal/domain"
	"compliance-mcp/internal/mapping"
	"compliance-mcp/internal/sqlgen"
	"compliance-mcp/internal/store"
)

// EntityList is the result of list_entities.
type EntityList struct {
	Entities map[string]string `json:"entities"`
	Message  string            `json:"message,omitempty"`
}

// EntityDescription is the success result of describe_entity.
type EntityDescription struct {
	Entity      string            `json:"entity"`
	Fields      map[string]string `json:"fields"`
	SourceTable string            `json:"source_table"`
}

// ErrorResult is the recoverable failure payload shared by all tools. The
// available lists give an exploring agent what it needs to retry correctly.
type ErrorResult struct {
	Error             string   `json:"error"`
	AvailableEntities []string `json:"available_entities,omitempty"`
	AvailableFields   []string `json:"available_fields,omitempty"`
}

// SingleResult is the by-ID result of query_entity. Data is null when no row
// matched — an expected outcome, not an error.
type SingleResult struct {
	Data    domain.Record `json:"data"`
	Message string        `json:"message,omitempty"`
}

// ManyResult is the multi-record result of query_entity. Count is the number
// of rows actually returned, never the unbounded matching total.
type ManyResult struct {
	Data  []domain.Record `json:"data"`
	Count int             `json:"count"`
	Limit int             `json:"limit"`
}

// QueryRequest carries the arguments of one query_entity call.
type QueryRequest struct {
	Entity  string
	ID      any // nil means multi-record mode
	Filters map[string]any
	Fields  []string
	Limit   int
}

// Service exposes the three generic database tools over a mapping store and
// record accessor.
type Service struct {
	mappings *mapping.Store
	accessor *store.Accessor
	logger   *slog.Logger
}

// NewService creates the database tool service.
func NewService(mappings *mapping.Store, accessor *store.Accessor, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{mappings: mappings, accessor: accessor, logger: logger}
}

// ListEntities lists the configured entities with human-readable
// descriptions. An empty mapping is signalled with a message so callers can
// distinguish "nothing set up yet" from a query failure.
func (s *Service) ListEntities() EntityList {
	entities := map[string]string{}
	for _, name := range s.mappings.ListConfigured() {
		entities[name] = describeEntityName(name)
	}
	if len(entities) == 0 {
		return EntityList{
			Entities: entities,
			Message:  "No entities configured. Create a data_mapping.yaml to expose data.",
		}
	}
	return EntityList{Entities: entities}
}

// DescribeEntity reports the logical fields an entity exposes. An
// unconfigured entity is a recoverable condition: the payload carries the
// list of valid entities so the caller can retry with a correct name.
func (s *Service) DescribeEntity(entity string) any {
	if !s.mappings.IsConfigured(entity) {
		return s.notConfigured(entity)
	}
	e, _ := s.mappings.Get(entity)

	fields := map[string]string{}
	for _, name := range e.Columns.Names() {
		fields[name] = describeField(name)
	}
	return EntityDescription{
		Entity:      entity,
		Fields:      fields,
		SourceTable: e.SourceTable,
	}
}

// QueryEntity runs a by-ID lookup or a filtered multi-record query and
// applies field projection to the result.
func (s *Service) QueryEntity(ctx context.Context, req QueryRequest) any {
	if !s.mappings.IsConfigured(req.Entity) {
		return s.notConfigured(req.Entity)
	}

	// Single record by ID
	if req.ID != nil {
		rec, err := s.accessor.QueryOne(ctx, req.Entity, req.ID, "id")
		if err != nil {
			return s.failure(err)
		}
		if rec == nil {
			return SingleResult{
				Data:    nil,
				Message: fmt.Sprintf("No %s found with id '%v'", req.Entity, req.ID),
			}
		}
		return SingleResult{Data: rec.Project(req.Fields)}
	}

	// Multi-record with optional equality filters
	e, _ := s.mappings.Get(req.Entity)
	where, args, err := sqlgen.EqualityPredicate(e, req.Filters)
	if err != nil {
		return s.failure(err)
	}

	limit := req.Limit
	if limit <= 0 {
		limit = store.DefaultLimit
	}
	records, err := s.accessor.QueryMany(ctx, req.Entity, where, args, limit)
	if err != nil {
		return s.failure(err)
	}

	projected := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		projected = append(projected, rec.Project(req.Fields))
	}
	return ManyResult{Data: projected, Count: len(projected), Limit: limit}
}

func (s *Service) notConfigured(entity string) ErrorResult {
	return ErrorResult{
		Error:             fmt.Sprintf("Entity '%s' not configured", entity),
		AvailableEntities: availableOrEmpty(s.mappings.ListConfigured()),
	}
}

// failure converts core errors into their caller-facing payloads.
func (s *Service) failure(err error) ErrorResult {
	var nc *domain.NotConfiguredError
	if errors.As(err, &nc) {
		return s.notConfigured(nc.Entity)
	}
	var bad *domain.InvalidFilterKeyError
	if errors.As(err, &bad) {
		return ErrorResult{Error: bad.Error(), AvailableFields: bad.Valid}
	}
	var su *domain.StoreUnavailableError
	if errors.As(err, &su) {
		s.logger.Error("query against data store failed", "error", su.Err)
		return ErrorResult{Error: "data store unavailable"}
	}
	s.logger.Error("query failed", "error", err)
	return ErrorResult{Error: err.Error()}
}

func availableOrEmpty(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
