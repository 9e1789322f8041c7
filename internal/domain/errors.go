// Package domain defines the core types and error taxonomy for the
// compliance data gateway.
package domain

import "fmt"

// NotConfiguredError indicates an entity is absent from the data mapping or
// is missing a source_table / non-empty columns block. It is recoverable:
// callers receive the list of entities that are configured so they can retry.
type NotConfiguredError struct {
	Entity    string
	Available []string
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("Entity '%s' not configured", e.Entity)
}

// InvalidFilterKeyError indicates a caller-supplied filter references a
// logical column the entity's mapping does not define. Filter keys are never
// interpolated into SQL — an unknown key is rejected outright.
type InvalidFilterKeyError struct {
	Entity string
	Key    string
	Valid  []string
}

func (e *InvalidFilterKeyError) Error() string {
	return fmt.Sprintf("unknown filter field '%s' for entity '%s'", e.Key, e.Entity)
}

// NoMappedColumnsError indicates an entity mapping has no column pairs.
// IsConfigured normally gates this, but the query builder checks it
// independently so it can never emit a SELECT with an empty column list.
type NoMappedColumnsError struct {
	Entity string
}

func (e *NoMappedColumnsError) Error() string {
	return fmt.Sprintf("no columns mapped for entity '%s'", e.Entity)
}

// StoreUnavailableError wraps a connection or execution failure against the
// underlying relational store. The core does not retry; any retry policy
// belongs to the transport layer.
type StoreUnavailableError struct {
	Err error
}

func (e *StoreUnavailableError) Error() string {
	return fmt.Sprintf("data store unavailable: %v", e.Err)
}

func (e *StoreUnavailableError) Unwrap() error { return e.Err }
