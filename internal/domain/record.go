package domain

// Record is one row of query results keyed by logical column names. Every key
// comes from the entity's configured column mapping — physical column names
// never appear. Records are built fresh per row and owned by the caller.
type Record map[string]any

// Project returns a copy of the record containing only the listed fields.
// Unknown field names are ignored; a nil or empty field list returns the
// record unchanged. Projecting twice with the same fields is a no-op.
func (r Record) Project(fields []string) Record {
	if r == nil || len(fields) == 0 {
		return r
	}
	out := make(Record, len(fields))
	for _, f := range fields {
		if v, ok := r[f]; ok {
			out[f] = v
		}
	}
	return out
}
