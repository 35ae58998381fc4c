// Package queryir provides the query intermediate representation used to
// list stored strings.
//
// QueryIR is the boundary between the API's filter parameters and the
// storage backend:
//
//	[model.FilterSet] → [Query IR] → [SQL backend (querysql)]
//
// The IR is a small fragment of relational algebra:
//   - Select(from, columns, filter) - table access with filtering
//   - Predicates: Equals, Compare (>=, <=), Contains, And
//
// Excluded on purpose: joins, OR, NULL comparisons, aggregations.
//
// # Sealed Interfaces
//
// Query and Predicate use the marker method pattern, so only types in this
// package implement them and backends can switch exhaustively:
//
//	switch p := pred.(type) {
//	case Equals:
//	case Compare:
//	case Contains:
//	case And:
//	}
//
// # Columns
//
// Field names are checked against the strings table by Validate. Literal
// values are always carried as values, never spliced into field names, so a
// backend can parameterize every one of them.
package queryir
