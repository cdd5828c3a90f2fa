// Package clause provides the reusable clause template library.
//
// A library owns vetted clause templates tagged by category, framework, and
// jurisdiction. Templates are searchable with token-based text queries and
// AND-combined filters, and carry usage counters fed by an append-only usage
// log.
//
// Storage is behind the Repository interface; the package ships an in-memory
// implementation guarded by a read-write mutex. Callers that need durable
// storage implement Repository themselves — the engine performs no
// persistence of its own.
package clause
