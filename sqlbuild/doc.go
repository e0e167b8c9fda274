// Package sqlbuild builds parameterized SQLite statements from structured
// descriptors.
//
// Every builder is a pure function: descriptors in, a Statement (SQL text
// plus ordered parameters) out. Builders perform no I/O, keep no state,
// and are safe to call concurrently. Values are always bound through `?`
// placeholders; the only strings interpolated into SQL text are
// identifiers that passed ValidIdentifier, keywords from fixed sets, and
// DDL default literals (which SQLite cannot parameterize).
//
// # Builders
//
//   - Insert / InsertMany for INSERT
//   - Select for the common single-table fetch
//   - BuildQuery (or the fluent NewQuery) for joins, aggregates,
//     GROUP BY, HAVING, and the full operator set
//   - Update / Delete for DML with shared condition compilation
//   - CreateTable / DropTable / ListTables / TableColumns for DDL and
//     schema inspection
//
// # Trust boundary
//
// Join ON expressions are passed through verbatim and never validated.
// They exist for expressions the descriptor model cannot represent and
// must not be assembled from untrusted input. Everything else a caller
// supplies is either validated (identifiers, keywords) or bound
// (values).
//
// # Errors
//
// All failures are detected before any SQL is emitted and reported as
// typed errors (InvalidIdentifierError, InvalidOperatorError,
// InvalidDirectionError, MalformedConditionError, ...) or the ErrEmpty*
// sentinels. They indicate caller bugs, not transient conditions, and
// are never retryable.
package sqlbuild
