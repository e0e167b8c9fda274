package sqlbuild

import (
	"errors"
	"strconv"
)

// Builder errors are synchronous and non-retryable: they indicate a
// programming error in the caller's descriptor, not a transient
// condition. A failed build returns no SQL text and no parameters.

var (
	// ErrEmptyInsert is returned when an insert has no columns.
	ErrEmptyInsert = errors.New("insert requires at least one column")
	// ErrEmptyUpdate is returned when an update has no assignments.
	ErrEmptyUpdate = errors.New("update requires at least one assignment")
	// ErrEmptyTable is returned when a create-table has no columns.
	ErrEmptyTable = errors.New("create table requires at least one column")
)

// InvalidIdentifierError reports a table or column name that failed
// validation. Identifiers are never coerced or substituted.
type InvalidIdentifierError struct {
	Name string
}

func (e *InvalidIdentifierError) Error() string {
	return "invalid identifier " + quoteForError(e.Name) + ": must start with a letter or underscore and contain only letters, digits, and underscores"
}

// InvalidOperatorError reports an operator, logic token, join type, or
// aggregate function outside the fixed allowed set.
type InvalidOperatorError struct {
	Op string
}

func (e *InvalidOperatorError) Error() string {
	return "invalid operator " + quoteForError(e.Op)
}

// InvalidDirectionError reports an order direction other than ASC or DESC.
type InvalidDirectionError struct {
	Direction string
}

func (e *InvalidDirectionError) Error() string {
	return "invalid sort direction " + quoteForError(e.Direction) + ": want ASC or DESC"
}

// InvalidColumnTypeError reports a column type outside the fixed SQLite
// type set.
type InvalidColumnTypeError struct {
	Type string
}

func (e *InvalidColumnTypeError) Error() string {
	return "invalid column type " + quoteForError(e.Type)
}

// MalformedConditionError reports a condition whose value shape does not
// match its operator, e.g. BETWEEN without an upper bound or IN without a
// value list.
type MalformedConditionError struct {
	Field  string
	Reason string
}

func (e *MalformedConditionError) Error() string {
	return "malformed condition on " + quoteForError(e.Field) + ": " + e.Reason
}

// MalformedRowError reports a multi-row insert row that does not match
// the column list, by zero-based row index.
type MalformedRowError struct {
	Row    int
	Reason string
}

func (e *MalformedRowError) Error() string {
	return "malformed insert row " + strconv.Itoa(e.Row) + ": " + e.Reason
}

// MalformedAggregateError reports an aggregate projection whose column
// does not fit its function, e.g. * outside COUNT.
type MalformedAggregateError struct {
	Func   string
	Reason string
}

func (e *MalformedAggregateError) Error() string {
	return "malformed aggregate " + quoteForError(e.Func) + ": " + e.Reason
}

// MalformedJoinError reports a join clause missing a required part.
type MalformedJoinError struct {
	Table  string
	Reason string
}

func (e *MalformedJoinError) Error() string {
	return "malformed join on " + quoteForError(e.Table) + ": " + e.Reason
}

// InvalidColumnSpecError reports a column definition that violates a
// schema invariant, e.g. AUTOINCREMENT on a non-integer column.
type InvalidColumnSpecError struct {
	Column string
	Reason string
}

func (e *InvalidColumnSpecError) Error() string {
	return "invalid column " + quoteForError(e.Column) + ": " + e.Reason
}

func quoteForError(s string) string {
	return `"` + s + `"`
}
