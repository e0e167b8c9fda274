package sqlbuild

// Statement is a built SQL statement with its positional parameters.
// The SQL text uses `?` placeholders (SQLite syntax); Params holds the
// bound values in placeholder order. Statements are plain values with no
// hidden state: building one twice from the same inputs yields identical
// output, and a Statement is safe to share once built.
type Statement struct {
	// SQL is the statement text. Identifiers are double-quoted; values are
	// never inlined except for DDL default literals, which SQLite does not
	// allow to be parameterized.
	SQL string

	// Params are the bound values consumed by the `?` placeholders in SQL,
	// in order.
	Params []Value
}

// Raw wraps caller-provided SQL text and parameters in a Statement.
// No validation is performed on the text. Use this for statements the
// builders cannot express; prefer the builders everywhere else.
func Raw(sql string, params ...Value) Statement {
	return Statement{SQL: sql, Params: params}
}

// ColumnValue pairs a column name with a bound value. Slices of
// ColumnValue stand in for ordered maps: the slice order determines both
// the column order in the generated SQL and the positional parameter
// order, so it is load-bearing.
type ColumnValue struct {
	Column string
	Value  Value
}

// Set is shorthand for a ColumnValue.
func Set(column string, v Value) ColumnValue {
	return ColumnValue{Column: column, Value: v}
}
