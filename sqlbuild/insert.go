package sqlbuild

import (
	"strconv"
	"strings"
)

// Insert builds a single-row INSERT. The row's slice order fixes both the
// column list and the positional parameter order. Unset values are
// rejected; bind an explicit Null to store NULL.
func Insert(table string, row []ColumnValue) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(row) == 0 {
		return Statement{}, ErrEmptyInsert
	}

	cols := make([]string, 0, len(row))
	params := make([]Value, 0, len(row))
	for _, cv := range row {
		if err := ValidIdentifier(cv.Column); err != nil {
			return Statement{}, err
		}
		if !cv.Value.IsValid() {
			return Statement{}, &MalformedConditionError{Field: cv.Column, Reason: "insert requires a value"}
		}
		cols = append(cols, quoteIdent(cv.Column))
		params = append(params, cv.Value)
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(quoteIdent(table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(cols, ", "))
	sb.WriteString(") VALUES (")
	sb.WriteString(placeholders(len(row)))
	sb.WriteString(")")
	return Statement{SQL: sb.String(), Params: params}, nil
}

// InsertMany builds a multi-row INSERT with one VALUES tuple per row.
// Every row must supply exactly one value per column; parameters are
// emitted row by row, left to right.
func InsertMany(table string, columns []string, rows [][]Value) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(columns) == 0 || len(rows) == 0 {
		return Statement{}, ErrEmptyInsert
	}

	quoted := make([]string, 0, len(columns))
	for _, col := range columns {
		if err := ValidIdentifier(col); err != nil {
			return Statement{}, err
		}
		quoted = append(quoted, quoteIdent(col))
	}

	params := make([]Value, 0, len(columns)*len(rows))
	tuple := "(" + placeholders(len(columns)) + ")"
	tuples := make([]string, 0, len(rows))
	for i, r := range rows {
		if len(r) != len(columns) {
			return Statement{}, &MalformedRowError{Row: i, Reason: "has " + strconv.Itoa(len(r)) + " values, want " + strconv.Itoa(len(columns))}
		}
		for _, v := range r {
			if !v.IsValid() {
				return Statement{}, &MalformedRowError{Row: i, Reason: "contains an unset value"}
			}
			params = append(params, v)
		}
		tuples = append(tuples, tuple)
	}

	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(quoteIdent(table))
	sb.WriteString(" (")
	sb.WriteString(strings.Join(quoted, ", "))
	sb.WriteString(") VALUES ")
	sb.WriteString(strings.Join(tuples, ", "))
	return Statement{SQL: sb.String(), Params: params}, nil
}

// placeholders renders "?, ?, ?" sized to n.
func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
