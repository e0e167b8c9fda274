package sqlbuild

import "strings"

// SelectOptions narrows a simple Select. All fields are optional; the
// zero value (or a nil pointer) selects every row and column.
type SelectOptions struct {
	// Columns to project. Empty means "*".
	Columns []string

	// Where holds equality filters, ANDed in slice order. For other
	// operators or OR logic use BuildQuery.
	Where []ColumnValue

	// OrderBy names a single sort column; Desc flips the direction.
	OrderBy string
	Desc    bool

	// Limit caps the row count. Zero means no limit. Limit and Offset are
	// bound as parameters, not inlined.
	Limit int

	// Offset skips rows and is emitted only together with Limit, matching
	// SQLite's grammar.
	Offset int
}

// Select builds a simple single-table SELECT: equality filters, one sort
// column, bound LIMIT/OFFSET. It covers the common row-fetch path; the
// full descriptor form lives in BuildQuery.
func Select(table string, opts *SelectOptions) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	if opts == nil {
		opts = &SelectOptions{}
	}

	var sb strings.Builder
	var params []Value

	sb.WriteString("SELECT ")
	if len(opts.Columns) == 0 {
		sb.WriteString("*")
	} else {
		cols := make([]string, 0, len(opts.Columns))
		for _, col := range opts.Columns {
			if err := ValidIdentifier(col); err != nil {
				return Statement{}, err
			}
			cols = append(cols, quoteIdent(col))
		}
		sb.WriteString(strings.Join(cols, ", "))
	}
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(table))

	if len(opts.Where) > 0 {
		frags := make([]string, 0, len(opts.Where))
		for _, cv := range opts.Where {
			if err := ValidIdentifier(cv.Column); err != nil {
				return Statement{}, err
			}
			if !cv.Value.IsValid() {
				return Statement{}, &MalformedConditionError{Field: cv.Column, Reason: "= requires a value"}
			}
			frags = append(frags, quoteIdent(cv.Column)+" = ?")
			params = append(params, cv.Value)
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(frags, " AND "))
	}

	if opts.OrderBy != "" {
		if err := ValidIdentifier(opts.OrderBy); err != nil {
			return Statement{}, err
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(quoteIdent(opts.OrderBy))
		if opts.Desc {
			sb.WriteString(" DESC")
		} else {
			sb.WriteString(" ASC")
		}
	}

	if opts.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, Int(int64(opts.Limit)))
		if opts.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			params = append(params, Int(int64(opts.Offset)))
		}
	}

	return Statement{SQL: sb.String(), Params: params}, nil
}
