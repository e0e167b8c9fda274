package sqlbuild

import "strings"

// Delete builds a DELETE statement. An empty where list deletes every
// row; like Update, no implicit safety filter is added. A positive limit
// caps the affected rows with a bound LIMIT parameter (supported by D1's
// SQLite build).
func Delete(table string, where []Condition, logic Logic, limit int) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}

	var sb strings.Builder
	var params []Value
	sb.WriteString("DELETE FROM ")
	sb.WriteString(quoteIdent(table))

	if len(where) > 0 {
		expr, p, err := CompileConditions(where, logic)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(expr)
		params = append(params, p...)
	}

	if limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, Int(int64(limit)))
	}

	return Statement{SQL: sb.String(), Params: params}, nil
}
