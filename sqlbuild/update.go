package sqlbuild

import "strings"

// Update builds an UPDATE statement. Assignment parameters come first,
// then WHERE parameters; that ordering defines positional binding and
// must not change. An empty where list legitimately updates every row --
// no safety filter is injected, so callers must guard that case
// themselves.
func Update(table string, set []ColumnValue, where []Condition, logic Logic) (Statement, error) {
	if err := ValidIdentifier(table); err != nil {
		return Statement{}, err
	}
	if len(set) == 0 {
		return Statement{}, ErrEmptyUpdate
	}

	assigns := make([]string, 0, len(set))
	params := make([]Value, 0, len(set))
	for _, cv := range set {
		if err := ValidIdentifier(cv.Column); err != nil {
			return Statement{}, err
		}
		if !cv.Value.IsValid() {
			return Statement{}, &MalformedConditionError{Field: cv.Column, Reason: "assignment requires a value"}
		}
		assigns = append(assigns, quoteIdent(cv.Column)+" = ?")
		params = append(params, cv.Value)
	}

	var sb strings.Builder
	sb.WriteString("UPDATE ")
	sb.WriteString(quoteIdent(table))
	sb.WriteString(" SET ")
	sb.WriteString(strings.Join(assigns, ", "))

	if len(where) > 0 {
		expr, p, err := CompileConditions(where, logic)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(expr)
		params = append(params, p...)
	}

	return Statement{SQL: sb.String(), Params: params}, nil
}
