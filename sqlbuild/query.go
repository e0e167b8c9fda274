package sqlbuild

import "strings"

// JoinType is a SQL join keyword from the fixed allowed set.
type JoinType string

const (
	JoinInner     JoinType = "INNER"
	JoinLeft      JoinType = "LEFT"
	JoinRight     JoinType = "RIGHT"
	JoinFullOuter JoinType = "FULL OUTER"
	JoinCross     JoinType = "CROSS"
)

// Join describes a join clause. The ON expression is inserted verbatim:
// it is a caller-trusted string, NOT validated or parameterized. Never
// build it from untrusted input. Joined table names are validated like
// any other identifier.
type Join struct {
	Type  JoinType
	Table string
	On    string
}

// Direction is an ORDER BY direction token.
type Direction string

const (
	Asc  Direction = "ASC"
	Desc Direction = "DESC"
)

// Order is one ORDER BY term. An empty Direction means ASC.
type Order struct {
	Field     string
	Direction Direction
}

// AggregateFunc is a SQL aggregate from the fixed allowed set. Function
// names never come from free-form caller strings.
type AggregateFunc string

const (
	AggCount       AggregateFunc = "COUNT"
	AggSum         AggregateFunc = "SUM"
	AggAvg         AggregateFunc = "AVG"
	AggMin         AggregateFunc = "MIN"
	AggMax         AggregateFunc = "MAX"
	AggTotal       AggregateFunc = "TOTAL"
	AggGroupConcat AggregateFunc = "GROUP_CONCAT"
)

// Aggregate projects an aggregate function over a column. Column "*" is
// allowed for COUNT only. Alias is optional.
type Aggregate struct {
	Func   AggregateFunc
	Column string
	Alias  string
}

// Query is the full SELECT descriptor. Zero-value fields are omitted
// from the generated statement. Clause order in the output is fixed:
// SELECT, FROM, JOIN, WHERE, GROUP BY, HAVING, ORDER BY, LIMIT, OFFSET.
type Query struct {
	Table      string
	Columns    []string
	Aggregates []Aggregate

	// Where conditions, joined by Logic (AND when empty).
	Where []Condition
	Logic Logic

	Joins   []Join
	GroupBy []string

	// Having is compiled by the same condition compiler as Where and uses
	// the same Logic token.
	Having []Condition

	OrderBy []Order
	Limit   int
	Offset  int
}

// BuildQuery compiles a Query descriptor into a SELECT statement. It
// either succeeds for the whole descriptor or fails without emitting
// partial SQL.
func BuildQuery(q Query) (Statement, error) {
	if err := ValidIdentifier(q.Table); err != nil {
		return Statement{}, err
	}

	var sb strings.Builder
	var params []Value

	projection, err := buildProjection(q)
	if err != nil {
		return Statement{}, err
	}
	sb.WriteString("SELECT ")
	sb.WriteString(projection)
	sb.WriteString(" FROM ")
	sb.WriteString(quoteIdent(q.Table))

	for _, j := range q.Joins {
		clause, err := buildJoin(j)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(" ")
		sb.WriteString(clause)
	}

	if len(q.Where) > 0 {
		expr, p, err := CompileConditions(q.Where, q.Logic)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(" WHERE ")
		sb.WriteString(expr)
		params = append(params, p...)
	}

	if len(q.GroupBy) > 0 {
		cols := make([]string, 0, len(q.GroupBy))
		for _, col := range q.GroupBy {
			if err := ValidIdentifier(col); err != nil {
				return Statement{}, err
			}
			cols = append(cols, quoteIdent(col))
		}
		sb.WriteString(" GROUP BY ")
		sb.WriteString(strings.Join(cols, ", "))
	}

	if len(q.Having) > 0 {
		expr, p, err := CompileConditions(q.Having, q.Logic)
		if err != nil {
			return Statement{}, err
		}
		sb.WriteString(" HAVING ")
		sb.WriteString(expr)
		params = append(params, p...)
	}

	if len(q.OrderBy) > 0 {
		terms := make([]string, 0, len(q.OrderBy))
		for _, o := range q.OrderBy {
			if err := ValidIdentifier(o.Field); err != nil {
				return Statement{}, err
			}
			dir := o.Direction
			if dir == "" {
				dir = Asc
			}
			if dir != Asc && dir != Desc {
				return Statement{}, &InvalidDirectionError{Direction: string(o.Direction)}
			}
			terms = append(terms, quoteIdent(o.Field)+" "+string(dir))
		}
		sb.WriteString(" ORDER BY ")
		sb.WriteString(strings.Join(terms, ", "))
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		params = append(params, Int(int64(q.Limit)))
		if q.Offset > 0 {
			sb.WriteString(" OFFSET ?")
			params = append(params, Int(int64(q.Offset)))
		}
	}

	return Statement{SQL: sb.String(), Params: params}, nil
}

// buildProjection renders the SELECT list: plain columns first, then
// aggregates, "*" when neither is given.
func buildProjection(q Query) (string, error) {
	if len(q.Columns) == 0 && len(q.Aggregates) == 0 {
		return "*", nil
	}

	parts := make([]string, 0, len(q.Columns)+len(q.Aggregates))
	for _, col := range q.Columns {
		if err := ValidIdentifier(col); err != nil {
			return "", err
		}
		parts = append(parts, quoteIdent(col))
	}
	for _, agg := range q.Aggregates {
		rendered, err := buildAggregate(agg)
		if err != nil {
			return "", err
		}
		parts = append(parts, rendered)
	}
	return strings.Join(parts, ", "), nil
}

func buildAggregate(agg Aggregate) (string, error) {
	switch agg.Func {
	case AggCount, AggSum, AggAvg, AggMin, AggMax, AggTotal, AggGroupConcat:
	default:
		return "", &InvalidOperatorError{Op: string(agg.Func)}
	}

	var arg string
	if agg.Column == "*" {
		if agg.Func != AggCount {
			return "", &MalformedAggregateError{Func: string(agg.Func), Reason: "* is only valid with COUNT"}
		}
		arg = "*"
	} else {
		if err := ValidIdentifier(agg.Column); err != nil {
			return "", err
		}
		arg = quoteIdent(agg.Column)
	}

	rendered := string(agg.Func) + "(" + arg + ")"
	if agg.Alias != "" {
		if err := ValidIdentifier(agg.Alias); err != nil {
			return "", err
		}
		rendered += " AS " + quoteIdent(agg.Alias)
	}
	return rendered, nil
}

func buildJoin(j Join) (string, error) {
	switch j.Type {
	case JoinInner, JoinLeft, JoinRight, JoinFullOuter, JoinCross:
	default:
		return "", &InvalidOperatorError{Op: string(j.Type)}
	}
	if err := ValidIdentifier(j.Table); err != nil {
		return "", err
	}

	if j.Type == JoinCross {
		return "CROSS JOIN " + quoteIdent(j.Table), nil
	}
	if strings.TrimSpace(j.On) == "" {
		return "", &MalformedJoinError{Table: j.Table, Reason: string(j.Type) + " join requires an ON expression"}
	}
	// The ON expression passes through untouched. See Join.
	return string(j.Type) + " JOIN " + quoteIdent(j.Table) + " ON " + j.On, nil
}
