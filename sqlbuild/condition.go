package sqlbuild

import "strings"

// Operator is a comparison operator in a Condition. Only the enumerated
// constants below are accepted; anything else fails the build.
type Operator string

const (
	OpEq        Operator = "="
	OpNe        Operator = "!="
	OpGt        Operator = ">"
	OpLt        Operator = "<"
	OpGe        Operator = ">="
	OpLe        Operator = "<="
	OpLike      Operator = "LIKE"
	OpNotLike   Operator = "NOT LIKE"
	OpIn        Operator = "IN"
	OpNotIn     Operator = "NOT IN"
	OpIsNull    Operator = "IS NULL"
	OpIsNotNull Operator = "IS NOT NULL"
	OpBetween   Operator = "BETWEEN"
)

// Logic joins the conditions of a WHERE or HAVING clause. There is no
// per-condition override and no nesting: a clause is either all-AND or
// all-OR. That ceiling is deliberate; callers needing mixed logic must
// fall back to Raw.
type Logic string

const (
	LogicAnd Logic = "AND"
	LogicOr  Logic = "OR"
)

// Condition is one predicate in a WHERE or HAVING clause.
//
// The value fields used depend on the operator: IS NULL and IS NOT NULL
// use none, IN and NOT IN use Values, BETWEEN uses Value and Upper, and
// every other operator uses Value alone.
type Condition struct {
	Field    string
	Operator Operator
	Value    Value
	Values   []Value
	Upper    Value
}

// Eq builds a "field = value" condition.
func Eq(field string, v Value) Condition {
	return Condition{Field: field, Operator: OpEq, Value: v}
}

// Ne builds a "field != value" condition.
func Ne(field string, v Value) Condition {
	return Condition{Field: field, Operator: OpNe, Value: v}
}

// Gt builds a "field > value" condition.
func Gt(field string, v Value) Condition {
	return Condition{Field: field, Operator: OpGt, Value: v}
}

// Lt builds a "field < value" condition.
func Lt(field string, v Value) Condition {
	return Condition{Field: field, Operator: OpLt, Value: v}
}

// Ge builds a "field >= value" condition.
func Ge(field string, v Value) Condition {
	return Condition{Field: field, Operator: OpGe, Value: v}
}

// Le builds a "field <= value" condition.
func Le(field string, v Value) Condition {
	return Condition{Field: field, Operator: OpLe, Value: v}
}

// Like builds a "field LIKE pattern" condition. The pattern is bound
// verbatim; no wildcards are added here.
func Like(field string, pattern Value) Condition {
	return Condition{Field: field, Operator: OpLike, Value: pattern}
}

// NotLike builds a "field NOT LIKE pattern" condition.
func NotLike(field string, pattern Value) Condition {
	return Condition{Field: field, Operator: OpNotLike, Value: pattern}
}

// In builds a "field IN (...)" condition.
func In(field string, vs ...Value) Condition {
	return Condition{Field: field, Operator: OpIn, Values: vs}
}

// NotIn builds a "field NOT IN (...)" condition.
func NotIn(field string, vs ...Value) Condition {
	return Condition{Field: field, Operator: OpNotIn, Values: vs}
}

// IsNull builds a "field IS NULL" condition.
func IsNull(field string) Condition {
	return Condition{Field: field, Operator: OpIsNull}
}

// IsNotNull builds a "field IS NOT NULL" condition.
func IsNotNull(field string) Condition {
	return Condition{Field: field, Operator: OpIsNotNull}
}

// Between builds a "field BETWEEN lo AND hi" condition.
func Between(field string, lo, hi Value) Condition {
	return Condition{Field: field, Operator: OpBetween, Value: lo, Upper: hi}
}

// CompileConditions turns a condition list into a boolean expression and
// the parameters it consumes, in order. It is the shared compiler behind
// WHERE and HAVING. An empty logic token defaults to AND. The compiler
// either succeeds for the whole list or fails without emitting anything.
func CompileConditions(conds []Condition, logic Logic) (string, []Value, error) {
	switch logic {
	case LogicAnd, LogicOr:
	case "":
		logic = LogicAnd
	default:
		return "", nil, &InvalidOperatorError{Op: string(logic)}
	}

	frags := make([]string, 0, len(conds))
	var params []Value
	for _, c := range conds {
		frag, p, err := compileCondition(c)
		if err != nil {
			return "", nil, err
		}
		frags = append(frags, frag)
		params = append(params, p...)
	}
	return strings.Join(frags, " "+string(logic)+" "), params, nil
}

func compileCondition(c Condition) (string, []Value, error) {
	if err := ValidIdentifier(c.Field); err != nil {
		return "", nil, err
	}
	field := quoteIdent(c.Field)

	switch c.Operator {
	case OpIsNull:
		return field + " IS NULL", nil, nil
	case OpIsNotNull:
		return field + " IS NOT NULL", nil, nil

	case OpIn, OpNotIn:
		if len(c.Values) == 0 {
			return "", nil, &MalformedConditionError{Field: c.Field, Reason: string(c.Operator) + " requires a non-empty value list"}
		}
		for _, v := range c.Values {
			if !v.IsValid() {
				return "", nil, &MalformedConditionError{Field: c.Field, Reason: string(c.Operator) + " list contains an unset value"}
			}
		}
		placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(c.Values)), ", ")
		return field + " " + string(c.Operator) + " (" + placeholders + ")", c.Values, nil

	case OpBetween:
		if !c.Value.IsValid() || !c.Upper.IsValid() {
			return "", nil, &MalformedConditionError{Field: c.Field, Reason: "BETWEEN requires both a lower and an upper bound"}
		}
		return field + " BETWEEN ? AND ?", []Value{c.Value, c.Upper}, nil

	case OpEq, OpNe, OpGt, OpLt, OpGe, OpLe, OpLike, OpNotLike:
		if !c.Value.IsValid() {
			return "", nil, &MalformedConditionError{Field: c.Field, Reason: string(c.Operator) + " requires a value"}
		}
		return field + " " + string(c.Operator) + " ?", []Value{c.Value}, nil

	default:
		return "", nil, &InvalidOperatorError{Op: string(c.Operator)}
	}
}
