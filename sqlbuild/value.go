package sqlbuild

import (
	"fmt"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	// KindInvalid is the zero Kind. A zero Value is not a valid parameter;
	// builders reject it instead of guessing a default.
	KindInvalid Kind = iota
	KindNull
	KindBool
	KindInt
	KindFloat
	KindString
	KindBytes
)

// String returns the kind name for diagnostics.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindBytes:
		return "bytes"
	default:
		return "invalid"
	}
}

// Value is a tagged scalar carried through a Statement's parameter list.
// It holds exactly one of: null, bool, int64, float64, string, or []byte.
// The zero Value is invalid; construct values with Null, Bool, Int, Float,
// String, Bytes, or Bind.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	raw  []byte
}

// Null returns the SQL NULL parameter value.
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean parameter value.
func Bool(v bool) Value { return Value{kind: KindBool, b: v} }

// Int returns an integer parameter value.
func Int(v int64) Value { return Value{kind: KindInt, i: v} }

// Float returns a floating-point parameter value.
func Float(v float64) Value { return Value{kind: KindFloat, f: v} }

// String returns a text parameter value.
func String(v string) Value { return Value{kind: KindString, s: v} }

// Bytes returns a blob parameter value. The slice is not copied.
func Bytes(v []byte) Value { return Value{kind: KindBytes, raw: v} }

// Time returns a text parameter value in RFC 3339 form, the storage
// convention for DATETIME columns.
func Time(t time.Time) Value { return String(t.Format(time.RFC3339)) }

// UnsupportedTypeError reports a Go value that cannot be bound as a
// statement parameter.
type UnsupportedTypeError struct {
	GoType string
}

func (e *UnsupportedTypeError) Error() string {
	return "cannot bind " + e.GoType + " as a statement parameter"
}

// Bind converts a Go scalar into a parameter Value. Supported inputs are
// nil, bool, all integer and float types, string, []byte, time.Time, and
// Value itself. Anything else fails with UnsupportedTypeError; callers
// with richer types must convert explicitly.
func Bind(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Null(), nil
	case Value:
		if x.kind == KindInvalid {
			return Value{}, &UnsupportedTypeError{GoType: "invalid sqlbuild.Value"}
		}
		return x, nil
	case bool:
		return Bool(x), nil
	case int:
		return Int(int64(x)), nil
	case int8:
		return Int(int64(x)), nil
	case int16:
		return Int(int64(x)), nil
	case int32:
		return Int(int64(x)), nil
	case int64:
		return Int(x), nil
	case uint:
		return bindUint(uint64(x))
	case uint8:
		return Int(int64(x)), nil
	case uint16:
		return Int(int64(x)), nil
	case uint32:
		return Int(int64(x)), nil
	case uint64:
		return bindUint(x)
	case float32:
		return Float(float64(x)), nil
	case float64:
		return Float(x), nil
	case string:
		return String(x), nil
	case []byte:
		return Bytes(x), nil
	case time.Time:
		return Time(x), nil
	default:
		return Value{}, &UnsupportedTypeError{GoType: fmt.Sprintf("%T", v)}
	}
}

func bindUint(v uint64) (Value, error) {
	if v > 1<<63-1 {
		return Value{}, &UnsupportedTypeError{GoType: "uint64 above int64 range"}
	}
	return Int(int64(v)), nil
}

// BindAll converts a list of Go scalars with Bind. It fails on the first
// unsupported value.
func BindAll(vs ...any) ([]Value, error) {
	out := make([]Value, 0, len(vs))
	for _, v := range vs {
		bound, err := Bind(v)
		if err != nil {
			return nil, err
		}
		out = append(out, bound)
	}
	return out, nil
}

// Kind returns the variant tag.
func (v Value) Kind() Kind { return v.kind }

// IsValid reports whether the value was built by a constructor.
func (v Value) IsValid() bool { return v.kind != KindInvalid }

// Any returns the held scalar as an untyped value: nil, bool, int64,
// float64, string, or []byte.
func (v Value) Any() any {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindString:
		return v.s
	case KindBytes:
		return v.raw
	default:
		return nil
	}
}

// MarshalJSON renders the value for the wire: null, boolean, number, or
// string. Blobs are encoded as base64 strings. Invalid values fail rather
// than serializing as null.
func (v Value) MarshalJSON() ([]byte, error) {
	if v.kind == KindInvalid {
		return nil, &UnsupportedTypeError{GoType: "invalid sqlbuild.Value"}
	}
	return json.Marshal(v.Any())
}

// String returns a debug representation. It is not SQL and must never be
// interpolated into statement text.
func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "NULL"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.s)
	case KindBytes:
		return fmt.Sprintf("bytes(%d)", len(v.raw))
	default:
		return "invalid"
	}
}
