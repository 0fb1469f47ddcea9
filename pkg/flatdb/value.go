package flatdb

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the type tag of a [Value].
type Kind uint8

// Value kinds. KindNull is the zero value, so an uninitialized Value is
// null.
const (
	KindNull Kind = iota
	KindInt
	KindFloat
	KindBool
	KindString
)

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	case KindString:
		return "string"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// kindNamed maps a cast-rule type name to a Kind. Unknown names return
// (KindNull, false) and the caster passes the value through unchanged.
func kindNamed(name string) (Kind, bool) {
	switch strings.ToLower(name) {
	case "int", "integer":
		return KindInt, true
	case "float", "double":
		return KindFloat, true
	case "bool", "boolean":
		return KindBool, true
	case "string", "text":
		return KindString, true
	default:
		return KindNull, false
	}
}

// Value is a tagged field value: null, integer, float, boolean, or
// string. The zero Value is null.
type Value struct {
	kind Kind
	i    int64
	f    float64
	b    bool
	s    string
}

// Null returns the null Value.
func Null() Value {
	return Value{}
}

// Int returns an integer Value.
func Int(n int64) Value {
	return Value{kind: KindInt, i: n}
}

// Float returns a floating-point Value.
func Float(f float64) Value {
	return Value{kind: KindFloat, f: f}
}

// Bool returns a boolean Value.
func Bool(b bool) Value {
	return Value{kind: KindBool, b: b}
}

// String returns a string Value.
func String(s string) Value {
	return Value{kind: KindString, s: s}
}

// Kind returns the type tag.
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether the value is null.
func (v Value) IsNull() bool {
	return v.kind == KindNull
}

// IntVal returns the integer payload. Zero unless Kind is KindInt.
func (v Value) IntVal() int64 {
	return v.i
}

// FloatVal returns the float payload. Zero unless Kind is KindFloat.
func (v Value) FloatVal() float64 {
	return v.f
}

// BoolVal returns the boolean payload. False unless Kind is KindBool.
func (v Value) BoolVal() bool {
	return v.b
}

// StringVal returns the string payload. Empty unless Kind is KindString.
func (v Value) StringVal() string {
	return v.s
}

// Text returns the canonical string form of the value. This is the form
// written to the delimited file: null becomes the empty string, booleans
// become "true"/"false", numbers use their shortest decimal rendering.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindBool:
		if v.b {
			return "true"
		}

		return "false"
	default:
		return v.s
	}
}

// Any returns the value as a plain Go value (nil, int64, float64, bool,
// or string). Useful for printing and encoding.
func (v Value) Any() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindInt:
		return v.i
	case KindFloat:
		return v.f
	case KindBool:
		return v.b
	default:
		return v.s
	}
}

// truthyStrings is the conventional truthy set for boolean coercion.
// Everything else coerces to false.
var truthyStrings = map[string]bool{
	"1":    true,
	"true": true,
	"yes":  true,
	"on":   true,
}

func isTruthy(s string) bool {
	return truthyStrings[strings.ToLower(strings.TrimSpace(s))]
}

// Coerce converts v to the target kind. This is the single coercion
// function used by cast rules and by [LooseEqual]; no other implicit
// conversion exists in the package.
//
// Null passes through every target unchanged. Numeric targets parse the
// string form and fail with [ErrCastingFailure] on non-numeric text; an
// empty or blank string coerces to null rather than failing. The boolean
// target never fails: a value is true iff its string form is in the
// truthy set ("1", "true", "yes", "on", case-insensitive). The string
// target is identity stringification via [Value.Text].
func Coerce(v Value, target Kind) (Value, error) {
	if v.kind == KindNull || v.kind == target {
		return v, nil
	}

	switch target {
	case KindInt:
		switch v.kind {
		case KindFloat:
			return Int(int64(v.f)), nil
		case KindBool:
			if v.b {
				return Int(1), nil
			}

			return Int(0), nil
		default:
			s := strings.TrimSpace(v.s)
			if s == "" {
				return Null(), nil
			}

			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				return Int(n), nil
			}

			if f, err := strconv.ParseFloat(s, 64); err == nil {
				return Int(int64(f)), nil
			}

			return Value{}, fmt.Errorf("%w: %q as int", ErrCastingFailure, v.s)
		}

	case KindFloat:
		switch v.kind {
		case KindInt:
			return Float(float64(v.i)), nil
		case KindBool:
			if v.b {
				return Float(1), nil
			}

			return Float(0), nil
		default:
			s := strings.TrimSpace(v.s)
			if s == "" {
				return Null(), nil
			}

			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Value{}, fmt.Errorf("%w: %q as float", ErrCastingFailure, v.s)
			}

			return Float(f), nil
		}

	case KindBool:
		return Bool(isTruthy(v.Text())), nil

	case KindString:
		return String(v.Text()), nil

	default:
		// Unknown or null target: pass through unchanged.
		return v, nil
	}
}

// LooseEqual is the coercive comparison used by query predicates,
// condition maps, and primary-key lookup.
//
// Rules, in order: null equals only null; same-kind values compare
// directly; if either side is boolean, both sides compare by truthiness;
// if both sides parse as numbers, they compare numerically; otherwise
// both compare by their string forms, case-sensitively.
func LooseEqual(a, b Value) bool {
	if a.kind == KindNull || b.kind == KindNull {
		return a.kind == b.kind
	}

	if a.kind == b.kind {
		switch a.kind {
		case KindInt:
			return a.i == b.i
		case KindFloat:
			return a.f == b.f
		case KindBool:
			return a.b == b.b
		default:
			return a.s == b.s
		}
	}

	if a.kind == KindBool || b.kind == KindBool {
		return truthiness(a) == truthiness(b)
	}

	af, aok := a.numeric()

	bf, bok := b.numeric()
	if aok && bok {
		return af == bf
	}

	return a.Text() == b.Text()
}

func truthiness(v Value) bool {
	switch v.kind {
	case KindBool:
		return v.b
	case KindInt:
		return v.i != 0
	case KindFloat:
		return v.f != 0
	default:
		return isTruthy(v.Text())
	}
}

// numeric returns the value as a float64 if it is a number or numeric
// text.
func (v Value) numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)

		return f, err == nil
	default:
		return 0, false
	}
}

// valueOf converts a plain Go value to a [Value]. Unrecognized types
// fall back to their fmt string form.
func valueOf(v any) Value {
	switch t := v.(type) {
	case nil:
		return Null()
	case Value:
		return t
	case string:
		return String(t)
	case bool:
		return Bool(t)
	case int:
		return Int(int64(t))
	case int32:
		return Int(int64(t))
	case int64:
		return Int(t)
	case float32:
		return Float(float64(t))
	case float64:
		return Float(t)
	default:
		return String(fmt.Sprint(t))
	}
}
