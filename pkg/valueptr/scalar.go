package valueptr

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies the variant held by a Scalar.
type Kind uint8

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBool:
		return "bool"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Scalar is the closed set of values accepted by write operations:
// string, int64, float64, bool and null. The zero value is null.
type Scalar struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
}

func String(s string) Scalar { return Scalar{kind: KindString, s: s} }
func Int(i int64) Scalar { return Scalar{kind: KindInt, i: i} }
func Float(f float64) Scalar { return Scalar{kind: KindFloat, f: f} }
func Bool(b bool) Scalar { return Scalar{kind: KindBool, b: b} }
func Null() Scalar { return Scalar{} }

// Kind reports the variant held by s.
func (s Scalar) Kind() Kind { return s.kind }

// Str returns the string payload; ok is false for other kinds.
func (s Scalar) Str() (string, bool) { return s.s, s.kind == KindString }

// Int returns the integer payload; ok is false for other kinds.
func (s Scalar) Int() (int64, bool) { return s.i, s.kind == KindInt }

// Float returns the float payload; ok is false for other kinds.
func (s Scalar) Float() (float64, bool) { return s.f, s.kind == KindFloat }

// Bool returns the boolean payload; ok is false for other kinds.
func (s Scalar) Bool() (bool, bool) { return s.b, s.kind == KindBool }

// IsNull reports whether s is the null scalar.
func (s Scalar) IsNull() bool { return s.kind == KindNull }

// Interface returns the payload as a plain Go value (nil for null).
func (s Scalar) Interface() any {
	switch s.kind {
	case KindString:
		return s.s
	case KindInt:
		return s.i
	case KindFloat:
		return s.f
	case KindBool:
		return s.b
	default:
		return nil
	}
}

func (s Scalar) String() string {
	switch s.kind {
	case KindString:
		return strconv.Quote(s.s)
	case KindInt:
		return strconv.FormatInt(s.i, 10)
	case KindFloat:
		return strconv.FormatFloat(s.f, 'g', -1, 64)
	case KindBool:
		return strconv.FormatBool(s.b)
	default:
		return "null"
	}
}

// ScalarOf converts a plain Go value into a Scalar. Signed and unsigned
// integers that fit in int64 become KindInt, float32/float64 KindFloat.
// Any other type is rejected.
func ScalarOf(v any) (Scalar, bool) {
	switch t := v.(type) {
	case nil:
		return Null(), true
	case Scalar:
		return t, true
	case string:
		return String(t), true
	case bool:
		return Bool(t), true
	case int:
		return Int(int64(t)), true
	case int8:
		return Int(int64(t)), true
	case int16:
		return Int(int64(t)), true
	case int32:
		return Int(int64(t)), true
	case int64:
		return Int(t), true
	case uint8:
		return Int(int64(t)), true
	case uint16:
		return Int(int64(t)), true
	case uint32:
		return Int(int64(t)), true
	case uint:
		if uint64(t) > 1<<63-1 {
			return Scalar{}, false
		}
		return Int(int64(t)), true
	case uint64:
		if t > 1<<63-1 {
			return Scalar{}, false
		}
		return Int(int64(t)), true
	case float32:
		return Float(float64(t)), true
	case float64:
		return Float(t), true
	default:
		return Scalar{}, false
	}
}

// ParseScalar interprets text as a scalar of the named kind: "string",
// "int", "float", "bool", "null" or "auto". Auto tries null, bool, int and
// float in that order and otherwise keeps the text as a string.
func ParseScalar(text, kind string) (Scalar, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "", "auto":
		return parseAuto(text), nil
	case "string", "str":
		return String(text), nil
	case "int", "integer":
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return Scalar{}, fmt.Errorf("parse %q as int: %w", text, err)
		}
		return Int(i), nil
	case "float", "number":
		f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
		if err != nil {
			return Scalar{}, fmt.Errorf("parse %q as float: %w", text, err)
		}
		return Float(f), nil
	case "bool", "boolean":
		b, err := strconv.ParseBool(strings.TrimSpace(text))
		if err != nil {
			return Scalar{}, fmt.Errorf("parse %q as bool: %w", text, err)
		}
		return Bool(b), nil
	case "null", "nil", "unit":
		return Null(), nil
	default:
		return Scalar{}, fmt.Errorf("unknown scalar kind %q", kind)
	}
}

func parseAuto(text string) Scalar {
	switch text {
	case "null", "~":
		return Null()
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	if i, err := strconv.ParseInt(text, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(text, 64); err == nil {
		return Float(f)
	}
	return String(text)
}
