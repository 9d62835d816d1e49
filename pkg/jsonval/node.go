package jsonval

import (
	"strconv"

	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

func (v *Value) GetIndex(i int) (*Value, bool) {
	if v == nil {
		return nil, false
	}
	if v.kind != Array || i < 0 || i >= len(v.arr) {
		return nil, false
	}
	return v.arr[i], true
}

func (v *Value) GetKey(k string) (*Value, bool) {
	if v == nil {
		return nil, false
	}
	if v.kind != Object {
		return nil, false
	}
	child, ok := v.obj[k]
	return child, ok
}

func (v *Value) GetIndexMut(i int) (*Value, bool) { return v.GetIndex(i) }

func (v *Value) GetKeyMut(k string) (*Value, bool) { return v.GetKey(k) }

// AsStr returns the content of a string node, or def.
func (v *Value) AsStr(def string) string {
	if v == nil {
		return def
	}
	if v.kind == String {
		return v.s
	}
	return def
}

// AsString stringifies v subject to the selector in def; see
// valueptr.Readable. Arrays and objects render as compact JSON.
func (v *Value) AsString(def string) string {
	if v == nil {
		return def
	}
	switch {
	case v.kind == String:
		return v.s
	case v.kind == Int && def == "0":
		return strconv.FormatInt(v.i, 10)
	case v.kind == Float && def == "0.0":
		return formatFloat(v.f)
	case v.kind == Bool && def == "bool":
		return strconv.FormatBool(v.b)
	case v.kind == Array && def == "[]":
		return v.String()
	case v.kind == Object && def == "{}":
		return v.String()
	case def == "":
		return v.String()
	default:
		return def
	}
}

// AsInt reads integers, integer-looking strings and booleans (1 or 0).
func (v *Value) AsInt(def int64) int64 {
	if v == nil {
		return def
	}
	switch v.kind {
	case Int:
		return v.i
	case String:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i
		}
		return def
	case Bool:
		if v.b {
			return 1
		}
		return 0
	default:
		return def
	}
}

// AsFloat reads floats, integers and float-looking strings.
func (v *Value) AsFloat(def float64) float64 {
	if v == nil {
		return def
	}
	switch v.kind {
	case Float:
		return v.f
	case Int:
		return float64(v.i)
	case String:
		if f, err := strconv.ParseFloat(v.s, 64); err == nil {
			return f
		}
		return def
	default:
		return def
	}
}

// AsBool reads booleans, integers (non-zero is true) and the strings
// "true" and "false".
func (v *Value) AsBool(def bool) bool {
	if v == nil {
		return def
	}
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i != 0
	case String:
		return parseBool(v.s, def)
	default:
		return def
	}
}

func parseBool(s string, def bool) bool {
	switch s {
	case "true":
		return true
	case "false":
		return false
	default:
		return def
	}
}

// PutScalar replaces v with a leaf holding s.
func (v *Value) PutScalar(s valueptr.Scalar) {
	if v == nil {
		return
	}
	v.set(s)
}

// PushEntry inserts key: s, turning v into an empty object first if it is
// not one.
func (v *Value) PushEntry(key string, s valueptr.Scalar) {
	if v == nil {
		return
	}
	if v.kind != Object {
		*v = Value{kind: Object, obj: make(map[string]*Value)}
	}
	v.obj[key] = FromScalar(s)
}

// PushItem appends s, turning v into an empty array first if it is not one.
func (v *Value) PushItem(s valueptr.Scalar) {
	if v == nil {
		return
	}
	if v.kind != Array {
		*v = Value{kind: Array, arr: make([]*Value, 0, 1)}
	}
	v.arr = append(v.arr, FromScalar(s))
}

func (v *Value) set(s valueptr.Scalar) {
	switch s.Kind() {
	case valueptr.KindString:
		str, _ := s.Str()
		*v = Value{kind: String, s: str}
	case valueptr.KindInt:
		i, _ := s.Int()
		*v = Value{kind: Int, i: i}
	case valueptr.KindFloat:
		f, _ := s.Float()
		if !finite(f) {
			*v = Value{}
			return
		}
		*v = Value{kind: Float, f: f}
	case valueptr.KindBool:
		b, _ := s.Bool()
		*v = Value{kind: Bool, b: b}
	default:
		*v = Value{}
	}
}
