// Package jsonval is a JSON-shaped value tree that plugs into valueptr.
//
//	v := jsonval.MustParse(`{"usr":{"lib":["a","b",{"name":"c"}]}}`)
//	name := valueptr.Path(v).Get("usr/lib/2/name").AsStr("")      // "c"
//	valueptr.PathMut(v).Get("usr").Get("lib").PushItem(valueptr.String("d"))
//
// Nodes are *Value; writes through a mutable pointer change the node in
// place, including its shape.
package jsonval

import (
	"fmt"
	"sort"

	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

// Kind is the JSON shape held by a Value.
type Kind uint8

const (
	Null Kind = iota
	Bool
	Int
	Float
	String
	Array
	Object
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Int:
		return "int"
	case Float:
		return "float"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is one node of a JSON tree. The zero Value is null.
// Numbers keep the integer/float distinction of their source text.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	arr  []*Value
	obj  map[string]*Value
}

// Compile-time check that *Value plugs into mutable pointers.
var _ valueptr.MutableNode[*Value] = (*Value)(nil)

func NewNull() *Value { return &Value{} }
func NewBool(b bool) *Value { return &Value{kind: Bool, b: b} }
func NewInt(i int64) *Value { return &Value{kind: Int, i: i} }
func NewString(s string) *Value { return &Value{kind: String, s: s} }

// NewArray returns an array node holding items; nil items become null.
func NewArray(items ...*Value) *Value {
	arr := make([]*Value, 0, len(items))
	for _, it := range items {
		arr = append(arr, orNull(it))
	}
	return &Value{kind: Array, arr: arr}
}

// NewFloat returns a float node. JSON cannot carry NaN or infinities, so
// non-finite values become null.
func NewFloat(f float64) *Value {
	if !finite(f) {
		return &Value{}
	}
	return &Value{kind: Float, f: f}
}

// NewObject returns an object node holding the given members.
func NewObject(members map[string]*Value) *Value {
	obj := make(map[string]*Value, len(members))
	for k, m := range members {
		obj[k] = orNull(m)
	}
	return &Value{kind: Object, obj: obj}
}

// FromScalar builds a leaf node from a scalar.
func FromScalar(s valueptr.Scalar) *Value {
	v := &Value{}
	v.set(s)
	return v
}

func orNull(v *Value) *Value {
	if v == nil {
		return &Value{}
	}
	return v
}

// Kind reports the shape of v.
func (v *Value) Kind() Kind { return v.kind }

// IsNull reports whether v holds null.
func (v *Value) IsNull() bool { return v.kind == Null }

// Len returns the number of elements of an array or members of an object.
func (v *Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// Keys returns the member names of an object in sorted order.
func (v *Value) Keys() []string {
	if v.kind != Object {
		return nil
	}
	keys := make([]string, 0, len(v.obj))
	for k := range v.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// String renders v as compact JSON.
func (v *Value) String() string {
	data, err := v.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("<%v>", err)
	}
	return string(data)
}
