// Package tomlval is a TOML-shaped value tree that plugs into valueptr.
//
// TOML has no null: writing valueptr.Null() to a node leaves it unchanged.
// Datetimes are kept as decoded by go-toml and read as strings.
package tomlval

import (
	"fmt"
	"sort"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

// Kind is the TOML shape held by a Value.
type Kind uint8

const (
	String Kind = iota
	Integer
	Float
	Boolean
	Datetime
	Array
	Table
)

func (k Kind) String() string {
	switch k {
	case String:
		return "string"
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Datetime:
		return "datetime"
	case Array:
		return "array"
	case Table:
		return "table"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Value is one node of a TOML tree. The zero Value is the empty string.
type Value struct {
	kind Kind
	s    string
	i    int64
	f    float64
	b    bool
	dt   any // time.Time, toml.LocalDate, toml.LocalTime or toml.LocalDateTime
	arr  []*Value
	tbl  map[string]*Value
}

var _ valueptr.MutableNode[*Value] = (*Value)(nil)

// NewTable returns an empty table, the usual root of a TOML document.
func NewTable() *Value {
	return &Value{kind: Table, tbl: make(map[string]*Value)}
}

// NewArray returns an empty array.
func NewArray() *Value {
	return &Value{kind: Array, arr: make([]*Value, 0)}
}

// FromScalar builds a leaf node from a scalar. Null has no TOML form and
// yields the empty string.
func FromScalar(s valueptr.Scalar) *Value {
	v := &Value{}
	v.set(s)
	return v
}

// Kind reports the shape of v.
func (v *Value) Kind() Kind { return v.kind }

// Len returns the number of elements of an array or entries of a table.
func (v *Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Table:
		return len(v.tbl)
	default:
		return 0
	}
}

// Keys returns the keys of a table in sorted order.
func (v *Value) Keys() []string {
	if v.kind != Table {
		return nil
	}
	keys := make([]string, 0, len(v.tbl))
	for k := range v.tbl {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Parse decodes a TOML document into a table.
func Parse(data []byte) (*Value, error) {
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("invalid TOML: %w", err)
	}
	return FromAny(doc)
}

// MustParse is like Parse but panics on invalid input.
func MustParse(text string) *Value {
	v, err := Parse([]byte(text))
	if err != nil {
		panic(fmt.Sprintf("tomlval: MustParse: %v", err))
	}
	return v
}

// FromAny converts go-toml decoded data (or equivalent plain Go values) into
// a Value tree. nil has no TOML representation and is rejected.
func FromAny(data any) (*Value, error) {
	switch t := data.(type) {
	case nil:
		return nil, fmt.Errorf("null has no TOML representation")
	case *Value:
		return t, nil
	case string:
		return &Value{kind: String, s: t}, nil
	case bool:
		return &Value{kind: Boolean, b: t}, nil
	case int64:
		return &Value{kind: Integer, i: t}, nil
	case int:
		return &Value{kind: Integer, i: int64(t)}, nil
	case int32:
		return &Value{kind: Integer, i: int64(t)}, nil
	case uint32:
		return &Value{kind: Integer, i: int64(t)}, nil
	case uint64:
		if t > 1<<63-1 {
			return nil, fmt.Errorf("integer %d overflows TOML integer", t)
		}
		return &Value{kind: Integer, i: int64(t)}, nil
	case float64:
		return &Value{kind: Float, f: t}, nil
	case float32:
		return &Value{kind: Float, f: float64(t)}, nil
	case time.Time, toml.LocalDate, toml.LocalTime, toml.LocalDateTime:
		return &Value{kind: Datetime, dt: t}, nil
	case []any:
		arr := make([]*Value, 0, len(t))
		for i, item := range t {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			arr = append(arr, child)
		}
		return &Value{kind: Array, arr: arr}, nil
	case map[string]any:
		tbl := make(map[string]*Value, len(t))
		for k, item := range t {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			tbl[k] = child
		}
		return &Value{kind: Table, tbl: tbl}, nil
	default:
		return nil, fmt.Errorf("unsupported type %T", data)
	}
}

// ToAny converts v into the plain Go values go-toml encodes.
func (v *Value) ToAny() any {
	switch v.kind {
	case String:
		return v.s
	case Integer:
		return v.i
	case Float:
		return v.f
	case Boolean:
		return v.b
	case Datetime:
		return v.dt
	case Array:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.ToAny()
		}
		return out
	case Table:
		out := make(map[string]any, len(v.tbl))
		for k, m := range v.tbl {
			out[k] = m.ToAny()
		}
		return out
	default:
		return nil
	}
}

// Marshal encodes a table as a TOML document.
func (v *Value) Marshal() ([]byte, error) {
	if v.kind != Table {
		return nil, fmt.Errorf("only a table can be encoded as a TOML document, got %s", v.kind)
	}
	return toml.Marshal(v.ToAny())
}

// String renders v the way AsString("") does.
func (v *Value) String() string {
	return v.render()
}
