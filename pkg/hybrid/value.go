// Package hybrid is a minimal value tree whose containers act as a sequence
// and a mapping at the same time, like a Lua table. Leaves are cells holding
// either an integer or a piece of text.
package hybrid

import (
	"sort"

	"github.com/oakwood-commons/kvptr/pkg/valueptr"
)

// Value is either a cell or a table. The zero Value is the number cell 0.
type Value struct {
	table bool
	text  bool
	num   int64
	str   string
	seq   []*Value
	kv    map[string]*Value
}

var _ valueptr.MutableNode[*Value] = (*Value)(nil)

// Number returns an integer cell.
func Number(i int64) *Value { return &Value{num: i} }

// Text returns a text cell.
func Text(s string) *Value { return &Value{text: true, str: s} }

// NewTable returns an empty table.
func NewTable() *Value {
	return &Value{table: true, kv: make(map[string]*Value)}
}

// IsTable reports whether v is a table.
func (v *Value) IsTable() bool { return v.table }

// Append adds items to the sequence part of a table and returns v.
func (v *Value) Append(items ...*Value) *Value {
	v.ensureTable()
	v.seq = append(v.seq, items...)
	return v
}

// Set stores item under k in the mapping part of a table and returns v.
func (v *Value) Set(k string, item *Value) *Value {
	v.ensureTable()
	v.kv[k] = item
	return v
}

// SeqLen returns the length of the sequence part.
func (v *Value) SeqLen() int { return len(v.seq) }

// Keys returns the mapping keys in sorted order.
func (v *Value) Keys() []string {
	keys := make([]string, 0, len(v.kv))
	for k := range v.kv {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (v *Value) ensureTable() {
	if !v.table {
		*v = Value{table: true, kv: make(map[string]*Value)}
	}
}

func (v *Value) GetIndex(i int) (*Value, bool) {
	if v == nil {
		return nil, false
	}
	if !v.table || i < 0 || i >= len(v.seq) {
		return nil, false
	}
	return v.seq[i], true
}

func (v *Value) GetKey(k string) (*Value, bool) {
	if v == nil {
		return nil, false
	}
	if !v.table {
		return nil, false
	}
	child, ok := v.kv[k]
	return child, ok
}

func (v *Value) GetIndexMut(i int) (*Value, bool) { return v.GetIndex(i) }

func (v *Value) GetKeyMut(k string) (*Value, bool) { return v.GetKey(k) }

func (v *Value) isText() bool { return !v.table && v.text }
func (v *Value) isNumber() bool { return !v.table && !v.text }

func (v *Value) AsStr(def string) string {
	if v == nil {
		return def
	}
	if v.isText() {
		return v.str
	}
	return def
}

// AsString returns the text of a text cell. Cells do not stringify, so any
// other node yields def.
func (v *Value) AsString(def string) string { return v.AsStr(def) }

func (v *Value) AsInt(def int64) int64 {
	if v == nil {
		return def
	}
	if v.isNumber() {
		return v.num
	}
	return def
}

func (v *Value) AsFloat(def float64) float64 {
	if v == nil {
		return def
	}
	if v.isNumber() {
		return float64(v.num)
	}
	return def
}

func (v *Value) AsBool(def bool) bool {
	if v == nil {
		return def
	}
	if v.isNumber() {
		return v.num != 0
	}
	return def
}

// PutScalar turns v into a cell. Only integers and strings have a cell form;
// other scalars leave v unchanged.
func (v *Value) PutScalar(s valueptr.Scalar) {
	if v == nil {
		return
	}
	if c, ok := cell(s); ok {
		*v = *c
	}
}

// PushEntry turns v into a table if needed, then stores the cell for s under
// key. Scalars without a cell form are dropped after the conversion.
func (v *Value) PushEntry(key string, s valueptr.Scalar) {
	if v == nil {
		return
	}
	v.ensureTable()
	if c, ok := cell(s); ok {
		v.kv[key] = c
	}
}

// PushItem turns v into a table if needed, then appends the cell for s.
func (v *Value) PushItem(s valueptr.Scalar) {
	if v == nil {
		return
	}
	v.ensureTable()
	if c, ok := cell(s); ok {
		v.seq = append(v.seq, c)
	}
}

func cell(s valueptr.Scalar) (*Value, bool) {
	if i, ok := s.Int(); ok {
		return Number(i), true
	}
	if str, ok := s.Str(); ok {
		return Text(str), true
	}
	return nil, false
}
