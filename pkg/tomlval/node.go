package tomlval

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

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
	if v.kind != Table {
		return nil, false
	}
	child, ok := v.tbl[k]
	return child, ok
}

func (v *Value) GetIndexMut(i int) (*Value, bool) { return v.GetIndex(i) }

func (v *Value) GetKeyMut(k string) (*Value, bool) { return v.GetKey(k) }

func (v *Value) AsStr(def string) string {
	if v == nil {
		return def
	}
	if v.kind == String {
		return v.s
	}
	return def
}

// AsString stringifies v subject to the selector in def. Arrays render as
// inline TOML, tables as a TOML document.
func (v *Value) AsString(def string) string {
	if v == nil {
		return def
	}
	switch {
	case v.kind == String:
		return v.s
	case v.kind == Integer && def == "0":
		return strconv.FormatInt(v.i, 10)
	case v.kind == Float && def == "0.0":
		return formatFloat(v.f)
	case v.kind == Boolean && def == "bool":
		return strconv.FormatBool(v.b)
	case v.kind == Array && def == "[]":
		return v.render()
	case v.kind == Table && def == "{}":
		return v.render()
	case def == "":
		return v.render()
	default:
		return def
	}
}

func (v *Value) AsInt(def int64) int64 {
	if v == nil {
		return def
	}
	switch v.kind {
	case Integer:
		return v.i
	case String:
		if i, err := strconv.ParseInt(v.s, 10, 64); err == nil {
			return i
		}
		return def
	case Boolean:
		if v.b {
			return 1
		}
		return 0
	default:
		return def
	}
}

func (v *Value) AsFloat(def float64) float64 {
	if v == nil {
		return def
	}
	switch v.kind {
	case Float:
		return v.f
	case Integer:
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

func (v *Value) AsBool(def bool) bool {
	if v == nil {
		return def
	}
	switch v.kind {
	case Boolean:
		return v.b
	case Integer:
		return v.i != 0
	case String:
		switch v.s {
		case "true":
			return true
		case "false":
			return false
		}
		return def
	default:
		return def
	}
}

// PutScalar replaces v with a leaf holding s. Null is ignored.
func (v *Value) PutScalar(s valueptr.Scalar) {
	if v == nil {
		return
	}
	if s.IsNull() {
		return
	}
	v.set(s)
}

// PushEntry inserts key: s, turning v into an empty table first if needed.
// A null s inserts nothing but still converts v.
func (v *Value) PushEntry(key string, s valueptr.Scalar) {
	if v == nil {
		return
	}
	if v.kind != Table {
		*v = Value{kind: Table, tbl: make(map[string]*Value)}
	}
	if s.IsNull() {
		return
	}
	v.tbl[key] = FromScalar(s)
}

// PushItem appends s, turning v into an empty array first if needed.
// A null s appends nothing but still converts v.
func (v *Value) PushItem(s valueptr.Scalar) {
	if v == nil {
		return
	}
	if v.kind != Array {
		*v = Value{kind: Array, arr: make([]*Value, 0, 1)}
	}
	if s.IsNull() {
		return
	}
	v.arr = append(v.arr, FromScalar(s))
}

func (v *Value) set(s valueptr.Scalar) {
	switch s.Kind() {
	case valueptr.KindInt:
		i, _ := s.Int()
		*v = Value{kind: Integer, i: i}
	case valueptr.KindFloat:
		f, _ := s.Float()
		*v = Value{kind: Float, f: f}
	case valueptr.KindBool:
		b, _ := s.Bool()
		*v = Value{kind: Boolean, b: b}
	default:
		str, _ := s.Str()
		*v = Value{kind: String, s: str}
	}
}

func (v *Value) render() string {
	if v.kind == Table {
		data, err := v.Marshal()
		if err != nil {
			return fmt.Sprintf("<%v>", err)
		}
		return strings.TrimRight(string(data), "\n")
	}
	var buf bytes.Buffer
	v.inline(&buf)
	return buf.String()
}

// inline writes v in TOML inline syntax.
func (v *Value) inline(buf *bytes.Buffer) {
	switch v.kind {
	case String:
		buf.WriteString(quote(v.s))
	case Integer:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case Float:
		buf.WriteString(formatFloat(v.f))
	case Boolean:
		buf.WriteString(strconv.FormatBool(v.b))
	case Datetime:
		buf.WriteString(datetimeText(v.dt))
	case Array:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteString(", ")
			}
			item.inline(buf)
		}
		buf.WriteByte(']')
	case Table:
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			buf.WriteByte(' ')
			buf.WriteString(key(k))
			buf.WriteString(" = ")
			v.tbl[k].inline(buf)
		}
		if len(v.tbl) > 0 {
			buf.WriteByte(' ')
		}
		buf.WriteByte('}')
	}
}

func datetimeText(dt any) string {
	if t, ok := dt.(time.Time); ok {
		return t.Format(time.RFC3339Nano)
	}
	return fmt.Sprint(dt)
}

var bareKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func key(k string) string {
	if bareKey.MatchString(k) {
		return k
	}
	return quote(k)
}

// quote renders a TOML basic string. JSON string escapes are a subset of
// the TOML ones.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return strconv.Quote(s)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-5 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}
