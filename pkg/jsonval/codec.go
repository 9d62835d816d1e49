package jsonval

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Parse decodes a single JSON document.
func Parse(data []byte) (*Value, error) {
	v := &Value{}
	if err := v.UnmarshalJSON(data); err != nil {
		return nil, err
	}
	return v, nil
}

// MustParse is like Parse but panics on invalid input. It is meant for
// literals in tests and examples.
func MustParse(text string) *Value {
	v, err := Parse([]byte(text))
	if err != nil {
		panic(fmt.Sprintf("jsonval: MustParse(%q): %v", text, err))
	}
	return v
}

// UnmarshalJSON decodes data into v, keeping integers and floats apart.
func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("invalid JSON: trailing data after document")
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// MarshalJSON renders v as compact JSON with object keys sorted.
func (v *Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v *Value) encode(buf *bytes.Buffer) error {
	if v == nil {
		buf.WriteString("null")
		return nil
	}
	switch v.kind {
	case Null:
		buf.WriteString("null")
	case Bool:
		buf.WriteString(strconv.FormatBool(v.b))
	case Int:
		buf.WriteString(strconv.FormatInt(v.i, 10))
	case Float:
		if !finite(v.f) {
			buf.WriteString("null")
			return nil
		}
		buf.WriteString(formatFloat(v.f))
	case String:
		return writeString(buf, v.s)
	case Array:
		buf.WriteByte('[')
		for i, item := range v.arr {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	case Object:
		buf.WriteByte('{')
		for i, k := range v.Keys() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeString(buf, k); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := v.obj[k].encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	default:
		return fmt.Errorf("jsonval: unknown kind %v", v.kind)
	}
	return nil
}

func writeString(buf *bytes.Buffer, s string) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	// Encode terminates with a newline
	buf.Truncate(buf.Len() - 1)
	return nil
}

// MarshalYAML lets yaml.v3 encode a Value as plain YAML.
func (v *Value) MarshalYAML() (any, error) {
	return v.ToAny(), nil
}

// UnmarshalYAML decodes a YAML node into v.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	var raw any
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := FromAny(raw)
	if err != nil {
		return err
	}
	*v = *parsed
	return nil
}

// ToAny converts v into plain Go values: nil, bool, int64, float64, string,
// []any and map[string]any.
func (v *Value) ToAny() any {
	if v == nil {
		return nil
	}
	switch v.kind {
	case Bool:
		return v.b
	case Int:
		return v.i
	case Float:
		return v.f
	case String:
		return v.s
	case Array:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.ToAny()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for k, m := range v.obj {
			out[k] = m.ToAny()
		}
		return out
	default:
		return nil
	}
}

// FromAny converts decoded Go data (from encoding/json, yaml.v3, go-toml or
// hand-built maps and slices) into a Value tree. Typed maps and slices are
// walked by reflection; structs go through their JSON encoding.
func FromAny(data any) (*Value, error) {
	switch t := data.(type) {
	case nil:
		return &Value{}, nil
	case *Value:
		return t, nil
	case bool:
		return NewBool(t), nil
	case string:
		return NewString(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return NewInt(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("invalid number %q: %w", t.String(), err)
		}
		return NewFloat(f), nil
	case int:
		return NewInt(int64(t)), nil
	case int8:
		return NewInt(int64(t)), nil
	case int16:
		return NewInt(int64(t)), nil
	case int32:
		return NewInt(int64(t)), nil
	case int64:
		return NewInt(t), nil
	case uint8:
		return NewInt(int64(t)), nil
	case uint16:
		return NewInt(int64(t)), nil
	case uint32:
		return NewInt(int64(t)), nil
	case uint:
		return fromUint(uint64(t)), nil
	case uint64:
		return fromUint(t), nil
	case float32:
		return NewFloat(float64(t)), nil
	case float64:
		return NewFloat(t), nil
	case time.Time:
		return NewString(t.Format(time.RFC3339Nano)), nil
	case []byte:
		return NewString(string(t)), nil
	case fmt.Stringer:
		if reflect.ValueOf(t).Kind() != reflect.Struct {
			return NewString(t.String()), nil
		}
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
		obj := make(map[string]*Value, len(t))
		for k, item := range t {
			child, err := FromAny(item)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", k, err)
			}
			obj[k] = child
		}
		return &Value{kind: Object, obj: obj}, nil
	}
	return fromReflect(data)
}

func fromUint(u uint64) *Value {
	if u > math.MaxInt64 {
		return NewFloat(float64(u))
	}
	return NewInt(int64(u))
}

func fromReflect(data any) (*Value, error) {
	rv := reflect.ValueOf(data)
	for rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return &Value{}, nil
		}
		rv = rv.Elem()
	}

	switch rv.Kind() { //nolint:exhaustive // scalars are handled by FromAny
	case reflect.Map:
		obj := make(map[string]*Value, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			key := fmt.Sprint(iter.Key().Interface())
			child, err := FromAny(iter.Value().Interface())
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", key, err)
			}
			obj[key] = child
		}
		return &Value{kind: Object, obj: obj}, nil
	case reflect.Slice, reflect.Array:
		arr := make([]*Value, 0, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			child, err := FromAny(rv.Index(i).Interface())
			if err != nil {
				return nil, fmt.Errorf("element [%d]: %w", i, err)
			}
			arr = append(arr, child)
		}
		return &Value{kind: Array, arr: arr}, nil
	case reflect.Struct:
		encoded, err := json.Marshal(rv.Interface())
		if err != nil {
			return nil, fmt.Errorf("cannot marshal %T to JSON: %w", data, err)
		}
		return Parse(encoded)
	case reflect.String:
		return NewString(rv.String()), nil
	case reflect.Bool:
		return NewBool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return fromUint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return NewFloat(rv.Float()), nil
	default:
		return nil, fmt.Errorf("unsupported type %T", data)
	}
}

// formatFloat renders the shortest representation that reads back as the
// same float, always with a '.' or an exponent so that it stays a float.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	var s string
	if abs != 0 && (abs < 1e-5 || abs >= 1e16) {
		s = strconv.FormatFloat(f, 'e', -1, 64)
	} else {
		s = strconv.FormatFloat(f, 'f', -1, 64)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
