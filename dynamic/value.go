// Package dynamic provides a tagged-union value type for loosely typed
// request bodies, query parameters and untyped response payloads. Each
// Value holds exactly one of the JSON shapes (null, bool, number, string,
// array, object), keeping the untyped call paths type-safe.
package dynamic

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Array
	Object
)

// Value is an immutable tagged-union JSON value.
type Value struct {
	kind Kind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  map[string]Value
}

// NewNull returns the null value.
func NewNull() Value {
	return Value{kind: Null}
}

// NewBool returns a boolean value.
func NewBool(b bool) Value {
	return Value{kind: Bool, b: b}
}

// NewNumber returns a numeric value.
func NewNumber(n float64) Value {
	return Value{kind: Number, num: n}
}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{kind: String, str: s}
}

// NewArray returns an array value.
func NewArray(items ...Value) Value {
	return Value{kind: Array, arr: items}
}

// NewObject returns an object value.
func NewObject(fields map[string]Value) Value {
	return Value{kind: Object, obj: fields}
}

// Kind returns the variant this value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// BoolValue returns the boolean variant, or false for other kinds.
func (v Value) BoolValue() bool {
	return v.b
}

// NumberValue returns the numeric variant, or 0 for other kinds.
func (v Value) NumberValue() float64 {
	return v.num
}

// StringValue returns the string variant, or "" for other kinds.
func (v Value) StringValue() string {
	return v.str
}

// ArrayValue returns the array variant, or nil for other kinds.
func (v Value) ArrayValue() []Value {
	return v.arr
}

// ObjectValue returns the object variant, or nil for other kinds.
func (v Value) ObjectValue() map[string]Value {
	return v.obj
}

// Get returns the named field of an object value, or the null value when the
// field is absent or the value is not an object.
func (v Value) Get(key string) Value {
	if v.kind != Object {
		return NewNull()
	}
	field, ok := v.obj[key]
	if !ok {
		return NewNull()
	}
	return field
}

// Text returns the value's default string form. Strings come back verbatim;
// other kinds use their compact JSON rendering.
func (v Value) Text() string {
	switch v.kind {
	case Null:
		return "null"
	case Bool:
		return strconv.FormatBool(v.b)
	case Number:
		return strconv.FormatFloat(v.num, 'f', -1, 64)
	case String:
		return v.str
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Interface converts the value into plain Go types for serialization.
func (v Value) Interface() any {
	switch v.kind {
	case Bool:
		return v.b
	case Number:
		return v.num
	case String:
		return v.str
	case Array:
		out := make([]any, len(v.arr))
		for i, item := range v.arr {
			out[i] = item.Interface()
		}
		return out
	case Object:
		out := make(map[string]any, len(v.obj))
		for k, field := range v.obj {
			out[k] = field.Interface()
		}
		return out
	default:
		return nil
	}
}

// Parse decodes JSON bytes into a Value.
func Parse(data []byte) (Value, error) {
	if !gjson.ValidBytes(data) {
		return Value{}, fmt.Errorf("invalid JSON")
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Value {
	switch {
	case r.Type == gjson.Null:
		return NewNull()
	case r.Type == gjson.True || r.Type == gjson.False:
		return NewBool(r.Bool())
	case r.Type == gjson.Number:
		return NewNumber(r.Num)
	case r.Type == gjson.String:
		return NewString(r.Str)
	case r.IsArray():
		var items []Value
		r.ForEach(func(_, item gjson.Result) bool {
			items = append(items, fromResult(item))
			return true
		})
		return NewArray(items...)
	case r.IsObject():
		fields := make(map[string]Value)
		r.ForEach(func(key, field gjson.Result) bool {
			fields[key.String()] = fromResult(field)
			return true
		})
		return NewObject(fields)
	default:
		return NewNull()
	}
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// UnmarshalJSON implements json.Unmarshaler.
func (v *Value) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(data)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
