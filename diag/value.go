package diag

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ValueKind identifies the variant held by a Value.
type ValueKind uint8

const (
	KindNull ValueKind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

// String returns the lowercase kind name.
func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the opaque structured payload attached to a mark. The timeline
// stores it and hands it back verbatim; it never inspects or interprets the
// contents. The zero Value is null.
type Value struct {
	kind ValueKind
	b    bool
	num  float64
	str  string
	arr  []Value
	obj  map[string]Value
}

// NullValue returns the null Value.
func NullValue() Value { return Value{} }

// BoolValue returns a Value holding b.
func BoolValue(b bool) Value { return Value{kind: KindBool, b: b} }

// NumberValue returns a Value holding n.
func NumberValue(n float64) Value { return Value{kind: KindNumber, num: n} }

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: KindString, str: s} }

// ArrayValue returns a Value holding a copy of elems.
func ArrayValue(elems ...Value) Value {
	cp := make([]Value, len(elems))
	copy(cp, elems)
	return Value{kind: KindArray, arr: cp}
}

// ObjectValue returns a Value holding a copy of fields.
func ObjectValue(fields map[string]Value) Value {
	cp := make(map[string]Value, len(fields))
	for k, v := range fields {
		cp[k] = v
	}
	return Value{kind: KindObject, obj: cp}
}

// Kind reports which variant the Value holds.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether the Value is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// Bool returns the boolean payload, or false for any other kind.
func (v Value) Bool() bool { return v.b }

// Number returns the numeric payload, or 0 for any other kind.
func (v Value) Number() float64 { return v.num }

// String returns the string payload for KindString. For other kinds it
// returns a formatted representation, so Value satisfies fmt.Stringer.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindNumber:
		return strconv.FormatFloat(v.num, 'g', -1, 64)
	case KindNull:
		return "null"
	default:
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("<%s>", v.kind)
		}
		return string(data)
	}
}

// Array returns a copy of the array payload, or nil for other kinds.
func (v Value) Array() []Value {
	if v.kind != KindArray {
		return nil
	}
	cp := make([]Value, len(v.arr))
	copy(cp, v.arr)
	return cp
}

// Object returns a copy of the object payload, or nil for other kinds.
func (v Value) Object() map[string]Value {
	if v.kind != KindObject {
		return nil
	}
	cp := make(map[string]Value, len(v.obj))
	for k, val := range v.obj {
		cp[k] = val
	}
	return cp
}

// Equal reports whether two Values hold the same variant and payload.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == other.b
	case KindNumber:
		return v.num == other.num
	case KindString:
		return v.str == other.str
	case KindArray:
		if len(v.arr) != len(other.arr) {
			return false
		}
		for i := range v.arr {
			if !v.arr[i].Equal(other.arr[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(other.obj) {
			return false
		}
		for k, val := range v.obj {
			o, ok := other.obj[k]
			if !ok || !val.Equal(o) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// MarshalJSON encodes the Value as the JSON document it mirrors.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindNull:
		return []byte("null"), nil
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return json.Marshal(v.num)
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		return json.Marshal(v.arr)
	case KindObject:
		return json.Marshal(v.obj)
	default:
		return nil, fmt.Errorf("diag: cannot marshal value kind %d", v.kind)
	}
}

// UnmarshalJSON decodes any JSON document into the matching variant.
func (v *Value) UnmarshalJSON(data []byte) error {
	var raw interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	val, err := fromDecoded(raw)
	if err != nil {
		return err
	}
	*v = val
	return nil
}

func fromDecoded(raw interface{}) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return NullValue(), nil
	case bool:
		return BoolValue(t), nil
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return Value{}, err
		}
		return NumberValue(n), nil
	case string:
		return StringValue(t), nil
	case []interface{}:
		elems := make([]Value, 0, len(t))
		for _, e := range t {
			val, err := fromDecoded(e)
			if err != nil {
				return Value{}, err
			}
			elems = append(elems, val)
		}
		return Value{kind: KindArray, arr: elems}, nil
	case map[string]interface{}:
		fields := make(map[string]Value, len(t))
		for k, e := range t {
			val, err := fromDecoded(e)
			if err != nil {
				return Value{}, err
			}
			fields[k] = val
		}
		return Value{kind: KindObject, obj: fields}, nil
	default:
		return Value{}, fmt.Errorf("diag: unsupported JSON value %T", raw)
	}
}
