// Package metadata models the free-form provider metadata carried by
// transactions and subscriptions.
//
// A Metadata is a mapping from string keys to Values. A Value is a tagged
// union over the JSON shapes: null, bool, number, string, array and object.
// Merging is shallow: top-level keys of the patch replace the receiver's keys,
// nested objects are never combined.
package metadata

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"maps"
	"strconv"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

type Value struct {
	kind Kind
	b    bool
	num  json.Number
	str  string
	arr  []Value
	obj  map[string]Value
}

func Null() Value { return Value{} }

func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

func String(s string) Value { return Value{kind: KindString, str: s} }

func Number(f float64) Value {
	return Value{kind: KindNumber, num: json.Number(strconv.FormatFloat(f, 'f', -1, 64))}
}

func Array(items ...Value) Value { return Value{kind: KindArray, arr: items} }

func Object(fields map[string]Value) Value { return Value{kind: KindObject, obj: fields} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) AsString() (string, bool) { return v.str, v.kind == KindString }

func (v Value) AsBool() (bool, bool) { return v.b, v.kind == KindBool }

func (v Value) AsNumber() (float64, bool) {
	if v.kind != KindNumber {
		return 0, false
	}

	f, err := v.num.Float64()

	return f, err == nil
}

func (v Value) AsArray() ([]Value, bool) { return v.arr, v.kind == KindArray }

func (v Value) AsObject() (map[string]Value, bool) { return v.obj, v.kind == KindObject }

func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindBool:
		return json.Marshal(v.b)
	case KindNumber:
		return []byte(v.num), nil
	case KindString:
		return json.Marshal(v.str)
	case KindArray:
		if v.arr == nil {
			return []byte("[]"), nil
		}

		return json.Marshal(v.arr)
	case KindObject:
		if v.obj == nil {
			return []byte("{}"), nil
		}

		return json.Marshal(v.obj)
	default:
		return []byte("null"), nil
	}
}

func (v *Value) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return fmt.Errorf("decoding metadata value: %w", err)
	}

	*v = fromAny(raw)

	return nil
}

func fromAny(raw any) Value {
	switch t := raw.(type) {
	case bool:
		return Bool(t)
	case json.Number:
		return Value{kind: KindNumber, num: t}
	case string:
		return String(t)
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			items[i] = fromAny(item)
		}

		return Array(items...)
	case map[string]any:
		fields := make(map[string]Value, len(t))
		for k, item := range t {
			fields[k] = fromAny(item)
		}

		return Object(fields)
	default:
		return Null()
	}
}

type Metadata map[string]Value

// Merge returns a new Metadata holding m's keys overlaid by patch's keys.
// Neither input is modified.
func (m Metadata) Merge(patch Metadata) Metadata {
	out := make(Metadata, len(m)+len(patch))
	maps.Copy(out, m)
	maps.Copy(out, patch)

	return out
}

// Value implements driver.Valuer so Metadata can be written to a JSONB column.
func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return []byte("{}"), nil
	}

	b, err := json.Marshal(map[string]Value(m))
	if err != nil {
		return nil, fmt.Errorf("encoding metadata: %w", err)
	}

	return b, nil
}

// Scan implements sql.Scanner for JSONB columns.
func (m *Metadata) Scan(src any) error {
	var data []byte

	switch t := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		data = t
	case string:
		data = []byte(t)
	default:
		return fmt.Errorf("scanning metadata: unsupported type %T", src)
	}

	out := Metadata{}
	if err := json.Unmarshal(data, &out); err != nil {
		return fmt.Errorf("scanning metadata: %w", err)
	}

	*m = out

	return nil
}
