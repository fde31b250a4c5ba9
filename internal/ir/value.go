package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"slices"
	"strconv"
	"unicode/utf16"
)

// IRValue is a sealed interface representing the value types a trace record
// may carry. Only IRNull, IRString, IRInt, IRBool, IRArray and IRObject
// implement it.
type IRValue interface {
	irValue()
}

// IRNull represents a JSON null.
type IRNull struct{}

func (IRNull) irValue() {}

// MarshalJSON implements json.Marshaler for IRNull.
func (IRNull) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// IRString represents a string value.
type IRString string

func (IRString) irValue() {}

// IRInt represents an integer value. Floats are carried as IRString so that
// hashes never depend on float formatting.
type IRInt int64

func (IRInt) irValue() {}

// IRBool represents a boolean value.
type IRBool bool

func (IRBool) irValue() {}

// IRArray represents an ordered list of values.
type IRArray []IRValue

func (IRArray) irValue() {}

// IRObject represents a map of string keys to values.
// Use SortedKeys() for deterministic iteration.
type IRObject map[string]IRValue

func (IRObject) irValue() {}

// Markers used by Summarize for values that have no data representation.
const (
	FuncMarker    = "<func>"
	ChanMarker    = "<chan>"
	ElementMarker = "<element>"
)

// Summarize converts an arbitrary Go value into an IRValue.
//
// Functions, channels and unsupported kinds become marker strings so that a
// props map holding event handlers can still be hashed and stored. Pointers
// are followed once; cyclic structures are cut at depth 16.
func Summarize(v any) IRValue {
	return summarize(reflect.ValueOf(v), 0)
}

func summarize(v reflect.Value, depth int) IRValue {
	if !v.IsValid() {
		return IRNull{}
	}
	if depth > 16 {
		return IRString("<depth>")
	}
	if iv, ok := asIRValue(v); ok {
		return iv
	}
	if v.CanInterface() && v.Kind() != reflect.Pointer && v.Kind() != reflect.Interface {
		if s, ok := v.Interface().(fmt.Stringer); ok {
			return IRString(s.String())
		}
	}

	switch v.Kind() {
	case reflect.String:
		return IRString(v.String())
	case reflect.Bool:
		return IRBool(v.Bool())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return IRInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return IRInt(int64(v.Uint()))
	case reflect.Float32, reflect.Float64:
		return IRString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Func:
		if v.IsNil() {
			return IRNull{}
		}
		return IRString(FuncMarker)
	case reflect.Chan:
		return IRString(ChanMarker)
	case reflect.Interface, reflect.Pointer:
		if v.IsNil() {
			return IRNull{}
		}
		return summarize(v.Elem(), depth+1)
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.IsNil() {
			return IRNull{}
		}
		arr := make(IRArray, v.Len())
		for i := range arr {
			arr[i] = summarize(v.Index(i), depth+1)
		}
		return arr
	case reflect.Map:
		if v.IsNil() {
			return IRNull{}
		}
		obj := make(IRObject, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			obj[fmt.Sprint(iter.Key().Interface())] = summarize(iter.Value(), depth+1)
		}
		return obj
	case reflect.Struct:
		obj := make(IRObject, v.NumField())
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			obj[t.Field(i).Name] = summarize(v.Field(i), depth+1)
		}
		return obj
	default:
		return IRString("<" + v.Type().String() + ">")
	}
}

func asIRValue(v reflect.Value) (IRValue, bool) {
	if !v.CanInterface() {
		return nil, false
	}
	iv, ok := v.Interface().(IRValue)
	return iv, ok
}

// SortedKeys returns keys in RFC 8785 canonical order (UTF-16 code units).
// Go's sort.Strings orders by UTF-8 bytes, which differs for astral runes.
func (obj IRObject) SortedKeys() []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	return slices.Compare(utf16.Encode([]rune(a)), utf16.Encode([]rune(b)))
}

// MarshalJSON implements json.Marshaler for IRObject with sorted keys.
func (obj IRObject) MarshalJSON() ([]byte, error) {
	return MarshalCanonical(obj)
}

// UnmarshalJSON implements json.Unmarshaler for IRObject.
func (obj *IRObject) UnmarshalJSON(data []byte) error {
	v, err := UnmarshalIRValue(data)
	if err != nil {
		return err
	}
	o, ok := v.(IRObject)
	if !ok {
		return fmt.Errorf("expected JSON object, got %T", v)
	}
	*obj = o
	return nil
}

// UnmarshalIRValue decodes JSON into an IRValue. Non-integer numbers are
// kept as IRString, mirroring Summarize.
func UnmarshalIRValue(data []byte) (IRValue, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return fromJSON(raw), nil
}

func fromJSON(v any) IRValue {
	switch val := v.(type) {
	case nil:
		return IRNull{}
	case bool:
		return IRBool(val)
	case string:
		return IRString(val)
	case json.Number:
		if n, err := val.Int64(); err == nil {
			return IRInt(n)
		}
		return IRString(val.String())
	case []any:
		arr := make(IRArray, len(val))
		for i, elem := range val {
			arr[i] = fromJSON(elem)
		}
		return arr
	case map[string]any:
		obj := make(IRObject, len(val))
		for k, elem := range val {
			obj[k] = fromJSON(elem)
		}
		return obj
	default:
		return IRString(fmt.Sprint(val))
	}
}

// ToGo converts an IRValue back into plain Go values (string, int64, bool,
// []any, map[string]any, nil). Used by assertions and CLI output.
func ToGo(v IRValue) any {
	switch val := v.(type) {
	case IRString:
		return string(val)
	case IRInt:
		return int64(val)
	case IRBool:
		return bool(val)
	case IRArray:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = ToGo(elem)
		}
		return out
	case IRObject:
		out := make(map[string]any, len(val))
		for k, elem := range val {
			out[k] = ToGo(elem)
		}
		return out
	default:
		return nil
	}
}
