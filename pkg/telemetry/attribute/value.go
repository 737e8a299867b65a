package attribute

import (
	"fmt"
	"strconv"
	"strings"
)

// Type describes the kind of data held by a Value.
type Type int

const (
	INVALID Type = iota
	STRING
	BOOL
	INT64
	FLOAT64
	STRINGSLICE
	BOOLSLICE
	INT64SLICE
	FLOAT64SLICE
)

// Value holds a single attribute value. Arrays are homogeneous: a slice
// Value only ever contains elements of one primitive type, and the type of
// a Value never changes after construction.
type Value struct {
	vtype    Type
	numeric  uint64
	str      string
	slice    interface{}
	boolVal  bool
	floatVal float64
}

func StringValue(v string) Value {
	return Value{vtype: STRING, str: v}
}

func BoolValue(v bool) Value {
	return Value{vtype: BOOL, boolVal: v}
}

func Int64Value(v int64) Value {
	return Value{vtype: INT64, numeric: uint64(v)}
}

func Float64Value(v float64) Value {
	return Value{vtype: FLOAT64, floatVal: v}
}

func StringSliceValue(v []string) Value {
	cp := make([]string, len(v))
	copy(cp, v)
	return Value{vtype: STRINGSLICE, slice: cp}
}

func BoolSliceValue(v []bool) Value {
	cp := make([]bool, len(v))
	copy(cp, v)
	return Value{vtype: BOOLSLICE, slice: cp}
}

func Int64SliceValue(v []int64) Value {
	cp := make([]int64, len(v))
	copy(cp, v)
	return Value{vtype: INT64SLICE, slice: cp}
}

func Float64SliceValue(v []float64) Value {
	cp := make([]float64, len(v))
	copy(cp, v)
	return Value{vtype: FLOAT64SLICE, slice: cp}
}

func (v Value) Type() Type {
	return v.vtype
}

func (v Value) AsString() string {
	return v.str
}

func (v Value) AsBool() bool {
	return v.boolVal
}

func (v Value) AsInt64() int64 {
	return int64(v.numeric)
}

func (v Value) AsFloat64() float64 {
	return v.floatVal
}

func (v Value) AsStringSlice() []string {
	s, _ := v.slice.([]string)
	return s
}

func (v Value) AsBoolSlice() []bool {
	s, _ := v.slice.([]bool)
	return s
}

func (v Value) AsInt64Slice() []int64 {
	s, _ := v.slice.([]int64)
	return s
}

func (v Value) AsFloat64Slice() []float64 {
	s, _ := v.slice.([]float64)
	return s
}

// AsInterface returns the value in a form suitable for JSON encoding.
func (v Value) AsInterface() interface{} {
	switch v.vtype {
	case STRING:
		return v.str
	case BOOL:
		return v.boolVal
	case INT64:
		return int64(v.numeric)
	case FLOAT64:
		return v.floatVal
	case STRINGSLICE, BOOLSLICE, INT64SLICE, FLOAT64SLICE:
		return v.slice
	default:
		return nil
	}
}

// Emit renders the value as a string for logging and persistence.
func (v Value) Emit() string {
	switch v.vtype {
	case STRING:
		return v.str
	case BOOL:
		return strconv.FormatBool(v.boolVal)
	case INT64:
		return strconv.FormatInt(int64(v.numeric), 10)
	case FLOAT64:
		return strconv.FormatFloat(v.floatVal, 'g', -1, 64)
	case STRINGSLICE:
		return fmt.Sprintf("[%s]", strings.Join(v.AsStringSlice(), ","))
	case BOOLSLICE, INT64SLICE, FLOAT64SLICE:
		return fmt.Sprintf("%v", v.slice)
	default:
		return ""
	}
}
