package attribute

// Key is the name half of a KeyValue.
type Key string

// KeyValue is a single attribute: a key paired with a typed value.
type KeyValue struct {
	Key   Key
	Value Value
}

// Valid reports whether the KeyValue can be attached to telemetry. Empty
// keys and invalid values are discarded by the model.
func (kv KeyValue) Valid() bool {
	return kv.Key != "" && kv.Value.Type() != INVALID
}

func String(k, v string) KeyValue {
	return KeyValue{Key: Key(k), Value: StringValue(v)}
}

func Bool(k string, v bool) KeyValue {
	return KeyValue{Key: Key(k), Value: BoolValue(v)}
}

func Int(k string, v int) KeyValue {
	return Int64(k, int64(v))
}

func Int64(k string, v int64) KeyValue {
	return KeyValue{Key: Key(k), Value: Int64Value(v)}
}

func Float64(k string, v float64) KeyValue {
	return KeyValue{Key: Key(k), Value: Float64Value(v)}
}

func StringSlice(k string, v []string) KeyValue {
	return KeyValue{Key: Key(k), Value: StringSliceValue(v)}
}

func BoolSlice(k string, v []bool) KeyValue {
	return KeyValue{Key: Key(k), Value: BoolSliceValue(v)}
}

func Int64Slice(k string, v []int64) KeyValue {
	return KeyValue{Key: Key(k), Value: Int64SliceValue(v)}
}

func Float64Slice(k string, v []float64) KeyValue {
	return KeyValue{Key: Key(k), Value: Float64SliceValue(v)}
}
