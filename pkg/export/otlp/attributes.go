// Package otlp converts between the telemetry model and the OpenTelemetry
// protocol wire types: outward for exporters, inward for the collector's
// ingestion servers.
package otlp

import (
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
)

// ToProtoAttributes converts model attributes to OTLP key/values.
func ToProtoAttributes(kvs []attribute.KeyValue) []*commonpb.KeyValue {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]*commonpb.KeyValue, 0, len(kvs))
	for _, kv := range kvs {
		out = append(out, &commonpb.KeyValue{
			Key:   string(kv.Key),
			Value: toProtoValue(kv.Value),
		})
	}
	return out
}

func toProtoValue(v attribute.Value) *commonpb.AnyValue {
	switch v.Type() {
	case attribute.STRING:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: v.AsString()}}
	case attribute.BOOL:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: v.AsBool()}}
	case attribute.INT64:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: v.AsInt64()}}
	case attribute.FLOAT64:
		return &commonpb.AnyValue{Value: &commonpb.AnyValue_DoubleValue{DoubleValue: v.AsFloat64()}}
	case attribute.STRINGSLICE:
		values := v.AsStringSlice()
		arr := make([]*commonpb.AnyValue, len(values))
		for i, s := range values {
			arr[i] = &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: s}}
		}
		return arrayValue(arr)
	case attribute.BOOLSLICE:
		values := v.AsBoolSlice()
		arr := make([]*commonpb.AnyValue, len(values))
		for i, b := range values {
			arr[i] = &commonpb.AnyValue{Value: &commonpb.AnyValue_BoolValue{BoolValue: b}}
		}
		return arrayValue(arr)
	case attribute.INT64SLICE:
		values := v.AsInt64Slice()
		arr := make([]*commonpb.AnyValue, len(values))
		for i, n := range values {
			arr[i] = &commonpb.AnyValue{Value: &commonpb.AnyValue_IntValue{IntValue: n}}
		}
		return arrayValue(arr)
	case attribute.FLOAT64SLICE:
		values := v.AsFloat64Slice()
		arr := make([]*commonpb.AnyValue, len(values))
		for i, f := range values {
			arr[i] = &commonpb.AnyValue{Value: &commonpb.AnyValue_DoubleValue{DoubleValue: f}}
		}
		return arrayValue(arr)
	default:
		return &commonpb.AnyValue{}
	}
}

func arrayValue(values []*commonpb.AnyValue) *commonpb.AnyValue {
	return &commonpb.AnyValue{
		Value: &commonpb.AnyValue_ArrayValue{ArrayValue: &commonpb.ArrayValue{Values: values}},
	}
}

// FromProtoAttributes converts OTLP key/values into model attributes.
// Values of unsupported shapes (nested maps, heterogeneous arrays) are
// flattened to their string form rather than dropped.
func FromProtoAttributes(kvs []*commonpb.KeyValue) []attribute.KeyValue {
	if len(kvs) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(kvs))
	for _, kv := range kvs {
		if kv == nil {
			continue
		}
		out = append(out, fromProtoValue(kv.Key, kv.Value))
	}
	return out
}

func fromProtoValue(key string, v *commonpb.AnyValue) attribute.KeyValue {
	if v == nil {
		return attribute.String(key, "")
	}
	switch value := v.Value.(type) {
	case *commonpb.AnyValue_StringValue:
		return attribute.String(key, value.StringValue)
	case *commonpb.AnyValue_BoolValue:
		return attribute.Bool(key, value.BoolValue)
	case *commonpb.AnyValue_IntValue:
		return attribute.Int64(key, value.IntValue)
	case *commonpb.AnyValue_DoubleValue:
		return attribute.Float64(key, value.DoubleValue)
	case *commonpb.AnyValue_ArrayValue:
		return fromProtoArray(key, value.ArrayValue.GetValues())
	default:
		return attribute.String(key, v.GetStringValue())
	}
}

func fromProtoArray(key string, values []*commonpb.AnyValue) attribute.KeyValue {
	if len(values) == 0 {
		return attribute.StringSlice(key, nil)
	}
	switch values[0].Value.(type) {
	case *commonpb.AnyValue_StringValue:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = v.GetStringValue()
		}
		return attribute.StringSlice(key, out)
	case *commonpb.AnyValue_BoolValue:
		out := make([]bool, len(values))
		for i, v := range values {
			out[i] = v.GetBoolValue()
		}
		return attribute.BoolSlice(key, out)
	case *commonpb.AnyValue_IntValue:
		out := make([]int64, len(values))
		for i, v := range values {
			out[i] = v.GetIntValue()
		}
		return attribute.Int64Slice(key, out)
	case *commonpb.AnyValue_DoubleValue:
		out := make([]float64, len(values))
		for i, v := range values {
			out[i] = v.GetDoubleValue()
		}
		return attribute.Float64Slice(key, out)
	default:
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = v.String()
		}
		return attribute.StringSlice(key, out)
	}
}

func toUnixNano(t time.Time) uint64 {
	if t.IsZero() {
		return 0
	}
	return uint64(t.UnixNano())
}

func fromUnixNano(ns uint64) time.Time {
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, int64(ns))
}
