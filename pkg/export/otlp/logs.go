package otlp

import (
	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/log"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	logspb "go.opentelemetry.io/proto/otlp/logs/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
)

// ToResourceLogs converts records into OTLP resource logs, grouping by
// instrumentation scope. All records are assumed to share one resource.
func ToResourceLogs(records []log.Record) *logspb.ResourceLogs {
	if len(records) == 0 {
		return nil
	}
	rl := &logspb.ResourceLogs{
		Resource: &resourcepb.Resource{Attributes: ToProtoAttributes(records[0].Resource)},
	}

	byScope := make(map[scope.Scope]*logspb.ScopeLogs)
	var order []scope.Scope
	for _, record := range records {
		sl, ok := byScope[record.Scope]
		if !ok {
			sl = &logspb.ScopeLogs{
				Scope: &commonpb.InstrumentationScope{
					Name:    record.Scope.Name,
					Version: record.Scope.Version,
				},
			}
			byScope[record.Scope] = sl
			order = append(order, record.Scope)
		}
		sl.LogRecords = append(sl.LogRecords, toProtoLogRecord(record))
	}
	for _, sc := range order {
		rl.ScopeLogs = append(rl.ScopeLogs, byScope[sc])
	}
	return rl
}

func toProtoLogRecord(record log.Record) *logspb.LogRecord {
	out := &logspb.LogRecord{
		TimeUnixNano:         toUnixNano(record.Timestamp),
		ObservedTimeUnixNano: toUnixNano(record.ObservedTimestamp),
		SeverityNumber:       logspb.SeverityNumber(record.Severity),
		SeverityText:         record.SeverityText,
		Body:                 &commonpb.AnyValue{Value: &commonpb.AnyValue_StringValue{StringValue: record.Body}},
		Attributes:           ToProtoAttributes(record.Attributes),
	}
	if record.TraceID.IsValid() {
		out.TraceId = record.TraceID[:]
	}
	if record.SpanID.IsValid() {
		out.SpanId = record.SpanID[:]
	}
	return out
}

// FromResourceLogs converts one OTLP resource-logs payload into model
// records.
func FromResourceLogs(rl *logspb.ResourceLogs) []log.Record {
	if rl == nil {
		return nil
	}
	var resourceAttrs []attribute.KeyValue
	if rl.Resource != nil {
		resourceAttrs = FromProtoAttributes(rl.Resource.Attributes)
	}

	var out []log.Record
	for _, sl := range rl.ScopeLogs {
		sc := scope.Scope{}
		if sl.Scope != nil {
			sc = scope.Scope{Name: sl.Scope.Name, Version: sl.Scope.Version}
		}
		for _, lr := range sl.LogRecords {
			record := log.Record{
				Timestamp:         fromUnixNano(lr.TimeUnixNano),
				ObservedTimestamp: fromUnixNano(lr.ObservedTimeUnixNano),
				Severity:          log.Severity(lr.SeverityNumber),
				SeverityText:      lr.SeverityText,
				Body:              lr.Body.GetStringValue(),
				Attributes:        FromProtoAttributes(lr.Attributes),
				TraceID:           trace.TraceIDFromBytes(lr.TraceId),
				SpanID:            trace.SpanIDFromBytes(lr.SpanId),
				Resource:          resourceAttrs,
				Scope:             sc,
			}
			out = append(out, record)
		}
	}
	return out
}
