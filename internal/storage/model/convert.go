package model

import (
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/log"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
)

// SpanDocumentFromSnapshot flattens a snapshot into its persisted form.
func SpanDocumentFromSnapshot(span trace.SpanSnapshot, serviceName string) SpanDocument {
	doc := SpanDocument{
		CreatedAt:     time.Now().UTC(),
		TraceID:       span.SpanContext.TraceID().String(),
		SpanID:        span.SpanContext.SpanID().String(),
		ServiceName:   serviceName,
		Name:          span.Name,
		Kind:          span.Kind.String(),
		StartTime:     span.StartTime,
		EndTime:       span.EndTime,
		DurationNanos: span.Duration().Nanoseconds(),
		StatusCode:    span.Status.Code.String(),
		StatusMessage: span.Status.Description,
		Attributes:    attributesToMap(span.Attributes),
		ScopeName:     span.Scope.Name,
		ScopeVersion:  span.Scope.Version,
	}
	if span.Parent.SpanID().IsValid() {
		doc.ParentSpanID = span.Parent.SpanID().String()
	}
	for _, ev := range span.Events {
		doc.Events = append(doc.Events, SpanEventDocument{
			Name:       ev.Name,
			Timestamp:  ev.Timestamp,
			Attributes: attributesToMap(ev.Attributes),
		})
	}
	for _, link := range span.Links {
		doc.Links = append(doc.Links, SpanLinkDocument{
			TraceID:    link.SpanContext.TraceID().String(),
			SpanID:     link.SpanContext.SpanID().String(),
			Attributes: attributesToMap(link.Attributes),
		})
	}
	return doc
}

// SnapshotFromSpanDocument rebuilds a snapshot from its persisted form,
// enough to reassemble trace trees on the query side. Attribute typing is
// lossy through JSON and is restored as primitive values.
func SnapshotFromSpanDocument(doc SpanDocument) (trace.SpanSnapshot, error) {
	traceID, err := trace.TraceIDFromHex(doc.TraceID)
	if err != nil {
		return trace.SpanSnapshot{}, err
	}
	spanID, err := trace.SpanIDFromHex(doc.SpanID)
	if err != nil {
		return trace.SpanSnapshot{}, err
	}

	snapshot := trace.SpanSnapshot{
		Name: doc.Name,
		Kind: trace.SpanKindFromString(doc.Kind),
		SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  spanID,
		}),
		StartTime:  doc.StartTime,
		EndTime:    doc.EndTime,
		Attributes: mapToAttributes(doc.Attributes),
		Status: trace.Status{
			Code:        trace.StatusCodeFromString(doc.StatusCode),
			Description: doc.StatusMessage,
		},
		Scope: scope.Scope{Name: doc.ScopeName, Version: doc.ScopeVersion},
	}
	if doc.ParentSpanID != "" {
		parentID, err := trace.SpanIDFromHex(doc.ParentSpanID)
		if err != nil {
			return trace.SpanSnapshot{}, err
		}
		snapshot.Parent = trace.NewSpanContext(trace.SpanContextConfig{
			TraceID: traceID,
			SpanID:  parentID,
		})
	}
	for _, ev := range doc.Events {
		snapshot.Events = append(snapshot.Events, trace.Event{
			Name:       ev.Name,
			Timestamp:  ev.Timestamp,
			Attributes: mapToAttributes(ev.Attributes),
		})
	}
	for _, link := range doc.Links {
		linkTraceID, err := trace.TraceIDFromHex(link.TraceID)
		if err != nil {
			return trace.SpanSnapshot{}, err
		}
		linkSpanID, err := trace.SpanIDFromHex(link.SpanID)
		if err != nil {
			return trace.SpanSnapshot{}, err
		}
		snapshot.Links = append(snapshot.Links, trace.Link{
			SpanContext: trace.NewSpanContext(trace.SpanContextConfig{
				TraceID: linkTraceID,
				SpanID:  linkSpanID,
			}),
			Attributes: mapToAttributes(link.Attributes),
		})
	}
	return snapshot, nil
}

// LogDocumentFromRecord flattens a log record into its persisted form.
func LogDocumentFromRecord(record log.Record, serviceName string) LogDocument {
	doc := LogDocument{
		CreatedAt:   time.Now().UTC(),
		Timestamp:   record.Timestamp,
		Severity:    record.Severity.String(),
		Message:     record.Body,
		ServiceName: serviceName,
		Attributes:  attributesToMap(record.Attributes),
	}
	if record.TraceID.IsValid() {
		doc.TraceID = record.TraceID.String()
	}
	if record.SpanID.IsValid() {
		doc.SpanID = record.SpanID.String()
	}
	return doc
}

func attributesToMap(kvs []attribute.KeyValue) map[string]interface{} {
	if len(kvs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}

func mapToAttributes(m map[string]interface{}) []attribute.KeyValue {
	if len(m) == 0 {
		return nil
	}
	out := make([]attribute.KeyValue, 0, len(m))
	for k, v := range m {
		switch value := v.(type) {
		case string:
			out = append(out, attribute.String(k, value))
		case bool:
			out = append(out, attribute.Bool(k, value))
		case float64:
			out = append(out, attribute.Float64(k, value))
		case int64:
			out = append(out, attribute.Int64(k, value))
		}
	}
	return out
}

// ServiceNameFromResource extracts the service.name resource attribute,
// empty when unset.
func ServiceNameFromResource(kvs []attribute.KeyValue) string {
	for _, kv := range kvs {
		if kv.Key == "service.name" {
			return kv.Value.AsString()
		}
	}
	return ""
}
