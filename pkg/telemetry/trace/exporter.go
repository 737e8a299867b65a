package trace

import (
	"context"
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
)

// SpanExporter serializes and transmits completed spans to a backend.
type SpanExporter interface {
	ExportSpans(ctx context.Context, spans []SpanSnapshot) error
	Shutdown(ctx context.Context) error
}

// WriterExporter writes one JSON document per span to an io.Writer. Useful
// for local debugging and golden tests.
type WriterExporter struct {
	mu       sync.Mutex
	w        io.Writer
	shutdown bool
}

func NewWriterExporter(w io.Writer) *WriterExporter {
	return &WriterExporter{w: w}
}

type spanJSON struct {
	Name         string                 `json:"name"`
	TraceID      string                 `json:"trace_id"`
	SpanID       string                 `json:"span_id"`
	ParentSpanID string                 `json:"parent_span_id,omitempty"`
	Kind         string                 `json:"kind"`
	StartTime    time.Time              `json:"start_time"`
	EndTime      time.Time              `json:"end_time"`
	Status       string                 `json:"status"`
	StatusDesc   string                 `json:"status_description,omitempty"`
	Attributes   map[string]interface{} `json:"attributes,omitempty"`
	Events       []eventJSON            `json:"events,omitempty"`
}

type eventJSON struct {
	Name       string                 `json:"name"`
	Timestamp  time.Time              `json:"timestamp"`
	Attributes map[string]interface{} `json:"attributes,omitempty"`
}

func (e *WriterExporter) ExportSpans(ctx context.Context, spans []SpanSnapshot) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.shutdown {
		return ErrExporterShutdown
	}
	enc := json.NewEncoder(e.w)
	for _, s := range spans {
		doc := spanJSON{
			Name:       s.Name,
			TraceID:    s.SpanContext.TraceID().String(),
			SpanID:     s.SpanContext.SpanID().String(),
			Kind:       s.Kind.String(),
			StartTime:  s.StartTime,
			EndTime:    s.EndTime,
			Status:     s.Status.Code.String(),
			StatusDesc: s.Status.Description,
			Attributes: attrsToMap(s.Attributes),
		}
		if s.Parent.SpanID().IsValid() {
			doc.ParentSpanID = s.Parent.SpanID().String()
		}
		for _, ev := range s.Events {
			doc.Events = append(doc.Events, eventJSON{
				Name:       ev.Name,
				Timestamp:  ev.Timestamp,
				Attributes: attrsToMap(ev.Attributes),
			})
		}
		if err := enc.Encode(doc); err != nil {
			return err
		}
	}
	return nil
}

func (e *WriterExporter) Shutdown(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.shutdown = true
	return nil
}

func attrsToMap(kvs []attribute.KeyValue) map[string]interface{} {
	if len(kvs) == 0 {
		return nil
	}
	m := make(map[string]interface{}, len(kvs))
	for _, kv := range kvs {
		m[string(kv.Key)] = kv.Value.AsInterface()
	}
	return m
}
