package trace

import (
	"fmt"
	"sync"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
)

// SpanKind describes the relationship between a span and its caller.
type SpanKind int

const (
	SpanKindInternal SpanKind = iota
	SpanKindServer
	SpanKindClient
	SpanKindProducer
	SpanKindConsumer
)

func (k SpanKind) String() string {
	switch k {
	case SpanKindServer:
		return "Server"
	case SpanKindClient:
		return "Client"
	case SpanKindProducer:
		return "Producer"
	case SpanKindConsumer:
		return "Consumer"
	default:
		return "Internal"
	}
}

// SpanKindFromString parses the textual form, defaulting to Internal.
func SpanKindFromString(s string) SpanKind {
	switch s {
	case "Server":
		return SpanKindServer
	case "Client":
		return SpanKindClient
	case "Producer":
		return SpanKindProducer
	case "Consumer":
		return SpanKindConsumer
	default:
		return SpanKindInternal
	}
}

// Event is a timestamped annotation within a span.
type Event struct {
	Name       string
	Attributes []attribute.KeyValue
	Timestamp  time.Time
}

// Link points at another span's context, relating traces or turning a
// trace tree into a DAG.
type Link struct {
	SpanContext SpanContext
	Attributes  []attribute.KeyValue
}

// Span is a recording unit of work. All mutation must happen before End:
// afterwards the span is immutable and every mutator is a no-op. Span
// methods are safe for concurrent use.
type Span struct {
	mu sync.Mutex

	name        string
	kind        SpanKind
	spanContext SpanContext
	parent      SpanContext
	startTime   time.Time
	endTime     time.Time
	attributes  attribute.Set
	events      []Event
	links       []Link
	status      Status
	ended       bool

	droppedAttributes int
	droppedEvents     int
	droppedLinks      int

	tracer *Tracer
}

// SpanContext returns the span's immutable identity tuple.
func (s *Span) SpanContext() SpanContext {
	return s.spanContext
}

// Parent returns the parent span context; invalid for a root span.
func (s *Span) Parent() SpanContext {
	return s.parent
}

// IsRecording reports whether the span still accepts mutation.
func (s *Span) IsRecording() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.ended
}

// SetName renames the span.
func (s *Span) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.name = name
}

// SetAttributes merges attributes into the span, last-write-wins per key.
// Attributes beyond the configured limit are dropped and counted.
func (s *Span) SetAttributes(kvs ...attribute.KeyValue) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	limits := s.limits()
	for _, kv := range kvs {
		if !kv.Valid() {
			continue
		}
		kv = truncateAttr(kv, limits.AttributeValueLengthLimit)
		if _, exists := s.attributes.Value(kv.Key); !exists && s.attributes.Len() >= limits.AttributeCountLimit {
			s.droppedAttributes++
			continue
		}
		s.attributes.Apply(kv)
	}
}

// AddEvent appends a timestamped event to the span.
func (s *Span) AddEvent(name string, opts ...EventOption) {
	cfg := newEventConfig(opts)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if len(s.events) >= s.limits().EventCountLimit {
		s.droppedEvents++
		return
	}
	s.events = append(s.events, Event{
		Name:       name,
		Attributes: cfg.attributes,
		Timestamp:  cfg.timestamp,
	})
}

// AddLink records a link to another span's context. Links with an invalid
// span context are discarded.
func (s *Span) AddLink(link Link) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	if !link.SpanContext.IsValid() {
		return
	}
	if len(s.links) >= s.limits().LinkCountLimit {
		s.droppedLinks++
		return
	}
	s.links = append(s.links, link)
}

// SetStatus applies a status transition. Transitions that would lower the
// status are ignored: Unset -> Error, Unset -> Ok and Error -> Ok are the
// only effective moves, and Ok is final.
func (s *Span) SetStatus(code StatusCode, description string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.status = s.status.apply(code, description)
}

// RecordError attaches err as an exception event. It does not change the
// span status; pairing it with SetStatus(StatusError, ...) is the caller's
// decision.
func (s *Span) RecordError(err error, opts ...EventOption) {
	if err == nil {
		return
	}
	opts = append(opts, WithEventAttributes(
		attribute.String("exception.type", fmt.Sprintf("%T", err)),
		attribute.String("exception.message", err.Error()),
	))
	s.AddEvent("exception", opts...)
}

// End freezes the span. The first call wins: the end timestamp is taken
// once, the snapshot is handed to the tracer's processors, and every later
// call (and every later mutator) is a no-op.
func (s *Span) End(opts ...EndOption) {
	cfg := newEndConfig(opts)
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	s.endTime = cfg.timestamp
	if s.endTime.IsZero() {
		s.endTime = time.Now()
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	if s.tracer != nil {
		s.tracer.provider.onEnd(snapshot)
	}
}

// Snapshot returns the span's current state as an immutable record. Before
// End it is a point-in-time copy; after End it is the final record.
func (s *Span) Snapshot() SpanSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Span) snapshotLocked() SpanSnapshot {
	sc := scope.Scope{}
	var res []attribute.KeyValue
	if s.tracer != nil {
		sc = s.tracer.scope
		res = s.tracer.provider.resource.Attributes()
	}
	events := make([]Event, len(s.events))
	copy(events, s.events)
	links := make([]Link, len(s.links))
	copy(links, s.links)
	return SpanSnapshot{
		Name:              s.name,
		Kind:              s.kind,
		SpanContext:       s.spanContext,
		Parent:            s.parent,
		StartTime:         s.startTime,
		EndTime:           s.endTime,
		Attributes:        s.attributes.ToSlice(),
		Events:            events,
		Links:             links,
		Status:            s.status,
		Resource:          res,
		Scope:             sc,
		DroppedAttributes: s.droppedAttributes,
		DroppedEvents:     s.droppedEvents,
		DroppedLinks:      s.droppedLinks,
	}
}

func (s *Span) limits() SpanLimits {
	if s.tracer == nil {
		return DefaultSpanLimits()
	}
	return s.tracer.provider.spanLimits
}
