package trace

import (
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
)

// SpanSnapshot is the frozen, read-only record of a span, produced when
// the span ends and handed to processors and exporters. It is also the
// unit the collector persists.
type SpanSnapshot struct {
	Name        string
	Kind        SpanKind
	SpanContext SpanContext
	Parent      SpanContext
	StartTime   time.Time
	EndTime     time.Time
	Attributes  []attribute.KeyValue
	Events      []Event
	Links       []Link
	Status      Status
	Resource    []attribute.KeyValue
	Scope       scope.Scope

	DroppedAttributes int
	DroppedEvents     int
	DroppedLinks      int
}

// Duration returns the span's wall time, zero if it never ended.
func (s SpanSnapshot) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return 0
	}
	return s.EndTime.Sub(s.StartTime)
}

// IsRoot reports whether the span has no parent.
func (s SpanSnapshot) IsRoot() bool {
	return !s.Parent.SpanID().IsValid()
}
