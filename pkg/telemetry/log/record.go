package log

import (
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
)

// Severity is the numeric log level ladder. The numbers leave room for
// finer-grained levels between the named ones.
type Severity int

const (
	SeverityUndefined Severity = 0
	SeverityTrace     Severity = 1
	SeverityDebug     Severity = 5
	SeverityInfo      Severity = 9
	SeverityWarn      Severity = 13
	SeverityError     Severity = 17
	SeverityFatal     Severity = 21
)

func (s Severity) String() string {
	switch {
	case s >= SeverityFatal:
		return "FATAL"
	case s >= SeverityError:
		return "ERROR"
	case s >= SeverityWarn:
		return "WARN"
	case s >= SeverityInfo:
		return "INFO"
	case s >= SeverityDebug:
		return "DEBUG"
	case s >= SeverityTrace:
		return "TRACE"
	default:
		return "UNDEFINED"
	}
}

// Record is a single log entry. Trace and span ids are captured from the
// emitting context so logs correlate with the surrounding span.
type Record struct {
	Timestamp         time.Time
	ObservedTimestamp time.Time
	Severity          Severity
	SeverityText      string
	Body              string
	Attributes        []attribute.KeyValue
	TraceID           trace.TraceID
	SpanID            trace.SpanID
	Resource          []attribute.KeyValue
	Scope             scope.Scope
}
