package trace

// TraceFlags is an 8-bit field of trace options. Only the sampled bit is
// currently defined.
type TraceFlags byte

const FlagsSampled = TraceFlags(0x01)

func (f TraceFlags) IsSampled() bool {
	return f&FlagsSampled == FlagsSampled
}

func (f TraceFlags) WithSampled(sampled bool) TraceFlags {
	if sampled {
		return f | FlagsSampled
	}
	return f &^ FlagsSampled
}

// SpanContext is the propagatable identity of a span: the immutable
// (trace id, span id, trace flags, trace state) tuple attached to every
// span and carried across process boundaries for correlation.
//
// SpanContext has no setters; derive modified copies with the With*
// methods.
type SpanContext struct {
	traceID    TraceID
	spanID     SpanID
	traceFlags TraceFlags
	traceState TraceState
	remote     bool
}

// SpanContextConfig carries the fields used to construct a SpanContext.
type SpanContextConfig struct {
	TraceID    TraceID
	SpanID     SpanID
	TraceFlags TraceFlags
	TraceState TraceState
	Remote     bool
}

func NewSpanContext(cfg SpanContextConfig) SpanContext {
	return SpanContext{
		traceID:    cfg.TraceID,
		spanID:     cfg.SpanID,
		traceFlags: cfg.TraceFlags,
		traceState: cfg.TraceState,
		remote:     cfg.Remote,
	}
}

func (sc SpanContext) TraceID() TraceID {
	return sc.traceID
}

func (sc SpanContext) SpanID() SpanID {
	return sc.spanID
}

func (sc SpanContext) TraceFlags() TraceFlags {
	return sc.traceFlags
}

func (sc SpanContext) TraceState() TraceState {
	return sc.traceState
}

// IsRemote reports whether the context was propagated from another process.
func (sc SpanContext) IsRemote() bool {
	return sc.remote
}

func (sc SpanContext) IsSampled() bool {
	return sc.traceFlags.IsSampled()
}

// IsValid reports whether both ids are non-zero.
func (sc SpanContext) IsValid() bool {
	return sc.traceID.IsValid() && sc.spanID.IsValid()
}

func (sc SpanContext) WithSpanID(id SpanID) SpanContext {
	sc.spanID = id
	return sc
}

func (sc SpanContext) WithTraceFlags(flags TraceFlags) SpanContext {
	sc.traceFlags = flags
	return sc
}

func (sc SpanContext) WithTraceState(ts TraceState) SpanContext {
	sc.traceState = ts
	return sc
}

func (sc SpanContext) WithRemote(remote bool) SpanContext {
	sc.remote = remote
	return sc
}

// Equal compares identity and flags; trace state is not part of identity.
func (sc SpanContext) Equal(other SpanContext) bool {
	return sc.traceID == other.traceID &&
		sc.spanID == other.spanID &&
		sc.traceFlags == other.traceFlags
}
