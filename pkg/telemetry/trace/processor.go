package trace

import (
	"context"
	"sync"
)

// SpanProcessor hooks the span lifecycle. OnStart sees the live span while
// it is still mutable; OnEnd receives the immutable snapshot.
type SpanProcessor interface {
	OnStart(span *Span)
	OnEnd(snapshot SpanSnapshot)
	ForceFlush(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Recorder is an in-memory SpanProcessor keeping every ended span. It is
// used by tests and by in-process trace assembly.
type Recorder struct {
	mu    sync.Mutex
	ended []SpanSnapshot
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OnStart(*Span) {}

func (r *Recorder) OnEnd(snapshot SpanSnapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = append(r.ended, snapshot)
}

func (r *Recorder) ForceFlush(context.Context) error {
	return nil
}

func (r *Recorder) Shutdown(context.Context) error {
	return nil
}

// Ended returns a copy of the snapshots recorded so far.
func (r *Recorder) Ended() []SpanSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]SpanSnapshot, len(r.ended))
	copy(out, r.ended)
	return out
}

// Reset discards all recorded snapshots.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ended = nil
}
