package trace

import (
	"context"
	"sync"

	"github.com/lattice-obs/lattice/pkg/telemetry/resource"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// TracerProvider is the factory for Tracers. It owns the resource, id
// generation, span limits and the registered span processors shared by
// every span it produces.
type TracerProvider struct {
	resource   *resource.Resource
	idGen      IDGenerator
	spanLimits SpanLimits
	logger     *zap.Logger

	mu         sync.Mutex
	processors []SpanProcessor
	tracers    map[scope.Scope]*Tracer
	shutdown   bool
}

// TracerProviderOption configures a TracerProvider.
type TracerProviderOption func(*TracerProvider)

func WithResource(res *resource.Resource) TracerProviderOption {
	return func(p *TracerProvider) {
		p.resource = res
	}
}

func WithIDGenerator(gen IDGenerator) TracerProviderOption {
	return func(p *TracerProvider) {
		p.idGen = gen
	}
}

func WithSpanLimits(limits SpanLimits) TracerProviderOption {
	return func(p *TracerProvider) {
		p.spanLimits = limits
	}
}

func WithSpanProcessor(sp SpanProcessor) TracerProviderOption {
	return func(p *TracerProvider) {
		p.processors = append(p.processors, sp)
	}
}

func WithLogger(logger *zap.Logger) TracerProviderOption {
	return func(p *TracerProvider) {
		p.logger = logger
	}
}

func NewTracerProvider(opts ...TracerProviderOption) *TracerProvider {
	p := &TracerProvider{
		resource:   resource.Empty(),
		idGen:      NewRandomIDGenerator(),
		spanLimits: DefaultSpanLimits(),
		logger:     zap.NewNop(),
		tracers:    make(map[scope.Scope]*Tracer),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Tracer returns the tracer for the named instrumentation scope, creating
// it on first use. The same scope always yields the same tracer.
func (p *TracerProvider) Tracer(name string, version ...string) *Tracer {
	sc := scope.Scope{Name: name}
	if len(version) > 0 {
		sc.Version = version[0]
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if t, ok := p.tracers[sc]; ok {
		return t
	}
	t := &Tracer{provider: p, scope: sc}
	p.tracers[sc] = t
	return t
}

// Resource returns the provider's resource.
func (p *TracerProvider) Resource() *resource.Resource {
	return p.resource
}

// RegisterSpanProcessor adds a processor after construction. Spans started
// before registration will not reach the new processor's OnStart.
func (p *TracerProvider) RegisterSpanProcessor(sp SpanProcessor) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.processors = append(p.processors, sp)
}

// ForceFlush flushes every registered processor.
func (p *TracerProvider) ForceFlush(ctx context.Context) error {
	var err error
	for _, sp := range p.snapshotProcessors() {
		err = multierr.Append(err, sp.ForceFlush(ctx))
	}
	return err
}

// Shutdown flushes and stops every registered processor. Spans ended after
// Shutdown are dropped.
func (p *TracerProvider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return nil
	}
	p.shutdown = true
	processors := make([]SpanProcessor, len(p.processors))
	copy(processors, p.processors)
	p.mu.Unlock()

	var err error
	for _, sp := range processors {
		err = multierr.Append(err, sp.Shutdown(ctx))
	}
	return err
}

func (p *TracerProvider) onStart(span *Span) {
	for _, sp := range p.snapshotProcessors() {
		sp.OnStart(span)
	}
}

func (p *TracerProvider) onEnd(snapshot SpanSnapshot) {
	p.mu.Lock()
	down := p.shutdown
	p.mu.Unlock()
	if down {
		return
	}
	for _, sp := range p.snapshotProcessors() {
		sp.OnEnd(snapshot)
	}
}

func (p *TracerProvider) snapshotProcessors() []SpanProcessor {
	p.mu.Lock()
	defer p.mu.Unlock()
	processors := make([]SpanProcessor, len(p.processors))
	copy(processors, p.processors)
	return processors
}
