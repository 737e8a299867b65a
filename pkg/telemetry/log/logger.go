package log

import (
	"context"
	"sync"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/resource"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"go.uber.org/multierr"
)

// LoggerProvider is the factory for Loggers, holding the resource and the
// processors every record flows through.
type LoggerProvider struct {
	resource *resource.Resource

	mu         sync.Mutex
	processors []LogProcessor
	loggers    map[scope.Scope]*Logger
	shutdown   bool
}

// LoggerProviderOption configures a LoggerProvider.
type LoggerProviderOption func(*LoggerProvider)

func WithResource(res *resource.Resource) LoggerProviderOption {
	return func(p *LoggerProvider) {
		p.resource = res
	}
}

func WithLogProcessor(lp LogProcessor) LoggerProviderOption {
	return func(p *LoggerProvider) {
		p.processors = append(p.processors, lp)
	}
}

func NewLoggerProvider(opts ...LoggerProviderOption) *LoggerProvider {
	p := &LoggerProvider{
		resource: resource.Empty(),
		loggers:  make(map[scope.Scope]*Logger),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Logger returns the logger for the named instrumentation scope, creating
// it on first use.
func (p *LoggerProvider) Logger(name string, version ...string) *Logger {
	sc := scope.Scope{Name: name}
	if len(version) > 0 {
		sc.Version = version[0]
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if l, ok := p.loggers[sc]; ok {
		return l
	}
	l := &Logger{provider: p, scope: sc}
	p.loggers[sc] = l
	return l
}

// ForceFlush flushes every registered processor.
func (p *LoggerProvider) ForceFlush(ctx context.Context) error {
	var err error
	for _, lp := range p.snapshotProcessors() {
		err = multierr.Append(err, lp.ForceFlush(ctx))
	}
	return err
}

// Shutdown flushes and stops every registered processor. Records emitted
// afterwards are dropped.
func (p *LoggerProvider) Shutdown(ctx context.Context) error {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return nil
	}
	p.shutdown = true
	processors := make([]LogProcessor, len(p.processors))
	copy(processors, p.processors)
	p.mu.Unlock()

	var err error
	for _, lp := range processors {
		err = multierr.Append(err, lp.Shutdown(ctx))
	}
	return err
}

func (p *LoggerProvider) snapshotProcessors() []LogProcessor {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.shutdown {
		return nil
	}
	processors := make([]LogProcessor, len(p.processors))
	copy(processors, p.processors)
	return processors
}

// Logger emits log records within a single instrumentation scope.
type Logger struct {
	provider *LoggerProvider
	scope    scope.Scope
}

// Emit stamps the record with the observed timestamp, the provider
// resource, the logger scope and the trace correlation carried by ctx,
// then hands it to every processor.
func (l *Logger) Emit(ctx context.Context, record Record) {
	record.ObservedTimestamp = time.Now()
	if record.Timestamp.IsZero() {
		record.Timestamp = record.ObservedTimestamp
	}
	if record.SeverityText == "" {
		record.SeverityText = record.Severity.String()
	}
	record.Resource = l.provider.resource.Attributes()
	record.Scope = l.scope

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		record.TraceID = sc.TraceID()
		record.SpanID = sc.SpanID()
	}

	for _, lp := range l.provider.snapshotProcessors() {
		lp.OnEmit(record)
	}
}
