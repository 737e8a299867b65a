package metric

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/resource"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
	"go.uber.org/zap"
)

var ErrProviderShutdown = errors.New("meter provider has been shut down")

// MeterProvider is the factory for Meters. It owns the resource, the
// registered views applied to every instrument, and the collection state.
type MeterProvider struct {
	resource  *resource.Resource
	views     []View
	logger    *zap.Logger
	startTime time.Time

	mu       sync.Mutex
	meters   map[scope.Scope]*Meter
	shutdown bool
}

// MeterProviderOption configures a MeterProvider.
type MeterProviderOption func(*MeterProvider)

func WithResource(res *resource.Resource) MeterProviderOption {
	return func(p *MeterProvider) {
		p.resource = res
	}
}

// WithViews registers views in match order: the first matching view wins
// per instrument.
func WithViews(views ...View) MeterProviderOption {
	return func(p *MeterProvider) {
		p.views = append(p.views, views...)
	}
}

func WithLogger(logger *zap.Logger) MeterProviderOption {
	return func(p *MeterProvider) {
		p.logger = logger
	}
}

// NewMeterProvider validates the registered views and returns the
// provider. A renaming view with a wildcard matcher is rejected here.
func NewMeterProvider(opts ...MeterProviderOption) (*MeterProvider, error) {
	p := &MeterProvider{
		resource:  resource.Empty(),
		logger:    zap.NewNop(),
		startTime: time.Now(),
		meters:    make(map[scope.Scope]*Meter),
	}
	for _, opt := range opts {
		opt(p)
	}
	for _, v := range p.views {
		if err := v.Validate(); err != nil {
			return nil, fmt.Errorf("invalid view matching %q: %w", v.InstrumentName, err)
		}
	}
	return p, nil
}

// Meter returns the meter for the named instrumentation scope, creating it
// on first use.
func (p *MeterProvider) Meter(name string, version ...string) *Meter {
	sc := scope.Scope{Name: name}
	if len(version) > 0 {
		sc.Version = version[0]
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if m, ok := p.meters[sc]; ok {
		return m
	}
	m := &Meter{
		provider: p,
		scope:    sc,
		registry: make(map[string]*registration),
	}
	p.meters[sc] = m
	return m
}

// Collect runs one collection cycle: every observable callback is invoked
// exactly once, then the cumulative state of every stream is snapshotted.
func (p *MeterProvider) Collect(ctx context.Context) (ResourceMetrics, error) {
	p.mu.Lock()
	if p.shutdown {
		p.mu.Unlock()
		return ResourceMetrics{}, ErrProviderShutdown
	}
	meters := make([]*Meter, 0, len(p.meters))
	for _, m := range p.meters {
		meters = append(meters, m)
	}
	p.mu.Unlock()

	now := time.Now()
	rm := ResourceMetrics{Resource: p.resource.Attributes()}
	for _, m := range meters {
		if err := m.collectObservations(ctx); err != nil {
			p.logger.Error("Observable callback failed during collection",
				zap.String("scope", m.scope.Name),
				zap.Error(err),
			)
		}
		sm := m.collect(now)
		if len(sm.Metrics) > 0 {
			rm.ScopeMetrics = append(rm.ScopeMetrics, sm)
		}
	}
	return rm, nil
}

// Shutdown stops the provider; later Collect calls fail.
func (p *MeterProvider) Shutdown(context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shutdown = true
	return nil
}
