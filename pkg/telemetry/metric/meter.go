package metric

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/lattice-obs/lattice/pkg/telemetry/attribute"
	"github.com/lattice-obs/lattice/pkg/telemetry/scope"
)

var ErrInstrumentKindConflict = errors.New("an instrument with this name is already registered with a different kind")

// Meter creates instruments within a single instrumentation scope. Obtain
// one from MeterProvider.Meter. Registering the same instrument name twice
// with the same kind returns the existing instrument.
type Meter struct {
	provider *MeterProvider
	scope    scope.Scope

	mu          sync.Mutex
	registry    map[string]*registration
	collectible []collectible
	observables []*observableRegistration
}

type registration struct {
	kind   InstrumentKind
	handle interface{}
}

// collectible is one registered instrument's aggregated output.
type collectible interface {
	collect(now time.Time) []Metrics
}

type observableRegistration struct {
	observe func(ctx context.Context) error
}

// stream is a live output pipe of one instrument: the (possibly
// view-rewritten) definition plus its aggregation state.
type stream[N Number] struct {
	def streamDefinition
	agg aggregator[N]
}

func (s *stream[N]) record(value N, kvs []attribute.KeyValue) {
	s.agg.record(value, s.filtered(kvs))
}

func (s *stream[N]) observe(value N, kvs []attribute.KeyValue) {
	s.agg.observe(value, s.filtered(kvs))
}

func (s *stream[N]) filtered(kvs []attribute.KeyValue) attribute.Set {
	set := attribute.NewSet(kvs...)
	if s.def.filter != nil {
		set = set.Filter(s.def.filter)
	}
	return set
}

type instrumentImpl[N Number] struct {
	inst    Instrument
	streams []*stream[N]
}

func (i *instrumentImpl[N]) record(value N, kvs []attribute.KeyValue) {
	for _, s := range i.streams {
		s.record(value, kvs)
	}
}

func (i *instrumentImpl[N]) observe(value N, kvs []attribute.KeyValue) {
	for _, s := range i.streams {
		s.observe(value, kvs)
	}
}

func (i *instrumentImpl[N]) collect(now time.Time) []Metrics {
	var out []Metrics
	for _, s := range i.streams {
		data, ok := s.agg.collect(now)
		if !ok {
			continue
		}
		out = append(out, Metrics{
			Name:        s.def.name,
			Description: s.def.description,
			Unit:        s.def.unit,
			Data:        data,
		})
	}
	return out
}

func newInstrument[N Number](m *Meter, name string, kind InstrumentKind, opts []InstrumentOption) *instrumentImpl[N] {
	inst := Instrument{Name: name, Kind: kind, Scope: m.scope}
	for _, opt := range opts {
		opt(&inst)
	}
	impl := &instrumentImpl[N]{inst: inst}
	if def, keep := resolveStream(m.provider.views, inst); keep {
		agg := newAggregator[N](def.aggregation, m.provider.startTime)
		if agg != nil {
			impl.streams = append(impl.streams, &stream[N]{def: def, agg: agg})
		}
	}
	return impl
}

// register resolves duplicate instrument names: the existing handle is
// returned when name and kind match, an error when the kinds conflict.
func register[T any](m *Meter, name string, kind InstrumentKind, build func() T) (T, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.registry[name]; ok {
		if existing.kind != kind {
			var zero T
			return zero, fmt.Errorf("instrument %q: %w", name, ErrInstrumentKindConflict)
		}
		return existing.handle.(T), nil
	}
	handle := build()
	m.registry[name] = &registration{kind: kind, handle: handle}
	return handle, nil
}

// Int64Counter returns a monotonic additive instrument. Negative
// increments are dropped.
func (m *Meter) Int64Counter(name string, opts ...InstrumentOption) (*Int64Counter, error) {
	return register(m, name, InstrumentKindCounter, func() *Int64Counter {
		impl := newInstrument[int64](m, name, InstrumentKindCounter, opts)
		m.collectible = append(m.collectible, impl)
		return &Int64Counter{impl: impl}
	})
}

// Int64UpDownCounter returns an additive instrument accepting any sign.
func (m *Meter) Int64UpDownCounter(name string, opts ...InstrumentOption) (*Int64UpDownCounter, error) {
	return register(m, name, InstrumentKindUpDownCounter, func() *Int64UpDownCounter {
		impl := newInstrument[int64](m, name, InstrumentKindUpDownCounter, opts)
		m.collectible = append(m.collectible, impl)
		return &Int64UpDownCounter{impl: impl}
	})
}

// Float64Histogram returns a bucketing instrument for recorded samples.
func (m *Meter) Float64Histogram(name string, opts ...InstrumentOption) (*Float64Histogram, error) {
	return register(m, name, InstrumentKindHistogram, func() *Float64Histogram {
		impl := newInstrument[float64](m, name, InstrumentKindHistogram, opts)
		m.collectible = append(m.collectible, impl)
		return &Float64Histogram{impl: impl}
	})
}

// Float64Gauge returns a last-value instrument.
func (m *Meter) Float64Gauge(name string, opts ...InstrumentOption) (*Float64Gauge, error) {
	return register(m, name, InstrumentKindGauge, func() *Float64Gauge {
		impl := newInstrument[float64](m, name, InstrumentKindGauge, opts)
		m.collectible = append(m.collectible, impl)
		return &Float64Gauge{impl: impl}
	})
}

// Int64ObservableCounter registers a polled monotonic counter. The
// callback is invoked exactly once per collection cycle and must report
// cumulative totals.
func (m *Meter) Int64ObservableCounter(name string, callback Int64Callback, opts ...InstrumentOption) (*Int64ObservableCounter, error) {
	return register(m, name, InstrumentKindObservableCounter, func() *Int64ObservableCounter {
		impl := newInstrument[int64](m, name, InstrumentKindObservableCounter, opts)
		m.collectible = append(m.collectible, impl)
		observer := &int64Observer{impl: impl}
		m.observables = append(m.observables, &observableRegistration{
			observe: func(ctx context.Context) error { return callback(ctx, observer) },
		})
		return &Int64ObservableCounter{impl: impl}
	})
}

// Int64ObservableUpDownCounter registers a polled non-monotonic counter.
func (m *Meter) Int64ObservableUpDownCounter(name string, callback Int64Callback, opts ...InstrumentOption) (*Int64ObservableUpDownCounter, error) {
	return register(m, name, InstrumentKindObservableUpDownCounter, func() *Int64ObservableUpDownCounter {
		impl := newInstrument[int64](m, name, InstrumentKindObservableUpDownCounter, opts)
		m.collectible = append(m.collectible, impl)
		observer := &int64Observer{impl: impl}
		m.observables = append(m.observables, &observableRegistration{
			observe: func(ctx context.Context) error { return callback(ctx, observer) },
		})
		return &Int64ObservableUpDownCounter{impl: impl}
	})
}

// Float64ObservableGauge registers a polled last-value instrument.
func (m *Meter) Float64ObservableGauge(name string, callback Float64Callback, opts ...InstrumentOption) (*Float64ObservableGauge, error) {
	return register(m, name, InstrumentKindObservableGauge, func() *Float64ObservableGauge {
		impl := newInstrument[float64](m, name, InstrumentKindObservableGauge, opts)
		m.collectible = append(m.collectible, impl)
		observer := &float64Observer{impl: impl}
		m.observables = append(m.observables, &observableRegistration{
			observe: func(ctx context.Context) error { return callback(ctx, observer) },
		})
		return &Float64ObservableGauge{impl: impl}
	})
}

// collectObservations runs every registered callback exactly once.
func (m *Meter) collectObservations(ctx context.Context) error {
	m.mu.Lock()
	observables := make([]*observableRegistration, len(m.observables))
	copy(observables, m.observables)
	m.mu.Unlock()

	var firstErr error
	for _, o := range observables {
		if err := o.observe(ctx); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func (m *Meter) collect(now time.Time) ScopeMetrics {
	m.mu.Lock()
	collectible := make([]collectible, len(m.collectible))
	copy(collectible, m.collectible)
	m.mu.Unlock()

	sm := ScopeMetrics{Scope: m.scope}
	for _, c := range collectible {
		sm.Metrics = append(sm.Metrics, c.collect(now)...)
	}
	return sm
}
