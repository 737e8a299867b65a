package cache

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
)

// TraceCache batches span snapshots per trace until the trace settles,
// meaning no new span has arrived for a configurable quiet period. Eviction
// of cold traces is delegated to ristretto's LFU admission policy.
type TraceCache interface {
	Get(traceID string) ([]trace.SpanSnapshot, error)
	Put(traceID string, spans []trace.SpanSnapshot) error
	// SettledTraces returns the ids of traces that have not received a span
	// for at least olderThan.
	SettledTraces(olderThan time.Duration) []string
	Evict(traceID string)
}

type traceEntry struct {
	spans    []trace.SpanSnapshot
	lastSeen time.Time
}

// TraceCacheImpl holds the authoritative span slices in a mutex-guarded
// map. ristretto only tracks per-trace cost: Set is applied asynchronously
// there, so the map can never lose an append to a racing Put, and when
// ristretto evicts a trace under cost pressure the OnEvict hook drops the
// map entry with it.
type TraceCacheImpl struct {
	cache *ristretto.Cache

	mu      sync.Mutex
	entries map[string]*traceEntry
}

func NewTraceCacheImpl(numCounters int64, maxCost int64, bufferItems int64) (*TraceCacheImpl, error) {
	tc := &TraceCacheImpl{
		entries: make(map[string]*traceEntry),
	}
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: numCounters,
		MaxCost:     maxCost,
		BufferItems: bufferItems,
		OnEvict: func(item *ristretto.Item) {
			traceID, ok := item.Value.(string)
			if !ok {
				return
			}
			tc.mu.Lock()
			delete(tc.entries, traceID)
			tc.mu.Unlock()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	tc.cache = cache
	return tc, nil
}

func (tc *TraceCacheImpl) Get(traceID string) ([]trace.SpanSnapshot, error) {
	tc.mu.Lock()
	defer tc.mu.Unlock()
	entry, found := tc.entries[traceID]
	if !found {
		return nil, ErrKeyNotFound
	}
	return entry.spans, nil
}

func (tc *TraceCacheImpl) Put(traceID string, spans []trace.SpanSnapshot) error {
	tc.mu.Lock()
	entry, found := tc.entries[traceID]
	if !found {
		entry = &traceEntry{}
		tc.entries[traceID] = entry
	}
	entry.spans = append(entry.spans, spans...)
	entry.lastSeen = time.Now()
	cost := int64(len(entry.spans))
	tc.mu.Unlock()

	if set := tc.cache.Set(traceID, traceID, cost); !set {
		return ErrSetFailed
	}
	return nil
}

func (tc *TraceCacheImpl) SettledTraces(olderThan time.Duration) []string {
	cutoff := time.Now().Add(-olderThan)
	tc.mu.Lock()
	defer tc.mu.Unlock()
	var settled []string
	for traceID, entry := range tc.entries {
		if entry.lastSeen.Before(cutoff) {
			settled = append(settled, traceID)
		}
	}
	return settled
}

func (tc *TraceCacheImpl) Evict(traceID string) {
	tc.mu.Lock()
	delete(tc.entries, traceID)
	tc.mu.Unlock()
	tc.cache.Del(traceID)
}

var (
	ErrKeyNotFound = errors.New("key not found within the cache")
	ErrSetFailed   = errors.New("failed to set value in cache")
)
