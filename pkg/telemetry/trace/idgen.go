package trace

import (
	crand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"sync"
)

// IDGenerator produces span and trace ids. Implementations must return
// valid (non-zero) ids and be safe for concurrent use.
type IDGenerator interface {
	NewTraceID() TraceID
	NewSpanID() SpanID
}

type randomIDGenerator struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomIDGenerator returns the default generator: a crypto/rand seeded
// PRNG producing non-zero ids.
func NewRandomIDGenerator() IDGenerator {
	var seed int64
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	}
	return &randomIDGenerator{rng: rand.New(rand.NewSource(seed))}
}

func (g *randomIDGenerator) NewTraceID() TraceID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id TraceID
	for !id.IsValid() {
		g.rng.Read(id[:])
	}
	return id
}

func (g *randomIDGenerator) NewSpanID() SpanID {
	g.mu.Lock()
	defer g.mu.Unlock()
	var id SpanID
	for !id.IsValid() {
		g.rng.Read(id[:])
	}
	return id
}
