package trace

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildTrace(t *testing.T) {
	traceID, _ := TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")

	makeSnapshot := func(spanIDHex, parentIDHex string, start time.Time) SpanSnapshot {
		spanID, _ := SpanIDFromHex(spanIDHex)
		snapshot := SpanSnapshot{
			Name: "span-" + spanIDHex,
			SpanContext: NewSpanContext(SpanContextConfig{
				TraceID: traceID,
				SpanID:  spanID,
			}),
			StartTime: start,
		}
		if parentIDHex != "" {
			parentID, _ := SpanIDFromHex(parentIDHex)
			snapshot.Parent = NewSpanContext(SpanContextConfig{
				TraceID: traceID,
				SpanID:  parentID,
			})
		}
		return snapshot
	}

	t.Run("Assembles parents and children by span id", func(t *testing.T) {
		base := time.Now()
		root := makeSnapshot("0000000000000001", "", base)
		childA := makeSnapshot("0000000000000002", "0000000000000001", base.Add(time.Millisecond))
		childB := makeSnapshot("0000000000000003", "0000000000000001", base.Add(2*time.Millisecond))
		grandchild := makeSnapshot("0000000000000004", "0000000000000002", base.Add(3*time.Millisecond))

		// out-of-order input, assembly must not depend on arrival order
		tree := BuildTrace([]SpanSnapshot{grandchild, childB, root, childA})

		assert.Equal(t, traceID, tree.TraceID)
		assert.Len(t, tree.Roots, 1)
		assert.Equal(t, root.Name, tree.Roots[0].Span.Name)
		assert.Len(t, tree.Roots[0].Children, 2)
		assert.Equal(t, childA.Name, tree.Roots[0].Children[0].Span.Name)
		assert.Equal(t, childB.Name, tree.Roots[0].Children[1].Span.Name)
		assert.Len(t, tree.Roots[0].Children[0].Children, 1)
		assert.Equal(t, grandchild.Name, tree.Roots[0].Children[0].Children[0].Span.Name)
	})

	t.Run("Orphans whose parent never arrived become synthetic roots", func(t *testing.T) {
		base := time.Now()
		root := makeSnapshot("0000000000000001", "", base)
		orphan := makeSnapshot("0000000000000005", "00000000000000ff", base.Add(time.Millisecond))

		tree := BuildTrace([]SpanSnapshot{root, orphan})

		assert.Len(t, tree.Roots, 2)
		assert.Equal(t, root.Name, tree.Root().Span.Name)
	})

	t.Run("Root returns nil when only orphans are present", func(t *testing.T) {
		orphan := makeSnapshot("0000000000000005", "00000000000000ff", time.Now())
		tree := BuildTrace([]SpanSnapshot{orphan})
		assert.Nil(t, tree.Root())
		assert.Len(t, tree.Roots, 1)
	})

	t.Run("ErrorCount counts spans with Error status", func(t *testing.T) {
		root := makeSnapshot("0000000000000001", "", time.Now())
		child := makeSnapshot("0000000000000002", "0000000000000001", time.Now())
		child.Status = Status{Code: StatusError, Description: "timeout"}

		tree := BuildTrace([]SpanSnapshot{root, child})
		assert.Equal(t, 1, tree.ErrorCount())
	})

	t.Run("Empty input yields an empty trace", func(t *testing.T) {
		tree := BuildTrace(nil)
		assert.Empty(t, tree.Roots)
		assert.Empty(t, tree.Spans)
	})
}

func TestGroupByTraceID(t *testing.T) {
	t.Run("Buckets spans by trace id", func(t *testing.T) {
		traceA, _ := TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
		traceB, _ := TraceIDFromHex("f0e0d0c0b0a090807060504030201000")
		spanID, _ := SpanIDFromHex("0000000000000001")

		span := func(id TraceID) SpanSnapshot {
			return SpanSnapshot{SpanContext: NewSpanContext(SpanContextConfig{TraceID: id, SpanID: spanID})}
		}

		grouped := GroupByTraceID([]SpanSnapshot{span(traceA), span(traceB), span(traceA)})
		assert.Len(t, grouped, 2)
		assert.Len(t, grouped[traceA], 2)
		assert.Len(t, grouped[traceB], 1)
	})
}
