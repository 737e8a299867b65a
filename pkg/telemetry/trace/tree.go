package trace

import "sort"

// TreeNode is one span within an assembled trace tree.
type TreeNode struct {
	Span     SpanSnapshot
	Children []*TreeNode
	Parent   *TreeNode
}

// Trace is the set of spans sharing a trace id, assembled into parent/child
// structure. Roots holds the parentless span plus any orphans whose parent
// never arrived; span links may additionally relate nodes across the tree,
// making the overall structure a DAG.
type Trace struct {
	TraceID TraceID
	Roots   []*TreeNode
	Spans   []SpanSnapshot
}

// BuildTrace assembles snapshots sharing a trace id into a Trace. Assembly
// is strictly by span id, never by timing. Spans whose parent id is set but
// absent from the input become synthetic roots.
func BuildTrace(spans []SpanSnapshot) Trace {
	if len(spans) == 0 {
		return Trace{}
	}

	nodes := make(map[SpanID]*TreeNode, len(spans))
	for i := range spans {
		nodes[spans[i].SpanContext.SpanID()] = &TreeNode{Span: spans[i]}
	}

	var roots []*TreeNode
	for _, span := range spans {
		node := nodes[span.SpanContext.SpanID()]
		parentID := span.Parent.SpanID()
		if !parentID.IsValid() {
			roots = append(roots, node)
			continue
		}
		parent, ok := nodes[parentID]
		if !ok {
			// Orphan: the parent span never arrived.
			roots = append(roots, node)
			continue
		}
		node.Parent = parent
		parent.Children = append(parent.Children, node)
	}

	for _, node := range nodes {
		sortChildren(node)
	}
	sort.Slice(roots, func(i, j int) bool {
		return roots[i].Span.StartTime.Before(roots[j].Span.StartTime)
	})

	return Trace{
		TraceID: spans[0].SpanContext.TraceID(),
		Roots:   roots,
		Spans:   spans,
	}
}

// Root returns the true root of the trace (the parentless span), nil when
// the trace is incomplete and only orphans are present.
func (t Trace) Root() *TreeNode {
	for _, r := range t.Roots {
		if r.Span.IsRoot() {
			return r
		}
	}
	return nil
}

// ErrorCount returns the number of spans with Error status.
func (t Trace) ErrorCount() int {
	var n int
	for _, s := range t.Spans {
		if s.Status.Code == StatusError {
			n++
		}
	}
	return n
}

// GroupByTraceID buckets snapshots by trace id. Spans arriving in one
// export batch are not guaranteed to share a trace.
func GroupByTraceID(spans []SpanSnapshot) map[TraceID][]SpanSnapshot {
	grouped := make(map[TraceID][]SpanSnapshot)
	for _, span := range spans {
		id := span.SpanContext.TraceID()
		grouped[id] = append(grouped[id], span)
	}
	return grouped
}

func sortChildren(node *TreeNode) {
	sort.Slice(node.Children, func(i, j int) bool {
		return node.Children[i].Span.StartTime.Before(node.Children[j].Span.StartTime)
	})
}
