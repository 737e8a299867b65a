package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/bootstrapper"
	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/client"
	"github.com/lattice-obs/lattice/internal/storage/model"
	telemetryTrace "github.com/lattice-obs/lattice/pkg/telemetry/trace"
	"go.uber.org/zap"
)

const timeout = 10 * time.Second
const querySize = 10000

type SearchParams struct {
	Service     *string  `json:"service,omitempty"`
	Operation   *string  `json:"operation,omitempty"`
	StartTime   *string  `json:"start_time,omitempty"`
	EndTime     *string  `json:"end_time,omitempty"`
	StatusCodes []string `json:"status_codes,omitempty"`
}

type SummarySearchParams struct {
	Service          *string `json:"service,omitempty"`
	StartTime        *string `json:"start_time,omitempty"`
	EndTime          *string `json:"end_time,omitempty"`
	MinDurationNanos *int64  `json:"min_duration_nanos,omitempty"`
	ErrorsOnly       bool    `json:"errors_only,omitempty"`
}

type TraceQueryService interface {
	SearchSpans(ctx context.Context, params SearchParams) ([]model.SpanDocument, error)
	SearchTraceSummaries(ctx context.Context, params SummarySearchParams) ([]model.TraceSummaryDocument, error)
	GetTrace(ctx context.Context, traceID string) (telemetryTrace.Trace, error)
}

type TraceQueryServiceImpl struct {
	sc     client.StoreClient
	logger *zap.Logger
}

func NewTraceQueryServiceImpl(sc client.StoreClient, logger *zap.Logger) *TraceQueryServiceImpl {
	return &TraceQueryServiceImpl{
		sc:     sc,
		logger: logger,
	}
}

func (tqs *TraceQueryServiceImpl) SearchSpans(
	ctx context.Context,
	params SearchParams,
) ([]model.SpanDocument, error) {
	res, err := tqs.search(ctx, getSpansQuery(params), bootstrapper.SpanIndexName)
	if err != nil {
		tqs.logger.Error("Error when searching for spans", zap.Error(err))
		return nil, err
	}
	return spanDocumentsFromSearchResult(res)
}

func (tqs *TraceQueryServiceImpl) SearchTraceSummaries(
	ctx context.Context,
	params SummarySearchParams,
) ([]model.TraceSummaryDocument, error) {
	res, err := tqs.search(ctx, getTraceSummariesQuery(params), bootstrapper.TraceSummaryIndexName)
	if err != nil {
		tqs.logger.Error("Error when searching for trace summaries", zap.Error(err))
		return nil, err
	}
	summaries := make([]model.TraceSummaryDocument, 0, len(res))
	for _, doc := range res {
		var summary model.TraceSummaryDocument
		if err := convertDocument(doc, &summary); err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// GetTrace fetches all spans of a trace and assembles them into a tree.
func (tqs *TraceQueryServiceImpl) GetTrace(
	ctx context.Context,
	traceID string,
) (telemetryTrace.Trace, error) {
	res, err := tqs.search(ctx, getTraceByIdQuery(traceID), bootstrapper.SpanIndexName)
	if err != nil {
		tqs.logger.Error("Error when searching for trace",
			zap.String("trace_id", traceID),
			zap.Error(err),
		)
		return telemetryTrace.Trace{}, err
	}
	docs, err := spanDocumentsFromSearchResult(res)
	if err != nil {
		return telemetryTrace.Trace{}, err
	}

	snapshots := make([]telemetryTrace.SpanSnapshot, 0, len(docs))
	for _, doc := range docs {
		snapshot, err := model.SnapshotFromSpanDocument(doc)
		if err != nil {
			return telemetryTrace.Trace{}, fmt.Errorf("failed to rebuild span %s: %w", doc.SpanID, err)
		}
		snapshots = append(snapshots, snapshot)
	}
	return telemetryTrace.BuildTrace(snapshots), nil
}

func (tqs *TraceQueryServiceImpl) search(
	ctx context.Context,
	query map[string]interface{},
	index string,
) ([]map[string]interface{}, error) {
	queryJson, err := json.Marshal(query)
	if err != nil {
		return nil, fmt.Errorf("error when marshalling query to JSON: %w", err)
	}
	localQuerySize := querySize
	queryCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return tqs.sc.Search(queryCtx, string(queryJson), []string{index}, &localQuerySize)
}

func spanDocumentsFromSearchResult(res []map[string]interface{}) ([]model.SpanDocument, error) {
	docs := make([]model.SpanDocument, 0, len(res))
	for _, hit := range res {
		var doc model.SpanDocument
		if err := convertDocument(hit, &doc); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// convertDocument round-trips a search hit through JSON into its typed
// document. Elasticsearch date_nanos fields come back RFC3339-formatted,
// which encoding/json parses directly.
func convertDocument(hit map[string]interface{}, out interface{}) error {
	data, err := json.Marshal(hit)
	if err != nil {
		return fmt.Errorf("failed to marshal search hit: %w", err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal search hit: %w", err)
	}
	return nil
}
