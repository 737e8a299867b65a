package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/lattice-obs/lattice/internal/cache"
	"github.com/lattice-obs/lattice/internal/storage/model"
	"github.com/lattice-obs/lattice/internal/storage/write_buffer"
	"github.com/lattice-obs/lattice/pkg/export/otlp"
	"github.com/lattice-obs/lattice/pkg/telemetry/trace"
	protoTrace "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"go.uber.org/zap"
)

const unknownServiceName = "unknown_service"

type TraceServiceServerImpl struct {
	protoTrace.UnimplementedTraceServiceServer
	writeBuffer write_buffer.WriteBuffer[model.SpanDocument]
	traceCache  cache.TraceCache
	logger      *zap.Logger
}

func NewTraceServiceServerImpl(
	logger *zap.Logger,
	writeBuffer write_buffer.WriteBuffer[model.SpanDocument],
	traceCache cache.TraceCache,
) TraceServiceServerImpl {
	logger.Info("Creating new TraceServiceServerImpl")
	return TraceServiceServerImpl{
		logger:      logger,
		writeBuffer: writeBuffer,
		traceCache:  traceCache,
	}
}

func (tss TraceServiceServerImpl) Export(
	ctx context.Context,
	req *protoTrace.ExportTraceServiceRequest,
) (*protoTrace.ExportTraceServiceResponse, error) {
	for _, resourceSpan := range req.ResourceSpans {
		snapshots := otlp.FromResourceSpans(resourceSpan)
		if len(snapshots) == 0 {
			continue
		}
		serviceName := model.ServiceNameFromResource(snapshots[0].Resource)
		if serviceName == "" {
			tss.logger.Warn("Service name not found in resource span")
			serviceName = unknownServiceName
		}

		docs := make([]model.SpanDocument, 0, len(snapshots))
		for _, snapshot := range snapshots {
			doc := model.SpanDocumentFromSnapshot(snapshot, serviceName)
			doc.Id = generateDocumentId(doc.TraceID, doc.SpanID)
			docs = append(docs, doc)
		}
		tss.writeBuffer.WriteToBuffer(docs)

		for traceID, spans := range trace.GroupByTraceID(snapshots) {
			if err := tss.traceCache.Put(traceID.String(), spans); err != nil {
				tss.logger.Error("Failed to cache spans for trace",
					zap.String("trace_id", traceID.String()),
					zap.Error(err),
				)
			}
		}
	}

	return &protoTrace.ExportTraceServiceResponse{}, nil
}

func generateDocumentId(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, ":")))
	return hex.EncodeToString(hash[:])
}
