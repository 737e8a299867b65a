package server

import (
	"context"

	"github.com/lattice-obs/lattice/internal/storage/model"
	"github.com/lattice-obs/lattice/internal/storage/write_buffer"
	"github.com/lattice-obs/lattice/pkg/export/otlp"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	"go.uber.org/zap"
)

type LogServiceServerImpl struct {
	protoLogs.UnimplementedLogsServiceServer
	writeBuffer write_buffer.WriteBuffer[model.LogDocument]
	logger      *zap.Logger
}

func NewLogServiceServerImpl(
	logger *zap.Logger,
	writeBuffer write_buffer.WriteBuffer[model.LogDocument],
) LogServiceServerImpl {
	logger.Info("Creating new LogServiceServerImpl")
	return LogServiceServerImpl{
		logger:      logger,
		writeBuffer: writeBuffer,
	}
}

func (lss LogServiceServerImpl) Export(
	ctx context.Context,
	req *protoLogs.ExportLogsServiceRequest,
) (*protoLogs.ExportLogsServiceResponse, error) {
	for _, resourceLog := range req.ResourceLogs {
		records := otlp.FromResourceLogs(resourceLog)
		if len(records) == 0 {
			continue
		}
		serviceName := model.ServiceNameFromResource(records[0].Resource)
		if serviceName == "" {
			lss.logger.Warn("Service name not found in resource log")
			serviceName = unknownServiceName
		}

		docs := make([]model.LogDocument, 0, len(records))
		for _, record := range records {
			doc := model.LogDocumentFromRecord(record, serviceName)
			doc.Id = generateDocumentId(
				doc.Timestamp.String(), doc.ServiceName, doc.Severity, doc.Message,
			)
			docs = append(docs, doc)
		}
		lss.writeBuffer.WriteToBuffer(docs)
	}

	return &protoLogs.ExportLogsServiceResponse{}, nil
}
