package server

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/lattice-obs/lattice/internal/storage/model"
	"github.com/lattice-obs/lattice/internal/storage/write_buffer"
	"github.com/lattice-obs/lattice/pkg/export/otlp"
	protoMetrics "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	"go.uber.org/zap"
)

type MetricServiceServerImpl struct {
	protoMetrics.UnimplementedMetricsServiceServer
	writeBuffer write_buffer.WriteBuffer[model.MetricDocument]
	logger      *zap.Logger
}

func NewMetricServiceServerImpl(
	logger *zap.Logger,
	writeBuffer write_buffer.WriteBuffer[model.MetricDocument],
) MetricServiceServerImpl {
	logger.Info("Creating new MetricServiceServerImpl")
	return MetricServiceServerImpl{
		logger:      logger,
		writeBuffer: writeBuffer,
	}
}

func (mss MetricServiceServerImpl) Export(
	ctx context.Context,
	req *protoMetrics.ExportMetricsServiceRequest,
) (*protoMetrics.ExportMetricsServiceResponse, error) {
	for _, resourceMetric := range req.ResourceMetrics {
		serviceName := getMetricServiceName(resourceMetric)
		if serviceName == "" {
			mss.logger.Warn("Service name not found in resource metric")
			serviceName = unknownServiceName
		}

		var docs []model.MetricDocument
		for _, scopeMetric := range resourceMetric.ScopeMetrics {
			for _, metric := range scopeMetric.Metrics {
				docs = append(docs, flattenMetric(metric, serviceName)...)
			}
		}
		if len(docs) > 0 {
			mss.writeBuffer.WriteToBuffer(docs)
		}
	}

	return &protoMetrics.ExportMetricsServiceResponse{}, nil
}

func getMetricServiceName(rm *metricspb.ResourceMetrics) string {
	if rm.Resource == nil {
		return ""
	}
	return model.ServiceNameFromResource(otlp.FromProtoAttributes(rm.Resource.Attributes))
}

// flattenMetric turns each data point of the metric into one document.
func flattenMetric(metric *metricspb.Metric, serviceName string) []model.MetricDocument {
	var docs []model.MetricDocument
	base := model.MetricDocument{
		CreatedAt:   time.Now().UTC(),
		Name:        metric.Name,
		Description: metric.Description,
		Unit:        metric.Unit,
		ServiceName: serviceName,
	}

	switch data := metric.Data.(type) {
	case *metricspb.Metric_Sum:
		for _, dp := range data.Sum.DataPoints {
			doc := base
			doc.Type = "sum"
			fillNumberDataPoint(&doc, dp)
			docs = append(docs, doc)
		}
	case *metricspb.Metric_Gauge:
		for _, dp := range data.Gauge.DataPoints {
			doc := base
			doc.Type = "gauge"
			fillNumberDataPoint(&doc, dp)
			docs = append(docs, doc)
		}
	case *metricspb.Metric_Histogram:
		for _, dp := range data.Histogram.DataPoints {
			doc := base
			doc.Type = "histogram"
			doc.Timestamp = time.Unix(0, int64(dp.TimeUnixNano))
			doc.Count = dp.Count
			if dp.Sum != nil {
				doc.Sum = *dp.Sum
			}
			doc.Bounds = dp.ExplicitBounds
			doc.BucketCounts = dp.BucketCounts
			doc.Attributes = protoAttributesToMap(dp.Attributes)
			docs = append(docs, doc)
		}
	}

	for i := range docs {
		// data points of one metric share a collection timestamp and differ
		// only by attribute set, so the attributes must be part of the id
		docs[i].Id = generateDocumentId(
			docs[i].Name,
			docs[i].ServiceName,
			docs[i].Type,
			docs[i].Timestamp.String(),
			attributesFingerprint(docs[i].Attributes),
		)
	}
	return docs
}

// attributesFingerprint renders an attribute map in sorted key order so
// equal maps always produce the same string.
func attributesFingerprint(attrs map[string]interface{}) string {
	if len(attrs) == 0 {
		return ""
	}
	keys := make([]string, 0, len(attrs))
	for k := range attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, attrs[k]))
	}
	return strings.Join(parts, ",")
}

func fillNumberDataPoint(doc *model.MetricDocument, dp *metricspb.NumberDataPoint) {
	doc.Timestamp = time.Unix(0, int64(dp.TimeUnixNano))
	switch value := dp.Value.(type) {
	case *metricspb.NumberDataPoint_AsInt:
		doc.Value = float64(value.AsInt)
	case *metricspb.NumberDataPoint_AsDouble:
		doc.Value = value.AsDouble
	}
	doc.Attributes = protoAttributesToMap(dp.Attributes)
}

func protoAttributesToMap(attrs []*commonpb.KeyValue) map[string]interface{} {
	if len(attrs) == 0 {
		return nil
	}
	out := make(map[string]interface{}, len(attrs))
	for _, kv := range otlp.FromProtoAttributes(attrs) {
		out[string(kv.Key)] = kv.Value.AsInterface()
	}
	return out
}
