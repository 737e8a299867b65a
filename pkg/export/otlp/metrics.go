package otlp

import (
	"github.com/lattice-obs/lattice/pkg/telemetry/metric"
	commonpb "go.opentelemetry.io/proto/otlp/common/v1"
	metricspb "go.opentelemetry.io/proto/otlp/metrics/v1"
	resourcepb "go.opentelemetry.io/proto/otlp/resource/v1"
)

// ToResourceMetrics converts one collection cycle's output into OTLP
// resource metrics. Temporality is always cumulative.
func ToResourceMetrics(rm metric.ResourceMetrics) *metricspb.ResourceMetrics {
	out := &metricspb.ResourceMetrics{
		Resource: &resourcepb.Resource{Attributes: ToProtoAttributes(rm.Resource)},
	}
	for _, sm := range rm.ScopeMetrics {
		scopeMetrics := &metricspb.ScopeMetrics{
			Scope: &commonpb.InstrumentationScope{
				Name:    sm.Scope.Name,
				Version: sm.Scope.Version,
			},
		}
		for _, m := range sm.Metrics {
			scopeMetrics.Metrics = append(scopeMetrics.Metrics, toProtoMetric(m))
		}
		out.ScopeMetrics = append(out.ScopeMetrics, scopeMetrics)
	}
	return out
}

func toProtoMetric(m metric.Metrics) *metricspb.Metric {
	out := &metricspb.Metric{
		Name:        m.Name,
		Description: m.Description,
		Unit:        m.Unit,
	}
	switch data := m.Data.(type) {
	case metric.Sum[int64]:
		out.Data = &metricspb.Metric_Sum{Sum: &metricspb.Sum{
			DataPoints:             int64DataPoints(data.DataPoints),
			AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
			IsMonotonic:            data.Monotonic,
		}}
	case metric.Sum[float64]:
		out.Data = &metricspb.Metric_Sum{Sum: &metricspb.Sum{
			DataPoints:             float64DataPoints(data.DataPoints),
			AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
			IsMonotonic:            data.Monotonic,
		}}
	case metric.Gauge[int64]:
		out.Data = &metricspb.Metric_Gauge{Gauge: &metricspb.Gauge{
			DataPoints: int64DataPoints(data.DataPoints),
		}}
	case metric.Gauge[float64]:
		out.Data = &metricspb.Metric_Gauge{Gauge: &metricspb.Gauge{
			DataPoints: float64DataPoints(data.DataPoints),
		}}
	case metric.Histogram:
		hist := &metricspb.Histogram{
			AggregationTemporality: metricspb.AggregationTemporality_AGGREGATION_TEMPORALITY_CUMULATIVE,
		}
		for _, dp := range data.DataPoints {
			sum := dp.Sum
			min := dp.Min
			max := dp.Max
			hist.DataPoints = append(hist.DataPoints, &metricspb.HistogramDataPoint{
				Attributes:        ToProtoAttributes(dp.Attributes),
				StartTimeUnixNano: toUnixNano(dp.StartTime),
				TimeUnixNano:      toUnixNano(dp.Time),
				Count:             dp.Count,
				Sum:               &sum,
				Min:               &min,
				Max:               &max,
				BucketCounts:      dp.BucketCounts,
				ExplicitBounds:    dp.Bounds,
			})
		}
		out.Data = &metricspb.Metric_Histogram{Histogram: hist}
	}
	return out
}

func int64DataPoints(dps []metric.DataPoint[int64]) []*metricspb.NumberDataPoint {
	out := make([]*metricspb.NumberDataPoint, 0, len(dps))
	for _, dp := range dps {
		out = append(out, &metricspb.NumberDataPoint{
			Attributes:        ToProtoAttributes(dp.Attributes),
			StartTimeUnixNano: toUnixNano(dp.StartTime),
			TimeUnixNano:      toUnixNano(dp.Time),
			Value:             &metricspb.NumberDataPoint_AsInt{AsInt: dp.Value},
		})
	}
	return out
}

func float64DataPoints(dps []metric.DataPoint[float64]) []*metricspb.NumberDataPoint {
	out := make([]*metricspb.NumberDataPoint, 0, len(dps))
	for _, dp := range dps {
		out = append(out, &metricspb.NumberDataPoint{
			Attributes:        ToProtoAttributes(dp.Attributes),
			StartTimeUnixNano: toUnixNano(dp.StartTime),
			TimeUnixNano:      toUnixNano(dp.Time),
			Value:             &metricspb.NumberDataPoint_AsDouble{AsDouble: dp.Value},
		})
	}
	return out
}
