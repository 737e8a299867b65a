package main

import (
	"context"
	"fmt"
	"log"
	"net"
	"time"

	"github.com/asaskevich/EventBus"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/lattice-obs/lattice/internal/cache"
	"github.com/lattice-obs/lattice/internal/config"
	"github.com/lattice-obs/lattice/internal/pipeline"
	"github.com/lattice-obs/lattice/internal/server"
	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/bootstrapper"
	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/client"
	"github.com/lattice-obs/lattice/internal/storage/model"
	"github.com/lattice-obs/lattice/internal/storage/write_buffer"
	protoLogs "go.opentelemetry.io/proto/otlp/collector/logs/v1"
	protoMetrics "go.opentelemetry.io/proto/otlp/collector/metrics/v1"
	protoTrace "go.opentelemetry.io/proto/otlp/collector/trace/v1"
	"go.uber.org/zap"
	"google.golang.org/grpc"
	_ "google.golang.org/grpc/encoding/gzip"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.LoggerLevel)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{cfg.ElasticsearchURL},
	})
	if err != nil {
		logger.Fatal("Failed to create elasticsearch client", zap.Error(err))
	}

	bs := bootstrapper.NewBootstrapper(es, logger)
	err = bs.BootstrapElasticsearch()
	if err != nil {
		logger.Fatal("Failed to bootstrap elasticsearch", zap.Error(err))
	}

	listener, err := net.Listen("tcp", cfg.CollectorAddr)
	if err != nil {
		logger.Fatal("Failed to listen", zap.Error(err))
	}

	sc := client.NewStoreClientImpl(es, client.Async)

	spanBuffer := write_buffer.NewWriteBufferImpl[model.SpanDocument](
		sc,
		bootstrapper.SpanIndexName,
		logger,
	)
	logBuffer := write_buffer.NewWriteBufferImpl[model.LogDocument](
		sc,
		bootstrapper.LogIndexName,
		logger,
	)
	metricBuffer := write_buffer.NewWriteBufferImpl[model.MetricDocument](
		sc,
		bootstrapper.MetricIndexName,
		logger,
	)
	summaryBuffer := write_buffer.NewWriteBufferImpl[model.TraceSummaryDocument](
		sc,
		bootstrapper.TraceSummaryIndexName,
		logger,
	)

	traceCache, err := cache.NewTraceCacheImpl(cfg.CacheNumCounters, cfg.CacheMaxCost, cfg.CacheBufferItems)
	if err != nil {
		logger.Fatal("Failed to create trace cache", zap.Error(err))
	}

	eventBus := EventBus.New()
	completionService := pipeline.NewTraceCompletionService(
		traceCache,
		summaryBuffer,
		time.Duration(cfg.TraceSettleSeconds)*time.Second,
		time.Duration(cfg.TraceSweepSeconds)*time.Second,
		logger,
	)
	pipelineCleanup, err := completionService.Start(eventBus)
	if err != nil {
		logger.Fatal("Failed to start trace completion pipeline", zap.Error(err))
	}
	defer pipelineCleanup()

	srv := grpc.NewServer()
	traceServiceServer := server.NewTraceServiceServerImpl(logger, spanBuffer, traceCache)
	logServiceServer := server.NewLogServiceServerImpl(logger, logBuffer)
	metricServiceServer := server.NewMetricServiceServerImpl(logger, metricBuffer)

	protoTrace.RegisterTraceServiceServer(srv, traceServiceServer)
	protoLogs.RegisterLogsServiceServer(srv, logServiceServer)
	protoMetrics.RegisterMetricsServiceServer(srv, metricServiceServer)
	logger.Info("gRPC service started, listening for OpenTelemetry exports...",
		zap.String("address", cfg.CollectorAddr),
	)

	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := spanBuffer.Flush(flushCtx); err != nil {
			logger.Error("Failed to flush span buffer", zap.Error(err))
		}
		if err := logBuffer.Flush(flushCtx); err != nil {
			logger.Error("Failed to flush log buffer", zap.Error(err))
		}
		if err := metricBuffer.Flush(flushCtx); err != nil {
			logger.Error("Failed to flush metric buffer", zap.Error(err))
		}
		if err := summaryBuffer.Flush(flushCtx); err != nil {
			logger.Error("Failed to flush summary buffer", zap.Error(err))
		}
	}()

	if err := srv.Serve(listener); err != nil {
		logger.Fatal("Failed to serve", zap.Error(err))
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zapCfg := zap.NewProductionConfig()
	if level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid logger level %q: %w", level, err)
		}
	}
	return zapCfg.Build()
}
