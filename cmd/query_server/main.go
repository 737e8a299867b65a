package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/lattice-obs/lattice/internal/config"
	"github.com/lattice-obs/lattice/internal/query/router"
	queryTrace "github.com/lattice-obs/lattice/internal/query/trace"
	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/bootstrapper"
	"github.com/lattice-obs/lattice/internal/storage/elasticsearch/client"
	"go.uber.org/zap"
)

// @title Lattice Query API
// @version 1.0
// @description Query interface over collected traces, spans and trace summaries.

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

	sc := client.NewStoreClientImpl(es, client.Wait)
	traceQueryService := queryTrace.NewTraceQueryServiceImpl(sc, logger)

	r := router.CreateRouter(context.Background(), traceQueryService, logger)
	addr := ":" + cfg.QueryServerPort
	logger.Info("Starting query server", zap.String("address", addr))
	if err := http.ListenAndServe(addr, r); err != nil {
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
