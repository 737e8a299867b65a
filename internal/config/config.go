package config

import (
	"fmt"
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	// collector
	CollectorAddr string `env:"COLLECTOR_ADDR" envDefault:"0.0.0.0:4317"`

	// Elasticsearch
	ElasticsearchURL string `env:"ELASTICSEARCH_URL" envDefault:"http://localhost:9200"`

	// trace completion pipeline
	TraceSettleSeconds int `env:"TRACE_SETTLE_SECONDS" envDefault:"30"`
	TraceSweepSeconds  int `env:"TRACE_SWEEP_SECONDS" envDefault:"15"`

	// trace cache sizing, passed through to ristretto
	CacheNumCounters int64 `env:"CACHE_NUM_COUNTERS" envDefault:"1000000"`
	CacheMaxCost     int64 `env:"CACHE_MAX_COST" envDefault:"100000"`
	CacheBufferItems int64 `env:"CACHE_BUFFER_ITEMS" envDefault:"64"`

	// query server
	QueryServerPort string `env:"QUERY_SERVER_PORT" envDefault:"8081"`

	// logging
	LoggerLevel string `env:"LOGGER_LEVEL" envDefault:"INFO"`
}

func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("WARN: Cannot load .env file: %v, using environment variables", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse environment variables: %w", err)
	}
	return cfg, nil
}
