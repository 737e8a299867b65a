package router

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/lattice-obs/lattice/internal/query/handler"
	queryTrace "github.com/lattice-obs/lattice/internal/query/trace"
	"go.uber.org/zap"
)

func CreateRouter(
	ctx context.Context,
	traceQueryService queryTrace.TraceQueryService,
	logger *zap.Logger,
) http.Handler {
	r := mux.NewRouter()

	r.Handle(
		"/spans", handler.SpanSearchHandler(
			ctx,
			traceQueryService,
			logger,
		),
	).Methods("POST")

	r.Handle(
		"/traces", handler.TraceSummarySearchHandler(
			ctx,
			traceQueryService,
			logger,
		),
	).Methods("POST")

	r.Handle(
		"/traces/{id}", handler.TraceByIdHandler(
			ctx,
			traceQueryService,
			logger,
		),
	).Methods("GET")

	return r
}
