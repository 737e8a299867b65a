package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	queryTrace "github.com/lattice-obs/lattice/internal/query/trace"
	"go.uber.org/zap"
)

// TraceSummarySearchHandler creates a handler for searching completed
// traces by service, duration and error presence.
// @Summary Search for trace summaries.
// @Tags query
// @Accept json
// @Produce json
// @Param search body trace.SummarySearchParams true "The optional search parameters"
// @Success 200 {object} TraceSummarySearchResponseDTO "List of matching trace summaries"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /traces [post]
func TraceSummarySearchHandler(
	ctx context.Context,
	tqs queryTrace.TraceQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryTrace.SummarySearchParams
		err := json.NewDecoder(r.Body).Decode(&req)
		if err != nil {
			logger.Error("Error encountered when decoding request body", zap.Error(err))
			HttpError(w, "Invalid request payload", http.StatusBadRequest, logger)
			return
		}

		defer func(Body io.ReadCloser) {
			err := Body.Close()
			if err != nil {
				logger.Error("Error encountered when closing request body", zap.Error(err))
			}
		}(r.Body)

		summaries, err := tqs.SearchTraceSummaries(ctx, req)
		if err != nil {
			logger.Error("Error encountered when searching for trace summaries", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		response := TraceSummarySearchResponseDTO{Traces: make([]TraceSummaryDTO, len(summaries))}
		for i, summary := range summaries {
			response.Traces[i] = traceSummaryToDTO(summary)
		}
		err = json.NewEncoder(w).Encode(response)
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}

// TraceByIdHandler creates a handler returning the full assembled tree of
// one trace.
// @Summary Get a trace by id.
// @Tags query
// @Produce json
// @Param id path string true "The trace id in hex"
// @Success 200 {object} TraceDTO "The assembled trace tree"
// @Failure 404 {object} ErrorMessage "Trace not found"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /traces/{id} [get]
func TraceByIdHandler(
	ctx context.Context,
	tqs queryTrace.TraceQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		traceID := mux.Vars(r)["id"]

		tree, err := tqs.GetTrace(ctx, traceID)
		if err != nil {
			logger.Error("Error encountered when getting trace",
				zap.String("trace_id", traceID),
				zap.Error(err),
			)
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
		if len(tree.Spans) == 0 {
			HttpError(w, "Trace not found", http.StatusNotFound, logger)
			return
		}

		err = json.NewEncoder(w).Encode(traceToDTO(tree))
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
