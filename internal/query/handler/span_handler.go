package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	queryTrace "github.com/lattice-obs/lattice/internal/query/trace"
	"go.uber.org/zap"
)

// SpanSearchHandler creates a handler for searching spans by service,
// operation, status and time range.
// @Summary Search for spans.
// @Tags query
// @Accept json
// @Produce json
// @Param search body trace.SearchParams true "The optional search parameters"
// @Success 200 {object} SpanSearchResponseDTO "List of matching spans"
// @Failure 500 {object} ErrorMessage "Internal server error"
// @Router /spans [post]
func SpanSearchHandler(
	ctx context.Context,
	tqs queryTrace.TraceQueryService,
	logger *zap.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req queryTrace.SearchParams
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

		docs, err := tqs.SearchSpans(ctx, req)
		if err != nil {
			logger.Error("Error encountered when searching for spans", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}

		response := SpanSearchResponseDTO{Spans: make([]SpanDTO, len(docs))}
		for i, doc := range docs {
			response.Spans[i] = spanDocumentToDTO(doc)
		}
		err = json.NewEncoder(w).Encode(response)
		if err != nil {
			logger.Error("Error encountered when encoding response", zap.Error(err))
			HttpError(w, "Internal server error", http.StatusInternalServerError, logger)
			return
		}
	}
}
