package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

func HttpError(w http.ResponseWriter, message string, code int, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorMessage{Message: message}); err != nil {
		logger.Error("Error encountered when encoding error response", zap.Error(err))
	}
}
