package utils

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/sunbeekim/MainProject/pkg/logger"
)

// RespondJSON writes a JSON response.
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.L().Warn("failed to encode response", zap.Error(err))
	}
}

// RespondError writes an error response. The "detail" key is the wire
// contract browser clients already parse.
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, map[string]string{"detail": message})
}
