package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

var logger = zap.NewNop()

// Init wires the service logger into the handler package. Call once
// at startup.
func Init(l *zap.Logger) {
	logger = l
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", zap.Error(err))
	}
}

// writeError sends the client-facing message only; callers log the
// underlying detail themselves so internals never leak to the client.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]interface{}{"error": message})
}
