package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"t9w.in/tankmon/config"
)

// Version is stamped at build time.
var Version = "dev"

// HealthCheck probes store connectivity.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	timestamp := time.Now().UTC().Format("2006-01-02 15:04:05")

	sqlDB, err := config.DB.DB()
	if err == nil {
		err = sqlDB.PingContext(r.Context())
	}
	if err != nil {
		logger.Error("health check failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":    "unhealthy",
			"timestamp": timestamp,
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": timestamp,
		"database":  "connected",
		"version":   Version,
	})
}
