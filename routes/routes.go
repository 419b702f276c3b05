package routes

import (
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"t9w.in/tankmon/handlers"
	"t9w.in/tankmon/middleware"
)

// RegisterRoutes sets up the full HTTP surface.
func RegisterRoutes(device *handlers.DeviceHandlers, weather *handlers.WeatherProxy, log *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.SecurityHeaders)

	// Device ingestion
	r.HandleFunc("/update", handlers.UpdateWaterLevel).Methods("POST")

	api := r.PathPrefix("/api").Subrouter()

	// Readings and statistics
	api.HandleFunc("/data", handlers.GetData).Methods("GET")
	api.HandleFunc("/data/erase", handlers.EraseData).Methods("POST")
	api.HandleFunc("/stats/daily", handlers.GetDailyStats).Methods("GET")
	api.HandleFunc("/stats/weekly", handlers.GetWeeklyStats).Methods("GET")
	api.HandleFunc("/stats/export", handlers.ExportWeeklyStats).Methods("GET")

	// Dashboard settings
	api.HandleFunc("/settings", handlers.GetSettings).Methods("GET")
	api.HandleFunc("/settings", handlers.UpdateSettings).Methods("POST")

	// Device provisioning
	api.HandleFunc("/config", device.GetConfig).Methods("GET")
	api.HandleFunc("/config", device.SaveConfig).Methods("POST")
	api.HandleFunc("/config/verify", device.VerifyConfig).Methods("POST")
	api.HandleFunc("/config/current", device.CurrentConfig).Methods("GET")
	api.HandleFunc("/firmware", device.GetFirmware).Methods("GET")
	api.HandleFunc("/firmware", device.UploadFirmware).Methods("POST")
	api.HandleFunc("/firmware/status", device.FirmwareStatus).Methods("GET")
	api.HandleFunc("/firmware/remove", device.RemoveFirmware).Methods("POST")
	api.HandleFunc("/fetch-status", device.FetchStatus).Methods("GET")

	// Ancillary
	api.HandleFunc("/weather", weather.Get).Methods("GET")
	api.HandleFunc("/health", handlers.HealthCheck).Methods("GET")

	return r
}
