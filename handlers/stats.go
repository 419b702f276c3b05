package handlers

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"t9w.in/tankmon/config"
	"t9w.in/tankmon/models"
	"t9w.in/tankmon/pkg/tank"
)

// statsWindow loads the ascending samples needed for the trailing
// seven bucket days plus today, in one query.
func statsWindow(now time.Time) ([]tank.Sample, error) {
	start := tank.StartOfDay(now, config.App.DisplayZone).AddDate(0, 0, -7)

	var readings []models.Reading
	err := config.DB.
		Where("timestamp >= ? AND timestamp <= ?", start, now).
		Order("timestamp asc").
		Find(&readings).Error
	if err != nil {
		return nil, err
	}

	samples := make([]tank.Sample, 0, len(readings))
	for _, r := range readings {
		samples = append(samples, r.Sample())
	}
	return samples, nil
}

// GetDailyStats serves today's usage summary: consumption so far,
// trailing weekly average, last refill and last update times of day.
func GetDailyStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	samples, err := statsWindow(now)
	if err != nil {
		logger.Error("fetch daily stats window", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	summary := tank.BuildUsageSummary(samples, now, config.App.DisplayZone)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"daily_usage": summary.DailyUsage,
		"weekly_avg":  summary.WeeklyAvg,
		"last_refill": summary.LastRefill,
		"last_update": summary.LastUpdate,
	})
}

// GetWeeklyStats serves per-day statistics for the trailing seven
// calendar days, bucketed in the same configured zone as the daily
// summary. Days without readings are omitted.
func GetWeeklyStats(w http.ResponseWriter, r *http.Request) {
	now := time.Now().UTC()
	samples, err := statsWindow(now)
	if err != nil {
		logger.Error("fetch weekly stats window", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	stats := tank.DailyStats(samples, now, 7, config.App.DisplayZone)
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    stats,
	})
}
