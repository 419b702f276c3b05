package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"t9w.in/tankmon/config"
	"t9w.in/tankmon/models"
)

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// loadOrCreateSettings fetches the settings row for the configured
// identity, creating it with defaults on first access.
func loadOrCreateSettings(now time.Time) (models.Settings, error) {
	var settings models.Settings
	err := config.DB.Where("user_id = ?", config.App.SettingsKey).First(&settings).Error
	if err == nil {
		return settings, nil
	}
	if !notFound(err) {
		return settings, err
	}

	settings = models.DefaultSettings(config.App.SettingsKey, now)
	if err := config.DB.Create(&settings).Error; err != nil {
		return settings, err
	}
	return settings, nil
}

// GetSettings returns the settings row, lazily created with defaults.
func GetSettings(w http.ResponseWriter, r *http.Request) {
	settings, err := loadOrCreateSettings(time.Now().UTC())
	if err != nil {
		logger.Error("load settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, http.StatusOK, settings.DisplayMap(config.App.DisplayZone))
}

// UpdateSettings merges the request body into the stored settings.
// Unrecognized keys are ignored; last_update is stamped on every
// write regardless of which fields changed.
func UpdateSettings(w http.ResponseWriter, r *http.Request) {
	var patch map[string]interface{}
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	now := time.Now().UTC()
	settings, err := loadOrCreateSettings(now)
	if err != nil {
		logger.Error("load settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := settings.ApplyPatch(patch); err != nil {
		if errors.Is(err, models.ErrThresholdOrder) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		logger.Error("apply settings patch", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	settings.LastUpdate = now
	if err := config.DB.Save(&settings).Error; err != nil {
		logger.Error("save settings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Settings updated successfully",
		"data":    settings.DisplayMap(config.App.DisplayZone),
	})
}
