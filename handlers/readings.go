package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"t9w.in/tankmon/config"
	"t9w.in/tankmon/models"
	"t9w.in/tankmon/pkg/tank"
)

// UpdateWaterLevel ingests one sensor reading: validate, convert,
// persist. Invalid submissions get a 400 and an audit row; the
// readings table only ever holds in-bounds distances.
func UpdateWaterLevel(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Missing distance data")
		return
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(raw, &payload); err != nil || payload == nil {
		writeError(w, http.StatusBadRequest, "Missing distance data")
		return
	}
	value, ok := payload["distance"]
	if !ok {
		writeError(w, http.StatusBadRequest, "Missing distance data")
		return
	}

	distance, err := tank.ParseDistance(value)
	if err != nil {
		auditRejection(raw, "distance must be a number")
		writeError(w, http.StatusBadRequest, "Distance must be a number")
		return
	}

	if err := tank.ValidateDistance(distance); err != nil {
		logger.Warn("rejected out-of-range distance", zap.Float64("distance", distance))
		auditRejection(raw, err.Error())
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	c := tank.Convert(distance)
	reading := models.Reading{
		Timestamp:   time.Now().UTC(),
		Distance:    tank.Round2(distance),
		WaterLevel:  c.Level,
		WaterVolume: c.Volume,
		Status:      models.StatusValid,
	}
	if err := config.DB.Create(&reading).Error; err != nil {
		logger.Error("store reading", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    reading.DisplayMap(config.App.DisplayZone),
	})
}

// auditRejection keeps a trail of refused submissions. Best effort:
// a failed audit write must not change the 400 already owed to the
// caller.
func auditRejection(raw []byte, reason string) {
	row := models.RejectedReading{
		ReceivedAt: time.Now().UTC(),
		Reason:     reason,
		Payload:    datatypes.JSON(raw),
	}
	if err := config.DB.Create(&row).Error; err != nil {
		logger.Error("store rejected reading", zap.Error(err))
	}
}

// GetData returns ascending readings for the trailing N hours plus a
// payload checksum the client uses to detect truncation in transit.
func GetData(w http.ResponseWriter, r *http.Request) {
	hours := 24
	if h := r.URL.Query().Get("hours"); h != "" {
		parsed, err := strconv.Atoi(h)
		if err != nil || parsed <= 0 {
			writeError(w, http.StatusBadRequest, "hours must be a positive integer")
			return
		}
		hours = parsed
	}

	end := time.Now().UTC()
	start := end.Add(-time.Duration(hours) * time.Hour)

	var readings []models.Reading
	if err := config.DB.
		Where("timestamp >= ? AND timestamp <= ?", start, end).
		Order("timestamp asc").
		Find(&readings).Error; err != nil {
		logger.Error("fetch readings", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	data := make([]map[string]interface{}, 0, len(readings))
	for _, reading := range readings {
		data = append(data, reading.DisplayMap(config.App.DisplayZone))
	}

	checksum, err := tank.PayloadChecksum(data)
	if err != nil {
		logger.Error("checksum payload", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	logger.Info("serving readings", zap.Int("count", len(data)), zap.Int("hours", hours))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"data":     data,
		"checksum": checksum,
	})
}

// EraseData deletes every reading after verifying the shared erase
// secret against its bcrypt hash. A missing hash disables the endpoint
// outright. The delete is a single statement, all or nothing.
func EraseData(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success": false,
			"message": "Invalid password",
		})
		return
	}

	hash := config.App.EraseSecretHash
	if hash == "" || bcrypt.CompareHashAndPassword([]byte(hash), []byte(body.Password)) != nil {
		writeJSON(w, http.StatusForbidden, map[string]interface{}{
			"success": false,
			"message": "Invalid password",
		})
		return
	}

	result := config.DB.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&models.Reading{})
	if result.Error != nil {
		logger.Error("erase readings", zap.Error(result.Error))
		writeError(w, http.StatusInternalServerError, "Failed to erase data")
		return
	}

	logger.Info("all readings erased", zap.Int64("rows", result.RowsAffected))
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "All data erased successfully",
	})
}
