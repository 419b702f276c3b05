package models

import (
	"encoding/json"
	"errors"
	"time"
)

// ErrThresholdOrder rejects settings where the critical threshold is
// not strictly below the warning threshold.
var ErrThresholdOrder = errors.New("critical_threshold must be below warning_threshold")

// Settings is the per-identity dashboard configuration. One row per
// user id; the single-device deployment always uses the same key.
type Settings struct {
	ID                uint      `gorm:"primaryKey"                                   json:"-"`
	UserID            string    `gorm:"column:user_id;size:50;uniqueIndex;not null"  json:"user_id"`
	CriticalThreshold int       `gorm:"column:critical_threshold;default:20"         json:"critical_threshold"`
	WarningThreshold  int       `gorm:"column:warning_threshold;default:40"          json:"warning_threshold"`
	Theme             string    `gorm:"column:theme;size:20;default:light"           json:"theme"`
	ShowWeather       bool      `gorm:"column:show_weather;default:true"             json:"show_weather"`
	ShowPredictions   bool      `gorm:"column:show_predictions;default:true"         json:"show_predictions"`
	LastUpdate        time.Time `gorm:"column:last_update"                           json:"-"`
}

// DefaultSettings returns the row lazily created on first access.
func DefaultSettings(userID string, now time.Time) Settings {
	return Settings{
		UserID:            userID,
		CriticalThreshold: 20,
		WarningThreshold:  40,
		Theme:             "light",
		ShowWeather:       true,
		ShowPredictions:   true,
		LastUpdate:        now,
	}
}

// ApplyPatch merges a decoded request body into the settings row.
// Only recognized keys are applied; unrecognized or wrong-typed keys
// are ignored rather than rejected. Threshold ordering is validated
// after the merge so a patch cannot leave the row inconsistent.
func (s *Settings) ApplyPatch(patch map[string]interface{}) error {
	for key, value := range patch {
		switch key {
		case "critical_threshold":
			if n, ok := asInt(value); ok {
				s.CriticalThreshold = n
			}
		case "warning_threshold":
			if n, ok := asInt(value); ok {
				s.WarningThreshold = n
			}
		case "theme":
			if t, ok := value.(string); ok {
				s.Theme = t
			}
		case "show_weather":
			if b, ok := value.(bool); ok {
				s.ShowWeather = b
			}
		case "show_predictions":
			if b, ok := value.(bool); ok {
				s.ShowPredictions = b
			}
		}
	}
	if s.CriticalThreshold >= s.WarningThreshold {
		return ErrThresholdOrder
	}
	return nil
}

// DisplayMap renders the settings row with last_update in the display
// zone.
func (s Settings) DisplayMap(loc *time.Location) map[string]interface{} {
	return map[string]interface{}{
		"user_id":            s.UserID,
		"critical_threshold": s.CriticalThreshold,
		"warning_threshold":  s.WarningThreshold,
		"theme":              s.Theme,
		"show_weather":       s.ShowWeather,
		"show_predictions":   s.ShowPredictions,
		"last_update":        s.LastUpdate.In(loc).Format("2006-01-02 15:04:05"),
	}
}

func asInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	default:
		return 0, false
	}
}
