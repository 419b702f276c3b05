package models

import (
	"time"

	"github.com/google/uuid"
	"t9w.in/tankmon/pkg/tank"
)

// StatusValid is the only status written today; the column exists so a
// future audit path can persist flagged rows without a migration.
const StatusValid = "valid"

// Reading is one accepted sensor sample. Rows are immutable once
// stored; the only delete path is the authenticated bulk erase.
type Reading struct {
	ID          uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Timestamp   time.Time `gorm:"column:timestamp;index:idx_readings_timestamp;not null" json:"timestamp"`
	Distance    float64   `gorm:"column:distance;not null"                       json:"distance"`
	WaterLevel  float64   `gorm:"column:water_level;not null"                    json:"water_level"`
	WaterVolume float64   `gorm:"column:water_volume;not null"                   json:"water_volume"`
	Status      string    `gorm:"column:status;size:20;not null;default:valid"   json:"status"`
}

// Sample projects the reading into the aggregation core's input type.
func (r Reading) Sample() tank.Sample {
	return tank.Sample{Timestamp: r.Timestamp, Level: r.WaterLevel}
}

// DisplayMap renders the reading for API payloads. Stored timestamps
// are UTC; display moves them into the configured zone. The map form
// keeps encoding/json's sorted-key output, which the payload checksum
// relies on.
func (r Reading) DisplayMap(loc *time.Location) map[string]interface{} {
	return map[string]interface{}{
		"id":           r.ID.String(),
		"timestamp":    r.Timestamp.In(loc).Format("2006-01-02 15:04:05"),
		"distance":     tank.Round2(r.Distance),
		"water_level":  tank.Round2(r.WaterLevel),
		"water_volume": tank.Round2(r.WaterVolume),
		"status":       r.Status,
	}
}
