package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// RejectedReading is the audit row written when an ingestion request
// fails validation. The readings table keeps its invariant that every
// persisted distance is in bounds; rejected submissions land here with
// the raw request body instead.
type RejectedReading struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ReceivedAt time.Time      `gorm:"column:received_at;index;not null" json:"received_at"`
	Reason     string         `gorm:"column:reason;not null"            json:"reason"`
	Payload    datatypes.JSON `gorm:"column:payload;type:jsonb"         json:"payload"`
}
