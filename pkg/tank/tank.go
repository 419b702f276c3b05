// Package tank holds the domain core of the monitoring service:
// distance validation, level/volume conversion and the aggregation
// routines behind the stats endpoints. Everything here is pure; the
// handlers own all database and HTTP concerns.
package tank

import (
	"math"
	"time"
)

// Tank geometry and calibration for the reference deployment.
const (
	MinDistanceCM = 9.0   // sensor face to full water line
	MaxDistanceCM = 100.0 // sensor face to empty tank floor
	LitersPerCM   = 16.0  // tank cross-section
	RefillEpsilon = 1.0   // level points a rise must exceed to count as a refill
)

// Sample is one level observation as seen by the aggregation routines.
type Sample struct {
	Timestamp time.Time // UTC
	Level     float64   // percent full
}

// Round2 rounds to two decimals for storage and display. Internal
// arithmetic keeps full precision until this boundary.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
