package tank

// Conversion is the derived state for one validated distance reading.
type Conversion struct {
	Level  float64 // percent full, [0, 100]
	Volume float64 // liters, >= 0
}

// Convert maps a validated distance to level and volume. The level
// normalizes the water column against the usable height; this is the
// canonical formula, applied everywhere including seeded demo data.
// Only call after ValidateDistance succeeds.
func Convert(distance float64) Conversion {
	usableHeight := MaxDistanceCM - MinDistanceCM
	level := ((MaxDistanceCM - distance) / usableHeight) * 100
	if level < 0 {
		level = 0
	} else if level > 100 {
		level = 100
	}

	waterHeight := MaxDistanceCM - distance
	volume := waterHeight * LitersPerCM
	if volume < 0 {
		volume = 0
	}

	return Conversion{Level: Round2(level), Volume: Round2(volume)}
}
