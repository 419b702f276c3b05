package tank

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// ErrInvalidFormat reports a distance that is not a number at all.
var ErrInvalidFormat = errors.New("distance must be a number")

// RangeError reports a numeric distance outside the physical bounds of
// the tank.
type RangeError struct {
	Min    float64
	Max    float64
	Actual float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("invalid distance value: %g. Must be between %g and %g cm", e.Actual, e.Min, e.Max)
}

// ParseDistance coerces the decoded JSON value of the "distance" field
// into a float64. Embedded clients send it as a number, the dashboard
// form sends a string.
func ParseDistance(v interface{}) (float64, error) {
	switch d := v.(type) {
	case float64:
		return d, nil
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return 0, ErrInvalidFormat
		}
		return f, nil
	case string:
		f, err := strconv.ParseFloat(d, 64)
		if err != nil {
			return 0, ErrInvalidFormat
		}
		return f, nil
	default:
		return 0, ErrInvalidFormat
	}
}

// ValidateDistance checks a distance against the closed interval
// [MinDistanceCM, MaxDistanceCM]. No side effects.
func ValidateDistance(d float64) error {
	if d < MinDistanceCM || d > MaxDistanceCM {
		return &RangeError{Min: MinDistanceCM, Max: MaxDistanceCM, Actual: d}
	}
	return nil
}
