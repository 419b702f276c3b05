package tank

import "time"

// Placeholder strings for an empty window, rendered as-is by the
// dashboard.
const (
	NoRefill = "No refill"
	NoUpdate = "No update"
)

// DailyStat summarizes one calendar day of readings.
type DailyStat struct {
	Date          string  `json:"date"`
	AvgLevel      float64 `json:"avg_level"`
	MaxLevel      float64 `json:"max_level"`
	MinLevel      float64 `json:"min_level"`
	Consumption   float64 `json:"consumption"`
	ReadingsCount int     `json:"readings_count"`
}

// UsageSummary is the payload of the daily stats endpoint.
type UsageSummary struct {
	DailyUsage float64 `json:"daily_usage"`
	WeeklyAvg  float64 `json:"weekly_avg"`
	LastRefill string  `json:"last_refill"`
	LastUpdate string  `json:"last_update"`
}

// ScanDeltas walks samples in ascending timestamp order. A level drop
// accumulates consumption, a rise above RefillEpsilon records a refill
// (only the most recent survives), a rise within the epsilon is sensor
// noise and records nothing. lastLevel advances unconditionally.
func ScanDeltas(samples []Sample) (consumption float64, lastRefill time.Time, refillSeen bool) {
	haveLast := false
	var lastLevel float64

	for _, s := range samples {
		if haveLast {
			switch {
			case s.Level < lastLevel:
				consumption += (lastLevel - s.Level) * LitersPerCM
			case s.Level > lastLevel+RefillEpsilon:
				lastRefill = s.Timestamp
				refillSeen = true
			}
		}
		lastLevel = s.Level
		haveLast = true
	}
	return consumption, lastRefill, refillSeen
}

// StartOfDay returns midnight of the day containing t in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// sliceWindow returns the samples with from <= Timestamp < to.
// Samples must be in ascending timestamp order.
func sliceWindow(samples []Sample, from, to time.Time) []Sample {
	lo := len(samples)
	for i, s := range samples {
		if !s.Timestamp.Before(from) {
			lo = i
			break
		}
	}
	hi := len(samples)
	for i := lo; i < len(samples); i++ {
		if !samples[i].Timestamp.Before(to) {
			hi = i
			break
		}
	}
	return samples[lo:hi]
}

// DailyStats buckets samples into the trailing `days` calendar days
// ending with the day containing now, in loc. The delta scan restarts
// at each day boundary, so a drop across midnight is invisible to both
// days; that limitation is accepted. Days without readings are omitted.
func DailyStats(samples []Sample, now time.Time, days int, loc *time.Location) []DailyStat {
	today := StartOfDay(now, loc)
	stats := make([]DailyStat, 0, days)

	for i := days - 1; i >= 0; i-- {
		dayStart := today.AddDate(0, 0, -i)
		dayEnd := dayStart.AddDate(0, 0, 1)
		day := sliceWindow(samples, dayStart, dayEnd)
		if len(day) == 0 {
			continue
		}

		sum, min, max := 0.0, day[0].Level, day[0].Level
		for _, s := range day {
			sum += s.Level
			if s.Level < min {
				min = s.Level
			}
			if s.Level > max {
				max = s.Level
			}
		}
		consumption, _, _ := ScanDeltas(day)

		stats = append(stats, DailyStat{
			Date:          dayStart.Format("2006-01-02"),
			AvgLevel:      Round2(sum / float64(len(day))),
			MaxLevel:      Round2(max),
			MinLevel:      Round2(min),
			Consumption:   Round2(consumption),
			ReadingsCount: len(day),
		})
	}
	return stats
}

// BuildUsageSummary computes today's usage, the trailing weekly
// average, and the last refill/update times of day. Samples must be
// ascending and cover at least [start of today - 7d, now] in loc.
// The weekly average always divides by exactly 7: days without
// readings contribute zero, they are not skipped.
func BuildUsageSummary(samples []Sample, now time.Time, loc *time.Location) UsageSummary {
	dayStart := StartOfDay(now, loc)

	today := sliceWindow(samples, dayStart, dayStart.AddDate(0, 0, 1))
	dailyUsage, refillAt, refillSeen := ScanDeltas(today)

	weekStart := dayStart.AddDate(0, 0, -7)
	var weekTotal float64
	for i := 0; i < 7; i++ {
		from := weekStart.AddDate(0, 0, i)
		to := from.AddDate(0, 0, 1)
		dayUsage, _, _ := ScanDeltas(sliceWindow(samples, from, to))
		weekTotal += dayUsage
	}

	summary := UsageSummary{
		DailyUsage: Round2(dailyUsage),
		WeeklyAvg:  Round2(weekTotal / 7),
		LastRefill: NoRefill,
		LastUpdate: NoUpdate,
	}
	if refillSeen {
		summary.LastRefill = refillAt.In(loc).Format("15:04")
	}
	if len(today) > 0 {
		summary.LastUpdate = today[len(today)-1].Timestamp.In(loc).Format("15:04")
	}
	return summary
}
