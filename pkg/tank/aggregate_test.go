package tank

import (
	"testing"
	"time"
)

var testLoc = time.FixedZone("IST", 5*3600+1800)

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.ParseInLocation("2006-01-02 15:04", value, testLoc)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return ts.UTC()
}

func TestScanDeltas(t *testing.T) {
	base := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	mk := func(levels ...float64) []Sample {
		samples := make([]Sample, len(levels))
		for i, l := range levels {
			samples[i] = Sample{Timestamp: base.Add(time.Duration(i) * time.Hour), Level: l}
		}
		return samples
	}

	tests := []struct {
		name            string
		levels          []float64
		wantConsumption float64
		wantRefill      bool
	}{
		{"empty", nil, 0, false},
		{"single reading", []float64{50}, 0, false},
		{"steady drop", []float64{80, 70, 60}, 320, false},
		{"strictly increasing", []float64{10, 40, 90}, 0, true},
		{"noise rise within epsilon", []float64{50, 50.8}, 0, false},
		{"rise exactly epsilon", []float64{50, 51}, 0, false},
		{"drop then refill then drop", []float64{80, 60, 90, 85}, 400, true},
		{"flat", []float64{42, 42, 42}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			consumption, _, refillSeen := ScanDeltas(mk(tt.levels...))
			if consumption != tt.wantConsumption {
				t.Errorf("consumption = %g, want %g", consumption, tt.wantConsumption)
			}
			if refillSeen != tt.wantRefill {
				t.Errorf("refillSeen = %v, want %v", refillSeen, tt.wantRefill)
			}
			if consumption < 0 {
				t.Errorf("consumption went negative: %g", consumption)
			}
		})
	}
}

func TestScanDeltasRefillTimestamp(t *testing.T) {
	samples := []Sample{
		{Timestamp: at(t, "2025-03-10 08:00"), Level: 80},
		{Timestamp: at(t, "2025-03-10 09:00"), Level: 60},
		{Timestamp: at(t, "2025-03-10 10:00"), Level: 90}, // refill
		{Timestamp: at(t, "2025-03-10 11:00"), Level: 85},
		{Timestamp: at(t, "2025-03-10 12:00"), Level: 95}, // later refill wins
	}
	_, refillAt, seen := ScanDeltas(samples)
	if !seen {
		t.Fatal("expected a refill")
	}
	if want := at(t, "2025-03-10 12:00"); !refillAt.Equal(want) {
		t.Errorf("refillAt = %v, want %v", refillAt, want)
	}
}

func TestDailyStats(t *testing.T) {
	now := at(t, "2025-03-10 18:00")
	samples := []Sample{
		// two days ago: no readings (must be omitted)
		// yesterday
		{Timestamp: at(t, "2025-03-09 08:00"), Level: 90},
		{Timestamp: at(t, "2025-03-09 12:00"), Level: 70},
		{Timestamp: at(t, "2025-03-09 23:30"), Level: 60},
		// today: starts higher than yesterday ended; the cross-midnight
		// delta must not leak into either day
		{Timestamp: at(t, "2025-03-10 06:00"), Level: 80},
		{Timestamp: at(t, "2025-03-10 12:00"), Level: 75},
	}

	stats := DailyStats(samples, now, 7, testLoc)
	if len(stats) != 2 {
		t.Fatalf("got %d day buckets, want 2 (empty days omitted)", len(stats))
	}

	yesterday := stats[0]
	if yesterday.Date != "2025-03-09" {
		t.Errorf("stats[0].Date = %q, want 2025-03-09", yesterday.Date)
	}
	if yesterday.Consumption != 480 { // (90-70 + 70-60) * 16
		t.Errorf("yesterday consumption = %g, want 480", yesterday.Consumption)
	}
	if yesterday.AvgLevel != 73.33 || yesterday.MaxLevel != 90 || yesterday.MinLevel != 60 {
		t.Errorf("yesterday avg/max/min = %g/%g/%g, want 73.33/90/60",
			yesterday.AvgLevel, yesterday.MaxLevel, yesterday.MinLevel)
	}
	if yesterday.ReadingsCount != 3 {
		t.Errorf("yesterday count = %d, want 3", yesterday.ReadingsCount)
	}

	today := stats[1]
	if today.Date != "2025-03-10" {
		t.Errorf("stats[1].Date = %q, want 2025-03-10", today.Date)
	}
	if today.Consumption != 80 { // (80-75) * 16 only; scan reset at midnight
		t.Errorf("today consumption = %g, want 80", today.Consumption)
	}
}

func TestBuildUsageSummary(t *testing.T) {
	now := at(t, "2025-03-10 18:00")
	samples := []Sample{
		// three days ago: 160 liters
		{Timestamp: at(t, "2025-03-07 08:00"), Level: 60},
		{Timestamp: at(t, "2025-03-07 20:00"), Level: 50},
		// yesterday: 320 liters
		{Timestamp: at(t, "2025-03-09 08:00"), Level: 90},
		{Timestamp: at(t, "2025-03-09 20:00"), Level: 70},
		// today: drop, refill, drop
		{Timestamp: at(t, "2025-03-10 08:00"), Level: 80},
		{Timestamp: at(t, "2025-03-10 09:00"), Level: 60},
		{Timestamp: at(t, "2025-03-10 10:15"), Level: 90},
		{Timestamp: at(t, "2025-03-10 12:00"), Level: 85},
	}

	s := BuildUsageSummary(samples, now, testLoc)

	if s.DailyUsage != 400 {
		t.Errorf("DailyUsage = %g, want 400", s.DailyUsage)
	}
	// Weekly average covers the 7 days before today: (160 + 320) / 7.
	if want := Round2(480.0 / 7); s.WeeklyAvg != want {
		t.Errorf("WeeklyAvg = %g, want %g", s.WeeklyAvg, want)
	}
	if s.LastRefill != "10:15" {
		t.Errorf("LastRefill = %q, want 10:15", s.LastRefill)
	}
	if s.LastUpdate != "12:00" {
		t.Errorf("LastUpdate = %q, want 12:00", s.LastUpdate)
	}
}

func TestBuildUsageSummaryEmptyWindow(t *testing.T) {
	s := BuildUsageSummary(nil, at(t, "2025-03-10 18:00"), testLoc)
	if s.DailyUsage != 0 || s.WeeklyAvg != 0 {
		t.Errorf("empty window usage = %g/%g, want 0/0", s.DailyUsage, s.WeeklyAvg)
	}
	if s.LastRefill != NoRefill {
		t.Errorf("LastRefill = %q, want %q", s.LastRefill, NoRefill)
	}
	if s.LastUpdate != NoUpdate {
		t.Errorf("LastUpdate = %q, want %q", s.LastUpdate, NoUpdate)
	}
}

func TestBuildUsageSummaryDividesBySeven(t *testing.T) {
	// One active day out of seven still divides by 7, not by 1.
	now := at(t, "2025-03-10 18:00")
	samples := []Sample{
		{Timestamp: at(t, "2025-03-05 08:00"), Level: 90},
		{Timestamp: at(t, "2025-03-05 20:00"), Level: 20}, // 1120 liters
	}
	s := BuildUsageSummary(samples, now, testLoc)
	if want := Round2(1120.0 / 7); s.WeeklyAvg != want {
		t.Errorf("WeeklyAvg = %g, want %g", s.WeeklyAvg, want)
	}
}

func TestStartOfDay(t *testing.T) {
	// 2025-03-10 01:30 IST is still 2025-03-09 in UTC.
	ts := at(t, "2025-03-10 01:30")
	got := StartOfDay(ts, testLoc)
	want := time.Date(2025, 3, 10, 0, 0, 0, 0, testLoc)
	if !got.Equal(want) {
		t.Errorf("StartOfDay = %v, want %v", got, want)
	}
}
