package models

import (
	"errors"
	"testing"
	"time"
)

func TestApplyPatch(t *testing.T) {
	base := func() Settings {
		return DefaultSettings("tank-01", time.Now())
	}

	tests := []struct {
		name    string
		patch   map[string]interface{}
		check   func(t *testing.T, s Settings)
		wantErr error
	}{
		{
			name:  "recognized fields applied",
			patch: map[string]interface{}{"critical_threshold": float64(10), "warning_threshold": float64(30), "theme": "dark"},
			check: func(t *testing.T, s Settings) {
				if s.CriticalThreshold != 10 || s.WarningThreshold != 30 || s.Theme != "dark" {
					t.Errorf("patch not applied: %+v", s)
				}
			},
		},
		{
			name:  "unrecognized key ignored",
			patch: map[string]interface{}{"foo": float64(1)},
			check: func(t *testing.T, s Settings) {
				want := base()
				if s.CriticalThreshold != want.CriticalThreshold || s.Theme != want.Theme {
					t.Errorf("unrecognized key mutated settings: %+v", s)
				}
			},
		},
		{
			name:  "wrong-typed value ignored",
			patch: map[string]interface{}{"theme": float64(7), "show_weather": "yes"},
			check: func(t *testing.T, s Settings) {
				if s.Theme != "light" || !s.ShowWeather {
					t.Errorf("wrong-typed values applied: %+v", s)
				}
			},
		},
		{
			name:  "booleans applied",
			patch: map[string]interface{}{"show_weather": false, "show_predictions": false},
			check: func(t *testing.T, s Settings) {
				if s.ShowWeather || s.ShowPredictions {
					t.Errorf("booleans not applied: %+v", s)
				}
			},
		},
		{
			name:    "critical equal to warning rejected",
			patch:   map[string]interface{}{"critical_threshold": float64(40)},
			wantErr: ErrThresholdOrder,
		},
		{
			name:    "critical above warning rejected",
			patch:   map[string]interface{}{"critical_threshold": float64(60)},
			wantErr: ErrThresholdOrder,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := base()
			err := s.ApplyPatch(tt.patch)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ApplyPatch error = %v, want %v", err, tt.wantErr)
			}
			if tt.check != nil && err == nil {
				tt.check(t, s)
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	now := time.Now()
	s := DefaultSettings("tank-01", now)
	if s.CriticalThreshold != 20 || s.WarningThreshold != 40 {
		t.Errorf("default thresholds = %d/%d, want 20/40", s.CriticalThreshold, s.WarningThreshold)
	}
	if s.Theme != "light" || !s.ShowWeather || !s.ShowPredictions {
		t.Errorf("default display prefs wrong: %+v", s)
	}
	if !s.LastUpdate.Equal(now) {
		t.Errorf("LastUpdate = %v, want %v", s.LastUpdate, now)
	}
}
