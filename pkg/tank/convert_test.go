package tank

import "testing"

func TestConvert(t *testing.T) {
	tests := []struct {
		name       string
		distance   float64
		wantLevel  float64
		wantVolume float64
	}{
		{"full tank", 9, 100, 1456},
		{"empty tank", 100, 0, 0},
		{"half height", 54.5, 50, 728},
		{"near full", 10, 98.9, 1440},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Convert(tt.distance)
			if c.Level != tt.wantLevel {
				t.Errorf("Convert(%g).Level = %g, want %g", tt.distance, c.Level, tt.wantLevel)
			}
			if c.Volume != tt.wantVolume {
				t.Errorf("Convert(%g).Volume = %g, want %g", tt.distance, c.Volume, tt.wantVolume)
			}
		})
	}
}

func TestConvertBounds(t *testing.T) {
	for d := MinDistanceCM; d <= MaxDistanceCM; d += 0.5 {
		c := Convert(d)
		if c.Level < 0 || c.Level > 100 {
			t.Fatalf("Convert(%g).Level = %g outside [0, 100]", d, c.Level)
		}
		if c.Volume < 0 {
			t.Fatalf("Convert(%g).Volume = %g negative", d, c.Volume)
		}
	}
}

func TestConvertMonotonic(t *testing.T) {
	// Closer water surface means a fuller tank.
	prev := Convert(MinDistanceCM).Level
	for d := MinDistanceCM + 1; d <= MaxDistanceCM; d++ {
		level := Convert(d).Level
		if level > prev {
			t.Fatalf("Convert(%g).Level = %g rose above Convert(%g).Level = %g", d, level, d-1, prev)
		}
		prev = level
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.006, 1.01},
		{1.004, 1.0},
		{-1.006, -1.01},
		{0, 0},
		{99.999, 100},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
