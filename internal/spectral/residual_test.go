package spectral

import (
	"math"
	"testing"
)

// sine generates n samples of a pure tone at freq Hz.
func sine(freq float64, sampleRate, n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / float64(sampleRate))
	}
	return out
}

func TestAnalyzeResidualDetectsHum(t *testing.T) {
	tests := []struct {
		name    string
		freq    float64
		mainsHz int
		wantHum bool
	}{
		// 800 samples at 8 kHz gives 10 Hz bin resolution, so these
		// tones land exactly on a bin.
		{"50Hz hum on 50Hz mains", 50, 50, true},
		{"100Hz harmonic on 50Hz mains", 100, 50, true},
		{"60Hz hum on 60Hz mains", 60, 60, true},
		{"120Hz harmonic on 60Hz mains", 120, 60, true},
		{"50Hz tone on 60Hz mains", 50, 60, false},
		{"440Hz tone on 50Hz mains", 440, 50, false},
		{"1kHz tone on 60Hz mains", 1000, 60, false},
	}

	const sampleRate = 8000
	const n = 800

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AnalyzeResidual(sine(tt.freq, sampleRate, n), sampleRate, tt.mainsHz)

			if math.Abs(res.DominantHz-tt.freq) > 10 {
				t.Errorf("DominantHz = %.1f, want ~%.1f", res.DominantHz, tt.freq)
			}
			if res.HumSuspected != tt.wantHum {
				t.Errorf("HumSuspected = %v, want %v", res.HumSuspected, tt.wantHum)
			}
			if res.MainsHz != tt.mainsHz {
				t.Errorf("MainsHz = %d, want %d", res.MainsHz, tt.mainsHz)
			}
		})
	}
}

func TestAnalyzeResidualPureToneIsNarrowband(t *testing.T) {
	res := AnalyzeResidual(sine(440, 8000, 800), 8000, 50)
	// A pure on-bin tone concentrates most magnitude in one bin; Hann
	// windowing spreads some energy into neighbours.
	if res.DominantRatio < 0.3 {
		t.Errorf("DominantRatio = %.3f for pure tone, want > 0.3", res.DominantRatio)
	}
}

func TestAnalyzeResidualSilence(t *testing.T) {
	res := AnalyzeResidual(make([]float64, 800), 8000, 50)
	if res.DominantHz != 0 || res.HumSuspected {
		t.Errorf("silent residual = %+v, want zero dominant and no hum", res)
	}
}

func TestAnalyzeResidualDegenerateInput(t *testing.T) {
	tests := []struct {
		name       string
		diff       []float64
		sampleRate int
	}{
		{"empty", nil, 8000},
		{"too short", []float64{0.1, -0.1}, 8000},
		{"zero rate", make([]float64, 800), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := AnalyzeResidual(tt.diff, tt.sampleRate, 50)
			if res.DominantHz != 0 || res.HumSuspected {
				t.Errorf("AnalyzeResidual(%s) = %+v, want empty result", tt.name, res)
			}
		})
	}
}
