// Package spectral inspects the frequency content of a difference
// signal between original and watermarked audio. Its purpose is to tell
// a broadband watermark residual apart from narrowband recording
// artifacts such as mains hum.
package spectral

import (
	"math"

	"gonum.org/v1/gonum/dsp/fourier"
)

// humToleranceHz is how close the dominant residual frequency must sit
// to the mains frequency (or its second harmonic) to count as hum.
const humToleranceHz = 2.0

// Residual summarizes the frequency content of a difference window.
type Residual struct {
	// DominantHz is the frequency bin with the largest magnitude,
	// excluding DC. Zero for an empty or silent residual.
	DominantHz float64 `json:"dominant_hz"`

	// DominantRatio is the dominant bin's share of the total spectral
	// magnitude, in [0, 1]. High values mean a narrowband residual.
	DominantRatio float64 `json:"dominant_ratio"`

	// MainsHz is the local mains frequency the hum check used (50/60).
	MainsHz int `json:"mains_hz"`

	// HumSuspected reports a dominant frequency within tolerance of the
	// mains frequency or its second harmonic. A hum-dominated residual
	// points at a recording artifact rather than an embedded watermark.
	HumSuspected bool `json:"hum_suspected"`
}

// AnalyzeResidual computes the magnitude spectrum of the difference
// window and checks its dominant component against the mains frequency.
// A Hann window is applied before the transform to limit leakage.
func AnalyzeResidual(diff []float64, sampleRate, mainsHz int) Residual {
	res := Residual{MainsHz: mainsHz}
	if len(diff) < 4 || sampleRate <= 0 {
		return res
	}

	windowed := make([]float64, len(diff))
	for i, v := range diff {
		windowed[i] = v * hann(i, len(diff))
	}

	fft := fourier.NewFFT(len(windowed))
	coeffs := fft.Coefficients(nil, windowed)

	var total float64
	var peakMag float64
	peakBin := -1
	for i, c := range coeffs {
		mag := math.Hypot(real(c), imag(c))
		if i == 0 {
			continue // skip DC
		}
		total += mag
		if mag > peakMag {
			peakMag = mag
			peakBin = i
		}
	}
	if peakBin < 0 || total == 0 {
		return res
	}

	res.DominantHz = fft.Freq(peakBin) * float64(sampleRate)
	res.DominantRatio = peakMag / total
	res.HumSuspected = nearMains(res.DominantHz, float64(mainsHz))
	return res
}

// nearMains reports whether hz falls within tolerance of the mains
// fundamental or its second harmonic.
func nearMains(hz, mains float64) bool {
	return math.Abs(hz-mains) <= humToleranceHz || math.Abs(hz-2*mains) <= humToleranceHz
}

func hann(i, n int) float64 {
	return 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
}
