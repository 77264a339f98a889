// Package compare implements windowed statistical comparison of an
// original audio buffer against a watermarked variant.
//
// The comparison normalizes both integer buffers to [-1, 1] amplitude,
// slices a common leading window, computes descriptive statistics over
// the window pair and their elementwise difference, and optionally hands
// the windowed signals to a Renderer for figure output. The computation
// is fail-fast: on any error nothing is rendered or written.
package compare

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/marklab/wavecheck/internal/audio"
)

// DefaultFullScale is the normalization divisor for 16-bit signed PCM.
const DefaultFullScale = 32768.0

// DefaultOutputPath is where the comparison figure is written unless the
// caller chooses otherwise.
const DefaultOutputPath = "test_waveform.png"

// Options controls a single comparison run.
type Options struct {
	// WindowSeconds is the leading window duration to compare. Must be
	// positive.
	WindowSeconds float64

	// FullScale is the normalization divisor applied to raw integer
	// samples. The default assumes 16-bit signed sources; callers with
	// other bit depths pass the matching full-scale value explicitly.
	FullScale float64

	// DifferenceGain scales the difference panel in the rendered figure.
	// It does not affect the reported statistics.
	DifferenceGain float64

	// OutputPath is the image file the Renderer writes. Overwritten if
	// it already exists.
	OutputPath string

	// TruncateOnMismatch shrinks both windows to the shorter length when
	// the per-buffer window sample counts differ (possible when the two
	// sample rates differ). When false, a mismatch is an error.
	TruncateOnMismatch bool

	// Renderer draws the comparison figure. A nil Renderer skips
	// rendering, leaving Report.ImagePath empty.
	Renderer Renderer
}

// DefaultOptions returns the options matching the reference diagnostic:
// first 0.1 s, 16-bit full scale, 10x amplified difference panel.
func DefaultOptions() Options {
	return Options{
		WindowSeconds:  0.1,
		FullScale:      DefaultFullScale,
		DifferenceGain: 10.0,
		OutputPath:     DefaultOutputPath,
	}
}

// Series is a normalized amplitude sequence with its time base.
type Series struct {
	Samples    []float64
	SampleRate int
}

// Figure describes the three-panel comparison image handed to a
// Renderer: original window, watermarked window, and their difference.
// The difference samples are unscaled; DifferenceGain is applied by the
// renderer so the reported statistics stay on the raw difference.
type Figure struct {
	Original       Series
	Watermarked    Series
	Difference     Series
	WindowSeconds  float64
	DifferenceGain float64
	OutputPath     string
}

// Renderer persists a comparison figure to an image file.
type Renderer interface {
	Render(fig *Figure) error
}

// WindowStats are per-buffer descriptive statistics over the window.
type WindowStats struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	MeanAbs float64 `json:"mean_abs"` // mean absolute amplitude
}

// Report is the immutable result of one comparison run.
type Report struct {
	Original    WindowStats `json:"original"`
	Watermarked WindowStats `json:"watermarked"`

	// MaxDifference is max(|watermarked - original|) over the window.
	MaxDifference float64 `json:"max_difference"`
	// RMSDifference is sqrt(mean((watermarked - original)^2)).
	RMSDifference float64 `json:"rms_difference"`
	// PSNR is the peak signal-to-noise ratio in dB relative to full
	// scale 1.0. +Inf when the windows are identical.
	PSNR float64 `json:"psnr_db"`

	WindowSeconds      float64 `json:"window_seconds"`
	OriginalSamples    int     `json:"original_samples"`    // window length, original
	WatermarkedSamples int     `json:"watermarked_samples"` // window length, watermarked
	Truncated          bool    `json:"truncated"`           // windows were shrunk to a common length

	// ImagePath is the rendered figure location, empty when rendering
	// was skipped.
	ImagePath string `json:"image_path,omitempty"`

	// Difference holds the raw difference window for further analysis
	// (e.g. spectral residual inspection). It shares the time base of
	// the original buffer.
	Difference Series `json:"-"`
}

// MarshalJSON encodes the report with a null PSNR when the windows are
// identical, since JSON has no representation for +Inf.
func (r *Report) MarshalJSON() ([]byte, error) {
	type alias Report
	out := struct {
		*alias
		PSNR *float64 `json:"psnr_db"`
	}{alias: (*alias)(r)}
	if !math.IsInf(r.PSNR, 0) && !math.IsNaN(r.PSNR) {
		out.PSNR = &r.PSNR
	}
	return json.Marshal(out)
}

// Compare produces a Report for an original buffer and its watermarked
// variant. The two buffers need not have equal total length; each must
// only cover the requested window. See Options for the mismatch policy
// when the per-buffer window lengths differ.
func Compare(original, watermarked audio.Buffer, opts Options) (*Report, error) {
	if opts.WindowSeconds <= 0 {
		return nil, fmt.Errorf("%w: window duration %g must be positive", ErrInvalidArgument, opts.WindowSeconds)
	}
	if opts.FullScale <= 0 {
		return nil, fmt.Errorf("%w: full scale %g must be positive", ErrInvalidArgument, opts.FullScale)
	}
	if opts.DifferenceGain <= 0 {
		return nil, fmt.Errorf("%w: difference gain %g must be positive", ErrInvalidArgument, opts.DifferenceGain)
	}
	if original.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: original sample rate %d must be positive", ErrInvalidArgument, original.SampleRate)
	}
	if watermarked.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: watermarked sample rate %d must be positive", ErrInvalidArgument, watermarked.SampleRate)
	}
	if len(original.Samples) == 0 || len(watermarked.Samples) == 0 {
		return nil, fmt.Errorf("%w: empty sample buffer", ErrInvalidArgument)
	}

	// Window length is computed per buffer, so the two windows can
	// disagree when the sample rates differ.
	origWindow, err := windowLength(original, opts.WindowSeconds, "original")
	if err != nil {
		return nil, err
	}
	wmWindow, err := windowLength(watermarked, opts.WindowSeconds, "watermarked")
	if err != nil {
		return nil, err
	}

	truncated := false
	if origWindow != wmWindow {
		if !opts.TruncateOnMismatch {
			return nil, fmt.Errorf("%w: original window %d samples, watermarked window %d samples",
				ErrWindowMismatch, origWindow, wmWindow)
		}
		common := min(origWindow, wmWindow)
		origWindow, wmWindow = common, common
		truncated = true
	}

	orig := normalize(original.Samples[:origWindow], opts.FullScale)
	wm := normalize(watermarked.Samples[:wmWindow], opts.FullScale)

	diff := make([]float64, len(orig))
	for i := range diff {
		diff[i] = wm[i] - orig[i]
	}

	report := &Report{
		Original:           windowStats(orig),
		Watermarked:        windowStats(wm),
		MaxDifference:      maxAbs(diff),
		RMSDifference:      rms(diff),
		PSNR:               psnr(diff),
		WindowSeconds:      opts.WindowSeconds,
		OriginalSamples:    origWindow,
		WatermarkedSamples: wmWindow,
		Truncated:          truncated,
		Difference:         Series{Samples: diff, SampleRate: original.SampleRate},
	}

	if opts.Renderer != nil {
		fig := &Figure{
			Original:       Series{Samples: orig, SampleRate: original.SampleRate},
			Watermarked:    Series{Samples: wm, SampleRate: watermarked.SampleRate},
			Difference:     report.Difference,
			WindowSeconds:  opts.WindowSeconds,
			DifferenceGain: opts.DifferenceGain,
			OutputPath:     opts.OutputPath,
		}
		if fig.OutputPath == "" {
			fig.OutputPath = DefaultOutputPath
		}
		if err := opts.Renderer.Render(fig); err != nil {
			return nil, fmt.Errorf("failed to render comparison figure: %w", err)
		}
		report.ImagePath = fig.OutputPath
	}

	return report, nil
}

// windowLength returns floor(seconds * rate) for the buffer, verifying
// the buffer actually covers it.
func windowLength(b audio.Buffer, seconds float64, label string) (int, error) {
	n := int(seconds * float64(b.SampleRate))
	if n == 0 {
		return 0, fmt.Errorf("%w: window of %gs holds no samples at %d Hz", ErrInvalidArgument, seconds, b.SampleRate)
	}
	if n > len(b.Samples) {
		return 0, fmt.Errorf("%w: %s buffer has %d samples, window needs %d",
			ErrInsufficientSamples, label, len(b.Samples), n)
	}
	return n, nil
}

// normalize converts raw integer samples to floating point amplitude by
// dividing by the full-scale value.
func normalize(samples []int, fullScale float64) []float64 {
	out := make([]float64, len(samples))
	for i, s := range samples {
		out[i] = float64(s) / fullScale
	}
	return out
}

func windowStats(window []float64) WindowStats {
	stats := WindowStats{Min: window[0], Max: window[0]}
	var sumAbs float64
	for _, v := range window {
		if v < stats.Min {
			stats.Min = v
		}
		if v > stats.Max {
			stats.Max = v
		}
		sumAbs += math.Abs(v)
	}
	stats.MeanAbs = sumAbs / float64(len(window))
	return stats
}

func maxAbs(values []float64) float64 {
	var m float64
	for _, v := range values {
		if a := math.Abs(v); a > m {
			m = a
		}
	}
	return m
}

func rms(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v * v
	}
	return math.Sqrt(sum / float64(len(values)))
}

// psnr computes peak signal-to-noise ratio in dB for a normalized
// difference signal, with full scale 1.0. Identical signals yield +Inf.
func psnr(diff []float64) float64 {
	var mse float64
	for _, v := range diff {
		mse += v * v
	}
	mse /= float64(len(diff))
	if mse == 0 {
		return math.Inf(1)
	}
	return 20 * math.Log10(1.0/math.Sqrt(mse))
}
