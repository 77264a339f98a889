package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marklab/wavecheck/internal/audio"
	"github.com/marklab/wavecheck/internal/compare"
	"github.com/marklab/wavecheck/internal/spectral"
)

// Format selects the report file format.
type Format string

const (
	FormatText Format = "txt"
	FormatJSON Format = "json"
)

// ReportData bundles everything a comparison report needs.
type ReportData struct {
	OriginalPath    string
	WatermarkedPath string
	OutputDir       string // report directory; current directory when empty
	StartTime       time.Time
	EndTime         time.Time
	OriginalMeta    *audio.Metadata
	WatermarkedMeta *audio.Metadata
	Report          *compare.Report
	Residual        *spectral.Residual
}

// GenerateReport writes a comparison report file into OutputDir (the
// current directory by default) and returns its path. The filename
// carries the
// watermarked file's base name and a timestamp, so repeated runs never
// clobber earlier reports.
func GenerateReport(data ReportData, format Format) (string, error) {
	base := strings.TrimSuffix(filepath.Base(data.WatermarkedPath), filepath.Ext(data.WatermarkedPath))
	stamp := data.EndTime.Format("20060102-150405")

	var path, content string
	switch format {
	case FormatJSON:
		path = fmt.Sprintf("%s-wavecheck-%s.json", base, stamp)
		buf, err := json.MarshalIndent(jsonReport(data), "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode report: %w", err)
		}
		content = string(buf) + "\n"
	default:
		path = fmt.Sprintf("%s-wavecheck-%s.log", base, stamp)
		content = renderTextReport(data)
	}

	if data.OutputDir != "" {
		path = filepath.Join(data.OutputDir, path)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// jsonPayload mirrors the text report for machine consumption.
type jsonPayload struct {
	OriginalPath    string             `json:"original_path"`
	WatermarkedPath string             `json:"watermarked_path"`
	GeneratedAt     time.Time          `json:"generated_at"`
	ElapsedSeconds  float64            `json:"elapsed_seconds"`
	OriginalMeta    *audio.Metadata    `json:"original_metadata,omitempty"`
	WatermarkedMeta *audio.Metadata    `json:"watermarked_metadata,omitempty"`
	Comparison      *compare.Report    `json:"comparison"`
	Residual        *spectral.Residual `json:"residual,omitempty"`
}

func jsonReport(data ReportData) jsonPayload {
	return jsonPayload{
		OriginalPath:    data.OriginalPath,
		WatermarkedPath: data.WatermarkedPath,
		GeneratedAt:     data.EndTime,
		ElapsedSeconds:  data.EndTime.Sub(data.StartTime).Seconds(),
		OriginalMeta:    data.OriginalMeta,
		WatermarkedMeta: data.WatermarkedMeta,
		Comparison:      data.Report,
		Residual:        data.Residual,
	}
}

func renderTextReport(data ReportData) string {
	var sb strings.Builder
	divider := strings.Repeat("=", 70) + "\n"

	sb.WriteString(divider)
	sb.WriteString("WAVECHECK COMPARISON REPORT\n")
	sb.WriteString(divider)
	fmt.Fprintf(&sb, "Original:    %s\n", data.OriginalPath)
	fmt.Fprintf(&sb, "Watermarked: %s\n", data.WatermarkedPath)
	fmt.Fprintf(&sb, "Generated:   %s (%.2fs elapsed)\n",
		data.EndTime.Format(time.RFC3339), data.EndTime.Sub(data.StartTime).Seconds())
	sb.WriteString("\n")

	if data.OriginalMeta != nil && data.WatermarkedMeta != nil {
		sb.WriteString("FILES\n")
		files := &MetricTable{Headers: []string{"Original", "Watermarked", "Δ"}}
		files.AddComparisonRow("Duration", data.OriginalMeta.Duration, data.WatermarkedMeta.Duration, 3, "s", "")
		files.AddComparisonRow("Sample Rate", float64(data.OriginalMeta.SampleRate), float64(data.WatermarkedMeta.SampleRate), 0, "Hz", "")
		files.AddComparisonRow("Bit Depth", float64(data.OriginalMeta.BitDepth), float64(data.WatermarkedMeta.BitDepth), 0, "bit", "")
		sb.WriteString(files.String())
		sb.WriteString("\n")
	}

	r := data.Report
	fmt.Fprintf(&sb, "COMPARISON WINDOW (first %gs, %d samples", r.WindowSeconds, r.OriginalSamples)
	if r.Truncated {
		sb.WriteString(", truncated to common length")
	}
	sb.WriteString(")\n")

	amplitude := NewComparisonTable()
	amplitude.AddComparisonRow("Window Minimum", r.Original.Min, r.Watermarked.Min, 4, "", "")
	amplitude.AddComparisonRow("Window Maximum", r.Original.Max, r.Watermarked.Max, 4, "", "")
	amplitude.AddComparisonRow("Mean Absolute Amplitude", r.Original.MeanAbs, r.Watermarked.MeanAbs, 6, "", "")
	sb.WriteString(amplitude.String())
	sb.WriteString("\n")

	sb.WriteString("DIFFERENCE\n")
	diff := &MetricTable{Headers: []string{"Value"}}
	diff.AddRow("Max Absolute Difference", []string{formatMetric(r.MaxDifference, 6)}, "", interpretMaxDifference(r.MaxDifference))
	diff.AddRow("RMS Difference", []string{formatMetric(r.RMSDifference, 6)}, "", "")
	diff.AddRow("PSNR", []string{formatMetricPSNR(r.PSNR, 2)}, "dB", interpretPSNR(r.PSNR))
	sb.WriteString(diff.String())
	sb.WriteString("\n")

	if res := data.Residual; res != nil {
		sb.WriteString("RESIDUAL SPECTRUM\n")
		spec := &MetricTable{Headers: []string{"Value"}}
		spec.AddRow("Dominant Frequency", []string{formatMetric(res.DominantHz, 1)}, "Hz", "")
		spec.AddRow("Dominant Share", []string{formatMetric(res.DominantRatio, 3)}, "", interpretResidualShape(res))
		spec.AddRow("Local Mains Frequency", []string{fmt.Sprintf("%d", res.MainsHz)}, "Hz", "")
		sb.WriteString(spec.String())
		if res.HumSuspected {
			sb.WriteString("\nWARNING: dominant residual sits at the mains frequency - the\n")
			sb.WriteString("difference looks like hum picked up in the recording chain, not\n")
			sb.WriteString("an embedded watermark.\n")
		}
		sb.WriteString("\n")
	}

	if r.ImagePath != "" {
		fmt.Fprintf(&sb, "Figure: %s\n", r.ImagePath)
	}
	sb.WriteString(divider)
	return sb.String()
}

// =============================================================================
// Interpretation Helpers
// =============================================================================

// interpretMaxDifference describes the audibility of the peak residual
// amplitude. Thresholds are relative to full scale 1.0; a 16-bit LSB is
// about 3.1e-5.
func interpretMaxDifference(maxDiff float64) string {
	switch {
	case maxDiff == 0:
		return "windows are bit-identical"
	case maxDiff < 0.0001:
		return "within a few LSBs, inaudible"
	case maxDiff < 0.001:
		return "very small, inaudible"
	case maxDiff < 0.01:
		return "small, typically inaudible"
	case maxDiff < 0.1:
		return "moderate, may be audible"
	default:
		return "large, clearly audible"
	}
}

// interpretPSNR describes watermark transparency from the peak
// signal-to-noise ratio. Reference points follow common audio
// watermarking literature (>= 40 dB considered imperceptible).
func interpretPSNR(psnr float64) string {
	switch {
	case psnr >= 80:
		return "transparent"
	case psnr >= 60:
		return "excellent, imperceptible"
	case psnr >= 40:
		return "good, imperceptible in typical listening"
	case psnr >= 20:
		return "fair, possibly audible"
	default:
		return "poor, audible degradation"
	}
}

// interpretResidualShape describes whether the residual looks narrowband
// (a tone, likely an artifact) or broadband (consistent with a
// spread-spectrum watermark).
func interpretResidualShape(res *spectral.Residual) string {
	switch {
	case res.HumSuspected:
		return "narrowband at mains frequency, suspected hum"
	case res.DominantRatio >= 0.5:
		return "narrowband, tonal artifact"
	case res.DominantRatio >= 0.2:
		return "mixed, partially tonal"
	default:
		return "broadband, watermark-like"
	}
}
