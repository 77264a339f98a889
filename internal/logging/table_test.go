package logging

import (
	"math"
	"strings"
	"testing"
)

func TestComparisonTableAlignment(t *testing.T) {
	table := NewComparisonTable()
	table.AddComparisonRow("Window Minimum", -0.5, -0.5021, 4, "", "")
	table.AddComparisonRow("Mean Absolute Amplitude", 0.25, 0.250763, 6, "", "")

	out := table.String()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("table has %d lines, want header + 2 rows", len(lines))
	}

	if !strings.Contains(lines[0], "Original") || !strings.Contains(lines[0], "Watermarked") || !strings.Contains(lines[0], "Δ") {
		t.Errorf("header row = %q, missing column names", lines[0])
	}
	if !strings.Contains(lines[1], "-0.5000") || !strings.Contains(lines[1], "-0.5021") {
		t.Errorf("row = %q, missing formatted values", lines[1])
	}
	// Delta is signed
	if !strings.Contains(lines[1], "-0.0021") {
		t.Errorf("row = %q, missing signed delta", lines[1])
	}
	if !strings.Contains(lines[2], "+0.000763") {
		t.Errorf("row = %q, missing signed positive delta", lines[2])
	}
}

func TestComparisonTableMissingValues(t *testing.T) {
	table := NewComparisonTable()
	table.AddComparisonRow("Duration", math.NaN(), 12.5, 3, "s", "")

	out := table.String()
	if !strings.Contains(out, MissingValue) {
		t.Errorf("table = %q, want %q placeholder for NaN", out, MissingValue)
	}
}

func TestComparisonTableInterpretationColumn(t *testing.T) {
	table := &MetricTable{Headers: []string{"Value"}}
	table.AddRow("PSNR", []string{"64.12"}, "dB", "excellent, imperceptible")

	out := table.String()
	if !strings.Contains(out, "Interpretation") {
		t.Errorf("table = %q, want interpretation header", out)
	}
	if !strings.Contains(out, "excellent, imperceptible") {
		t.Errorf("table = %q, want interpretation text", out)
	}

	// No interpretation column when no row carries one
	bare := NewComparisonTable()
	bare.AddComparisonRow("Window Maximum", 0.5, 0.5, 4, "", "")
	if strings.Contains(bare.String(), "Interpretation") {
		t.Error("interpretation header shown for table without interpretations")
	}
}

func TestEmptyTable(t *testing.T) {
	if out := (&MetricTable{Headers: []string{"Value"}}).String(); out != "" {
		t.Errorf("empty table renders %q, want empty string", out)
	}
}

func TestFormatMetric(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		decimals int
		want     string
	}{
		{"plain", 0.5, 4, "0.5000"},
		{"zero", 0, 6, "0.000000"},
		{"negative", -0.25, 2, "-0.25"},
		{"tiny uses scientific", 0.00003052, 6, "3.05e-05"},
		{"nan", math.NaN(), 2, MissingValue},
		{"inf", math.Inf(1), 2, MissingValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatMetric(tt.value, tt.decimals); got != tt.want {
				t.Errorf("formatMetric(%g, %d) = %q, want %q", tt.value, tt.decimals, got, tt.want)
			}
		})
	}
}

func TestFormatMetricSigned(t *testing.T) {
	if got := formatMetricSigned(0.0021, 4); got != "+0.0021" {
		t.Errorf("formatMetricSigned(0.0021) = %q, want +0.0021", got)
	}
	if got := formatMetricSigned(-0.0021, 4); got != "-0.0021" {
		t.Errorf("formatMetricSigned(-0.0021) = %q, want -0.0021", got)
	}
}

func TestFormatMetricPSNR(t *testing.T) {
	if got := formatMetricPSNR(math.Inf(1), 2); got != "inf" {
		t.Errorf("formatMetricPSNR(+Inf) = %q, want inf", got)
	}
	if got := formatMetricPSNR(64.123, 2); got != "64.12" {
		t.Errorf("formatMetricPSNR(64.123) = %q, want 64.12", got)
	}
}
