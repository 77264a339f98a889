package ui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// Shared view styles
var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#005F87"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Italic(true)

	doneIconStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#00AA00"))
	runningIconStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFA500"))
	queuedIconStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	errorIconStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#A40000"))

	summaryBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#005F87")).
			Padding(0, 1).
			Width(64)

	warnStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFA500"))
)

// renderRunningView renders the stage checklist while the pipeline runs
func renderRunningView(m Model) string {
	var b strings.Builder

	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")

	for s := Stage(0); s < stageCount; s++ {
		b.WriteString(renderStageEntry(s, m.Stages[s]))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(subtitleStyle.Render(fmt.Sprintf("Elapsed: %.1fs  (q to abort)", time.Since(m.StartTime).Seconds())))
	b.WriteString("\n")

	return b.String()
}

// renderHeader renders the application header
func renderHeader(m Model) string {
	title := headerStyle.Render("Wavecheck 🌊 - Audio Watermark Comparison")
	subtitle := subtitleStyle.Render(fmt.Sprintf("%s vs %s",
		filepath.Base(m.OriginalPath), filepath.Base(m.WatermarkedPath)))
	return title + "\n" + subtitle
}

// renderStageEntry renders one checklist line
func renderStageEntry(stage Stage, state stageState) string {
	switch state.Status {
	case StatusComplete:
		icon := doneIconStyle.Render("✓")
		if state.Detail != "" {
			return fmt.Sprintf(" %s %s — %s", icon, stage.Name(), state.Detail)
		}
		return fmt.Sprintf(" %s %s", icon, stage.Name())
	case StatusRunning:
		return fmt.Sprintf(" %s %s...", runningIconStyle.Render("⚙"), stage.Name())
	default:
		return fmt.Sprintf(" %s %s", queuedIconStyle.Render("○"), stage.Name())
	}
}

// renderSummary renders the final view after the pipeline finished
func renderSummary(m Model) string {
	if m.Err != nil {
		return fmt.Sprintf("%s\n\n %s %v\n",
			renderHeader(m), errorIconStyle.Render("✗"), m.Err)
	}

	var b strings.Builder
	b.WriteString(renderHeader(m))
	b.WriteString("\n\n")
	b.WriteString(doneIconStyle.Render("✓ Comparison complete"))
	b.WriteString("\n\n")

	r := m.Report
	var content strings.Builder
	fmt.Fprintf(&content, "Window:          first %gs (%d samples)\n", r.WindowSeconds, r.OriginalSamples)
	fmt.Fprintf(&content, "Max difference:  %s\n", formatAmplitude(r.MaxDifference))
	fmt.Fprintf(&content, "RMS difference:  %s\n", formatAmplitude(r.RMSDifference))
	fmt.Fprintf(&content, "PSNR:            %s\n", formatPSNR(r.PSNR))
	fmt.Fprintf(&content, "Mean |amplitude|: %.6f → %.6f", r.Original.MeanAbs, r.Watermarked.MeanAbs)
	if m.Residual != nil && m.Residual.DominantHz > 0 {
		fmt.Fprintf(&content, "\nResidual peak:   %.1f Hz (%.0f%% of spectrum)",
			m.Residual.DominantHz, m.Residual.DominantRatio*100)
	}
	b.WriteString(summaryBoxStyle.Render(content.String()))
	b.WriteString("\n")

	if m.Residual != nil && m.Residual.HumSuspected {
		b.WriteString("\n")
		b.WriteString(warnStyle.Render(fmt.Sprintf("⚠ Residual dominated by %d Hz mains hum - check the recording chain", m.Residual.MainsHz)))
		b.WriteString("\n")
	}

	if r.ImagePath != "" {
		fmt.Fprintf(&b, "\nFigure: %s\n", r.ImagePath)
	}
	if m.ReportPath != "" {
		fmt.Fprintf(&b, "Report: %s\n", m.ReportPath)
	}

	return b.String()
}

// formatAmplitude keeps tiny residuals readable
func formatAmplitude(v float64) string {
	if v != 0 && v < 0.0001 {
		return fmt.Sprintf("%.3e", v)
	}
	return fmt.Sprintf("%.6f", v)
}

// formatPSNR renders +Inf as the identical-window case
func formatPSNR(v float64) string {
	if math.IsInf(v, 1) {
		return "inf (windows identical)"
	}
	return fmt.Sprintf("%.2f dB", v)
}
