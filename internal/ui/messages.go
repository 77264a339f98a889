package ui

import (
	"github.com/marklab/wavecheck/internal/compare"
	"github.com/marklab/wavecheck/internal/spectral"
)

// Stage identifies one step of the comparison pipeline.
type Stage int

const (
	StageLoadOriginal Stage = iota
	StageLoadWatermarked
	StageCompare
	StageRender
	stageCount
)

// Name returns the display name of the stage.
func (s Stage) Name() string {
	switch s {
	case StageLoadOriginal:
		return "Loading original audio"
	case StageLoadWatermarked:
		return "Loading watermarked audio"
	case StageCompare:
		return "Comparing windows"
	case StageRender:
		return "Rendering figure"
	default:
		return "Unknown"
	}
}

// StageStartMsg indicates a pipeline stage has begun
type StageStartMsg struct {
	Stage Stage
}

// StageDoneMsg indicates a pipeline stage finished, with an optional
// one-line detail shown next to the stage (e.g. "8000 Hz, 33.50s")
type StageDoneMsg struct {
	Stage  Stage
	Detail string
}

// PipelineDoneMsg carries the final result (or failure) of the run
type PipelineDoneMsg struct {
	Report     *compare.Report
	Residual   *spectral.Residual
	ReportPath string
	Err        error
}
