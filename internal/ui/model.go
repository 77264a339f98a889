// Package ui provides the Bubbletea terminal user interface for wavecheck
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/marklab/wavecheck/internal/compare"
	"github.com/marklab/wavecheck/internal/spectral"
)

// StageStatus represents the state of a single pipeline stage
type StageStatus int

const (
	StatusQueued StageStatus = iota
	StatusRunning
	StatusComplete
)

// stageState tracks one stage's progress and completion detail
type stageState struct {
	Status StageStatus
	Detail string
}

// Model is the Bubbletea model for the comparison UI
type Model struct {
	OriginalPath    string
	WatermarkedPath string

	Stages [stageCount]stageState

	// Final results
	Report     *compare.Report
	Residual   *spectral.Residual
	ReportPath string
	Err        error

	StartTime time.Time
	Done      bool

	// Channel for receiving progress updates from the pipeline
	ProgressChan chan tea.Msg

	// Terminal dimensions
	Width  int
	Height int
}

// NewModel creates a new UI model for one comparison run
func NewModel(originalPath, watermarkedPath string) Model {
	return Model{
		OriginalPath:    originalPath,
		WatermarkedPath: watermarkedPath,
		StartTime:       time.Now(),
		ProgressChan:    make(chan tea.Msg, 16),
	}
}

// Init initializes the model
func (m Model) Init() tea.Cmd {
	return waitForProgress(m.ProgressChan)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height

	case StageStartMsg:
		if msg.Stage < stageCount {
			m.Stages[msg.Stage].Status = StatusRunning
		}
		return m, waitForProgress(m.ProgressChan)

	case StageDoneMsg:
		if msg.Stage < stageCount {
			m.Stages[msg.Stage].Status = StatusComplete
			m.Stages[msg.Stage].Detail = msg.Detail
		}
		return m, waitForProgress(m.ProgressChan)

	case PipelineDoneMsg:
		m.Report = msg.Report
		m.Residual = msg.Residual
		m.ReportPath = msg.ReportPath
		m.Err = msg.Err
		m.Done = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the UI
func (m Model) View() string {
	if m.Done {
		return renderSummary(m)
	}
	return renderRunningView(m)
}

// waitForProgress creates a command that waits for pipeline messages
func waitForProgress(progressChan chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		return <-progressChan
	}
}
