package main

import (
	"fmt"
	"os"
	"time"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marklab/wavecheck/internal/audio"
	"github.com/marklab/wavecheck/internal/cli"
	"github.com/marklab/wavecheck/internal/compare"
	"github.com/marklab/wavecheck/internal/logging"
	"github.com/marklab/wavecheck/internal/mains"
	"github.com/marklab/wavecheck/internal/plot"
	"github.com/marklab/wavecheck/internal/spectral"
	"github.com/marklab/wavecheck/internal/ui"
)

var (
	version = "0.1.0"
)

// CLI defines the command-line interface
type CLI struct {
	Version   bool    `short:"v" help:"Show version information"`
	Window    float64 `short:"w" default:"0.1" help:"Comparison window duration in seconds"`
	Output    string  `short:"o" type:"path" default:"test_waveform.png" help:"Output image path"`
	FullScale float64 `default:"32768" help:"Normalization divisor for raw samples"`
	Gain      float64 `default:"10" help:"Amplification of the difference panel"`
	Truncate  bool    `help:"Truncate to the shorter window when window lengths differ"`
	Logs      bool    `help:"Save a detailed comparison report"`
	Report    string  `enum:"txt,json" default:"txt" help:"Report file format (txt or json)"`

	Original    string `arg:"" name:"original" type:"existingfile" help:"Original audio file" optional:""`
	Watermarked string `arg:"" name:"watermarked" type:"existingfile" help:"Watermarked audio file" optional:""`
}

func main() {
	cliArgs := &CLI{}
	ctx := kong.Parse(cliArgs,
		kong.Name("wavecheck"),
		kong.Description("Audio watermark comparison diagnostic"),
		kong.UsageOnError(),
		kong.Vars{
			"version": version,
		},
		kong.Help(cli.StyledHelpPrinter(kong.HelpOptions{Compact: true})),
	)

	// Handle version flag
	if cliArgs.Version {
		cli.PrintVersion(version)
		os.Exit(0)
	}

	// Validate input
	if cliArgs.Original == "" || cliArgs.Watermarked == "" {
		cli.PrintError("Both an original and a watermarked audio file are required")
		ctx.PrintUsage(false)
		os.Exit(1)
	}

	// Create the Bubbletea UI model
	model := ui.NewModel(cliArgs.Original, cliArgs.Watermarked)
	p := tea.NewProgram(model)

	// Run the comparison pipeline in the background
	go runPipeline(p, cliArgs)

	finalModel, err := p.Run()
	if err != nil {
		cli.PrintError(fmt.Sprintf("UI error: %v", err))
		os.Exit(1)
	}
	if m, ok := finalModel.(ui.Model); ok && m.Err != nil {
		os.Exit(1)
	}
}

// runPipeline loads both files, runs the comparison, renders the figure
// and optionally writes a report, feeding progress to the UI.
func runPipeline(p *tea.Program, cliArgs *CLI) {
	startTime := time.Now()
	fail := func(err error) {
		p.Send(ui.PipelineDoneMsg{Err: err})
	}

	p.Send(ui.StageStartMsg{Stage: ui.StageLoadOriginal})
	original, origMeta, err := audio.ReadWAVFile(cliArgs.Original)
	if err != nil {
		fail(err)
		return
	}
	p.Send(ui.StageDoneMsg{Stage: ui.StageLoadOriginal, Detail: metaDetail(origMeta)})

	p.Send(ui.StageStartMsg{Stage: ui.StageLoadWatermarked})
	watermarked, wmMeta, err := audio.ReadWAVFile(cliArgs.Watermarked)
	if err != nil {
		fail(err)
		return
	}
	p.Send(ui.StageDoneMsg{Stage: ui.StageLoadWatermarked, Detail: metaDetail(wmMeta)})

	p.Send(ui.StageStartMsg{Stage: ui.StageCompare})
	report, err := compare.Compare(original, watermarked, compare.Options{
		WindowSeconds:      cliArgs.Window,
		FullScale:          cliArgs.FullScale,
		DifferenceGain:     cliArgs.Gain,
		OutputPath:         cliArgs.Output,
		TruncateOnMismatch: cliArgs.Truncate,
		Renderer: stagedRenderer{
			p:     p,
			inner: plot.WaveformRenderer{},
		},
	})
	if err != nil {
		fail(err)
		return
	}
	p.Send(ui.StageDoneMsg{Stage: ui.StageRender, Detail: report.ImagePath})

	residual := spectral.AnalyzeResidual(
		report.Difference.Samples, report.Difference.SampleRate, mains.Frequency())

	// Generate comparison report file if --logs flag is set
	var reportPath string
	if cliArgs.Logs {
		reportPath, err = logging.GenerateReport(logging.ReportData{
			OriginalPath:    cliArgs.Original,
			WatermarkedPath: cliArgs.Watermarked,
			StartTime:       startTime,
			EndTime:         time.Now(),
			OriginalMeta:    origMeta,
			WatermarkedMeta: wmMeta,
			Report:          report,
			Residual:        &residual,
		}, logging.Format(cliArgs.Report))
		if err != nil {
			fail(err)
			return
		}
	}

	p.Send(ui.PipelineDoneMsg{
		Report:     report,
		Residual:   &residual,
		ReportPath: reportPath,
	})
}

// stagedRenderer marks the comparison stage finished and the render
// stage started before delegating to the real renderer. Compare calls
// Render only after all statistics are computed, so the transition
// lands at the right moment.
type stagedRenderer struct {
	p     *tea.Program
	inner compare.Renderer
}

func (r stagedRenderer) Render(fig *compare.Figure) error {
	r.p.Send(ui.StageDoneMsg{Stage: ui.StageCompare})
	r.p.Send(ui.StageStartMsg{Stage: ui.StageRender})
	return r.inner.Render(fig)
}

func metaDetail(meta *audio.Metadata) string {
	return fmt.Sprintf("%d Hz, %d-bit, %.2fs", meta.SampleRate, meta.BitDepth, meta.Duration)
}
