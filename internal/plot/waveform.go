// Package plot renders the three-panel waveform comparison figure.
package plot

import (
	"fmt"
	"image/color"
	"os"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/marklab/wavecheck/internal/compare"
)

const (
	renderDPI    = 150
	figureWidth  = 14 * vg.Inch
	figureHeight = 10 * vg.Inch
	lineWidth    = 0.5 // points
)

// Panel colors follow the reference figure: blue original, red
// watermarked, green difference.
var (
	originalColor    = color.RGBA{R: 0x1F, G: 0x4E, B: 0xD8, A: 0xB3}
	watermarkedColor = color.RGBA{R: 0xD8, G: 0x1F, B: 0x1F, A: 0xB3}
	differenceColor  = color.RGBA{R: 0x1F, G: 0x8C, B: 0x2E, A: 0xB3}
)

// WaveformRenderer draws comparison figures to PNG files at a fixed
// resolution. The zero value is ready to use.
type WaveformRenderer struct{}

type panel struct {
	title      string
	yLabel     string
	series     compare.Series
	gain       float64
	fixedRange bool // clamp y to [-1, 1]
}

// Render writes the figure as a PNG to fig.OutputPath, overwriting any
// existing file. The whole image is composed in memory first, so an
// earlier panel failure leaves no file behind.
func (WaveformRenderer) Render(fig *compare.Figure) error {
	panels := []panel{
		{
			title:      fmt.Sprintf("Original Audio Waveform (First %gs)", fig.WindowSeconds),
			yLabel:     "Amplitude",
			series:     fig.Original,
			gain:       1,
			fixedRange: true,
		},
		{
			title:      fmt.Sprintf("Watermarked Audio Waveform (First %gs)", fig.WindowSeconds),
			yLabel:     "Amplitude",
			series:     fig.Watermarked,
			gain:       1,
			fixedRange: true,
		},
		{
			title:  fmt.Sprintf("Difference (Watermark Signal, %gx Amplified)", fig.DifferenceGain),
			yLabel: "Amplitude Difference",
			series: fig.Difference,
			gain:   fig.DifferenceGain,
			// auto-scaled: the residual is orders of magnitude smaller
		},
	}

	colors := []color.Color{originalColor, watermarkedColor, differenceColor}
	plots := make([][]*plot.Plot, len(panels))
	for i, pn := range panels {
		p, err := buildPanel(pn, colors[i])
		if err != nil {
			return err
		}
		plots[i] = []*plot.Plot{p}
	}

	img := vgimg.NewWith(vgimg.UseWH(figureWidth, figureHeight), vgimg.UseDPI(renderDPI))
	canvases := plot.Align(plots, draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadY: vg.Millimeter * 4,
	}, draw.New(img))
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	f, err := os.Create(fig.OutputPath)
	if err != nil {
		return fmt.Errorf("failed to create figure file: %w", err)
	}
	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return f.Close()
}

// buildPanel plots one amplitude-vs-time series. The time axis uses the
// sample rate of that series, so panels keep their own time base.
func buildPanel(pn panel, c color.Color) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = pn.title
	p.X.Label.Text = "Time (seconds)"
	p.Y.Label.Text = pn.yLabel
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(pn.series.Samples))
	for i, v := range pn.series.Samples {
		pts[i].X = float64(i) / float64(pn.series.SampleRate)
		pts[i].Y = v * pn.gain
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to build %q panel: %w", pn.title, err)
	}
	line.LineStyle.Width = vg.Points(lineWidth)
	line.LineStyle.Color = c
	p.Add(line)

	if pn.fixedRange {
		p.Y.Min, p.Y.Max = -1.0, 1.0
	}
	return p, nil
}
