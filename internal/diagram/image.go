package diagram

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	shearColor  = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	shearFill   = color.RGBA{R: 0, G: 0, B: 255, A: 77}
	momentColor = color.RGBA{R: 255, G: 0, B: 0, A: 255}
	momentFill  = color.RGBA{R: 255, G: 0, B: 0, A: 77}
)

// ImageRenderer exports the diagrams to an image file
type ImageRenderer struct {
	Filename string
	Width    vg.Length
	Height   vg.Length
}

// NewImageRenderer creates a renderer with the given page size in inches
func NewImageRenderer(filename string, widthIn, heightIn float64) *ImageRenderer {
	return &ImageRenderer{
		Filename: filename,
		Width:    vg.Length(widthIn) * vg.Inch,
		Height:   vg.Length(heightIn) * vg.Inch,
	}
}

// Render saves the chart to r.Filename
func (r *ImageRenderer) Render(grid beam.Grid, series beam.Series) error {
	p, err := NewDiagramPlot(grid, series)
	if err != nil {
		return err
	}
	return SavePlot(p, r.Filename, r.Width, r.Height)
}

// NewDiagramPlot builds the combined shear force and bending moment chart
func NewDiagramPlot(grid beam.Grid, series beam.Series) (*plot.Plot, error) {
	if len(grid) == 0 {
		return nil, fmt.Errorf("empty diagram")
	}
	if len(series.Shear) != len(grid) || len(series.Moment) != len(grid) {
		return nil, fmt.Errorf("series length mismatch: grid=%d, shear=%d, moment=%d",
			len(grid), len(series.Shear), len(series.Moment))
	}

	p := plot.New()
	p.Title.Text = "Shear Force & Bending Moment Graphs"
	p.X.Label.Text = "Beam Length (m)"
	p.Y.Label.Text = "Force (N) / Moment (Nm)"
	p.Legend.Top = true
	p.Add(plotter.NewGrid())

	shearPts := make(plotter.XYs, len(grid))
	momentPts := make(plotter.XYs, len(grid))
	for i, x := range grid {
		shearPts[i] = plotter.XY{X: x, Y: series.Shear[i]}
		momentPts[i] = plotter.XY{X: x, Y: series.Moment[i]}
	}

	shearLine, err := plotter.NewLine(shearPts)
	if err != nil {
		return nil, err
	}
	shearLine.LineStyle.Width = vg.Points(3)
	shearLine.LineStyle.Color = shearColor
	shearLine.FillColor = shearFill

	momentLine, err := plotter.NewLine(momentPts)
	if err != nil {
		return nil, err
	}
	momentLine.LineStyle.Width = vg.Points(3)
	momentLine.LineStyle.Color = momentColor
	momentLine.FillColor = momentFill

	// Zero reference line
	zeroLine, err := plotter.NewLine(plotter.XYs{
		{X: grid[0], Y: 0},
		{X: grid[len(grid)-1], Y: 0},
	})
	if err != nil {
		return nil, err
	}
	zeroLine.LineStyle.Width = vg.Points(1)
	zeroLine.LineStyle.Color = color.Gray{Y: 128}
	zeroLine.LineStyle.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}

	p.Add(zeroLine, shearLine, momentLine)
	p.Legend.Add("Shear Force (N)", shearLine)
	p.Legend.Add("Bending Moment (Nm)", momentLine)

	return p, nil
}

// SavePlot writes the plot to filename. The format follows the extension
// (png, svg, pdf); anything else is saved as png with the extension appended.
func SavePlot(p *plot.Plot, filename string, width, height vg.Length) error {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return p.Save(width, height, filename)
	default:
		return p.Save(width, height, filename+".png")
	}
}

// OutputPath returns the file name SavePlot actually writes to
func OutputPath(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
		return filename
	default:
		return filename + ".png"
	}
}

// WriteChart streams the chart to w in the given format (png, svg, pdf)
func WriteChart(w io.Writer, format string, grid beam.Grid, series beam.Series, width, height vg.Length) error {
	p, err := NewDiagramPlot(grid, series)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
