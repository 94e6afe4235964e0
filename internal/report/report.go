package report

import (
	"bytes"
	"fmt"
	"io"
	"time"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/alexiusacademia/gosfd/internal/diagram"
	"github.com/phpdave11/gofpdf"
	"gonum.org/v1/plot/vg"
)

// DefaultTitle is used when Meta.Title is empty
const DefaultTitle = "SFD & BMD Report"

// Meta describes the report header
type Meta struct {
	Title   string
	Project string
	Author  string
	Date    time.Time
}

// tableStride decimates the station table to about ten rows
const tableStride = 11

// WritePDF renders an A4 report for res
func WritePDF(w io.Writer, res *beam.Result, meta Meta) error {
	if meta.Title == "" {
		meta.Title = DefaultTitle
	}
	if meta.Date.IsZero() {
		meta.Date = time.Now()
	}

	var chart bytes.Buffer
	if err := diagram.WriteChart(&chart, "png", res.Grid, res.Series, 7*vg.Inch, 3.5*vg.Inch); err != nil {
		return fmt.Errorf("render chart: %w", err)
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(meta.Title, true)
	pdf.SetAuthor(meta.Author, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(meta.Title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Project: %s", meta.Project)))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Author: %s", meta.Author)))
	pdf.Ln(6)
	pdf.Cell(0, 6, fmt.Sprintf("Date: %s", meta.Date.Format("2006-01-02")))
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.MultiCell(0, 5, "Simply supported beam subjected to a single point load.", "", "L", false)
	pdf.Ln(2)

	section := func(title string) {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 8, title)
		pdf.Ln(8)
		pdf.SetFont("Helvetica", "", 11)
	}
	pair := func(label, value string) {
		pdf.CellFormat(80, 6, label, "1", 0, "L", false, 0, "")
		pdf.CellFormat(50, 6, value, "1", 1, "R", false, 0, "")
	}

	section("INPUT DATA")
	pair("Beam Length (L)", fmt.Sprintf("%.2f m", res.Input.L))
	pair("Point Load (P)", fmt.Sprintf("%.2f N", res.Input.P))
	pair("Load Position (a)", fmt.Sprintf("%.2f m", res.Input.A))
	pdf.Ln(4)

	section("SUPPORT REACTIONS")
	pair("Ra = P - Rb", fmt.Sprintf("%.2f N", res.Reactions.Ra))
	pair("Rb = P*a/L", fmt.Sprintf("%.2f N", res.Reactions.Rb))
	pdf.Ln(4)

	section("MAXIMUM READINGS")
	pair("Maximum Shear Force", res.MaxShear+" N")
	pair("Maximum Bending Moment", res.MaxMoment+" Nm")
	pdf.Ln(4)

	opts := gofpdf.ImageOptions{ImageType: "PNG", ReadDpi: true}
	pdf.RegisterImageOptionsReader("diagram", opts, &chart)
	pdf.ImageOptions("diagram", 10, pdf.GetY(), 190, 0, true, opts, 0, "")
	pdf.Ln(4)

	section("STATIONS")
	pdf.SetFont("Helvetica", "B", 10)
	for _, h := range []string{"x (m)", "V (N)", "M (Nm)"} {
		pdf.CellFormat(50, 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)
	pdf.SetFont("Helvetica", "", 10)
	for _, i := range stations(len(res.Grid)) {
		pdf.CellFormat(50, 6, fmt.Sprintf("%.3f", res.Grid[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", res.Series.Shear[i]), "1", 0, "R", false, 0, "")
		pdf.CellFormat(50, 6, fmt.Sprintf("%.2f", res.Series.Moment[i]), "1", 1, "R", false, 0, "")
	}

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(w)
}

// stations picks every tableStride-th index plus the last one
func stations(n int) []int {
	var idx []int
	for i := 0; i < n; i += tableStride {
		idx = append(idx, i)
	}
	if n > 0 && idx[len(idx)-1] != n-1 {
		idx = append(idx, n-1)
	}
	return idx
}
