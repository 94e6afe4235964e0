package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/xuri/excelize/v2"
)

const (
	diagramSheet = "Diagram"
	summarySheet = "Summary"
)

var stationHeader = []string{"x_m", "shear_n", "moment_nm"}

// WriteCSV writes one row per station
func WriteCSV(w io.Writer, res *beam.Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stationHeader); err != nil {
		return err
	}
	for i, x := range res.Grid {
		if err := cw.Write([]string{
			formatFloat(x),
			formatFloat(res.Series.Shear[i]),
			formatFloat(res.Series.Moment[i]),
		}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a workbook with the station table and a summary sheet
func WriteXLSX(w io.Writer, res *beam.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", diagramSheet); err != nil {
		return err
	}
	if err := f.SetSheetRow(diagramSheet, "A1", &[]interface{}{"x (m)", "Shear Force (N)", "Bending Moment (Nm)"}); err != nil {
		return err
	}
	for i, x := range res.Grid {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{x, res.Series.Shear[i], res.Series.Moment[i]}
		if err := f.SetSheetRow(diagramSheet, cell, &row); err != nil {
			return err
		}
	}

	if _, err := f.NewSheet(summarySheet); err != nil {
		return err
	}
	rows := [][]interface{}{
		{"Beam Length L (m)", res.Input.L},
		{"Point Load P (N)", res.Input.P},
		{"Load Position a (m)", res.Input.A},
		{"Reaction Ra (N)", res.Reactions.Ra},
		{"Reaction Rb (N)", res.Reactions.Rb},
		{"Maximum Shear Force (N)", res.MaxShear},
		{"Maximum Bending Moment (Nm)", res.MaxMoment},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BatchOutcome is the result of one spreadsheet row
type BatchOutcome struct {
	Row      int // 1-based sheet row
	Length   string
	Load     string
	Position string
	Result   *beam.Result
	Err      string
}

// ReadBatch reads length, load and position columns from the first sheet and
// computes every row. A leading header row and blank rows are skipped.
func ReadBatch(r io.Reader) ([]BatchOutcome, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}

	var out []BatchOutcome
	for i, row := range rows {
		cells := make([]string, 3)
		copy(cells, row)
		if cells[0] == "" && cells[1] == "" && cells[2] == "" {
			continue
		}
		if i == 0 && isHeader(cells) {
			continue
		}

		o := BatchOutcome{
			Row:      i + 1,
			Length:   cells[0],
			Load:     cells[1],
			Position: cells[2],
		}
		res, err := beam.Compute(cells[0], cells[1], cells[2])
		if err != nil {
			o.Err = err.Error()
		} else {
			o.Result = res
		}
		out = append(out, o)
	}
	return out, nil
}

func isHeader(cells []string) bool {
	for _, c := range cells {
		if _, err := strconv.ParseFloat(c, 64); err == nil {
			return false
		}
	}
	return true
}

// WriteBatchXLSX writes the outcomes as a results sheet
func WriteBatchXLSX(w io.Writer, outcomes []BatchOutcome) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Results"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}
	header := []interface{}{"Row", "L (m)", "P (N)", "a (m)", "Ra (N)", "Rb (N)", "Max Shear (N)", "Max Moment (Nm)", "Error"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	for i, o := range outcomes {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		var row []interface{}
		if o.Result != nil {
			row = []interface{}{
				o.Row, o.Result.Input.L, o.Result.Input.P, o.Result.Input.A,
				o.Result.Reactions.Ra, o.Result.Reactions.Rb,
				o.Result.MaxShear, o.Result.MaxMoment, "",
			}
		} else {
			row = []interface{}{o.Row, o.Length, o.Load, o.Position, "", "", "", "", o.Err}
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	return f.Write(w)
}
