package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/alexiusacademia/gosfd/internal/diagram"
	"github.com/alexiusacademia/gosfd/internal/export"
	"github.com/alexiusacademia/gosfd/internal/report"
	"gonum.org/v1/plot/vg"
)

// maxUpload bounds batch workbook uploads
const maxUpload = 10 << 20

// NumText accepts either a JSON string or a JSON number and keeps its text
type NumText string

func (n *NumText) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*n = NumText(s)
		return nil
	}
	if string(b) == "null" {
		*n = ""
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(b, &num); err != nil {
		return err
	}
	*n = NumText(num.String())
	return nil
}

// CalcRequest carries the three form inputs
type CalcRequest struct {
	Length   NumText `json:"length"`
	Load     NumText `json:"load"`
	Position NumText `json:"position"`

	// Report only
	Project string `json:"project,omitempty"`
	Author  string `json:"author,omitempty"`
}

// CalcResponse is the JSON form of a successful calculation
type CalcResponse struct {
	Grid      []float64 `json:"grid"`
	Shear     []float64 `json:"shear"`
	Moment    []float64 `json:"moment"`
	MaxShear  string    `json:"maxShear"`
	MaxMoment string    `json:"maxMoment"`
	Ra        float64   `json:"ra"`
	Rb        float64   `json:"rb"`
}

func newCalcResponse(res *beam.Result) CalcResponse {
	return CalcResponse{
		Grid:      res.Grid,
		Shear:     res.Series.Shear,
		Moment:    res.Series.Moment,
		MaxShear:  res.MaxShear,
		MaxMoment: res.MaxMoment,
		Ra:        res.Reactions.Ra,
		Rb:        res.Reactions.Rb,
	}
}

// BatchRow is one row of a batch response
type BatchRow struct {
	Row    int           `json:"row"`
	Result *CalcResponse `json:"result,omitempty"`
	Error  string        `json:"error,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler serves the calculator endpoints
type Handler struct {
	Log        *slog.Logger
	PlotWidth  vg.Length
	PlotHeight vg.Length
	ReportMeta report.Meta // defaults for report requests
}

func (h *Handler) compute(w http.ResponseWriter, length, load, position string) (*beam.Result, bool) {
	res, err := beam.Compute(length, load, position)
	if err != nil {
		var ie *beam.InputError
		if errors.As(err, &ie) {
			h.Log.Info("calc.invalid_input", "cause", ie.Cause())
		}
		writeError(w, http.StatusBadRequest, beam.InvalidInputMessage)
		return nil, false
	}
	h.Log.Debug("calc.completed",
		"length", res.Input.L, "load", res.Input.P, "position", res.Input.A,
		"max_shear", res.MaxShear, "max_moment", res.MaxMoment)
	return res, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (CalcRequest, bool) {
	var req CalcRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return req, false
	}
	return req, true
}

// Calc handles POST /api/calc
func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, ok := h.compute(w, string(req.Length), string(req.Load), string(req.Position))
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, newCalcResponse(res))
}

// Diagram handles GET /api/diagram.png
func (h *Handler) Diagram(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, ok := h.compute(w, q.Get("length"), q.Get("load"), q.Get("position"))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := diagram.WriteChart(&buf, "png", res.Grid, res.Series, h.PlotWidth, h.PlotHeight); err != nil {
		h.Log.Error("diagram.render_failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Diagram rendering error")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

// Report handles POST /api/report/pdf
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, ok := h.compute(w, string(req.Length), string(req.Load), string(req.Position))
	if !ok {
		return
	}

	meta := h.ReportMeta
	if req.Project != "" {
		meta.Project = req.Project
	}
	if req.Author != "" {
		meta.Author = req.Author
	}
	meta.Date = time.Now()

	var buf bytes.Buffer
	if err := report.WritePDF(&buf, res, meta); err != nil {
		h.Log.Error("report.failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sfd-bmd-report.pdf\"")
	w.Write(buf.Bytes())
}

// ExportXLSX handles POST /api/export/xlsx
func (h *Handler) ExportXLSX(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decode(w, r)
	if !ok {
		return
	}
	res, ok := h.compute(w, string(req.Length), string(req.Load), string(req.Position))
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, res); err != nil {
		h.Log.Error("export.failed", "err", err)
		writeError(w, http.StatusInternalServerError, "Export error")
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"sfd-bmd.xlsx\"")
	w.Write(buf.Bytes())
}

// Batch handles POST /api/batch with a multipart "file" workbook
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUpload)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File required")
		return
	}
	defer file.Close()

	outcomes, err := export.ReadBatch(file)
	if err != nil {
		h.Log.Info("batch.invalid_file", "err", err)
		writeError(w, http.StatusBadRequest, "Invalid file")
		return
	}

	rows := make([]BatchRow, 0, len(outcomes))
	for _, o := range outcomes {
		row := BatchRow{Row: o.Row, Error: o.Err}
		if o.Result != nil {
			cr := newCalcResponse(o.Result)
			row.Result = &cr
		}
		rows = append(rows, row)
	}
	h.Log.Debug("batch.completed", "rows", len(rows))
	writeJSON(w, http.StatusOK, struct {
		Count int        `json:"count"`
		Rows  []BatchRow `json:"rows"`
	}{len(rows), rows})
}

// Health handles GET /healthz
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
