package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alexiusacademia/gosfd/internal/beam"
	"github.com/alexiusacademia/gosfd/internal/config"
	"github.com/xuri/excelize/v2"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.Default()
	cfg.Server.RateLimit = 1000
	cfg.Server.RateBurst = 1000
	cfg.Plot.WidthIn = 4
	cfg.Plot.HeightIn = 3
	return New(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))
}

func do(t *testing.T, s *Server, method, target string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestCalcOK(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "POST", "/api/calc", strings.NewReader(`{"length":"10","load":"100","position":"5"}`), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp CalcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Grid) != beam.NumSamples || len(resp.Shear) != beam.NumSamples || len(resp.Moment) != beam.NumSamples {
		t.Fatalf("series lengths = %d/%d/%d", len(resp.Grid), len(resp.Shear), len(resp.Moment))
	}
	if resp.MaxShear != "50.00" || resp.MaxMoment != "247.47" {
		t.Fatalf("maxima = %s/%s", resp.MaxShear, resp.MaxMoment)
	}
	if resp.Ra != 50 || resp.Rb != 50 {
		t.Fatalf("reactions = %v/%v", resp.Ra, resp.Rb)
	}
}

func TestCalcAcceptsJSONNumbers(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "POST", "/api/calc", strings.NewReader(`{"length":8,"load":40,"position":8}`), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
}

func TestCalcInvalidInput(t *testing.T) {
	s := testServer(t)
	cases := []string{
		`{"length":"-5","load":"10","position":"2"}`,
		`{"length":"abc","load":"10","position":"2"}`,
		`{}`,
	}
	for _, body := range cases {
		rec := do(t, s, "POST", "/api/calc", strings.NewReader(body), "application/json")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: status = %d", body, rec.Code)
		}
		var e errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &e); err != nil {
			t.Fatal(err)
		}
		if e.Error != beam.InvalidInputMessage {
			t.Fatalf("%s: error = %q", body, e.Error)
		}
	}
}

func TestCalcBadPayload(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "POST", "/api/calc", strings.NewReader(`{"length":true}`), "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), beam.InvalidInputMessage) {
		t.Fatal("malformed JSON should not be reported as invalid beam input")
	}
}

func TestDiagramPNG(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "GET", "/api/diagram.png?length=10&load=100&position=5", nil, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get("Content-Type") != "image/png" {
		t.Fatalf("content type = %q", rec.Header().Get("Content-Type"))
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
		t.Fatal("body is not a PNG")
	}

	rec = do(t, s, "GET", "/api/diagram.png?length=10&load=100&position=11", nil, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d for invalid input", rec.Code)
	}
}

func TestReportPDF(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "POST", "/api/report/pdf",
		strings.NewReader(`{"length":"10","load":"100","position":"5","project":"Test"}`), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")) {
		t.Fatal("body is not a PDF")
	}
}

func TestExportXLSX(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "POST", "/api/export/xlsx",
		strings.NewReader(`{"length":"10","load":"100","position":"5"}`), "application/json")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	f, err := excelize.OpenReader(rec.Body)
	if err != nil {
		t.Fatalf("not a workbook: %v", err)
	}
	f.Close()
}

func TestBatch(t *testing.T) {
	wb := excelize.NewFile()
	for i, row := range [][]interface{}{{"L", "P", "a"}, {10, 100, 5}, {0, 1, 1}} {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := wb.SetSheetRow("Sheet1", cell, &row); err != nil {
			t.Fatal(err)
		}
	}
	var xlsx bytes.Buffer
	if err := wb.Write(&xlsx); err != nil {
		t.Fatal(err)
	}
	wb.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "beams.xlsx")
	if err != nil {
		t.Fatal(err)
	}
	fw.Write(xlsx.Bytes())
	mw.Close()

	s := testServer(t)
	rec := do(t, s, "POST", "/api/batch", &body, mw.FormDataContentType())
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Count int        `json:"count"`
		Rows  []BatchRow `json:"rows"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Count != 2 {
		t.Fatalf("count = %d", resp.Count)
	}
	if resp.Rows[0].Result == nil || resp.Rows[0].Result.MaxShear != "50.00" {
		t.Fatalf("row 0 = %+v", resp.Rows[0])
	}
	if resp.Rows[1].Error != beam.InvalidInputMessage {
		t.Fatalf("row 1 = %+v", resp.Rows[1])
	}
}

func TestBatchRequiresFile(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "POST", "/api/batch", strings.NewReader(""), "application/json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestCORSPreflight(t *testing.T) {
	s := testServer(t)
	rec := do(t, s, "OPTIONS", "/api/calc", nil, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatal("missing CORS header")
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Server.RateLimit = 0.001
	cfg.Server.RateBurst = 2
	s := New(cfg, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	var last int
	for i := 0; i < 3; i++ {
		rec := do(t, s, "POST", "/api/calc", strings.NewReader(`{"length":"10","load":"100","position":"5"}`), "application/json")
		last = rec.Code
	}
	if last != http.StatusTooManyRequests {
		t.Fatalf("third request status = %d, want 429", last)
	}

	// health checks are not limited
	if rec := do(t, s, "GET", "/healthz", nil, ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz status = %d", rec.Code)
	}
}

func TestServeShutsDownOnCancel(t *testing.T) {
	s := testServer(t)
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
