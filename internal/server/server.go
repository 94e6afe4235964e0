package server

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/alexiusacademia/gosfd/internal/config"
	"github.com/alexiusacademia/gosfd/internal/report"
	"github.com/gorilla/mux"
	"golang.org/x/time/rate"
	"gonum.org/v1/plot/vg"
)

// Server exposes the calculator over HTTP
type Server struct {
	cfg     config.ServerConfig
	log     *slog.Logger
	handler http.Handler
}

// New wires the routes and middleware
func New(cfg config.Config, log *slog.Logger) *Server {
	h := &Handler{
		Log:        log,
		PlotWidth:  vg.Length(cfg.Plot.WidthIn) * vg.Inch,
		PlotHeight: vg.Length(cfg.Plot.HeightIn) * vg.Inch,
		ReportMeta: report.Meta{
			Project: cfg.Report.Project,
			Author:  cfg.Report.Author,
		},
	}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", h.Health).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()
	limiter := NewIPRateLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)
	api.Use(limiter.LimitMiddleware)

	api.HandleFunc("/calc", h.Calc).Methods("POST")
	api.HandleFunc("/diagram.png", h.Diagram).Methods("GET")
	api.HandleFunc("/report/pdf", h.Report).Methods("POST")
	api.HandleFunc("/export/xlsx", h.ExportXLSX).Methods("POST")
	api.HandleFunc("/batch", h.Batch).Methods("POST")

	return &Server{
		cfg:     cfg.Server,
		log:     log,
		handler: CORS(requestLogger(log, router)),
	}
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return err
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.log.Info("server.listening", "addr", ln.Addr().String())
		errc <- srv.Serve(ln)
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.log.Info("server.shutdown", "timeout", s.cfg.ShutdownTimeout.String())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	s.log.Info("server.stopped")
	return nil
}

// CORS allows browser front-ends on other origins
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(log *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("http.request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration", time.Since(start).String(),
		)
	})
}
