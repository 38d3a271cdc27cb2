// Package httpapi is the local diagnostics HTTP surface: health, metrics,
// one-shot search and usage stats for operators poking at the plugin.
package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/everseek/everseek/internal/domain"
	"github.com/everseek/everseek/internal/metrics"
	healthuc "github.com/everseek/everseek/internal/usecase/health"
	statsuc "github.com/everseek/everseek/internal/usecase/stats"
)

// searcher ranks a raw query (ISP).
type searcher interface {
	Search(ctx context.Context, raw string) ([]domain.Match, error)
}

// healthChecker probes the backing services.
type healthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// statsReader reads the usage snapshot.
type statsReader interface {
	Report(ctx context.Context) (statsuc.Report, error)
}

// Server handles the diagnostics routes.
type Server struct {
	search searcher
	health healthChecker
	stats  statsReader
	logger *zap.Logger
}

// NewServer creates a diagnostics server.
func NewServer(search searcher, health healthChecker, stats statsReader, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{search: search, health: health, stats: stats, logger: logger}
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(jsonRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(s.logger))
	r.Use(metrics.Middleware())

	r.Get("/healthz", s.handleHealth)
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	r.Get("/v1/search", s.handleSearch)
	r.Get("/v1/stats", s.handleStats)
	return r
}

// searchResult is the wire shape of one ranked match.
type searchResult struct {
	Title    string  `json:"title"`
	SubTitle string  `json:"sub_title"`
	Path     string  `json:"path"`
	RunCount int64   `json:"run_count"`
	Rate     float64 `json:"rate"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.StatusError {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, report)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	matches, err := s.search.Search(r.Context(), q)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	items := make([]searchResult, 0, len(matches))
	for _, m := range matches {
		res := domain.ResultFromMatch(m)
		items = append(items, searchResult{
			Title:    res.Title,
			SubTitle: res.SubTitle,
			Path:     res.Path,
			RunCount: m.RunCount,
			Rate:     m.Rate,
		})
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	report, err := s.stats.Report(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrQueryTooShort):
		writeError(w, http.StatusBadRequest, "query_too_short", domain.ErrQueryTooShort.Error())
	case errors.Is(err, domain.ErrEngineUnavailable):
		s.logger.Warn("Engine unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "engine_unavailable", domain.ErrEngineUnavailable.Error())
	case errors.Is(err, domain.ErrEngineProtocol):
		s.logger.Error("Engine protocol error", zap.Error(err))
		writeError(w, http.StatusBadGateway, "engine_protocol_error", domain.ErrEngineProtocol.Error())
	default:
		s.logger.Error("Internal error", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, errorResponse{Code: code, Message: message})
}
