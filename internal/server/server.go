package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/atishaysehgal/ff/internal/api/sleeper"
	"github.com/atishaysehgal/ff/internal/config"
	"github.com/atishaysehgal/ff/internal/models"
)

// Analyzer is the part of the analytics service exposed over HTTP.
type Analyzer interface {
	DefaultLeagueID() string
	GetLeagueInfo(ctx context.Context, leagueID string) (*models.LeagueInfo, error)
	AnalyzeLeague(ctx context.Context, leagueID string) (*models.LeagueReport, error)
}

type Handler struct {
	analyzer Analyzer
}

func NewHandler(analyzer Analyzer) *Handler {
	return &Handler{analyzer: analyzer}
}

// NewRouter wires the middleware stack and routes.
func NewRouter(cfg config.HTTP, analyzer Analyzer) http.Handler {
	h := NewHandler(analyzer)

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(cfg.RequestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)
	r.Get("/league/{leagueID}", h.GetLeague)
	r.Post("/analyze", h.Analyze)

	return r
}

func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC(),
	})
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	leagueID := chi.URLParam(r, "leagueID")

	info, err := h.analyzer.GetLeagueInfo(r.Context(), leagueID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

// Analyze runs the full season analysis. The league comes from the
// league_id form field, falling back to the configured league.
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	leagueID := strings.TrimSpace(r.FormValue("league_id"))
	if leagueID == "" {
		leagueID = h.analyzer.DefaultLeagueID()
	}

	report, err := h.analyzer.AnalyzeLeague(r.Context(), leagueID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

func respondError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, sleeper.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, sleeper.ErrCircuitOpen):
		status = http.StatusServiceUnavailable
	}

	slog.Error("Request failed", "status", status, "error", err)
	respondJSON(w, status, map[string]string{"detail": err.Error()})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		slog.Info("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}
