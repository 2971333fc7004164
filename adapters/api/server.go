package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gostop/adapters/report"
	"gostop/app"
	"gostop/domain/core"
	"gostop/domain/stopping"
	"gostop/internal/config"
	"gostop/ports"
)

// Server exposes the sweep engine over HTTP. It produces plain JSON (and a
// rendered HTML report); chart rendering stays with the consumer.
type Server struct {
	router    *chi.Mux
	sweeps    *app.SweepService
	estimator ports.EstimatorPort
	repo      ports.SweepRepository // optional; nil disables the sweeps listing
	defaults  config.SimulationConfig
}

// NewServer creates the HTTP server around the sweep service. repo may be
// nil when persistence is disabled.
func NewServer(sweeps *app.SweepService, estimator ports.EstimatorPort, repo ports.SweepRepository, defaults config.SimulationConfig) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		sweeps:    sweeps,
		estimator: estimator,
		repo:      repo,
		defaults:  defaults,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)

	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/sweep", s.handleSweep)
	s.router.Get("/api/sweep/report", s.handleSweepReport)
	s.router.Get("/api/estimate", s.handleEstimate)
	s.router.Get("/api/sweeps", s.handleListSweeps)
	s.router.Get("/api/sweeps/{id}", s.handleGetSweep)

	return s
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleSweep(w http.ResponseWriter, r *http.Request) {
	req, err := s.sweepRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.sweeps.Run(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleSweepReport(w http.ResponseWriter, r *http.Request) {
	req, err := s.sweepRequest(r)
	if err != nil {
		writeError(w, err)
		return
	}

	result, err := s.sweeps.Run(r.Context(), req)
	if err != nil {
		writeError(w, err)
		return
	}

	page, err := report.HTML(result)
	if err != nil {
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	w.Write(page)
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	n, err := intParam(r, "n", s.defaults.DefaultN)
	if err != nil {
		writeError(w, err)
		return
	}
	skip, err := intParam(r, "skip", stopping.TheoreticalOptimalSkip(n))
	if err != nil {
		writeError(w, err)
		return
	}
	trials, err := intParam(r, "trials", s.defaults.DefaultTrials)
	if err != nil {
		writeError(w, err)
		return
	}
	seed, err := int64Param(r, "seed", s.defaults.BaseSeed)
	if err != nil {
		writeError(w, err)
		return
	}

	est, err := s.estimator.EstimateSuccessRate(r.Context(), stopping.Params{N: n, Skip: skip}, trials, seed)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"n":        n,
		"skip":     skip,
		"seed":     seed,
		"estimate": est,
	})
}

func (s *Server) handleGetSweep(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{
			Error: "sweep persistence is disabled",
			Code:  "PERSISTENCE_DISABLED",
		})
		return
	}

	id, err := core.ParseSweepID(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Code: "INVALID_PARAMETER"})
		return
	}

	record, err := s.repo.GetSweep(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleListSweeps(w http.ResponseWriter, r *http.Request) {
	if s.repo == nil {
		writeJSON(w, http.StatusNotImplemented, errorResponse{
			Error: "sweep persistence is disabled",
			Code:  "PERSISTENCE_DISABLED",
		})
		return
	}

	limit, err := intParam(r, "limit", 20)
	if err != nil {
		writeError(w, err)
		return
	}
	offset, err := intParam(r, "offset", 0)
	if err != nil {
		writeError(w, err)
		return
	}

	records, err := s.repo.ListSweeps(r.Context(), limit, offset)
	if err != nil {
		writeError(w, err)
		return
	}
	if records == nil {
		records = []*ports.SweepRecord{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) sweepRequest(r *http.Request) (app.SweepRequest, error) {
	n, err := intParam(r, "n", s.defaults.DefaultN)
	if err != nil {
		return app.SweepRequest{}, err
	}
	trials, err := intParam(r, "trials", s.defaults.DefaultTrials)
	if err != nil {
		return app.SweepRequest{}, err
	}
	seed, err := int64Param(r, "seed", s.defaults.BaseSeed)
	if err != nil {
		return app.SweepRequest{}, err
	}

	modeStr := r.URL.Query().Get("mode")
	if modeStr == "" {
		modeStr = string(stopping.ModeAnalytic)
	}
	mode, err := stopping.ParseMode(modeStr)
	if err != nil {
		return app.SweepRequest{}, err
	}

	return app.SweepRequest{N: n, Mode: mode, Trials: trials, Seed: seed}, nil
}

func intParam(r *http.Request, key string, defaultValue int) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewParameterError(key, 0, "must be an integer")
	}
	return v, nil
}

func int64Param(r *http.Request, key string, defaultValue int64) (int64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, core.NewParameterError(key, 0, "must be an integer")
	}
	return v, nil
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	code := "INTERNAL_ERROR"
	switch {
	case core.IsParameterError(err):
		status = http.StatusBadRequest
		code = "INVALID_PARAMETER"
	case core.IsNotFoundError(err):
		status = http.StatusNotFound
		code = "NOT_FOUND"
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Code: code})
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
