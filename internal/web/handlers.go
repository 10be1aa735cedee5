package web

import (
	"encoding/json"
	"net/http"

	"github.com/jlowell/salesdw/internal/loader"
	"github.com/jlowell/salesdw/internal/logging"
	"github.com/jlowell/salesdw/internal/run"
)

// loadResponse is returned by POST /api/load.
type loadResponse struct {
	RunID string              `json:"run_id"`
	Files []loader.FileResult `json:"files"`
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}

// handleLoad ingests the six source extracts into the raw layer.
// Loads are serialized with pipeline runs; a concurrent trigger gets 409.
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	if !s.runMu.TryLock() {
		writeError(w, r, http.StatusConflict, "a load or run is already in progress")
		return
	}
	defer s.runMu.Unlock()

	logger := logging.FromContext(r.Context())
	rc := run.New(s.pipeline.Sink)

	logger.Info("extract load started", "run_id", rc.ID, "dir", s.loader.Dir)
	results, err := s.loader.Run(r.Context(), rc)
	if err != nil {
		logger.Error("extract load failed", "run_id", rc.ID, "error", err)
		writeError(w, r, http.StatusInternalServerError, "extract load failed: "+err.Error())
		return
	}

	logger.Info("extract load completed", "run_id", rc.ID, "files", len(results))
	writeJSON(w, r, http.StatusOK, loadResponse{
		RunID: rc.ID.String(),
		Files: results,
	})
}

// handleRun executes the full pipeline inside the request and returns
// the run result. A failed run still returns the partial result so the
// caller can see which stage broke.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	if !s.runMu.TryLock() {
		writeError(w, r, http.StatusConflict, "a load or run is already in progress")
		return
	}
	defer s.runMu.Unlock()

	res, err := s.pipeline.Execute(r.Context())
	if res != nil {
		s.setLatest(res)
	}
	if err != nil {
		writeJSON(w, r, http.StatusInternalServerError, res)
		return
	}

	writeJSON(w, r, http.StatusOK, res)
}

// handleLatestRun returns the result of the most recent pipeline run.
func (s *Server) handleLatestRun(w http.ResponseWriter, r *http.Request) {
	res := s.latestResult()
	if res == nil {
		writeError(w, r, http.StatusNotFound, "no runs have been executed yet")
		return
	}
	writeJSON(w, r, http.StatusOK, res)
}

// handleQuality returns the quality report of the most recent run.
func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	res := s.latestResult()
	if res == nil {
		writeError(w, r, http.StatusNotFound, "no runs have been executed yet")
		return
	}
	writeJSON(w, r, http.StatusOK, res.Report)
}

// writeJSON encodes v as JSON and writes it with the given status.
// Encoding errors are logged since headers are already sent.
func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.FromContext(r.Context()).Error("json encode error", "error", err)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, r *http.Request, status int, message string) {
	logging.FromContext(r.Context()).Warn("request error",
		"status", status, "message", message)
	writeJSON(w, r, status, map[string]string{"error": message})
}
