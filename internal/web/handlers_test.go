package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jlowell/salesdw/internal/config"
	"github.com/jlowell/salesdw/internal/loader"
	"github.com/jlowell/salesdw/internal/pipeline"
	"github.com/jlowell/salesdw/internal/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	p := &pipeline.Pipeline{
		Raw:         store.NewMemoryRaw(),
		Cleansed:    store.NewMemoryCleansed(),
		Dimensional: store.NewMemoryDimensional(),
	}
	l := &loader.Loader{Raw: p.Raw, Dir: t.TempDir()}
	cfg := &config.Config{
		Server: config.ServerConfig{
			Host:           "127.0.0.1",
			Port:           0,
			RequestTimeout: time.Minute,
		},
	}
	return NewServer(p, l, cfg)
}

func doRequest(t *testing.T, s *Server, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestHandleLatestRun_BeforeFirstRun(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/api/runs/latest")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404 before the first run", rec.Code)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/quality")
	if rec.Code != http.StatusNotFound {
		t.Errorf("quality status = %d, want 404 before the first run", rec.Code)
	}
}

func TestHandleRun_ThenLatestAndQuality(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodPost, "/api/runs")
	if rec.Code != http.StatusOK {
		t.Fatalf("run status = %d, want 200, body %s", rec.Code, rec.Body)
	}

	var res pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("invalid run result JSON: %v", err)
	}
	if len(res.Metrics) != 9 {
		t.Errorf("run reported %d stage metrics, want 9", len(res.Metrics))
	}

	rec = doRequest(t, s, http.MethodGet, "/api/runs/latest")
	if rec.Code != http.StatusOK {
		t.Fatalf("latest status = %d, want 200", rec.Code)
	}
	var latest pipeline.Result
	if err := json.Unmarshal(rec.Body.Bytes(), &latest); err != nil {
		t.Fatalf("invalid latest JSON: %v", err)
	}
	if latest.RunID != res.RunID {
		t.Errorf("latest run id = %v, want %v", latest.RunID, res.RunID)
	}

	rec = doRequest(t, s, http.MethodGet, "/api/quality")
	if rec.Code != http.StatusOK {
		t.Fatalf("quality status = %d, want 200", rec.Code)
	}
}

func TestHandleLoad_MissingExtractsFails(t *testing.T) {
	s := newTestServer(t)

	// The loader directory is empty, so the first file open fails.
	rec := doRequest(t, s, http.MethodPost, "/api/load")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 for missing extracts", rec.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response: %v", err)
	}
	if body["error"] == "" {
		t.Error("error body should carry a message")
	}
}

func TestSecurityHeaders(t *testing.T) {
	s := newTestServer(t)

	rec := doRequest(t, s, http.MethodGet, "/healthz")
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("X-Frame-Options"); got != "DENY" {
		t.Errorf("X-Frame-Options = %q, want DENY", got)
	}
}
