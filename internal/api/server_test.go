package api

import (
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"motordiag/internal/config"
	"motordiag/internal/model"
	"motordiag/internal/results"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := config.Save(path, config.DefaultConfig()); err != nil {
		t.Fatalf("save config: %v", err)
	}
	mgr, err := config.NewManager(path)
	if err != nil {
		t.Fatalf("config manager: %v", err)
	}
	return &Server{
		cfg:     mgr,
		results: results.NewStore(10),
		version: "test",
	}
}

const diagnoseCSV = `t(x),x,t(y),y,t(z),z
2024-05-01 10:00:00,0.9,2024-05-01 10:00:00,0.1,2024-05-01 10:00:00,0.1
2024-05-01 10:00:01,0.9,2024-05-01 10:00:01,0.1,2024-05-01 10:00:01,0.1
2024-05-01 10:00:02,0.9,2024-05-01 10:00:02,0.1,2024-05-01 10:00:02,0.1
`

func TestHandleDiagnose(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/diagnose?sheet=motor01&mode=rms", strings.NewReader(diagnoseCSV))
	rec := httptest.NewRecorder()
	s.handleDiagnose(rec, req)
	if rec.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "motor01") || !strings.Contains(body, "Radial High") {
		t.Fatalf("unexpected body: %s", body)
	}
	if len(s.results.List(0)) != 1 {
		t.Fatalf("result not stored")
	}
}

func TestHandleDiagnoseSchemaError(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/diagnose", strings.NewReader("a,b\n1,2\n"))
	rec := httptest.NewRecorder()
	s.handleDiagnose(rec, req)
	if rec.Code != 422 {
		t.Fatalf("expected 422 for schema error, got %d", rec.Code)
	}
}

func TestHandleDiagnoseBadParams(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/diagnose?mode=bogus", strings.NewReader(diagnoseCSV))
	rec := httptest.NewRecorder()
	s.handleDiagnose(rec, req)
	if rec.Code != 400 {
		t.Fatalf("expected 400 for bad mode, got %d", rec.Code)
	}
}

func TestHandleResultsAndClear(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/diagnose", strings.NewReader(diagnoseCSV))
	rec := httptest.NewRecorder()
	s.handleDiagnose(rec, req)
	if rec.Code != 200 {
		t.Fatalf("seed diagnose failed: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	s.handleResults(rec, httptest.NewRequest("GET", "/results", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `"count":1`) {
		t.Fatalf("unexpected results response: %d %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	s.handleClear(rec, httptest.NewRequest("POST", "/admin/clear", nil))
	if rec.Code != 200 {
		t.Fatalf("clear failed: %d", rec.Code)
	}
	if len(s.results.List(0)) != 0 {
		t.Fatalf("results not cleared")
	}
}

func TestHandleStatus(t *testing.T) {
	s := testServer(t)
	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest("GET", "/status", nil))
	if rec.Code != 200 || !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Fatalf("unexpected status response: %d %s", rec.Code, rec.Body.String())
	}
}

func TestParamsFromQueryDefaults(t *testing.T) {
	s := testServer(t)
	req := httptest.NewRequest("POST", "/diagnose", nil)
	req.URL.RawQuery = url.Values{}.Encode()
	p, err := s.paramsFromQuery(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Mode != model.ModeRMS || p.AxialAxis != model.AxisZ || p.Span != model.SpanAll {
		t.Fatalf("defaults not applied: %+v", p)
	}
}
