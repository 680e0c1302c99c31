package api

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"motordiag/internal/config"
	"motordiag/internal/engine"
	"motordiag/internal/model"
	"motordiag/internal/normalize"
	"motordiag/internal/publish"
	"motordiag/internal/results"
)

type Server struct {
	cfg       *config.Manager
	results   *results.Store
	publisher *publish.Publisher
	logger    *slog.Logger
	version   string
}

type statusResponse struct {
	Status     string                `json:"status"`
	Time       string                `json:"time"`
	Version    string                `json:"version"`
	ConfigPath string                `json:"config_path"`
	Defaults   config.DefaultsConfig `json:"defaults"`
	Results    int                   `json:"results"`
}

func Start(ctx context.Context, cfg *config.Manager, store *results.Store, publisher *publish.Publisher, logger *slog.Logger, version string) *http.Server {
	if cfg == nil {
		return nil
	}
	current := cfg.Get().API
	if !current.Enabled {
		if logger != nil {
			logger.Info("api disabled")
		}
		return nil
	}
	if logger != nil {
		logger.Info("api enabled", "addr", current.Addr)
	}
	server := &Server{
		cfg:       cfg,
		results:   store,
		publisher: publisher,
		logger:    logger,
		version:   version,
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/status", server.handleStatus)
	mux.HandleFunc("/healthz", server.handleHealthz)
	mux.HandleFunc("/diagnose", server.handleDiagnose)
	mux.HandleFunc("/results", server.handleResults)
	mux.HandleFunc("/results/", server.handleResult)
	mux.HandleFunc("/admin/clear", server.handleClear)

	httpServer := &http.Server{Addr: current.Addr, Handler: mux}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(ctxShutdown)
	}()
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if logger != nil {
				logger.Error("api server error", "err", err)
			}
		}
	}()
	return httpServer
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	cfg := s.cfg.Get()
	resp := statusResponse{
		Status:     "ok",
		Time:       time.Now().UTC().Format(time.RFC3339Nano),
		Version:    s.version,
		ConfigPath: s.cfg.Path(),
		Defaults:   cfg.Defaults,
		Results:    len(s.results.List(0)),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

// handleDiagnose runs one diagnosis over a CSV body. Query params mirror
// the CLI flags; unset params fall back to the configured defaults.
func (s *Server) handleDiagnose(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	params, err := s.paramsFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	cr := csv.NewReader(http.MaxBytesReader(w, r.Body, 32<<20))
	cr.FieldsPerRecord = -1
	records, err := cr.ReadAll()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if len(records) == 0 {
		writeError(w, http.StatusBadRequest, errors.New("empty body"))
		return
	}
	sheet := r.URL.Query().Get("sheet")
	if sheet == "" {
		sheet = "upload"
	}
	tbl := &model.Table{Name: sheet, Header: records[0], Rows: records[1:]}
	res, err := engine.Run(tbl, params, s.logger)
	if err != nil {
		switch {
		case errors.Is(err, normalize.ErrMissingColumns),
			errors.Is(err, normalize.ErrBadValue),
			errors.Is(err, engine.ErrBadParams),
			errors.Is(err, engine.ErrNoData):
			writeError(w, http.StatusUnprocessableEntity, err)
		default:
			writeError(w, http.StatusInternalServerError, err)
		}
		return
	}
	entry := s.results.Add(params, res)
	// Publish failures are logged by the publisher; the run still
	// succeeds.
	_ = s.publisher.PublishResult(r.Context(), res)
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleResults(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			limit = n
		}
	}
	list := s.results.List(limit)
	writeJSON(w, http.StatusOK, map[string]any{
		"results": list,
		"count":   len(list),
	})
}

func (s *Server) handleResult(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	idStr := strings.TrimPrefix(r.URL.Path, "/results/")
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	entry, ok := s.results.Get(id)
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	s.results.Clear()
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok"})
}

func (s *Server) paramsFromQuery(r *http.Request) (engine.Params, error) {
	defaults := s.cfg.Get().Defaults
	q := r.URL.Query()

	pick := func(key, fallback string) string {
		if v := q.Get(key); v != "" {
			return v
		}
		return fallback
	}

	mode, err := model.ParseMode(pick("mode", defaults.Mode))
	if err != nil {
		return engine.Params{}, err
	}
	axial, err := model.ParseAxis(pick("axial", defaults.AxialAxis))
	if err != nil {
		return engine.Params{}, err
	}
	span, err := model.ParseSpan(pick("span", defaults.Span))
	if err != nil {
		return engine.Params{}, err
	}
	rpm := defaults.RPM
	if v := q.Get("rpm"); v != "" {
		rpm, err = strconv.ParseFloat(v, 64)
		if err != nil {
			return engine.Params{}, err
		}
	}
	maxRows := defaults.MaxRows
	if v := q.Get("max_rows"); v != "" {
		maxRows, err = strconv.Atoi(v)
		if err != nil {
			return engine.Params{}, err
		}
	}
	p := engine.Params{
		AxialAxis:   axial,
		Mode:        mode,
		RPM:         rpm,
		Span:        span,
		MaxRows:     maxRows,
		Orientation: q.Get("orientation"),
	}
	return p, p.Validate()
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]any{"error": err.Error()})
}
