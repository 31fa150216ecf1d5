package httpapi

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/statuswatch/statuswatch/internal/domain"
)

// CheckService runs the single-region check.
type CheckService interface {
	Check(ctx context.Context, target string) (*domain.CheckReport, error)
}

// GlobalService runs the multi-region check.
type GlobalService interface {
	Check(ctx context.Context, target string) (*domain.GlobalReport, error)
}

type Server struct {
	Logger *zap.Logger
	Local  CheckService
	Global GlobalService // nil disables the global route
}

func NewServer(l *zap.Logger, local CheckService, global GlobalService) *Server {
	return &Server{Logger: l, Local: local, Global: global}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Post("/api/check", s.handleCheck)
	if s.Global != nil {
		r.Post("/api/check/global", s.handleGlobalCheck)
	}

	return r
}

type checkPayload struct {
	URL string `json:"url"`
}

// readTarget decodes and validates the request URL. The boundary rejects bad
// input before any network call is attempted.
func (s *Server) readTarget(w http.ResponseWriter, r *http.Request) (string, bool) {
	var p checkPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil || p.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return "", false
	}
	if !isValidHTTPURL(p.URL) {
		writeError(w, http.StatusBadRequest, "Invalid URL format")
		return "", false
	}
	return normalizeHTTPURL(p.URL), true
}

func (s *Server) handleCheck(w http.ResponseWriter, r *http.Request) {
	target, ok := s.readTarget(w, r)
	if !ok {
		return
	}

	report, err := s.Local.Check(r.Context(), target)
	if err != nil {
		s.Logger.Error("check_failed", zap.String("url", target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, report)
}

func (s *Server) handleGlobalCheck(w http.ResponseWriter, r *http.Request) {
	target, ok := s.readTarget(w, r)
	if !ok {
		return
	}

	report, err := s.Global.Check(r.Context(), target)
	if err != nil {
		s.Logger.Error("global_check_failed", zap.String("url", target), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	writeJSON(w, report)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
