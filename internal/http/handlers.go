package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/sharma-sugurthi/HealthAI/internal/core"
	"github.com/sharma-sugurthi/HealthAI/internal/db"
	"github.com/sharma-sugurthi/HealthAI/pkg"
)

// Server bundles the dependencies required by the JSON API handlers.  It
// implements http.Handler so it can be passed to http.ListenAndServe.
type Server struct {
	Assistant *core.Assistant
	Repo      *db.Repository
	Log       *zap.Logger
}

// NewServer constructs a Server.
func NewServer(assistant *core.Assistant, repo *db.Repository, log *zap.Logger) *Server {
	return &Server{Assistant: assistant, Repo: repo, Log: log}
}

// ServeHTTP dispatches incoming requests based on the URL path.  Minimal
// routing logic is implemented here to keep dependencies light.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/api/chat" && r.Method == http.MethodPost:
		s.handleChat(w, r)
	case r.URL.Path == "/api/symptoms/analyze" && r.Method == http.MethodPost:
		s.handleSymptomAnalysis(w, r)
	case r.URL.Path == "/api/treatment-plan" && r.Method == http.MethodPost:
		s.handleTreatmentPlan(w, r)
	case r.URL.Path == "/api/history" && r.Method == http.MethodGet:
		s.handleHistory(w, r)
	case r.URL.Path == "/api/health" && r.Method == http.MethodGet:
		s.handleHealth(w, r)
	default:
		http.NotFound(w, r)
	}
}

type chatRequest struct {
	UserID  int64  `json:"user_id"`
	Message string `json:"message"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.Assistant.HandleChat(r.Context(), req.UserID, req.Message)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type symptomRequest struct {
	UserID   int64  `json:"user_id"`
	Symptoms string `json:"symptoms"`
}

func (s *Server) handleSymptomAnalysis(w http.ResponseWriter, r *http.Request) {
	var req symptomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.Assistant.AnalyzeSymptoms(r.Context(), req.UserID, req.Symptoms)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type treatmentRequest struct {
	UserID    int64  `json:"user_id"`
	Condition string `json:"condition"`
}

func (s *Server) handleTreatmentPlan(w http.ResponseWriter, r *http.Request) {
	var req treatmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	result, err := s.Assistant.GenerateTreatmentPlan(r.Context(), req.UserID, req.Condition)
	if err != nil {
		s.writeServiceError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

// handleHistory returns the most recent exchanges for a patient, newest
// first: GET /api/history?user_id=N&limit=M
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "user_id must be an integer")
		return
	}
	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	exchanges, err := s.Repo.GetRecentExchanges(r.Context(), userID, limit)
	if err != nil {
		s.Log.Error("history lookup failed", zap.Int64("user_id", userID), zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, "failed to load history")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   userID,
		"exchanges": exchanges,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeServiceError(w http.ResponseWriter, err error) {
	var verr *pkg.ValidationError
	if errors.As(err, &verr) {
		s.writeError(w, http.StatusBadRequest, verr.Error())
		return
	}
	s.Log.Error("request failed", zap.Error(err))
	s.writeError(w, http.StatusInternalServerError, "internal error")
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Log.Error("failed to encode response", zap.Error(err))
	}
}
