package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/spacesedan/prodpulse/internal/models"
	"github.com/spacesedan/prodpulse/internal/scoring"
)

// Server exposes the scoring pipeline over HTTP. The pipeline itself
// never fails, so the only client-visible errors are malformed request
// bodies.
type Server struct {
	pipeline *scoring.Pipeline
	router   *chi.Mux
}

func New(pipeline *scoring.Pipeline) *Server {
	s := &Server{pipeline: pipeline}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Post("/v1/score", s.handleScore)

	s.router = r
	return s
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var input models.TextInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	result := s.pipeline.Score(r.Context(), input)
	response := result.Response()

	slog.Info("[ScoreHandler] Scored request",
		slog.Float64("overall", response.OverallScore),
		slog.Int("keywords", len(response.Keywords)),
		slog.String("sentiment_source", string(result.Sentiment.Source)))

	writeJSON(w, http.StatusOK, response)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("[ScoreHandler] Failed to write response",
			slog.String("error", err.Error()))
	}
}
