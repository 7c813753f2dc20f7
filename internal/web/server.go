package web

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Jason910315/gentle-gains/internal/domain"
	"github.com/Jason910315/gentle-gains/internal/nutrition"
)

// foodLogInserter is the subset of store.FoodStore the server requires.
type foodLogInserter interface {
	Insert(ctx context.Context, result *domain.FoodAnalysisResult, imageBase64, foodName, mealType string) (*domain.FoodLogRecord, error)
}

// workoutLogInserter is the subset of store.WorkoutStore the server requires.
type workoutLogInserter interface {
	Insert(ctx context.Context, req domain.WorkoutLogRequest) (*domain.WorkoutLogRecord, error)
}

// coachAgent is the subset of coach.Agent the server requires.
type coachAgent interface {
	Chat(ctx context.Context, sessionID, userQuery string) domain.ChatMessage
	History(ctx context.Context, sessionID string) []domain.ChatMessage
}

type Server struct {
	analyzer nutrition.Analyzer
	foods    foodLogInserter
	workouts workoutLogInserter
	agent    coachAgent
	mux      *http.ServeMux
	logger   *slog.Logger
}

func NewServer(analyzer nutrition.Analyzer, foods foodLogInserter, workouts workoutLogInserter, agent coachAgent, logger *slog.Logger) *Server {
	s := &Server{
		analyzer: analyzer,
		foods:    foods,
		workouts: workouts,
		agent:    agent,
		mux:      http.NewServeMux(),
		logger:   logger,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /{$}", s.handleHealth)
	s.mux.HandleFunc("POST /api/v1/analyze", s.handleAnalyze)
	s.mux.HandleFunc("POST /api/v1/workout", s.handleWorkout)
	s.mux.HandleFunc("POST /api/v1/chat", s.handleChat)
	s.mux.HandleFunc("GET /api/v1/chat/history/{session_id}", s.handleChatHistory)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "backend is running",
	})
}

// corsAll permits any origin, method and header. The frontend is served from
// a different domain; this is a development-grade policy.
func corsAll(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "*")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder wraps http.ResponseWriter to capture the written status code.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.Info("request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestLogger(s.logger, corsAll(s.mux)).ServeHTTP(w, r)
}

func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting server", "addr", addr)
	srv := &http.Server{
		Addr:         addr,
		Handler:      s,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError mirrors the {"detail": ...} error body the frontend expects.
func (s *Server) writeError(w http.ResponseWriter, status int, detail string) {
	s.writeJSON(w, status, map[string]string{"detail": detail})
}

// decodeJSON decodes the request body into v, rejecting unparseable bodies.
func decodeJSON(r *http.Request, v any) error {
	defer func() { _ = r.Body.Close() }()
	return json.NewDecoder(r.Body).Decode(v)
}
