package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"askboard/internal/ratelimit"
	"askboard/internal/util"
	"askboard/services/questions/internal/app"
)

const livenessMessage = "questions and answers service is running"

// Config wires required dependencies for the HTTP server.
type Config struct {
	App                        *app.App
	RedisAddr                  string
	RedisPassword              string
	QuestionRateLimitPerMinute int
	AnswerRateLimitPerMinute   int
	TrustedProxies             *util.TrustedProxies
}

// Server exposes HTTP endpoints for the questions service.
type Server struct {
	app             *app.App
	mux             *http.ServeMux
	questionLimiter *ratelimit.FixedWindowLimiter
	answerLimiter   *ratelimit.FixedWindowLimiter
	trustedProxies  *util.TrustedProxies
}

// New constructs the server with routes configured. Rate limiting is active
// only when a redis address and a positive per-minute limit are configured.
func New(cfg Config) (*Server, error) {
	newLimiter := func(name string, limit int) (*ratelimit.FixedWindowLimiter, error) {
		if limit <= 0 || cfg.RedisAddr == "" {
			return nil, nil
		}
		prefix := "askboard:questions:ratelimit:" + name
		limiter, err := ratelimit.NewRedisFixedWindowLimiter(cfg.RedisAddr, cfg.RedisPassword, prefix, limit, time.Minute)
		if err != nil {
			return nil, fmt.Errorf("init %s limiter: %w", name, err)
		}
		return limiter, nil
	}
	questionLimiter, err := newLimiter("question", cfg.QuestionRateLimitPerMinute)
	if err != nil {
		return nil, err
	}
	answerLimiter, err := newLimiter("answer", cfg.AnswerRateLimitPerMinute)
	if err != nil {
		return nil, err
	}
	s := &Server{
		app:             cfg.App,
		mux:             http.NewServeMux(),
		questionLimiter: questionLimiter,
		answerLimiter:   answerLimiter,
		trustedProxies:  cfg.TrustedProxies,
	}
	s.routes()
	return s, nil
}

// Router returns the configured handler wrapped in the shared middleware.
func (s *Server) Router() http.Handler {
	return util.WithSecurityHeaders(util.WithCORS(util.WithRequestID(util.WithRequestLog("questions", s.mux))))
}

func (s *Server) routes() {
	s.mux.HandleFunc("/", s.handleRoot)
	s.mux.HandleFunc("/healthz", s.handleHealth)

	s.mux.HandleFunc("/api/questions", s.handleQuestions)
	s.mux.HandleFunc("/api/questions/", s.handleQuestionByID)
}

// handleRoot answers the plain-text liveness probe. The "/" pattern catches
// every unregistered path, so anything else is a 404.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, livenessMessage)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.app.ListQuestions())
	case http.MethodPost:
		s.handleCreateQuestion(w, r)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateQuestion(w http.ResponseWriter, r *http.Request) {
	if !s.allow(s.questionLimiter, r) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}
	var req createQuestionRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	question, err := s.app.CreateQuestion(req.Title, req.Description, req.Category, req.Tags, req.Author)
	if err != nil {
		writeQuestionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, question)
}

// /api/questions/{id} or /api/questions/{id}/answers
func (s *Server) handleQuestionByID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/questions/")
	parts := strings.SplitN(path, "/", 2)
	id, err := strconv.Atoi(parts[0])
	if err != nil {
		// A non-numeric id can never match a question.
		writeError(w, http.StatusNotFound, app.ErrQuestionNotFound.Error())
		return
	}

	if len(parts) == 2 {
		if parts[1] != "answers" {
			http.NotFound(w, r)
			return
		}
		s.handleAnswers(w, r, id)
		return
	}

	if r.Method != http.MethodGet {
		methodNotAllowed(w)
		return
	}
	question, err := s.app.GetQuestion(id)
	if err != nil {
		writeQuestionError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, question)
}

func (s *Server) handleAnswers(w http.ResponseWriter, r *http.Request, questionID int) {
	switch r.Method {
	case http.MethodGet:
		writeJSON(w, http.StatusOK, s.app.ListAnswers(questionID))
	case http.MethodPost:
		s.handleCreateAnswer(w, r, questionID)
	default:
		methodNotAllowed(w)
	}
}

func (s *Server) handleCreateAnswer(w http.ResponseWriter, r *http.Request, questionID int) {
	if !s.allow(s.answerLimiter, r) {
		writeError(w, http.StatusTooManyRequests, "too many requests")
		return
	}
	var req createAnswerRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	answer, err := s.app.CreateAnswer(questionID, req.Author, req.Email, req.Text)
	if err != nil {
		writeQuestionError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, answer)
}

func (s *Server) allow(limiter *ratelimit.FixedWindowLimiter, r *http.Request) bool {
	if limiter == nil {
		return true
	}
	return limiter.Allow(util.ClientIP(r, s.trustedProxies))
}

type createQuestionRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Tags        any    `json:"tags"`
	Author      string `json:"author"`
}

type createAnswerRequest struct {
	Author string `json:"author"`
	Email  string `json:"email"`
	Text   string `json:"text"`
}

func writeQuestionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, app.ErrQuestionFieldsRequired), errors.Is(err, app.ErrAnswerFieldsRequired):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, app.ErrQuestionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func methodNotAllowed(w http.ResponseWriter) {
	writeError(w, http.StatusMethodNotAllowed, "method not allowed")
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
