// Package server implements the question/evaluation service the chat
// client talks to: a random question bank rotated by question kind, and
// answer evaluation delegated to a local Ollama model.
package server

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"github.com/hireloop/intervue/pkg/interview"
)

type Server struct {
	evaluator Evaluator
	metrics   *Metrics
	log       *logrus.Logger

	mu  sync.Mutex
	rng *rand.Rand
}

func New(evaluator Evaluator, metrics *Metrics, log *logrus.Logger) *Server {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Server{
		evaluator: evaluator,
		metrics:   metrics,
		log:       log,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(allowAllCORS)

	r.Get("/", s.handleRoot)
	r.Get("/health", s.handleHealth)
	r.Get("/metrics", func(w http.ResponseWriter, req *http.Request) {
		s.metrics.Handler().ServeHTTP(w, req)
	})
	r.Post("/api/question", s.handleQuestion)
	r.Post("/api/evaluate", s.handleEvaluate)
	return r
}

// allowAllCORS mirrors the permissive CORS policy the service has always
// exposed to its browser frontend.
func allowAllCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type questionRequest struct {
	JobType     string           `json:"job_type"`
	ChatHistory []interview.Turn `json:"chat_history"`
}

type evaluateRequest struct {
	JobType     string           `json:"job_type"`
	Answer      string           `json:"answer"`
	ChatHistory []interview.Turn `json:"chat_history"`
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"message":   "Interview chat service",
		"status":    "active",
		"endpoints": []string{"/api/question", "/api/evaluate"},
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	models, err := s.evaluator.Models(r.Context())
	if err != nil {
		respondJSON(w, http.StatusOK, map[string]any{
			"ollama_status": "not_running",
			"message":       "Start Ollama with: ollama serve",
		})
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"ollama_status":    "running",
		"available_models": models,
	})
}

func (s *Server) handleQuestion(w http.ResponseWriter, r *http.Request) {
	var req questionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// The rotation position is the number of questions already asked.
	asked := 0
	for _, turn := range req.ChatHistory {
		if turn.Role == interview.RoleAssistant {
			asked++
		}
	}

	s.mu.Lock()
	q := PickQuestion(req.JobType, asked, s.rng)
	s.mu.Unlock()

	s.metrics.QuestionsServed.WithLabelValues(q.Type).Inc()
	s.log.WithFields(logrus.Fields{
		"job_type": req.JobType,
		"type":     q.Type,
		"asked":    asked,
	}).Debug("question served")

	respondJSON(w, http.StatusOK, q)
}

func (s *Server) handleEvaluate(w http.ResponseWriter, r *http.Request) {
	var req evaluateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.metrics.Evaluations.Inc()

	question, ok := lastQuestion(req.ChatHistory)
	if !ok {
		respondJSON(w, http.StatusOK, interview.Feedback{Feedback: "Question not found in history."})
		return
	}

	start := time.Now()
	feedback, err := s.evaluator.Generate(r.Context(), evaluationPrompt(req.JobType, question, req.Answer))
	s.metrics.ObserveEvaluationLatency(time.Since(start))

	if err != nil {
		// The client renders feedback inline either way; a model outage
		// degrades to a warning rather than a 5xx.
		s.metrics.EvaluationErrors.Inc()
		s.log.WithError(err).Warn("evaluation failed, degrading to warning feedback")
		respondJSON(w, http.StatusOK, interview.Feedback{
			Feedback: fmt.Sprintf("⚠️ Could not evaluate your answer: %v", err),
		})
		return
	}

	respondJSON(w, http.StatusOK, interview.Feedback{Feedback: feedback})
}

// lastQuestion walks the history backwards for the most recent assistant
// turn that actually asks something.
func lastQuestion(history []interview.Turn) (string, bool) {
	for i := len(history) - 1; i >= 0; i-- {
		if history[i].Role == interview.RoleAssistant && strings.Contains(history[i].Content, "?") {
			return history[i].Content, true
		}
	}
	return "", false
}

func evaluationPrompt(jobType, question, answer string) string {
	return fmt.Sprintf(`You are an expert technical interviewer for %s positions.

Question asked: %s

Candidate's answer: %s

Provide a brief evaluation (2-3 sentences):
1. Is the answer correct/appropriate?
2. Give constructive feedback
3. Mention if anything is missing

Keep it professional and encouraging.`, jobType, question, answer)
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
