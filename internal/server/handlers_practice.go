package server

import (
	"encoding/json"
	"log"
	"math/rand"
	"net/http"
	"time"

	"github.com/nikhil/job-portal/internal/practice"
)

// handlePracticeQuestions handles POST /practice/questions
func (s *Server) handlePracticeQuestions(w http.ResponseWriter, r *http.Request) {
	if s.practice == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Practice sessions not available")
		return
	}

	var req struct {
		Role   string   `json:"role" validate:"required,max=200"`
		Skills []string `json:"skills" validate:"max=20"`
		Count  int      `json:"count" validate:"min=0,max=10"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	questions, err := s.practice.GenerateQuestions(r.Context(), req.Role, req.Skills, req.Count)
	if err != nil {
		log.Printf("Failed to generate practice questions: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Failed to generate questions")
		return
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{"questions": questions})
}

// handlePracticeEvaluate handles POST /practice/evaluate
func (s *Server) handlePracticeEvaluate(w http.ResponseWriter, r *http.Request) {
	if s.practice == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Practice sessions not available")
		return
	}

	var req struct {
		Role       string        `json:"role" validate:"required,max=200"`
		Transcript []practice.QA `json:"transcript" validate:"required,min=1,max=20,dive"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	feedback, err := s.practice.EvaluateAnswers(r.Context(), req.Role, req.Transcript)
	if err != nil {
		log.Printf("Failed to evaluate practice session: %v", err)
		s.errorResponse(w, http.StatusBadGateway, "Failed to evaluate answers")
		return
	}

	// rand.Rand is not safe for concurrent use, so jitter gets a
	// per-request source.
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	s.jsonResponse(w, http.StatusOK, practice.ForDisplay(feedback, rng))
}
