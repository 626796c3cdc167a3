package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/nikhil/job-portal/internal/db"
	"github.com/nikhil/job-portal/internal/server/middleware"
)

// handleGetMyProfile handles GET /candidates/me
func (s *Server) handleGetMyProfile(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	candidate, err := s.db.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		log.Printf("Failed to get candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get profile")
		return
	}
	if candidate == nil {
		s.errorFromErr(w, &ErrCandidateNotFound{CandidateID: candidateID})
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}

// profileRequest is the payload for updating a candidate profile.
type profileRequest struct {
	Name             string               `json:"name" validate:"required,max=200"`
	City             string               `json:"city" validate:"max=100"`
	ExperienceYears  int                  `json:"experienceYears" validate:"min=0,max=60"`
	ExperienceMonths int                  `json:"experienceMonths" validate:"min=0,max=11"`
	Skills           []db.CandidateSkill  `json:"skills" validate:"dive"`
	Education        []db.EducationRecord `json:"education" validate:"dive"`
}

// handleUpdateMyProfile handles PUT /candidates/me
func (s *Server) handleUpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req profileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}
	for i, sk := range req.Skills {
		if strings.TrimSpace(sk.Name) == "" {
			s.errorFromErr(w, &ErrValidation{Field: "skills", Message: "skill name must not be empty"})
			return
		}
		req.Skills[i].Name = strings.TrimSpace(sk.Name)
	}

	candidate, err := s.db.UpdateCandidate(r.Context(), candidateID, &db.CandidateUpdateInput{
		Name:             strings.TrimSpace(req.Name),
		City:             strings.TrimSpace(req.City),
		ExperienceYears:  req.ExperienceYears,
		ExperienceMonths: req.ExperienceMonths,
		Skills:           req.Skills,
		Education:        req.Education,
	})
	if err != nil {
		log.Printf("Failed to update candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}
	if candidate == nil {
		s.errorFromErr(w, &ErrCandidateNotFound{CandidateID: candidateID})
		return
	}

	s.jsonResponse(w, http.StatusOK, candidate)
}
