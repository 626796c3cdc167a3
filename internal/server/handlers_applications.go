package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/nikhil/job-portal/internal/application"
	"github.com/nikhil/job-portal/internal/db"
	"github.com/nikhil/job-portal/internal/pagination"
	"github.com/nikhil/job-portal/internal/server/middleware"
)

// handleApplyToJob handles POST /jobs/{id}/applications
func (s *Server) handleApplyToJob(w http.ResponseWriter, r *http.Request) {
	jobID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req struct {
		CoverLetter string `json:"coverLetter" validate:"max=5000"`
	}
	// The body is optional; an empty body means no cover letter.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "coverLetter", Message: err.Error()})
		return
	}

	job, err := s.db.GetJobByID(r.Context(), jobID)
	if err != nil {
		log.Printf("Failed to get job %s: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to apply")
		return
	}
	if job == nil {
		s.errorFromErr(w, &ErrJobNotFound{JobID: jobID})
		return
	}
	if job.Status != db.JobStatusActive {
		s.errorFromErr(w, &ErrJobNotOpen{JobID: jobID, Status: job.Status})
		return
	}
	if job.Deadline != nil && time.Now().After(*job.Deadline) {
		s.errorFromErr(w, &ErrJobNotOpen{JobID: jobID, Status: "deadline passed"})
		return
	}

	app, err := s.db.CreateApplication(r.Context(), jobID, candidateID,
		string(application.StatusApplied), req.CoverLetter)
	if err != nil {
		if errors.Is(err, db.ErrDuplicateApplication) {
			s.errorFromErr(w, err)
			return
		}
		log.Printf("Failed to create application for job %s: %v", jobID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to apply")
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.db.IncrementApplicationCount(ctx, jobID); err != nil {
			log.Printf("Failed to increment application count for job %s: %v", jobID, err)
		}
	}()

	s.jsonResponse(w, http.StatusCreated, app)
}

// handleListMyApplications handles GET /candidates/me/applications
func (s *Server) handleListMyApplications(w http.ResponseWriter, r *http.Request) {
	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	page, limit := pageParams(r)
	offset := (page - 1) * limit

	apps, total, err := s.db.ListApplicationsByCandidate(r.Context(), candidateID, limit, offset)
	if err != nil {
		log.Printf("Failed to list applications for candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list applications")
		return
	}
	if apps == nil {
		apps = []db.ApplicationWithJob{}
	}

	s.jsonResponse(w, http.StatusOK, pagination.NewEnvelope(apps, total, page, limit))
}

// handleUpdateApplicationStatus handles PATCH /applications/{id}/status
func (s *Server) handleUpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid application ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	next, err := application.ParseStatus(req.Status)
	if err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "status", Message: err.Error()})
		return
	}

	app, err := s.db.GetApplicationByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get application %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if app == nil {
		s.errorFromErr(w, &ErrApplicationNotFound{ApplicationID: id})
		return
	}

	current := application.Status(app.Status)
	if !application.IsTransitionAllowed(current, next) {
		s.errorFromErr(w, &ErrInvalidTransition{From: string(current), To: string(next)})
		return
	}

	updated, err := s.db.UpdateApplicationStatus(r.Context(), id, string(next))
	if err != nil {
		log.Printf("Failed to update application %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if updated == nil {
		s.errorFromErr(w, &ErrApplicationNotFound{ApplicationID: id})
		return
	}

	s.jsonResponse(w, http.StatusOK, updated)
}
