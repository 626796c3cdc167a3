package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/nikhil/job-portal/internal/db"
	"github.com/nikhil/job-portal/internal/matching"
	"github.com/nikhil/job-portal/internal/pagination"
	"github.com/nikhil/job-portal/internal/search"
	"github.com/nikhil/job-portal/internal/server/middleware"
)

// scoringConcurrency bounds parallel match-score computation per request.
const scoringConcurrency = 8

// JobResult is a job listing in search results, annotated with a match
// score when the caller is an authenticated candidate.
type JobResult struct {
	db.Job
	MatchScore *int `json:"matchScore,omitempty"`
}

// handleSearchJobs handles GET /jobs
func (s *Server) handleSearchJobs(w http.ResponseWriter, r *http.Request) {
	criteria := search.ParseCriteria(r.URL.Query())
	sort := search.ResolveSort(r.URL.Query().Get("sort"))
	query := search.Build(criteria, sort, time.Now())

	page, limit := pageParams(r)
	offset := (page - 1) * limit

	jobs, total, err := s.db.SearchJobs(r.Context(), query, limit, offset)
	if err != nil {
		log.Printf("Job search failed: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Search failed")
		return
	}

	results := make([]JobResult, len(jobs))
	for i := range jobs {
		jobs[i].RedactSalary()
		results[i] = JobResult{Job: jobs[i]}
	}

	// Authenticated candidates get a match score per listing. Auth is
	// optional here: anonymous searches return listings without scores.
	if candidate := s.optionalCandidate(r); candidate != nil {
		s.annotateMatchScores(r.Context(), results, candidate)
	}

	s.jsonResponse(w, http.StatusOK, pagination.NewEnvelope(results, total, page, limit))
}

// optionalCandidate loads the caller's profile when the request carries a
// valid bearer token, and returns nil otherwise.
func (s *Server) optionalCandidate(r *http.Request) *db.Candidate {
	token := middleware.BearerToken(r)
	if token == "" {
		return nil
	}
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil
	}
	candidate, err := s.db.GetCandidateByID(r.Context(), claims.CandidateID)
	if err != nil {
		log.Printf("Failed to load candidate %s: %v", claims.CandidateID, err)
		return nil
	}
	return candidate
}

// annotateMatchScores fills in MatchScore for each result, scoring listings
// concurrently with bounded parallelism.
func (s *Server) annotateMatchScores(ctx context.Context, results []JobResult, candidate *db.Candidate) {
	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(scoringConcurrency)

	for i := range results {
		i := i
		g.Go(func() error {
			score := matching.Score(&results[i].Job, candidate)
			results[i].MatchScore = &score
			return nil
		})
	}

	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()
}

// handleGetJob handles GET /jobs/{id}
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get job %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to get job")
		return
	}
	if job == nil {
		s.errorFromErr(w, &ErrJobNotFound{JobID: id})
		return
	}

	// Views are recorded out of band; a failed increment never blocks the
	// response.
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.db.IncrementJobViews(ctx, id); err != nil {
			log.Printf("Failed to increment views for job %s: %v", id, err)
		}
		if s.stats != nil {
			if err := s.stats.RecordView(ctx, id); err != nil {
				log.Printf("Failed to record view for job %s: %v", id, err)
			}
		}
	}()

	job.RedactSalary()
	s.jsonResponse(w, http.StatusOK, job)
}

// jobRequest is the payload for creating or replacing a job listing.
type jobRequest struct {
	Title                string   `json:"title" validate:"required,max=200"`
	Description          string   `json:"description" validate:"required"`
	Company              string   `json:"company" validate:"required,max=200"`
	EmploymentType       string   `json:"employmentType" validate:"required,oneof=full_time part_time contract internship freelance"`
	WorkMode             string   `json:"workMode" validate:"required,oneof=onsite remote hybrid"`
	City                 string   `json:"city" validate:"max=100"`
	State                string   `json:"state" validate:"max=100"`
	Country              string   `json:"country" validate:"max=100"`
	ExperienceMin        int      `json:"experienceMin" validate:"min=0,max=50"`
	ExperienceMax        *int     `json:"experienceMax"`
	SalaryMin            *int     `json:"salaryMin"`
	SalaryMax            *int     `json:"salaryMax"`
	SalaryCurrency       string   `json:"salaryCurrency" validate:"max=10"`
	SalaryPeriod         string   `json:"salaryPeriod" validate:"omitempty,oneof=hourly monthly yearly"`
	SalaryVisible        bool     `json:"salaryVisible"`
	SkillsRequired       []string `json:"skillsRequired"`
	SkillsOptional       []string `json:"skillsOptional"`
	EducationRequirement *string  `json:"educationRequirement"`
	Industry             string   `json:"industry" validate:"max=100"`
	Department           string   `json:"department" validate:"max=100"`
	Status               string   `json:"status" validate:"omitempty,oneof=draft active"`
}

// validateJobRequest runs struct validation plus the cross-field checks that
// struct tags cannot express.
func (s *Server) validateJobRequest(req *jobRequest) error {
	if err := s.validate.Struct(req); err != nil {
		return &ErrValidation{Field: "body", Message: err.Error()}
	}
	if req.ExperienceMax != nil && *req.ExperienceMax < req.ExperienceMin {
		return &ErrValidation{Field: "experienceMax", Message: "must be >= experienceMin"}
	}
	if req.SalaryMin != nil && *req.SalaryMin < 0 {
		return &ErrValidation{Field: "salaryMin", Message: "must be non-negative"}
	}
	if req.SalaryMin != nil && req.SalaryMax != nil && *req.SalaryMax < *req.SalaryMin {
		return &ErrValidation{Field: "salaryMax", Message: "must be >= salaryMin"}
	}
	if req.WorkMode != db.WorkModeRemote && strings.TrimSpace(req.City) == "" {
		return &ErrValidation{Field: "city", Message: "required unless work mode is remote"}
	}
	return nil
}

func (req *jobRequest) toCreateInput() *db.JobCreateInput {
	return &db.JobCreateInput{
		Title:                strings.TrimSpace(req.Title),
		Description:          req.Description,
		Company:              strings.TrimSpace(req.Company),
		EmploymentType:       req.EmploymentType,
		WorkMode:             req.WorkMode,
		City:                 strings.TrimSpace(req.City),
		State:                strings.TrimSpace(req.State),
		Country:              strings.TrimSpace(req.Country),
		ExperienceMin:        req.ExperienceMin,
		ExperienceMax:        req.ExperienceMax,
		SalaryMin:            req.SalaryMin,
		SalaryMax:            req.SalaryMax,
		SalaryCurrency:       req.SalaryCurrency,
		SalaryPeriod:         req.SalaryPeriod,
		SalaryVisible:        req.SalaryVisible,
		SkillsRequired:       req.SkillsRequired,
		SkillsOptional:       req.SkillsOptional,
		EducationRequirement: req.EducationRequirement,
		Industry:             strings.TrimSpace(req.Industry),
		Department:           strings.TrimSpace(req.Department),
		Status:               req.Status,
	}
}

// handleCreateJob handles POST /jobs
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validateJobRequest(&req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	job, err := s.db.CreateJob(r.Context(), req.toCreateInput())
	if err != nil {
		log.Printf("Failed to create job: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create job")
		return
	}

	s.jsonResponse(w, http.StatusCreated, job)
}

// handleUpdateJob handles PUT /jobs/{id}
func (s *Server) handleUpdateJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req jobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validateJobRequest(&req); err != nil {
		s.errorFromErr(w, err)
		return
	}

	existing, err := s.db.GetJobByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get job %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update job")
		return
	}
	if existing == nil {
		s.errorFromErr(w, &ErrJobNotFound{JobID: id})
		return
	}

	input := req.toCreateInput()
	// Status changes go through PATCH /jobs/{id}/status only.
	input.Status = existing.Status

	job, err := s.db.UpdateJob(r.Context(), id, input)
	if err != nil {
		log.Printf("Failed to update job %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update job")
		return
	}

	s.jsonResponse(w, http.StatusOK, job)
}

// handleUpdateJobStatus handles PATCH /jobs/{id}/status
func (s *Server) handleUpdateJobStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if !db.ValidJobStatus(req.Status) {
		s.errorFromErr(w, &ErrValidation{Field: "status", Message: "unknown status"})
		return
	}

	job, err := s.db.GetJobByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get job %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}
	if job == nil {
		s.errorFromErr(w, &ErrJobNotFound{JobID: id})
		return
	}
	if !db.CanTransitionJobStatus(job.Status, req.Status) {
		s.errorFromErr(w, &ErrInvalidTransition{From: job.Status, To: req.Status})
		return
	}

	if err := s.db.UpdateJobStatus(r.Context(), id, req.Status); err != nil {
		log.Printf("Failed to update status for job %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to update status")
		return
	}

	job.Status = req.Status
	s.jsonResponse(w, http.StatusOK, job)
}

// handleMatchJob handles GET /jobs/{id}/match
func (s *Server) handleMatchJob(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid job ID")
		return
	}

	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	job, err := s.db.GetJobByID(r.Context(), id)
	if err != nil {
		log.Printf("Failed to get job %s: %v", id, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to compute match")
		return
	}
	if job == nil {
		s.errorFromErr(w, &ErrJobNotFound{JobID: id})
		return
	}

	candidate, err := s.db.GetCandidateByID(r.Context(), candidateID)
	if err != nil {
		log.Printf("Failed to get candidate %s: %v", candidateID, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to compute match")
		return
	}
	if candidate == nil {
		s.errorFromErr(w, &ErrCandidateNotFound{CandidateID: candidateID})
		return
	}

	s.jsonResponse(w, http.StatusOK, matching.ScoreBreakdown(job, candidate))
}

// handleTrendingJobs handles GET /jobs/trending
func (s *Server) handleTrendingJobs(w http.ResponseWriter, r *http.Request) {
	if s.stats == nil {
		s.errorResponse(w, http.StatusServiceUnavailable, "Trending data not available")
		return
	}

	n := parseQueryInt(r, "limit", 10, 50)
	ids, err := s.stats.TopJobs(r.Context(), n)
	if err != nil {
		log.Printf("Failed to load trending jobs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load trending jobs")
		return
	}

	jobs, err := s.db.ListJobsByIDs(r.Context(), ids)
	if err != nil {
		log.Printf("Failed to load trending jobs: %v", err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load trending jobs")
		return
	}

	results := make([]db.Job, 0, len(jobs))
	for i := range jobs {
		if jobs[i].Status != db.JobStatusActive {
			continue
		}
		jobs[i].RedactSalary()
		results = append(results, jobs[i])
	}

	s.jsonResponse(w, http.StatusOK, map[string]interface{}{"data": results})
}

// handleSalaries handles GET /salaries
func (s *Server) handleSalaries(w http.ResponseWriter, r *http.Request) {
	title := strings.TrimSpace(r.URL.Query().Get("title"))
	if title == "" {
		s.errorFromErr(w, &ErrValidation{Field: "title", Message: "required"})
		return
	}

	agg, err := s.db.SalaryByTitle(r.Context(), title)
	if err != nil {
		log.Printf("Failed to aggregate salaries for %q: %v", title, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to load salary data")
		return
	}

	s.jsonResponse(w, http.StatusOK, agg)
}
