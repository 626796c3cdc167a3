package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/nikhil/job-portal/internal/db"
	"github.com/nikhil/job-portal/internal/pagination"
	"github.com/nikhil/job-portal/internal/server/middleware"
)

// reviewListResponse is a paginated review list with the company's average
// rating alongside.
type reviewListResponse struct {
	pagination.Envelope
	AverageRating float64 `json:"averageRating"`
}

// handleListReviews handles GET /companies/{company}/reviews
func (s *Server) handleListReviews(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.PathValue("company"))
	if company == "" {
		s.errorFromErr(w, &ErrValidation{Field: "company", Message: "required"})
		return
	}

	page, limit := pageParams(r)
	offset := (page - 1) * limit

	reviews, total, avg, err := s.db.ListReviewsByCompany(r.Context(), company, limit, offset)
	if err != nil {
		log.Printf("Failed to list reviews for %q: %v", company, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to list reviews")
		return
	}
	if reviews == nil {
		reviews = []db.Review{}
	}

	s.jsonResponse(w, http.StatusOK, reviewListResponse{
		Envelope:      pagination.NewEnvelope(reviews, total, page, limit),
		AverageRating: avg,
	})
}

// reviewRequest is the payload for creating a company review.
type reviewRequest struct {
	Rating int      `json:"rating" validate:"required,min=1,max=5"`
	Title  string   `json:"title" validate:"required,max=200"`
	Body   string   `json:"body" validate:"max=10000"`
	Pros   []string `json:"pros" validate:"max=20"`
	Cons   []string `json:"cons" validate:"max=20"`
}

// handleCreateReview handles POST /companies/{company}/reviews
func (s *Server) handleCreateReview(w http.ResponseWriter, r *http.Request) {
	company := strings.TrimSpace(r.PathValue("company"))
	if company == "" {
		s.errorFromErr(w, &ErrValidation{Field: "company", Message: "required"})
		return
	}

	candidateID, err := middleware.GetCandidateID(r)
	if err != nil {
		s.errorResponse(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req reviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		s.errorFromErr(w, &ErrValidation{Field: "body", Message: err.Error()})
		return
	}

	review, err := s.db.CreateReview(r.Context(), &db.ReviewCreateInput{
		Company:     company,
		CandidateID: candidateID,
		Rating:      req.Rating,
		Title:       strings.TrimSpace(req.Title),
		Body:        req.Body,
		Pros:        req.Pros,
		Cons:        req.Cons,
	})
	if err != nil {
		log.Printf("Failed to create review for %q: %v", company, err)
		s.errorResponse(w, http.StatusInternalServerError, "Failed to create review")
		return
	}

	s.jsonResponse(w, http.StatusCreated, review)
}
