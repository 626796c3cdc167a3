package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikhil/job-portal/internal/db"
)

func newTestValidator() *validator.Validate {
	return validator.New()
}

func TestParseQueryInt(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		key      string
		def      int
		max      int
		expected int
	}{
		{"absent uses default", "", "page", 1, 0, 1},
		{"valid value", "page=3", "page", 1, 0, 3},
		{"malformed uses default", "page=abc", "page", 1, 0, 1},
		{"zero uses default", "page=0", "page", 1, 0, 1},
		{"negative uses default", "page=-5", "page", 1, 0, 1},
		{"clamped to max", "limit=500", "limit", 20, 100, 100},
		{"under max untouched", "limit=50", "limit", 20, 100, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/jobs?"+tt.query, nil)
			assert.Equal(t, tt.expected, parseQueryInt(r, tt.key, tt.def, tt.max))
		})
	}
}

func TestPageParams_Defaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/jobs", nil)
	page, limit := pageParams(r)
	assert.Equal(t, 1, page)
	assert.Equal(t, 20, limit)
}

func TestHandleHealth(t *testing.T) {
	s := &Server{}
	r := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	s.handleHealth(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
}

func TestErrorResponse(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()

	s.errorResponse(w, http.StatusNotFound, "job not found")

	assert.Equal(t, http.StatusNotFound, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "job not found", body["error"])
}

func TestErrorFromErr_HidesInternalDetail(t *testing.T) {
	s := &Server{}
	w := httptest.NewRecorder()

	s.errorFromErr(w, assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "Internal server error", body["error"])
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"job not found", &ErrJobNotFound{JobID: uuid.New()}, http.StatusNotFound},
		{"candidate not found", &ErrCandidateNotFound{CandidateID: uuid.New()}, http.StatusNotFound},
		{"application not found", &ErrApplicationNotFound{ApplicationID: uuid.New()}, http.StatusNotFound},
		{"job not open", &ErrJobNotOpen{JobID: uuid.New(), Status: "closed"}, http.StatusConflict},
		{"invalid transition", &ErrInvalidTransition{From: "hired", To: "applied"}, http.StatusConflict},
		{"validation", &ErrValidation{Field: "status", Message: "unknown"}, http.StatusBadRequest},
		{"duplicate application", db.ErrDuplicateApplication, http.StatusConflict},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestExtractClientID(t *testing.T) {
	s := &Server{}

	r := httptest.NewRequest("GET", "/jobs", nil)
	r.RemoteAddr = "192.0.2.10:54321"
	assert.Equal(t, "192.0.2.10", s.extractClientID(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5")
	assert.Equal(t, "203.0.113.5", s.extractClientID(r))

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 198.51.100.7")
	assert.Equal(t, "203.0.113.5", s.extractClientID(r))
}

func TestValidateJobRequest(t *testing.T) {
	s := &Server{validate: newTestValidator()}

	valid := func() *jobRequest {
		return &jobRequest{
			Title:          "Backend Engineer",
			Description:    "Build services",
			Company:        "Acme",
			EmploymentType: db.EmploymentFullTime,
			WorkMode:       db.WorkModeOnsite,
			City:           "Bangalore",
			ExperienceMin:  2,
		}
	}

	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, s.validateJobRequest(valid()))
	})

	t.Run("missing title fails", func(t *testing.T) {
		req := valid()
		req.Title = ""
		assert.Error(t, s.validateJobRequest(req))
	})

	t.Run("unknown employment type fails", func(t *testing.T) {
		req := valid()
		req.EmploymentType = "gig"
		assert.Error(t, s.validateJobRequest(req))
	})

	t.Run("experience max below min fails", func(t *testing.T) {
		req := valid()
		max := 1
		req.ExperienceMax = &max
		err := s.validateJobRequest(req)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, HTTPStatus(err))
	})

	t.Run("salary max below min fails", func(t *testing.T) {
		req := valid()
		lo, hi := 100, 50
		req.SalaryMin = &lo
		req.SalaryMax = &hi
		assert.Error(t, s.validateJobRequest(req))
	})

	t.Run("onsite without city fails", func(t *testing.T) {
		req := valid()
		req.City = ""
		assert.Error(t, s.validateJobRequest(req))
	})

	t.Run("remote without city passes", func(t *testing.T) {
		req := valid()
		req.WorkMode = db.WorkModeRemote
		req.City = ""
		assert.NoError(t, s.validateJobRequest(req))
	})
}
