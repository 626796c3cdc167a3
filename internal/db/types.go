package db

import (
	"time"

	"github.com/google/uuid"
)

// Employment type values for job listings.
const (
	EmploymentFullTime   = "full_time"
	EmploymentPartTime   = "part_time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
	EmploymentFreelance  = "freelance"
)

// Work mode values for job listings.
const (
	WorkModeOnsite = "onsite"
	WorkModeRemote = "remote"
	WorkModeHybrid = "hybrid"
)

// Job lifecycle status values. Jobs are never hard-deleted; closing a
// listing is a status transition.
const (
	JobStatusDraft   = "draft"
	JobStatusActive  = "active"
	JobStatusPaused  = "paused"
	JobStatusClosed  = "closed"
	JobStatusExpired = "expired"
	JobStatusFilled  = "filled"
)

// jobStatusTransitions lists every allowed (from → to) pair.
// closed, expired, and filled are terminal.
var jobStatusTransitions = map[string][]string{
	JobStatusDraft:  {JobStatusActive, JobStatusClosed},
	JobStatusActive: {JobStatusPaused, JobStatusClosed, JobStatusExpired, JobStatusFilled},
	JobStatusPaused: {JobStatusActive, JobStatusClosed, JobStatusExpired},
}

// ValidJobStatus reports whether s is a known lifecycle status.
func ValidJobStatus(s string) bool {
	switch s {
	case JobStatusDraft, JobStatusActive, JobStatusPaused, JobStatusClosed, JobStatusExpired, JobStatusFilled:
		return true
	}
	return false
}

// CanTransitionJobStatus reports whether moving from → to is permitted.
func CanTransitionJobStatus(from, to string) bool {
	for _, allowed := range jobStatusTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Job represents a posted position.
type Job struct {
	ID                   uuid.UUID  `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Company              string     `json:"company"`
	EmploymentType       string     `json:"employmentType"`
	WorkMode             string     `json:"workMode"`
	City                 string     `json:"city"`
	State                string     `json:"state,omitempty"`
	Country              string     `json:"country,omitempty"`
	ExperienceMin        int        `json:"experienceMin"`
	ExperienceMax        *int       `json:"experienceMax,omitempty"`
	SalaryMin            *int       `json:"salaryMin,omitempty"`
	SalaryMax            *int       `json:"salaryMax,omitempty"`
	SalaryCurrency       string     `json:"salaryCurrency,omitempty"`
	SalaryPeriod         string     `json:"salaryPeriod,omitempty"`
	SalaryVisible        bool       `json:"salaryVisible"`
	SkillsRequired       []string   `json:"skillsRequired"`
	SkillsOptional       []string   `json:"skillsOptional,omitempty"`
	EducationRequirement *string    `json:"educationRequirement,omitempty"`
	Industry             string     `json:"industry,omitempty"`
	Department           string     `json:"department,omitempty"`
	Status               string     `json:"status"`
	Views                int        `json:"views"`
	ApplicationCount     int        `json:"applicationCount"`
	PostedAt             time.Time  `json:"postedAt"`
	Deadline             *time.Time `json:"deadline,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

// RedactSalary clears salary fields on listings whose salary is hidden.
func (j *Job) RedactSalary() {
	if j.SalaryVisible {
		return
	}
	j.SalaryMin = nil
	j.SalaryMax = nil
	j.SalaryCurrency = ""
	j.SalaryPeriod = ""
}

// CandidateSkill is one named skill with a proficiency level.
type CandidateSkill struct {
	Name        string `json:"name"`
	Proficiency string `json:"proficiency,omitempty"` // beginner | intermediate | advanced | expert
}

// EducationRecord is one education entry on a candidate profile.
type EducationRecord struct {
	Degree      string `json:"degree"`
	Institution string `json:"institution,omitempty"`
	Year        int    `json:"year,omitempty"`
}

// Candidate represents a job seeker's profile.
type Candidate struct {
	ID               uuid.UUID         `json:"id"`
	Name             string            `json:"name"`
	Email            string            `json:"email"`
	City             string            `json:"city,omitempty"`
	ExperienceYears  int               `json:"experienceYears"`
	ExperienceMonths int               `json:"experienceMonths"`
	Skills           []CandidateSkill  `json:"skills"`
	Education        []EducationRecord `json:"education"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// Application links a candidate to a job they applied to.
type Application struct {
	ID          uuid.UUID `json:"id"`
	JobID       uuid.UUID `json:"jobId"`
	CandidateID uuid.UUID `json:"candidateId"`
	Status      string    `json:"status"`
	CoverLetter string    `json:"coverLetter,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplicationWithJob is an application joined with its job's headline fields.
type ApplicationWithJob struct {
	Application
	JobTitle string `json:"jobTitle"`
	Company  string `json:"company"`
}

// Review is a candidate-authored company review.
type Review struct {
	ID          uuid.UUID `json:"id"`
	Company     string    `json:"company"`
	CandidateID uuid.UUID `json:"candidateId"`
	Rating      int       `json:"rating"`
	Title       string    `json:"title"`
	Body        string    `json:"body,omitempty"`
	Pros        []string  `json:"pros,omitempty"`
	Cons        []string  `json:"cons,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// SalaryAggregate summarizes salary ranges across active listings for a title.
type SalaryAggregate struct {
	Title     string  `json:"title"`
	Listings  int     `json:"listings"`
	MinSalary float64 `json:"minSalary"`
	AvgSalary float64 `json:"avgSalary"`
	MaxSalary float64 `json:"maxSalary"`
}
