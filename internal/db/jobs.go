package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/nikhil/job-portal/internal/search"
)

const jobColumns = `id, title, description, company, employment_type, work_mode,
		        city, state, country, experience_min, experience_max,
		        salary_min, salary_max, salary_currency, salary_period, salary_visible,
		        skills_required, skills_optional, education_requirement,
		        industry, department, status, views, application_count,
		        posted_at, deadline, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanJob(row rowScanner) (*Job, error) {
	var j Job
	err := row.Scan(&j.ID, &j.Title, &j.Description, &j.Company, &j.EmploymentType,
		&j.WorkMode, &j.City, &j.State, &j.Country, &j.ExperienceMin, &j.ExperienceMax,
		&j.SalaryMin, &j.SalaryMax, &j.SalaryCurrency, &j.SalaryPeriod, &j.SalaryVisible,
		&j.SkillsRequired, &j.SkillsOptional, &j.EducationRequirement,
		&j.Industry, &j.Department, &j.Status, &j.Views, &j.ApplicationCount,
		&j.PostedAt, &j.Deadline, &j.CreatedAt, &j.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// JobCreateInput contains the fields an employer supplies when posting a job.
type JobCreateInput struct {
	Title                string
	Description          string
	Company              string
	EmploymentType       string
	WorkMode             string
	City                 string
	State                string
	Country              string
	ExperienceMin        int
	ExperienceMax        *int
	SalaryMin            *int
	SalaryMax            *int
	SalaryCurrency       string
	SalaryPeriod         string
	SalaryVisible        bool
	SkillsRequired       []string
	SkillsOptional       []string
	EducationRequirement *string
	Industry             string
	Department           string
	Status               string
	Deadline             *time.Time
}

// CreateJob inserts a new job listing and returns the stored row.
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	status := input.Status
	if status == "" {
		status = JobStatusDraft
	}
	if input.SkillsRequired == nil {
		input.SkillsRequired = []string{}
	}
	if input.SkillsOptional == nil {
		input.SkillsOptional = []string{}
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, company, employment_type, work_mode,
		                   city, state, country, experience_min, experience_max,
		                   salary_min, salary_max, salary_currency, salary_period, salary_visible,
		                   skills_required, skills_optional, education_requirement,
		                   industry, department, status, posted_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
		         $16, $17, $18, $19, $20, $21, NOW())
		 RETURNING `+jobColumns,
		input.Title, input.Description, input.Company, input.EmploymentType, input.WorkMode,
		input.City, input.State, input.Country, input.ExperienceMin, input.ExperienceMax,
		input.SalaryMin, input.SalaryMax, input.SalaryCurrency, input.SalaryPeriod, input.SalaryVisible,
		input.SkillsRequired, input.SkillsOptional, input.EducationRequirement,
		input.Industry, input.Department, status,
	)

	job, err := scanJob(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return job, nil
}

// GetJobByID retrieves a job listing by its ID. Returns nil when not found.
func (db *DB) GetJobByID(ctx context.Context, id uuid.UUID) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = $1`, id)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return job, nil
}

// SearchJobs executes a built search query with limit/offset pagination,
// returning the page of jobs and the total matching count.
func (db *DB) SearchJobs(ctx context.Context, q search.Query, limit, offset int) ([]Job, int, error) {
	whereClause := q.WhereClause()

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM jobs %s", whereClause)
	var total int
	if err := db.pool.QueryRow(ctx, countQuery, q.Args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count jobs: %w", err)
	}

	argIndex := len(q.Args) + 1
	args := append(q.Args, limit, offset)
	query := fmt.Sprintf(
		`SELECT %s FROM jobs %s ORDER BY %s LIMIT $%d OFFSET $%d`,
		jobColumns, whereClause, q.OrderBy, argIndex, argIndex+1,
	)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to search jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, 0, err
		}
		jobs = append(jobs, *job)
	}
	return jobs, total, rows.Err()
}

// UpdateJob replaces the mutable fields of a listing.
func (db *DB) UpdateJob(ctx context.Context, id uuid.UUID, input *JobCreateInput) (*Job, error) {
	row := db.pool.QueryRow(ctx,
		`UPDATE jobs SET
		     title = $2, description = $3, company = $4, employment_type = $5,
		     work_mode = $6, city = $7, state = $8, country = $9,
		     experience_min = $10, experience_max = $11,
		     salary_min = $12, salary_max = $13, salary_currency = $14,
		     salary_period = $15, salary_visible = $16,
		     skills_required = $17, skills_optional = $18, education_requirement = $19,
		     industry = $20, department = $21, deadline = $22, updated_at = NOW()
		 WHERE id = $1
		 RETURNING `+jobColumns,
		id, input.Title, input.Description, input.Company, input.EmploymentType,
		input.WorkMode, input.City, input.State, input.Country,
		input.ExperienceMin, input.ExperienceMax,
		input.SalaryMin, input.SalaryMax, input.SalaryCurrency,
		input.SalaryPeriod, input.SalaryVisible,
		input.SkillsRequired, input.SkillsOptional, input.EducationRequirement,
		input.Industry, input.Department, input.Deadline,
	)

	job, err := scanJob(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update job: %w", err)
	}
	return job, nil
}

// UpdateJobStatus moves a listing to a new lifecycle status. The caller is
// responsible for checking the transition is legal.
func (db *DB) UpdateJobStatus(ctx context.Context, id uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE jobs SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return fmt.Errorf("failed to update job status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// IncrementJobViews bumps the durable view counter for a listing.
func (db *DB) IncrementJobViews(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment job views: %w", err)
	}
	return nil
}

// IncrementApplicationCount bumps the application counter for a listing.
func (db *DB) IncrementApplicationCount(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE jobs SET application_count = application_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment application count: %w", err)
	}
	return nil
}

// ListJobsByIDs fetches listings by ID, preserving the order of ids.
func (db *DB) ListJobsByIDs(ctx context.Context, ids []uuid.UUID) ([]Job, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobColumns+` FROM jobs WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs by ids: %w", err)
	}
	defer rows.Close()

	byID := make(map[uuid.UUID]Job, len(ids))
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		byID[job.ID] = *job
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	ordered := make([]Job, 0, len(ids))
	for _, id := range ids {
		if job, ok := byID[id]; ok {
			ordered = append(ordered, job)
		}
	}
	return ordered, nil
}

// SalaryByTitle aggregates visible salary ranges across active listings
// whose title matches the given term.
func (db *DB) SalaryByTitle(ctx context.Context, title string) (*SalaryAggregate, error) {
	agg := SalaryAggregate{Title: title}
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*),
		        COALESCE(MIN(salary_min), 0),
		        COALESCE(AVG((salary_min + salary_max) / 2.0), 0),
		        COALESCE(MAX(salary_max), 0)
		 FROM jobs
		 WHERE status = 'active' AND salary_visible
		   AND salary_min IS NOT NULL AND salary_max IS NOT NULL
		   AND title ILIKE $1`,
		"%"+title+"%",
	).Scan(&agg.Listings, &agg.MinSalary, &agg.AvgSalary, &agg.MaxSalary)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate salaries: %w", err)
	}
	return &agg, nil
}
