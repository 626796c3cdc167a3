package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicateApplication indicates the candidate already applied to the job.
var ErrDuplicateApplication = errors.New("candidate has already applied to this job")

// CreateApplication records a new application in its initial status.
// A (job, candidate) pair can only apply once.
func (db *DB) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, status, coverLetter string) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, status, cover_letter)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, job_id, candidate_id, status, cover_letter, created_at, updated_at`,
		jobID, candidateID, status, coverLetter,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &a, nil
}

// GetApplicationByID retrieves an application. Returns nil when not found.
func (db *DB) GetApplicationByID(ctx context.Context, id uuid.UUID) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, status, cover_letter, created_at, updated_at
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// ListApplicationsByCandidate returns a candidate's applications, newest
// first, joined with the job headline, plus the total count.
func (db *DB) ListApplicationsByCandidate(ctx context.Context, candidateID uuid.UUID, limit, offset int) ([]ApplicationWithJob, int, error) {
	var total int
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM applications WHERE candidate_id = $1`, candidateID,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count applications: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT a.id, a.job_id, a.candidate_id, a.status, a.cover_letter,
		        a.created_at, a.updated_at, j.title, j.company
		 FROM applications a
		 JOIN jobs j ON j.id = a.job_id
		 WHERE a.candidate_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2 OFFSET $3`,
		candidateID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []ApplicationWithJob
	for rows.Next() {
		var a ApplicationWithJob
		if err := rows.Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter,
			&a.CreatedAt, &a.UpdatedAt, &a.JobTitle, &a.Company); err != nil {
			return nil, 0, err
		}
		apps = append(apps, a)
	}
	return apps, total, rows.Err()
}

// UpdateApplicationStatus moves an application to a new status. The caller
// checks the transition against the state machine first.
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status string) (*Application, error) {
	var a Application
	err := db.pool.QueryRow(ctx,
		`UPDATE applications SET status = $2, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, job_id, candidate_id, status, cover_letter, created_at, updated_at`,
		id, status,
	).Scan(&a.ID, &a.JobID, &a.CandidateID, &a.Status, &a.CoverLetter, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update application status: %w", err)
	}
	return &a, nil
}
