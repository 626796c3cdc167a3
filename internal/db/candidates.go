package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// GetCandidateByID retrieves a candidate profile. Returns nil when not found.
func (db *DB) GetCandidateByID(ctx context.Context, id uuid.UUID) (*Candidate, error) {
	var c Candidate
	var skillsJSON, educationJSON []byte

	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, city, experience_years, experience_months,
		        skills, education, created_at, updated_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.City, &c.ExperienceYears, &c.ExperienceMonths,
		&skillsJSON, &educationJSON, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	// Parse JSONB fields
	if skillsJSON != nil {
		_ = json.Unmarshal(skillsJSON, &c.Skills)
	}
	if educationJSON != nil {
		_ = json.Unmarshal(educationJSON, &c.Education)
	}

	return &c, nil
}

// CandidateUpdateInput contains the profile fields a candidate may edit.
type CandidateUpdateInput struct {
	Name             string
	City             string
	ExperienceYears  int
	ExperienceMonths int
	Skills           []CandidateSkill
	Education        []EducationRecord
}

// UpdateCandidate replaces the editable fields of a candidate profile.
// Returns nil when the candidate does not exist.
func (db *DB) UpdateCandidate(ctx context.Context, id uuid.UUID, input *CandidateUpdateInput) (*Candidate, error) {
	skillsJSON, err := json.Marshal(input.Skills)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal skills: %w", err)
	}
	educationJSON, err := json.Marshal(input.Education)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal education: %w", err)
	}

	var c Candidate
	var outSkills, outEducation []byte
	err = db.pool.QueryRow(ctx,
		`UPDATE candidates SET
		     name = $2, city = $3, experience_years = $4, experience_months = $5,
		     skills = $6, education = $7, updated_at = NOW()
		 WHERE id = $1
		 RETURNING id, name, email, city, experience_years, experience_months,
		           skills, education, created_at, updated_at`,
		id, input.Name, input.City, input.ExperienceYears, input.ExperienceMonths,
		skillsJSON, educationJSON,
	).Scan(&c.ID, &c.Name, &c.Email, &c.City, &c.ExperienceYears, &c.ExperienceMonths,
		&outSkills, &outEducation, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to update candidate: %w", err)
	}

	if outSkills != nil {
		_ = json.Unmarshal(outSkills, &c.Skills)
	}
	if outEducation != nil {
		_ = json.Unmarshal(outEducation, &c.Education)
	}

	return &c, nil
}
