package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// ReviewCreateInput contains the fields a candidate supplies for a review.
type ReviewCreateInput struct {
	Company     string
	CandidateID uuid.UUID
	Rating      int
	Title       string
	Body        string
	Pros        []string
	Cons        []string
}

// CreateReview stores a company review.
func (db *DB) CreateReview(ctx context.Context, input *ReviewCreateInput) (*Review, error) {
	if input.Pros == nil {
		input.Pros = []string{}
	}
	if input.Cons == nil {
		input.Cons = []string{}
	}

	var r Review
	err := db.pool.QueryRow(ctx,
		`INSERT INTO reviews (company, candidate_id, rating, title, body, pros, cons)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, company, candidate_id, rating, title, body, pros, cons, created_at`,
		input.Company, input.CandidateID, input.Rating, input.Title, input.Body,
		input.Pros, input.Cons,
	).Scan(&r.ID, &r.Company, &r.CandidateID, &r.Rating, &r.Title, &r.Body,
		&r.Pros, &r.Cons, &r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return &r, nil
}

// ListReviewsByCompany returns a company's reviews, newest first, with the
// total count and the average rating across all of them.
func (db *DB) ListReviewsByCompany(ctx context.Context, company string, limit, offset int) ([]Review, int, float64, error) {
	var total int
	var avgRating float64
	err := db.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(AVG(rating), 0) FROM reviews WHERE company = $1`,
		company,
	).Scan(&total, &avgRating)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to count reviews: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, company, candidate_id, rating, title, body, pros, cons, created_at
		 FROM reviews
		 WHERE company = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		company, limit, offset,
	)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Company, &r.CandidateID, &r.Rating, &r.Title,
			&r.Body, &r.Pros, &r.Cons, &r.CreatedAt); err != nil {
			return nil, 0, 0, err
		}
		reviews = append(reviews, r)
	}
	return reviews, total, avgRating, rows.Err()
}
