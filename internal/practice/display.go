package practice

import (
	"math/rand"

	"github.com/nikhil/job-portal/internal/matching"
)

// DisplayFeedback is the response shape for practice results. Category
// scores carry display-only jitter; the overall score is the true value.
type DisplayFeedback struct {
	OverallScore int             `json:"overallScore"`
	Categories   []CategoryScore `json:"categories"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
}

// ForDisplay formats feedback for the API response, perturbing category
// scores for display variety. Jitter never touches the stored feedback or
// the overall score.
func ForDisplay(f *Feedback, rng *rand.Rand) DisplayFeedback {
	categories := make([]CategoryScore, len(f.Categories))
	for i, c := range f.Categories {
		categories[i] = CategoryScore{
			Name:    c.Name,
			Score:   matching.JitterScore(c.Score, rng),
			Comment: c.Comment,
		}
	}
	return DisplayFeedback{
		OverallScore: f.OverallScore,
		Categories:   categories,
		Strengths:    f.Strengths,
		Improvements: f.Improvements,
	}
}
