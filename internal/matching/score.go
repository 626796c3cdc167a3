// Package matching computes job/candidate compatibility scores.
package matching

import (
	"math"
	"strings"

	"github.com/nikhil/job-portal/internal/db"
)

// Weights for scoring dimensions. Dimensions that don't apply to a given
// job/candidate pair are excluded from the denominator and the result is
// renormalized over the weights that remain.
const (
	skillsWeight     = 40.0
	experienceWeight = 30.0
	locationWeight   = 15.0
	educationWeight  = 15.0

	// Candidates within one year of a job's minimum experience get half
	// credit for the experience dimension.
	experienceGraceYears = 1.0

	// Education is placeholder scoring: a flat award out of the full
	// weight whenever the dimension applies, with no degree matching.
	educationFlatAward = 10.0
)

// Dimension is one weighted component of a match score.
type Dimension struct {
	Awarded    float64 `json:"awarded"`
	Possible   float64 `json:"possible"`
	Applicable bool    `json:"applicable"`
}

// Breakdown is the per-dimension detail behind an overall match score.
type Breakdown struct {
	Skills     Dimension `json:"skills"`
	Experience Dimension `json:"experience"`
	Location   Dimension `json:"location"`
	Education  Dimension `json:"education"`
	Overall    int       `json:"overall"`
}

// Score returns the overall 0-100 compatibility score for a job/candidate
// pair. Deterministic for fixed inputs, no side effects.
func Score(job *db.Job, candidate *db.Candidate) int {
	return ScoreBreakdown(job, candidate).Overall
}

// ScoreBreakdown computes the match score with its per-dimension detail.
// The overall value is the sum of awarded points renormalized over the
// applicable weights, rounded to the nearest integer. A pair with no
// applicable dimension scores 0.
func ScoreBreakdown(job *db.Job, candidate *db.Candidate) Breakdown {
	b := Breakdown{
		Skills:     skillsScore(job, candidate),
		Experience: experienceScore(job, candidate),
		Location:   locationScore(job, candidate),
		Education:  educationScore(job, candidate),
	}

	awarded := b.Skills.Awarded + b.Experience.Awarded + b.Location.Awarded + b.Education.Awarded
	possible := b.Skills.Possible + b.Experience.Possible + b.Location.Possible + b.Education.Possible
	if possible > 0 {
		b.Overall = int(math.Round(awarded / possible * 100))
	}
	return b
}

// skillsScore awards the overlap between the job's required skills and the
// candidate's skills, case-insensitively. A job that declares no required
// skills skips this dimension entirely.
func skillsScore(job *db.Job, candidate *db.Candidate) Dimension {
	if len(job.SkillsRequired) == 0 {
		return Dimension{}
	}

	required := make(map[string]bool, len(job.SkillsRequired))
	for _, s := range job.SkillsRequired {
		required[strings.ToLower(s)] = true
	}

	matched := 0
	seen := make(map[string]bool, len(candidate.Skills))
	for _, s := range candidate.Skills {
		name := strings.ToLower(s.Name)
		if required[name] && !seen[name] {
			matched++
			seen[name] = true
		}
	}

	return Dimension{
		Awarded:    float64(matched) / float64(len(required)) * skillsWeight,
		Possible:   skillsWeight,
		Applicable: true,
	}
}

// experienceScore awards full credit inside the job's experience band, half
// credit within the grace window below the minimum, and zero otherwise. The
// dimension always counts toward the denominator.
func experienceScore(job *db.Job, candidate *db.Candidate) Dimension {
	years := float64(candidate.ExperienceYears) + float64(candidate.ExperienceMonths)/12

	min := float64(job.ExperienceMin)
	withinMax := job.ExperienceMax == nil || years <= float64(*job.ExperienceMax)

	var awarded float64
	switch {
	case years >= min && withinMax:
		awarded = experienceWeight
	case years >= min-experienceGraceYears:
		awarded = experienceWeight / 2
	}

	return Dimension{Awarded: awarded, Possible: experienceWeight, Applicable: true}
}

// locationScore awards full credit on a case-insensitive city match. Remote
// jobs satisfy location regardless of the candidate's city.
func locationScore(job *db.Job, candidate *db.Candidate) Dimension {
	d := Dimension{Possible: locationWeight, Applicable: true}
	if job.WorkMode == db.WorkModeRemote {
		d.Awarded = locationWeight
	} else if job.City != "" && strings.EqualFold(job.City, candidate.City) {
		d.Awarded = locationWeight
	}
	return d
}

// educationScore applies only when the job declares an education requirement
// and the candidate has at least one education record; it then grants the
// flat placeholder award. Otherwise the dimension is skipped.
func educationScore(job *db.Job, candidate *db.Candidate) Dimension {
	if job.EducationRequirement == nil || *job.EducationRequirement == "" {
		return Dimension{}
	}
	if len(candidate.Education) == 0 {
		return Dimension{}
	}
	return Dimension{Awarded: educationFlatAward, Possible: educationWeight, Applicable: true}
}
