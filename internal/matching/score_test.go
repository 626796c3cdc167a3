package matching

import (
	"math/rand"
	"testing"

	"github.com/nikhil/job-portal/internal/db"
	"github.com/stretchr/testify/assert"
)

func intPtr(n int) *int { return &n }

func strPtr(s string) *string { return &s }

func skills(names ...string) []db.CandidateSkill {
	out := make([]db.CandidateSkill, len(names))
	for i, n := range names {
		out[i] = db.CandidateSkill{Name: n}
	}
	return out
}

func TestScore_OnsiteCityMatch(t *testing.T) {
	job := &db.Job{
		SkillsRequired: []string{"React", "Node.js"},
		ExperienceMin:  2,
		ExperienceMax:  intPtr(5),
		City:           "Bangalore",
		WorkMode:       db.WorkModeOnsite,
	}
	candidate := &db.Candidate{
		Skills:          skills("react", "python"),
		ExperienceYears: 3,
		City:            "Bangalore",
	}

	b := ScoreBreakdown(job, candidate)

	// skills 1/2 * 40 = 20, experience full 30, location 15, education
	// skipped: (20+30+15) / 85 * 100 ≈ 76.
	assert.Equal(t, 20.0, b.Skills.Awarded)
	assert.Equal(t, 30.0, b.Experience.Awarded)
	assert.Equal(t, 15.0, b.Location.Awarded)
	assert.False(t, b.Education.Applicable)
	assert.Equal(t, 76, b.Overall)
}

func TestScore_RemoteOverridesCityMismatch(t *testing.T) {
	job := &db.Job{
		SkillsRequired: []string{"React", "Node.js"},
		ExperienceMin:  2,
		ExperienceMax:  intPtr(5),
		City:           "Bangalore",
		WorkMode:       db.WorkModeRemote,
	}
	candidate := &db.Candidate{
		Skills:          skills("react", "python"),
		ExperienceYears: 3,
		City:            "Mumbai",
	}

	b := ScoreBreakdown(job, candidate)

	assert.Equal(t, 15.0, b.Location.Awarded)
	assert.Equal(t, 76, b.Overall)
}

func TestScore_ExperienceBelowGraceWindow(t *testing.T) {
	job := &db.Job{ExperienceMin: 2}
	candidate := &db.Candidate{ExperienceYears: 0, ExperienceMonths: 6}

	b := ScoreBreakdown(job, candidate)

	// 0.5 years < min-1 = 1: zero credit, but the 30 stays in the denominator.
	assert.Equal(t, 0.0, b.Experience.Awarded)
	assert.Equal(t, 30.0, b.Experience.Possible)
}

func TestScore_ExperienceHalfCredit(t *testing.T) {
	job := &db.Job{ExperienceMin: 3}
	candidate := &db.Candidate{ExperienceYears: 2, ExperienceMonths: 3}

	b := ScoreBreakdown(job, candidate)

	assert.Equal(t, 15.0, b.Experience.Awarded)
}

func TestScore_ExperienceMaxUnboundedWhenAbsent(t *testing.T) {
	job := &db.Job{ExperienceMin: 2}
	candidate := &db.Candidate{ExperienceYears: 20}

	b := ScoreBreakdown(job, candidate)

	assert.Equal(t, 30.0, b.Experience.Awarded)
}

func TestScore_DisjointSkillsContributeZeroNotSkipped(t *testing.T) {
	job := &db.Job{SkillsRequired: []string{"Go", "Kubernetes"}}
	candidate := &db.Candidate{Skills: skills("PHP", "Ruby")}

	b := ScoreBreakdown(job, candidate)

	assert.True(t, b.Skills.Applicable)
	assert.Equal(t, 0.0, b.Skills.Awarded)
	assert.Equal(t, 40.0, b.Skills.Possible)
}

func TestScore_NoDeclaredSkillsExcludedFromDenominator(t *testing.T) {
	job := &db.Job{
		ExperienceMin: 0,
		City:          "Pune",
		WorkMode:      db.WorkModeOnsite,
	}
	candidate := &db.Candidate{ExperienceYears: 2, City: "Pune"}

	b := ScoreBreakdown(job, candidate)

	// Only experience (30) + location (15) apply: 45/45 -> 100.
	assert.False(t, b.Skills.Applicable)
	assert.Equal(t, 45.0, b.Experience.Possible+b.Location.Possible)
	assert.Equal(t, 100, b.Overall)
}

func TestScore_EducationFlatAward(t *testing.T) {
	job := &db.Job{
		EducationRequirement: strPtr("bachelor"),
		ExperienceMin:        0,
	}
	candidate := &db.Candidate{
		ExperienceYears: 1,
		Education:       []db.EducationRecord{{Degree: "B.Tech"}},
	}

	b := ScoreBreakdown(job, candidate)

	assert.True(t, b.Education.Applicable)
	assert.Equal(t, 10.0, b.Education.Awarded)
	assert.Equal(t, 15.0, b.Education.Possible)
}

func TestScore_EducationSkippedWithoutRecords(t *testing.T) {
	job := &db.Job{EducationRequirement: strPtr("bachelor")}
	candidate := &db.Candidate{}

	b := ScoreBreakdown(job, candidate)

	assert.False(t, b.Education.Applicable)
	assert.Equal(t, 0.0, b.Education.Possible)
}

func TestScore_Deterministic(t *testing.T) {
	job := &db.Job{
		SkillsRequired: []string{"Go", "Postgres", "Docker"},
		ExperienceMin:  1,
		City:           "Chennai",
	}
	candidate := &db.Candidate{
		Skills:          skills("go", "docker"),
		ExperienceYears: 4,
		City:            "chennai",
	}

	first := Score(job, candidate)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Score(job, candidate))
	}
}

func TestScore_DuplicateCandidateSkillsCountOnce(t *testing.T) {
	job := &db.Job{SkillsRequired: []string{"Go", "React"}}
	candidate := &db.Candidate{Skills: skills("Go", "go", "GO")}

	b := ScoreBreakdown(job, candidate)

	assert.Equal(t, 20.0, b.Skills.Awarded)
}

func TestJitterScore_Bounds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for _, score := range []int{0, 3, 50, 98, 100} {
		for i := 0; i < 100; i++ {
			j := JitterScore(score, rng)
			assert.GreaterOrEqual(t, j, 0)
			assert.LessOrEqual(t, j, 100)
			assert.LessOrEqual(t, j, score+5)
			assert.GreaterOrEqual(t, j, score-5)
		}
	}
}
