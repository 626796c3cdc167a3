package practice

import (
	"context"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient returns a canned response for every prompt.
type fakeClient struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClient) GenerateJSON(_ context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.response, f.err
}

func (f *fakeClient) Close() error { return nil }

const validFeedback = `{
	"overallScore": 72,
	"categories": [
		{"name": "communication", "score": 80},
		{"name": "technical depth", "score": 65, "comment": "solid fundamentals"}
	],
	"strengths": ["clear structure"],
	"improvements": ["quantify impact"]
}`

func TestGenerateQuestions(t *testing.T) {
	client := &fakeClient{response: `["Tell me about yourself", "Why this role?"]`}
	svc, err := NewService(client)
	require.NoError(t, err)

	questions, err := svc.GenerateQuestions(context.Background(), "Backend Engineer", []string{"Go", "Postgres"}, 2)
	require.NoError(t, err)
	assert.Len(t, questions, 2)
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Backend Engineer")
	assert.Contains(t, client.prompts[0], "Go, Postgres")
}

func TestGenerateQuestions_BadJSON(t *testing.T) {
	svc, err := NewService(&fakeClient{response: `not json`})
	require.NoError(t, err)

	_, err = svc.GenerateQuestions(context.Background(), "Backend Engineer", nil, 3)
	assert.Error(t, err)
}

func TestEvaluateAnswers(t *testing.T) {
	svc, err := NewService(&fakeClient{response: validFeedback})
	require.NoError(t, err)

	feedback, err := svc.EvaluateAnswers(context.Background(), "Backend Engineer", []QA{
		{Question: "Tell me about yourself", Answer: "I build APIs."},
	})
	require.NoError(t, err)
	assert.Equal(t, 72, feedback.OverallScore)
	require.Len(t, feedback.Categories, 2)
	assert.Equal(t, "communication", feedback.Categories[0].Name)
}

func TestEvaluateAnswers_SchemaRejectsBadShape(t *testing.T) {
	tests := []struct {
		name     string
		response string
	}{
		{"missing categories", `{"overallScore": 50, "strengths": [], "improvements": []}`},
		{"score out of range", `{"overallScore": 150, "categories": [{"name": "a", "score": 10}], "strengths": [], "improvements": []}`},
		{"empty categories", `{"overallScore": 50, "categories": [], "strengths": [], "improvements": []}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := NewService(&fakeClient{response: tt.response})
			require.NoError(t, err)

			_, err = svc.EvaluateAnswers(context.Background(), "Backend Engineer", []QA{
				{Question: "q", Answer: "a"},
			})
			assert.Error(t, err)
		})
	}
}

func TestEvaluateAnswers_EmptyTranscript(t *testing.T) {
	svc, err := NewService(&fakeClient{response: validFeedback})
	require.NoError(t, err)

	_, err = svc.EvaluateAnswers(context.Background(), "Backend Engineer", nil)
	assert.Error(t, err)
}

func TestForDisplay_JittersCategoriesOnly(t *testing.T) {
	feedback := &Feedback{
		OverallScore: 72,
		Categories: []CategoryScore{
			{Name: "communication", Score: 80},
			{Name: "technical depth", Score: 65},
		},
		Strengths: []string{"clear"},
	}

	display := ForDisplay(feedback, rand.New(rand.NewSource(7)))

	assert.Equal(t, 72, display.OverallScore) // never jittered
	for i, c := range display.Categories {
		true_ := feedback.Categories[i].Score
		assert.GreaterOrEqual(t, c.Score, true_-5)
		assert.LessOrEqual(t, c.Score, true_+5)
	}
	// source feedback untouched
	assert.Equal(t, 80, feedback.Categories[0].Score)
}
