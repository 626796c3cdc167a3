// Package practice provides the interview-practice service: question
// generation and answer evaluation via an injected LLM client.
package practice

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/nikhil/job-portal/internal/llm"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed feedback_schema.json
var feedbackSchemaJSON string

// QA is one question/answer pair from a practice transcript.
type QA struct {
	Question string `json:"question" validate:"required"`
	Answer   string `json:"answer" validate:"required"`
}

// CategoryScore is one evaluation dimension of a practice session.
type CategoryScore struct {
	Name    string `json:"name"`
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

// Feedback is the evaluated result of a practice session. Scores here are
// the true model outputs; display jitter is applied separately.
type Feedback struct {
	OverallScore int             `json:"overallScore"`
	Categories   []CategoryScore `json:"categories"`
	Strengths    []string        `json:"strengths"`
	Improvements []string        `json:"improvements"`
}

// Service runs interview practice sessions against an LLM. It is constructed
// once at process start and injected into handlers; there is no package
// state.
type Service struct {
	client llm.Client
	schema *gojsonschema.Schema
}

// NewService creates a practice service around an LLM client.
func NewService(client llm.Client) (*Service, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(feedbackSchemaJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to compile feedback schema: %w", err)
	}
	return &Service{client: client, schema: schema}, nil
}

// GenerateQuestions asks the LLM for n interview questions for a role,
// optionally focused on the given skills.
func (s *Service) GenerateQuestions(ctx context.Context, role string, skills []string, n int) ([]string, error) {
	if n <= 0 {
		n = 5
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Generate %d interview questions for a %s position.\n", n, role)
	if len(skills) > 0 {
		fmt.Fprintf(&b, "Focus on these skills: %s.\n", strings.Join(skills, ", "))
	}
	b.WriteString(`Respond with a JSON array of question strings only, no commentary.`)

	raw, err := s.client.GenerateJSON(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("failed to generate questions: %w", err)
	}

	var questions []string
	if err := json.Unmarshal([]byte(raw), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions JSON: %w", err)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("model returned no questions")
	}
	return questions, nil
}

// EvaluateAnswers scores a practice transcript. The model's JSON output is
// validated against the feedback schema before being trusted.
func (s *Service) EvaluateAnswers(ctx context.Context, role string, transcript []QA) (*Feedback, error) {
	if len(transcript) == 0 {
		return nil, fmt.Errorf("transcript is empty")
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are evaluating a mock interview for a %s position.\n", role)
	b.WriteString("Score the candidate's answers.\n\n")
	for i, qa := range transcript {
		fmt.Fprintf(&b, "Q%d: %s\nA%d: %s\n\n", i+1, qa.Question, i+1, qa.Answer)
	}
	b.WriteString(`Respond with JSON matching this shape exactly:
{"overallScore": <0-100>, "categories": [{"name": "...", "score": <0-100>, "comment": "..."}], "strengths": ["..."], "improvements": ["..."]}
Use categories: communication, technical depth, problem solving, role fit.`)

	raw, err := s.client.GenerateJSON(ctx, b.String())
	if err != nil {
		return nil, fmt.Errorf("failed to evaluate answers: %w", err)
	}

	if err := s.validateFeedback(raw); err != nil {
		return nil, err
	}

	var feedback Feedback
	if err := json.Unmarshal([]byte(raw), &feedback); err != nil {
		return nil, fmt.Errorf("failed to parse feedback JSON: %w", err)
	}
	return &feedback, nil
}

// validateFeedback checks model output against the embedded JSON schema.
func (s *Service) validateFeedback(raw string) error {
	result, err := s.schema.Validate(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("feedback is not valid JSON: %w", err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("feedback failed schema validation: %s", strings.Join(msgs, "; "))
	}
	return nil
}
