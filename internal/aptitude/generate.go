package aptitude

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hirestack/recruit-agent/internal/types"
)

// rawMCQ covers the field spellings the generator emits for multiple-choice
// questions. The variants are collapsed here, once, at the boundary.
type rawMCQ struct {
	Question      string   `json:"question"`
	Title         string   `json:"title"`
	Name          string   `json:"name"`
	Options       []string `json:"options"`
	Answer        string   `json:"answer"`
	CorrectAnswer string   `json:"correct_answer"`
}

// rawCoding covers the field spellings for coding questions.
type rawCoding struct {
	Title            string `json:"title"`
	Name             string `json:"name"`
	ProblemName      string `json:"problem_name"`
	Description      string `json:"description"`
	ProblemStatement string `json:"problem_statement"`
	ExampleInput     string `json:"example_input"`
	Input            string `json:"input"`
	ExampleOutput    string `json:"example_output"`
	Output           string `json:"output"`
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func (r *rawMCQ) normalize() (types.MCQ, error) {
	q := firstNonEmpty(r.Question, r.Title, r.Name)
	if q == "" {
		return types.MCQ{}, fmt.Errorf("mcq is missing question text")
	}
	return types.MCQ{
		Question: q,
		Options:  r.Options,
		Answer:   firstNonEmpty(r.Answer, r.CorrectAnswer),
	}, nil
}

func (r *rawCoding) normalize() (types.CodingQuestion, error) {
	title := firstNonEmpty(r.Title, r.Name, r.ProblemName)
	if title == "" {
		return types.CodingQuestion{}, fmt.Errorf("coding question is missing a title")
	}
	return types.CodingQuestion{
		Title:         title,
		Description:   firstNonEmpty(r.Description, r.ProblemStatement),
		ExampleInput:  firstNonEmpty(r.ExampleInput, r.Input),
		ExampleOutput: firstNonEmpty(r.ExampleOutput, r.Output),
	}, nil
}

// Generate asks the service for assessment questions matching a job
// description and returns them in normalized form.
func (c *Client) Generate(ctx context.Context, jdText string) (*types.QuestionSet, error) {
	if strings.TrimSpace(jdText) == "" {
		return nil, fmt.Errorf("job description text is empty")
	}

	body, err := c.postJSON(ctx, "/generate-aptitude", map[string]string{"jd_text": jdText})
	if err != nil {
		return nil, err
	}

	var raw struct {
		MCQs            []rawMCQ    `json:"mcqs"`
		CodingQuestions []rawCoding `json:"coding_questions"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode generated questions: %w", err)
	}

	set := &types.QuestionSet{}
	for i, m := range raw.MCQs {
		mcq, err := m.normalize()
		if err != nil {
			c.logger.Warn().Int("index", i).Err(err).Msg("skipping malformed mcq")
			continue
		}
		set.MCQs = append(set.MCQs, mcq)
	}
	for i, q := range raw.CodingQuestions {
		coding, err := q.normalize()
		if err != nil {
			c.logger.Warn().Int("index", i).Err(err).Msg("skipping malformed coding question")
			continue
		}
		set.CodingQuestions = append(set.CodingQuestions, coding)
	}

	c.logger.Info().Int("mcqs", len(set.MCQs)).
		Int("coding", len(set.CodingQuestions)).Msg("generated question set")
	return set, nil
}

// ExtractJobTitle pulls the role title out of a job description that
// follows the generated-JD layout ("JOB TITLE: ..."). Falls back to a
// generic assessment title.
func ExtractJobTitle(jdText string) string {
	const marker = "JOB TITLE:"
	for _, line := range strings.Split(jdText, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(strings.ToUpper(trimmed), marker) {
			if title := strings.TrimSpace(trimmed[len(marker):]); title != "" {
				return title
			}
		}
	}
	return "Technical Assessment"
}
