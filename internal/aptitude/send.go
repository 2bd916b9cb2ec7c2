package aptitude

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/uuid"

	"github.com/hirestack/recruit-agent/internal/types"
)

// SendRequest is one assessment delivery to a set of candidates.
type SendRequest struct {
	Emails          []string               `json:"emails"`
	JobTitle        string                 `json:"job_title"`
	MCQCount        int                    `json:"mcq_count"`
	CodingCount     int                    `json:"coding_count"`
	AssessmentLink  string                 `json:"assessment_link"`
	MCQs            []types.MCQ            `json:"mcqs"`
	CodingQuestions []types.CodingQuestion `json:"coding_questions"`
}

// NewAssessmentLink builds the candidate-facing test link. The token
// identifies the assessment round in later analytics.
func NewAssessmentLink(testBaseURL, jobTitle string) (link, token string) {
	token = uuid.NewString()
	link = fmt.Sprintf("%s?role=%s&token=%s", testBaseURL, url.QueryEscape(jobTitle), token)
	return link, token
}

// Send delivers the selected questions to the given candidate emails.
// It returns the assessment token recorded by the backend.
func (c *Client) Send(ctx context.Context, testBaseURL, jobTitle string, emails []string, set *types.QuestionSet) (string, error) {
	cleaned := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); e != "" {
			cleaned = append(cleaned, e)
		}
	}
	if len(cleaned) == 0 {
		return "", fmt.Errorf("at least one candidate email is required")
	}
	if set == nil || (len(set.MCQs) == 0 && len(set.CodingQuestions) == 0) {
		return "", fmt.Errorf("select at least one question before sending")
	}

	link, token := NewAssessmentLink(testBaseURL, jobTitle)
	req := SendRequest{
		Emails:          cleaned,
		JobTitle:        jobTitle,
		MCQCount:        len(set.MCQs),
		CodingCount:     len(set.CodingQuestions),
		AssessmentLink:  link,
		MCQs:            set.MCQs,
		CodingQuestions: set.CodingQuestions,
	}

	if _, err := c.postJSON(ctx, "/send-assessment", req); err != nil {
		return "", err
	}

	c.logger.Info().Str("token", token).Int("recipients", len(cleaned)).
		Str("job_title", jobTitle).Msg("assessment sent")
	return token, nil
}

// Delete removes a sent assessment and all its submission data.
func (c *Client) Delete(ctx context.Context, token string) error {
	req, err := newDeleteRequest(ctx, c.baseURL+"/delete-assessment/"+url.PathEscape(token))
	if err != nil {
		return err
	}
	_, err = c.do(req)
	return err
}
