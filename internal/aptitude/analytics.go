package aptitude

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/hirestack/recruit-agent/internal/types"
)

// Analytics is the raw payload of the analytics endpoint.
type Analytics struct {
	Assessments []types.Assessment `json:"assessments"`
	Submissions []types.Submission `json:"submissions"`
}

// AttemptStatus classifies one candidate's standing within an assessment.
type AttemptStatus string

const (
	AttemptPending   AttemptStatus = "pending"
	AttemptCompleted AttemptStatus = "attempted"
	AttemptFlagged   AttemptStatus = "flagged"
)

// AssessmentRow summarizes one sent assessment for the dashboard table.
type AssessmentRow struct {
	Assessment types.Assessment
	Attempted  int
	Pending    int
}

// CandidateRow is one candidate line in the per-assessment detail view.
// Scores are display strings because legacy submissions carry a combined
// score/total pair instead of split MCQ and coding scores.
type CandidateRow struct {
	Email       string
	Status      AttemptStatus
	MCQScore    string
	CodingScore string
	Timestamp   float64
}

// Summary is the computed dashboard state.
type Summary struct {
	TotalSent      int
	TotalAttempted int
	CompletionRate int // percent, rounded
	Rows           []AssessmentRow
}

// FetchAnalytics retrieves the raw assessment/submission database.
func (c *Client) FetchAnalytics(ctx context.Context) (*Analytics, error) {
	body, err := c.getJSON(ctx, "/get-analytics")
	if err != nil {
		return nil, err
	}
	var a Analytics
	if err := json.Unmarshal(body, &a); err != nil {
		return nil, fmt.Errorf("failed to decode analytics: %w", err)
	}
	return &a, nil
}

// Summarize computes the dashboard stats from raw analytics.
func Summarize(a *Analytics) Summary {
	s := Summary{}
	for _, assessment := range a.Assessments {
		attempted := 0
		for _, sub := range a.Submissions {
			if sub.Token == assessment.Token {
				attempted++
			}
		}
		s.TotalSent += len(assessment.Emails)
		s.Rows = append(s.Rows, AssessmentRow{
			Assessment: assessment,
			Attempted:  attempted,
			Pending:    len(assessment.Emails) - attempted,
		})
	}
	s.TotalAttempted = len(a.Submissions)
	if s.TotalSent > 0 {
		s.CompletionRate = int(math.Round(float64(s.TotalAttempted) / float64(s.TotalSent) * 100))
	}
	return s
}

// CandidateRows builds the detail view for one assessment token: every
// invited email with its attempt status and scores.
func CandidateRows(a *Analytics, token string) ([]CandidateRow, error) {
	var assessment *types.Assessment
	for i := range a.Assessments {
		if a.Assessments[i].Token == token {
			assessment = &a.Assessments[i]
			break
		}
	}
	if assessment == nil {
		return nil, fmt.Errorf("no assessment found for token %s", token)
	}

	subsByEmail := make(map[string]*types.Submission)
	for i := range a.Submissions {
		if a.Submissions[i].Token == token {
			subsByEmail[a.Submissions[i].Email] = &a.Submissions[i]
		}
	}

	rows := make([]CandidateRow, 0, len(assessment.Emails))
	for _, email := range assessment.Emails {
		row := CandidateRow{Email: email, Status: AttemptPending, MCQScore: "-", CodingScore: "-"}
		if sub, ok := subsByEmail[email]; ok {
			row.Status = AttemptCompleted
			if sub.Flagged() {
				row.Status = AttemptFlagged
			}
			row.MCQScore = mcqScore(sub)
			row.CodingScore = codingScore(sub)
			row.Timestamp = sub.Timestamp
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// mcqScore renders the MCQ score, falling back to the legacy combined
// score/total fields.
func mcqScore(sub *types.Submission) string {
	if sub.MCQScore != nil && sub.MCQTotal != nil {
		return fmt.Sprintf("%d/%d", *sub.MCQScore, *sub.MCQTotal)
	}
	if sub.Score != nil && sub.Total != nil {
		return fmt.Sprintf("%d/%d", *sub.Score, *sub.Total)
	}
	return "-"
}

func codingScore(sub *types.Submission) string {
	if sub.CodingScore != nil && sub.CodingTotal != nil {
		return fmt.Sprintf("%d/%d", *sub.CodingScore, *sub.CodingTotal)
	}
	return "-"
}
