// Package observability provides formatted terminal output for screening
// results and assessment dashboards.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hirestack/recruit-agent/internal/aptitude"
	"github.com/hirestack/recruit-agent/internal/screening"
	"github.com/hirestack/recruit-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 64
	// maxCardsToShow caps how many non-selected candidates are printed per view
	maxCardsToShow = 10
)

// Printer handles formatted output for result rendering.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncateLine(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncateLine shortens a line to at most max characters. Candidate names
// and reasoning are user data, so the cut is rune-aware to never split a
// multi-byte character.
func truncateLine(line string, max int) string {
	runes := []rune(line)
	if len(runes) <= max {
		return line
	}
	return string(runes[:max-3]) + "..."
}

// PrintProgress writes a single status-poll update line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintProgress(status *types.JobStatus) {
	if status == nil {
		return
	}
	step := status.CurrentStep
	if step == "" {
		step = "processing"
	}
	fmt.Fprintf(p.out, "  [%3d%%] %s\n", status.Progress, step)
}

func candidateLabel(c types.Candidate) string {
	if c.Name != "" {
		return c.Name
	}
	return c.Filename
}

// PrintSelected outputs the shortlisted candidates with their score breakdown.
func (p *Printer) PrintSelected(selected []types.Candidate) {
	if len(selected) == 0 {
		p.printBox("SHORTLIST", "No candidates made the shortlist.")
		return
	}

	var sb strings.Builder
	for i, c := range selected {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, candidateLabel(c)))
		if c.Email != "" {
			sb.WriteString(fmt.Sprintf("    %s\n", c.Email))
		}
		sb.WriteString(fmt.Sprintf("    Total: %.1f", c.Score.Total))
		if c.SemanticScore > 0 {
			sb.WriteString(fmt.Sprintf("  Semantic: %.1f", c.SemanticScore))
		}
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("    Keywords %.0f · Experience %.0f · Education %.0f\n",
			c.Score.KeywordScore, c.Score.ExperienceScore, c.Score.EducationScore))
		if i < len(selected)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox(fmt.Sprintf("SHORTLIST (%d)", len(selected)), strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalyzed outputs the AI-reviewed candidates that did not make the
// shortlist, with their reasoning.
func (p *Printer) PrintAnalyzed(candidates []types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(candidates), maxCardsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("• %s (%.1f)\n", candidateLabel(c), c.Score.Total))
		if c.Reasoning != "" {
			sb.WriteString(fmt.Sprintf("  %s\n", truncateLine(c.Reasoning, 52)))
		}
		if len(c.Weaknesses) > 0 {
			gaps := strings.Join(c.Weaknesses, ", ")
			sb.WriteString(fmt.Sprintf("  Gaps: %s\n", truncateLine(gaps, 48)))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(candidates) > maxCardsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more", len(candidates)-maxCardsToShow))
	}

	p.printBox("NOT SELECTED — AI REVIEWED", sb.String())
}

// PrintSimilarityOnly outputs the candidates that only went through the
// similarity pass.
func (p *Printer) PrintSimilarityOnly(candidates []types.Candidate) {
	if len(candidates) == 0 {
		return
	}

	var sb strings.Builder
	count := min(len(candidates), maxCardsToShow)
	for i := 0; i < count; i++ {
		c := candidates[i]
		sb.WriteString(fmt.Sprintf("• %s", candidateLabel(c)))
		if c.VectorScore != nil {
			sb.WriteString(fmt.Sprintf("  (similarity %.2f)", *c.VectorScore))
		}
		sb.WriteString("\n")
	}
	if len(candidates) > maxCardsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more", len(candidates)-maxCardsToShow))
	}

	p.printBox("NOT SELECTED — SIMILARITY ONLY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintResultLinks outputs where the full analysis artifacts live.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResultLinks(reportPath, candidatesURL string) {
	if reportPath != "" {
		fmt.Fprintf(p.out, "Report: %s\n", reportPath)
	}
	if candidatesURL != "" {
		fmt.Fprintf(p.out, "Candidates: %s\n", candidatesURL)
	}
}

// PrintPartition renders all three screening views in order.
func (p *Printer) PrintPartition(part *screening.Partition) {
	if part == nil {
		return
	}
	p.PrintSelected(part.Selected)
	p.PrintAnalyzed(part.NotSelectedAnalyzed)
	p.PrintSimilarityOnly(part.NotSelectedSimilarity)
}

// PrintAssessmentSummary outputs the dashboard overview table.
func (p *Printer) PrintAssessmentSummary(summary *aptitude.Summary) {
	if summary == nil || len(summary.Rows) == 0 {
		p.printBox("ASSESSMENT DASHBOARD", "No assessments sent yet.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Sent: %d   Attempted: %d   Completion: %d%%\n\n",
		summary.TotalSent, summary.TotalAttempted, summary.CompletionRate))

	for i, row := range summary.Rows {
		title := row.Assessment.JobTitle
		if title == "" {
			title = "Untitled assessment"
		}
		sb.WriteString(fmt.Sprintf("%s\n", title))
		sb.WriteString(fmt.Sprintf("  Token: %s\n", row.Assessment.Token))
		sb.WriteString(fmt.Sprintf("  Sent %d · Attempted %d · Pending %d\n",
			len(row.Assessment.Emails), row.Attempted, row.Pending))
		if i < len(summary.Rows)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("ASSESSMENT DASHBOARD", sb.String())
}

// PrintCandidateRows outputs per-candidate attempt detail for one assessment.
func (p *Printer) PrintCandidateRows(token string, rows []aptitude.CandidateRow) {
	if len(rows) == 0 {
		p.printBox("CANDIDATE DETAIL", "No invitations recorded for this assessment.")
		return
	}

	var sb strings.Builder
	for i, row := range rows {
		sb.WriteString(fmt.Sprintf("%s\n", row.Email))
		sb.WriteString(fmt.Sprintf("  Status: %s   MCQ: %s   Coding: %s\n",
			row.Status, row.MCQScore, row.CodingScore))
		if row.Timestamp > 0 {
			at := time.Unix(int64(row.Timestamp), 0).UTC()
			sb.WriteString(fmt.Sprintf("  Submitted: %s\n", at.Format("2006-01-02 15:04")))
		}
		if i < len(rows)-1 {
			sb.WriteString("\n")
		}
	}

	title := "CANDIDATE DETAIL"
	if token != "" {
		title = fmt.Sprintf("CANDIDATE DETAIL — %s", token)
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintQuestionSet outputs a generated assessment for review before sending.
func (p *Printer) PrintQuestionSet(set *types.QuestionSet) {
	if set == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("MCQs: %d   Coding: %d\n", len(set.MCQs), len(set.CodingQuestions)))

	count := min(len(set.MCQs), 3)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, truncateLine(set.MCQs[i].Question, 52)))
	}
	if len(set.MCQs) > 3 {
		sb.WriteString(fmt.Sprintf("... and %d more MCQs\n", len(set.MCQs)-3))
	}

	for i, cq := range set.CodingQuestions {
		sb.WriteString(fmt.Sprintf("Coding %d: %s\n", i+1, truncateLine(cq.Title, 52)))
	}

	p.printBox("GENERATED ASSESSMENT", strings.TrimSuffix(sb.String(), "\n"))
}
