// Package types provides type definitions for the data exchanged with the recruiting backend.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "strings"

// CandidateStatus is the closed set of screening outcomes. The backend sends
// free-text status labels; they are mapped into this set once at the HTTP
// boundary so that no business decision depends on ad hoc string matching.
type CandidateStatus string

const (
	StatusRecommended CandidateStatus = "recommended"
	StatusPotential   CandidateStatus = "potential"
	StatusRejected    CandidateStatus = "rejected"
	StatusNotSelected CandidateStatus = "not_selected"
	StatusUnknown     CandidateStatus = "unknown"
)

// ParseCandidateStatus maps a backend status label into the closed set.
// Labels that match none of the known outcomes map to StatusUnknown rather
// than falling through a substring check.
func ParseCandidateStatus(raw string) CandidateStatus {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case s == "":
		return StatusUnknown
	case strings.Contains(s, "not selected"):
		return StatusNotSelected
	case strings.Contains(s, "reject"):
		return StatusRejected
	case strings.Contains(s, "recommend"):
		return StatusRecommended
	case strings.Contains(s, "potential"):
		return StatusPotential
	default:
		return StatusUnknown
	}
}

// Excluded reports whether the status disqualifies a candidate from the
// selected view.
func (s CandidateStatus) Excluded() bool {
	return s == StatusRejected || s == StatusNotSelected
}

// Score holds the structured score breakdown assigned by the backend.
type Score struct {
	Total           float64 `json:"total"`
	KeywordScore    float64 `json:"keyword_score,omitempty"`
	ExperienceScore float64 `json:"experience_score,omitempty"`
	EducationScore  float64 `json:"education_score,omitempty"`
	VisualScore     float64 `json:"visual_score,omitempty"`
	FormatScore     float64 `json:"format_score,omitempty"`
}

// Candidate represents one screened resume in an analysis result.
// Filename is the unique key within a result. Reasoning, strengths and
// weaknesses are present only when the backend ran AI analysis on the
// candidate; VectorScore carries the semantic-similarity ranking signal
// used when AI analysis was skipped.
type Candidate struct {
	Filename      string   `json:"filename"`
	Name          string   `json:"name,omitempty"`
	Email         string   `json:"email,omitempty"`
	Phone         string   `json:"phone,omitempty"`
	Score         Score    `json:"score"`
	SemanticScore float64  `json:"semantic_score,omitempty"`
	VectorScore   *float64 `json:"vector_score,omitempty"`
	Reasoning     string   `json:"reasoning,omitempty"`
	Strengths     []string `json:"strengths,omitempty"`
	Weaknesses    []string `json:"weaknesses,omitempty"`
	AIAnalyzed    *bool    `json:"ai_analyzed,omitempty"`
	RawStatus     string   `json:"status,omitempty"`
}

// Status returns the candidate's screening outcome as a closed enum value.
func (c *Candidate) Status() CandidateStatus {
	return ParseCandidateStatus(c.RawStatus)
}

// Analyzed reports whether the backend ran AI analysis on this candidate.
func (c *Candidate) Analyzed() bool {
	if c.Reasoning != "" {
		return true
	}
	return c.AIAnalyzed != nil && *c.AIAnalyzed
}

// SimilarityOnly reports whether this candidate was ranked purely by
// semantic similarity. A candidate with no ai_analyzed field at all is
// neither analyzed nor similarity-only.
func (c *Candidate) SimilarityOnly() bool {
	return c.AIAnalyzed != nil && !*c.AIAnalyzed && c.Reasoning == ""
}

// AnalysisResult is the terminal payload of a completed analysis job.
// Candidates arrive pre-sorted by backend rank (descending desirability);
// consumers slice, never re-sort.
type AnalysisResult struct {
	Candidates     []Candidate `json:"candidates"`
	ReportPath     string      `json:"report_path,omitempty"`
	CampaignFolder string      `json:"campaign_folder,omitempty"`
}
