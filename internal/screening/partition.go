// Package screening partitions a ranked analysis result into the review
// views shown to the recruiter: the selected shortlist and the two
// not-selected groups.
package screening

import (
	"github.com/rs/zerolog"

	"github.com/hirestack/recruit-agent/internal/types"
)

// DefaultTopN is used when the requested shortlist size is not a positive
// integer.
const DefaultTopN = 5

// Partition holds the three disjoint candidate views. Candidates keep the
// backend's rank order; no view ever re-sorts.
type Partition struct {
	Selected              []types.Candidate
	NotSelectedAnalyzed   []types.Candidate
	NotSelectedSimilarity []types.Candidate
}

// Dedupe drops repeated filenames from a candidate sequence, keeping the
// first occurrence in rank order. The backend should never return
// duplicates; this guards against it anyway.
func Dedupe(candidates []types.Candidate) []types.Candidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if _, dup := seen[c.Filename]; dup {
			continue
		}
		seen[c.Filename] = struct{}{}
		out = append(out, c)
	}
	return out
}

// Split partitions a result into the selected shortlist (first topN
// candidates, minus any the backend marked rejected or not selected) and
// the remainder, divided by whether AI analysis ran. Remainder entries
// that are neither analyzed nor similarity-only belong to no view; they
// are dropped and reported through the logger.
func Split(result *types.AnalysisResult, topN int, logger zerolog.Logger) Partition {
	if topN <= 0 {
		topN = DefaultTopN
	}

	candidates := Dedupe(result.Candidates)
	if dropped := len(result.Candidates) - len(candidates); dropped > 0 {
		logger.Warn().Int("duplicates", dropped).Msg("backend returned duplicate candidates")
	}

	cut := min(topN, len(candidates))
	var p Partition

	for _, c := range candidates[:cut] {
		if c.Status().Excluded() {
			logger.Info().Str("filename", c.Filename).Str("status", c.RawStatus).
				Msg("top-ranked candidate excluded by status")
			continue
		}
		p.Selected = append(p.Selected, c)
	}

	for _, c := range candidates[cut:] {
		switch {
		case c.Analyzed():
			p.NotSelectedAnalyzed = append(p.NotSelectedAnalyzed, c)
		case c.SimilarityOnly():
			p.NotSelectedSimilarity = append(p.NotSelectedSimilarity, c)
		default:
			logger.Warn().Str("filename", c.Filename).
				Msg("candidate fits neither not-selected view and was dropped")
		}
	}

	return p
}
