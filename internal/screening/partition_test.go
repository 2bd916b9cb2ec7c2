package screening

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirestack/recruit-agent/internal/types"
)

func boolPtr(b bool) *bool { return &b }

func candidate(filename string, total float64) types.Candidate {
	return types.Candidate{Filename: filename, Score: types.Score{Total: total}}
}

func filenames(cs []types.Candidate) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Filename)
	}
	return out
}

func TestSplit_StatusFilterDropsRejectedFromShortlist(t *testing.T) {
	// The worked example: four ranked candidates, topN=3, C carries a
	// "Not Selected" status and is dropped from the shortlist.
	a := candidate("a.pdf", 90)
	b := candidate("b.pdf", 85)
	c := candidate("c.pdf", 80)
	c.RawStatus = "Not Selected"
	d := candidate("d.pdf", 75)
	d.AIAnalyzed = boolPtr(false)

	result := &types.AnalysisResult{Candidates: []types.Candidate{a, b, c, d}}
	p := Split(result, 3, zerolog.Nop())

	assert.Equal(t, []string{"a.pdf", "b.pdf"}, filenames(p.Selected))
	assert.Empty(t, p.NotSelectedAnalyzed)
	assert.Equal(t, []string{"d.pdf"}, filenames(p.NotSelectedSimilarity))
}

func TestSplit_NonPositiveTopNDefaultsToFive(t *testing.T) {
	var cs []types.Candidate
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g"} {
		cand := candidate(name+".pdf", 50)
		cand.Reasoning = "analyzed"
		cs = append(cs, cand)
	}
	result := &types.AnalysisResult{Candidates: cs}

	for _, topN := range []int{0, -3} {
		p := Split(result, topN, zerolog.Nop())
		assert.Len(t, p.Selected, 5)
		assert.Len(t, p.NotSelectedAnalyzed, 2)
	}
}

func TestSplit_RemainderSplitsByAnalysis(t *testing.T) {
	top := candidate("top.pdf", 95)
	analyzedByFlag := candidate("flag.pdf", 60)
	analyzedByFlag.AIAnalyzed = boolPtr(true)
	analyzedByReasoning := candidate("reason.pdf", 55)
	analyzedByReasoning.Reasoning = "solid but junior"
	similarity := candidate("vector.pdf", 40)
	similarity.AIAnalyzed = boolPtr(false)
	neither := candidate("bare.pdf", 30)

	result := &types.AnalysisResult{Candidates: []types.Candidate{
		top, analyzedByFlag, analyzedByReasoning, similarity, neither,
	}}
	p := Split(result, 1, zerolog.Nop())

	assert.Equal(t, []string{"top.pdf"}, filenames(p.Selected))
	assert.Equal(t, []string{"flag.pdf", "reason.pdf"}, filenames(p.NotSelectedAnalyzed))
	assert.Equal(t, []string{"vector.pdf"}, filenames(p.NotSelectedSimilarity))
	// bare.pdf fits neither view and appears nowhere.
	all := append(append(p.Selected, p.NotSelectedAnalyzed...), p.NotSelectedSimilarity...)
	assert.NotContains(t, filenames(all), "bare.pdf")
}

func TestSplit_ViewsArePairwiseDisjoint(t *testing.T) {
	var cs []types.Candidate
	for i, name := range []string{"a", "b", "c", "d", "e", "f"} {
		cand := candidate(name+".pdf", float64(100-i))
		if i%2 == 0 {
			cand.Reasoning = "analyzed"
		} else {
			cand.AIAnalyzed = boolPtr(false)
		}
		cs = append(cs, cand)
	}
	p := Split(&types.AnalysisResult{Candidates: cs}, 2, zerolog.Nop())

	seen := map[string]int{}
	for _, c := range p.Selected {
		seen[c.Filename]++
	}
	for _, c := range p.NotSelectedAnalyzed {
		seen[c.Filename]++
	}
	for _, c := range p.NotSelectedSimilarity {
		seen[c.Filename]++
	}
	for name, count := range seen {
		assert.Equal(t, 1, count, "candidate %s appears in more than one view", name)
	}
}

func TestSplit_ShortlistNeverExceedsTopN(t *testing.T) {
	var cs []types.Candidate
	for _, name := range []string{"a", "b", "c"} {
		cs = append(cs, candidate(name+".pdf", 70))
	}
	p := Split(&types.AnalysisResult{Candidates: cs}, 10, zerolog.Nop())
	assert.Len(t, p.Selected, 3)
	assert.Empty(t, p.NotSelectedAnalyzed)
	assert.Empty(t, p.NotSelectedSimilarity)
}

func TestDedupe_KeepsFirstOccurrence(t *testing.T) {
	first := candidate("a.pdf", 90)
	dup := candidate("a.pdf", 10)
	other := candidate("b.pdf", 50)

	out := Dedupe([]types.Candidate{first, dup, other})
	require.Len(t, out, 2)
	assert.Equal(t, 90.0, out[0].Score.Total, "first occurrence wins")
	assert.Equal(t, "b.pdf", out[1].Filename)
}

func TestSplit_DeduplicatesBeforePartitioning(t *testing.T) {
	first := candidate("a.pdf", 90)
	dup := candidate("a.pdf", 89)
	second := candidate("b.pdf", 80)
	second.Reasoning = "analyzed"

	p := Split(&types.AnalysisResult{Candidates: []types.Candidate{first, dup, second}}, 1, zerolog.Nop())
	assert.Equal(t, []string{"a.pdf"}, filenames(p.Selected))
	assert.Equal(t, []string{"b.pdf"}, filenames(p.NotSelectedAnalyzed))
}
