package tailoring

import (
	"sort"
	"strings"

	"github.com/jordan/job-search-agent/internal/types"
)

// ScoredSection pairs a resume section with its relevance to a job profile.
type ScoredSection struct {
	Section Section
	Score   float64
	Matched []string
}

// ScoreSection returns the fraction of the profile's keyword set found in
// the section (heading and body). 0.0 when the profile has no keywords.
func ScoreSection(section *Section, profile *types.JobProfile) float64 {
	score, _ := scoreText(section.Heading+"\n"+section.Body(), profile)
	return score
}

// RankSections scores all sections and sorts them by relevance, highest
// first. Equal scores keep document order.
func RankSections(sections []Section, profile *types.JobProfile) []ScoredSection {
	scored := make([]ScoredSection, 0, len(sections))
	for _, section := range sections {
		score, matched := scoreText(section.Heading+"\n"+section.Body(), profile)
		scored = append(scored, ScoredSection{
			Section: section,
			Score:   score,
			Matched: matched,
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}

// RelevanceScore scores a whole resume against the profile.
func RelevanceScore(resume string, profile *types.JobProfile) float64 {
	score, _ := scoreText(resume, profile)
	return score
}

// MatchedKeywords splits the profile's keyword set into terms present in
// the text and terms absent from it.
func MatchedKeywords(text string, profile *types.JobProfile) (matched, missing []string) {
	textLower := strings.ToLower(text)
	for _, term := range profile.KeywordSet() {
		if termMatches(textLower, term) {
			matched = append(matched, term)
		} else {
			missing = append(missing, term)
		}
	}
	return matched, missing
}

func scoreText(text string, profile *types.JobProfile) (float64, []string) {
	terms := profile.KeywordSet()
	if len(terms) == 0 {
		return 0.0, nil
	}

	textLower := strings.ToLower(text)
	var matched []string
	for _, term := range terms {
		if termMatches(textLower, term) {
			matched = append(matched, term)
		}
	}

	return float64(len(matched)) / float64(len(terms)), matched
}

// termMatches reports whether a normalized term appears in the text.
// Multi-word terms (requirement phrases) also match on any of their words
// longer than three characters, since resumes rarely repeat a requirement
// verbatim.
func termMatches(textLower, term string) bool {
	if strings.Contains(textLower, term) {
		return true
	}
	if !strings.Contains(term, " ") {
		return false
	}
	for _, word := range strings.Fields(term) {
		if len(word) > 3 && strings.Contains(textLower, word) {
			return true
		}
	}
	return false
}
