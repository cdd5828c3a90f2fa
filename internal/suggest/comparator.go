package suggest

import (
	"strings"
)

// Comparator verdict thresholds.
const (
	acceptThreshold = 0.8
	rejectThreshold = 0.4
)

var obligationWords = []string{"shall", "must", "will", "required", "obligation"}

var archaicWords = []string{"hereby", "whereas", "notwithstanding", "heretofore"}

// CompareClauses scores a proposed replacement against the original clause.
// The score blends keyword retention, the replacement's clarity and
// specificity, and a length sanity check. Accept requires a high score and no
// concerns; very low scores are rejected; everything else asks for edits.
func CompareClauses(original, suggested string) *Comparison {
	retention := Similarity(original, suggested)
	clarityOld := clarityScore(original)
	clarityNew := clarityScore(suggested)
	specOld := specificityScore(original)
	specNew := specificityScore(suggested)

	score := 0.45*retention + 0.3*clarityNew + 0.15*specNew + 0.1*lengthScore(original, suggested)
	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}

	var improvements, concerns []string

	if clarityNew > clarityOld {
		improvements = append(improvements, "Clearer, more direct obligation language")
	}
	if specNew > specOld {
		improvements = append(improvements, "More concrete detail (figures or deadlines)")
	}
	if containsAny(original, archaicWords) && !containsAny(suggested, archaicWords) {
		improvements = append(improvements, "Removes archaic drafting")
	}

	if retention < 0.3 {
		concerns = append(concerns, "Replacement drops most of the original clause's key terms")
	}
	if wordCount(suggested) < wordCount(original)/2 {
		concerns = append(concerns, "Replacement is substantially shorter than the original")
	}
	if containsAny(original, obligationWords) && !containsAny(suggested, obligationWords) {
		concerns = append(concerns, "Replacement removes binding obligation language")
	}

	rec := RecommendModify
	switch {
	case score > acceptThreshold && len(concerns) == 0:
		rec = RecommendAccept
	case score < rejectThreshold:
		rec = RecommendReject
	}

	return &Comparison{
		OverallScore:   score,
		Improvements:   improvements,
		Concerns:       concerns,
		Differences:    Differences(original, suggested),
		Recommendation: rec,
	}
}

// clarityScore rates drafting clarity in [0,1]: obligation language and short
// sentences raise it, archaic filler lowers it.
func clarityScore(text string) float64 {
	score := 0.5
	if containsAny(text, obligationWords) {
		score += 0.2
	}
	if avgSentenceLength(text) <= 25 {
		score += 0.2
	}
	if containsAny(text, archaicWords) {
		score -= 0.1
	}

	if score > 1 {
		score = 1
	}
	if score < 0 {
		score = 0
	}
	return score
}

// specificityScore rates concrete detail in [0,1].
func specificityScore(text string) float64 {
	score := 0.0
	if strings.ContainsAny(text, "0123456789") {
		score += 0.5
	}
	lower := strings.ToLower(text)
	for _, w := range []string{"day", "week", "month", "year", "hour"} {
		if strings.Contains(lower, w) {
			score += 0.5
			break
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}

// lengthScore penalizes replacements that shrink or balloon the clause.
func lengthScore(original, suggested string) float64 {
	ow := wordCount(original)
	sw := wordCount(suggested)
	if ow == 0 || sw == 0 {
		return 0
	}

	ratio := float64(sw) / float64(ow)
	switch {
	case ratio >= 0.5 && ratio <= 2:
		return 1
	case ratio >= 0.25 && ratio <= 4:
		return 0.5
	default:
		return 0
	}
}

func avgSentenceLength(text string) float64 {
	words := wordCount(text)
	sentences := strings.Count(text, ".") + strings.Count(text, ";")
	if sentences == 0 {
		sentences = 1
	}
	return float64(words) / float64(sentences)
}

func wordCount(text string) int {
	return len(strings.Fields(text))
}

func containsAny(text string, words []string) bool {
	lower := strings.ToLower(text)
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
