package compliance

import (
	"strings"
)

// severityWeights convert violation severity into score penalty units.
var severityWeights = map[RiskLevel]float64{
	RiskLow:      0.2,
	RiskMedium:   0.5,
	RiskHigh:     0.8,
	RiskCritical: 1.0,
}

// trustWeights are fixed per-framework constants reflecting how strictly the
// engine trusts its rule coverage of each framework.
var trustWeights = map[Framework]float64{
	FrameworkGDPR:     0.9,
	FrameworkHIPAA:    0.9,
	FrameworkSOX:      0.8,
	FrameworkPCIDSS:   0.8,
	FrameworkCCPA:     0.7,
	FrameworkPIPEDA:   0.7,
	FrameworkLGPD:     0.7,
	FrameworkISO27001: 0.6,
	FrameworkSOC2:     0.6,
	FrameworkCustom:   0.5,
}

// TrustWeight returns the fixed trust weight for a framework. Unknown
// frameworks fall back to the CUSTOM weight.
func TrustWeight(f Framework) float64 {
	if w, ok := trustWeights[f]; ok {
		return w
	}
	return trustWeights[FrameworkCustom]
}

// Classify maps a 0-100 score to a risk level. The cutoffs are fixed engine
// constants, independent of any externally configured risk thresholds.
func Classify(score float64) RiskLevel {
	switch {
	case score >= 90:
		return RiskLow
	case score >= 70:
		return RiskMedium
	case score >= 50:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// ScoreFramework converts detected violations into a framework score and risk
// level. totalRules is the unscoped rule count for the framework; zero rules
// means the engine has nothing to check, which is treated as fully compliant
// rather than dividing by zero.
func ScoreFramework(violations []*Violation, framework Framework, totalRules int) (float64, RiskLevel) {
	if totalRules == 0 {
		return 100, RiskLow
	}

	base := 100 - float64(len(violations))/float64(totalRules)*100
	if base < 0 {
		base = 0
	}

	var penalty float64
	for _, v := range violations {
		penalty += severityWeights[v.Severity] * 10
	}

	score := base - penalty
	if score < 0 {
		score = 0
	}

	score *= TrustWeight(framework)
	return score, Classify(score)
}

// obligationMarkers signal binding contract language.
var obligationMarkers = []string{
	"shall", "must", "will", "required", "obligation", "responsibility",
	"procedure", "process", "policy", "standard", "guideline",
}

// timeUnitWords signal concrete retention or deadline language.
var timeUnitWords = []string{
	"day", "days", "week", "weeks", "month", "months",
	"year", "years", "hour", "hours",
}

// legalBoilerplate signals formally drafted language.
var legalBoilerplate = []string{
	"hereby", "whereas", "therefore", "notwithstanding", "pursuant",
}

// implementationQuality assesses how specifically the text implements a
// matched rule, in [0,1]. The heuristic rewards obligation language, concrete
// detail (digits, time units, procedural words), and formal drafting.
func implementationQuality(text string) float64 {
	lower := strings.ToLower(text)
	quality := 0.5

	if containsAnyWord(lower, obligationMarkers) {
		quality += 0.2
	}
	if strings.ContainsAny(lower, "0123456789") ||
		containsAnyWord(lower, timeUnitWords) ||
		strings.Contains(lower, "procedure") ||
		strings.Contains(lower, "process") {
		quality += 0.2
	}
	if containsAnyWord(lower, legalBoilerplate) {
		quality += 0.1
	}

	if quality > 1.0 {
		quality = 1.0
	}
	return quality
}

func containsAnyWord(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
