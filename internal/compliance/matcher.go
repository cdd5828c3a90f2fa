package compliance

import (
	"strings"
)

// MatchKind distinguishes how a rule matched the text.
type MatchKind string

const (
	// MatchPattern is a regular-expression match.
	MatchPattern MatchKind = "pattern"
	// MatchKeyword is a case-insensitive substring match.
	MatchKeyword MatchKind = "keyword"
)

// Match records one piece of textual evidence for a rule.
type Match struct {
	RuleID string    `json:"rule_id"`
	Kind   MatchKind `json:"kind"`
	Value  string    `json:"value"`
}

// FindMatches evaluates a rule's patterns and keywords against the text.
// Matching is case-insensitive. An empty result means the rule is absent
// from the text. Pure function over immutable inputs.
func (c *RuleCorpus) FindMatches(text string, rule *Rule) []Match {
	var matches []Match

	for _, re := range c.compiled[rule.ID] {
		if loc := re.FindString(text); loc != "" {
			matches = append(matches, Match{
				RuleID: rule.ID,
				Kind:   MatchPattern,
				Value:  loc,
			})
		}
	}

	lower := strings.ToLower(text)
	for _, kw := range rule.Keywords {
		if kw == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(kw)) {
			matches = append(matches, Match{
				RuleID: rule.ID,
				Kind:   MatchKeyword,
				Value:  kw,
			})
		}
	}

	return matches
}
