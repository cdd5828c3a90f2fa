package suggest

import (
	"regexp"
	"sort"
	"strings"

	"github.com/fyrsmithlabs/clausewise/internal/clause"
)

// similarityThreshold is the minimum similarity for a template candidate.
const similarityThreshold = 0.3

// stopWords are dropped during keyword extraction.
var stopWords = map[string]bool{
	"the": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true,
	"for": true, "of": true, "with": true, "by": true,
}

var nonWord = regexp.MustCompile(`[^a-z0-9\s]+`)

// ExtractKeywords lowercases the text, strips non-word characters, splits on
// whitespace, and keeps non-stop-word tokens longer than three characters.
func ExtractKeywords(text string) map[string]bool {
	cleaned := nonWord.ReplaceAllString(strings.ToLower(text), " ")

	keywords := make(map[string]bool)
	for _, token := range strings.Fields(cleaned) {
		if len(token) <= 3 || stopWords[token] {
			continue
		}
		keywords[token] = true
	}
	return keywords
}

// Similarity is the Jaccard index of the two texts' keyword sets. It is
// symmetric, and 1.0 for identical texts with non-empty keyword sets.
func Similarity(a, b string) float64 {
	ka := ExtractKeywords(a)
	kb := ExtractKeywords(b)

	if len(ka) == 0 && len(kb) == 0 {
		return 0
	}

	intersection := 0
	for k := range ka {
		if kb[k] {
			intersection++
		}
	}
	union := len(ka) + len(kb) - intersection
	return float64(intersection) / float64(union)
}

// FindSimilarTemplates ranks library templates comparable to the clause.
// Candidates must match the request category exactly and share at least one
// compliance framework; matches below the similarity threshold are dropped.
func FindSimilarTemplates(clauseText string, templates []*clause.Template, req *Request) []*TemplateMatch {
	excluded := make(map[string]bool, len(req.ExcludeTemplates))
	for _, id := range req.ExcludeTemplates {
		excluded[id] = true
	}

	var matches []*TemplateMatch
	for _, tmpl := range templates {
		if excluded[tmpl.ID] {
			continue
		}
		if req.Category != "" && tmpl.Category != req.Category {
			continue
		}
		if len(req.ComplianceFrameworks) > 0 && !sharesFramework(tmpl, req) {
			continue
		}

		sim := Similarity(clauseText, tmpl.Content)
		if sim <= similarityThreshold {
			continue
		}
		matches = append(matches, &TemplateMatch{Template: tmpl, Similarity: sim})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	return matches
}

func sharesFramework(tmpl *clause.Template, req *Request) bool {
	for _, want := range req.ComplianceFrameworks {
		for _, have := range tmpl.ComplianceFrameworks {
			if want == have {
				return true
			}
		}
	}
	return false
}

var paragraphSplit = regexp.MustCompile(`\n\s*\n`)

// FindMatchingSections splits the contract into paragraphs and returns those
// comparable to the clause, ranked by similarity descending.
func FindMatchingSections(contractText, clauseText string) []*SectionMatch {
	paragraphs := paragraphSplit.Split(contractText, -1)

	var sections []*SectionMatch
	for i, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		sim := Similarity(p, clauseText)
		if sim <= similarityThreshold {
			continue
		}
		sections = append(sections, &SectionMatch{Text: p, Index: i, Similarity: sim})
	}

	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].Similarity > sections[j].Similarity
	})
	return sections
}
