package suggest

import (
	"time"

	"github.com/fyrsmithlabs/clausewise/internal/clause"
	"github.com/fyrsmithlabs/clausewise/internal/compliance"
)

// Improvement is a requested suggestion goal.
type Improvement string

const (
	// ImproveClarity asks for plainer, less archaic drafting.
	ImproveClarity Improvement = "clarity"
	// ImproveCompliance asks for framework-specific compliance language.
	ImproveCompliance Improvement = "compliance"
	// ImproveRiskReduction asks for risk-limiting language.
	ImproveRiskReduction Improvement = "risk_reduction"
)

// Source identifies where a suggestion came from.
type Source string

const (
	// SourceLegalPrecedent marks suggestions drawn from vetted templates.
	SourceLegalPrecedent Source = "legal_precedent"
	// SourceAIAnalysis marks heuristic rewrites.
	SourceAIAnalysis Source = "ai_analysis"
)

// SuggestionType categorizes a suggestion.
type SuggestionType string

const (
	// TypeTemplate is a replacement drawn from a library template.
	TypeTemplate SuggestionType = "template"
	// TypeClarity is a clarity rewrite.
	TypeClarity SuggestionType = "clarity"
	// TypeCompliance appends compliance boilerplate.
	TypeCompliance SuggestionType = "compliance"
	// TypeRiskReduction appends risk-limiting language.
	TypeRiskReduction SuggestionType = "risk_reduction"
)

// Suggestion is a proposed replacement or rewrite of a clause.
type Suggestion struct {
	ID              string         `json:"id"`
	OriginalClause  string         `json:"original_clause"`
	SuggestedClause string         `json:"suggested_clause"`
	SuggestionType  SuggestionType `json:"suggestion_type"`

	Title       string `json:"title"`
	Description string `json:"description"`
	Reasoning   string `json:"reasoning"`

	Benefits               []string `json:"benefits"`
	Risks                  []string `json:"risks"`
	ComplianceImprovements []string `json:"compliance_improvements"`

	// Confidence in [0,1]; suggestions are returned sorted descending.
	Confidence float64 `json:"confidence"`

	Source            Source `json:"source"`
	RelatedTemplateID string `json:"related_template_id,omitempty"`

	// IsAccepted is caller-tracked acceptance state.
	IsAccepted bool      `json:"is_accepted"`
	CreatedAt  time.Time `json:"created_at"`
}

// Request carries the inputs for suggestion generation.
type Request struct {
	// OriginalClause is the clause text to improve.
	OriginalClause string

	// Context is optional surrounding contract text.
	Context string

	// Category restricts template candidates to an exact category.
	Category string

	// ComplianceFrameworks restrict template candidates and select boilerplate.
	ComplianceFrameworks []compliance.Framework

	// Jurisdiction is informational for callers; not used to filter templates.
	Jurisdiction string

	// RiskLevel is the caller's assessment of the clause.
	RiskLevel compliance.RiskLevel

	// DesiredImprovements selects which heuristic rewrites to produce.
	DesiredImprovements []Improvement

	// MaxSuggestions caps the result; defaults to 5.
	MaxSuggestions int

	// ExcludeTemplates drops specific template IDs from candidates.
	ExcludeTemplates []string
}

// TemplateMatch pairs a candidate template with its similarity to the clause.
type TemplateMatch struct {
	Template   *clause.Template `json:"template"`
	Similarity float64          `json:"similarity"`
}

// SectionMatch is a contract section comparable to a clause.
type SectionMatch struct {
	// Text is the section text.
	Text string `json:"text"`

	// Index is the section's paragraph position in the contract.
	Index int `json:"index"`

	// Similarity to the query clause.
	Similarity float64 `json:"similarity"`
}

// DiffType classifies a difference segment.
type DiffType string

const (
	// DiffAdded is text present only in the suggestion.
	DiffAdded DiffType = "added"
	// DiffRemoved is text present only in the original.
	DiffRemoved DiffType = "removed"
	// DiffChanged is text replaced between the two.
	DiffChanged DiffType = "changed"
)

// Difference is one segment of change between original and suggested text.
type Difference struct {
	Type      DiffType `json:"type"`
	Original  string   `json:"original,omitempty"`
	Suggested string   `json:"suggested,omitempty"`
}

// Recommendation is the comparator's verdict on a proposed replacement.
type Recommendation string

const (
	// RecommendAccept endorses the replacement as-is.
	RecommendAccept Recommendation = "accept"
	// RecommendModify endorses the direction but asks for edits.
	RecommendModify Recommendation = "modify"
	// RecommendReject advises keeping the original.
	RecommendReject Recommendation = "reject"
)

// Comparison scores a proposed replacement against the original clause.
type Comparison struct {
	// OverallScore in [0,1].
	OverallScore float64 `json:"overall_score"`

	Improvements []string     `json:"improvements"`
	Concerns     []string     `json:"concerns"`
	Differences  []Difference `json:"differences"`

	Recommendation Recommendation `json:"recommendation"`
}
