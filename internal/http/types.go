package http

import (
	"github.com/fyrsmithlabs/clausewise/internal/clause"
	"github.com/fyrsmithlabs/clausewise/internal/compliance"
	"github.com/fyrsmithlabs/clausewise/internal/suggest"
)

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// AnalyzeRequest is the request body for POST /api/v1/compliance/analyze.
type AnalyzeRequest struct {
	Text         string                 `json:"text"`
	DocumentName string                 `json:"document_name"`
	Frameworks   []compliance.Framework `json:"frameworks"`
	Jurisdiction string                 `json:"jurisdiction"`
	ClientID     string                 `json:"client_id,omitempty"`
	CustomRules  []*compliance.Rule     `json:"custom_rules,omitempty"`
}

// RiskThresholds reports the organization-configured threshold percentages.
// The engine classifier uses fixed cutoffs; these are informational so
// callers can apply their own banding.
type RiskThresholds struct {
	Low    int `json:"low"`
	Medium int `json:"medium"`
	High   int `json:"high"`
}

// AnalyzeResponse is the response body for POST /api/v1/compliance/analyze.
type AnalyzeResponse struct {
	Analysis   *compliance.ContractAnalysis `json:"analysis"`
	Thresholds RiskThresholds               `json:"configured_thresholds"`
}

// AddTemplateRequest is the request body for POST /api/v1/clauses.
type AddTemplateRequest struct {
	LibraryID string           `json:"library_id"`
	Template  *clause.Template `json:"template"`
}

// TrackUsageRequest is the request body for POST /api/v1/clauses/usage.
type TrackUsageRequest struct {
	LibraryID     string `json:"library_id"`
	TemplateID    string `json:"template_id"`
	ContractID    string `json:"contract_id"`
	ContractName  string `json:"contract_name"`
	UsedBy        string `json:"used_by"`
	Context       string `json:"context,omitempty"`
	Modifications string `json:"modifications,omitempty"`
}

// SuggestRequest is the request body for POST /api/v1/suggestions.
type SuggestRequest struct {
	LibraryID            string                 `json:"library_id"`
	OriginalClause       string                 `json:"original_clause"`
	Context              string                 `json:"context,omitempty"`
	Category             string                 `json:"category"`
	ComplianceFrameworks []compliance.Framework `json:"compliance_frameworks"`
	Jurisdiction         string                 `json:"jurisdiction,omitempty"`
	RiskLevel            compliance.RiskLevel   `json:"risk_level,omitempty"`
	DesiredImprovements  []suggest.Improvement  `json:"desired_improvements"`
	MaxSuggestions       int                    `json:"max_suggestions,omitempty"`
	ExcludeTemplates     []string               `json:"exclude_templates,omitempty"`
}

// CompareRequest is the request body for POST /api/v1/suggestions/compare.
type CompareRequest struct {
	Original  string `json:"original"`
	Suggested string `json:"suggested"`
}

// SectionsRequest is the request body for POST /api/v1/suggestions/sections.
type SectionsRequest struct {
	ContractText string `json:"contract_text"`
	ClauseText   string `json:"clause_text"`
}
