package compliance

import (
	"time"
)

// Framework identifies a regulatory framework a contract is evaluated against.
type Framework string

const (
	// FrameworkGDPR is the EU General Data Protection Regulation.
	FrameworkGDPR Framework = "GDPR"
	// FrameworkHIPAA is the US Health Insurance Portability and Accountability Act.
	FrameworkHIPAA Framework = "HIPAA"
	// FrameworkSOX is the US Sarbanes-Oxley Act.
	FrameworkSOX Framework = "SOX"
	// FrameworkPCIDSS is the Payment Card Industry Data Security Standard.
	FrameworkPCIDSS Framework = "PCI-DSS"
	// FrameworkCCPA is the California Consumer Privacy Act.
	FrameworkCCPA Framework = "CCPA"
	// FrameworkPIPEDA is the Canadian Personal Information Protection and Electronic Documents Act.
	FrameworkPIPEDA Framework = "PIPEDA"
	// FrameworkLGPD is the Brazilian Lei Geral de Proteção de Dados.
	FrameworkLGPD Framework = "LGPD"
	// FrameworkISO27001 is the ISO/IEC 27001 information security standard.
	FrameworkISO27001 Framework = "ISO27001"
	// FrameworkSOC2 is the SOC 2 trust services criteria.
	FrameworkSOC2 Framework = "SOC2"
	// FrameworkCustom is for organization-specific rule sets.
	FrameworkCustom Framework = "CUSTOM"
)

// RiskLevel is an ordinal risk classification derived from a numeric score.
type RiskLevel string

const (
	// RiskLow indicates minimal compliance exposure.
	RiskLow RiskLevel = "low"
	// RiskMedium indicates moderate compliance exposure.
	RiskMedium RiskLevel = "medium"
	// RiskHigh indicates significant compliance exposure.
	RiskHigh RiskLevel = "high"
	// RiskCritical indicates severe compliance exposure.
	RiskCritical RiskLevel = "critical"
)

// Rule categories used by the built-in corpus. Custom rules may introduce
// their own categories; these constants only exist so violations, tags, and
// recommendations agree on spelling.
const (
	CategoryDataProtection    = "Data Protection"
	CategoryFinancialControls = "Financial Compliance"
	CategoryHealthcarePrivacy = "Healthcare Privacy"
	CategorySecurityControls  = "Security Controls"
)

// Clause location markers. The engine does not track real clause positions,
// so violations carry one of these markers instead.
const (
	// ClauseMissing marks a violation for a required rule with no textual evidence.
	ClauseMissing = "missing"
	// ClauseImplementation marks a violation for a matched rule whose
	// surrounding language was judged insufficiently specific.
	ClauseImplementation = "implementation"
)

// Rule is a single compliance requirement expressed as keywords and patterns.
type Rule struct {
	// ID is the unique rule identifier, e.g. "gdpr-lawful-basis".
	ID string `json:"id" koanf:"id"`

	// Framework is the regulatory framework this rule belongs to.
	Framework Framework `json:"framework" koanf:"framework"`

	// Category groups related rules, e.g. "Data Protection".
	Category string `json:"category" koanf:"category"`

	// Name is a short human-readable rule name.
	Name string `json:"name" koanf:"name"`

	// Description explains what the rule requires.
	Description string `json:"description" koanf:"description"`

	// RiskLevel is the severity assigned to violations of this rule.
	RiskLevel RiskLevel `json:"risk_level" koanf:"risk_level"`

	// Keywords match as case-insensitive substrings.
	Keywords []string `json:"keywords" koanf:"keywords"`

	// Patterns are regular expressions compiled case-insensitively at corpus load.
	Patterns []string `json:"patterns,omitempty" koanf:"patterns"`

	// Weight in [0,1] indicates how load-bearing the rule is. Rules with
	// weight > 0.7 are required: absence of any match is a violation.
	Weight float64 `json:"weight" koanf:"weight"`

	// IsActive disables the rule when false.
	IsActive bool `json:"is_active" koanf:"is_active"`

	// Jurisdiction restricts the rule to a jurisdiction when set.
	Jurisdiction string `json:"jurisdiction,omitempty" koanf:"jurisdiction"`

	// ClientID restricts the rule to a client scope when set.
	ClientID string `json:"client_id,omitempty" koanf:"client_id"`
}

// Violation is a detected compliance gap. Violations are generated per
// analysis and are not persisted by the engine.
type Violation struct {
	// ID is the unique identifier for this violation.
	ID string `json:"id"`

	// RuleID is the ID of the violated rule.
	RuleID string `json:"rule_id"`

	// Rule is the violated rule, by reference.
	Rule *Rule `json:"rule"`

	// ClauseID is ClauseMissing or ClauseImplementation.
	ClauseID string `json:"clause_id"`

	// Severity is the violation's risk level.
	Severity RiskLevel `json:"severity"`

	// Description is a short statement of the gap.
	Description string `json:"description"`

	// Explanation gives the regulatory background.
	Explanation string `json:"explanation"`

	// SuggestedAction tells the caller how to address the gap.
	SuggestedAction string `json:"suggested_action"`

	// DetectedAt is when the violation was detected.
	DetectedAt time.Time `json:"detected_at"`

	// IsResolved is caller-tracked resolution state.
	IsResolved bool `json:"is_resolved"`
}

// FrameworkScore is the compliance result for a single framework.
type FrameworkScore struct {
	// Framework is the framework this score covers.
	Framework Framework `json:"framework"`

	// OverallScore is the framework compliance score in [0,100].
	OverallScore float64 `json:"overall_score"`

	// RiskLevel is derived from OverallScore via fixed cutoffs.
	RiskLevel RiskLevel `json:"risk_level"`

	// Violations detected for this framework.
	Violations []*Violation `json:"violations"`

	// Recommendations are prioritized remediation suggestions.
	Recommendations []string `json:"recommendations"`

	// LastUpdated is when this score was computed.
	LastUpdated time.Time `json:"last_updated"`
}

// ContractAnalysis is the top-level result of analyzing one contract.
type ContractAnalysis struct {
	// ContractID is derived deterministically from DocumentName and AnalyzedAt.
	ContractID string `json:"contract_id"`

	// DocumentName is the caller-supplied document name.
	DocumentName string `json:"document_name"`

	// Frameworks holds one score per requested framework.
	Frameworks []*FrameworkScore `json:"frameworks"`

	// OverallRiskLevel is derived from OverallComplianceScore.
	OverallRiskLevel RiskLevel `json:"overall_risk_level"`

	// OverallComplianceScore is the trust-weighted mean of framework scores.
	OverallComplianceScore float64 `json:"overall_compliance_score"`

	// CriticalIssues holds violations of critical severity.
	CriticalIssues []*Violation `json:"critical_issues"`

	// MediumIssues holds violations of high severity. The bucket names do not
	// map 1:1 to severity names; this mirrors the reference behavior.
	MediumIssues []*Violation `json:"medium_issues"`

	// LowIssues holds violations of medium or low severity.
	LowIssues []*Violation `json:"low_issues"`

	// AutoTags is a deduplicated, sorted set of tags derived from the analysis.
	AutoTags []string `json:"auto_tags"`

	// Jurisdiction is the caller-supplied jurisdiction.
	Jurisdiction string `json:"jurisdiction"`

	// ClientID is the optional client scope.
	ClientID string `json:"client_id,omitempty"`

	// AnalyzedAt is when the analysis ran.
	AnalyzedAt time.Time `json:"analyzed_at"`
}

// AnalyzeRequest carries the inputs for one contract analysis.
type AnalyzeRequest struct {
	// Text is the free-form contract text.
	Text string

	// DocumentName identifies the document being analyzed.
	DocumentName string

	// Frameworks lists the frameworks to evaluate against.
	Frameworks []Framework

	// Jurisdiction scopes jurisdiction-restricted rules.
	Jurisdiction string

	// ClientID scopes client-restricted rules (optional).
	ClientID string

	// CustomRules are applied as a per-call overlay on the corpus (optional).
	CustomRules []*Rule
}
