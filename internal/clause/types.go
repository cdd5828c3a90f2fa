package clause

import (
	"time"

	"github.com/fyrsmithlabs/clausewise/internal/compliance"
)

// TemplateStatus is the lifecycle state of a clause template.
type TemplateStatus string

const (
	// StatusDraft is a template awaiting approval.
	StatusDraft TemplateStatus = "draft"
	// StatusApproved is a vetted, usable template.
	StatusApproved TemplateStatus = "approved"
	// StatusDeprecated is a template that should no longer be used in new contracts.
	StatusDeprecated TemplateStatus = "deprecated"
	// StatusArchived is a retired template kept for history.
	StatusArchived TemplateStatus = "archived"
)

// Complexity buckets for template metadata.
const (
	ComplexityLow    = "low"
	ComplexityMedium = "medium"
	ComplexityHigh   = "high"
)

// TemplateMetadata holds derived template measurements. Modeled as an
// explicit struct rather than an open key-value map.
type TemplateMetadata struct {
	// WordCount is the number of whitespace-separated words in the content.
	WordCount int `json:"word_count"`

	// Complexity is a coarse readability bucket (low, medium, high).
	Complexity string `json:"complexity"`
}

// Template is a reusable, vetted block of contract language.
type Template struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Content     string `json:"content"`

	Tags   []string       `json:"tags"`
	Status TemplateStatus `json:"status"`

	RiskLevel            compliance.RiskLevel   `json:"risk_level"`
	ComplianceFrameworks []compliance.Framework `json:"compliance_frameworks"`

	Jurisdiction string `json:"jurisdiction"`
	Language     string `json:"language"`
	Author       string `json:"author"`
	IsPublic     bool   `json:"is_public"`

	// UsageCount increments each time the template is used in a contract.
	UsageCount int64 `json:"usage_count"`

	LastModified time.Time        `json:"last_modified"`
	Metadata     TemplateMetadata `json:"metadata"`
}

// LibrarySettings controls library-level behavior.
type LibrarySettings struct {
	// RequireApproval forces new templates into draft status.
	RequireApproval bool `json:"require_approval"`

	// AutoTagging derives tags from category and frameworks on add.
	AutoTagging bool `json:"auto_tagging"`

	// VersionControl restamps LastModified on every edit. Without it an
	// existing timestamp is preserved.
	VersionControl bool `json:"version_control"`
}

// Library is a collection of clause templates.
type Library struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Owner    string `json:"owner"`
	IsPublic bool   `json:"is_public"`

	// Categories is the derived set of categories present in the library.
	Categories []string `json:"categories"`

	Settings LibrarySettings `json:"settings"`
}

// Usage is one append-only record of a template being used in a contract.
type Usage struct {
	ID            string    `json:"id"`
	ClauseID      string    `json:"clause_id"`
	ContractID    string    `json:"contract_id"`
	ContractName  string    `json:"contract_name"`
	UsedAt        time.Time `json:"used_at"`
	UsedBy        string    `json:"used_by"`
	Context       string    `json:"context"`
	Modifications string    `json:"modifications,omitempty"`
	IsActive      bool      `json:"is_active"`
}

// SearchFilters are optional, AND-combined template filters.
type SearchFilters struct {
	// Categories keeps templates whose category is in the set.
	Categories []string

	// Statuses keeps templates whose status is in the set.
	Statuses []TemplateStatus

	// RiskLevels keeps templates whose risk level is in the set.
	RiskLevels []compliance.RiskLevel

	// Frameworks keeps templates sharing at least one framework.
	Frameworks []compliance.Framework

	// Jurisdiction keeps templates with this exact jurisdiction.
	Jurisdiction string

	// Language keeps templates with this exact language.
	Language string

	// Author keeps templates by this author.
	Author string

	// Owner keeps results only when the containing library's owner matches.
	Owner string

	// Tags keeps templates sharing at least one tag.
	Tags []string

	// IsPublic filters by public flag when non-nil.
	IsPublic *bool
}

// UsageRequest records a template use in a contract.
type UsageRequest struct {
	LibraryID     string
	TemplateID    string
	ContractID    string
	ContractName  string
	UsedBy        string
	Context       string
	Modifications string
}
