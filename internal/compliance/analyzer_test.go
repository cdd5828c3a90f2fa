package compliance

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// compliantGDPRContract carries evidence for every built-in GDPR rule, with
// binding obligation language and concrete detail.
const compliantGDPRContract = `The processor shall process personal data only on a documented lawful basis.
Data subjects may exercise the right to access, rectification, and erasure at any time.
Personal data is retained for the retention period of 36 months and then securely deleted.
In the event of a personal data breach, the supervisory authority shall be notified within 72 hours.
International transfers rely on standard contractual clauses.
The data protection officer can be reached at privacy@example.com.`

func newTestService(t *testing.T) Service {
	t.Helper()
	corpus, err := DefaultCorpus()
	require.NoError(t, err)
	svc, err := NewService(corpus, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func TestNewService_RequiresCorpus(t *testing.T) {
	_, err := NewService(nil, zap.NewNop())
	require.Error(t, err)
}

func TestAnalyzeContract_Validation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  *AnalyzeRequest
	}{
		{"nil request", nil},
		{"missing document name", &AnalyzeRequest{Text: "x", Frameworks: []Framework{FrameworkGDPR}}},
		{"no frameworks", &AnalyzeRequest{Text: "x", DocumentName: "msa.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.AnalyzeContract(ctx, tt.req)
			require.Error(t, err)
		})
	}
}

func TestAnalyzeContract_CompliantGDPR(t *testing.T) {
	svc := newTestService(t)

	analysis, err := svc.AnalyzeContract(context.Background(), &AnalyzeRequest{
		Text:         compliantGDPRContract,
		DocumentName: "dpa.txt",
		Frameworks:   []Framework{FrameworkGDPR},
	})
	require.NoError(t, err)

	require.Len(t, analysis.Frameworks, 1)
	fs := analysis.Frameworks[0]

	assert.Empty(t, fs.Violations)
	assert.InDelta(t, 90.0, fs.OverallScore, 0.001) // 100 * GDPR trust weight
	assert.Equal(t, RiskLow, fs.RiskLevel)

	assert.InDelta(t, 90.0, analysis.OverallComplianceScore, 0.001)
	assert.Equal(t, RiskLow, analysis.OverallRiskLevel)
	assert.Empty(t, analysis.CriticalIssues)

	assert.True(t, strings.HasPrefix(analysis.ContractID, "contract-"))
	assert.Equal(t, []string{"gdpr"}, analysis.AutoTags)
}

func TestAnalyzeContract_MissingEverything(t *testing.T) {
	svc := newTestService(t)

	analysis, err := svc.AnalyzeContract(context.Background(), &AnalyzeRequest{
		Text:         "This agreement contains no data handling or rights provisions.",
		DocumentName: "bare.txt",
		Frameworks:   []Framework{FrameworkGDPR},
	})
	require.NoError(t, err)

	require.Len(t, analysis.Frameworks, 1)
	fs := analysis.Frameworks[0]

	// Rules with weight above 0.7 report missing-clause violations: lawful
	// basis (1.0), data subject rights (0.9), retention (0.8), breach
	// notification (0.8). The 0.7-weight transfer rule sits on the boundary
	// and is not required.
	require.Len(t, fs.Violations, 4)

	seen := make(map[string]bool)
	for _, v := range fs.Violations {
		assert.Equal(t, ClauseMissing, v.ClauseID)
		assert.NotEmpty(t, v.ID)
		assert.False(t, seen[v.RuleID], "duplicate violation for rule %s", v.RuleID)
		seen[v.RuleID] = true
	}

	// base 33.33 - penalty 31, trust-weighted by 0.9
	assert.InDelta(t, 2.1, fs.OverallScore, 0.01)
	assert.Equal(t, RiskCritical, fs.RiskLevel)
	assert.Equal(t, RiskCritical, analysis.OverallRiskLevel)

	// Severity buckets: criticals, highs, and the rest.
	assert.Len(t, analysis.CriticalIssues, 1)
	assert.Len(t, analysis.MediumIssues, 2)
	assert.Len(t, analysis.LowIssues, 1)

	assert.Equal(t, []string{
		"critical-risk",
		"data-protection",
		"data-protection-issues",
		"gdpr",
		"high-risk",
		"medium-risk",
	}, analysis.AutoTags)

	// Critical findings surface an urgent recommendation and a legal review.
	recs := strings.Join(fs.Recommendations, "\n")
	assert.Contains(t, recs, "URGENT")
	assert.Contains(t, recs, "legal review")
	assert.Contains(t, recs, "compliance monitoring")
}

func TestAnalyzeContract_WeakImplementation(t *testing.T) {
	svc := newTestService(t)

	// Evidence for every GDPR rule, but no obligation language or concrete
	// detail anywhere, so each matched rule reports a weak implementation.
	text := "Lawful basis. Data subject rights. Retention period. Personal data breach. Adequacy decision. Data protection officer."

	analysis, err := svc.AnalyzeContract(context.Background(), &AnalyzeRequest{
		Text:         text,
		DocumentName: "thin.txt",
		Frameworks:   []Framework{FrameworkGDPR},
	})
	require.NoError(t, err)

	fs := analysis.Frameworks[0]
	require.Len(t, fs.Violations, 6)
	for _, v := range fs.Violations {
		assert.Equal(t, ClauseImplementation, v.ClauseID)
		assert.Equal(t, RiskMedium, v.Severity)
	}
}

func TestAnalyzeContract_MultipleFrameworks(t *testing.T) {
	svc := newTestService(t)

	analysis, err := svc.AnalyzeContract(context.Background(), &AnalyzeRequest{
		Text:         compliantGDPRContract,
		DocumentName: "dpa.txt",
		Frameworks:   []Framework{FrameworkGDPR, FrameworkSOX},
	})
	require.NoError(t, err)

	require.Len(t, analysis.Frameworks, 2)
	gdpr, sox := analysis.Frameworks[0], analysis.Frameworks[1]
	assert.Equal(t, FrameworkGDPR, gdpr.Framework)
	assert.Equal(t, FrameworkSOX, sox.Framework)

	// The overall score is the trust-weighted mean of the already
	// trust-weighted framework scores.
	wantOverall := (gdpr.OverallScore*0.9 + sox.OverallScore*0.8) / 1.7
	assert.InDelta(t, wantOverall, analysis.OverallComplianceScore, 0.001)
}

func TestAnalyzeContract_CustomRules(t *testing.T) {
	svc := newTestService(t)

	custom := &Rule{
		ID:          "acme-liability-cap",
		Framework:   FrameworkCustom,
		Category:    "Risk Allocation",
		Name:        "Liability cap",
		Description: "cap aggregate liability",
		RiskLevel:   RiskHigh,
		Keywords:    []string{"limitation of liability"},
		Weight:      0.9,
		IsActive:    true,
	}

	analysis, err := svc.AnalyzeContract(context.Background(), &AnalyzeRequest{
		Text:         "This agreement is silent on caps.",
		DocumentName: "msa.txt",
		Frameworks:   []Framework{FrameworkCustom},
		CustomRules:  []*Rule{custom},
	})
	require.NoError(t, err)

	fs := analysis.Frameworks[0]
	require.Len(t, fs.Violations, 1)
	assert.Equal(t, "acme-liability-cap", fs.Violations[0].RuleID)

	// The overlay is per-request; the service corpus is untouched.
	assert.Equal(t, 0, svc.Corpus().FrameworkRuleCount(FrameworkCustom))
}

func TestAnalyzeContract_InvalidCustomRules(t *testing.T) {
	svc := newTestService(t)

	bad := validRule("bad")
	bad.Weight = 5

	_, err := svc.AnalyzeContract(context.Background(), &AnalyzeRequest{
		Text:         "text",
		DocumentName: "msa.txt",
		Frameworks:   []Framework{FrameworkCustom},
		CustomRules:  []*Rule{bad},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid custom rules")
}
