package suggest

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clausewise/internal/clause"
	"github.com/fyrsmithlabs/clausewise/internal/compliance"
)

func newTestGenerator(t *testing.T) (Generator, *clause.MemoryRepository) {
	t.Helper()
	repo := clause.NewMemoryRepository()
	require.NoError(t, repo.PutLibrary(context.Background(), &clause.Library{ID: "standard"}))

	gen, err := NewGenerator(repo, zap.NewNop())
	require.NoError(t, err)
	return gen, repo
}

func TestNewGenerator_RequiresRepository(t *testing.T) {
	_, err := NewGenerator(nil, zap.NewNop())
	require.Error(t, err)
}

func TestRewriteForClarity(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "normalizes obligations and strips filler",
			in:   "The Supplier hereby agrees that it shall, notwithstanding any other provision, indemnify the Customer.",
			want: "The Supplier agrees that it will, despite any other provision, indemnify the Customer.",
		},
		{
			name: "must becomes will",
			in:   "The vendor must deliver pursuant to the schedule.",
			want: "The vendor will deliver despite the schedule.",
		},
		{
			name: "plain text unchanged",
			in:   "Invoices are payable within thirty days.",
			want: "Invoices are payable within thirty days.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rewriteForClarity(tt.in))
		})
	}
}

func TestGenerateSuggestions_Validation(t *testing.T) {
	gen, _ := newTestGenerator(t)
	ctx := context.Background()

	_, err := gen.GenerateSuggestions(ctx, "standard", nil)
	require.Error(t, err)

	_, err = gen.GenerateSuggestions(ctx, "standard", &Request{})
	require.Error(t, err)
}

func TestGenerateSuggestions_UnknownLibrary(t *testing.T) {
	gen, _ := newTestGenerator(t)

	_, err := gen.GenerateSuggestions(context.Background(), "nope", &Request{OriginalClause: "x"})
	assert.ErrorIs(t, err, clause.ErrLibraryNotFound)
}

func TestGenerateSuggestions_TemplateMatch(t *testing.T) {
	gen, repo := newTestGenerator(t)
	ctx := context.Background()

	require.NoError(t, repo.PutTemplate(ctx, "standard", &clause.Template{
		ID:         "tmpl-1",
		Title:      "Standard confidentiality",
		Category:   "Confidentiality",
		Content:    "Confidential information must remain protected using encryption measures",
		UsageCount: 7,
	}))

	got, err := gen.GenerateSuggestions(ctx, "standard", &Request{
		OriginalClause: "Confidential information must remain protected using reasonable encryption measures",
		Category:       "Confidentiality",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, TypeTemplate, s.SuggestionType)
	assert.Equal(t, SourceLegalPrecedent, s.Source)
	assert.Equal(t, "tmpl-1", s.RelatedTemplateID)
	assert.Greater(t, s.Confidence, 0.5)
	assert.Contains(t, s.Title, "Standard confidentiality")
}

func TestGenerateSuggestions_HeuristicGoals(t *testing.T) {
	gen, _ := newTestGenerator(t)

	got, err := gen.GenerateSuggestions(context.Background(), "standard", &Request{
		OriginalClause:       "The recipient shall hold all confidential information in strict confidence.",
		ComplianceFrameworks: []compliance.Framework{compliance.FrameworkGDPR},
		DesiredImprovements:  []Improvement{ImproveClarity, ImproveCompliance, ImproveRiskReduction},
	})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Sorted by confidence descending: compliance 0.9, clarity 0.8, risk 0.7.
	assert.Equal(t, TypeCompliance, got[0].SuggestionType)
	assert.Equal(t, TypeClarity, got[1].SuggestionType)
	assert.Equal(t, TypeRiskReduction, got[2].SuggestionType)

	assert.Contains(t, got[0].SuggestedClause, "72 hours")
	assert.Contains(t, got[1].SuggestedClause, "will hold")
	assert.Contains(t, got[2].SuggestedClause, "statutory limitation period")
	for _, s := range got {
		assert.Equal(t, SourceAIAnalysis, s.Source)
	}
}

func TestGenerateSuggestions_ComplianceSkippedWithoutBoilerplate(t *testing.T) {
	gen, _ := newTestGenerator(t)

	got, err := gen.GenerateSuggestions(context.Background(), "standard", &Request{
		OriginalClause:       "Some clause.",
		ComplianceFrameworks: []compliance.Framework{compliance.FrameworkSOX},
		DesiredImprovements:  []Improvement{ImproveCompliance},
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGenerateSuggestions_Cap(t *testing.T) {
	gen, _ := newTestGenerator(t)

	got, err := gen.GenerateSuggestions(context.Background(), "standard", &Request{
		OriginalClause:       "The recipient shall hold all confidential information in strict confidence.",
		ComplianceFrameworks: []compliance.Framework{compliance.FrameworkGDPR},
		DesiredImprovements:  []Improvement{ImproveClarity, ImproveCompliance, ImproveRiskReduction},
		MaxSuggestions:       2,
	})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, TypeCompliance, got[0].SuggestionType)
	assert.Equal(t, TypeClarity, got[1].SuggestionType)
}

func TestGenerateReplacements(t *testing.T) {
	gen, _ := newTestGenerator(t)
	ctx := context.Background()

	req := &Request{
		OriginalClause:      "ignored",
		DesiredImprovements: []Improvement{ImproveClarity},
	}

	got, err := gen.GenerateReplacements(ctx, "standard", "The vendor shall deliver reports.", req)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "The vendor shall deliver reports.", got[0].OriginalClause)

	_, err = gen.GenerateReplacements(ctx, "standard", "   ", req)
	require.Error(t, err)
}
