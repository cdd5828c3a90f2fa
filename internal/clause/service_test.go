package clause

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clausewise/internal/compliance"
)

func newTestLibrary(t *testing.T, repo Repository, settings LibrarySettings) *Library {
	t.Helper()
	lib := &Library{
		ID:       "standard",
		Name:     "Standard Library",
		Owner:    "legal",
		Settings: settings,
	}
	require.NoError(t, repo.PutLibrary(context.Background(), lib))
	return lib
}

func seedTemplate(t *testing.T, repo Repository, libraryID string, tmpl *Template) {
	t.Helper()
	require.NoError(t, repo.PutTemplate(context.Background(), libraryID, tmpl))
}

func TestNewService_RequiresRepository(t *testing.T) {
	_, err := NewService(nil, zap.NewNop())
	require.Error(t, err)
}

func TestSearch(t *testing.T) {
	repo := NewMemoryRepository()
	newTestLibrary(t, repo, LibrarySettings{})

	svc, err := NewService(repo, zap.NewNop())
	require.NoError(t, err)

	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	seedTemplate(t, repo, "standard", &Template{
		ID:                   "t1",
		Title:                "Confidentiality clause",
		Description:          "Mutual confidentiality obligations",
		Content:              "Each party will keep confidential information secret.",
		Category:             "Confidentiality",
		Status:               StatusApproved,
		RiskLevel:            compliance.RiskLow,
		ComplianceFrameworks: []compliance.Framework{compliance.FrameworkGDPR},
		Jurisdiction:         "EU",
		UsageCount:           3,
		LastModified:         base,
	})
	seedTemplate(t, repo, "standard", &Template{
		ID:           "t2",
		Title:        "Data retention clause",
		Description:  "Retention and deletion commitments",
		Content:      "Personal data is retained for 12 months.",
		Category:     "Data Protection",
		Status:       StatusDraft,
		RiskLevel:    compliance.RiskMedium,
		Tags:         []string{"gdpr", "retention"},
		UsageCount:   10,
		LastModified: base.Add(time.Hour),
	})
	seedTemplate(t, repo, "standard", &Template{
		ID:           "t3",
		Title:        "Retention of records",
		Description:  "Financial records retention",
		Content:      "Records are kept for audit purposes.",
		Category:     "Financial Compliance",
		Status:       StatusApproved,
		RiskLevel:    compliance.RiskMedium,
		UsageCount:   10,
		LastModified: base.Add(2 * time.Hour),
	})

	ctx := context.Background()

	t.Run("unknown library", func(t *testing.T) {
		_, err := svc.Search(ctx, "nope", "", nil)
		assert.ErrorIs(t, err, ErrLibraryNotFound)
	})

	t.Run("empty query returns everything ordered by usage then recency", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "", nil)
		require.NoError(t, err)
		require.Len(t, got, 3)
		// t2 and t3 tie on usage; t3 was modified later.
		assert.Equal(t, "t3", got[0].ID)
		assert.Equal(t, "t2", got[1].ID)
		assert.Equal(t, "t1", got[2].ID)
	})

	t.Run("every token must match", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "retention deletion", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "t2", got[0].ID)
	})

	t.Run("tokens match tags", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "gdpr", nil)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "t2", got[0].ID)
	})

	t.Run("filters are AND-combined", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "", &SearchFilters{
			Statuses:   []TemplateStatus{StatusApproved},
			RiskLevels: []compliance.RiskLevel{compliance.RiskMedium},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "t3", got[0].ID)
	})

	t.Run("framework filter", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "", &SearchFilters{
			Frameworks: []compliance.Framework{compliance.FrameworkGDPR},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].ID)
	})

	t.Run("jurisdiction filter", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "", &SearchFilters{Jurisdiction: "EU"})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "t1", got[0].ID)
	})

	t.Run("owner filter matches against the library owner", func(t *testing.T) {
		got, err := svc.Search(ctx, "standard", "", &SearchFilters{Owner: "legal"})
		require.NoError(t, err)
		assert.Len(t, got, 3)

		got, err = svc.Search(ctx, "standard", "", &SearchFilters{Owner: "other-firm"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestAddTemplate(t *testing.T) {
	ctx := context.Background()

	t.Run("derives metadata and auto-tags", func(t *testing.T) {
		repo := NewMemoryRepository()
		newTestLibrary(t, repo, LibrarySettings{AutoTagging: true})
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		tmpl := &Template{
			Title:                "Retention clause",
			Content:              "Data is retained for one year. Data is then deleted.",
			Category:             "Data Protection",
			ComplianceFrameworks: []compliance.Framework{compliance.FrameworkGDPR},
			Tags:                 []string{"retention"},
		}
		require.NoError(t, svc.AddTemplate(ctx, "standard", tmpl))

		assert.NotEmpty(t, tmpl.ID)
		assert.Equal(t, 10, tmpl.Metadata.WordCount)
		assert.Equal(t, ComplexityLow, tmpl.Metadata.Complexity)
		assert.Equal(t, []string{"retention", "data-protection", "gdpr"}, tmpl.Tags)
		assert.Equal(t, StatusApproved, tmpl.Status)
		assert.False(t, tmpl.LastModified.IsZero())

		// The library's derived category set picked up the new category.
		lib, err := repo.GetLibrary(ctx, "standard")
		require.NoError(t, err)
		assert.Contains(t, lib.Categories, "Data Protection")
	})

	t.Run("version-controlled library restamps the timestamp", func(t *testing.T) {
		repo := NewMemoryRepository()
		newTestLibrary(t, repo, LibrarySettings{VersionControl: true})
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		stale := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		tmpl := &Template{Title: "x", Content: "Some clause text.", LastModified: stale}
		require.NoError(t, svc.AddTemplate(ctx, "standard", tmpl))
		assert.True(t, tmpl.LastModified.After(stale))
	})

	t.Run("without version control an existing timestamp is preserved", func(t *testing.T) {
		repo := NewMemoryRepository()
		newTestLibrary(t, repo, LibrarySettings{})
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
		tmpl := &Template{Title: "x", Content: "Some clause text.", LastModified: stamp}
		require.NoError(t, svc.AddTemplate(ctx, "standard", tmpl))
		assert.Equal(t, stamp, tmpl.LastModified)
	})

	t.Run("approval-gated library lands templates in draft", func(t *testing.T) {
		repo := NewMemoryRepository()
		newTestLibrary(t, repo, LibrarySettings{RequireApproval: true})
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		tmpl := &Template{Title: "x", Content: "Some clause text."}
		require.NoError(t, svc.AddTemplate(ctx, "standard", tmpl))
		assert.Equal(t, StatusDraft, tmpl.Status)
	})

	t.Run("explicit status is preserved", func(t *testing.T) {
		repo := NewMemoryRepository()
		newTestLibrary(t, repo, LibrarySettings{RequireApproval: true})
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		tmpl := &Template{Title: "x", Content: "Some clause text.", Status: StatusDeprecated}
		require.NoError(t, svc.AddTemplate(ctx, "standard", tmpl))
		assert.Equal(t, StatusDeprecated, tmpl.Status)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		repo := NewMemoryRepository()
		newTestLibrary(t, repo, LibrarySettings{})
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		err = svc.AddTemplate(ctx, "standard", &Template{Title: "empty"})
		require.Error(t, err)
	})

	t.Run("unknown library", func(t *testing.T) {
		repo := NewMemoryRepository()
		svc, err := NewService(repo, zap.NewNop())
		require.NoError(t, err)

		err = svc.AddTemplate(ctx, "nope", &Template{Content: "text"})
		assert.ErrorIs(t, err, ErrLibraryNotFound)
	})
}

func TestDeriveMetadata_Complexity(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"short sentences", "One two three. Four five six.", ComplexityLow},
		{
			"medium sentences",
			"one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen.",
			ComplexityMedium,
		},
		{
			"long sentences",
			"one two three four five six seven eight nine ten eleven twelve thirteen fourteen fifteen sixteen seventeen eighteen nineteen twenty twentyone twentytwo twentythree twentyfour twentyfive twentysix.",
			ComplexityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := deriveMetadata(tt.content)
			assert.Equal(t, tt.want, got.Complexity)
		})
	}
}

func TestTrackUsage(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	newTestLibrary(t, repo, LibrarySettings{})
	svc, err := NewService(repo, zap.NewNop())
	require.NoError(t, err)

	seedTemplate(t, repo, "standard", &Template{ID: "t1", Content: "clause"})

	t.Run("records usage and bumps the counter", func(t *testing.T) {
		usage, err := svc.TrackUsage(ctx, &UsageRequest{
			LibraryID:    "standard",
			TemplateID:   "t1",
			ContractID:   "c-100",
			ContractName: "MSA with Acme",
			UsedBy:       "counsel@example.com",
		})
		require.NoError(t, err)

		assert.NotEmpty(t, usage.ID)
		assert.Equal(t, "t1", usage.ClauseID)
		assert.True(t, usage.IsActive)

		tmpl, err := svc.GetTemplate(ctx, "standard", "t1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), tmpl.UsageCount)

		history, err := svc.UsageHistory(ctx, "t1")
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, "c-100", history[0].ContractID)
	})

	t.Run("unknown template", func(t *testing.T) {
		_, err := svc.TrackUsage(ctx, &UsageRequest{LibraryID: "standard", TemplateID: "missing"})
		assert.ErrorIs(t, err, ErrTemplateNotFound)
	})

	t.Run("missing template id", func(t *testing.T) {
		_, err := svc.TrackUsage(ctx, &UsageRequest{LibraryID: "standard"})
		require.Error(t, err)
	})
}

func TestTrackUsage_ConcurrentWithSearch(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	newTestLibrary(t, repo, LibrarySettings{})
	svc, err := NewService(repo, zap.NewNop())
	require.NoError(t, err)

	seedTemplate(t, repo, "standard", &Template{ID: "t1", Content: "confidential clause"})

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := svc.TrackUsage(ctx, &UsageRequest{LibraryID: "standard", TemplateID: "t1"}); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			if _, err := svc.Search(ctx, "standard", "confidential", nil); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	tmpl, err := svc.GetTemplate(ctx, "standard", "t1")
	require.NoError(t, err)
	assert.Equal(t, int64(workers), tmpl.UsageCount)

	history, err := svc.UsageHistory(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, history, workers)
}

func TestMostUsed(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	newTestLibrary(t, repo, LibrarySettings{})
	svc, err := NewService(repo, zap.NewNop())
	require.NoError(t, err)

	seedTemplate(t, repo, "standard", &Template{ID: "a", Content: "x", UsageCount: 1})
	seedTemplate(t, repo, "standard", &Template{ID: "b", Content: "x", UsageCount: 5})
	seedTemplate(t, repo, "standard", &Template{ID: "c", Content: "x", UsageCount: 3})

	got, err := svc.MostUsed(ctx, "standard", 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID)
	assert.Equal(t, "c", got[1].ID)
}
