package clause

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clausewise/internal/compliance"
)

const instrumentationName = "github.com/fyrsmithlabs/clausewise/internal/clause"

// Service provides clause library operations.
type Service interface {
	// Search finds templates in a library matching a text query and filters.
	Search(ctx context.Context, libraryID, query string, filters *SearchFilters) ([]*Template, error)

	// AddTemplate adds a template to a library, deriving metadata and tags.
	AddTemplate(ctx context.Context, libraryID string, tmpl *Template) error

	// GetTemplate returns a template by ID.
	GetTemplate(ctx context.Context, libraryID, templateID string) (*Template, error)

	// TrackUsage records a template use and bumps its usage counter.
	TrackUsage(ctx context.Context, req *UsageRequest) (*Usage, error)

	// UsageHistory returns usage records for a template, newest first.
	UsageHistory(ctx context.Context, templateID string) ([]*Usage, error)

	// MostUsed returns the top-n templates of a library by usage count.
	MostUsed(ctx context.Context, libraryID string, n int) ([]*Template, error)
}

// service implements the Service interface.
type service struct {
	repo   Repository
	logger *zap.Logger

	tracer        trace.Tracer
	meter         metric.Meter
	searchCounter metric.Int64Counter
	usageCounter  metric.Int64Counter
}

// NewService creates a clause library service over a repository.
func NewService(repo Repository, logger *zap.Logger) (Service, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		repo:   repo,
		logger: logger,
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
	}
	s.initMetrics()
	return s, nil
}

// initMetrics initializes OpenTelemetry metrics.
func (s *service) initMetrics() {
	var err error

	s.searchCounter, err = s.meter.Int64Counter(
		"clausewise.clause.searches_total",
		metric.WithDescription("Total number of template searches"),
		metric.WithUnit("{search}"),
	)
	if err != nil {
		s.logger.Warn("failed to create search counter", zap.Error(err))
	}

	s.usageCounter, err = s.meter.Int64Counter(
		"clausewise.clause.usages_total",
		metric.WithDescription("Total number of template usage records"),
		metric.WithUnit("{usage}"),
	)
	if err != nil {
		s.logger.Warn("failed to create usage counter", zap.Error(err))
	}
}

// Search finds templates matching the query and filters, ordered by usage
// count descending, then last-modified descending.
func (s *service) Search(ctx context.Context, libraryID, query string, filters *SearchFilters) ([]*Template, error) {
	ctx, span := s.tracer.Start(ctx, "clause.search")
	defer span.End()

	span.SetAttributes(
		attribute.String("library_id", libraryID),
		attribute.Int("query_len", len(query)),
	)

	// The owner filter lives on the containing library, not the template.
	if filters != nil && filters.Owner != "" {
		lib, err := s.repo.GetLibrary(ctx, libraryID)
		if err != nil {
			span.RecordError(err)
			return nil, err
		}
		if lib.Owner != filters.Owner {
			span.SetAttributes(attribute.Int("result_count", 0))
			return nil, nil
		}
	}

	templates, err := s.repo.ListTemplates(ctx, libraryID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	tokens := strings.Fields(strings.ToLower(query))

	var out []*Template
	for _, tmpl := range templates {
		if !matchesQuery(tmpl, tokens) {
			continue
		}
		if filters != nil && !matchesFilters(tmpl, filters) {
			continue
		}
		out = append(out, tmpl)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].UsageCount != out[j].UsageCount {
			return out[i].UsageCount > out[j].UsageCount
		}
		return out[i].LastModified.After(out[j].LastModified)
	})

	if s.searchCounter != nil {
		s.searchCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.Int("result_count", len(out)),
		))
	}

	span.SetAttributes(attribute.Int("result_count", len(out)))
	return out, nil
}

// matchesQuery requires every query token to be a case-insensitive substring
// of the title, description, content, or any tag.
func matchesQuery(tmpl *Template, tokens []string) bool {
	if len(tokens) == 0 {
		return true
	}

	haystacks := []string{
		strings.ToLower(tmpl.Title),
		strings.ToLower(tmpl.Description),
		strings.ToLower(tmpl.Content),
	}
	for _, tag := range tmpl.Tags {
		haystacks = append(haystacks, strings.ToLower(tag))
	}

	for _, token := range tokens {
		found := false
		for _, h := range haystacks {
			if strings.Contains(h, token) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// matchesFilters applies the AND-combined optional filters.
func matchesFilters(tmpl *Template, f *SearchFilters) bool {
	if len(f.Categories) > 0 && !containsString(f.Categories, tmpl.Category) {
		return false
	}
	if len(f.Statuses) > 0 && !containsStatus(f.Statuses, tmpl.Status) {
		return false
	}
	if len(f.RiskLevels) > 0 && !containsRisk(f.RiskLevels, tmpl.RiskLevel) {
		return false
	}
	if len(f.Frameworks) > 0 && !frameworksOverlap(f.Frameworks, tmpl.ComplianceFrameworks) {
		return false
	}
	if f.Jurisdiction != "" && tmpl.Jurisdiction != f.Jurisdiction {
		return false
	}
	if f.Language != "" && tmpl.Language != f.Language {
		return false
	}
	if f.Author != "" && tmpl.Author != f.Author {
		return false
	}
	if len(f.Tags) > 0 && !tagsOverlap(f.Tags, tmpl.Tags) {
		return false
	}
	if f.IsPublic != nil && tmpl.IsPublic != *f.IsPublic {
		return false
	}
	return true
}

// AddTemplate adds a template to a library. Metadata is derived from the
// content; tags are auto-derived when the library enables auto-tagging; new
// templates land in draft status when the library requires approval.
func (s *service) AddTemplate(ctx context.Context, libraryID string, tmpl *Template) error {
	ctx, span := s.tracer.Start(ctx, "clause.add_template")
	defer span.End()

	if tmpl == nil {
		return errors.New("template is required")
	}
	if tmpl.Content == "" {
		return errors.New("template content is required")
	}

	lib, err := s.repo.GetLibrary(ctx, libraryID)
	if err != nil {
		span.RecordError(err)
		return err
	}

	if tmpl.ID == "" {
		tmpl.ID = uuid.New().String()
	}
	tmpl.Metadata = deriveMetadata(tmpl.Content)
	if lib.Settings.VersionControl || tmpl.LastModified.IsZero() {
		tmpl.LastModified = time.Now().UTC()
	}

	if lib.Settings.AutoTagging {
		tmpl.Tags = mergeTags(tmpl.Tags, deriveTags(tmpl))
	}
	if tmpl.Status == "" {
		if lib.Settings.RequireApproval {
			tmpl.Status = StatusDraft
		} else {
			tmpl.Status = StatusApproved
		}
	}

	if err := s.repo.PutTemplate(ctx, libraryID, tmpl); err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to store template: %w", err)
	}

	s.logger.Info("added template",
		zap.String("library_id", libraryID),
		zap.String("template_id", tmpl.ID),
		zap.String("category", tmpl.Category),
		zap.String("status", string(tmpl.Status)),
	)

	span.SetAttributes(attribute.String("template_id", tmpl.ID))
	return nil
}

// GetTemplate returns a template by ID.
func (s *service) GetTemplate(ctx context.Context, libraryID, templateID string) (*Template, error) {
	return s.repo.GetTemplate(ctx, libraryID, templateID)
}

// TrackUsage records a template use and bumps its usage counter. The counter
// increment happens inside the repository under its write lock, so concurrent
// tracking and searching over the same template stay consistent.
func (s *service) TrackUsage(ctx context.Context, req *UsageRequest) (*Usage, error) {
	ctx, span := s.tracer.Start(ctx, "clause.track_usage")
	defer span.End()

	if req == nil || req.TemplateID == "" {
		return nil, errors.New("template id is required")
	}

	count, err := s.repo.IncrementUsage(ctx, req.LibraryID, req.TemplateID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	usage := &Usage{
		ID:            uuid.New().String(),
		ClauseID:      req.TemplateID,
		ContractID:    req.ContractID,
		ContractName:  req.ContractName,
		UsedAt:        time.Now().UTC(),
		UsedBy:        req.UsedBy,
		Context:       req.Context,
		Modifications: req.Modifications,
		IsActive:      true,
	}

	if err := s.repo.AppendUsage(ctx, usage); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to append usage: %w", err)
	}

	if s.usageCounter != nil {
		s.usageCounter.Add(ctx, 1)
	}

	s.logger.Info("tracked usage",
		zap.String("template_id", req.TemplateID),
		zap.String("contract_id", req.ContractID),
		zap.Int64("usage_count", count),
	)

	return usage, nil
}

// UsageHistory returns usage records for a template, newest first.
func (s *service) UsageHistory(ctx context.Context, templateID string) ([]*Usage, error) {
	return s.repo.ListUsage(ctx, templateID)
}

// MostUsed returns the top-n templates of a library by usage count.
func (s *service) MostUsed(ctx context.Context, libraryID string, n int) ([]*Template, error) {
	templates, err := s.repo.ListTemplates(ctx, libraryID)
	if err != nil {
		return nil, err
	}

	sort.SliceStable(templates, func(i, j int) bool {
		return templates[i].UsageCount > templates[j].UsageCount
	})
	if n > 0 && len(templates) > n {
		templates = templates[:n]
	}
	return templates, nil
}

// deriveMetadata computes word count and a coarse complexity bucket from the
// average sentence length.
func deriveMetadata(content string) TemplateMetadata {
	words := strings.Fields(content)

	sentences := 0
	for _, r := range content {
		if r == '.' || r == ';' {
			sentences++
		}
	}
	if sentences == 0 {
		sentences = 1
	}

	avg := float64(len(words)) / float64(sentences)
	complexity := ComplexityLow
	switch {
	case avg > 25:
		complexity = ComplexityHigh
	case avg > 15:
		complexity = ComplexityMedium
	}

	return TemplateMetadata{
		WordCount:  len(words),
		Complexity: complexity,
	}
}

// deriveTags produces tags from the template's category and frameworks.
func deriveTags(tmpl *Template) []string {
	var tags []string
	if tmpl.Category != "" {
		tags = append(tags, strings.ReplaceAll(strings.ToLower(tmpl.Category), " ", "-"))
	}
	for _, f := range tmpl.ComplianceFrameworks {
		tags = append(tags, strings.ToLower(string(f)))
	}
	return tags
}

// mergeTags unions two tag lists preserving first-seen order.
func mergeTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	var out []string
	for _, t := range append(append([]string{}, a...), b...) {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

func containsString(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsStatus(set []TemplateStatus, v TemplateStatus) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func containsRisk(set []compliance.RiskLevel, v compliance.RiskLevel) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

func frameworksOverlap(a, b []compliance.Framework) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

func tagsOverlap(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if strings.EqualFold(x, y) {
				return true
			}
		}
	}
	return false
}
