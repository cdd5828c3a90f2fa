package suggest

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/clausewise/internal/clause"
	"github.com/fyrsmithlabs/clausewise/internal/compliance"
)

const instrumentationName = "github.com/fyrsmithlabs/clausewise/internal/suggest"

// defaultMaxSuggestions caps results when the request does not set a limit.
const defaultMaxSuggestions = 5

// templateConfidenceFloor is the minimum similarity for a template-based suggestion.
const templateConfidenceFloor = 0.5

// Fixed confidences for heuristic rewrites.
const (
	clarityConfidence    = 0.8
	complianceConfidence = 0.9
	riskConfidence       = 0.7
)

// Generator produces ranked clause suggestions from a template library.
type Generator interface {
	// GenerateSuggestions returns ranked suggestions for a clause, capped at
	// the request's MaxSuggestions and sorted by confidence descending.
	GenerateSuggestions(ctx context.Context, libraryID string, req *Request) ([]*Suggestion, error)

	// GenerateReplacements produces replacement suggestions for one contract
	// section, reusing the request's goals and framework scope.
	GenerateReplacements(ctx context.Context, libraryID, section string, req *Request) ([]*Suggestion, error)
}

// generator implements the Generator interface.
type generator struct {
	repo   clause.Repository
	logger *zap.Logger

	tracer          trace.Tracer
	meter           metric.Meter
	suggestCounter  metric.Int64Counter
	templateCounter metric.Int64Counter
}

// NewGenerator creates a suggestion generator over a clause repository.
func NewGenerator(repo clause.Repository, logger *zap.Logger) (Generator, error) {
	if repo == nil {
		return nil, errors.New("repository is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	g := &generator{
		repo:   repo,
		logger: logger,
		tracer: otel.Tracer(instrumentationName),
		meter:  otel.Meter(instrumentationName),
	}
	g.initMetrics()
	return g, nil
}

// initMetrics initializes OpenTelemetry metrics.
func (g *generator) initMetrics() {
	var err error

	g.suggestCounter, err = g.meter.Int64Counter(
		"clausewise.suggest.suggestions_total",
		metric.WithDescription("Total number of suggestions generated"),
		metric.WithUnit("{suggestion}"),
	)
	if err != nil {
		g.logger.Warn("failed to create suggestion counter", zap.Error(err))
	}

	g.templateCounter, err = g.meter.Int64Counter(
		"clausewise.suggest.template_matches_total",
		metric.WithDescription("Total number of template-based suggestions"),
		metric.WithUnit("{match}"),
	)
	if err != nil {
		g.logger.Warn("failed to create template counter", zap.Error(err))
	}
}

// GenerateSuggestions returns ranked suggestions for a clause.
func (g *generator) GenerateSuggestions(ctx context.Context, libraryID string, req *Request) ([]*Suggestion, error) {
	ctx, span := g.tracer.Start(ctx, "suggest.generate")
	defer span.End()

	if req == nil || req.OriginalClause == "" {
		return nil, errors.New("original clause is required")
	}

	span.SetAttributes(
		attribute.String("library_id", libraryID),
		attribute.String("category", req.Category),
		attribute.Int("improvement_count", len(req.DesiredImprovements)),
	)

	templates, err := g.repo.ListTemplates(ctx, libraryID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	now := time.Now().UTC()
	var suggestions []*Suggestion

	matches := FindSimilarTemplates(req.OriginalClause, templates, req)
	for _, m := range matches {
		if m.Similarity < templateConfidenceFloor {
			continue
		}
		suggestions = append(suggestions, templateSuggestion(req, m, now))
		if g.templateCounter != nil {
			g.templateCounter.Add(ctx, 1)
		}
	}

	for _, goal := range req.DesiredImprovements {
		switch goal {
		case ImproveClarity:
			suggestions = append(suggestions, claritySuggestion(req, now))
		case ImproveCompliance:
			if s := complianceSuggestion(req, now); s != nil {
				suggestions = append(suggestions, s)
			}
		case ImproveRiskReduction:
			suggestions = append(suggestions, riskSuggestion(req, now))
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Confidence > suggestions[j].Confidence
	})

	limit := req.MaxSuggestions
	if limit <= 0 {
		limit = defaultMaxSuggestions
	}
	if len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}

	if g.suggestCounter != nil {
		g.suggestCounter.Add(ctx, int64(len(suggestions)), metric.WithAttributes(
			attribute.String("category", req.Category),
		))
	}

	g.logger.Debug("generated suggestions",
		zap.String("library_id", libraryID),
		zap.Int("template_matches", len(matches)),
		zap.Int("suggestions", len(suggestions)),
	)

	span.SetAttributes(attribute.Int("suggestion_count", len(suggestions)))
	return suggestions, nil
}

// GenerateReplacements produces replacement suggestions for one contract section.
func (g *generator) GenerateReplacements(ctx context.Context, libraryID, section string, req *Request) ([]*Suggestion, error) {
	if strings.TrimSpace(section) == "" {
		return nil, errors.New("section text is required")
	}

	sectionReq := *req
	sectionReq.OriginalClause = section
	return g.GenerateSuggestions(ctx, libraryID, &sectionReq)
}

// templateSuggestion proposes a matched template's content verbatim.
func templateSuggestion(req *Request, m *TemplateMatch, now time.Time) *Suggestion {
	return &Suggestion{
		ID:              uuid.New().String(),
		OriginalClause:  req.OriginalClause,
		SuggestedClause: m.Template.Content,
		SuggestionType:  TypeTemplate,
		Title:           fmt.Sprintf("Replace with template: %s", m.Template.Title),
		Description:     fmt.Sprintf("A vetted %s template covers the same ground with %.0f%% keyword overlap.", m.Template.Category, m.Similarity*100),
		Reasoning:       "The template has been reviewed for the requested frameworks and is in active use.",
		Benefits: []string{
			"Language already vetted by legal review",
			fmt.Sprintf("Used in %d prior contracts", m.Template.UsageCount),
		},
		Risks: []string{
			"Template wording may need adaptation to this contract's defined terms",
		},
		ComplianceImprovements: frameworkNames(m.Template.ComplianceFrameworks),
		Confidence:             m.Similarity,
		Source:                 SourceLegalPrecedent,
		RelatedTemplateID:      m.Template.ID,
		CreatedAt:              now,
	}
}

var (
	clarityObligations = regexp.MustCompile(`(?i)\b(shall|must|will)\b`)
	clarityArchaic     = regexp.MustCompile(`(?i)\b(notwithstanding|pursuant to)\b`)
	clarityFiller      = regexp.MustCompile(`(?i)\b(hereby|whereas)\b\s*`)
	multiSpace         = regexp.MustCompile(`  +`)
)

// rewriteForClarity normalizes obligation verbs to "will", swaps archaic
// connectives for "despite", and deletes filler words.
func rewriteForClarity(text string) string {
	out := clarityObligations.ReplaceAllString(text, "will")
	out = clarityArchaic.ReplaceAllString(out, "despite")
	out = clarityFiller.ReplaceAllString(out, "")
	out = multiSpace.ReplaceAllString(out, " ")
	return strings.TrimSpace(out)
}

func claritySuggestion(req *Request, now time.Time) *Suggestion {
	return &Suggestion{
		ID:              uuid.New().String(),
		OriginalClause:  req.OriginalClause,
		SuggestedClause: rewriteForClarity(req.OriginalClause),
		SuggestionType:  TypeClarity,
		Title:           "Simplify drafting for clarity",
		Description:     "Normalizes obligation verbs and removes archaic filler without changing the clause's effect.",
		Reasoning:       "Plainer language reduces ambiguity disputes over modal verbs and archaic connectives.",
		Benefits:        []string{"Easier to read and negotiate", "Consistent obligation language"},
		Risks:           []string{"Verify that softening 'shall' to 'will' is acceptable in this jurisdiction"},
		Confidence:      clarityConfidence,
		Source:          SourceAIAnalysis,
		CreatedAt:       now,
	}
}

// complianceBoilerplate holds framework-specific paragraphs appended by
// compliance suggestions. Illustrative defaults; organizations typically
// replace these with their own approved language.
var complianceBoilerplate = map[compliance.Framework]string{
	compliance.FrameworkGDPR:  "Each party will process personal data only on documented instructions, will honor data subject requests for access, rectification, erasure, and portability within statutory deadlines, and will notify the other party of a personal data breach without undue delay and in any event within 72 hours.",
	compliance.FrameworkHIPAA: "Each party will implement administrative, physical, and technical safeguards for protected health information, will limit uses and disclosures to the minimum necessary, and will report any security incident involving unsecured protected health information without unreasonable delay.",
	compliance.FrameworkCCPA:  "Service provider will not sell or share personal information received under this agreement and will cooperate with verified consumer requests to know and to delete as required by applicable law.",
}

func complianceSuggestion(req *Request, now time.Time) *Suggestion {
	var paragraphs []string
	var covered []string
	for _, f := range req.ComplianceFrameworks {
		if p, ok := complianceBoilerplate[f]; ok {
			paragraphs = append(paragraphs, p)
			covered = append(covered, string(f))
		}
	}
	if len(paragraphs) == 0 {
		return nil
	}

	return &Suggestion{
		ID:              uuid.New().String(),
		OriginalClause:  req.OriginalClause,
		SuggestedClause: req.OriginalClause + "\n\n" + strings.Join(paragraphs, "\n\n"),
		SuggestionType:  TypeCompliance,
		Title:           fmt.Sprintf("Add %s compliance language", strings.Join(covered, ", ")),
		Description:     "Appends framework-specific obligations the clause currently lacks.",
		Reasoning:       "Explicit compliance commitments reduce regulatory exposure and simplify audits.",
		Benefits:        []string{"Addresses framework obligations explicitly", "Audit-ready language"},
		Risks:           []string{"Review appended paragraphs against existing definitions in the contract"},
		ComplianceImprovements: covered,
		Confidence:             complianceConfidence,
		Source:                 SourceAIAnalysis,
		CreatedAt:              now,
	}
}

// riskLimitation is the generic statutory-limitation sentence appended by
// risk-reduction suggestions.
const riskLimitation = "Any claim arising out of this clause must be brought within the applicable statutory limitation period, and neither party's aggregate liability under this clause will exceed the limits permitted by applicable law."

func riskSuggestion(req *Request, now time.Time) *Suggestion {
	return &Suggestion{
		ID:              uuid.New().String(),
		OriginalClause:  req.OriginalClause,
		SuggestedClause: req.OriginalClause + " " + riskLimitation,
		SuggestionType:  TypeRiskReduction,
		Title:           "Add statutory limitation language",
		Description:     "Appends a generic limitation sentence bounding claims and liability.",
		Reasoning:       "An explicit limitation period and liability bound narrows open-ended exposure.",
		Benefits:        []string{"Bounds liability exposure", "Sets a clear claims window"},
		Risks:           []string{"Limitation language may be negotiated or unenforceable in some jurisdictions"},
		Confidence:      riskConfidence,
		Source:          SourceAIAnalysis,
		CreatedAt:       now,
	}
}

func frameworkNames(fs []compliance.Framework) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, string(f))
	}
	return out
}
