package compliance

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
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
)

const instrumentationName = "github.com/fyrsmithlabs/clausewise/internal/compliance"

// qualityThreshold is the implementation-quality score below which a matched
// rule still yields a violation.
const qualityThreshold = 0.7

// requiredWeight is the rule weight above which absence of a match is a
// violation.
const requiredWeight = 0.7

// Service provides contract compliance analysis.
type Service interface {
	// AnalyzeContract evaluates contract text against the requested frameworks.
	AnalyzeContract(ctx context.Context, req *AnalyzeRequest) (*ContractAnalysis, error)

	// Corpus returns the immutable rule corpus backing this service.
	Corpus() *RuleCorpus
}

// service implements the Service interface.
type service struct {
	corpus *RuleCorpus
	logger *zap.Logger

	tracer           trace.Tracer
	meter            metric.Meter
	analyzeCounter   metric.Int64Counter
	violationCounter metric.Int64Counter
}

// NewService creates a compliance analysis service over an immutable corpus.
func NewService(corpus *RuleCorpus, logger *zap.Logger) (Service, error) {
	if corpus == nil {
		return nil, errors.New("rule corpus is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &service{
		corpus: corpus,
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

	s.analyzeCounter, err = s.meter.Int64Counter(
		"clausewise.compliance.analyses_total",
		metric.WithDescription("Total number of contract analyses"),
		metric.WithUnit("{analysis}"),
	)
	if err != nil {
		s.logger.Warn("failed to create analyze counter", zap.Error(err))
	}

	s.violationCounter, err = s.meter.Int64Counter(
		"clausewise.compliance.violations_total",
		metric.WithDescription("Total number of violations detected"),
		metric.WithUnit("{violation}"),
	)
	if err != nil {
		s.logger.Warn("failed to create violation counter", zap.Error(err))
	}
}

// Corpus returns the corpus backing this service.
func (s *service) Corpus() *RuleCorpus {
	return s.corpus
}

// AnalyzeContract evaluates contract text against the requested frameworks.
func (s *service) AnalyzeContract(ctx context.Context, req *AnalyzeRequest) (*ContractAnalysis, error) {
	ctx, span := s.tracer.Start(ctx, "compliance.analyze")
	defer span.End()

	if req == nil {
		return nil, errors.New("request is required")
	}
	if req.DocumentName == "" {
		return nil, errors.New("document name is required")
	}
	if len(req.Frameworks) == 0 {
		return nil, errors.New("at least one framework is required")
	}

	span.SetAttributes(
		attribute.String("document_name", req.DocumentName),
		attribute.Int("framework_count", len(req.Frameworks)),
		attribute.String("jurisdiction", req.Jurisdiction),
	)

	corpus := s.corpus
	if len(req.CustomRules) > 0 {
		overlaid, err := corpus.WithRules(req.CustomRules...)
		if err != nil {
			span.RecordError(err)
			return nil, fmt.Errorf("invalid custom rules: %w", err)
		}
		corpus = overlaid
	}

	now := time.Now().UTC()
	analysis := &ContractAnalysis{
		ContractID:   contractID(req.DocumentName, now),
		DocumentName: req.DocumentName,
		Jurisdiction: req.Jurisdiction,
		ClientID:     req.ClientID,
		AnalyzedAt:   now,
	}

	tags := newTagSet()
	var totalViolations int

	for _, framework := range req.Frameworks {
		fs := s.analyzeFramework(corpus, req, framework, now)
		analysis.Frameworks = append(analysis.Frameworks, fs)
		totalViolations += len(fs.Violations)

		collectTags(tags, framework, fs.Violations)
		bucketViolations(analysis, fs.Violations)
	}

	analysis.AutoTags = tags.sorted()
	analysis.OverallComplianceScore = overallScore(analysis.Frameworks)
	analysis.OverallRiskLevel = Classify(analysis.OverallComplianceScore)

	if s.analyzeCounter != nil {
		s.analyzeCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("overall_risk", string(analysis.OverallRiskLevel)),
		))
	}
	if s.violationCounter != nil {
		s.violationCounter.Add(ctx, int64(totalViolations))
	}

	s.logger.Info("analyzed contract",
		zap.String("contract_id", analysis.ContractID),
		zap.String("document", req.DocumentName),
		zap.Float64("overall_score", analysis.OverallComplianceScore),
		zap.String("overall_risk", string(analysis.OverallRiskLevel)),
		zap.Int("violations", totalViolations),
	)

	span.SetAttributes(
		attribute.Float64("overall_score", analysis.OverallComplianceScore),
		attribute.Int("violation_count", totalViolations),
	)
	return analysis, nil
}

// analyzeFramework runs matching and scoring for one framework.
func (s *service) analyzeFramework(corpus *RuleCorpus, req *AnalyzeRequest, framework Framework, now time.Time) *FrameworkScore {
	rules := corpus.Select(framework, req.Jurisdiction, req.ClientID)
	quality := implementationQuality(req.Text)

	var violations []*Violation
	for _, rule := range rules {
		matches := corpus.FindMatches(req.Text, rule)
		if len(matches) == 0 {
			if rule.Weight > requiredWeight {
				violations = append(violations, missingViolation(rule, now))
			}
			continue
		}

		if quality < qualityThreshold {
			violations = append(violations, implementationViolation(rule, quality, now))
		}
	}

	score, level := ScoreFramework(violations, framework, corpus.FrameworkRuleCount(framework))

	return &FrameworkScore{
		Framework:       framework,
		OverallScore:    score,
		RiskLevel:       level,
		Violations:      violations,
		Recommendations: buildRecommendations(violations),
		LastUpdated:     now,
	}
}

// missingViolation reports a required rule with no textual evidence.
func missingViolation(rule *Rule, now time.Time) *Violation {
	return &Violation{
		ID:              uuid.New().String(),
		RuleID:          rule.ID,
		Rule:            rule,
		ClauseID:        ClauseMissing,
		Severity:        rule.RiskLevel,
		Description:     fmt.Sprintf("Missing required clause: %s", rule.Name),
		Explanation:     fmt.Sprintf("%s requires contracts to %s.", rule.Framework, strings.ToLower(rule.Description)),
		SuggestedAction: fmt.Sprintf("Add a clause that %s", strings.ToLower(rule.Description)),
		DetectedAt:      now,
	}
}

// implementationViolation reports a matched rule with weak surrounding language.
func implementationViolation(rule *Rule, quality float64, now time.Time) *Violation {
	severity := RiskMedium
	if quality < 0.3 {
		severity = RiskHigh
	}
	return &Violation{
		ID:              uuid.New().String(),
		RuleID:          rule.ID,
		Rule:            rule,
		ClauseID:        ClauseImplementation,
		Severity:        severity,
		Description:     fmt.Sprintf("Weak implementation of: %s", rule.Name),
		Explanation:     fmt.Sprintf("The contract mentions this requirement but lacks binding obligation language or concrete detail (quality %.1f).", quality),
		SuggestedAction: fmt.Sprintf("Strengthen the language so the contract clearly %s", strings.ToLower(rule.Description)),
		DetectedAt:      now,
	}
}

// buildRecommendations groups violations by category and emits prioritized
// remediation guidance, followed by standing monitoring and training items.
func buildRecommendations(violations []*Violation) []string {
	type counts struct {
		critical int
		high     int
	}
	byCategory := make(map[string]*counts)
	var categories []string
	anyCritical := false

	for _, v := range violations {
		cat := v.Rule.Category
		c, ok := byCategory[cat]
		if !ok {
			c = &counts{}
			byCategory[cat] = c
			categories = append(categories, cat)
		}
		switch v.Severity {
		case RiskCritical:
			c.critical++
			anyCritical = true
		case RiskHigh:
			c.high++
		}
	}

	var recs []string
	for _, cat := range categories {
		c := byCategory[cat]
		if c.critical > 0 {
			recs = append(recs, fmt.Sprintf("URGENT: address %d critical %s issue(s) before execution", c.critical, cat))
		}
		if c.high > 0 {
			recs = append(recs, fmt.Sprintf("HIGH PRIORITY: resolve %d high-severity %s issue(s)", c.high, cat))
		}
	}
	if anyCritical {
		recs = append(recs, "Consider a formal legal review given the critical findings")
	}
	recs = append(recs,
		"Schedule periodic compliance monitoring of this contract",
		"Provide compliance training for the teams operating under this contract",
	)
	return recs
}

// tagSet is a deduplicating tag collector.
type tagSet map[string]struct{}

func newTagSet() tagSet { return make(tagSet) }

func (t tagSet) add(tag string) { t[tag] = struct{}{} }

func (t tagSet) sorted() []string {
	out := make([]string, 0, len(t))
	for tag := range t {
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// categoryIssueTags maps violated categories to fixed extra tags.
var categoryIssueTags = map[string]string{
	CategoryDataProtection:    "data-protection-issues",
	CategoryFinancialControls: "financial-compliance-issues",
	CategoryHealthcarePrivacy: "healthcare-privacy-issues",
}

// collectTags derives auto-tags for one framework's violations.
func collectTags(tags tagSet, framework Framework, violations []*Violation) {
	tags.add(strings.ToLower(string(framework)))

	for _, v := range violations {
		tags.add(string(v.Severity) + "-risk")
		tags.add(strings.ReplaceAll(strings.ToLower(v.Rule.Category), " ", "-"))
		if extra, ok := categoryIssueTags[v.Rule.Category]; ok {
			tags.add(extra)
		}
	}
}

// bucketViolations sorts violations into the analysis severity buckets.
// Bucket names intentionally do not map 1:1 to severity names.
func bucketViolations(analysis *ContractAnalysis, violations []*Violation) {
	for _, v := range violations {
		switch v.Severity {
		case RiskCritical:
			analysis.CriticalIssues = append(analysis.CriticalIssues, v)
		case RiskHigh:
			analysis.MediumIssues = append(analysis.MediumIssues, v)
		default:
			analysis.LowIssues = append(analysis.LowIssues, v)
		}
	}
}

// overallScore is the trust-weighted mean of framework scores. The trust
// weight was already applied inside each framework score; reapplying it here
// compounds its effect, which matches the reference behavior.
func overallScore(scores []*FrameworkScore) float64 {
	var weighted, weights float64
	for _, fs := range scores {
		w := TrustWeight(fs.Framework)
		weighted += fs.OverallScore * w
		weights += w
	}
	if weights == 0 {
		return 0
	}
	return weighted / weights
}

// contractID derives a stable identifier from the document name and analysis time.
func contractID(documentName string, analyzedAt time.Time) string {
	sum := sha256.Sum256([]byte(documentName + "|" + analyzedAt.Format(time.RFC3339Nano)))
	return "contract-" + hex.EncodeToString(sum[:6])
}
