// Package compliance provides rule-based contract compliance analysis.
//
// The package evaluates free-form contract text against a corpus of
// regulatory-framework rules (GDPR, HIPAA, SOX, PCI-DSS, CCPA, ...) and
// produces per-framework and overall compliance scores with risk
// classifications, detected violations, recommendations, and auto-tags.
//
// # Usage
//
// Basic contract analysis:
//
//	corpus, err := compliance.DefaultCorpus()
//	svc, err := compliance.NewService(corpus, logger)
//
//	analysis, err := svc.AnalyzeContract(ctx, &compliance.AnalyzeRequest{
//	    Text:         contractText,
//	    DocumentName: "msa-acme.docx",
//	    Frameworks:   []compliance.Framework{compliance.FrameworkGDPR},
//	    Jurisdiction: "EU",
//	})
//
// # Scoring
//
// Each framework score starts from a base derived from the violation ratio,
// subtracts severity-weighted penalties, and is multiplied by a fixed
// per-framework trust weight. Risk levels are a pure function of the score:
// >=90 low, >=70 medium, >=50 high, otherwise critical.
//
// Note that the trust weight is applied once inside per-framework scoring and
// again when aggregating the overall score. The compounding is a quirk of the
// reference behavior and is kept for compatibility.
//
// # Concurrency
//
// Analysis is a pure function over an immutable RuleCorpus; a Service is safe
// for concurrent use. Per-call custom rules are applied as a copy-on-write
// overlay and never mutate the shared corpus.
package compliance
