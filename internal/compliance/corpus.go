package compliance

import (
	"fmt"
	"regexp"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// RuleCorpus is an immutable catalog of compliance rules grouped by
// framework. Patterns are compiled at construction; an unparsable pattern
// fails the load rather than the analysis.
type RuleCorpus struct {
	rules       []*Rule
	compiled    map[string][]*regexp.Regexp
	byFramework map[Framework][]*Rule
}

// NewCorpus builds a corpus from the given rules, validating each rule and
// compiling its patterns. The rules slice is not retained; callers may reuse it.
func NewCorpus(rules []*Rule) (*RuleCorpus, error) {
	c := &RuleCorpus{
		rules:       make([]*Rule, 0, len(rules)),
		compiled:    make(map[string][]*regexp.Regexp, len(rules)),
		byFramework: make(map[Framework][]*Rule),
	}

	seen := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := c.add(r, seen); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// DefaultCorpus returns a corpus holding the built-in rule set.
func DefaultCorpus() (*RuleCorpus, error) {
	return NewCorpus(builtinRules())
}

func (c *RuleCorpus) add(r *Rule, seen map[string]bool) error {
	if r == nil {
		return fmt.Errorf("nil rule")
	}
	if r.ID == "" {
		return fmt.Errorf("rule missing id")
	}
	if seen[r.ID] {
		return fmt.Errorf("duplicate rule id %q", r.ID)
	}
	if r.Framework == "" {
		return fmt.Errorf("rule %s: missing framework", r.ID)
	}
	if r.Weight < 0 || r.Weight > 1 {
		return fmt.Errorf("rule %s: weight %v out of range [0,1]", r.ID, r.Weight)
	}
	switch r.RiskLevel {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
	default:
		return fmt.Errorf("rule %s: invalid risk level %q", r.ID, r.RiskLevel)
	}

	compiled := make([]*regexp.Regexp, 0, len(r.Patterns))
	for _, p := range r.Patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return fmt.Errorf("rule %s: invalid pattern %q: %w", r.ID, p, err)
		}
		compiled = append(compiled, re)
	}

	seen[r.ID] = true
	c.rules = append(c.rules, r)
	c.compiled[r.ID] = compiled
	c.byFramework[r.Framework] = append(c.byFramework[r.Framework], r)
	return nil
}

// WithRules returns a derived corpus containing this corpus's rules plus the
// given custom rules. The receiver is not modified, so concurrent analyses
// over the original corpus remain safe.
func (c *RuleCorpus) WithRules(custom ...*Rule) (*RuleCorpus, error) {
	merged := make([]*Rule, 0, len(c.rules)+len(custom))
	merged = append(merged, c.rules...)
	merged = append(merged, custom...)
	return NewCorpus(merged)
}

// Len returns the number of rules in the corpus.
func (c *RuleCorpus) Len() int {
	return len(c.rules)
}

// Rules returns all rules in the corpus.
func (c *RuleCorpus) Rules() []*Rule {
	out := make([]*Rule, len(c.rules))
	copy(out, c.rules)
	return out
}

// FrameworkRuleCount counts every rule registered for a framework, regardless
// of jurisdiction or client scope. The unscoped count is a deliberate
// simplification inherited from the reference behavior: scoring denominators
// stay stable across jurisdictions.
func (c *RuleCorpus) FrameworkRuleCount(f Framework) int {
	return len(c.byFramework[f])
}

// Select returns the active rules for a framework that apply to the given
// jurisdiction and client scope. An unset rule jurisdiction or client ID
// means the rule applies everywhere.
func (c *RuleCorpus) Select(f Framework, jurisdiction, clientID string) []*Rule {
	var out []*Rule
	for _, r := range c.byFramework[f] {
		if !r.IsActive {
			continue
		}
		if r.Jurisdiction != "" && r.Jurisdiction != jurisdiction {
			continue
		}
		if r.ClientID != "" && r.ClientID != clientID {
			continue
		}
		out = append(out, r)
	}
	return out
}

// ruleFile is the YAML shape for rule overlay files.
type ruleFile struct {
	Rules []*Rule `koanf:"rules"`
}

// ParseRulesYAML parses a YAML rule definition document of the form:
//
//	rules:
//	  - id: acme-liability-cap
//	    framework: CUSTOM
//	    category: Risk Allocation
//	    name: Liability cap
//	    description: contracts must cap aggregate liability
//	    risk_level: high
//	    keywords: ["limitation of liability", "aggregate liability"]
//	    weight: 0.8
//	    is_active: true
//
// Parsed rules are not validated here; pass them to NewCorpus or WithRules,
// which fail fast on invalid weights or patterns.
func ParseRulesYAML(data []byte) ([]*Rule, error) {
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	var f ruleFile
	if err := k.Unmarshal("", &f); err != nil {
		return nil, fmt.Errorf("failed to unmarshal rules: %w", err)
	}
	return f.Rules, nil
}
