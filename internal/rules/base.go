// Package rules implements the deterministic rule engine of the risk
// analysis pipeline: rule primitives, the concrete rule library, and the
// engine that registers and evaluates rules against a RuleContext.
package rules

import (
	"fmt"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// Base provides the bookkeeping every concrete rule shares: id/name/
// description/category, mutable config, and the flag-factory/evaluate
// shell that namespaces flag codes as "{rule_id}_{local_code}" and
// recovers from rule panics. Concrete rules embed Base and implement
// only doEvaluate.
type Base struct {
	id          string
	name        string
	description string
	category    domain.RuleCategory
	cfg         domain.RuleConfig
}

// NewBase constructs a Base with the given identity and default config.
func NewBase(id, name, description string, category domain.RuleCategory, defaultSeverity domain.Severity) Base {
	return Base{
		id:          id,
		name:        name,
		description: description,
		category:    category,
		cfg: domain.RuleConfig{
			Enabled:         true,
			DefaultSeverity: defaultSeverity,
			Thresholds:      map[string]float64{},
			StateOverrides:  map[string]domain.StateOverride{},
		},
	}
}

func (b *Base) ID() string                    { return b.id }
func (b *Base) Name() string                  { return b.name }
func (b *Base) Description() string           { return b.description }
func (b *Base) Category() domain.RuleCategory { return b.category }

func (b *Base) IsEnabled(state string) bool {
	if ov, ok := b.cfg.StateOverrides[state]; ok && ov.Enabled != nil {
		return *ov.Enabled
	}
	return b.cfg.Enabled
}

func (b *Base) GetSeverity(state string) domain.Severity {
	if ov, ok := b.cfg.StateOverrides[state]; ok && ov.Severity != nil {
		return *ov.Severity
	}
	return b.cfg.DefaultSeverity
}

func (b *Base) Configure(cfg domain.RuleConfig) {
	if cfg.Thresholds == nil {
		cfg.Thresholds = map[string]float64{}
	}
	if cfg.StateOverrides == nil {
		cfg.StateOverrides = map[string]domain.StateOverride{}
	}
	b.cfg = cfg
}

// Threshold returns the configured numeric threshold named key, falling
// back to def when absent (spec §4.B "customThresholds... fall back to
// the rule's built-in defaults when absent").
func (b *Base) Threshold(key string, def float64) float64 {
	if v, ok := b.cfg.Thresholds[key]; ok {
		return v
	}
	return def
}

// Flag builds a RiskFlag with a code namespaced to this rule:
// "{rule_id}_{localCode}".
func (b *Base) Flag(localCode, description string, severity domain.Severity) domain.RiskFlag {
	return domain.RiskFlag{
		Code:        fmt.Sprintf("%s_%s", b.id, localCode),
		Description: description,
		Severity:    severity,
	}
}

// Pass builds a passing RuleResult (no flags).
func (b *Base) Pass(details string) domain.RuleResult {
	return domain.RuleResult{RuleID: b.id, RuleName: b.name, Passed: true, Details: details}
}

// Fail builds a failing RuleResult carrying the given flags.
func (b *Base) Fail(details string, flags ...domain.RiskFlag) domain.RuleResult {
	return domain.RuleResult{RuleID: b.id, RuleName: b.name, Passed: false, Flags: flags, Details: details}
}

// SafeEvaluate wraps a rule's evaluate function, converting any panic into
// a failing result carrying a single low-severity "{rule_id}_ERROR" flag,
// per spec §4.B: "the engine must not crash."
func SafeEvaluate(r domain.Rule, ctx domain.RuleContext) (result domain.RuleResult) {
	defer func() {
		if rec := recover(); rec != nil {
			result = domain.RuleResult{
				RuleID:   r.ID(),
				RuleName: r.Name(),
				Passed:   false,
				Flags: []domain.RiskFlag{{
					Code:        fmt.Sprintf("%s_ERROR", r.ID()),
					Description: fmt.Sprintf("rule %s failed during evaluation: %v", r.ID(), rec),
					Severity:    domain.SeverityLow,
				}},
			}
		}
	}()
	return r.Evaluate(ctx)
}
