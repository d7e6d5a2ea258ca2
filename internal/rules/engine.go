package rules

import (
	"sync"

	"github.com/prabhnoor12/cleardeal-ai/internal/domain"
)

// Engine registers rules and evaluates them against a RuleContext.
// Evaluation order follows registration order (spec §4.C): no parallelism
// is used internally, and a single Evaluate call must not be invoked
// concurrently with Register/RegisterAll on the same instance.
type Engine struct {
	mu    sync.RWMutex
	rules []domain.Rule
}

// NewEngine constructs an empty rule engine.
func NewEngine() *Engine {
	return &Engine{}
}

// Register appends a rule to the registration order.
func (e *Engine) Register(r domain.Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, r)
}

// RegisterAll appends rules in the given order.
func (e *Engine) RegisterAll(rs []domain.Rule) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rules = append(e.rules, rs...)
}

// GetRules returns all registered rules in registration order.
func (e *Engine) GetRules() []domain.Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	out := make([]domain.Rule, len(e.rules))
	copy(out, e.rules)
	return out
}

// GetRulesByCategory returns registered rules of the given category, in
// registration order.
func (e *Engine) GetRulesByCategory(category domain.RuleCategory) []domain.Rule {
	e.mu.RLock()
	defer e.mu.RUnlock()
	var out []domain.Rule
	for _, r := range e.rules {
		if r.Category() == category {
			out = append(out, r)
		}
	}
	return out
}

// Evaluate runs every enabled rule (per ctx.State) against ctx, in
// registration order, containing any rule panic per SafeEvaluate.
func (e *Engine) Evaluate(ctx domain.RuleContext) []domain.RuleResult {
	e.mu.RLock()
	rules := make([]domain.Rule, len(e.rules))
	copy(rules, e.rules)
	e.mu.RUnlock()

	results := make([]domain.RuleResult, 0, len(rules))
	for _, r := range rules {
		if !r.IsEnabled(ctx.State) {
			continue
		}
		results = append(results, SafeEvaluate(r, ctx))
	}
	return results
}

// EvaluateCategory runs Evaluate restricted to rules of one category.
func (e *Engine) EvaluateCategory(ctx domain.RuleContext, category domain.RuleCategory) []domain.RuleResult {
	e.mu.RLock()
	var rules []domain.Rule
	for _, r := range e.rules {
		if r.Category() == category {
			rules = append(rules, r)
		}
	}
	e.mu.RUnlock()

	results := make([]domain.RuleResult, 0, len(rules))
	for _, r := range rules {
		if !r.IsEnabled(ctx.State) {
			continue
		}
		results = append(results, SafeEvaluate(r, ctx))
	}
	return results
}

// AggregateFlags concatenates every result's flags in order, preserving
// per-rule flag order and result order (spec invariant 5).
func AggregateFlags(results []domain.RuleResult) []domain.RiskFlag {
	var out []domain.RiskFlag
	for _, r := range results {
		out = append(out, r.Flags...)
	}
	return out
}

// PassRate returns the percentage (0..100) of results that passed.
func PassRate(results []domain.RuleResult) float64 {
	if len(results) == 0 {
		return 100
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return float64(passed) / float64(len(results)) * 100
}

// Summary is the aggregate statistics returned by Summarize.
type Summary struct {
	Total           int
	Passed          int
	Failed          int
	PassRate        float64
	FlagsBySeverity map[domain.Severity]int
}

// Summarize computes aggregate pass/fail/severity statistics over results.
func Summarize(results []domain.RuleResult) Summary {
	s := Summary{Total: len(results), FlagsBySeverity: map[domain.Severity]int{}}
	for _, r := range results {
		if r.Passed {
			s.Passed++
		} else {
			s.Failed++
		}
		for _, f := range r.Flags {
			s.FlagsBySeverity[f.Severity]++
		}
	}
	s.PassRate = PassRate(results)
	return s
}
